package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/geotk/marketplace/internal/user/repository"
)

// Prometheus collectors are process-global, so the handler is built once and
// shared by every test in the package.
var (
	setupOnce  sync.Once
	testRouter *mux.Router
)

func setupRouter(t *testing.T) *mux.Router {
	t.Helper()

	setupOnce.Do(func() {
		db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err != nil {
			t.Fatal(err)
		}

		repo := repository.NewGormUserRepository(db)
		if err := repo.AutoMigrate(); err != nil {
			t.Fatal(err)
		}

		testRouter = mux.NewRouter()
		NewUserHandler(repo).RegisterRoutes(testRouter)
	})

	return testRouter
}

func doJSON(t *testing.T, router *mux.Router, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func register(t *testing.T, router *mux.Router, username string) uint {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/auth/register", map[string]string{
		"username":  username,
		"full_name": "Test User",
		"email":     username + "@example.com",
		"password":  "secret123",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Data struct {
			ID uint `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Data.ID
}

func login(t *testing.T, router *mux.Router, username string) string {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/auth/login", map[string]string{
		"username": username,
		"password": "secret123",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)
	return resp.Data.Token
}

func TestRegisterEndpoint(t *testing.T) {
	router := setupRouter(t)

	id := register(t, router, "reg_alice")
	assert.NotZero(t, id)

	// Duplicate username conflicts
	rec := doJSON(t, router, http.MethodPost, "/auth/register", map[string]string{
		"username":  "reg_alice",
		"full_name": "Someone Else",
		"email":     "else@example.com",
		"password":  "secret123",
	}, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Missing fields are rejected
	rec = doJSON(t, router, http.MethodPost, "/auth/register", map[string]string{
		"username": "incomplete",
	}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginEndpoint(t *testing.T) {
	router := setupRouter(t)
	register(t, router, "login_bob")

	token := login(t, router, "login_bob")
	assert.NotEmpty(t, token)

	rec := doJSON(t, router, http.MethodPost, "/auth/login", map[string]string{
		"username": "login_bob",
		"password": "wrong",
	}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetUserEndpoint(t *testing.T) {
	router := setupRouter(t)
	id := register(t, router, "get_carol")

	rec := doJSON(t, router, http.MethodGet, "/users/"+itoa(id), nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	// Password hash must never leak
	assert.NotContains(t, rec.Body.String(), "password")

	rec = doJSON(t, router, http.MethodGet, "/users/999999", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/users/abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateUserAuth(t *testing.T) {
	router := setupRouter(t)
	id := register(t, router, "upd_dave")
	register(t, router, "upd_eve")

	// No token
	rec := doJSON(t, router, http.MethodPut, "/users/"+itoa(id), map[string]string{"city": "Athens"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Wrong user's token
	eveToken := login(t, router, "upd_eve")
	rec = doJSON(t, router, http.MethodPut, "/users/"+itoa(id), map[string]string{"city": "Athens"}, eveToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Own token
	daveToken := login(t, router, "upd_dave")
	rec = doJSON(t, router, http.MethodPut, "/users/"+itoa(id), map[string]string{"city": "Athens"}, daveToken)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Athens")
}

func TestDeleteUserAuth(t *testing.T) {
	router := setupRouter(t)
	id := register(t, router, "del_frank")
	token := login(t, router, "del_frank")

	rec := doJSON(t, router, http.MethodDelete, "/users/"+itoa(id), nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/users/"+itoa(id), nil, token)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/users/"+itoa(id), nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
