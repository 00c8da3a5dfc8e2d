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

	reviewrepo "github.com/geotk/marketplace/internal/review/repository"
	userdomain "github.com/geotk/marketplace/internal/user/domain"
	userrepo "github.com/geotk/marketplace/internal/user/repository"
	"github.com/geotk/marketplace/pkg/auth"
)

// Prometheus collectors are process-global, so the handler is built once and
// shared by every test in the package.
var (
	setupOnce  sync.Once
	testRouter *mux.Router
	testDB     *gorm.DB
)

func setup(t *testing.T) (*mux.Router, *gorm.DB) {
	t.Helper()

	setupOnce.Do(func() {
		db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err != nil {
			t.Fatal(err)
		}

		users := userrepo.NewGormUserRepository(db)
		reviews := reviewrepo.NewGormReviewRepository(db)
		if err := users.AutoMigrate(); err != nil {
			t.Fatal(err)
		}
		if err := reviews.AutoMigrate(); err != nil {
			t.Fatal(err)
		}

		testRouter = mux.NewRouter()
		NewReviewHandler(reviews, users, nil).RegisterRoutes(testRouter)

		testDB = db
	})

	return testRouter, testDB
}

func seedUser(t *testing.T, db *gorm.DB, username string) (*userdomain.User, string) {
	t.Helper()

	user := &userdomain.User{Username: username, FullName: username, Email: username + "@example.com", Password: "hash"}
	require.NoError(t, db.Create(user).Error)

	token, err := auth.GenerateToken(user.ID, user.Username)
	require.NoError(t, err)
	return user, token
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

func TestReviewLifecycle(t *testing.T) {
	router, db := setup(t)
	reviewer, token := seedUser(t, db, "rev_alice")
	reviewee, _ := seedUser(t, db, "rev_bob")

	// Unauthenticated create is rejected
	rec := doJSON(t, router, http.MethodPost, "/reviews", map[string]interface{}{
		"reviewer_id": reviewer.ID,
		"reviewee_id": reviewee.ID,
		"rating":      5,
	}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/reviews", map[string]interface{}{
		"reviewer_id": reviewer.ID,
		"reviewee_id": reviewee.ID,
		"rating":      5,
		"comment":     "Very nice and friendly.",
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Data struct {
			ID uint `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	reviewID := resp.Data.ID

	// Both listings show the review
	rec = doJSON(t, router, http.MethodGet, "/users/"+itoa(reviewer.ID)+"/reviews/written", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Very nice and friendly.")

	rec = doJSON(t, router, http.MethodGet, "/users/"+itoa(reviewee.ID)+"/reviews/received", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Very nice and friendly.")

	// Update keeps authorship fixed
	rec = doJSON(t, router, http.MethodPut, "/reviews/"+itoa(reviewID), map[string]interface{}{
		"reviewee_id": reviewer.ID,
	}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPut, "/reviews/"+itoa(reviewID), map[string]interface{}{
		"rating": 4,
	}, token)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Delete removes the review from both listings
	rec = doJSON(t, router, http.MethodDelete, "/reviews/"+itoa(reviewID), nil, token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/reviews/"+itoa(reviewID), nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/users/"+itoa(reviewer.ID)+"/reviews/written", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Very nice and friendly.")
}

func TestCreateReviewValidationStatuses(t *testing.T) {
	router, db := setup(t)
	reviewer, token := seedUser(t, db, "val_alice")
	reviewee, _ := seedUser(t, db, "val_bob")

	rec := doJSON(t, router, http.MethodPost, "/reviews", map[string]interface{}{
		"reviewer_id": reviewer.ID,
		"reviewee_id": reviewee.ID,
		"rating":      9,
	}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/reviews", map[string]interface{}{
		"reviewer_id": reviewer.ID,
		"reviewee_id": 999999,
		"rating":      3,
	}, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserReviewsUnknownUser(t *testing.T) {
	router, _ := setup(t)

	rec := doJSON(t, router, http.MethodGet, "/users/999999/reviews/written", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/users/abc/reviews/received", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
