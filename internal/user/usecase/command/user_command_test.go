package command

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/geotk/marketplace/internal/user/repository"
	"github.com/geotk/marketplace/internal/user/usecase/query"
	"github.com/geotk/marketplace/pkg/apperror"
	"github.com/geotk/marketplace/pkg/auth"
)

func newTestRepo(t *testing.T) *repository.GormUserRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	repo := repository.NewGormUserRepository(db)
	require.NoError(t, repo.AutoMigrate())
	return repo
}

func registerTestUser(t *testing.T, repo *repository.GormUserRepository, username string) uint {
	t.Helper()

	user, err := NewRegisterUserHandler(repo).Handle(RegisterUserCommand{
		Username: username,
		FullName: "Test User",
		Email:    username + "@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	return user.ID
}

func TestRegisterUser(t *testing.T) {
	repo := newTestRepo(t)

	handler := NewRegisterUserHandler(repo)
	user, err := handler.Handle(RegisterUserCommand{
		Username:    "geot",
		FullName:    "George Test",
		Email:       "email@example.com",
		Password:    "password",
		Bio:         "I am a student...",
		Country:     "Greece",
		City:        "Thessaloniki",
		PhoneNumber: "6900000000",
	})
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "password", user.Password)
	assert.True(t, auth.CheckPassword(user.Password, "password"))
}

func TestRegisterUserValidation(t *testing.T) {
	repo := newTestRepo(t)
	handler := NewRegisterUserHandler(repo)

	cases := []struct {
		name string
		cmd  RegisterUserCommand
	}{
		{"missing username", RegisterUserCommand{FullName: "x", Email: "x@example.com", Password: "secret123"}},
		{"missing email", RegisterUserCommand{Username: "x", FullName: "x", Password: "secret123"}},
		{"missing password", RegisterUserCommand{Username: "x", FullName: "x", Email: "x@example.com"}},
		{"short password", RegisterUserCommand{Username: "x", FullName: "x", Email: "x@example.com", Password: "abc"}},
		{"missing full name", RegisterUserCommand{Username: "x", Email: "x@example.com", Password: "secret123"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := handler.Handle(tc.cmd)
			require.Error(t, err)
			assert.True(t, apperror.IsValidation(err))
		})
	}
}

func TestRegisterUserDuplicates(t *testing.T) {
	repo := newTestRepo(t)
	handler := NewRegisterUserHandler(repo)

	registerTestUser(t, repo, "geot")

	_, err := handler.Handle(RegisterUserCommand{
		Username: "geot",
		FullName: "Someone Else",
		Email:    "other@example.com",
		Password: "secret123",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))

	_, err = handler.Handle(RegisterUserCommand{
		Username: "other",
		FullName: "Someone Else",
		Email:    "geot@example.com",
		Password: "secret123",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}

func TestLoginUser(t *testing.T) {
	repo := newTestRepo(t)
	userID := registerTestUser(t, repo, "geot")

	handler := NewLoginUserHandler(repo)

	resp, err := handler.Handle(LoginUserCommand{Username: "geot", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, userID, resp.User.ID)

	claims, err := auth.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "geot", claims.Username)
}

func TestLoginUserBadCredentials(t *testing.T) {
	repo := newTestRepo(t)
	registerTestUser(t, repo, "geot")

	handler := NewLoginUserHandler(repo)

	_, err := handler.Handle(LoginUserCommand{Username: "geot", Password: "wrong"})
	assert.True(t, apperror.IsValidation(err))

	_, err = handler.Handle(LoginUserCommand{Username: "ghost", Password: "secret123"})
	assert.True(t, apperror.IsValidation(err))
}

func TestUpdateUserPartial(t *testing.T) {
	repo := newTestRepo(t)
	userID := registerTestUser(t, repo, "geot")

	handler := NewUpdateUserHandler(repo)

	city := "Athens"
	updated, err := handler.Handle(UpdateUserCommand{ID: userID, City: &city})
	require.NoError(t, err)
	assert.Equal(t, "Athens", updated.City)
	assert.Equal(t, "geot@example.com", updated.Email)
	assert.Equal(t, "Test User", updated.FullName)
}

func TestUpdateUserEmailConflict(t *testing.T) {
	repo := newTestRepo(t)
	userID := registerTestUser(t, repo, "geot")
	registerTestUser(t, repo, "johnk")

	handler := NewUpdateUserHandler(repo)

	taken := "johnk@example.com"
	_, err := handler.Handle(UpdateUserCommand{ID: userID, Email: &taken})
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}

func TestDeleteUser(t *testing.T) {
	repo := newTestRepo(t)
	userID := registerTestUser(t, repo, "geot")

	handler := NewDeleteUserHandler(repo)
	require.NoError(t, handler.Handle(DeleteUserCommand{ID: userID}))

	get := query.NewGetUserHandler(repo)
	_, err := get.Handle(query.GetUserQuery{ID: userID})
	assert.True(t, apperror.IsNotFound(err))

	err = handler.Handle(DeleteUserCommand{ID: userID})
	assert.True(t, apperror.IsNotFound(err))
}
