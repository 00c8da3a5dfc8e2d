package command

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/geotk/marketplace/internal/review/repository"
	"github.com/geotk/marketplace/internal/review/usecase/query"
	userdomain "github.com/geotk/marketplace/internal/user/domain"
	userrepo "github.com/geotk/marketplace/internal/user/repository"
	"github.com/geotk/marketplace/pkg/apperror"
)

type testEnv struct {
	reviews *repository.GormReviewRepository
	users   *userrepo.GormUserRepository

	alice *userdomain.User
	bob   *userdomain.User
	carol *userdomain.User
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	users := userrepo.NewGormUserRepository(db)
	reviews := repository.NewGormReviewRepository(db)
	require.NoError(t, users.AutoMigrate())
	require.NoError(t, reviews.AutoMigrate())

	env := &testEnv{reviews: reviews, users: users}
	for _, u := range []struct {
		name string
		dst  **userdomain.User
	}{
		{"alice", &env.alice},
		{"bob", &env.bob},
		{"carol", &env.carol},
	} {
		user := &userdomain.User{Username: u.name, FullName: u.name, Email: u.name + "@example.com", Password: "hash"}
		require.NoError(t, users.Create(user))
		*u.dst = user
	}

	return env
}

func TestCreateReviewAppearsInBothListings(t *testing.T) {
	env := newTestEnv(t)

	create := NewCreateReviewHandler(env.reviews, env.users, nil)
	review, err := create.Handle(CreateReviewCommand{
		ReviewerID: env.alice.ID,
		RevieweeID: env.bob.ID,
		Rating:     5,
		Comment:    "Very nice and friendly.",
	})
	require.NoError(t, err)
	assert.False(t, review.Date.IsZero())

	listing := query.NewListUserReviewsHandler(env.reviews, env.users)

	written, err := listing.HandleWritten(query.ListWrittenReviewsQuery{UserID: env.alice.ID})
	require.NoError(t, err)
	require.Len(t, written, 1)
	assert.Equal(t, review.ID, written[0].ID)

	received, err := listing.HandleReceived(query.ListReceivedReviewsQuery{UserID: env.bob.ID})
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, review.ID, received[0].ID)

	// Third parties see neither side
	other, err := listing.HandleWritten(query.ListWrittenReviewsQuery{UserID: env.carol.ID})
	require.NoError(t, err)
	assert.Empty(t, other)

	other, err = listing.HandleReceived(query.ListReceivedReviewsQuery{UserID: env.carol.ID})
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestCreateReviewValidation(t *testing.T) {
	env := newTestEnv(t)
	create := NewCreateReviewHandler(env.reviews, env.users, nil)

	_, err := create.Handle(CreateReviewCommand{RevieweeID: env.bob.ID, Rating: 3})
	assert.True(t, apperror.IsValidation(err))

	_, err = create.Handle(CreateReviewCommand{ReviewerID: env.alice.ID, RevieweeID: env.bob.ID, Rating: 0})
	assert.True(t, apperror.IsValidation(err))

	_, err = create.Handle(CreateReviewCommand{ReviewerID: env.alice.ID, RevieweeID: env.bob.ID, Rating: 6})
	assert.True(t, apperror.IsValidation(err))

	_, err = create.Handle(CreateReviewCommand{ReviewerID: 9999, RevieweeID: env.bob.ID, Rating: 3})
	assert.True(t, apperror.IsNotFound(err))

	_, err = create.Handle(CreateReviewCommand{ReviewerID: env.alice.ID, RevieweeID: 9999, Rating: 3})
	assert.True(t, apperror.IsNotFound(err))
}

func TestUpdateReviewAuthorshipImmutable(t *testing.T) {
	env := newTestEnv(t)

	create := NewCreateReviewHandler(env.reviews, env.users, nil)
	review, err := create.Handle(CreateReviewCommand{
		ReviewerID: env.alice.ID,
		RevieweeID: env.bob.ID,
		Rating:     4,
	})
	require.NoError(t, err)

	update := NewUpdateReviewHandler(env.reviews)

	_, err = update.Handle(UpdateReviewCommand{ReviewID: review.ID, ReviewerID: &env.carol.ID})
	assert.True(t, apperror.IsValidation(err))

	_, err = update.Handle(UpdateReviewCommand{ReviewID: review.ID, RevieweeID: &env.carol.ID})
	assert.True(t, apperror.IsValidation(err))

	rating := 2
	comment := "changed my mind"
	updated, err := update.Handle(UpdateReviewCommand{ReviewID: review.ID, Rating: &rating, Comment: &comment})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Rating)
	assert.Equal(t, "changed my mind", updated.Comment)
	assert.Equal(t, env.alice.ID, updated.ReviewerID)
	assert.Equal(t, env.bob.ID, updated.RevieweeID)

	bad := 9
	_, err = update.Handle(UpdateReviewCommand{ReviewID: review.ID, Rating: &bad})
	assert.True(t, apperror.IsValidation(err))
}

func TestDeleteReviewRemovesBothListings(t *testing.T) {
	env := newTestEnv(t)

	create := NewCreateReviewHandler(env.reviews, env.users, nil)
	review, err := create.Handle(CreateReviewCommand{
		ReviewerID: env.alice.ID,
		RevieweeID: env.bob.ID,
		Rating:     1,
		Comment:    "Rude and disrespectful!",
	})
	require.NoError(t, err)

	del := NewDeleteReviewHandler(env.reviews)
	require.NoError(t, del.Handle(DeleteReviewCommand{ReviewID: review.ID}))

	listing := query.NewListUserReviewsHandler(env.reviews, env.users)

	written, err := listing.HandleWritten(query.ListWrittenReviewsQuery{UserID: env.alice.ID})
	require.NoError(t, err)
	assert.Empty(t, written)

	received, err := listing.HandleReceived(query.ListReceivedReviewsQuery{UserID: env.bob.ID})
	require.NoError(t, err)
	assert.Empty(t, received)

	get := query.NewGetReviewHandler(env.reviews)
	_, err = get.Handle(query.GetReviewQuery{ID: review.ID})
	assert.True(t, apperror.IsNotFound(err))

	err = del.Handle(DeleteReviewCommand{ReviewID: review.ID})
	assert.True(t, apperror.IsNotFound(err))
}

func TestListUserReviewsUnknownUser(t *testing.T) {
	env := newTestEnv(t)
	listing := query.NewListUserReviewsHandler(env.reviews, env.users)

	_, err := listing.HandleWritten(query.ListWrittenReviewsQuery{UserID: 9999})
	assert.True(t, apperror.IsNotFound(err))

	_, err = listing.HandleReceived(query.ListReceivedReviewsQuery{UserID: 9999})
	assert.True(t, apperror.IsNotFound(err))
}
