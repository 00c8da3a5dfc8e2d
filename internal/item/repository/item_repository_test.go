package repository

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/geotk/marketplace/internal/item/domain"
	userdomain "github.com/geotk/marketplace/internal/user/domain"
	"github.com/geotk/marketplace/pkg/apperror"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&userdomain.User{}))
	require.NoError(t, NewGormItemRepository(db).AutoMigrate())

	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *userdomain.User {
	t.Helper()

	user := &userdomain.User{
		Username: username,
		FullName: username,
		Email:    username + "@example.com",
		Password: "hash",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedItem(t *testing.T, db *gorm.DB, sellerID uint) *domain.Item {
	t.Helper()

	category := &domain.Category{Name: "Electronics"}
	require.NoError(t, db.Where(domain.Category{Name: category.Name}).FirstOrCreate(category).Error)

	item := &domain.Item{
		Title:      "old pc",
		CategoryID: category.ID,
		SellerID:   sellerID,
		Price:      250.0,
		Condition:  "Used",
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

func TestAddFavoriteIncrementsCounter(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormItemRepository(db)

	seller := seedUser(t, db, "seller")
	buyer := seedUser(t, db, "buyer")
	item := seedItem(t, db, seller.ID)

	require.NoError(t, repo.AddFavorite(buyer.ID, item.ID))

	got, err := repo.FindByID(item.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.FavoriteCount)

	fav, err := repo.IsFavorite(buyer.ID, item.ID)
	require.NoError(t, err)
	assert.True(t, fav)
}

func TestAddFavoriteIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormItemRepository(db)

	seller := seedUser(t, db, "seller")
	buyer := seedUser(t, db, "buyer")
	item := seedItem(t, db, seller.ID)

	require.NoError(t, repo.AddFavorite(buyer.ID, item.ID))
	require.NoError(t, repo.AddFavorite(buyer.ID, item.ID))
	require.NoError(t, repo.AddFavorite(buyer.ID, item.ID))

	got, err := repo.FindByID(item.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.FavoriteCount)

	favorites, err := repo.FindFavoritesOfUser(buyer.ID)
	require.NoError(t, err)
	assert.Len(t, favorites, 1)
}

func TestAddFavoriteOwnListing(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormItemRepository(db)

	seller := seedUser(t, db, "seller")
	item := seedItem(t, db, seller.ID)

	err := repo.AddFavorite(seller.ID, item.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))

	got, err := repo.FindByID(item.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.FavoriteCount)
}

func TestAddFavoriteMissingItem(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormItemRepository(db)

	buyer := seedUser(t, db, "buyer")

	err := repo.AddFavorite(buyer.ID, 9999)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestRemoveFavoriteRestoresCounter(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormItemRepository(db)

	seller := seedUser(t, db, "seller")
	buyer := seedUser(t, db, "buyer")
	item := seedItem(t, db, seller.ID)

	require.NoError(t, repo.AddFavorite(buyer.ID, item.ID))
	require.NoError(t, repo.RemoveFavorite(buyer.ID, item.ID))

	got, err := repo.FindByID(item.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.FavoriteCount)

	fav, err := repo.IsFavorite(buyer.ID, item.ID)
	require.NoError(t, err)
	assert.False(t, fav)
}

func TestRemoveFavoriteNotAMember(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormItemRepository(db)

	seller := seedUser(t, db, "seller")
	buyer := seedUser(t, db, "buyer")
	item := seedItem(t, db, seller.ID)

	err := repo.RemoveFavorite(buyer.ID, item.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))

	got, err := repo.FindByID(item.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.FavoriteCount)
}

func TestFavoriteCounterNeverNegative(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormItemRepository(db)

	seller := seedUser(t, db, "seller")
	buyer := seedUser(t, db, "buyer")
	item := seedItem(t, db, seller.ID)

	// Force the counter out of sync to verify the decrement floor
	require.NoError(t, db.Model(&domain.Item{}).Where("id = ?", item.ID).
		UpdateColumn("favorite_count", 0).Error)
	require.NoError(t, db.Create(&domain.Favorite{UserID: buyer.ID, ItemID: item.ID}).Error)

	require.NoError(t, repo.RemoveFavorite(buyer.ID, item.ID))

	got, err := repo.FindByID(item.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.FavoriteCount)
}

func TestFindFavoritesOfUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormItemRepository(db)

	seller := seedUser(t, db, "seller")
	buyer := seedUser(t, db, "buyer")
	other := seedUser(t, db, "other")

	first := seedItem(t, db, seller.ID)
	second := seedItem(t, db, seller.ID)

	require.NoError(t, repo.AddFavorite(buyer.ID, first.ID))
	require.NoError(t, repo.AddFavorite(buyer.ID, second.ID))
	require.NoError(t, repo.AddFavorite(other.ID, first.ID))

	favorites, err := repo.FindFavoritesOfUser(buyer.ID)
	require.NoError(t, err)
	assert.Len(t, favorites, 2)

	favorites, err = repo.FindFavoritesOfUser(other.ID)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, first.ID, favorites[0].ID)
}

func TestDeleteItemRemovesImages(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormItemRepository(db)
	images := NewGormImageRepository(db)

	seller := seedUser(t, db, "seller")
	item := seedItem(t, db, seller.ID)

	require.NoError(t, images.Create(&domain.Image{ItemID: item.ID, Path: "a.jpg"}))
	require.NoError(t, images.Create(&domain.Image{ItemID: item.ID, Path: "b.jpg"}))

	require.NoError(t, repo.Delete(item.ID))

	_, err := repo.FindByID(item.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	rows, err := images.FindByItem(item.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestCountSold(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormItemRepository(db)

	seller := seedUser(t, db, "seller")
	sold := seedItem(t, db, seller.ID)
	seedItem(t, db, seller.ID)

	sold.Sold = true
	require.NoError(t, repo.Update(sold))

	total, err := repo.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	count, err := repo.CountSold()
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
