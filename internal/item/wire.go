//go:build wireinject
// +build wireinject

package item

import (
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/geotk/marketplace/internal/item/delivery/http"
	"github.com/geotk/marketplace/internal/item/domain"
	"github.com/geotk/marketplace/internal/item/repository"
	"github.com/geotk/marketplace/internal/item/usecase/command"
	"github.com/geotk/marketplace/internal/item/usecase/query"
	userdomain "github.com/geotk/marketplace/internal/user/domain"
	userrepo "github.com/geotk/marketplace/internal/user/repository"
	"github.com/geotk/marketplace/kafka"
	"github.com/geotk/marketplace/pkg/storage"
)

// Repository Providers
func ProvideItemRepository(db *gorm.DB) domain.ItemRepository {
	return repository.NewGormItemRepository(db)
}

func ProvideCategoryRepository(db *gorm.DB) domain.CategoryRepository {
	return repository.NewGormCategoryRepository(db)
}

func ProvideImageRepository(db *gorm.DB) domain.ImageRepository {
	return repository.NewGormImageRepository(db)
}

func ProvideUserRepository(db *gorm.DB) userdomain.UserRepository {
	return userrepo.NewGormUserRepository(db)
}

// Command Handlers Providers
func ProvideCreateItemHandler(items domain.ItemRepository, categories domain.CategoryRepository, users userdomain.UserRepository) *command.CreateItemHandler {
	return command.NewCreateItemHandler(items, categories, users)
}

func ProvideUpdateItemHandler(items domain.ItemRepository, categories domain.CategoryRepository, publisher *kafka.Publisher) *command.UpdateItemHandler {
	return command.NewUpdateItemHandler(items, categories, publisher)
}

func ProvideDeleteItemHandler(items domain.ItemRepository, images domain.ImageRepository, blobs *storage.LocalStorage) *command.DeleteItemHandler {
	return command.NewDeleteItemHandler(items, images, blobs)
}

func ProvideUploadImageHandler(items domain.ItemRepository, images domain.ImageRepository, blobs *storage.LocalStorage) *command.UploadImageHandler {
	return command.NewUploadImageHandler(items, images, blobs)
}

func ProvideAddFavoriteHandler(items domain.ItemRepository, users userdomain.UserRepository) *command.AddFavoriteHandler {
	return command.NewAddFavoriteHandler(items, users)
}

func ProvideRemoveFavoriteHandler(items domain.ItemRepository, users userdomain.UserRepository) *command.RemoveFavoriteHandler {
	return command.NewRemoveFavoriteHandler(items, users)
}

func ProvideCreateCategoryHandler(categories domain.CategoryRepository) *command.CreateCategoryHandler {
	return command.NewCreateCategoryHandler(categories)
}

// Query Handlers Providers
func ProvideGetItemHandler(items domain.ItemRepository) *query.GetItemHandler {
	return query.NewGetItemHandler(items)
}

func ProvideListItemsHandler(items domain.ItemRepository) *query.ListItemsHandler {
	return query.NewListItemsHandler(items)
}

func ProvideListUserItemsHandler(items domain.ItemRepository, users userdomain.UserRepository) *query.ListUserItemsHandler {
	return query.NewListUserItemsHandler(items, users)
}

func ProvideListFavoritesHandler(items domain.ItemRepository, users userdomain.UserRepository) *query.ListFavoritesHandler {
	return query.NewListFavoritesHandler(items, users)
}

func ProvideListCategoriesHandler(categories domain.CategoryRepository) *query.ListCategoriesHandler {
	return query.NewListCategoriesHandler(categories)
}

func ProvideGetImageHandler(images domain.ImageRepository, blobs *storage.LocalStorage) *query.GetImageHandler {
	return query.NewGetImageHandler(images, blobs)
}

func ProvideGetStatsHandler(items domain.ItemRepository) *query.GetStatsHandler {
	return query.NewGetStatsHandler(items)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideItemRepository,
	ProvideCategoryRepository,
	ProvideImageRepository,
	ProvideUserRepository,
)

var CommandHandlerSet = wire.NewSet(
	ProvideCreateItemHandler,
	ProvideUpdateItemHandler,
	ProvideDeleteItemHandler,
	ProvideUploadImageHandler,
	ProvideAddFavoriteHandler,
	ProvideRemoveFavoriteHandler,
	ProvideCreateCategoryHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideGetItemHandler,
	ProvideListItemsHandler,
	ProvideListUserItemsHandler,
	ProvideListFavoritesHandler,
	ProvideListCategoriesHandler,
	ProvideGetImageHandler,
	ProvideGetStatsHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, blobs *storage.LocalStorage, publisher *kafka.Publisher, redisClient *redis.Client) (*http.ItemHandler, error) {
	wire.Build(
		AllHandlersSet,
		http.NewItemHandlerWithDI,
	)
	return nil, nil
}
