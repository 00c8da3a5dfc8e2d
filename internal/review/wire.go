//go:build wireinject
// +build wireinject

package review

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/geotk/marketplace/internal/review/delivery/http"
	"github.com/geotk/marketplace/internal/review/domain"
	"github.com/geotk/marketplace/internal/review/repository"
	"github.com/geotk/marketplace/internal/review/usecase/command"
	"github.com/geotk/marketplace/internal/review/usecase/query"
	userdomain "github.com/geotk/marketplace/internal/user/domain"
	userrepo "github.com/geotk/marketplace/internal/user/repository"
	"github.com/geotk/marketplace/kafka"
)

// Repository Providers
func ProvideReviewRepository(db *gorm.DB) domain.ReviewRepository {
	return repository.NewGormReviewRepository(db)
}

func ProvideUserRepository(db *gorm.DB) userdomain.UserRepository {
	return userrepo.NewGormUserRepository(db)
}

// Command Handlers Providers
func ProvideCreateReviewHandler(reviews domain.ReviewRepository, users userdomain.UserRepository, publisher *kafka.Publisher) *command.CreateReviewHandler {
	return command.NewCreateReviewHandler(reviews, users, publisher)
}

func ProvideUpdateReviewHandler(reviews domain.ReviewRepository) *command.UpdateReviewHandler {
	return command.NewUpdateReviewHandler(reviews)
}

func ProvideDeleteReviewHandler(reviews domain.ReviewRepository) *command.DeleteReviewHandler {
	return command.NewDeleteReviewHandler(reviews)
}

// Query Handlers Providers
func ProvideGetReviewHandler(reviews domain.ReviewRepository) *query.GetReviewHandler {
	return query.NewGetReviewHandler(reviews)
}

func ProvideListReviewsHandler(reviews domain.ReviewRepository) *query.ListReviewsHandler {
	return query.NewListReviewsHandler(reviews)
}

func ProvideListUserReviewsHandler(reviews domain.ReviewRepository, users userdomain.UserRepository) *query.ListUserReviewsHandler {
	return query.NewListUserReviewsHandler(reviews, users)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideReviewRepository,
	ProvideUserRepository,
)

var CommandHandlerSet = wire.NewSet(
	ProvideCreateReviewHandler,
	ProvideUpdateReviewHandler,
	ProvideDeleteReviewHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideGetReviewHandler,
	ProvideListReviewsHandler,
	ProvideListUserReviewsHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, publisher *kafka.Publisher) (*http.ReviewHandler, error) {
	wire.Build(
		AllHandlersSet,
		http.NewReviewHandlerWithDI,
	)
	return nil, nil
}
