//go:build wireinject
// +build wireinject

package user

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/geotk/marketplace/internal/user/delivery/http"
	"github.com/geotk/marketplace/internal/user/domain"
	"github.com/geotk/marketplace/internal/user/repository"
	"github.com/geotk/marketplace/internal/user/usecase/command"
	"github.com/geotk/marketplace/internal/user/usecase/query"
)

// ProvideUserRepository provides the user repository
func ProvideUserRepository(db *gorm.DB) domain.UserRepository {
	return repository.NewGormUserRepository(db)
}

// Command Handlers Providers
func ProvideRegisterUserHandler(repo domain.UserRepository) *command.RegisterUserHandler {
	return command.NewRegisterUserHandler(repo)
}

func ProvideLoginUserHandler(repo domain.UserRepository) *command.LoginUserHandler {
	return command.NewLoginUserHandler(repo)
}

func ProvideUpdateUserHandler(repo domain.UserRepository) *command.UpdateUserHandler {
	return command.NewUpdateUserHandler(repo)
}

func ProvideDeleteUserHandler(repo domain.UserRepository) *command.DeleteUserHandler {
	return command.NewDeleteUserHandler(repo)
}

// Query Handlers Providers
func ProvideGetUserHandler(repo domain.UserRepository) *query.GetUserHandler {
	return query.NewGetUserHandler(repo)
}

func ProvideListUsersHandler(repo domain.UserRepository) *query.ListUsersHandler {
	return query.NewListUsersHandler(repo)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideUserRepository,
)

var CommandHandlerSet = wire.NewSet(
	ProvideRegisterUserHandler,
	ProvideLoginUserHandler,
	ProvideUpdateUserHandler,
	ProvideDeleteUserHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideGetUserHandler,
	ProvideListUsersHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB) (*http.UserHandler, error) {
	wire.Build(
		AllHandlersSet,
		http.NewUserHandlerWithDI,
	)
	return nil, nil
}
