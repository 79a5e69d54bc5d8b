//go:build wireinject
// +build wireinject

package user

import (
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/shipdrop/backend/internal/user/delivery/http"
	"github.com/shipdrop/backend/internal/user/domain"
	"github.com/shipdrop/backend/internal/user/repository"
)

// ProvideUserRepository provides the user repository
func ProvideUserRepository(db *gorm.DB) domain.UserRepository {
	return repository.NewGormUserRepository(db)
}

// ProvideSessionStore provides the Redis session store
func ProvideSessionStore(client *redis.Client) domain.SessionStore {
	return repository.NewRedisSessionStore(client)
}

// StoreSet groups identity store providers
var StoreSet = wire.NewSet(
	ProvideUserRepository,
	ProvideSessionStore,
)

// InitializeHTTPHandler initializes the user handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, client *redis.Client) (*http.UserHandler, error) {
	wire.Build(
		StoreSet,
		http.NewUserHandler,
	)
	return nil, nil
}
