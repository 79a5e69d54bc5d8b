//go:build wireinject
// +build wireinject

package wholesaler

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/shipdrop/backend/internal/wholesaler/delivery/http"
	"github.com/shipdrop/backend/internal/wholesaler/domain"
	"github.com/shipdrop/backend/internal/wholesaler/repository"
)

// ProvideWholesalerRepository provides the wholesaler repository
func ProvideWholesalerRepository(db *gorm.DB) domain.WholesalerRepository {
	return repository.NewGormWholesalerRepository(db)
}

// RepositorySet groups wholesaler repository providers
var RepositorySet = wire.NewSet(
	ProvideWholesalerRepository,
)

// InitializeHTTPHandler initializes the wholesaler handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, api domain.APIClient, orders domain.OpenOrderCounter) (*http.WholesalerHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewWholesalerHandler,
	)
	return nil, nil
}
