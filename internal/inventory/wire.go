//go:build wireinject
// +build wireinject

package inventory

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/shipdrop/backend/internal/inventory/delivery/http"
	"github.com/shipdrop/backend/internal/inventory/domain"
	"github.com/shipdrop/backend/internal/inventory/repository"
)

// ProvideProductRepository provides the product repository with tracing
func ProvideProductRepository(db *gorm.DB) domain.ProductRepository {
	return repository.NewGormProductRepositoryWithTracing(db)
}

// RepositorySet groups inventory repository providers
var RepositorySet = wire.NewSet(
	ProvideProductRepository,
)

// InitializeHTTPHandler initializes the inventory handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, lowStockThreshold int) (*http.InventoryHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewInventoryHandler,
	)
	return nil, nil
}
