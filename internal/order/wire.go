//go:build wireinject
// +build wireinject

package order

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	inventorydomain "github.com/shipdrop/backend/internal/inventory/domain"
	"github.com/shipdrop/backend/internal/order/delivery/http"
	"github.com/shipdrop/backend/internal/order/domain"
	"github.com/shipdrop/backend/internal/order/repository"
	"github.com/shipdrop/backend/internal/order/usecase/command"
	wholesalerdomain "github.com/shipdrop/backend/internal/wholesaler/domain"
)

// ProvideOrderRepository provides the order repository with tracing
func ProvideOrderRepository(db *gorm.DB) domain.OrderRepository {
	return repository.NewGormOrderRepositoryWithTracing(db)
}

// RepositorySet groups order repository providers
var RepositorySet = wire.NewSet(
	ProvideOrderRepository,
)

// InitializeHTTPHandler initializes the order handler with all dependencies
func InitializeHTTPHandler(
	db *gorm.DB,
	products inventorydomain.ProductRepository,
	wholesalers wholesalerdomain.WholesalerRepository,
	api wholesalerdomain.APIClient,
	events command.EventPublisher,
) (*http.OrderHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewOrderHandler,
	)
	return nil, nil
}
