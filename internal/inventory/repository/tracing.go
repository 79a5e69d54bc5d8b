package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/shipdrop/backend/internal/inventory/domain"
)

var tracer = otel.Tracer("inventory-repository")

// GormProductRepositoryWithTracing wraps GormProductRepository with tracing
type GormProductRepositoryWithTracing struct {
	*GormProductRepository
}

// NewGormProductRepositoryWithTracing creates a new repository with tracing
func NewGormProductRepositoryWithTracing(db *gorm.DB) *GormProductRepositoryWithTracing {
	return &GormProductRepositoryWithTracing{
		GormProductRepository: NewGormProductRepository(db),
	}
}

// FindAllWithContext lists products under a span carrying the filter
func (r *GormProductRepositoryWithTracing) FindAllWithContext(ctx context.Context, filter domain.Filter) ([]domain.Product, error) {
	_, span := tracer.Start(ctx, "repository.FindAll",
		trace.WithAttributes(
			attribute.String("filter.text", filter.Text),
			attribute.String("filter.category", filter.Category),
			attribute.String("filter.status", filter.Status),
		),
	)
	defer span.End()

	products, err := r.GormProductRepository.FindAll(filter)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(products)))
	return products, nil
}

// UpdateStockWithContext updates stock under a span
func (r *GormProductRepositoryWithTracing) UpdateStockWithContext(ctx context.Context, id uint, stock int) error {
	_, span := tracer.Start(ctx, "repository.UpdateStock",
		trace.WithAttributes(
			attribute.Int("product.id", int(id)),
			attribute.Int("product.stock", stock),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
	defer span.End()

	if err := r.GormProductRepository.UpdateStock(id, stock); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}
