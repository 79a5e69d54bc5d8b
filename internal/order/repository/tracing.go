package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/shipdrop/backend/internal/order/domain"
)

var tracer = otel.Tracer("order-repository")

// GormOrderRepositoryWithTracing wraps GormOrderRepository with tracing
type GormOrderRepositoryWithTracing struct {
	*GormOrderRepository
}

// NewGormOrderRepositoryWithTracing creates a new repository with tracing
func NewGormOrderRepositoryWithTracing(db *gorm.DB) *GormOrderRepositoryWithTracing {
	return &GormOrderRepositoryWithTracing{
		GormOrderRepository: NewGormOrderRepository(db),
	}
}

// FulfillWithContext runs the fulfillment transaction under a span
func (r *GormOrderRepositoryWithTracing) FulfillWithContext(ctx context.Context, id string) (*domain.Order, error) {
	_, span := tracer.Start(ctx, "repository.Fulfill",
		trace.WithAttributes(attribute.String("order.id", id)),
		trace.WithSpanKind(trace.SpanKindClient),
	)
	defer span.End()

	order, err := r.GormOrderRepository.Fulfill(id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("order.status", order.Status))
	return order, nil
}

// FindAllWithContext lists orders under a span carrying the filter
func (r *GormOrderRepositoryWithTracing) FindAllWithContext(ctx context.Context, filter domain.Filter) ([]domain.Order, error) {
	_, span := tracer.Start(ctx, "repository.FindAll",
		trace.WithAttributes(
			attribute.String("filter.text", filter.Text),
			attribute.String("filter.status", filter.Status),
		),
	)
	defer span.End()

	orders, err := r.GormOrderRepository.FindAll(filter)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(orders)))
	return orders, nil
}
