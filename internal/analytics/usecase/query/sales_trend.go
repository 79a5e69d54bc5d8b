package query

import (
	"context"
	"fmt"
	"sort"
	"time"

	orderdomain "github.com/shipdrop/backend/internal/order/domain"
	"github.com/shipdrop/backend/pkg/apperrors"
)

// Trend bucket granularities
const (
	BucketDay   = "day"
	BucketWeek  = "week"
	BucketMonth = "month"
)

// TrendPoint is the revenue of one chronological bucket
type TrendPoint struct {
	Period  string  `json:"period"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

// SalesTrendHandler buckets non-failed order revenue chronologically
type SalesTrendHandler struct {
	orders orderdomain.OrderRepository
}

// NewSalesTrendHandler creates a new sales trend handler
func NewSalesTrendHandler(orders orderdomain.OrderRepository) *SalesTrendHandler {
	return &SalesTrendHandler{orders: orders}
}

// periodKey collapses a timestamp into its bucket label. Labels sort
// lexicographically in chronological order.
func periodKey(t time.Time, bucket string) string {
	switch bucket {
	case BucketDay:
		return t.Format("2006-01-02")
	case BucketWeek:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	default:
		return t.Format("2006-01")
	}
}

// Handle executes the sales trend query
func (h *SalesTrendHandler) Handle(ctx context.Context, bucket string) ([]TrendPoint, error) {
	switch bucket {
	case BucketDay, BucketWeek, BucketMonth:
	case "":
		bucket = BucketMonth
	default:
		return nil, apperrors.Validationf("unknown trend bucket %q", bucket)
	}

	orders, err := h.orders.FindAll(orderdomain.Filter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}

	byPeriod := make(map[string]*TrendPoint)
	for i := range orders {
		if orders[i].Status == orderdomain.StatusFailed {
			continue
		}
		key := periodKey(orders[i].PlacedAt, bucket)
		point, ok := byPeriod[key]
		if !ok {
			point = &TrendPoint{Period: key}
			byPeriod[key] = point
		}
		point.Revenue += orders[i].TotalAmount
		point.Orders++
	}

	trend := make([]TrendPoint, 0, len(byPeriod))
	for _, point := range byPeriod {
		trend = append(trend, *point)
	}
	sort.Slice(trend, func(i, j int) bool {
		return trend[i].Period < trend[j].Period
	})
	return trend, nil
}
