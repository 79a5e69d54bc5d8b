package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStockStatus(t *testing.T) {
	tests := []struct {
		stock     int
		threshold int
		want      string
	}{
		{0, 10, StatusOutOfStock},
		{1, 10, StatusLowStock},
		{10, 10, StatusLowStock},
		{11, 10, StatusInStock},
		{500, 10, StatusInStock},
		{0, 0, StatusOutOfStock},
		{1, 0, StatusInStock},
		{3, 5, StatusLowStock},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StockStatus(tt.stock, tt.threshold),
			"stock=%d threshold=%d", tt.stock, tt.threshold)
	}
}

func TestRefreshSetsDerivedStatus(t *testing.T) {
	p := &Product{Name: "USB Hub", SKU: "HUB-01", Stock: 4}

	p.Refresh(10)
	assert.Equal(t, StatusLowStock, p.Status)

	p.Stock = 0
	p.Refresh(10)
	assert.Equal(t, StatusOutOfStock, p.Status)

	p.Stock = 40
	p.Refresh(10)
	assert.Equal(t, StatusInStock, p.Status)
}
