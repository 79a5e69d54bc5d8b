package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shipdrop/backend/internal/wholesaler/domain"
	"github.com/shipdrop/backend/pkg/apperrors"
)

func TestFetchCatalog(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/products", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode([]domain.CatalogItem{
			{SKU: "WM-100", Name: "Wireless Mouse", Price: 12.50, Stock: 120},
			{SKU: "UC-200", Name: "USB-C Cable", Price: 2.10, Stock: 0},
		})
	}))
	defer server.Close()

	c := NewHTTPClient(5 * time.Second)
	w := &domain.Wholesaler{Name: "Acme", APIEndpoint: server.URL, APIKey: "sk-test"}

	catalog, err := c.FetchCatalog(context.Background(), w)
	require.NoError(t, err)
	require.Len(t, catalog, 2)
	assert.Equal(t, "WM-100", catalog[0].SKU)
	assert.Equal(t, 120, catalog[0].Stock)
}

func TestFetchCatalogNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	c := NewHTTPClient(5 * time.Second)
	w := &domain.Wholesaler{Name: "Acme", APIEndpoint: server.URL, APIKey: "bad"}

	_, err := c.FetchCatalog(context.Background(), w)
	assert.True(t, errors.Is(err, apperrors.ErrExternalService))
}

func TestFetchCatalogUnreachable(t *testing.T) {
	c := NewHTTPClient(time.Second)
	w := &domain.Wholesaler{Name: "Acme", APIEndpoint: "http://127.0.0.1:1", APIKey: "k"}

	_, err := c.FetchCatalog(context.Background(), w)
	assert.True(t, errors.Is(err, apperrors.ErrExternalService))
}

func TestPushOrder(t *testing.T) {
	eta := time.Date(2026, 9, 4, 12, 0, 0, 0, time.UTC)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)

		var req domain.OrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ORD-AB12CD34", req.OrderID)
		require.Len(t, req.Items, 1)
		assert.Equal(t, "WM-100", req.Items[0].SKU)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(domain.OrderConfirmation{
			TrackingNumber:    "TRK-999",
			EstimatedDelivery: eta,
		})
	}))
	defer server.Close()

	c := NewHTTPClient(5 * time.Second)
	w := &domain.Wholesaler{Name: "Acme", APIEndpoint: server.URL, APIKey: "sk-test"}

	confirmation, err := c.PushOrder(context.Background(), w, domain.OrderRequest{
		OrderID:      "ORD-AB12CD34",
		CustomerName: "Jamie Doe",
		Items:        []domain.OrderItemRequest{{SKU: "WM-100", Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, "TRK-999", confirmation.TrackingNumber)
	assert.True(t, confirmation.EstimatedDelivery.Equal(eta))
}

func TestPushOrderRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	c := NewHTTPClient(5 * time.Second)
	w := &domain.Wholesaler{Name: "Acme", APIEndpoint: server.URL, APIKey: "sk-test"}

	_, err := c.PushOrder(context.Background(), w, domain.OrderRequest{OrderID: "ORD-X"})
	assert.True(t, errors.Is(err, apperrors.ErrExternalService))
}
