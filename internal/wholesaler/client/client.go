package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/shipdrop/backend/internal/wholesaler/domain"
	"github.com/shipdrop/backend/pkg/apperrors"
	"github.com/shipdrop/backend/pkg/logger"
)

// DefaultTimeout bounds every wholesaler API round trip
const DefaultTimeout = 30 * time.Second

// HTTPClient talks to wholesaler APIs over their REST contract:
// GET {endpoint}/products for the catalog, POST {endpoint}/orders for
// fulfillment requests, both authenticated with the wholesaler's API key.
type HTTPClient struct {
	client *http.Client
}

// NewHTTPClient creates a wholesaler API client with a bounded timeout
func NewHTTPClient(timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPClient{
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// FetchCatalog retrieves the wholesaler's current product catalog
func (c *HTTPClient) FetchCatalog(ctx context.Context, w *domain.Wholesaler) ([]domain.CatalogItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.APIEndpoint+"/products", nil)
	if err != nil {
		return nil, apperrors.Externalf("failed to build catalog request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+w.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperrors.Externalf("wholesaler %q unreachable: %v", w.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.Externalf("wholesaler %q returned status %d", w.Name, resp.StatusCode)
	}

	var catalog []domain.CatalogItem
	if err := json.NewDecoder(resp.Body).Decode(&catalog); err != nil {
		return nil, apperrors.Externalf("wholesaler %q sent a malformed catalog: %v", w.Name, err)
	}

	logger.Debug(ctx).
		Str("wholesaler", w.Name).
		Int("items", len(catalog)).
		Msg("Fetched wholesaler catalog")

	return catalog, nil
}

// PushOrder sends a fulfillment request to the wholesaler
func (c *HTTPClient) PushOrder(ctx context.Context, w *domain.Wholesaler, order domain.OrderRequest) (*domain.OrderConfirmation, error) {
	body, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.APIEndpoint+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.Externalf("failed to build order request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+w.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperrors.Externalf("wholesaler %q unreachable: %v", w.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, apperrors.Externalf("wholesaler %q rejected order %s with status %d", w.Name, order.OrderID, resp.StatusCode)
	}

	var confirmation domain.OrderConfirmation
	if err := json.NewDecoder(resp.Body).Decode(&confirmation); err != nil {
		return nil, apperrors.Externalf("wholesaler %q sent a malformed confirmation: %v", w.Name, err)
	}

	logger.Info(ctx).
		Str("wholesaler", w.Name).
		Str("order_id", order.OrderID).
		Str("tracking_number", confirmation.TrackingNumber).
		Msg("Order pushed to wholesaler")

	return &confirmation, nil
}
