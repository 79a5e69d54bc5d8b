package health

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/shipdrop/backend/gateway/config"
	"github.com/shipdrop/backend/pkg/logger"
)

// InstanceHealth is the health of one backend instance
type InstanceHealth struct {
	URL       string        `json:"url"`
	Status    string        `json:"status"`
	Latency   time.Duration `json:"latency_ms"`
	Error     string        `json:"error,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// GatewayHealth is the aggregate health of the gateway and its backends
type GatewayHealth struct {
	Gateway   string           `json:"gateway"`
	Status    string           `json:"status"`
	Instances []InstanceHealth `json:"instances"`
	Uptime    time.Duration    `json:"uptime_seconds"`
}

// Checker probes backend instance health endpoints
type Checker struct {
	cfg       *config.Config
	client    *http.Client
	startTime time.Time
}

// NewChecker creates a new health checker
func NewChecker(cfg *config.Config) *Checker {
	return &Checker{
		cfg: cfg,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		startTime: time.Now(),
	}
}

// CheckInstance probes one backend instance
func (h *Checker) CheckInstance(ctx context.Context, baseURL string) InstanceHealth {
	start := time.Now()
	result := InstanceHealth{
		URL:       baseURL,
		Timestamp: time.Now(),
	}

	req, err := http.NewRequestWithContext(ctx, "GET", baseURL+h.cfg.Backend.HealthCheck, nil)
	if err != nil {
		result.Status = "unhealthy"
		result.Error = fmt.Sprintf("Failed to create request: %v", err)
		result.Latency = time.Since(start)
		return result
	}

	resp, err := h.client.Do(req)
	if err != nil {
		result.Status = "unhealthy"
		result.Error = fmt.Sprintf("Failed to reach backend: %v", err)
		result.Latency = time.Since(start)
		return result
	}
	defer resp.Body.Close()

	result.Latency = time.Since(start)
	if resp.StatusCode == http.StatusOK {
		result.Status = "healthy"
	} else {
		result.Status = "unhealthy"
		result.Error = fmt.Sprintf("Unexpected status code: %d", resp.StatusCode)
	}
	return result
}

// CheckAll probes every backend instance concurrently
func (h *Checker) CheckAll(ctx context.Context) GatewayHealth {
	instances := make([]InstanceHealth, len(h.cfg.Backend.Instances))
	var wg sync.WaitGroup

	for i, url := range h.cfg.Backend.Instances {
		wg.Add(1)
		go func(idx int, u string) {
			defer wg.Done()
			result := h.CheckInstance(ctx, u)
			instances[idx] = result

			if result.Status != "healthy" {
				logger.Logger.Warn().
					Str("instance", u).
					Str("error", result.Error).
					Msg("Backend health check failed")
			}
		}(i, url)
	}
	wg.Wait()

	healthy := 0
	for _, inst := range instances {
		if inst.Status == "healthy" {
			healthy++
		}
	}

	status := "unhealthy"
	switch {
	case healthy == len(instances):
		status = "healthy"
	case healthy > 0:
		status = "degraded"
	}

	return GatewayHealth{
		Gateway:   "shipdrop-gateway",
		Status:    status,
		Instances: instances,
		Uptime:    time.Since(h.startTime),
	}
}

// QuickCheck reports gateway liveness without probing backends
func (h *Checker) QuickCheck() map[string]interface{} {
	return map[string]interface{}{
		"status":    "healthy",
		"gateway":   "shipdrop-gateway",
		"uptime":    time.Since(h.startTime).Seconds(),
		"timestamp": time.Now(),
	}
}
