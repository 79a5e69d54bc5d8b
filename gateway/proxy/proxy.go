package proxy

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/shipdrop/backend/gateway/config"
	"github.com/shipdrop/backend/gateway/loadbalancer"
	"github.com/shipdrop/backend/pkg/logger"
)

// ReverseProxy forwards requests to backend instances
type ReverseProxy struct {
	client *http.Client
	lb     *loadbalancer.RoundRobin
}

// NewReverseProxy creates a new reverse proxy over the backend pool
func NewReverseProxy(cfg *config.Config) *ReverseProxy {
	return &ReverseProxy{
		lb: loadbalancer.NewRoundRobin(cfg.Backend.Instances),
		client: &http.Client{
			Timeout: cfg.Backend.Timeout,
		},
	}
}

// LoadBalancer exposes the instance pool for health checks and stats
func (p *ReverseProxy) LoadBalancer() *loadbalancer.RoundRobin {
	return p.lb
}

// Forward proxies the request to the next backend instance
func (p *ReverseProxy) Forward(c *fiber.Ctx) error {
	server := p.lb.Next()
	if server == "" {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "No backend instances available",
		})
	}

	logger.Logger.Debug().
		Str("target", server).
		Str("path", c.Path()).
		Msg("Proxying request")

	req, err := http.NewRequestWithContext(
		c.UserContext(),
		c.Method(),
		buildTargetURL(c, server),
		bytes.NewReader(c.Body()),
	)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create request",
		})
	}

	copyRequestHeaders(c, req)

	resp, err := p.client.Do(req)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":   "Failed to reach backend",
			"details": err.Error(),
		})
	}
	defer resp.Body.Close()

	copyResponseHeaders(c, resp)
	c.Status(resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to read response",
		})
	}
	return c.Send(body)
}

func buildTargetURL(c *fiber.Ctx, server string) string {
	path := string(c.Request().URI().Path())
	query := string(c.Request().URI().QueryString())
	if query != "" {
		query = "?" + query
	}
	return server + path + query
}

func copyRequestHeaders(c *fiber.Ctx, req *http.Request) {
	c.Request().Header.VisitAll(func(key, value []byte) {
		if strings.ToLower(string(key)) == "host" {
			return
		}
		req.Header.Set(string(key), string(value))
	})

	req.Header.Set("X-Forwarded-For", c.IP())
	req.Header.Set("X-Forwarded-Proto", c.Protocol())
	req.Header.Set("X-Forwarded-Host", c.Hostname())
}

func copyResponseHeaders(c *fiber.Ctx, resp *http.Response) {
	for key, values := range resp.Header {
		if strings.ToLower(key) == "content-length" {
			continue
		}
		for _, value := range values {
			c.Set(key, value)
		}
	}
}
