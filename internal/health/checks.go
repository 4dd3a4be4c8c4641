package health

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aaravmahajanofficial/storefront-client/internal/config"
	"github.com/hellofresh/health-go/v5"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
)

// NewHealthHandler reports on the two things the client cannot work without:
// the commerce backend it proxies to and, when session persistence is on,
// the redis instance holding the session keys.
func NewHealthHandler(cfg *config.Config) (*health.Health, error) {

	checks := []health.Config{
		{
			Name:      "backend",
			Timeout:   5 * time.Second,
			SkipOnErr: false,
			Check: func(ctx context.Context) error {
				req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.Backend.BaseURL+"/product/all_products", nil)
				if err != nil {
					return fmt.Errorf("failed to build backend probe: %w", err)
				}

				resp, err := http.DefaultClient.Do(req)
				if err != nil {
					return fmt.Errorf("failed to reach commerce backend: %w", err)
				}
				defer resp.Body.Close()

				if resp.StatusCode >= http.StatusInternalServerError {
					return fmt.Errorf("commerce backend returned status %d", resp.StatusCode)
				}
				return nil
			},
		},
	}

	if cfg.RedisConnect.Enabled {
		checks = append(checks, health.Config{
			Name:      "redis",
			Timeout:   2 * time.Second,
			SkipOnErr: false,
			Check: healthRedis.New(
				healthRedis.Config{
					DSN: cfg.RedisConnect.GetDSN(),
				},
			),
		})
	}

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    "storefront-client",
			Version: "1.0.0",
		}),
		health.WithSystemInfo(),
		health.WithChecks(checks...),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}
