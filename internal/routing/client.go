// Package routing talks to the external directions provider used for
// delivery estimates between campus pickup points.
package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/campusmarket/marketplace/internal/domain"
)

// ErrMissingCredential indicates the provider API key was never configured.
// Callers are expected to degrade to a fallback quote rather than fail.
var ErrMissingCredential = errors.New("routing: api key not configured")

// HTTPDoer is the outbound HTTP capability the client needs. Satisfied by
// httpclient.Client and httpclient.CircuitBreakerClient.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Route is a single routed leg between two coordinates.
type Route struct {
	// Meters is the routed distance. Zero when the provider omitted it.
	Meters float64
	// Seconds is the routed duration. Zero when the provider omitted it.
	Seconds float64
}

// Config holds the directions provider settings.
type Config struct {
	// BaseURL is the full directions endpoint, profile included.
	BaseURL string
	// APIKey authenticates requests. Empty means the provider is unusable.
	APIKey string
}

// Client calls an OpenRouteService-compatible directions endpoint.
type Client struct {
	http HTTPDoer
	cfg  Config
}

// NewClient creates a directions client backed by the given HTTP doer.
func NewClient(doer HTTPDoer, cfg Config) *Client {
	return &Client{http: doer, cfg: cfg}
}

type directionsRequest struct {
	Coordinates [][]float64 `json:"coordinates"`
}

type directionsResponse struct {
	Routes []struct {
		Summary struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"summary"`
	} `json:"routes"`
}

// Directions requests a walking route from one coordinate to another.
// An empty routes array yields a zero Route; callers apply their own
// defaults for missing summary values.
func (c *Client) Directions(ctx context.Context, from, to domain.Coordinate) (Route, error) {
	if c.cfg.APIKey == "" {
		return Route{}, ErrMissingCredential
	}

	payload, err := json.Marshal(directionsRequest{
		Coordinates: [][]float64{
			{from.Lon, from.Lat},
			{to.Lon, to.Lat},
		},
	})
	if err != nil {
		return Route{}, fmt.Errorf("marshal directions request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, bytes.NewReader(payload))
	if err != nil {
		return Route{}, fmt.Errorf("create directions request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", c.cfg.APIKey)

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return Route{}, fmt.Errorf("directions request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Route{}, fmt.Errorf("directions provider returned %d: %s", resp.StatusCode, string(body))
	}

	var parsed directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Route{}, fmt.Errorf("decode directions response: %w", err)
	}

	if len(parsed.Routes) == 0 {
		return Route{}, nil
	}

	summary := parsed.Routes[0].Summary
	return Route{Meters: summary.Distance, Seconds: summary.Duration}, nil
}
