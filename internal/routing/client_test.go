package routing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusmarket/marketplace/internal/domain"
	"github.com/campusmarket/marketplace/pkg/httpclient"
)

func newTestClient(t *testing.T, apiKey string, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := httpclient.DefaultConfig()
	cfg.MaxRetries = 0
	client := NewClient(httpclient.New(cfg), Config{
		BaseURL: srv.URL,
		APIKey:  apiKey,
	})
	return client, srv
}

func TestDirections_Success(t *testing.T) {
	var gotAuth string
	var gotBody directionsRequest

	client, _ := newTestClient(t, "test-key", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"routes":[{"summary":{"distance":1250.4,"duration":903.2}}]}`))
	})

	from := domain.Coordinate{Lon: 29.0091, Lat: 41.0862}
	to := domain.Coordinate{Lon: 29.0068, Lat: 41.0883}

	route, err := client.Directions(context.Background(), from, to)
	require.NoError(t, err)
	assert.Equal(t, 1250.4, route.Meters)
	assert.Equal(t, 903.2, route.Seconds)

	assert.Equal(t, "test-key", gotAuth)
	require.Len(t, gotBody.Coordinates, 2)
	assert.Equal(t, []float64{from.Lon, from.Lat}, gotBody.Coordinates[0])
	assert.Equal(t, []float64{to.Lon, to.Lat}, gotBody.Coordinates[1])
}

func TestDirections_EmptyRoutes(t *testing.T) {
	client, _ := newTestClient(t, "test-key", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"routes":[]}`))
	})

	route, err := client.Directions(context.Background(), domain.Coordinate{}, domain.Coordinate{})
	require.NoError(t, err)
	assert.Zero(t, route.Meters)
	assert.Zero(t, route.Seconds)
}

func TestDirections_MissingAPIKey(t *testing.T) {
	called := false
	client, _ := newTestClient(t, "", func(_ http.ResponseWriter, _ *http.Request) {
		called = true
	})

	_, err := client.Directions(context.Background(), domain.Coordinate{}, domain.Coordinate{})
	assert.ErrorIs(t, err, ErrMissingCredential)
	assert.False(t, called, "provider must not be called without a credential")
}

func TestDirections_ProviderError(t *testing.T) {
	client, _ := newTestClient(t, "test-key", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"quota exceeded"}`, http.StatusForbidden)
	})

	_, err := client.Directions(context.Background(), domain.Coordinate{}, domain.Coordinate{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestDirections_MalformedResponse(t *testing.T) {
	client, _ := newTestClient(t, "test-key", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{{{not json`))
	})

	_, err := client.Directions(context.Background(), domain.Coordinate{}, domain.Coordinate{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode directions response")
}
