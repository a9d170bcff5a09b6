package ha

import (
	"context"
	"fmt"
	"os"
)

// Environment variables consumed by DiscoverFromEnvironment.
const (
	// EnvRESTURL supplies the REST base URL. Required.
	EnvRESTURL = "HA_REST_URL"

	// EnvToken supplies the long-lived access token. Optional for REST
	// discovery, required for the WebSocket phase.
	EnvToken = "HA_TOKEN"
)

// DiscoverFromEnvironment runs a full discovery pass using environment
// credentials. Convenience entry point for the hadiscover CLI and for
// hubs configured purely through the environment.
//
// Returns:
//   - *DiscoveryResult: Combined REST and WebSocket snapshot
//   - error: ErrDiscovery if HA_REST_URL is unset or discovery fails,
//     ErrInvalidBaseURL if the URL fails validation
func DiscoverFromEnvironment(ctx context.Context, forceRefresh bool) (*DiscoveryResult, error) {
	baseURL := os.Getenv(EnvRESTURL)
	if baseURL == "" {
		return nil, fmt.Errorf("%w: environment variable %s is required for discovery", ErrDiscovery, EnvRESTURL)
	}

	conn, err := NewConnection(Config{
		BaseURL: baseURL,
		Token:   os.Getenv(EnvToken),
	})
	if err != nil {
		return nil, err
	}

	return conn.DiscoverAll(ctx, forceRefresh)
}
