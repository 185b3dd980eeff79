// Package nimbusclient provides the main entry point for creating Nimbus
// Cloud API clients.
package nimbusclient

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/nimbus-cloud/nimbus-client/internal/client"
	"github.com/nimbus-cloud/nimbus-client/pkg/nimbus"
)

// New creates a new Nimbus API client from config.
func New(config *nimbus.Config) (nimbus.Client, error) {
	if config == nil {
		return nil, nimbus.ErrConfigRequired
	}

	if config.Endpoint == "" {
		return nil, nimbus.ErrEndpointRequired
	}

	endpoint, err := normalizeEndpoint(config.Endpoint)
	if err != nil {
		return nil, err
	}

	config.Endpoint = endpoint

	nimbusClient, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return nimbusClient, nil
}

// normalizeEndpoint trims a trailing slash and defaults the scheme to https.
func normalizeEndpoint(endpoint string) (string, error) {
	endpoint = strings.TrimSuffix(endpoint, "/")

	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	parsed, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("parsing endpoint: %w", err)
	}

	if parsed.Host == "" {
		return "", fmt.Errorf("%w: %s", nimbus.ErrNoHostInURL, endpoint)
	}

	return endpoint, nil
}
