package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/nimbus-cloud/nimbus-client/internal/constants"
	"github.com/nimbus-cloud/nimbus-client/pkg/nimbus"
	"github.com/nimbus-cloud/nimbus-client/pkg/nimbusclient"
)

// Output formats.
const (
	OutputFormatJSON  = "json"
	OutputFormatYAML  = "yaml"
	OutputFormatTable = "table"

	// NotAvailable fills table cells with no value.
	NotAvailable = "N/A"
)

// Common static errors used throughout the commands package.
var (
	ErrManifestFileRequired    = errors.New("manifest file is required")
	ErrAttributeFormat         = errors.New("attributes must be key=value pairs")
	ErrNoEndpointTargeted      = errors.New("no endpoint targeted; run 'nimbus target --endpoint URL'")
	ErrUnknownConfigurationKey = errors.New("unknown configuration key")
	ErrInvalidCacheType        = errors.New("cache type must be memory, nats, or none")
)

// CreateClient builds a nimbus client from the current CLI configuration.
func CreateClient() (nimbus.Client, error) {
	endpoint := viper.GetString("endpoint")
	if endpoint == "" {
		return nil, ErrNoEndpointTargeted
	}

	config := &nimbus.Config{
		Endpoint: endpoint,
		APIToken: viper.GetString("token"),
	}

	cacheConfig, err := cacheConfigFromViper()
	if err != nil {
		return nil, err
	}

	config.Cache = cacheConfig

	client, err := nimbusclient.New(config)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return client, nil
}

// cacheConfigFromViper reads the optional cache settings:
//
//	cache:
//	  type: memory | nats | none
//	  nats_url: nats://localhost:4222
//	  nats_bucket: nimbus-cache
func cacheConfigFromViper() (*nimbus.CacheConfig, error) {
	cacheType := viper.GetString("cache.type")
	if cacheType == "" {
		return nil, nil
	}

	switch nimbus.CacheType(cacheType) {
	case nimbus.CacheTypeMemory:
		return &nimbus.CacheConfig{
			Type:   nimbus.CacheTypeMemory,
			Memory: &nimbus.MemoryCacheConfig{MaxSize: constants.DefaultCacheSize},
		}, nil

	case nimbus.CacheTypeNATS:
		return &nimbus.CacheConfig{
			Type: nimbus.CacheTypeNATS,
			NATS: &nimbus.NATSKVConfig{
				URL:    viper.GetString("cache.nats_url"),
				Bucket: viper.GetString("cache.nats_bucket"),
				TTL:    constants.DefaultCacheTTL,
			},
		}, nil

	case nimbus.CacheTypeNone:
		return &nimbus.CacheConfig{Type: nimbus.CacheTypeNone}, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidCacheType, cacheType)
	}
}

// renderOutput writes v as JSON or YAML per the --output flag, returning
// false when the caller should render a table instead.
func renderOutput(v interface{}) (bool, error) {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")

		if err := encoder.Encode(v); err != nil {
			return true, fmt.Errorf("encoding JSON output: %w", err)
		}

		return true, nil

	case OutputFormatYAML:
		encoder := yaml.NewEncoder(os.Stdout)
		defer func() {
			_ = encoder.Close()
		}()

		if err := encoder.Encode(v); err != nil {
			return true, fmt.Errorf("encoding YAML output: %w", err)
		}

		return true, nil

	default:
		return false, nil
	}
}

// truncate shortens long values for table cells.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}

	return s[:max-3] + "..."
}

// orNA maps an empty string to the table placeholder.
func orNA(s string) string {
	if s == "" {
		return NotAvailable
	}

	return s
}

// parseKeyValuePairs turns repeated key=value flags into a map. The returned
// map is non-nil only when at least one pair was given, preserving the
// unset-vs-empty distinction for the input types.
func parseKeyValuePairs(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	result := make(map[string]string, len(pairs))

	for _, pair := range pairs {
		key, value, found := cutPair(pair)
		if !found {
			return nil, fmt.Errorf("%w: %q", ErrAttributeFormat, pair)
		}

		result[key] = value
	}

	return result, nil
}

func cutPair(pair string) (string, string, bool) {
	for i := 0; i < len(pair); i++ {
		if pair[i] == '=' {
			return pair[:i], pair[i+1:], true
		}
	}

	return pair, "", false
}
