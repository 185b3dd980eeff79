package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// InvokeHTTPTimeout covers synchronous function invocations, which may
	// run as long as the function's own timeout.
	InvokeHTTPTimeout = 120 * time.Second

	// ShortHTTPTimeout is used for quick operations.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits for the transport.
const (
	// DefaultRetryMax is the default maximum number of retries.
	DefaultRetryMax = 4

	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Cache defaults.
const (
	// DefaultCacheSize is the maximum number of entries in the memory cache.
	DefaultCacheSize = 1000

	// DefaultCacheTTL is how long cached read responses stay valid.
	DefaultCacheTTL = 30 * time.Second
)

// Client identification.
const (
	// DefaultUserAgent identifies this client on the wire.
	DefaultUserAgent = "nimbus-client-go"
)

// Environment variables the library reads.
const (
	// EnvAPIToken is the environment variable holding the API token.
	EnvAPIToken = "NIMBUS_API_TOKEN"

	// EnvEndpoint is the environment variable holding the API endpoint.
	EnvEndpoint = "NIMBUS_ENDPOINT"
)

// Display limits for the CLI.
const (
	// MaxTableCellWidth truncates long values in table output.
	MaxTableCellWidth = 80

	// DefaultListLimit is the page size the CLI asks for.
	DefaultListLimit = 50
)
