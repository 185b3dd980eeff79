package nimbus

import (
	"context"
)

// QueuesClient exposes the Nimbus Queues operations.
type QueuesClient interface {
	CreateQueue(ctx context.Context, input *CreateQueueInput) (*CreateQueueOutput, error)
	GetQueueURL(ctx context.Context, input *GetQueueURLInput) (*GetQueueURLOutput, error)
	GetQueueAttributes(ctx context.Context, input *GetQueueAttributesInput) (*GetQueueAttributesOutput, error)
	SetQueueAttributes(ctx context.Context, input *SetQueueAttributesInput) (*SetQueueAttributesOutput, error)
	ListQueues(ctx context.Context, input *ListQueuesInput) (*ListQueuesOutput, error)
	DeleteQueue(ctx context.Context, input *DeleteQueueInput) (*DeleteQueueOutput, error)
	TagQueue(ctx context.Context, input *TagQueueInput) (*TagQueueOutput, error)
	ListQueueTags(ctx context.Context, input *ListQueueTagsInput) (*ListQueueTagsOutput, error)
	SendMessage(ctx context.Context, input *SendMessageInput) (*SendMessageOutput, error)
	SendMessageBatch(ctx context.Context, input *SendMessageBatchInput) (*SendMessageBatchOutput, error)
	ReceiveMessage(ctx context.Context, input *ReceiveMessageInput) (*ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, input *DeleteMessageInput) (*DeleteMessageOutput, error)
}

// FunctionsClient exposes the Nimbus Functions operations.
type FunctionsClient interface {
	CreateFunction(ctx context.Context, input *CreateFunctionInput) (*CreateFunctionOutput, error)
	GetFunction(ctx context.Context, input *GetFunctionInput) (*GetFunctionOutput, error)
	ListFunctions(ctx context.Context, input *ListFunctionsInput) (*ListFunctionsOutput, error)
	UpdateFunctionConfiguration(ctx context.Context, input *UpdateFunctionConfigurationInput) (*UpdateFunctionConfigurationOutput, error)
	DeleteFunction(ctx context.Context, input *DeleteFunctionInput) (*DeleteFunctionOutput, error)
	Invoke(ctx context.Context, input *InvokeInput) (*InvokeOutput, error)
}

// QueryClient exposes the Nimbus Query operations.
type QueryClient interface {
	StartQueryExecution(ctx context.Context, input *StartQueryExecutionInput) (*StartQueryExecutionOutput, error)
	GetQueryExecution(ctx context.Context, input *GetQueryExecutionInput) (*GetQueryExecutionOutput, error)
	GetQueryResults(ctx context.Context, input *GetQueryResultsInput) (*GetQueryResultsOutput, error)
	StopQueryExecution(ctx context.Context, input *StopQueryExecutionInput) (*StopQueryExecutionOutput, error)
	ListQueryExecutions(ctx context.Context, input *ListQueryExecutionsInput) (*ListQueryExecutionsOutput, error)
}

// Client is the aggregate Nimbus client.
type Client interface {
	Queues() QueuesClient
	Functions() FunctionsClient
	Query() QueryClient
}

// Config configures a Nimbus client.
type Config struct {
	// Endpoint is the Nimbus API endpoint, e.g. https://api.eu-central.nimbus.example
	Endpoint string

	// APIToken authenticates every request. Request signing is not a client
	// concern; the token travels as a bearer credential.
	APIToken string

	// UserAgent overrides the default user agent.
	UserAgent string

	// Cache configures the optional read-through response cache.
	Cache *CacheConfig

	// Logger receives transport debug logging when set.
	Logger Logger

	// Debug enables request/response logging through Logger.
	Debug bool
}

// Logger is the minimal logging interface the client depends on. Adapters
// for structured loggers are one method set away.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// NoopLogger discards everything.
type NoopLogger struct{}

func (NoopLogger) Debug(string, map[string]interface{}) {}
func (NoopLogger) Info(string, map[string]interface{})  {}
func (NoopLogger) Warn(string, map[string]interface{})  {}
func (NoopLogger) Error(string, map[string]interface{}) {}
