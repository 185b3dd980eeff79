package client

import (
	"context"

	"github.com/nimbus-cloud/nimbus-client/pkg/nimbus"
)

// QueryClient implements nimbus.QueryClient.
type QueryClient struct {
	requester nimbus.Requester
	cache     nimbus.Cache
}

// NewQueryClient creates a new query client.
func NewQueryClient(requester nimbus.Requester) *QueryClient {
	return &QueryClient{requester: requester, cache: nimbus.NewNoOpCache()}
}

// StartQueryExecution implements nimbus.QueryClient.StartQueryExecution.
func (c *QueryClient) StartQueryExecution(ctx context.Context, input *nimbus.StartQueryExecutionInput) (*nimbus.StartQueryExecutionOutput, error) {
	return execute[nimbus.StartQueryExecutionOutput](ctx, c.requester, input, "starting query execution")
}

// GetQueryExecution implements nimbus.QueryClient.GetQueryExecution. Not
// cached: the execution state changes underneath us until it is terminal.
func (c *QueryClient) GetQueryExecution(ctx context.Context, input *nimbus.GetQueryExecutionInput) (*nimbus.GetQueryExecutionOutput, error) {
	return execute[nimbus.GetQueryExecutionOutput](ctx, c.requester, input, "getting query execution")
}

// GetQueryResults implements nimbus.QueryClient.GetQueryResults. Results of
// a finished query never change, so they cache well.
func (c *QueryClient) GetQueryResults(ctx context.Context, input *nimbus.GetQueryResultsInput) (*nimbus.GetQueryResultsOutput, error) {
	return executeCached[nimbus.GetQueryResultsOutput](ctx, c.requester, c.cache, input, "getting query results")
}

// StopQueryExecution implements nimbus.QueryClient.StopQueryExecution.
func (c *QueryClient) StopQueryExecution(ctx context.Context, input *nimbus.StopQueryExecutionInput) (*nimbus.StopQueryExecutionOutput, error) {
	return execute[nimbus.StopQueryExecutionOutput](ctx, c.requester, input, "stopping query execution")
}

// ListQueryExecutions implements nimbus.QueryClient.ListQueryExecutions.
func (c *QueryClient) ListQueryExecutions(ctx context.Context, input *nimbus.ListQueryExecutionsInput) (*nimbus.ListQueryExecutionsOutput, error) {
	return execute[nimbus.ListQueryExecutionsOutput](ctx, c.requester, input, "listing query executions")
}
