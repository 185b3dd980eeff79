package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/nimbus-cloud/nimbus-client/pkg/nimbus"
)

// FunctionsClient implements nimbus.FunctionsClient.
type FunctionsClient struct {
	requester nimbus.Requester
	cache     nimbus.Cache
}

// NewFunctionsClient creates a new functions client.
func NewFunctionsClient(requester nimbus.Requester) *FunctionsClient {
	return &FunctionsClient{requester: requester, cache: nimbus.NewNoOpCache()}
}

// CreateFunction implements nimbus.FunctionsClient.CreateFunction.
func (c *FunctionsClient) CreateFunction(ctx context.Context, input *nimbus.CreateFunctionInput) (*nimbus.CreateFunctionOutput, error) {
	out, err := execute[nimbus.CreateFunctionOutput](ctx, c.requester, input, "creating function")
	if err != nil {
		return nil, err
	}

	invalidate(ctx, c.cache)

	return out, nil
}

// GetFunction implements nimbus.FunctionsClient.GetFunction.
func (c *FunctionsClient) GetFunction(ctx context.Context, input *nimbus.GetFunctionInput) (*nimbus.GetFunctionOutput, error) {
	return executeCached[nimbus.GetFunctionOutput](ctx, c.requester, c.cache, input, "getting function")
}

// ListFunctions implements nimbus.FunctionsClient.ListFunctions.
func (c *FunctionsClient) ListFunctions(ctx context.Context, input *nimbus.ListFunctionsInput) (*nimbus.ListFunctionsOutput, error) {
	return executeCached[nimbus.ListFunctionsOutput](ctx, c.requester, c.cache, input, "listing functions")
}

// UpdateFunctionConfiguration implements nimbus.FunctionsClient.UpdateFunctionConfiguration.
func (c *FunctionsClient) UpdateFunctionConfiguration(ctx context.Context, input *nimbus.UpdateFunctionConfigurationInput) (*nimbus.UpdateFunctionConfigurationOutput, error) {
	out, err := execute[nimbus.UpdateFunctionConfigurationOutput](ctx, c.requester, input, "updating function configuration")
	if err != nil {
		return nil, err
	}

	invalidate(ctx, c.cache)

	return out, nil
}

// DeleteFunction implements nimbus.FunctionsClient.DeleteFunction.
func (c *FunctionsClient) DeleteFunction(ctx context.Context, input *nimbus.DeleteFunctionInput) (*nimbus.DeleteFunctionOutput, error) {
	out, err := execute[nimbus.DeleteFunctionOutput](ctx, c.requester, input, "deleting function")
	if err != nil {
		return nil, err
	}

	invalidate(ctx, c.cache)

	return out, nil
}

// Invoke implements nimbus.FunctionsClient.Invoke. The output hydrates from
// the response envelope rather than a JSON body: the payload is carried
// verbatim, the function error and log tail arrive as headers.
func (c *FunctionsClient) Invoke(ctx context.Context, input *nimbus.InvokeInput) (*nimbus.InvokeOutput, error) {
	req, err := input.Request()
	if err != nil {
		return nil, err
	}

	resp, err := c.requester.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("invoking function: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, nimbus.DecodeErrorResponse(resp)
	}

	out := &nimbus.InvokeOutput{
		StatusCode: resp.StatusCode,
		Payload:    resp.Body,
	}

	if resp.Headers != nil {
		out.FunctionError = resp.Headers.Get(nimbus.HeaderFunctionError)
		out.LogResult = resp.Headers.Get(nimbus.HeaderLogResult)
	}

	return out, nil
}
