// Package integration exercises whole client workflows against an in-process
// fake of the Nimbus API.
package integration

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbus-cloud/nimbus-client/pkg/nimbus"
	"github.com/nimbus-cloud/nimbus-client/pkg/nimbusclient"
)

func newWorkflowClient(t *testing.T) nimbus.Client {
	t.Helper()

	server := httptest.NewServer(newFakeNimbus())
	t.Cleanup(server.Close)

	client, err := nimbusclient.New(&nimbus.Config{
		Endpoint: server.URL,
		APIToken: "workflow-token",
	})
	require.NoError(t, err)

	return client
}

func TestQueueLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	client := newWorkflowClient(t)
	queues := client.Queues()

	created, err := queues.CreateQueue(ctx, &nimbus.CreateQueueInput{
		QueueName: nimbus.String("orders"),
		Attributes: map[nimbus.QueueAttributeName]string{
			nimbus.QueueAttributeVisibilityTimeout: "30",
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.QueueURL)

	resolved, err := queues.GetQueueURL(ctx, &nimbus.GetQueueURLInput{QueueName: nimbus.String("orders")})
	require.NoError(t, err)
	assert.Equal(t, created.QueueURL, resolved.QueueURL)

	_, err = queues.TagQueue(ctx, &nimbus.TagQueueInput{
		QueueURL: nimbus.String(created.QueueURL),
		Tags:     map[string]string{"team": "payments"},
	})
	require.NoError(t, err)

	tags, err := queues.ListQueueTags(ctx, &nimbus.ListQueueTagsInput{QueueURL: nimbus.String(created.QueueURL)})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"team": "payments"}, tags.Tags)

	_, err = queues.SetQueueAttributes(ctx, &nimbus.SetQueueAttributesInput{
		QueueURL:   nimbus.String(created.QueueURL),
		Attributes: map[nimbus.QueueAttributeName]string{nimbus.QueueAttributeVisibilityTimeout: "60"},
	})
	require.NoError(t, err)

	attrs, err := queues.GetQueueAttributes(ctx, &nimbus.GetQueueAttributesInput{
		QueueURL: nimbus.String(created.QueueURL),
	})
	require.NoError(t, err)
	assert.Equal(t, "60", attrs.Attributes["VisibilityTimeout"])

	sent, err := queues.SendMessage(ctx, &nimbus.SendMessageInput{
		QueueURL:    nimbus.String(created.QueueURL),
		MessageBody: nimbus.String(`{"order_id":"ord-1"}`),
	})
	require.NoError(t, err)
	require.NotEmpty(t, sent.MessageID)

	received, err := queues.ReceiveMessage(ctx, &nimbus.ReceiveMessageInput{
		QueueURL:            nimbus.String(created.QueueURL),
		MaxNumberOfMessages: nimbus.Int32(10),
	})
	require.NoError(t, err)
	require.Len(t, received.Messages, 1)
	assert.Equal(t, sent.MessageID, received.Messages[0].MessageID)
	assert.Equal(t, `{"order_id":"ord-1"}`, received.Messages[0].Body)

	_, err = queues.DeleteMessage(ctx, &nimbus.DeleteMessageInput{
		QueueURL:      nimbus.String(created.QueueURL),
		ReceiptHandle: nimbus.String(received.Messages[0].ReceiptHandle),
	})
	require.NoError(t, err)

	drained, err := queues.ReceiveMessage(ctx, &nimbus.ReceiveMessageInput{
		QueueURL: nimbus.String(created.QueueURL),
	})
	require.NoError(t, err)
	assert.Empty(t, drained.Messages)

	_, err = queues.DeleteQueue(ctx, &nimbus.DeleteQueueInput{QueueURL: nimbus.String(created.QueueURL)})
	require.NoError(t, err)

	_, err = queues.GetQueueURL(ctx, &nimbus.GetQueueURLInput{QueueName: nimbus.String("orders")})
	require.Error(t, err)
	assert.True(t, nimbus.IsNotFound(err))
}

func TestFunctionDeployAndInvoke(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	client := newWorkflowClient(t)
	functions := client.Functions()

	created, err := functions.CreateFunction(ctx, &nimbus.CreateFunctionInput{
		FunctionName: nimbus.String("checkout"),
		Runtime:      runtimePtr(nimbus.RuntimeGo1),
		Handler:      nimbus.String("main"),
		MemorySize:   nimbus.Int32(256),
		Environment:  &nimbus.Environment{Variables: map[string]string{"STAGE": "test"}},
	})
	require.NoError(t, err)
	assert.Equal(t, nimbus.FunctionStatePending, created.State)
	require.NotEmpty(t, created.FunctionID)

	fetched, err := functions.GetFunction(ctx, &nimbus.GetFunctionInput{FunctionName: nimbus.String("checkout")})
	require.NoError(t, err)
	assert.Equal(t, nimbus.FunctionStateActive, fetched.Configuration.State)
	assert.Equal(t, nimbus.RuntimeGo1, fetched.Configuration.Runtime)

	updated, err := functions.UpdateFunctionConfiguration(ctx, &nimbus.UpdateFunctionConfigurationInput{
		FunctionName: nimbus.String("checkout"),
		Timeout:      nimbus.Int32(60),
	})
	require.NoError(t, err)
	assert.Equal(t, int32(60), updated.Timeout)

	listed, err := functions.ListFunctions(ctx, &nimbus.ListFunctionsInput{})
	require.NoError(t, err)
	require.Len(t, listed.Functions, 1)
	assert.Equal(t, "checkout", listed.Functions[0].FunctionName)

	invoked, err := functions.Invoke(ctx, &nimbus.InvokeInput{
		FunctionName: nimbus.String("checkout"),
		Payload:      nimbus.Document(`{"order_id":"ord-1"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, 200, invoked.StatusCode)
	assert.JSONEq(t, `{"order_id":"ord-1"}`, string(invoked.Payload))

	async, err := functions.Invoke(ctx, &nimbus.InvokeInput{
		FunctionName:   nimbus.String("checkout"),
		InvocationType: invocationTypePtr(nimbus.InvocationTypeEvent),
		Payload:        nimbus.Document(`{"order_id":"ord-2"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, 202, async.StatusCode)
	assert.Empty(t, async.Payload)

	_, err = functions.DeleteFunction(ctx, &nimbus.DeleteFunctionInput{FunctionName: nimbus.String("checkout")})
	require.NoError(t, err)

	_, err = functions.GetFunction(ctx, &nimbus.GetFunctionInput{FunctionName: nimbus.String("checkout")})
	require.Error(t, err)
	assert.True(t, nimbus.IsNotFound(err))
}

func TestQueryRunToCompletion(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	client := newWorkflowClient(t)
	query := client.Query()

	started, err := query.StartQueryExecution(ctx, &nimbus.StartQueryExecutionInput{
		QueryString: nimbus.String("SELECT count(*) AS total FROM orders"),
		WorkGroup:   nimbus.String("analytics"),
	})
	require.NoError(t, err)
	require.NotEmpty(t, started.QueryExecutionID)

	var state nimbus.QueryState

	for range 10 {
		status, err := query.GetQueryExecution(ctx, &nimbus.GetQueryExecutionInput{
			QueryExecutionID: nimbus.String(started.QueryExecutionID),
		})
		require.NoError(t, err)

		state = status.QueryExecution.State
		if state.Terminal() {
			break
		}
	}

	require.Equal(t, nimbus.QueryStateSucceeded, state)

	results, err := query.GetQueryResults(ctx, &nimbus.GetQueryResultsInput{
		QueryExecutionID: nimbus.String(started.QueryExecutionID),
	})
	require.NoError(t, err)
	require.Len(t, results.ResultSet.Rows, 1)
	require.Len(t, results.ResultSet.Rows[0].Data, 1)
	assert.Equal(t, "42", *results.ResultSet.Rows[0].Data[0].VarCharValue)

	listed, err := query.ListQueryExecutions(ctx, &nimbus.ListQueryExecutionsInput{})
	require.NoError(t, err)
	assert.Contains(t, listed.QueryExecutionIDs, started.QueryExecutionID)

	stopped, err := query.StartQueryExecution(ctx, &nimbus.StartQueryExecutionInput{
		QueryString: nimbus.String("SELECT * FROM orders"),
	})
	require.NoError(t, err)

	_, err = query.StopQueryExecution(ctx, &nimbus.StopQueryExecutionInput{
		QueryExecutionID: nimbus.String(stopped.QueryExecutionID),
	})
	require.NoError(t, err)

	status, err := query.GetQueryExecution(ctx, &nimbus.GetQueryExecutionInput{
		QueryExecutionID: nimbus.String(stopped.QueryExecutionID),
	})
	require.NoError(t, err)
	assert.Equal(t, nimbus.QueryStateCancelled, status.QueryExecution.State)
}

func runtimePtr(r nimbus.Runtime) *nimbus.Runtime { return &r }

func invocationTypePtr(t nimbus.InvocationType) *nimbus.InvocationType { return &t }
