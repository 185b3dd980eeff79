package nimbus_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbus-cloud/nimbus-client/pkg/nimbus"
)

func TestStartQueryExecutionInput_Request(t *testing.T) {
	t.Parallel()

	t.Run("serializes present fields", func(t *testing.T) {
		t.Parallel()

		input := &nimbus.StartQueryExecutionInput{
			QueryString:        nimbus.String("SELECT * FROM orders"),
			WorkGroup:          nimbus.String("analytics"),
			ClientRequestToken: nimbus.String("token-1"),
			ResultConfiguration: &nimbus.ResultConfiguration{
				OutputLocation: nimbus.String("nimbus://results/orders/"),
			},
		}

		req, err := input.Request()
		require.NoError(t, err)
		assert.Equal(t, "NimbusQuery.StartQueryExecution", req.Headers.Get("X-Nimbus-Target"))
		assert.JSONEq(t, `{
			"QueryString": "SELECT * FROM orders",
			"WorkGroup": "analytics",
			"ClientRequestToken": "token-1",
			"ResultConfiguration": {"OutputLocation": "nimbus://results/orders/"}
		}`, string(req.Body))
	})

	t.Run("empty parameters serialize to an empty object", func(t *testing.T) {
		t.Parallel()

		input := &nimbus.StartQueryExecutionInput{
			QueryString: nimbus.String("SELECT 1"),
			Parameters:  map[string]string{},
		}

		req, err := input.Request()
		require.NoError(t, err)
		assert.JSONEq(t, `{"QueryString":"SELECT 1","Parameters":{}}`, string(req.Body))
	})

	t.Run("missing query string fails", func(t *testing.T) {
		t.Parallel()

		_, err := (&nimbus.StartQueryExecutionInput{}).Request()

		missingErr := &nimbus.MissingRequiredFieldError{}
		require.ErrorAs(t, err, &missingErr)
		assert.Equal(t, "QueryString", missingErr.Field)
	})
}

func TestGetQueryExecutionInput_Request(t *testing.T) {
	t.Parallel()

	input := &nimbus.GetQueryExecutionInput{QueryExecutionID: nimbus.String("qe-123")}

	req, err := input.Request()
	require.NoError(t, err)
	assert.Equal(t, "NimbusQuery.GetQueryExecution", req.Headers.Get("X-Nimbus-Target"))
	assert.JSONEq(t, `{"QueryExecutionId":"qe-123"}`, string(req.Body))
}

func TestGetQueryResultsInput_Request(t *testing.T) {
	t.Parallel()

	input := &nimbus.GetQueryResultsInput{
		QueryExecutionID: nimbus.String("qe-123"),
		MaxResults:       nimbus.Int32(100),
		NextToken:        nimbus.String("page-2"),
	}

	req, err := input.Request()
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"QueryExecutionId": "qe-123",
		"MaxResults": 100,
		"NextToken": "page-2"
	}`, string(req.Body))
}

func TestQueryExecution_Hydration(t *testing.T) {
	t.Parallel()

	// JSON-target services emit epoch seconds for temporal fields.
	data := []byte(`{
		"QueryExecution": {
			"QueryExecutionId": "qe-123",
			"Query": "SELECT * FROM orders",
			"State": "SUCCEEDED",
			"Statistics": {"EngineExecutionTimeMillis": 1200, "DataScannedBytes": 4096},
			"SubmissionDateTime": 1742290200,
			"CompletionDateTime": 1742290200.5
		}
	}`)

	var out nimbus.GetQueryExecutionOutput
	require.NoError(t, json.Unmarshal(data, &out))

	execution := out.QueryExecution
	assert.Equal(t, "qe-123", execution.QueryExecutionID)
	assert.Equal(t, nimbus.QueryStateSucceeded, execution.State)
	assert.True(t, execution.State.Terminal())
	require.NotNil(t, execution.Statistics)
	assert.Equal(t, int64(1200), execution.Statistics.EngineExecutionTimeMillis)
	assert.True(t, execution.SubmissionDateTime.Equal(time.Date(2025, 3, 18, 9, 30, 0, 0, time.UTC)))
	assert.True(t, execution.CompletionDateTime.After(execution.SubmissionDateTime.Time))
}

func TestQueryExecution_MalformedTimestamp(t *testing.T) {
	t.Parallel()

	data := []byte(`{"QueryExecution":{"QueryExecutionId":"qe-1","SubmissionDateTime":"not a time"}}`)

	var out nimbus.GetQueryExecutionOutput
	err := json.Unmarshal(data, &out)
	require.Error(t, err)

	malformedErr := &nimbus.MalformedResponseError{}
	require.ErrorAs(t, err, &malformedErr)
}

func TestResultSet_Hydration(t *testing.T) {
	t.Parallel()

	data := []byte(`{
		"ResultSet": {
			"ColumnInfo": [
				{"Name": "order_id", "Type": "varchar"},
				{"Name": "total", "Type": "decimal"}
			],
			"Rows": [
				{"Data": [{"VarCharValue": "ord-1"}, {"VarCharValue": "19.99"}]},
				{"Data": [{"VarCharValue": "ord-2"}, {"VarCharValue": null}]}
			]
		},
		"NextToken": "page-2"
	}`)

	var out nimbus.GetQueryResultsOutput
	require.NoError(t, json.Unmarshal(data, &out))

	require.Len(t, out.ResultSet.ColumnInfo, 2)
	assert.Equal(t, "order_id", out.ResultSet.ColumnInfo[0].Name)
	require.Len(t, out.ResultSet.Rows, 2)
	assert.Equal(t, "ord-1", *out.ResultSet.Rows[0].Data[0].VarCharValue)

	// A SQL NULL arrives as a nil cell, distinct from an empty string.
	assert.Nil(t, out.ResultSet.Rows[1].Data[1].VarCharValue)
	require.NotNil(t, out.NextToken)
	assert.Equal(t, "page-2", *out.NextToken)
}

func TestQueryState(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state    nimbus.QueryState
		terminal bool
	}{
		{nimbus.QueryStateQueued, false},
		{nimbus.QueryStateRunning, false},
		{nimbus.QueryStateSucceeded, true},
		{nimbus.QueryStateFailed, true},
		{nimbus.QueryStateCancelled, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			t.Parallel()

			assert.True(t, tt.state.Member())
			assert.Equal(t, tt.terminal, tt.state.Terminal())
		})
	}

	assert.False(t, nimbus.QueryState("PONDERING").Member())
	assert.False(t, nimbus.QueryState("PONDERING").Terminal())
}

func TestListQueryExecutionsInput_Request(t *testing.T) {
	t.Parallel()

	t.Run("no filters means an empty body object", func(t *testing.T) {
		t.Parallel()

		req, err := (&nimbus.ListQueryExecutionsInput{}).Request()
		require.NoError(t, err)
		assert.JSONEq(t, `{}`, string(req.Body))
	})

	t.Run("work group filter", func(t *testing.T) {
		t.Parallel()

		input := &nimbus.ListQueryExecutionsInput{WorkGroup: nimbus.String("analytics")}

		req, err := input.Request()
		require.NoError(t, err)
		assert.JSONEq(t, `{"WorkGroup":"analytics"}`, string(req.Body))
	})
}

func TestStopQueryExecutionInput_Request(t *testing.T) {
	t.Parallel()

	_, err := (&nimbus.StopQueryExecutionInput{}).Request()

	missingErr := &nimbus.MissingRequiredFieldError{}
	require.ErrorAs(t, err, &missingErr)
	assert.Equal(t, "QueryExecutionId", missingErr.Field)
}
