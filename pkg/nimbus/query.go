package nimbus

// targetQuery is the JSON-target service prefix for the query service.
const targetQuery = "NimbusQuery"

// QueryState enumerates the states a query execution moves through. Outputs
// carry the state as a plain string; the enum validates membership on demand.
type QueryState string

const (
	QueryStateQueued    QueryState = "QUEUED"
	QueryStateRunning   QueryState = "RUNNING"
	QueryStateSucceeded QueryState = "SUCCEEDED"
	QueryStateFailed    QueryState = "FAILED"
	QueryStateCancelled QueryState = "CANCELLED"
)

// Values returns the closed set of query states.
func (QueryState) Values() []QueryState {
	return []QueryState{QueryStateQueued, QueryStateRunning, QueryStateSucceeded, QueryStateFailed, QueryStateCancelled}
}

// Member reports whether the value belongs to the closed set.
func (s QueryState) Member() bool {
	for _, v := range s.Values() {
		if s == v {
			return true
		}
	}

	return false
}

// Terminal reports whether the state is final.
func (s QueryState) Terminal() bool {
	return s == QueryStateSucceeded || s == QueryStateFailed || s == QueryStateCancelled
}

// ResultConfiguration tells the query service where to write results.
type ResultConfiguration struct {
	// OutputLocation is required when the configuration is present.
	OutputLocation *string `json:"OutputLocation,omitempty"`
}

// StartQueryExecutionInput carries the fields for NimbusQuery.StartQueryExecution.
type StartQueryExecutionInput struct {
	// QueryString is required.
	QueryString *string

	WorkGroup           *string
	ClientRequestToken  *string
	ResultConfiguration *ResultConfiguration

	// Parameters is optional; a non-nil empty map is sent as {}.
	Parameters map[string]string
}

// Request serializes the input for NimbusQuery.StartQueryExecution.
func (in *StartQueryExecutionInput) Request() (*Request, error) {
	if in.QueryString == nil {
		return nil, &MissingRequiredFieldError{Input: "StartQueryExecutionInput", Field: "QueryString"}
	}

	payload := body{}
	payload.setString("QueryString", in.QueryString)
	payload.setString("WorkGroup", in.WorkGroup)
	payload.setString("ClientRequestToken", in.ClientRequestToken)

	if in.ResultConfiguration != nil {
		payload.set("ResultConfiguration", in.ResultConfiguration)
	}

	if in.Parameters != nil {
		payload.set("Parameters", in.Parameters)
	}

	return newTargetRequest(targetQuery+".StartQueryExecution", payload)
}

// StartQueryExecutionOutput is the hydrated NimbusQuery.StartQueryExecution response.
type StartQueryExecutionOutput struct {
	QueryExecutionID string `json:"QueryExecutionId" yaml:"query_execution_id"`
}

// QueryStatistics carries execution counters for one query.
type QueryStatistics struct {
	EngineExecutionTimeMillis int64 `json:"EngineExecutionTimeMillis" yaml:"engine_execution_time_millis"`
	DataScannedBytes          int64 `json:"DataScannedBytes"          yaml:"data_scanned_bytes"`
}

// QueryExecution is the hydrated shape of one query execution.
type QueryExecution struct {
	QueryExecutionID   string           `json:"QueryExecutionId"             yaml:"query_execution_id"`
	Query              string           `json:"Query,omitempty"              yaml:"query,omitempty"`
	WorkGroup          string           `json:"WorkGroup,omitempty"          yaml:"work_group,omitempty"`
	State              QueryState       `json:"State,omitempty"              yaml:"state,omitempty"`
	StateChangeReason  string           `json:"StateChangeReason,omitempty"  yaml:"state_change_reason,omitempty"`
	Statistics         *QueryStatistics `json:"Statistics,omitempty"         yaml:"statistics,omitempty"`
	SubmissionDateTime Timestamp        `json:"SubmissionDateTime,omitzero"  yaml:"submission_date_time,omitempty"`
	CompletionDateTime Timestamp        `json:"CompletionDateTime,omitzero"  yaml:"completion_date_time,omitempty"`
}

// GetQueryExecutionInput carries the fields for NimbusQuery.GetQueryExecution.
type GetQueryExecutionInput struct {
	// QueryExecutionID is required.
	QueryExecutionID *string
}

// Request serializes the input for NimbusQuery.GetQueryExecution.
func (in *GetQueryExecutionInput) Request() (*Request, error) {
	if in.QueryExecutionID == nil {
		return nil, &MissingRequiredFieldError{Input: "GetQueryExecutionInput", Field: "QueryExecutionId"}
	}

	payload := body{}
	payload.setString("QueryExecutionId", in.QueryExecutionID)

	return newTargetRequest(targetQuery+".GetQueryExecution", payload)
}

// GetQueryExecutionOutput is the hydrated NimbusQuery.GetQueryExecution response.
type GetQueryExecutionOutput struct {
	QueryExecution QueryExecution `json:"QueryExecution" yaml:"query_execution"`
}

// Datum is one result cell; a nil value is a SQL NULL.
type Datum struct {
	VarCharValue *string `json:"VarCharValue" yaml:"var_char_value"`
}

// Row is one result row.
type Row struct {
	Data []Datum `json:"Data" yaml:"data"`
}

// ColumnInfo describes one result column.
type ColumnInfo struct {
	Name string `json:"Name" yaml:"name"`
	Type string `json:"Type" yaml:"type"`
}

// ResultSet is the hydrated result table of a finished query.
type ResultSet struct {
	ColumnInfo []ColumnInfo `json:"ColumnInfo" yaml:"column_info"`
	Rows       []Row        `json:"Rows"       yaml:"rows"`
}

// GetQueryResultsInput carries the fields for NimbusQuery.GetQueryResults.
type GetQueryResultsInput struct {
	// QueryExecutionID is required.
	QueryExecutionID *string

	MaxResults *int32
	NextToken  *string
}

// Request serializes the input for NimbusQuery.GetQueryResults.
func (in *GetQueryResultsInput) Request() (*Request, error) {
	if in.QueryExecutionID == nil {
		return nil, &MissingRequiredFieldError{Input: "GetQueryResultsInput", Field: "QueryExecutionId"}
	}

	payload := body{}
	payload.setString("QueryExecutionId", in.QueryExecutionID)
	payload.setInt32("MaxResults", in.MaxResults)
	payload.setString("NextToken", in.NextToken)

	return newTargetRequest(targetQuery+".GetQueryResults", payload)
}

// GetQueryResultsOutput is the hydrated NimbusQuery.GetQueryResults response.
type GetQueryResultsOutput struct {
	ResultSet ResultSet `json:"ResultSet" yaml:"result_set"`
	NextToken *string   `json:"NextToken" yaml:"next_token"`
}

// StopQueryExecutionInput carries the fields for NimbusQuery.StopQueryExecution.
type StopQueryExecutionInput struct {
	// QueryExecutionID is required.
	QueryExecutionID *string
}

// Request serializes the input for NimbusQuery.StopQueryExecution.
func (in *StopQueryExecutionInput) Request() (*Request, error) {
	if in.QueryExecutionID == nil {
		return nil, &MissingRequiredFieldError{Input: "StopQueryExecutionInput", Field: "QueryExecutionId"}
	}

	payload := body{}
	payload.setString("QueryExecutionId", in.QueryExecutionID)

	return newTargetRequest(targetQuery+".StopQueryExecution", payload)
}

// StopQueryExecutionOutput is the hydrated NimbusQuery.StopQueryExecution response.
type StopQueryExecutionOutput struct{}

// ListQueryExecutionsInput carries the fields for NimbusQuery.ListQueryExecutions.
type ListQueryExecutionsInput struct {
	WorkGroup  *string
	MaxResults *int32
	NextToken  *string
}

// Request serializes the input for NimbusQuery.ListQueryExecutions.
func (in *ListQueryExecutionsInput) Request() (*Request, error) {
	payload := body{}
	payload.setString("WorkGroup", in.WorkGroup)
	payload.setInt32("MaxResults", in.MaxResults)
	payload.setString("NextToken", in.NextToken)

	return newTargetRequest(targetQuery+".ListQueryExecutions", payload)
}

// ListQueryExecutionsOutput is the hydrated NimbusQuery.ListQueryExecutions response.
type ListQueryExecutionsOutput struct {
	QueryExecutionIDs []string `json:"QueryExecutionIds" yaml:"query_execution_ids"`
	NextToken         *string  `json:"NextToken"         yaml:"next_token"`
}
