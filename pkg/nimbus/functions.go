package nimbus

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// functionsPrefix is the REST API version prefix for the functions service.
const functionsPrefix = "/2025-03-18/functions"

// Invocation option headers fixed by the functions service contract.
const (
	HeaderInvocationType = "X-Nimbus-Invocation-Type"
	HeaderLogType        = "X-Nimbus-Log-Type"
	HeaderFunctionError  = "X-Nimbus-Function-Error"
	HeaderLogResult      = "X-Nimbus-Log-Result"
)

// Runtime enumerates the execution runtimes the functions service offers.
type Runtime string

const (
	RuntimeGo1       Runtime = "go1"
	RuntimePython312 Runtime = "python3.12"
	RuntimeNodeJS20  Runtime = "nodejs20"
	RuntimeJava21    Runtime = "java21"
	RuntimeCustom    Runtime = "custom"
)

// Values returns the closed set of runtimes.
func (Runtime) Values() []Runtime {
	return []Runtime{RuntimeGo1, RuntimePython312, RuntimeNodeJS20, RuntimeJava21, RuntimeCustom}
}

// Member reports whether the value belongs to the closed set.
func (r Runtime) Member() bool {
	for _, v := range r.Values() {
		if r == v {
			return true
		}
	}

	return false
}

// InvocationType enumerates how an invocation is executed.
type InvocationType string

const (
	// InvocationTypeRequestResponse runs synchronously and returns the payload.
	InvocationTypeRequestResponse InvocationType = "RequestResponse"

	// InvocationTypeEvent queues the invocation and returns immediately.
	InvocationTypeEvent InvocationType = "Event"

	// InvocationTypeDryRun validates the request without executing.
	InvocationTypeDryRun InvocationType = "DryRun"
)

// Values returns the closed set of invocation types.
func (InvocationType) Values() []InvocationType {
	return []InvocationType{InvocationTypeRequestResponse, InvocationTypeEvent, InvocationTypeDryRun}
}

// Member reports whether the value belongs to the closed set.
func (t InvocationType) Member() bool {
	for _, v := range t.Values() {
		if t == v {
			return true
		}
	}

	return false
}

// LogType enumerates invocation log capture modes.
type LogType string

const (
	LogTypeNone LogType = "None"
	LogTypeTail LogType = "Tail"
)

// Values returns the closed set of log types.
func (LogType) Values() []LogType {
	return []LogType{LogTypeNone, LogTypeTail}
}

// Member reports whether the value belongs to the closed set.
func (t LogType) Member() bool {
	for _, v := range t.Values() {
		if t == v {
			return true
		}
	}

	return false
}

// FunctionState enumerates the lifecycle states a function moves through.
// The state arrives as a plain string on outputs; membership is the enum
// type's own concern.
type FunctionState string

const (
	FunctionStatePending  FunctionState = "Pending"
	FunctionStateActive   FunctionState = "Active"
	FunctionStateInactive FunctionState = "Inactive"
	FunctionStateFailed   FunctionState = "Failed"
)

// Values returns the closed set of function states.
func (FunctionState) Values() []FunctionState {
	return []FunctionState{FunctionStatePending, FunctionStateActive, FunctionStateInactive, FunctionStateFailed}
}

// Member reports whether the value belongs to the closed set.
func (s FunctionState) Member() bool {
	for _, v := range s.Values() {
		if s == v {
			return true
		}
	}

	return false
}

// FunctionCode locates the deployable artifact for a function.
type FunctionCode struct {
	// ZipFile is the artifact itself, base64-encoded on the wire.
	ZipFile []byte `json:"ZipFile,omitempty"`

	// ArchiveURL points at an artifact the service fetches instead.
	ArchiveURL *string `json:"ArchiveUrl,omitempty"`
}

// Environment carries a function's environment variables.
type Environment struct {
	// Variables set to a non-nil empty map is sent as {}.
	Variables map[string]string `json:"Variables"`
}

// CreateFunctionInput carries the fields for CreateFunction.
type CreateFunctionInput struct {
	// FunctionName is required.
	FunctionName *string

	// Runtime is required.
	Runtime *Runtime

	// Handler is required.
	Handler *string

	Code        *FunctionCode
	Description *string
	MemorySize  *int32
	Timeout     *int32
	Environment *Environment

	// Tags is optional; a non-nil empty map is sent as {}.
	Tags map[string]string
}

// Request serializes the input for CreateFunction.
func (in *CreateFunctionInput) Request() (*Request, error) {
	if in.FunctionName == nil {
		return nil, &MissingRequiredFieldError{Input: "CreateFunctionInput", Field: "FunctionName"}
	}

	if in.Runtime == nil {
		return nil, &MissingRequiredFieldError{Input: "CreateFunctionInput", Field: "Runtime"}
	}

	if !in.Runtime.Member() {
		return nil, &InvalidEnumValueError{Field: "Runtime", Value: string(*in.Runtime), Allowed: "Runtime"}
	}

	if in.Handler == nil {
		return nil, &MissingRequiredFieldError{Input: "CreateFunctionInput", Field: "Handler"}
	}

	payload := body{}
	payload.setString("FunctionName", in.FunctionName)
	payload.set("Runtime", string(*in.Runtime))
	payload.setString("Handler", in.Handler)
	payload.setString("Description", in.Description)
	payload.setInt32("MemorySize", in.MemorySize)
	payload.setInt32("Timeout", in.Timeout)

	if in.Code != nil {
		payload.set("Code", in.Code)
	}

	if in.Environment != nil {
		payload.set("Environment", in.Environment)
	}

	if in.Tags != nil {
		payload.set("Tags", in.Tags)
	}

	data, err := payload.encode()
	if err != nil {
		return nil, err
	}

	headers := http.Header{}
	headers.Set("Content-Type", ContentTypeJSON)

	return &Request{
		Method:  http.MethodPost,
		Path:    functionsPrefix,
		Headers: headers,
		Body:    data,
	}, nil
}

// FunctionConfiguration is the hydrated shape of one function, shared by
// several outputs.
type FunctionConfiguration struct {
	FunctionID   string        `json:"FunctionId"             yaml:"function_id"`
	FunctionName string        `json:"FunctionName"           yaml:"function_name"`
	Runtime      Runtime       `json:"Runtime"                yaml:"runtime"`
	Handler      string        `json:"Handler"                yaml:"handler"`
	Description  string        `json:"Description,omitempty"  yaml:"description,omitempty"`
	MemorySize   int32         `json:"MemorySize,omitempty"   yaml:"memory_size,omitempty"`
	Timeout      int32         `json:"Timeout,omitempty"      yaml:"timeout,omitempty"`
	State        FunctionState `json:"State,omitempty"        yaml:"state,omitempty"`
	StateReason  string        `json:"StateReason,omitempty"  yaml:"state_reason,omitempty"`
	Version      string        `json:"Version,omitempty"      yaml:"version,omitempty"`
	LastModified Timestamp     `json:"LastModified,omitzero"  yaml:"last_modified,omitempty"`
	Environment  *Environment  `json:"Environment,omitempty"  yaml:"environment,omitempty"`
}

// CreateFunctionOutput is the hydrated CreateFunction response.
type CreateFunctionOutput struct {
	FunctionConfiguration
}

// GetFunctionInput carries the fields for GetFunction.
type GetFunctionInput struct {
	// FunctionName is required.
	FunctionName *string

	// Qualifier optionally selects a version or alias.
	Qualifier *string
}

// Request serializes the input for GetFunction.
func (in *GetFunctionInput) Request() (*Request, error) {
	if in.FunctionName == nil {
		return nil, &MissingRequiredFieldError{Input: "GetFunctionInput", Field: "FunctionName"}
	}

	query := url.Values{}
	if in.Qualifier != nil {
		query.Set("Qualifier", *in.Qualifier)
	}

	return &Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("%s/%s", functionsPrefix, url.PathEscape(*in.FunctionName)),
		Query:  query,
	}, nil
}

// GetFunctionOutput is the hydrated GetFunction response.
type GetFunctionOutput struct {
	Configuration FunctionConfiguration `json:"Configuration" yaml:"configuration"`
	Tags          map[string]string     `json:"Tags"          yaml:"tags"`
}

// ListFunctionsInput carries the fields for ListFunctions.
type ListFunctionsInput struct {
	MaxItems *int32
	Marker   *string
}

// Request serializes the input for ListFunctions.
func (in *ListFunctionsInput) Request() (*Request, error) {
	query := url.Values{}

	if in.MaxItems != nil {
		query.Set("MaxItems", strconv.FormatInt(int64(*in.MaxItems), 10))
	}

	if in.Marker != nil {
		query.Set("Marker", *in.Marker)
	}

	return &Request{
		Method: http.MethodGet,
		Path:   functionsPrefix,
		Query:  query,
	}, nil
}

// ListFunctionsOutput is the hydrated ListFunctions response.
type ListFunctionsOutput struct {
	Functions  []FunctionConfiguration `json:"Functions"   yaml:"functions"`
	NextMarker *string                 `json:"NextMarker"  yaml:"next_marker"`
}

// UpdateFunctionConfigurationInput carries the fields for
// UpdateFunctionConfiguration. Only present fields are sent.
type UpdateFunctionConfigurationInput struct {
	// FunctionName is required.
	FunctionName *string

	Runtime     *Runtime
	Handler     *string
	Description *string
	MemorySize  *int32
	Timeout     *int32
	Environment *Environment
}

// Request serializes the input for UpdateFunctionConfiguration.
func (in *UpdateFunctionConfigurationInput) Request() (*Request, error) {
	if in.FunctionName == nil {
		return nil, &MissingRequiredFieldError{Input: "UpdateFunctionConfigurationInput", Field: "FunctionName"}
	}

	if in.Runtime != nil && !in.Runtime.Member() {
		return nil, &InvalidEnumValueError{Field: "Runtime", Value: string(*in.Runtime), Allowed: "Runtime"}
	}

	payload := body{}

	if in.Runtime != nil {
		payload.set("Runtime", string(*in.Runtime))
	}

	payload.setString("Handler", in.Handler)
	payload.setString("Description", in.Description)
	payload.setInt32("MemorySize", in.MemorySize)
	payload.setInt32("Timeout", in.Timeout)

	if in.Environment != nil {
		payload.set("Environment", in.Environment)
	}

	data, err := payload.encode()
	if err != nil {
		return nil, err
	}

	headers := http.Header{}
	headers.Set("Content-Type", ContentTypeJSON)

	return &Request{
		Method:  http.MethodPut,
		Path:    fmt.Sprintf("%s/%s/configuration", functionsPrefix, url.PathEscape(*in.FunctionName)),
		Headers: headers,
		Body:    data,
	}, nil
}

// UpdateFunctionConfigurationOutput is the hydrated response.
type UpdateFunctionConfigurationOutput struct {
	FunctionConfiguration
}

// DeleteFunctionInput carries the fields for DeleteFunction.
type DeleteFunctionInput struct {
	// FunctionName is required.
	FunctionName *string

	Qualifier *string
}

// Request serializes the input for DeleteFunction.
func (in *DeleteFunctionInput) Request() (*Request, error) {
	if in.FunctionName == nil {
		return nil, &MissingRequiredFieldError{Input: "DeleteFunctionInput", Field: "FunctionName"}
	}

	query := url.Values{}
	if in.Qualifier != nil {
		query.Set("Qualifier", *in.Qualifier)
	}

	return &Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("%s/%s", functionsPrefix, url.PathEscape(*in.FunctionName)),
		Query:  query,
	}, nil
}

// DeleteFunctionOutput is the hydrated DeleteFunction response.
type DeleteFunctionOutput struct{}

// InvokeInput carries the fields for Invoke. Invocation options travel as
// request headers; the payload is the body verbatim.
type InvokeInput struct {
	// FunctionName is required.
	FunctionName *string

	InvocationType *InvocationType
	LogType        *LogType
	Qualifier      *string
	Payload        Document
}

// Request serializes the input for Invoke.
func (in *InvokeInput) Request() (*Request, error) {
	if in.FunctionName == nil {
		return nil, &MissingRequiredFieldError{Input: "InvokeInput", Field: "FunctionName"}
	}

	headers := http.Header{}
	headers.Set("Content-Type", ContentTypeJSON)

	if in.InvocationType != nil {
		if !in.InvocationType.Member() {
			return nil, &InvalidEnumValueError{Field: "InvocationType", Value: string(*in.InvocationType), Allowed: "InvocationType"}
		}

		headers.Set(HeaderInvocationType, string(*in.InvocationType))
	}

	if in.LogType != nil {
		if !in.LogType.Member() {
			return nil, &InvalidEnumValueError{Field: "LogType", Value: string(*in.LogType), Allowed: "LogType"}
		}

		headers.Set(HeaderLogType, string(*in.LogType))
	}

	query := url.Values{}
	if in.Qualifier != nil {
		query.Set("Qualifier", *in.Qualifier)
	}

	return &Request{
		Method:  http.MethodPost,
		Path:    fmt.Sprintf("%s/%s/invocations", functionsPrefix, url.PathEscape(*in.FunctionName)),
		Query:   query,
		Headers: headers,
		Body:    in.Payload,
	}, nil
}

// InvokeOutput is the hydrated Invoke response. FunctionError and LogResult
// arrive as response headers, the payload as the body verbatim.
type InvokeOutput struct {
	StatusCode    int      `json:"-" yaml:"status_code"`
	FunctionError string   `json:"-" yaml:"function_error,omitempty"`
	LogResult     string   `json:"-" yaml:"log_result,omitempty"`
	Payload       Document `json:"-" yaml:"payload,omitempty"`
}
