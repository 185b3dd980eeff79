package nimbus

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
)

// Fault classifies a service error by HTTP status family.
type Fault string

const (
	// FaultClient marks 4xx errors: the request was rejected as sent.
	FaultClient Fault = "client"

	// FaultServer marks 5xx errors: the service failed to process the request.
	FaultServer Fault = "server"
)

// MissingRequiredFieldError is returned by an input's Request method when a
// required field is unset. It never reaches the network.
type MissingRequiredFieldError struct {
	Input string
	Field string
}

func (e *MissingRequiredFieldError) Error() string {
	return fmt.Sprintf("%s: required field %s is not set", e.Input, e.Field)
}

// InvalidEnumValueError is returned by an input's Request method when an
// enum-constrained field holds a value outside its closed set. It never
// reaches the network.
type InvalidEnumValueError struct {
	Field   string
	Value   string
	Allowed string
}

func (e *InvalidEnumValueError) Error() string {
	return fmt.Sprintf("field %s: value %q is not a member of %s", e.Field, e.Value, e.Allowed)
}

// MalformedResponseError classifies a response body the service sent but the
// client could not hydrate: undecodable JSON, or a temporal value in neither
// of the contract's wire formats.
type MalformedResponseError struct {
	Field string
	Value string
	Err   error
}

func (e *MalformedResponseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("malformed response: field %s value %q: %v", e.Field, e.Value, e.Err)
	}

	return fmt.Sprintf("malformed response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// APIError is the base for every error the service returns. Typed exceptions
// embed it; responses whose discriminator matches no known code surface as a
// bare *APIError faulted by status class.
type APIError struct {
	StatusCode int    `json:"-"                 yaml:"-"`
	Code       string `json:"Type"              yaml:"type"`
	Message    string `json:"Message,omitempty" yaml:"message,omitempty"`
	RequestID  string `json:"-"                 yaml:"-"`
	Fault      Fault  `json:"-"                 yaml:"-"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	code := e.Code
	if code == "" {
		code = http.StatusText(e.StatusCode)
	}

	return fmt.Sprintf("%s: %s (status: %d)", code, e.Message, e.StatusCode)
}

// Type returns the service-assigned error code.
func (e *APIError) Type() string {
	return e.Code
}

// apiErrer is satisfied by *APIError and, through embedding, by every typed
// service exception. It lets errors.As reach the base regardless of the
// concrete exception type.
type apiErrer interface {
	api() *APIError
}

func (e *APIError) api() *APIError { return e }

// AsAPIError extracts the APIError base from any service error in err's
// chain, typed exception or bare.
func AsAPIError(err error) (*APIError, bool) {
	var target apiErrer
	if errors.As(err, &target) {
		return target.api(), true
	}

	return nil, false
}

// Queue service errors.
type (
	// QueueDoesNotExistError indicates the named queue does not exist.
	QueueDoesNotExistError struct{ APIError }

	// QueueNameExistsError indicates a queue with the requested name already
	// exists with different attributes.
	QueueNameExistsError struct{ APIError }

	// KMSDisabledError indicates the queue's encryption key is disabled.
	KMSDisabledError struct{ APIError }

	// MessageTooLongError indicates the message body exceeds the queue limit.
	MessageTooLongError struct{ APIError }

	// ReceiptHandleIsInvalidError indicates a receipt handle the service does
	// not recognize.
	ReceiptHandleIsInvalidError struct{ APIError }

	// PurgeQueueInProgressError indicates a purge is still running for the queue.
	PurgeQueueInProgressError struct{ APIError }

	// OverLimitError indicates an account or queue limit was exceeded.
	OverLimitError struct{ APIError }

	// InvalidAttributeNameError indicates an attribute name the queue service
	// does not define.
	InvalidAttributeNameError struct {
		APIError

		AttributeName string `json:"AttributeName,omitempty"`
	}
)

// Functions and Query service errors.
type (
	// ResourceNotFoundError indicates the addressed resource does not exist.
	ResourceNotFoundError struct {
		APIError

		ResourceType string `json:"ResourceType,omitempty"`
	}

	// ResourceConflictError indicates the resource already exists or is in a
	// state that forbids the operation.
	ResourceConflictError struct{ APIError }

	// InvalidParameterValueError indicates a parameter value the service
	// rejected.
	InvalidParameterValueError struct{ APIError }

	// TooManyRequestsError indicates the caller was throttled.
	TooManyRequestsError struct {
		APIError

		// RetryAfterSeconds is the service's suggested backoff, when supplied.
		RetryAfterSeconds *int64 `json:"retryAfterSeconds,omitempty"`
	}

	// CodeStorageExceededError indicates the account's function code storage
	// limit was reached.
	CodeStorageExceededError struct{ APIError }

	// InvalidRequestError indicates a query request the service could not
	// accept.
	InvalidRequestError struct{ APIError }

	// QueryTimeoutError indicates the query exceeded its execution time limit.
	QueryTimeoutError struct{ APIError }

	// InternalServiceError indicates a transient service-side failure.
	InternalServiceError struct{ APIError }
)

// Error codes fixed by the Nimbus service contract.
const (
	ErrCodeQueueDoesNotExist      = "QueueDoesNotExist"
	ErrCodeQueueNameExists        = "QueueNameExists"
	ErrCodeKMSDisabled            = "KMSDisabledException"
	ErrCodeMessageTooLong         = "MessageTooLong"
	ErrCodeReceiptHandleInvalid   = "ReceiptHandleIsInvalid"
	ErrCodePurgeQueueInProgress   = "PurgeQueueInProgress"
	ErrCodeOverLimit              = "OverLimit"
	ErrCodeInvalidAttributeName   = "InvalidAttributeName"
	ErrCodeResourceNotFound       = "ResourceNotFoundException"
	ErrCodeResourceConflict       = "ResourceConflictException"
	ErrCodeInvalidParameterValue  = "InvalidParameterValueException"
	ErrCodeTooManyRequests        = "TooManyRequestsException"
	ErrCodeCodeStorageExceeded    = "CodeStorageExceededException"
	ErrCodeInvalidRequest         = "InvalidRequestException"
	ErrCodeQueryTimeout           = "QueryTimeoutException"
	ErrCodeInternalService        = "InternalServiceException"
	ErrCodeServiceUnavailable     = "ServiceUnavailableException"
	ErrCodeAccessDenied           = "AccessDeniedException"
	ErrCodeInvalidSecurityToken   = "InvalidSecurityTokenException"
	ErrCodeRequestThrottled       = "RequestThrottled"
)

// Static errors that can be wrapped with context.
var (
	ErrConfigRequired      = errors.New("config is required")
	ErrEndpointRequired    = errors.New("API endpoint is required")
	ErrNoHostInURL         = errors.New("no host specified in URL")
	ErrNoTokenConfigured   = errors.New("no API token configured")
	ErrManifestRequired    = errors.New("manifest path is required")
	ErrUnknownOutputFormat = errors.New("unknown output format")
	ErrNotTargeted         = errors.New("no Nimbus endpoint targeted")
	ErrUnknownConfigKey    = errors.New("unknown configuration key")
	ErrQueueNameRequired   = errors.New("queue name is required")
	ErrEmptyResponseBody   = errors.New("empty response body")
)

// errorEnvelope is the wire shape of a JSON-target error body. REST services
// omit Type from the body and carry it in a header instead.
type errorEnvelope struct {
	Type              string `json:"Type"`
	Message           string `json:"Message"`
	AttributeName     string `json:"AttributeName"`
	ResourceType      string `json:"ResourceType"`
	RetryAfterSeconds *int64 `json:"retryAfterSeconds"`
}

// DecodeErrorResponse turns a non-2xx transport response into exactly one
// typed error. The discriminator is the X-Nimbus-Error-Type header when
// present (REST services), otherwise the body's Type field (JSON-target
// services). An unmatched discriminator falls back to a bare *APIError
// classified only by status family.
func DecodeErrorResponse(resp *Response) error {
	var envelope errorEnvelope

	if len(resp.Body) > 0 {
		// An undecodable error body still yields a usable error: the status
		// family and discriminator header survive.
		_ = json.Unmarshal(resp.Body, &envelope)
	}

	code := ""
	if resp.Headers != nil {
		code = resp.Headers.Get(HeaderErrorType)
	}

	if code == "" {
		code = envelope.Type
	}

	message := envelope.Message
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	base := APIError{
		StatusCode: resp.StatusCode,
		Code:       code,
		Message:    message,
		RequestID:  resp.RequestID(),
		Fault:      faultForStatus(resp.StatusCode),
	}

	switch code {
	case ErrCodeQueueDoesNotExist:
		return &QueueDoesNotExistError{APIError: base}
	case ErrCodeQueueNameExists:
		return &QueueNameExistsError{APIError: base}
	case ErrCodeKMSDisabled:
		return &KMSDisabledError{APIError: base}
	case ErrCodeMessageTooLong:
		return &MessageTooLongError{APIError: base}
	case ErrCodeReceiptHandleInvalid:
		return &ReceiptHandleIsInvalidError{APIError: base}
	case ErrCodePurgeQueueInProgress:
		return &PurgeQueueInProgressError{APIError: base}
	case ErrCodeOverLimit:
		return &OverLimitError{APIError: base}
	case ErrCodeInvalidAttributeName:
		return &InvalidAttributeNameError{APIError: base, AttributeName: envelope.AttributeName}
	case ErrCodeResourceNotFound:
		return &ResourceNotFoundError{APIError: base, ResourceType: envelope.ResourceType}
	case ErrCodeResourceConflict:
		return &ResourceConflictError{APIError: base}
	case ErrCodeInvalidParameterValue:
		return &InvalidParameterValueError{APIError: base}
	case ErrCodeTooManyRequests, ErrCodeRequestThrottled:
		return &TooManyRequestsError{APIError: base, RetryAfterSeconds: retryAfter(resp, envelope)}
	case ErrCodeCodeStorageExceeded:
		return &CodeStorageExceededError{APIError: base}
	case ErrCodeInvalidRequest:
		return &InvalidRequestError{APIError: base}
	case ErrCodeQueryTimeout:
		return &QueryTimeoutError{APIError: base}
	case ErrCodeInternalService, ErrCodeServiceUnavailable:
		return &InternalServiceError{APIError: base}
	default:
		return &base
	}
}

func retryAfter(resp *Response, envelope errorEnvelope) *int64 {
	if envelope.RetryAfterSeconds != nil {
		return envelope.RetryAfterSeconds
	}

	if resp.Headers == nil {
		return nil
	}

	header := resp.Headers.Get("Retry-After")
	if header == "" {
		return nil
	}

	seconds, err := strconv.ParseInt(header, 10, 64)
	if err != nil {
		return nil
	}

	return &seconds
}

func faultForStatus(status int) Fault {
	if status >= http.StatusInternalServerError {
		return FaultServer
	}

	return FaultClient
}

// IsNotFound checks if the error is a missing-resource error from any service.
func IsNotFound(err error) bool {
	queueErr := &QueueDoesNotExistError{}
	if errors.As(err, &queueErr) {
		return true
	}

	resourceErr := &ResourceNotFoundError{}

	return errors.As(err, &resourceErr)
}

// IsConflict checks if the error is a name or state conflict.
func IsConflict(err error) bool {
	nameErr := &QueueNameExistsError{}
	if errors.As(err, &nameErr) {
		return true
	}

	conflictErr := &ResourceConflictError{}

	return errors.As(err, &conflictErr)
}

// IsThrottled checks if the error is a throttling rejection.
func IsThrottled(err error) bool {
	throttleErr := &TooManyRequestsError{}

	return errors.As(err, &throttleErr)
}

// IsClientFault checks if the error is a 4xx-class service error.
func IsClientFault(err error) bool {
	apiErr, ok := AsAPIError(err)

	return ok && apiErr.Fault == FaultClient
}

// IsServerFault checks if the error is a 5xx-class service error.
func IsServerFault(err error) bool {
	apiErr, ok := AsAPIError(err)

	return ok && apiErr.Fault == FaultServer
}
