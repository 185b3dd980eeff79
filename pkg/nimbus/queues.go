package nimbus

import (
	"net/http"
	"strconv"
)

// targetQueues is the JSON-target service prefix for the queue service.
const targetQueues = "NimbusQueues"

// newTargetRequest builds the transport request for a JSON-target operation:
// POST to the service root with the operation named in the target header.
func newTargetRequest(target string, payload body) (*Request, error) {
	data, err := payload.encode()
	if err != nil {
		return nil, err
	}

	headers := http.Header{}
	headers.Set(HeaderTarget, target)
	headers.Set("Content-Type", ContentTypeJSONTarget)

	return &Request{
		Method:  http.MethodPost,
		Path:    "/",
		Headers: headers,
		Body:    data,
	}, nil
}

// QueueAttributeName enumerates the attribute names the queue service defines.
type QueueAttributeName string

const (
	QueueAttributeAll                           QueueAttributeName = "All"
	QueueAttributeDelaySeconds                  QueueAttributeName = "DelaySeconds"
	QueueAttributeMaximumMessageSize            QueueAttributeName = "MaximumMessageSize"
	QueueAttributeMessageRetentionPeriod        QueueAttributeName = "MessageRetentionPeriod"
	QueueAttributeVisibilityTimeout             QueueAttributeName = "VisibilityTimeout"
	QueueAttributeReceiveMessageWaitTimeSeconds QueueAttributeName = "ReceiveMessageWaitTimeSeconds"
	QueueAttributeRedrivePolicy                 QueueAttributeName = "RedrivePolicy"
	QueueAttributeFifoQueue                     QueueAttributeName = "FifoQueue"
	QueueAttributeContentBasedDeduplication     QueueAttributeName = "ContentBasedDeduplication"
	QueueAttributeKmsMasterKeyID                QueueAttributeName = "KmsMasterKeyId"
	QueueAttributeKmsDataKeyReusePeriodSeconds  QueueAttributeName = "KmsDataKeyReusePeriodSeconds"
	QueueAttributeApproximateNumberOfMessages   QueueAttributeName = "ApproximateNumberOfMessages"
	QueueAttributeCreatedTimestamp              QueueAttributeName = "CreatedTimestamp"
	QueueAttributeLastModifiedTimestamp         QueueAttributeName = "LastModifiedTimestamp"
	QueueAttributeQueueArn                      QueueAttributeName = "QueueArn"
)

// Values returns the closed set of queue attribute names.
func (QueueAttributeName) Values() []QueueAttributeName {
	return []QueueAttributeName{
		QueueAttributeAll,
		QueueAttributeDelaySeconds,
		QueueAttributeMaximumMessageSize,
		QueueAttributeMessageRetentionPeriod,
		QueueAttributeVisibilityTimeout,
		QueueAttributeReceiveMessageWaitTimeSeconds,
		QueueAttributeRedrivePolicy,
		QueueAttributeFifoQueue,
		QueueAttributeContentBasedDeduplication,
		QueueAttributeKmsMasterKeyID,
		QueueAttributeKmsDataKeyReusePeriodSeconds,
		QueueAttributeApproximateNumberOfMessages,
		QueueAttributeCreatedTimestamp,
		QueueAttributeLastModifiedTimestamp,
		QueueAttributeQueueArn,
	}
}

// Member reports whether the value belongs to the closed set.
func (n QueueAttributeName) Member() bool {
	for _, v := range n.Values() {
		if n == v {
			return true
		}
	}

	return false
}

// attributeMap converts a typed attribute map to its wire shape. A non-nil
// empty input stays a non-nil empty output so it serializes to {}.
func attributeMap(attrs map[QueueAttributeName]string) map[string]string {
	wire := make(map[string]string, len(attrs))
	for name, value := range attrs {
		wire[string(name)] = value
	}

	return wire
}

// CreateQueueInput carries the fields for NimbusQueues.CreateQueue.
type CreateQueueInput struct {
	// QueueName is required.
	QueueName *string

	// Attributes is optional; a non-nil empty map is sent as {}.
	Attributes map[QueueAttributeName]string

	// Tags is optional; a non-nil empty map is sent as {}.
	Tags map[string]string
}

// Request serializes the input for NimbusQueues.CreateQueue.
func (in *CreateQueueInput) Request() (*Request, error) {
	if in.QueueName == nil {
		return nil, &MissingRequiredFieldError{Input: "CreateQueueInput", Field: "QueueName"}
	}

	for name := range in.Attributes {
		if !name.Member() {
			return nil, &InvalidEnumValueError{Field: "Attributes", Value: string(name), Allowed: "QueueAttributeName"}
		}
	}

	payload := body{}
	payload.setString("QueueName", in.QueueName)

	if in.Attributes != nil {
		payload.set("Attributes", attributeMap(in.Attributes))
	}

	if in.Tags != nil {
		payload.set("tags", in.Tags)
	}

	return newTargetRequest(targetQueues+".CreateQueue", payload)
}

// CreateQueueOutput is the hydrated NimbusQueues.CreateQueue response.
type CreateQueueOutput struct {
	QueueURL string `json:"QueueUrl" yaml:"queue_url"`
}

// GetQueueURLInput carries the fields for NimbusQueues.GetQueueUrl.
type GetQueueURLInput struct {
	// QueueName is required.
	QueueName *string
}

// Request serializes the input for NimbusQueues.GetQueueUrl.
func (in *GetQueueURLInput) Request() (*Request, error) {
	if in.QueueName == nil {
		return nil, &MissingRequiredFieldError{Input: "GetQueueURLInput", Field: "QueueName"}
	}

	payload := body{}
	payload.setString("QueueName", in.QueueName)

	return newTargetRequest(targetQueues+".GetQueueUrl", payload)
}

// GetQueueURLOutput is the hydrated NimbusQueues.GetQueueUrl response.
type GetQueueURLOutput struct {
	QueueURL string `json:"QueueUrl" yaml:"queue_url"`
}

// GetQueueAttributesInput carries the fields for NimbusQueues.GetQueueAttributes.
type GetQueueAttributesInput struct {
	// QueueURL is required.
	QueueURL *string

	// AttributeNames is optional; nil asks for the service default set.
	AttributeNames []QueueAttributeName
}

// Request serializes the input for NimbusQueues.GetQueueAttributes.
func (in *GetQueueAttributesInput) Request() (*Request, error) {
	if in.QueueURL == nil {
		return nil, &MissingRequiredFieldError{Input: "GetQueueAttributesInput", Field: "QueueUrl"}
	}

	names := make([]string, 0, len(in.AttributeNames))

	for _, name := range in.AttributeNames {
		if !name.Member() {
			return nil, &InvalidEnumValueError{Field: "AttributeNames", Value: string(name), Allowed: "QueueAttributeName"}
		}

		names = append(names, string(name))
	}

	payload := body{}
	payload.setString("QueueUrl", in.QueueURL)

	if in.AttributeNames != nil {
		payload.set("AttributeNames", names)
	}

	return newTargetRequest(targetQueues+".GetQueueAttributes", payload)
}

// GetQueueAttributesOutput is the hydrated NimbusQueues.GetQueueAttributes response.
type GetQueueAttributesOutput struct {
	Attributes map[string]string `json:"Attributes" yaml:"attributes"`
}

// SetQueueAttributesInput carries the fields for NimbusQueues.SetQueueAttributes.
type SetQueueAttributesInput struct {
	// QueueURL is required.
	QueueURL *string

	// Attributes is required; an empty map is sent as {}.
	Attributes map[QueueAttributeName]string
}

// Request serializes the input for NimbusQueues.SetQueueAttributes.
func (in *SetQueueAttributesInput) Request() (*Request, error) {
	if in.QueueURL == nil {
		return nil, &MissingRequiredFieldError{Input: "SetQueueAttributesInput", Field: "QueueUrl"}
	}

	if in.Attributes == nil {
		return nil, &MissingRequiredFieldError{Input: "SetQueueAttributesInput", Field: "Attributes"}
	}

	for name := range in.Attributes {
		if !name.Member() {
			return nil, &InvalidEnumValueError{Field: "Attributes", Value: string(name), Allowed: "QueueAttributeName"}
		}
	}

	payload := body{}
	payload.setString("QueueUrl", in.QueueURL)
	payload.set("Attributes", attributeMap(in.Attributes))

	return newTargetRequest(targetQueues+".SetQueueAttributes", payload)
}

// SetQueueAttributesOutput is the hydrated NimbusQueues.SetQueueAttributes response.
type SetQueueAttributesOutput struct{}

// ListQueuesInput carries the fields for NimbusQueues.ListQueues.
type ListQueuesInput struct {
	QueueNamePrefix *string
	MaxResults      *int32
	NextToken       *string
}

// Request serializes the input for NimbusQueues.ListQueues.
func (in *ListQueuesInput) Request() (*Request, error) {
	payload := body{}
	payload.setString("QueueNamePrefix", in.QueueNamePrefix)
	payload.setInt32("MaxResults", in.MaxResults)
	payload.setString("NextToken", in.NextToken)

	return newTargetRequest(targetQueues+".ListQueues", payload)
}

// ListQueuesOutput is the hydrated NimbusQueues.ListQueues response.
type ListQueuesOutput struct {
	QueueURLs []string `json:"QueueUrls" yaml:"queue_urls"`
	NextToken *string  `json:"NextToken" yaml:"next_token"`
}

// DeleteQueueInput carries the fields for NimbusQueues.DeleteQueue.
type DeleteQueueInput struct {
	// QueueURL is required.
	QueueURL *string
}

// Request serializes the input for NimbusQueues.DeleteQueue.
func (in *DeleteQueueInput) Request() (*Request, error) {
	if in.QueueURL == nil {
		return nil, &MissingRequiredFieldError{Input: "DeleteQueueInput", Field: "QueueUrl"}
	}

	payload := body{}
	payload.setString("QueueUrl", in.QueueURL)

	return newTargetRequest(targetQueues+".DeleteQueue", payload)
}

// DeleteQueueOutput is the hydrated NimbusQueues.DeleteQueue response.
type DeleteQueueOutput struct{}

// TagQueueInput carries the fields for NimbusQueues.TagQueue.
type TagQueueInput struct {
	// QueueURL is required.
	QueueURL *string

	// Tags is required; an empty map is sent as {}.
	Tags map[string]string
}

// Request serializes the input for NimbusQueues.TagQueue.
func (in *TagQueueInput) Request() (*Request, error) {
	if in.QueueURL == nil {
		return nil, &MissingRequiredFieldError{Input: "TagQueueInput", Field: "QueueUrl"}
	}

	if in.Tags == nil {
		return nil, &MissingRequiredFieldError{Input: "TagQueueInput", Field: "Tags"}
	}

	payload := body{}
	payload.setString("QueueUrl", in.QueueURL)
	payload.set("Tags", in.Tags)

	return newTargetRequest(targetQueues+".TagQueue", payload)
}

// TagQueueOutput is the hydrated NimbusQueues.TagQueue response.
type TagQueueOutput struct{}

// ListQueueTagsInput carries the fields for NimbusQueues.ListQueueTags.
type ListQueueTagsInput struct {
	// QueueURL is required.
	QueueURL *string
}

// Request serializes the input for NimbusQueues.ListQueueTags.
func (in *ListQueueTagsInput) Request() (*Request, error) {
	if in.QueueURL == nil {
		return nil, &MissingRequiredFieldError{Input: "ListQueueTagsInput", Field: "QueueUrl"}
	}

	payload := body{}
	payload.setString("QueueUrl", in.QueueURL)

	return newTargetRequest(targetQueues+".ListQueueTags", payload)
}

// ListQueueTagsOutput is the hydrated NimbusQueues.ListQueueTags response.
type ListQueueTagsOutput struct {
	Tags map[string]string `json:"Tags" yaml:"tags"`
}

// MessageAttributeValue is a typed message attribute carried alongside a
// message body.
type MessageAttributeValue struct {
	// DataType is required ("String", "Number", or "Binary").
	DataType *string `json:"DataType,omitempty"`

	StringValue *string `json:"StringValue,omitempty"`
	BinaryValue []byte  `json:"BinaryValue,omitempty"`
}

// SendMessageInput carries the fields for NimbusQueues.SendMessage.
type SendMessageInput struct {
	// QueueURL is required.
	QueueURL *string

	// MessageBody is required.
	MessageBody *string

	DelaySeconds           *int32
	MessageGroupID         *string
	MessageDeduplicationID *string

	// MessageAttributes is optional; a non-nil empty map is sent as {}.
	MessageAttributes map[string]MessageAttributeValue
}

// Request serializes the input for NimbusQueues.SendMessage.
func (in *SendMessageInput) Request() (*Request, error) {
	if in.QueueURL == nil {
		return nil, &MissingRequiredFieldError{Input: "SendMessageInput", Field: "QueueUrl"}
	}

	if in.MessageBody == nil {
		return nil, &MissingRequiredFieldError{Input: "SendMessageInput", Field: "MessageBody"}
	}

	for name, attr := range in.MessageAttributes {
		if attr.DataType == nil {
			return nil, &MissingRequiredFieldError{Input: "SendMessageInput", Field: "MessageAttributes[" + name + "].DataType"}
		}
	}

	payload := body{}
	payload.setString("QueueUrl", in.QueueURL)
	payload.setString("MessageBody", in.MessageBody)
	payload.setInt32("DelaySeconds", in.DelaySeconds)
	payload.setString("MessageGroupId", in.MessageGroupID)
	payload.setString("MessageDeduplicationId", in.MessageDeduplicationID)

	if in.MessageAttributes != nil {
		payload.set("MessageAttributes", in.MessageAttributes)
	}

	return newTargetRequest(targetQueues+".SendMessage", payload)
}

// SendMessageOutput is the hydrated NimbusQueues.SendMessage response.
type SendMessageOutput struct {
	MessageID        string `json:"MessageId"                  yaml:"message_id"`
	SequenceNumber   string `json:"SequenceNumber,omitempty"   yaml:"sequence_number,omitempty"`
	MD5OfMessageBody string `json:"MD5OfMessageBody,omitempty" yaml:"md5_of_message_body,omitempty"`
}

// SendMessageBatchEntry is one message in a NimbusQueues.SendMessageBatch call.
type SendMessageBatchEntry struct {
	// ID is required and must be unique within the batch.
	ID *string `json:"Id,omitempty"`

	// MessageBody is required.
	MessageBody *string `json:"MessageBody,omitempty"`

	DelaySeconds           *int32  `json:"DelaySeconds,omitempty"`
	MessageGroupID         *string `json:"MessageGroupId,omitempty"`
	MessageDeduplicationID *string `json:"MessageDeduplicationId,omitempty"`
}

// SendMessageBatchInput carries the fields for NimbusQueues.SendMessageBatch.
// This is a single wire operation; the client does no batching of its own.
type SendMessageBatchInput struct {
	// QueueURL is required.
	QueueURL *string

	// Entries is required and must be non-empty.
	Entries []SendMessageBatchEntry
}

// Request serializes the input for NimbusQueues.SendMessageBatch.
func (in *SendMessageBatchInput) Request() (*Request, error) {
	if in.QueueURL == nil {
		return nil, &MissingRequiredFieldError{Input: "SendMessageBatchInput", Field: "QueueUrl"}
	}

	if len(in.Entries) == 0 {
		return nil, &MissingRequiredFieldError{Input: "SendMessageBatchInput", Field: "Entries"}
	}

	for i, entry := range in.Entries {
		if entry.ID == nil {
			return nil, &MissingRequiredFieldError{Input: "SendMessageBatchInput", Field: entryField(i, "Id")}
		}

		if entry.MessageBody == nil {
			return nil, &MissingRequiredFieldError{Input: "SendMessageBatchInput", Field: entryField(i, "MessageBody")}
		}
	}

	payload := body{}
	payload.setString("QueueUrl", in.QueueURL)
	payload.set("Entries", in.Entries)

	return newTargetRequest(targetQueues+".SendMessageBatch", payload)
}

func entryField(index int, field string) string {
	return "Entries[" + strconv.Itoa(index) + "]." + field
}

// SendMessageBatchResultEntry is one successful message in a batch response.
type SendMessageBatchResultEntry struct {
	ID               string `json:"Id"                         yaml:"id"`
	MessageID        string `json:"MessageId"                  yaml:"message_id"`
	SequenceNumber   string `json:"SequenceNumber,omitempty"   yaml:"sequence_number,omitempty"`
	MD5OfMessageBody string `json:"MD5OfMessageBody,omitempty" yaml:"md5_of_message_body,omitempty"`
}

// BatchResultErrorEntry is one failed message in a batch response.
type BatchResultErrorEntry struct {
	ID          string `json:"Id"                yaml:"id"`
	Code        string `json:"Code"              yaml:"code"`
	Message     string `json:"Message,omitempty" yaml:"message,omitempty"`
	SenderFault bool   `json:"SenderFault"       yaml:"sender_fault"`
}

// SendMessageBatchOutput is the hydrated NimbusQueues.SendMessageBatch response.
type SendMessageBatchOutput struct {
	Successful []SendMessageBatchResultEntry `json:"Successful" yaml:"successful"`
	Failed     []BatchResultErrorEntry       `json:"Failed"     yaml:"failed"`
}

// ReceiveMessageInput carries the fields for NimbusQueues.ReceiveMessage.
type ReceiveMessageInput struct {
	// QueueURL is required.
	QueueURL *string

	MaxNumberOfMessages   *int32
	VisibilityTimeout     *int32
	WaitTimeSeconds       *int32
	AttributeNames        []QueueAttributeName
	MessageAttributeNames []string
}

// Request serializes the input for NimbusQueues.ReceiveMessage.
func (in *ReceiveMessageInput) Request() (*Request, error) {
	if in.QueueURL == nil {
		return nil, &MissingRequiredFieldError{Input: "ReceiveMessageInput", Field: "QueueUrl"}
	}

	names := make([]string, 0, len(in.AttributeNames))

	for _, name := range in.AttributeNames {
		if !name.Member() {
			return nil, &InvalidEnumValueError{Field: "AttributeNames", Value: string(name), Allowed: "QueueAttributeName"}
		}

		names = append(names, string(name))
	}

	payload := body{}
	payload.setString("QueueUrl", in.QueueURL)
	payload.setInt32("MaxNumberOfMessages", in.MaxNumberOfMessages)
	payload.setInt32("VisibilityTimeout", in.VisibilityTimeout)
	payload.setInt32("WaitTimeSeconds", in.WaitTimeSeconds)

	if in.AttributeNames != nil {
		payload.set("AttributeNames", names)
	}

	if in.MessageAttributeNames != nil {
		payload.set("MessageAttributeNames", in.MessageAttributeNames)
	}

	return newTargetRequest(targetQueues+".ReceiveMessage", payload)
}

// Message is one received queue message.
type Message struct {
	MessageID         string                           `json:"MessageId"                   yaml:"message_id"`
	ReceiptHandle     string                           `json:"ReceiptHandle"               yaml:"receipt_handle"`
	Body              string                           `json:"Body"                        yaml:"body"`
	MD5OfBody         string                           `json:"MD5OfBody,omitempty"         yaml:"md5_of_body,omitempty"`
	Attributes        map[string]string                `json:"Attributes,omitempty"        yaml:"attributes,omitempty"`
	MessageAttributes map[string]MessageAttributeValue `json:"MessageAttributes,omitempty" yaml:"message_attributes,omitempty"`
}

// ReceiveMessageOutput is the hydrated NimbusQueues.ReceiveMessage response.
type ReceiveMessageOutput struct {
	Messages []Message `json:"Messages" yaml:"messages"`
}

// DeleteMessageInput carries the fields for NimbusQueues.DeleteMessage.
type DeleteMessageInput struct {
	// QueueURL is required.
	QueueURL *string

	// ReceiptHandle is required.
	ReceiptHandle *string
}

// Request serializes the input for NimbusQueues.DeleteMessage.
func (in *DeleteMessageInput) Request() (*Request, error) {
	if in.QueueURL == nil {
		return nil, &MissingRequiredFieldError{Input: "DeleteMessageInput", Field: "QueueUrl"}
	}

	if in.ReceiptHandle == nil {
		return nil, &MissingRequiredFieldError{Input: "DeleteMessageInput", Field: "ReceiptHandle"}
	}

	payload := body{}
	payload.setString("QueueUrl", in.QueueURL)
	payload.setString("ReceiptHandle", in.ReceiptHandle)

	return newTargetRequest(targetQueues+".DeleteMessage", payload)
}

// DeleteMessageOutput is the hydrated NimbusQueues.DeleteMessage response.
type DeleteMessageOutput struct{}
