package client

import (
	"context"

	"github.com/nimbus-cloud/nimbus-client/pkg/nimbus"
)

// QueuesClient implements nimbus.QueuesClient.
type QueuesClient struct {
	requester nimbus.Requester
	cache     nimbus.Cache
}

// NewQueuesClient creates a new queues client.
func NewQueuesClient(requester nimbus.Requester) *QueuesClient {
	return &QueuesClient{requester: requester, cache: nimbus.NewNoOpCache()}
}

// CreateQueue implements nimbus.QueuesClient.CreateQueue.
func (c *QueuesClient) CreateQueue(ctx context.Context, input *nimbus.CreateQueueInput) (*nimbus.CreateQueueOutput, error) {
	out, err := execute[nimbus.CreateQueueOutput](ctx, c.requester, input, "creating queue")
	if err != nil {
		return nil, err
	}

	invalidate(ctx, c.cache)

	return out, nil
}

// GetQueueURL implements nimbus.QueuesClient.GetQueueURL.
func (c *QueuesClient) GetQueueURL(ctx context.Context, input *nimbus.GetQueueURLInput) (*nimbus.GetQueueURLOutput, error) {
	return executeCached[nimbus.GetQueueURLOutput](ctx, c.requester, c.cache, input, "getting queue URL")
}

// GetQueueAttributes implements nimbus.QueuesClient.GetQueueAttributes.
func (c *QueuesClient) GetQueueAttributes(ctx context.Context, input *nimbus.GetQueueAttributesInput) (*nimbus.GetQueueAttributesOutput, error) {
	return executeCached[nimbus.GetQueueAttributesOutput](ctx, c.requester, c.cache, input, "getting queue attributes")
}

// SetQueueAttributes implements nimbus.QueuesClient.SetQueueAttributes.
func (c *QueuesClient) SetQueueAttributes(ctx context.Context, input *nimbus.SetQueueAttributesInput) (*nimbus.SetQueueAttributesOutput, error) {
	out, err := execute[nimbus.SetQueueAttributesOutput](ctx, c.requester, input, "setting queue attributes")
	if err != nil {
		return nil, err
	}

	invalidate(ctx, c.cache)

	return out, nil
}

// ListQueues implements nimbus.QueuesClient.ListQueues.
func (c *QueuesClient) ListQueues(ctx context.Context, input *nimbus.ListQueuesInput) (*nimbus.ListQueuesOutput, error) {
	return executeCached[nimbus.ListQueuesOutput](ctx, c.requester, c.cache, input, "listing queues")
}

// DeleteQueue implements nimbus.QueuesClient.DeleteQueue.
func (c *QueuesClient) DeleteQueue(ctx context.Context, input *nimbus.DeleteQueueInput) (*nimbus.DeleteQueueOutput, error) {
	out, err := execute[nimbus.DeleteQueueOutput](ctx, c.requester, input, "deleting queue")
	if err != nil {
		return nil, err
	}

	invalidate(ctx, c.cache)

	return out, nil
}

// TagQueue implements nimbus.QueuesClient.TagQueue.
func (c *QueuesClient) TagQueue(ctx context.Context, input *nimbus.TagQueueInput) (*nimbus.TagQueueOutput, error) {
	out, err := execute[nimbus.TagQueueOutput](ctx, c.requester, input, "tagging queue")
	if err != nil {
		return nil, err
	}

	invalidate(ctx, c.cache)

	return out, nil
}

// ListQueueTags implements nimbus.QueuesClient.ListQueueTags.
func (c *QueuesClient) ListQueueTags(ctx context.Context, input *nimbus.ListQueueTagsInput) (*nimbus.ListQueueTagsOutput, error) {
	return executeCached[nimbus.ListQueueTagsOutput](ctx, c.requester, c.cache, input, "listing queue tags")
}

// SendMessage implements nimbus.QueuesClient.SendMessage.
func (c *QueuesClient) SendMessage(ctx context.Context, input *nimbus.SendMessageInput) (*nimbus.SendMessageOutput, error) {
	return execute[nimbus.SendMessageOutput](ctx, c.requester, input, "sending message")
}

// SendMessageBatch implements nimbus.QueuesClient.SendMessageBatch.
func (c *QueuesClient) SendMessageBatch(ctx context.Context, input *nimbus.SendMessageBatchInput) (*nimbus.SendMessageBatchOutput, error) {
	return execute[nimbus.SendMessageBatchOutput](ctx, c.requester, input, "sending message batch")
}

// ReceiveMessage implements nimbus.QueuesClient.ReceiveMessage.
func (c *QueuesClient) ReceiveMessage(ctx context.Context, input *nimbus.ReceiveMessageInput) (*nimbus.ReceiveMessageOutput, error) {
	return execute[nimbus.ReceiveMessageOutput](ctx, c.requester, input, "receiving messages")
}

// DeleteMessage implements nimbus.QueuesClient.DeleteMessage.
func (c *QueuesClient) DeleteMessage(ctx context.Context, input *nimbus.DeleteMessageInput) (*nimbus.DeleteMessageOutput, error) {
	return execute[nimbus.DeleteMessageOutput](ctx, c.requester, input, "deleting message")
}
