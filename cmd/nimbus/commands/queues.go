package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/nimbus-cloud/nimbus-client/internal/constants"
	"github.com/nimbus-cloud/nimbus-client/pkg/nimbus"
)

// NewQueuesCommand creates the queues command group.
func NewQueuesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "queues",
		Aliases: []string{"queue", "q"},
		Short:   "Manage Nimbus Queues",
		Long:    "Create, inspect, and delete queues, and send and receive messages",
	}

	cmd.AddCommand(newQueuesCreateCommand())
	cmd.AddCommand(newQueuesListCommand())
	cmd.AddCommand(newQueuesURLCommand())
	cmd.AddCommand(newQueuesAttributesCommand())
	cmd.AddCommand(newQueuesSetAttributesCommand())
	cmd.AddCommand(newQueuesTagsCommand())
	cmd.AddCommand(newQueuesDeleteCommand())
	cmd.AddCommand(newQueuesSendCommand())
	cmd.AddCommand(newQueuesReceiveCommand())
	cmd.AddCommand(newQueuesDeleteMessageCommand())

	return cmd
}

// queueAttributes converts key=value pairs into the typed attribute map,
// keeping nil when no pairs were given.
func queueAttributes(pairs []string) (map[nimbus.QueueAttributeName]string, error) {
	raw, err := parseKeyValuePairs(pairs)
	if err != nil {
		return nil, err
	}

	if raw == nil {
		return nil, nil
	}

	attrs := make(map[nimbus.QueueAttributeName]string, len(raw))
	for key, value := range raw {
		attrs[nimbus.QueueAttributeName(key)] = value
	}

	return attrs, nil
}

func newQueuesCreateCommand() *cobra.Command {
	var (
		attributePairs []string
		tagPairs       []string
	)

	cmd := &cobra.Command{
		Use:   "create QUEUE_NAME",
		Short: "Create a queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			attrs, err := queueAttributes(attributePairs)
			if err != nil {
				return err
			}

			tags, err := parseKeyValuePairs(tagPairs)
			if err != nil {
				return err
			}

			out, err := client.Queues().CreateQueue(context.Background(), &nimbus.CreateQueueInput{
				QueueName:  nimbus.String(args[0]),
				Attributes: attrs,
				Tags:       tags,
			})
			if err != nil {
				return err
			}

			rendered, err := renderOutput(out)
			if err != nil || rendered {
				return err
			}

			_, _ = fmt.Fprintf(os.Stdout, "Created queue: %s\n", out.QueueURL)

			return nil
		},
	}

	cmd.Flags().StringArrayVar(&attributePairs, "attribute", nil, "queue attribute as Name=Value (repeatable)")
	cmd.Flags().StringArrayVar(&tagPairs, "tag", nil, "queue tag as key=value (repeatable)")

	return cmd
}

func newQueuesListCommand() *cobra.Command {
	var prefix string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List queues",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			input := &nimbus.ListQueuesInput{
				MaxResults: nimbus.Int32(constants.DefaultListLimit),
			}

			if prefix != "" {
				input.QueueNamePrefix = nimbus.String(prefix)
			}

			out, err := client.Queues().ListQueues(context.Background(), input)
			if err != nil {
				return err
			}

			rendered, err := renderOutput(out)
			if err != nil || rendered {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Queue URL")

			for _, queueURL := range out.QueueURLs {
				_ = table.Append(queueURL)
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", "only list queues whose name starts with this prefix")

	return cmd
}

func newQueuesURLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "url QUEUE_NAME",
		Short: "Look up a queue's URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			out, err := client.Queues().GetQueueURL(context.Background(), &nimbus.GetQueueURLInput{
				QueueName: nimbus.String(args[0]),
			})
			if err != nil {
				return err
			}

			rendered, err := renderOutput(out)
			if err != nil || rendered {
				return err
			}

			_, _ = fmt.Fprintln(os.Stdout, out.QueueURL)

			return nil
		},
	}
}

func newQueuesAttributesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "attributes QUEUE_URL",
		Short: "Show a queue's attributes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			out, err := client.Queues().GetQueueAttributes(context.Background(), &nimbus.GetQueueAttributesInput{
				QueueURL:       nimbus.String(args[0]),
				AttributeNames: []nimbus.QueueAttributeName{nimbus.QueueAttributeAll},
			})
			if err != nil {
				return err
			}

			rendered, err := renderOutput(out)
			if err != nil || rendered {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Attribute", "Value")

			for name, value := range out.Attributes {
				_ = table.Append(name, truncate(value, constants.MaxTableCellWidth))
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}

func newQueuesSetAttributesCommand() *cobra.Command {
	var attributePairs []string

	cmd := &cobra.Command{
		Use:   "set-attributes QUEUE_URL",
		Short: "Set attributes on a queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			attrs, err := queueAttributes(attributePairs)
			if err != nil {
				return err
			}

			if attrs == nil {
				attrs = map[nimbus.QueueAttributeName]string{}
			}

			_, err = client.Queues().SetQueueAttributes(context.Background(), &nimbus.SetQueueAttributesInput{
				QueueURL:   nimbus.String(args[0]),
				Attributes: attrs,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(os.Stdout, "Updated queue attributes")

			return nil
		},
	}

	cmd.Flags().StringArrayVar(&attributePairs, "attribute", nil, "queue attribute as Name=Value (repeatable)")

	return cmd
}

func newQueuesTagsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tags QUEUE_URL",
		Short: "Show a queue's tags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			out, err := client.Queues().ListQueueTags(context.Background(), &nimbus.ListQueueTagsInput{
				QueueURL: nimbus.String(args[0]),
			})
			if err != nil {
				return err
			}

			rendered, err := renderOutput(out)
			if err != nil || rendered {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Key", "Value")

			for key, value := range out.Tags {
				_ = table.Append(key, value)
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}

func newQueuesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete QUEUE_URL",
		Short: "Delete a queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			_, err = client.Queues().DeleteQueue(context.Background(), &nimbus.DeleteQueueInput{
				QueueURL: nimbus.String(args[0]),
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(os.Stdout, "Deleted queue")

			return nil
		},
	}
}

func newQueuesSendCommand() *cobra.Command {
	var (
		delaySeconds int32
		groupID      string
	)

	cmd := &cobra.Command{
		Use:   "send QUEUE_URL MESSAGE_BODY",
		Short: "Send a message to a queue",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			input := &nimbus.SendMessageInput{
				QueueURL:    nimbus.String(args[0]),
				MessageBody: nimbus.String(args[1]),
			}

			if cmd.Flags().Changed("delay-seconds") {
				input.DelaySeconds = nimbus.Int32(delaySeconds)
			}

			if groupID != "" {
				input.MessageGroupID = nimbus.String(groupID)
			}

			out, err := client.Queues().SendMessage(context.Background(), input)
			if err != nil {
				return err
			}

			rendered, err := renderOutput(out)
			if err != nil || rendered {
				return err
			}

			_, _ = fmt.Fprintf(os.Stdout, "Sent message: %s\n", out.MessageID)

			return nil
		},
	}

	cmd.Flags().Int32Var(&delaySeconds, "delay-seconds", 0, "delay before the message becomes visible")
	cmd.Flags().StringVar(&groupID, "group-id", "", "message group ID for FIFO queues")

	return cmd
}

func newQueuesReceiveCommand() *cobra.Command {
	var (
		maxMessages int32
		waitSeconds int32
	)

	cmd := &cobra.Command{
		Use:   "receive QUEUE_URL",
		Short: "Receive messages from a queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			input := &nimbus.ReceiveMessageInput{
				QueueURL:            nimbus.String(args[0]),
				MaxNumberOfMessages: nimbus.Int32(maxMessages),
			}

			if cmd.Flags().Changed("wait-seconds") {
				input.WaitTimeSeconds = nimbus.Int32(waitSeconds)
			}

			out, err := client.Queues().ReceiveMessage(context.Background(), input)
			if err != nil {
				return err
			}

			rendered, err := renderOutput(out)
			if err != nil || rendered {
				return err
			}

			if len(out.Messages) == 0 {
				_, _ = fmt.Fprintln(os.Stdout, "No messages")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Message ID", "Body", "Receipt Handle")

			for _, message := range out.Messages {
				_ = table.Append(
					message.MessageID,
					truncate(message.Body, constants.MaxTableCellWidth),
					truncate(message.ReceiptHandle, constants.MaxTableCellWidth),
				)
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().Int32Var(&maxMessages, "max-messages", 1, "maximum number of messages to receive")
	cmd.Flags().Int32Var(&waitSeconds, "wait-seconds", 0, "long-poll wait time in seconds")

	return cmd
}

func newQueuesDeleteMessageCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-message QUEUE_URL RECEIPT_HANDLE",
		Short: "Delete a received message",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			_, err = client.Queues().DeleteMessage(context.Background(), &nimbus.DeleteMessageInput{
				QueueURL:      nimbus.String(args[0]),
				ReceiptHandle: nimbus.String(args[1]),
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(os.Stdout, "Deleted message")

			return nil
		},
	}
}
