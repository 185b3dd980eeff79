package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/nimbus-cloud/nimbus-client/internal/constants"
	"github.com/nimbus-cloud/nimbus-client/pkg/nimbus"
)

// NewFunctionsCommand creates the functions command group.
func NewFunctionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "functions",
		Aliases: []string{"function", "fn"},
		Short:   "Manage Nimbus Functions",
		Long:    "Deploy, inspect, invoke, and delete serverless functions",
	}

	cmd.AddCommand(newFunctionsListCommand())
	cmd.AddCommand(newFunctionsGetCommand())
	cmd.AddCommand(newFunctionsDeployCommand())
	cmd.AddCommand(newFunctionsUpdateCommand())
	cmd.AddCommand(newFunctionsDeleteCommand())
	cmd.AddCommand(newFunctionsInvokeCommand())

	return cmd
}

func newFunctionsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List functions",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			out, err := client.Functions().ListFunctions(context.Background(), &nimbus.ListFunctionsInput{
				MaxItems: nimbus.Int32(constants.DefaultListLimit),
			})
			if err != nil {
				return err
			}

			rendered, err := renderOutput(out)
			if err != nil || rendered {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Name", "Runtime", "Handler", "State", "Last Modified")

			for _, function := range out.Functions {
				lastModified := NotAvailable
				if !function.LastModified.IsZero() {
					lastModified = function.LastModified.Format(time.RFC3339)
				}

				_ = table.Append(
					function.FunctionName,
					string(function.Runtime),
					function.Handler,
					orNA(string(function.State)),
					lastModified,
				)
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}

func newFunctionsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get FUNCTION_NAME",
		Short: "Show a function's configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			out, err := client.Functions().GetFunction(context.Background(), &nimbus.GetFunctionInput{
				FunctionName: nimbus.String(args[0]),
			})
			if err != nil {
				return err
			}

			rendered, err := renderOutput(out)
			if err != nil || rendered {
				return err
			}

			config := out.Configuration

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Property", "Value")
			_ = table.Append("Name", config.FunctionName)
			_ = table.Append("Runtime", string(config.Runtime))
			_ = table.Append("Handler", config.Handler)
			_ = table.Append("State", orNA(string(config.State)))
			_ = table.Append("Description", orNA(config.Description))
			_ = table.Append("Version", orNA(config.Version))

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}

func newFunctionsDeployCommand() *cobra.Command {
	var manifestPath string

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy a function from a manifest",
		Long: `Deploy a function described by a YAML manifest:

  name: thumbnailer
  runtime: go1
  handler: main.Handle
  memory: 256
  archive_url: https://artifacts.example/thumbnailer.zip
  environment:
    BUCKET: thumbnails`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if manifestPath == "" {
				return ErrManifestFileRequired
			}

			manifest, err := nimbus.LoadFunctionManifest(manifestPath)
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			out, err := client.Functions().CreateFunction(context.Background(), manifest.CreateInput())
			if err != nil {
				return err
			}

			rendered, err := renderOutput(out)
			if err != nil || rendered {
				return err
			}

			_, _ = fmt.Fprintf(os.Stdout, "Deployed function: %s (%s)\n", out.FunctionName, out.FunctionID)

			return nil
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "file", "f", "", "path to the function manifest")

	return cmd
}

func newFunctionsUpdateCommand() *cobra.Command {
	var (
		memory  int32
		timeout int32
		handler string
	)

	cmd := &cobra.Command{
		Use:   "update FUNCTION_NAME",
		Short: "Update a function's configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			input := &nimbus.UpdateFunctionConfigurationInput{
				FunctionName: nimbus.String(args[0]),
			}

			if cmd.Flags().Changed("memory") {
				input.MemorySize = nimbus.Int32(memory)
			}

			if cmd.Flags().Changed("timeout") {
				input.Timeout = nimbus.Int32(timeout)
			}

			if handler != "" {
				input.Handler = nimbus.String(handler)
			}

			out, err := client.Functions().UpdateFunctionConfiguration(context.Background(), input)
			if err != nil {
				return err
			}

			rendered, err := renderOutput(out)
			if err != nil || rendered {
				return err
			}

			_, _ = fmt.Fprintf(os.Stdout, "Updated function: %s\n", out.FunctionName)

			return nil
		},
	}

	cmd.Flags().Int32Var(&memory, "memory", 0, "memory size in MB")
	cmd.Flags().Int32Var(&timeout, "timeout", 0, "execution timeout in seconds")
	cmd.Flags().StringVar(&handler, "handler", "", "handler entry point")

	return cmd
}

func newFunctionsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete FUNCTION_NAME",
		Short: "Delete a function",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			_, err = client.Functions().DeleteFunction(context.Background(), &nimbus.DeleteFunctionInput{
				FunctionName: nimbus.String(args[0]),
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(os.Stdout, "Deleted function")

			return nil
		},
	}
}

func newFunctionsInvokeCommand() *cobra.Command {
	var (
		payload        string
		invocationType string
		logTail        bool
	)

	cmd := &cobra.Command{
		Use:   "invoke FUNCTION_NAME",
		Short: "Invoke a function",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			input := &nimbus.InvokeInput{
				FunctionName: nimbus.String(args[0]),
			}

			if payload != "" {
				input.Payload = nimbus.Document(payload)
			}

			if invocationType != "" {
				it := nimbus.InvocationType(invocationType)
				input.InvocationType = &it
			}

			if logTail {
				lt := nimbus.LogTypeTail
				input.LogType = &lt
			}

			out, err := client.Functions().Invoke(context.Background(), input)
			if err != nil {
				return err
			}

			if out.FunctionError != "" {
				_, _ = fmt.Fprintf(os.Stderr, "Function error: %s\n", out.FunctionError)
			}

			if out.LogResult != "" {
				_, _ = fmt.Fprintf(os.Stderr, "Log result: %s\n", out.LogResult)
			}

			if len(out.Payload) > 0 {
				_, _ = fmt.Fprintln(os.Stdout, string(out.Payload))
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&payload, "payload", "p", "", "JSON payload to pass to the function")
	cmd.Flags().StringVar(&invocationType, "invocation-type", "", "invocation type (RequestResponse, Event, DryRun)")
	cmd.Flags().BoolVar(&logTail, "log-tail", false, "return the tail of the invocation log")

	return cmd
}
