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

// NewQueryCommand creates the query command group.
func NewQueryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run Nimbus Query executions",
		Long:  "Start queries, poll their status, and fetch results",
	}

	cmd.AddCommand(newQueryStartCommand())
	cmd.AddCommand(newQueryStatusCommand())
	cmd.AddCommand(newQueryResultsCommand())
	cmd.AddCommand(newQueryStopCommand())
	cmd.AddCommand(newQueryListCommand())

	return cmd
}

func newQueryStartCommand() *cobra.Command {
	var (
		workGroup string
		wait      bool
	)

	cmd := &cobra.Command{
		Use:   "start QUERY_STRING",
		Short: "Start a query execution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			input := &nimbus.StartQueryExecutionInput{
				QueryString: nimbus.String(args[0]),
			}

			if workGroup != "" {
				input.WorkGroup = nimbus.String(workGroup)
			}

			out, err := client.Query().StartQueryExecution(ctx, input)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(os.Stdout, "Started query execution: %s\n", out.QueryExecutionID)

			if !wait {
				return nil
			}

			return waitForQuery(ctx, client, out.QueryExecutionID)
		},
	}

	cmd.Flags().StringVar(&workGroup, "work-group", "", "work group to run the query in")
	cmd.Flags().BoolVar(&wait, "wait", false, "poll until the query reaches a terminal state")

	return cmd
}

// waitForQuery polls the execution until it is terminal.
func waitForQuery(ctx context.Context, client nimbus.Client, executionID string) error {
	for {
		out, err := client.Query().GetQueryExecution(ctx, &nimbus.GetQueryExecutionInput{
			QueryExecutionID: nimbus.String(executionID),
		})
		if err != nil {
			return err
		}

		state := out.QueryExecution.State
		_, _ = fmt.Fprintf(os.Stderr, "State: %s\n", state)

		if state.Terminal() {
			if state != nimbus.QueryStateSucceeded && out.QueryExecution.StateChangeReason != "" {
				_, _ = fmt.Fprintf(os.Stderr, "Reason: %s\n", out.QueryExecution.StateChangeReason)
			}

			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}
}

func newQueryStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status EXECUTION_ID",
		Short: "Show a query execution's status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			out, err := client.Query().GetQueryExecution(context.Background(), &nimbus.GetQueryExecutionInput{
				QueryExecutionID: nimbus.String(args[0]),
			})
			if err != nil {
				return err
			}

			rendered, err := renderOutput(out)
			if err != nil || rendered {
				return err
			}

			execution := out.QueryExecution

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Property", "Value")
			_ = table.Append("Execution ID", execution.QueryExecutionID)
			_ = table.Append("State", orNA(string(execution.State)))
			_ = table.Append("Query", truncate(execution.Query, constants.MaxTableCellWidth))
			_ = table.Append("Work Group", orNA(execution.WorkGroup))

			if !execution.SubmissionDateTime.IsZero() {
				_ = table.Append("Submitted", execution.SubmissionDateTime.Format(time.RFC3339))
			}

			if !execution.CompletionDateTime.IsZero() {
				_ = table.Append("Completed", execution.CompletionDateTime.Format(time.RFC3339))
			}

			if execution.Statistics != nil {
				_ = table.Append("Engine Time (ms)", fmt.Sprintf("%d", execution.Statistics.EngineExecutionTimeMillis))
				_ = table.Append("Data Scanned (bytes)", fmt.Sprintf("%d", execution.Statistics.DataScannedBytes))
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}

func newQueryResultsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "results EXECUTION_ID",
		Short: "Fetch a query execution's results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			out, err := client.Query().GetQueryResults(context.Background(), &nimbus.GetQueryResultsInput{
				QueryExecutionID: nimbus.String(args[0]),
				MaxResults:       nimbus.Int32(constants.DefaultListLimit),
			})
			if err != nil {
				return err
			}

			rendered, err := renderOutput(out)
			if err != nil || rendered {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)

			headers := make([]any, 0, len(out.ResultSet.ColumnInfo))
			for _, column := range out.ResultSet.ColumnInfo {
				headers = append(headers, column.Name)
			}

			table.Header(headers...)

			for _, row := range out.ResultSet.Rows {
				cells := make([]string, 0, len(row.Data))

				for _, datum := range row.Data {
					if datum.VarCharValue == nil {
						cells = append(cells, "NULL")
					} else {
						cells = append(cells, *datum.VarCharValue)
					}
				}

				_ = table.Append(cells)
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}

func newQueryStopCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stop EXECUTION_ID",
		Short: "Stop a running query execution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			_, err = client.Query().StopQueryExecution(context.Background(), &nimbus.StopQueryExecutionInput{
				QueryExecutionID: nimbus.String(args[0]),
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(os.Stdout, "Stopped query execution")

			return nil
		},
	}
}

func newQueryListCommand() *cobra.Command {
	var workGroup string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent query executions",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			input := &nimbus.ListQueryExecutionsInput{
				MaxResults: nimbus.Int32(constants.DefaultListLimit),
			}

			if workGroup != "" {
				input.WorkGroup = nimbus.String(workGroup)
			}

			out, err := client.Query().ListQueryExecutions(context.Background(), input)
			if err != nil {
				return err
			}

			rendered, err := renderOutput(out)
			if err != nil || rendered {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Execution ID")

			for _, id := range out.QueryExecutionIDs {
				_ = table.Append(id)
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&workGroup, "work-group", "", "only list executions from this work group")

	return cmd
}
