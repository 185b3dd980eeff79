package commands

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// configKeys are the keys the config command accepts.
var configKeys = map[string]string{
	"endpoint":          "Nimbus API endpoint URL",
	"token":             "API token",
	"output":            "default output format (table, json, yaml)",
	"cache.type":        "response cache backend (memory, nats, none)",
	"cache.nats_url":    "NATS server URL for the nats cache backend",
	"cache.nats_bucket": "NATS KV bucket for the nats cache backend",
}

// secretKeys are masked when displayed.
var secretKeys = map[string]bool{
	"token": true,
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Get, set, and unset configuration values stored in the config file",
	}

	cmd.AddCommand(newConfigListCommand())
	cmd.AddCommand(newConfigGetCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configuration values",
		RunE: func(cmd *cobra.Command, args []string) error {
			values := make(map[string]string, len(configKeys))
			for key := range configKeys {
				values[key] = displayValue(key)
			}

			rendered, err := renderOutput(values)
			if err != nil || rendered {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Key", "Value", "Description")

			for key, description := range configKeys {
				_ = table.Append(key, orNA(values[key]), description)
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}

func newConfigGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if _, ok := configKeys[key]; !ok {
				return fmt.Errorf("%w: %s", ErrUnknownConfigurationKey, key)
			}

			_, _ = fmt.Fprintln(os.Stdout, displayValue(key))

			return nil
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if _, ok := configKeys[key]; !ok {
				return fmt.Errorf("%w: %s", ErrUnknownConfigurationKey, key)
			}

			viper.Set(key, args[1])

			return saveConfig()
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Remove a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if _, ok := configKeys[key]; !ok {
				return fmt.Errorf("%w: %s", ErrUnknownConfigurationKey, key)
			}

			viper.Set(key, "")

			return saveConfig()
		},
	}
}

func displayValue(key string) string {
	value := viper.GetString(key)
	if value != "" && secretKeys[key] {
		return "***"
	}

	return value
}
