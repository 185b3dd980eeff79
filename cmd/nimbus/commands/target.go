package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/nimbus-cloud/nimbus-client/internal/constants"
)

// TargetInfo represents the current target information.
type TargetInfo struct {
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	Token    string `json:"token,omitempty"    yaml:"token,omitempty"`
}

// NewTargetCommand creates the target command.
func NewTargetCommand() *cobra.Command {
	var (
		endpoint    string
		promptToken bool
	)

	cmd := &cobra.Command{
		Use:   "target",
		Short: "Set or show the targeted Nimbus endpoint",
		Long: `Set or display the Nimbus API endpoint and token the CLI uses.

With no flags, shows the current target. With --endpoint, stores the
endpoint in the config file. With --prompt-token, reads the API token
from the terminal without echoing it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if endpoint == "" && !promptToken {
				return showTarget()
			}

			if endpoint != "" {
				viper.Set("endpoint", endpoint)
			}

			if promptToken {
				token, err := promptForToken()
				if err != nil {
					return err
				}

				viper.Set("token", token)
			}

			if err := saveConfig(); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(os.Stdout, "Targeted: %s\n", viper.GetString("endpoint"))

			return nil
		},
	}

	cmd.Flags().StringVar(&endpoint, "endpoint", "", "Nimbus API endpoint URL")
	cmd.Flags().BoolVar(&promptToken, "prompt-token", false, "prompt for the API token without echoing")

	return cmd
}

func showTarget() error {
	endpoint := viper.GetString("endpoint")
	if endpoint == "" {
		return ErrNoEndpointTargeted
	}

	info := TargetInfo{Endpoint: endpoint}
	if viper.GetString("token") != "" {
		info.Token = "***"
	}

	rendered, err := renderOutput(info)
	if err != nil || rendered {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")
	_ = table.Append("Endpoint", info.Endpoint)
	_ = table.Append("Token", orNA(info.Token))

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func promptForToken() (string, error) {
	_, _ = fmt.Fprint(os.Stderr, "API token: ")

	token, err := term.ReadPassword(int(os.Stdin.Fd()))

	_, _ = fmt.Fprintln(os.Stderr)

	if err != nil {
		return "", fmt.Errorf("reading token: %w", err)
	}

	return string(token), nil
}

// saveConfig persists the current viper state to the config file, creating
// ~/.nimbus/config.yml on first use.
func saveConfig() error {
	if viper.ConfigFileUsed() != "" {
		if err := viper.WriteConfig(); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("finding home directory: %w", err)
	}

	configDir := filepath.Join(home, ".nimbus")
	if err := os.MkdirAll(configDir, constants.ConfigDirPerm); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	configPath := filepath.Join(configDir, "config.yml")
	if err := viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	if err := os.Chmod(configPath, constants.ConfigFilePerm); err != nil {
		return fmt.Errorf("setting config permissions: %w", err)
	}

	return nil
}
