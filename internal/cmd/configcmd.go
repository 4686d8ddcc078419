package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harrison/seek/internal/config"
)

// NewConfigCommand creates the config command
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the seek configuration file",
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Long: `Write a config file populated with the default settings, ready to edit.

The write is atomic and lock-protected, so concurrent seek processes cannot
corrupt the file. An existing file is only replaced with --force.`,
		RunE: runConfigInit,
	}
	initCmd.Flags().Bool("force", false, "Overwrite an existing config file")

	cmd.AddCommand(initCmd)
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), configTarget(cmd))
			return nil
		},
	})

	return cmd
}

// configTarget resolves where config commands read and write, honoring the
// persistent --config flag.
func configTarget(cmd *cobra.Command) string {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return path
	}
	return config.DefaultConfigPath()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	target := configTarget(cmd)

	force, _ := cmd.Flags().GetBool("force")
	if _, err := os.Stat(target); err == nil && !force {
		return fmt.Errorf("config file already exists at %s (use --force to overwrite)", target)
	}

	if err := config.DefaultConfig().Save(target); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote default config to %s\n", target)
	return nil
}
