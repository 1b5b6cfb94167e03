package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI settings",
		Long:  "Show or change the settings stored in ~/.config/estate/config.yaml.",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "set-server <url>",
			Short: "Set the API server URL",
			Args:  cobra.ExactArgs(1),
			RunE:  runConfigSetServer,
		},
		&cobra.Command{
			Use:   "show",
			Short: "Show the effective settings",
			Args:  cobra.NoArgs,
			RunE:  runConfigShow,
		},
	)

	return cmd
}

func runConfigSetServer(cmd *cobra.Command, args []string) error {
	serverURL, err := parseServerURL(args[0])
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.ServerURL = serverURL
	if err := saveConfig(cfg); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Server set to %s\n", serverURL)
	return nil
}

// configView is the output of config show.
type configView struct {
	ServerURL string `json:"server_url"`
	Path      string `json:"path"`
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	view := configView{ServerURL: getServerURL(), Path: path}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), view)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Server: %s\nConfig: %s\n", view.ServerURL, view.Path)
	return nil
}
