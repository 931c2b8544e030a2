package cmd

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/stoa-client/stoa/internal/app"
	"github.com/stoa-client/stoa/internal/citadel"
	"github.com/stoa-client/stoa/internal/config"
	"github.com/stoa-client/stoa/internal/logger"
)

var (
	debugMode             bool
	serverURL             string
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "stoa",
	Short: "Terminal client for Citadel-style groupware servers",
	Long: `Stoa is a terminal client for Citadel-style groupware servers.
It browses bulletin-board rooms, walks unread rooms in floor order,
keeps mailbox rooms fresh in the background, and posts threaded
replies, all over the server's HTTP+JSON interface.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initLogging)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Server base URL (overrides config)")
}

func initLogging() {
	if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("stoa %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("stoa %s\n", version)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	if serverURL != "" {
		cfg.SetServerURL(serverURL)
		if err := cfg.Save(); err != nil {
			logger.Debug("could not persist server URL: %v", err)
		}
	}
	if cfg.GetServerURL() == "" {
		return fmt.Errorf("no server configured: pass --server or set server_url in the config file")
	}

	client, err := citadel.Dial(cfg.GetServerURL())
	if err != nil {
		return fmt.Errorf("invalid server URL: %w", err)
	}

	defer logger.Close()

	m := app.New(cfg, client, version)
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
