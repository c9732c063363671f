package cli

import (
	"context"
	"fmt"

	"github.com/andy/hotelmgr/internal/app"
	"github.com/andy/hotelmgr/internal/logx"
	"github.com/spf13/cobra"
)

// skipAppInit marks commands that run without the backend client
const skipAppInit = "skip-app-init"

var (
	cfgFile  string
	apiURL   string
	logLevel string

	appInstance *app.App
)

var rootCmd = &cobra.Command{
	Use:   "hotelmgr",
	Short: "Hotel client management from the terminal",
	Long: `hotelmgr manages the client records of a hotel through its REST backend.

By default, running hotelmgr without arguments launches the interactive TUI.
Use subcommands for CLI operations.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip app initialization for commands that don't need it
		if cmd.Name() == "help" || cmd.Annotations[skipAppInit] == "true" {
			return nil
		}
		if appInstance == nil {
			a, err := app.New(cmd.Context(), app.Options{
				ConfigPath: cfgFile,
				APIURL:     apiURL,
				LogLevel:   logLevel,
			})
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}
			SetApp(a)
		}
		cmd.SetContext(logx.WithContext(cmd.Context(), appInstance.Logger))
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: launch TUI
		return launchTUI(cmd, args)
	},
}

// Execute runs the root command and closes the app afterwards
func Execute(ctx context.Context) error {
	defer closeApp()
	return rootCmd.ExecuteContext(ctx)
}

// SetApp sets the app instance for commands to use
func SetApp(a *app.App) {
	appInstance = a
}

func closeApp() {
	if appInstance != nil {
		appInstance.Close()
		appInstance = nil
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.config/hotelmgr/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "backend base URL, e.g. http://localhost:8080/api")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	// Add all subcommands
	rootCmd.AddCommand(clientsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(tuiCmd)
}
