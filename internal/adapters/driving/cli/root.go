// Package cli provides the cobra command tree of bindays.
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/bindays/internal/config"
	"github.com/custodia-labs/bindays/internal/core/ports/driven"
	"github.com/custodia-labs/bindays/internal/core/ports/driving"
	"github.com/custodia-labs/bindays/internal/logger"
)

var version = "dev"

// Global flags.
var (
	verbose    bool
	configPath string
	envFile    string
)

// App holds the services a command runs against.
type App struct {
	Settings *config.Settings
	Invoker  driving.Invoker
	// Scheduler and Store back serve mode. Scheduler is nil when the
	// schedule interval is zero.
	Scheduler driving.Scheduler
	Store     driven.SchedulerStore
}

// AppBuilder constructs the services for resolved settings.
type AppBuilder func(settings *config.Settings) (*App, error)

// Services configured by main; tests replace them.
var (
	loadSettings = config.Load
	buildApp     AppBuilder
)

var rootCmd = &cobra.Command{
	Use:   "bindays",
	Short: "Mirror bin collection dates into a calendar",
	Long: `bindays looks up the next bin collection dates for a household on the
council website and keeps one reminder per collection in a Google Calendar.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug and progress logs")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML settings file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "path to a dotenv file (default .env)")
}

// SetAppBuilder configures how commands construct their services.
func SetAppBuilder(b AppBuilder) {
	buildApp = b
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// settings resolves settings from the global flags.
func settings() (*config.Settings, error) {
	return loadSettings(config.Options{ConfigPath: configPath, EnvFile: envFile})
}

// newApp builds the services for s.
func newApp(s *config.Settings) (*App, error) {
	if buildApp == nil {
		return nil, errors.New("services not configured")
	}
	return buildApp(s)
}
