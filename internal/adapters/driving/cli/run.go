package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/bindays/internal/core/domain"
)

var (
	runCode   string
	runDryRun bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Look up collection dates and update the calendar once",
	Long: `Scrapes the council site for the configured address and, when calendar
credentials are configured, replaces the upcoming reminders.
The invocation response is printed as JSON. When an access code is
configured it must be supplied with --code.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runCode, "code", "", "access code")
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "list existing reminders but do not change the calendar")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
	s, err := settings()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	if runDryRun {
		s.DryRun = true
	}

	app, err := newApp(s)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmdContext(cmd), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	inv := domain.Invocation{Source: "cli"}
	if runCode != "" {
		inv.QueryParameters = map[string]string{"code": runCode}
	}
	resp := app.Invoker.Invoke(ctx, inv)

	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("run returned status %d", resp.StatusCode)
	}
	return nil
}

// cmdContext returns the command context, or a background context when the
// command is executed without one.
func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
