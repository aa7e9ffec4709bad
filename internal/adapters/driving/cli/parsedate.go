package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/bindays/internal/core/dates"
	"github.com/custodia-labs/bindays/internal/core/domain"
)

var parseDateCmd = &cobra.Command{
	Use:   "parse-date <text>",
	Short: "Show how a collection date is interpreted",
	Long: `Parses a date as printed by the council site, e.g.
"Thursday 11th September 2025", and shows the collection day and the
reminder time created for it.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")
		collection, err := dates.Parse(text)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Collection: %s (%s)\n", collection.Format("2006-01-02"), dates.Format(collection))
		fmt.Fprintf(out, "Reminder:   %s %s\n", dates.ReminderStart(collection).Format("2006-01-02 15:04"), domain.ReminderTimeZone)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseDateCmd)
}
