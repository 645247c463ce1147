package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"skyline/models"
	"skyline/services"
)

var (
	selCities    []string
	selMinHeight float64
	selMinYear   int
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the dashboard for a selection to the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		dash, err := loadDashboard(cmd.Context())
		if err != nil {
			return err
		}
		services.NewReport(os.Stdout).Print(dash.Build(selectionFromFlags(cmd, dash)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	addSelectionFlags(reportCmd)
}

// addSelectionFlags registers --city, --min-height and --min-year.
func addSelectionFlags(c *cobra.Command) {
	c.Flags().StringArrayVar(&selCities, "city", nil, "city to include (repeatable, default from config)")
	c.Flags().Float64Var(&selMinHeight, "min-height", 0, "only skyscrapers taller than this, in feet (default from config)")
	c.Flags().IntVar(&selMinYear, "min-year", 0, "only skyscrapers completed after this year (default from config)")
}

// selectionFromFlags resolves the selection flags against the dashboard,
// falling back to the configured defaults for flags left unset.
func selectionFromFlags(c *cobra.Command, dash *services.Dashboard) models.Query {
	settings := dash.Settings()

	cities := dash.DefaultCities()
	if c.Flags().Changed("city") {
		cities = selCities
	}
	minHeight := settings.DefaultMinHeight
	if c.Flags().Changed("min-height") {
		minHeight = selMinHeight
	}
	minYear := settings.DefaultMinYear
	if c.Flags().Changed("min-year") {
		minYear = selMinYear
	}
	return dash.Resolve(cities, &minHeight, &minYear)
}
