package cmd

import (
	"os"

	"github.com/aclements/go-gg/table"
	"github.com/spf13/cobra"

	"skyline/models"
)

var citiesCmd = &cobra.Command{
	Use:   "cities",
	Short: "List selectable cities with their skyscraper counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		dash, err := loadDashboard(cmd.Context())
		if err != nil {
			return err
		}

		cities := dash.Cities()
		counts := make(map[string]int, len(cities))
		dash.Dataset().Each(func(s models.Skyscraper) {
			counts[s.City]++
		})
		n := make([]int, len(cities))
		for i, c := range cities {
			n[i] = counts[c]
		}

		tab := new(table.Builder).Add("city", cities).Add("skyscrapers", n).Done()
		table.Fprint(os.Stdout, tab)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(citiesCmd)
}
