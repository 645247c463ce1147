package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"skyline/config"
	"skyline/utils"
)

var (
	// Global flags
	cfgFile    string
	debug      bool
	flagSource string
	flagCSV    string

	// Loaded configuration and the shared logger
	cfg    *config.Config
	cfgErr error
	logger = utils.NewLogger()
)

var rootCmd = &cobra.Command{
	Use:   "skyline",
	Short: "Skyline: explore skyscrapers by city, height and completion year",
	Long: `Skyline loads a skyscraper dataset once and answers filter queries over it:
an HTTP dashboard with charts and tables, a terminal report, chart export,
data import into SQL stores and dashboard screenshots.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./skyline.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagSource, "source", "", "record source: csv, postgres or sqlite (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagCSV, "csv", "", "path of the skyscraper CSV file (overrides config)")
}

func loadConfig() {
	c, err := config.Load(cfgFile)
	if err != nil {
		cfgErr = err
		return
	}
	cfg = c

	f := rootCmd.PersistentFlags()
	if f.Changed("source") && flagSource != "" {
		cfg.Source = flagSource
	}
	if f.Changed("csv") && flagCSV != "" {
		cfg.CSVPath = flagCSV
	}
	if f.Changed("debug") {
		cfg.Debug = debug
	}
	logger.SetDebug(cfg.Debug)
}

// requireConfig returns the loaded configuration or the reason it is missing.
func requireConfig() (*config.Config, error) {
	if cfg == nil {
		if cfgErr != nil {
			return nil, fmt.Errorf("load config: %w", cfgErr)
		}
		return nil, fmt.Errorf("configuration not loaded")
	}
	return cfg, nil
}
