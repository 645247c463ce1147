package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"skyline/config"
)

var (
	configOut   string
	configForce bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or write configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the effective configuration as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		if !configForce {
			if _, err := os.Stat(configOut); err == nil {
				return fmt.Errorf("%s already exists (use --force to overwrite)", configOut)
			} else if !errors.Is(err, os.ErrNotExist) {
				return err
			}
		}
		if err := config.Save(c, configOut); err != nil {
			return err
		}
		fmt.Printf("✓ Config written: %s\n", configOut)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configInitCmd.Flags().StringVar(&configOut, "out", "skyline.yaml", "destination file")
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing file")
}
