// Package cfg wires up the command line surface and loads program settings.
package cfg

import (
	"fmt"
	"os"

	"clipcomp/internal/domain/keys"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "clipcomp",
	Short: "Clipcomp builds and publishes daily clip compilations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Lookup("help").Changed {
			return nil // Stop further execution if help is invoked
		}
		viper.Set("execute", true)
		return nil
	},
}

// Execute parses flags and reads the configuration file.
func Execute() error {
	initFlags()

	if err := rootCmd.Execute(); err != nil {
		return err
	}
	if !viper.GetBool("execute") {
		return nil
	}
	return readConfigFile()
}

// initFlags sets up root-level flags
func initFlags() {
	rootCmd.PersistentFlags().String(keys.ConfigFile, "config.ini", "Path to configuration file")
	rootCmd.PersistentFlags().Int(keys.DebugLevel, 0, "Debug level (0-5)")

	viper.BindPFlag(keys.ConfigFile, rootCmd.PersistentFlags().Lookup(keys.ConfigFile))
	viper.BindPFlag(keys.DebugLevel, rootCmd.PersistentFlags().Lookup(keys.DebugLevel))
}

// readConfigFile loads the INI configuration into Viper.
func readConfigFile() error {
	path := viper.GetString(keys.ConfigFile)

	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("configuration file %q not found: %w", path, err)
	}

	viper.SetConfigFile(path)
	viper.SetConfigType("ini")

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("reading configuration file %q: %w", path, err)
	}
	return nil
}
