package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/NewJerseyStyle/TheBlueprint-Project/internal/config"
)

var version = "0.1.0"

var (
	configDir string
	envName   string
)

var rootCmd = &cobra.Command{
	Use:           "impactmap",
	Short:         "impactmap: strategic planning canvas engine",
	Long:          brand.Sprint("impactmap") + " runs the planning canvas engine and its HTTP adapter",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "config", "Directory holding base/<env>/local config files")
	rootCmd.PersistentFlags().StringVar(&envName, "env", "", "Environment (development, staging, production, test); defaults to $IMPACTMAP_ENV or development")

	rootCmd.AddCommand(
		serveCmd(),
		replayCmd(),
		suggestCmd(),
	)
}

func environment() config.Environment {
	if envName != "" {
		return config.Environment(envName)
	}
	if v := os.Getenv(config.EnvPrefix + "ENV"); v != "" {
		return config.Environment(v)
	}
	return config.Development
}

func loadConfig() (*config.Loader, *config.Config, error) {
	loader := config.NewLoader(configDir, environment())
	cfg, err := loader.Load()
	if err != nil {
		return nil, nil, err
	}
	return loader, cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, bad.Sprint("impactmap: ")+err.Error())
		os.Exit(1)
	}
}
