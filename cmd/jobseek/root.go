package main

import (
	"os"

	"jobseek/internal/app"
	"jobseek/internal/config"

	"github.com/spf13/cobra"
)

var (
	envFile string
	cfgPath string
)

var rootCmd = &cobra.Command{
	Use:          "jobseek",
	Short:        "Job posting ingestion and search",
	Long:         "jobseek imports job postings from CSV, keeps the search index in sync with the primary store and answers search queries.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "path to .env file (default: ENV_FILE env var or ./.env)")
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to YAML config file (default: CONFIG_FILE env var)")
}

// loadConfig resolves the env file and config path, then parses them.
// Priority: explicit flag > env var > default.
func loadConfig() (config.Config, error) {
	path := envFile
	if path == "" {
		path = os.Getenv("ENV_FILE")
	}
	if err := config.LoadDotEnv(path); err != nil {
		return config.Config{}, err
	}
	if cfgPath != "" {
		return config.LoadFile(cfgPath)
	}
	return config.Load()
}

// openContainer wires the same dependencies the server uses. The caller
// must Close it.
func openContainer() (*app.Container, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return app.NewContainer(cfg)
}
