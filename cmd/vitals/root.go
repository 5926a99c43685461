package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmcorreia/vitals/internal/config"
	"github.com/jmcorreia/vitals/internal/provider"
	"github.com/jmcorreia/vitals/internal/storage"
)

var (
	cfgPath string
	dbPath  string

	// Shared across subcommands, set up by the persistent pre-run.
	cfg   *config.Config
	store storage.Store
)

var rootCmd = &cobra.Command{
	Use:   "vitals",
	Short: "Daily health metrics sync and reporting",
	Long: `vitals syncs daily health metrics from a wearable gateway into a local
SQLite database and builds daily, weekly, and monthly summaries.

Run the background daemon with "vitals run", or use the subcommands for
one-off syncs, backfills, reports, and manual entries.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initApp()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if store != nil {
			store.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "",
		"config file path (default vitals.yaml, env VITALS_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "",
		"SQLite database path (overrides config, env VITALS_DB)")
}

// initApp loads configuration and opens the store. Environment
// variables use the VITALS_ prefix and sit between flags (highest
// precedence) and the YAML file.
func initApp() error {
	viper.SetEnvPrefix("VITALS")
	viper.AutomaticEnv()

	path := cfgPath
	if path == "" {
		path = viper.GetString("config")
	}
	if path == "" {
		path = "vitals.yaml"
	}

	var err error
	cfg, err = config.Load(path)
	if err != nil {
		return err
	}

	switch {
	case dbPath != "":
		cfg.DatabasePath = dbPath
	case viper.GetString("db") != "":
		cfg.DatabasePath = viper.GetString("db")
	}
	if token := viper.GetString("provider_token"); token != "" {
		cfg.Provider.Token = token
	}

	store, err = storage.NewStore(context.Background(), &storage.Config{Path: cfg.DatabasePath})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	return nil
}

// newProviderClient builds the gateway client, erroring when the
// gateway is not configured. Commands that only read the store never
// call this.
func newProviderClient() (provider.Client, error) {
	if cfg.Provider.BaseURL == "" {
		return nil, fmt.Errorf("provider.base_url is not configured; set it in the config file")
	}
	return provider.NewHTTPClient(cfg.Provider.BaseURL, cfg.Provider.Token), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
