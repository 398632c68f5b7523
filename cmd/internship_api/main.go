// Package main provides the entry point for the internship board API server and its maintenance commands.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jonathan/internship-board/internal/config"
	"github.com/jonathan/internship-board/internal/db"
	"github.com/jonathan/internship-board/internal/logger"
	"github.com/jonathan/internship-board/internal/storage"
)

const app = "internship_api"

// cli holds the state shared by every subcommand of one root command.
type cli struct {
	v       *viper.Viper
	cfgFile string
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:           app,
		Short:         "Internship board HTTP API server",
		Long:          "Internship board serves internship listings, resumes and applications, and ranks internships by how well a resume's skills cover them.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.cfgFile, "config", "", "config file (yaml, json or toml)")
	flags.String("database-url", "", "Postgres connection string; empty uses the in-memory store")
	flags.Bool("debug", false, "enable debug logging")
	flags.Bool("json", false, "log in JSON format")

	_ = c.v.BindPFlag("database-url", flags.Lookup("database-url"))
	_ = c.v.BindPFlag("log.debug", flags.Lookup("debug"))
	_ = c.v.BindPFlag("log.json", flags.Lookup("json"))

	rootCmd.AddCommand(
		newServeCmd(c),
		newRankCmd(c),
		newMigrateCmd(c),
		newSeedCmd(c),
	)
	return rootCmd
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads the configuration and builds the logger.
func (c *cli) setup() (*config.Config, *zap.Logger, error) {
	if c.cfgFile != "" {
		if err := config.ReadFile(c.v, c.cfgFile); err != nil {
			return nil, nil, err
		}
	}

	cfg, err := config.Load(c.v)
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, log, nil
}

// openStore returns the Postgres store when a database URL is configured and the in-memory store otherwise.
// The returned func releases the store.
func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (storage.Store, func(), error) {
	if cfg.UsesDatabase() {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := database.Migrate(ctx); err != nil {
			database.Close()
			return nil, nil, err
		}
		log.Info("using postgres store")
		return database, database.Close, nil
	}

	if !cfg.SeedSampleData {
		log.Info("using empty in-memory store")
		return storage.NewMemStore(), func() {}, nil
	}

	store, err := storage.NewSeededMemStore()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to seed in-memory store: %w", err)
	}
	log.Info("using in-memory store with sample internships")
	return store, func() {}, nil
}
