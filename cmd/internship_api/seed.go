package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/internship-board/internal/db"
	"github.com/jonathan/internship-board/internal/schemas"
	"github.com/jonathan/internship-board/internal/storage"
	"github.com/jonathan/internship-board/internal/types"
)

func newSeedCmd(c *cli) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load internships into the database",
		Long: `Validate an internships JSON document against the internships schema and upsert every entry.
Without --file the built-in sample internships are loaded.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := c.setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			if !cfg.UsesDatabase() {
				return fmt.Errorf("database-url is required")
			}

			internships, err := loadInternships(file, time.Now())
			if err != nil {
				return err
			}

			database, err := db.Connect(cmd.Context(), cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer database.Close()

			if err := database.Migrate(cmd.Context()); err != nil {
				return err
			}

			for i := range internships {
				if err := database.UpsertInternship(cmd.Context(), &internships[i]); err != nil {
					return fmt.Errorf("failed to upsert internship %s: %w", internships[i].ID, err)
				}
			}

			log.Info("internships seeded", zap.Int("count", len(internships)))
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "path to an internships JSON file (defaults to the built-in samples)")
	return cmd
}

// loadInternships reads and validates the seed document at path, or the built-in samples when path is empty.
func loadInternships(path string, now time.Time) ([]types.Internship, error) {
	if path == "" {
		return storage.SampleInternships(now)
	}

	doc, err := schemas.ValidateInternshipsFile(path)
	if err != nil {
		return nil, err
	}
	return storage.ParseInternships(doc, now)
}
