package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/internship-board/internal/ranking"
)

func newRankCmd(c *cli) *cobra.Command {
	var resumeID string

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank active internships for a resume",
		Long:  `Score every active internship against a resume's skills and print them as JSON, best match first.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := c.setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			store, closeStore, err := openStore(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer closeStore()

			matches, err := ranking.NewRanker(store, store).RankForResume(cmd.Context(), resumeID)
			if err != nil {
				return fmt.Errorf("failed to rank internships: %w", err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(matches)
		},
	}

	cmd.Flags().StringVar(&resumeID, "resume-id", "", "ID of the resume to rank internships for (required)")
	_ = cmd.MarkFlagRequired("resume-id")
	return cmd
}
