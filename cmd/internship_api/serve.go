package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/internship-board/internal/server"
)

func newServeCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long:  `Start an HTTP server that exposes REST endpoints for internships, resumes, applications and matching.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(c, cmd)
		},
	}

	cmd.Flags().Int("port", 8080, "Port to listen on")
	_ = c.v.BindPFlag("port", cmd.Flags().Lookup("port"))
	return cmd
}

func runServe(c *cli, cmd *cobra.Command) error {
	cfg, log, err := c.setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	srv, err := server.New(cfg, store, log)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(ctx)
}
