package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goldbench/repairshop/apps/api/internal/platform/config"
	firestoreclient "github.com/goldbench/repairshop/apps/api/internal/platform/firestore"
	"github.com/goldbench/repairshop/apps/api/internal/platform/logging"
)

type rootOptions struct {
	verbose bool
	timeout time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "repairctl",
		Short:         "Operate the repair shop backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			_ = godotenv.Load(".env.local", ".env")
		},
	}
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 2*time.Minute, "Operation timeout")

	cmd.AddCommand(
		newQuoteCmd(opts),
		newRefreshStatsCmd(opts),
		newInspectCmd(opts),
		newBackfillCategoriesCmd(opts),
		newCleanTextCmd(opts),
		newTokenCmd(),
	)
	return cmd
}

// session is an open Firestore connection with its logger.
type session struct {
	client *firestore.Client
	logger *zap.Logger
}

func (s *session) Close() {
	_ = s.logger.Sync()
	_ = s.client.Close()
}

func openSession(ctx context.Context, opts *rootOptions) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}
	logger, err := logging.New(opts.verbose)
	if err != nil {
		return nil, fmt.Errorf("logger init: %w", err)
	}
	client, source, err := firestoreclient.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug("connected to Firestore",
		zap.String("project", cfg.FirebaseProjectID),
		zap.String("credentials", source),
	)
	return &session{client: client, logger: logger}, nil
}

func withTimeout(cmd *cobra.Command, opts *rootOptions) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), opts.timeout)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
