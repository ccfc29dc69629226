package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goldbench/repairshop/apps/api/internal/business/dashboard"
	"github.com/goldbench/repairshop/apps/api/internal/business/status"
	"github.com/goldbench/repairshop/apps/api/internal/repository"
	"github.com/goldbench/repairshop/apps/api/pkg/model"
)

func newRefreshStatsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh-stats",
		Short: "Recompute and persist the dashboard snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := withTimeout(cmd, root)
			defer cancel()
			s, err := openSession(ctx, root)
			if err != nil {
				return err
			}
			defer s.Close()

			refresher := dashboard.NewRefresher(
				repository.NewRepairRepository(s.client),
				repository.NewInvoiceRepository(s.client),
				repository.NewStatsRepository(s.client),
				s.logger,
			)
			stats, err := refresher.Refresh(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "repairs:   %d (%d active, %d completed)\n", stats.TotalRepairs, stats.ActiveRepairs, stats.CompletedRepairs)
			fmt.Fprintf(out, "revenue:   %d\n", stats.TotalRevenue)
			fmt.Fprintf(out, "avg days:  %s\n", stats.AverageCompletionDays)
			fmt.Fprintf(out, "invoices:  %d (%.2f outstanding)\n", stats.Invoices.Count, stats.Invoices.Outstanding)
			return nil
		},
	}
}

func newInspectCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <repairID>",
		Short: "Dump a repair document with its status classification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := withTimeout(cmd, root)
			defer cancel()
			s, err := openSession(ctx, root)
			if err != nil {
				return err
			}
			defer s.Close()

			m, err := repository.NewRepairRepository(s.client).Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("inspect %s: %w", args[0], err)
			}
			return printJSON(cmd.OutOrStdout(), struct {
				Repair model.Repair      `json:"repair"`
				Status status.Descriptor `json:"status"`
			}{m, status.Classify(m.Status)})
		},
	}
}
