package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goldbench/repairshop/apps/api/internal/repository"
	"github.com/goldbench/repairshop/apps/api/pkg/model"
	"github.com/goldbench/repairshop/apps/api/pkg/util"
)

func newCleanTextCmd(root *rootOptions) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "clean-text",
		Short: "Strip HTML remnants and stray whitespace from stored repairs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := withTimeout(cmd, root)
			defer cancel()
			s, err := openSession(ctx, root)
			if err != nil {
				return err
			}
			defer s.Close()

			repo := repository.NewRepairRepository(s.client)
			repairs, err := repo.FetchAll(ctx)
			if err != nil {
				return err
			}
			dirty := cleanedRepairs(repairs)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d of %d repairs need cleanup\n", len(dirty), len(repairs))
			if dryRun {
				for _, m := range dirty {
					fmt.Fprintf(out, "  %s: %q\n", m.ID, m.ClientName)
				}
				return nil
			}
			if err := repo.BatchUpsert(ctx, dirty); err != nil {
				return err
			}
			s.logger.Info("repair text cleaned", zap.Int("updated", len(dirty)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview changes without writing")
	return cmd
}

// cleanedRepairs returns the cleaned form of every repair whose text fields
// change under cleanup. Document IDs are kept.
func cleanedRepairs(repairs []model.Repair) []model.Repair {
	var out []model.Repair
	for _, m := range repairs {
		if m.ID == "" || !util.NeedsCleanup(m) {
			continue
		}
		out = append(out, util.CleanRepair(m))
	}
	return out
}
