package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goldbench/repairshop/apps/api/internal/business/status"
	"github.com/goldbench/repairshop/apps/api/internal/repository"
	"github.com/goldbench/repairshop/apps/api/pkg/model"
)

func newBackfillCategoriesCmd(root *rootOptions) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "backfill-categories",
		Short: "Write the derived statusCategory field on every repair",
		Long: `Classify every stored status string and write the resulting category
to statusCategory. The status string itself is never modified.`,
		Args: cobra.NoArgs,
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
			pending := pendingCategories(repairs)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d of %d repairs need a category\n", len(pending), len(repairs))
			if dryRun {
				ids := make([]string, 0, len(pending))
				for id := range pending {
					ids = append(ids, id)
				}
				sort.Strings(ids)
				for _, id := range ids {
					fmt.Fprintf(out, "  %s -> %s\n", id, pending[id])
				}
				return nil
			}
			if err := repo.SetCategories(ctx, pending); err != nil {
				return err
			}
			s.logger.Info("status categories backfilled", zap.Int("updated", len(pending)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List changes without writing")
	return cmd
}

// pendingCategories maps repair IDs to the category their status classifies
// into, for repairs whose stored category differs.
func pendingCategories(repairs []model.Repair) map[string]string {
	out := make(map[string]string)
	for _, r := range repairs {
		if r.ID == "" {
			continue
		}
		category := string(status.CategoryOf(r.Status))
		if r.StatusCategory != category {
			out[r.ID] = category
		}
	}
	return out
}
