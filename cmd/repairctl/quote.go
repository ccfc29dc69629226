package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goldbench/repairshop/apps/api/internal/business/pricing"
	"github.com/goldbench/repairshop/apps/api/internal/repository"
)

func newQuoteCmd(root *rootOptions) *cobra.Command {
	var (
		hours    float64
		material float64
		live     bool
	)
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Print a repair price breakdown",
		Long: `Print the price breakdown for a repair.

Uses the built-in rate card unless --live is given, in which case the
pricing settings stored in Firestore are used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := pricing.Defaults()
			if live {
				ctx, cancel := withTimeout(cmd, root)
				defer cancel()
				s, err := openSession(ctx, root)
				if err != nil {
					return err
				}
				defer s.Close()
				stored, err := repository.NewSettingsRepository(s.client).GetPricing(ctx, p.Settings())
				if err != nil {
					return err
				}
				p = pricing.FromSettings(stored)
			}
			b := pricing.Quote(pricing.Sanitize(hours), pricing.Sanitize(material), p)
			return writeBreakdown(cmd, b)
		},
	}
	cmd.Flags().Float64Var(&hours, "hours", 0, "Labor hours")
	cmd.Flags().Float64Var(&material, "material", 0, "Material cost")
	cmd.Flags().BoolVar(&live, "live", false, "Use the pricing settings stored in Firestore")
	return cmd
}

func writeBreakdown(cmd *cobra.Command, b pricing.Breakdown) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "labor\t%.2f h\t%.2f\n", b.LaborHours, b.LaborCost)
	fmt.Fprintf(tw, "materials\t%.2f\t%.2f\n", b.MaterialCost, b.MarkedUpMaterials)
	fmt.Fprintf(tw, "subtotal\t\t%.2f\n", b.Subtotal)
	fmt.Fprintf(tw, "multiplier\t\tx%.2f\n", b.BusinessMultiplier)
	fmt.Fprintf(tw, "price\t\t%.2f\n", b.Price)
	return tw.Flush()
}
