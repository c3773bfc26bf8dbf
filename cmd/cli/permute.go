package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"chronostat/domain/core"
	domainstats "chronostat/domain/stats"
	"chronostat/internal/report"
)

func newPermuteCmd(opts *globalOptions) *cobra.Command {
	var (
		table      tableOptions
		a, b       string
		colA, colB string
	)

	cmd := &cobra.Command{
		Use:   "permute",
		Short: "Permutation test of the difference in means between two samples",
		Long: `Estimate the two-sided p-value of mean(a) - mean(b) by random relabeling.

Samples come either inline or from two columns of a results table.

Example: chronostat permute --a 10,12,11,13 --b 1,2,0,3 --trials 10000 --seed 42
Example: chronostat permute -f results.csv --col-a standard --col-b delayed`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := setup(cmd, opts)
			if err != nil {
				return err
			}

			var sa, sb domainstats.Sample
			switch {
			case colA != "" || colB != "":
				t, err := table.load(cmd.Context(), c)
				if err != nil {
					return err
				}
				if sa, err = t.Sample(colA); err != nil {
					return err
				}
				if sb, err = t.Sample(colB); err != nil {
					return err
				}
			case a != "" || b != "":
				va, err := parseValues("a", a)
				if err != nil {
					return err
				}
				vb, err := parseValues("b", b)
				if err != nil {
					return err
				}
				sa, sb = domainstats.NewSample("a", va), domainstats.NewSample("b", vb)
			default:
				return fmt.Errorf("%w: give --a/--b or --col-a/--col-b", core.ErrInvalidInput)
			}

			res, err := c.Engine().Run(cmd.Context(), sa, sb)
			if err != nil {
				return err
			}
			return output(opts, &report.PermutationDocument{A: sa.Name, B: sb.Name, Result: res})
		},
	}

	table.register(cmd)
	cmd.Flags().StringVar(&a, "a", "", "First sample, comma separated")
	cmd.Flags().StringVar(&b, "b", "", "Second sample, comma separated")
	cmd.Flags().StringVar(&colA, "col-a", "", "Column holding the first sample")
	cmd.Flags().StringVar(&colB, "col-b", "", "Column holding the second sample")
	return cmd
}
