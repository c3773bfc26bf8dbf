package main

import (
	"github.com/spf13/cobra"

	"chronostat/app"
	"chronostat/internal/report"
)

func newCompareCmd(opts *globalOptions) *cobra.Command {
	var (
		table      tableOptions
		conditions []string
		target     string
		references string
		pairs      []string
		welch      bool
		quiet      bool
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Analyze every condition of a results table",
		Long: `Describe each condition, compare every pair of conditions with a
permutation test (or every condition against --target) and optionally run
one-sample and paired t-tests.

Example: chronostat compare -f temporal.csv --reference 750,675,825
Example: chronostat compare -f fatigue.csv --no-header \
  --names Standard_pre,Standard_post,Advanced_pre,Advanced_post,Delayed_pre,Delayed_post \
  --conditions Standard_post,Advanced_post,Delayed_post \
  --pair Standard_pre:Standard_post --pair Advanced_pre:Advanced_post --pair Delayed_pre:Delayed_post
Example: chronostat compare -f temporal.xlsx --format xlsx -o report.xlsx
Example: chronostat compare -f distance.csv --target Delayed`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := setup(cmd, opts)
			if err != nil {
				return err
			}

			plan := c.DefaultPlan()
			if cmd.Flags().Changed("conditions") {
				plan.Conditions = conditions
			} else if target != "" {
				plan.Conditions = nil
			}
			plan.Target = target
			if plan.References, err = app.ParseReferences(plan.Conditions, references); err != nil {
				return err
			}
			if plan.Pairs, err = app.ParsePairs(pairs); err != nil {
				return err
			}
			plan.Welch = welch

			src, err := table.reader(c)
			if err != nil {
				return err
			}

			svc := c.AnalysisService(c.Engine())
			var bar *tracker
			if !quiet {
				bar = newTracker("comparisons", app.ComparisonCount(plan))
				svc.OnProgress(bar.Tick)
			}

			rep, err := svc.AnalyzeSource(cmd.Context(), src, plan)
			if bar != nil {
				bar.Finish()
			}
			if err != nil {
				return err
			}
			if n := rep.Failures(); n > 0 {
				notices(opts).Warning("%d comparisons could not be computed", n)
			}
			return output(opts, report.NewReportDocument(rep))
		},
	}

	table.register(cmd)
	cmd.Flags().StringSliceVar(&conditions, "conditions", nil, "Condition columns to compare pairwise (default CONDITIONS)")
	cmd.Flags().StringVar(&target, "target", "", "Compare every other condition (or every other column) against this one")
	cmd.Flags().StringVar(&references, "reference", "", "Reference means for one-sample t-tests, one per condition")
	cmd.Flags().StringArrayVar(&pairs, "pair", nil, "pre:post columns for a paired t-test (repeatable)")
	cmd.Flags().BoolVar(&welch, "welch", false, "Add a Welch t-test to each pairwise comparison")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Hide the progress bar")
	return cmd
}
