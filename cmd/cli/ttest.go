package main

import (
	"github.com/spf13/cobra"

	"chronostat/adapters/stats/ttest"
	"chronostat/internal/report"
)

func newTTestCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ttest",
		Short: "Student t-tests on columns of a results table",
	}
	cmd.AddCommand(newOneSampleCmd(opts), newPairedCmd(opts))
	return cmd
}

func newOneSampleCmd(opts *globalOptions) *cobra.Command {
	var (
		table tableOptions
		col   string
		mu    float64
	)

	cmd := &cobra.Command{
		Use:   "one-sample",
		Short: "Test whether a column's mean differs from a reference value",
		Long: `Two-sided one-sample t-test against a reference value.

Example: chronostat ttest one-sample -f temporal.csv --col standard --mu 750`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			t, err := table.load(cmd.Context(), c)
			if err != nil {
				return err
			}
			s, err := t.Sample(col)
			if err != nil {
				return err
			}
			res, err := ttest.OneSample(s, mu)
			if err != nil {
				return err
			}
			return output(opts, &report.TTestDocument{Label: s.Name, Result: res})
		},
	}

	table.register(cmd)
	cmd.Flags().StringVar(&col, "col", "", "Column to test")
	cmd.Flags().Float64Var(&mu, "mu", 0, "Reference mean")
	_ = cmd.MarkFlagRequired("col")
	return cmd
}

func newPairedCmd(opts *globalOptions) *cobra.Command {
	var (
		table     tableOptions
		pre, post string
	)

	cmd := &cobra.Command{
		Use:   "paired",
		Short: "Test whether paired pre and post columns differ",
		Long: `Two-sided paired t-test. Columns of unequal length are truncated to the
shorter one.

Example: chronostat ttest paired -f fatigue.csv --no-header \
  --names Standard_pre,Standard_post,Advanced_pre,Advanced_post,Delayed_pre,Delayed_post \
  --pre Standard_pre --post Standard_post`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			t, err := table.load(cmd.Context(), c)
			if err != nil {
				return err
			}
			sPre, err := t.Sample(pre)
			if err != nil {
				return err
			}
			sPost, err := t.Sample(post)
			if err != nil {
				return err
			}
			res, err := ttest.Paired(sPre, sPost)
			if err != nil {
				return err
			}
			return output(opts, &report.TTestDocument{Label: sPre.Name + " vs " + sPost.Name, Result: res})
		},
	}

	table.register(cmd)
	cmd.Flags().StringVar(&pre, "pre", "", "Column measured before the intervention")
	cmd.Flags().StringVar(&post, "post", "", "Column measured after the intervention")
	_ = cmd.MarkFlagRequired("pre")
	_ = cmd.MarkFlagRequired("post")
	return cmd
}
