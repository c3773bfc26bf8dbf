package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	domainstats "chronostat/domain/stats"
)

const colSignificance = "Sig."

// ReportDocument renders an analysis report.
type ReportDocument struct {
	Report *domainstats.Report
}

// NewReportDocument wraps a report for rendering.
func NewReportDocument(r *domainstats.Report) *ReportDocument {
	return &ReportDocument{Report: r}
}

func (d *ReportDocument) RenderData() any {
	return d.Report
}

func (d *ReportDocument) title() string {
	return fmt.Sprintf("Analysis of %s", d.Report.Source)
}

func (d *ReportDocument) subtitle() string {
	s := fmt.Sprintf("report %s, %s, %d permutations, seed %d",
		d.Report.ID, d.Report.CreatedAt, d.Report.Trials, d.Report.Seed)
	if d.Report.RunID != "" {
		s += fmt.Sprintf(", run %s", d.Report.RunID)
	}
	return s
}

// Tables returns the report sections in display order, skipping empty ones.
func (d *ReportDocument) Tables() []*Table {
	var tables []*Table
	for _, t := range []*Table{
		DescriptivesTable(d.Report.Descriptives),
		PairwiseTable(d.Report.Pairwise),
		ReferenceTable(d.Report.OneSample),
		PairedTable(d.Report.Paired),
	} {
		if len(t.Rows) > 0 {
			tables = append(tables, t)
		}
	}
	return tables
}

func (d *ReportDocument) RenderText(w io.Writer, colored bool) error {
	title := d.title()
	if colored {
		color.New(color.Bold, color.FgCyan).Fprintln(w, title)
	} else {
		fmt.Fprintln(w, title)
	}
	fmt.Fprintln(w, strings.Repeat("=", len(title)))
	fmt.Fprintln(w, d.subtitle())
	fmt.Fprintln(w)

	for _, t := range d.Tables() {
		if err := t.RenderText(w, colored); err != nil {
			return err
		}
	}
	if n := d.Report.Failures(); n > 0 {
		fmt.Fprintf(w, "%d comparison(s) failed\n", n)
	}
	return nil
}

func (d *ReportDocument) RenderMarkdown(w io.Writer) error {
	fmt.Fprintf(w, "# %s\n\n", d.title())
	fmt.Fprintf(w, "_%s_\n\n", d.subtitle())
	for _, t := range d.Tables() {
		if err := t.RenderMarkdown(w); err != nil {
			return err
		}
	}
	return nil
}

// DescriptivesTable lists per-condition summary statistics.
func DescriptivesTable(ds []domainstats.Descriptives) *Table {
	t := &Table{
		Title:   "Descriptive statistics",
		Headers: []string{"Condition", "N", "Missing", "Mean", "SD", "Min", "Q25", "Median", "Q75", "Max", "Skew", "Outliers", "Normality p"},
	}
	for _, d := range ds {
		t.Rows = append(t.Rows, []string{
			d.Name, strconv.Itoa(d.Count), strconv.Itoa(d.Missing),
			num(d.Mean), num(d.StdDev), num(d.Min), num(d.Q25), num(d.Median), num(d.Q75), num(d.Max),
			num(d.Skewness), strconv.Itoa(d.Outliers), normality(d.NormalityP),
		})
	}
	return t
}

// PairwiseTable lists permutation comparisons between conditions.
func PairwiseTable(cs []domainstats.PairwiseComparison) *Table {
	t := &Table{
		Title:   "Pairwise permutation tests",
		Headers: []string{"Comparison", "Mean diff", "Cohen's d", "p", colSignificance, "Welch p"},
	}
	for _, c := range cs {
		if c.Error != "" {
			t.Rows = append(t.Rows, []string{c.Label(), "error: " + c.Error, "", "", "", ""})
			continue
		}
		welch := ""
		if c.Welch != nil {
			welch = domainstats.FormatPValue(c.Welch.PValue)
		}
		t.Rows = append(t.Rows, []string{
			c.Label(), num(c.MeanDiff), num(c.CohenD),
			domainstats.FormatPValue(c.Result.PValue), c.Result.Marker.Short(), welch,
		})
	}
	return t
}

// ReferenceTable lists one-sample t-tests against reference values.
func ReferenceTable(cs []domainstats.ReferenceComparison) *Table {
	t := &Table{
		Title:   "One-sample t-tests",
		Headers: []string{"Condition", "Reference", "Mean", "t", "df", "p", colSignificance},
	}
	for _, c := range cs {
		if c.Error != "" {
			t.Rows = append(t.Rows, []string{c.Condition, num(c.Reference), "error: " + c.Error, "", "", "", ""})
			continue
		}
		t.Rows = append(t.Rows, append([]string{c.Condition, num(c.Reference)}, ttestCells(c.Result)...))
	}
	return t
}

// PairedTable lists paired t-tests between pre and post columns.
func PairedTable(cs []domainstats.PairedComparison) *Table {
	t := &Table{
		Title:   "Paired t-tests",
		Headers: []string{"Comparison", "Pairs", "Mean diff", "t", "df", "p", colSignificance},
	}
	for _, c := range cs {
		if c.Error != "" {
			t.Rows = append(t.Rows, []string{c.Label(), "", "error: " + c.Error, "", "", "", ""})
			continue
		}
		t.Rows = append(t.Rows, append([]string{c.Label(), strconv.Itoa(c.Result.N)}, ttestCells(c.Result)...))
	}
	return t
}

func ttestCells(r *domainstats.TTestResult) []string {
	return []string{
		num(r.Mean), num(r.T), num(r.DoF),
		domainstats.FormatPValue(r.PValue), r.Marker.Short(),
	}
}

func normality(p float64) string {
	if p == 0 {
		return "-"
	}
	return domainstats.FormatFixed(p, 3)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// PermutationDocument renders a single permutation comparison.
type PermutationDocument struct {
	A, B   string
	Result *domainstats.PermutationResult
}

func (d *PermutationDocument) RenderData() any {
	return d.Result
}

func (d *PermutationDocument) table() *Table {
	r := d.Result
	return &Table{
		Title:   fmt.Sprintf("Permutation test: %s vs %s", d.A, d.B),
		Headers: []string{"Observed", "Extreme", "Trials", "p", colSignificance},
		Rows: [][]string{{
			num(r.Observed), strconv.Itoa(r.Extreme), strconv.Itoa(r.Trials),
			domainstats.FormatPValue(r.PValue), r.Marker.Short(),
		}},
	}
}

func (d *PermutationDocument) RenderText(w io.Writer, colored bool) error {
	return d.table().RenderText(w, colored)
}

func (d *PermutationDocument) RenderMarkdown(w io.Writer) error {
	return d.table().RenderMarkdown(w)
}

// TTestDocument renders a single t-test.
type TTestDocument struct {
	Label  string
	Result *domainstats.TTestResult
}

func (d *TTestDocument) RenderData() any {
	return d.Result
}

func (d *TTestDocument) table() *Table {
	return &Table{
		Title:   fmt.Sprintf("%s: %s", d.Result.Test, d.Label),
		Headers: []string{"N", "Mean", "t", "df", "p", colSignificance},
		Rows:    [][]string{append([]string{strconv.Itoa(d.Result.N)}, ttestCells(d.Result)...)},
	}
}

func (d *TTestDocument) RenderText(w io.Writer, colored bool) error {
	if err := d.table().RenderText(w, colored); err != nil {
		return err
	}
	if d.Result.Truncated > 0 {
		fmt.Fprintf(w, "%d unmatched observation(s) dropped\n", d.Result.Truncated)
	}
	return nil
}

func (d *TTestDocument) RenderMarkdown(w io.Writer) error {
	return d.table().RenderMarkdown(w)
}
