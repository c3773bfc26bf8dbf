package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"chronostat/domain/core"
	domainstats "chronostat/domain/stats"
)

func sampleReport() *domainstats.Report {
	return &domainstats.Report{
		ID:        core.NewReportID(),
		Source:    "experiment.csv",
		CreatedAt: core.Now(),
		Trials:    10000,
		Seed:      42,
		Descriptives: []domainstats.Descriptives{
			{Name: "standard", Count: 4, Mean: 11.5, StdDev: 1.291, Min: 10, Q25: 10.5, Median: 11.5, Q75: 12.5, Max: 13},
			{Name: "advanced", Count: 4, Missing: 1, Mean: 1.5, StdDev: 1.291, Min: 0, Q25: 0.5, Median: 1.5, Q75: 2.5, Max: 3},
		},
		Pairwise: []domainstats.PairwiseComparison{
			{
				A: "standard", B: "advanced", MeanDiff: 10, CohenD: 8.94,
				Result: &domainstats.PermutationResult{Observed: 10, PValue: 0.0286, Extreme: 286, Trials: 10000, Marker: domainstats.MarkerFor(0.0286)},
			},
			{A: "standard", B: "delayed", Error: "condition column not found"},
		},
		OneSample: []domainstats.ReferenceComparison{
			{
				Condition: "standard", Reference: 750,
				Result: &domainstats.TTestResult{Test: domainstats.TestOneSampleT, T: -1144.1, DoF: 3, PValue: 0.0000001, Mean: 11.5, Mu: 750, N: 4, Marker: domainstats.MarkerFor(0.0000001)},
			},
		},
	}
}

func render(t *testing.T, format Format, r Renderable) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, NewWriterFormatter(format, &buf, false).Output(r))
	return buf.String()
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"":         FormatText,
		"TEXT":     FormatText,
		"json":     FormatJSON,
		"yml":      FormatYAML,
		"md":       FormatMarkdown,
		"html":     FormatHTML,
		"xlsx":     FormatXLSX,
		" excel ":  FormatXLSX,
		"markdown": FormatMarkdown,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("pdf")
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestOutput_Text(t *testing.T) {
	out := render(t, FormatText, NewReportDocument(sampleReport()))

	assert.Contains(t, out, "Analysis of experiment.csv")
	assert.Contains(t, out, "standard vs advanced")
	assert.Contains(t, out, "p=0.029")
	assert.Contains(t, out, "p<0.001")
	assert.Contains(t, out, "error:")
	assert.Contains(t, out, "1 comparison(s) failed")
	assert.NotContains(t, out, "Paired t-tests")
}

func TestOutput_Markdown(t *testing.T) {
	out := render(t, FormatMarkdown, NewReportDocument(sampleReport()))

	assert.True(t, strings.HasPrefix(out, "# Analysis of experiment.csv"))
	assert.Contains(t, out, "## Pairwise permutation tests")
	assert.Contains(t, out, "| standard vs advanced | 10.000 | 8.940 | p=0.029 | * |  |")
}

func TestOutput_HTML(t *testing.T) {
	out := render(t, FormatHTML, NewReportDocument(sampleReport()))

	assert.Contains(t, out, "<html")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "standard vs advanced")
}

func TestOutput_JSON(t *testing.T) {
	out := render(t, FormatJSON, NewReportDocument(sampleReport()))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "experiment.csv", decoded["source"])
	pairwise := decoded["pairwise"].([]any)
	require.Len(t, pairwise, 2)
	first := pairwise[0].(map[string]any)["result"].(map[string]any)
	assert.Equal(t, "*", first["marker"])
}

func TestOutput_YAML(t *testing.T) {
	out := render(t, FormatYAML, NewReportDocument(sampleReport()))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "experiment.csv", decoded["source"])
	assert.Equal(t, 42, decoded["seed"])
}

func TestOutput_XLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriterFormatter(FormatXLSX, &buf, false).Output(NewReportDocument(sampleReport())))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Descriptive statistics", "Pairwise permutation tests", "One-sample t-tests"}, f.GetSheetList())

	rows, err := f.GetRows("Pairwise permutation tests")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Comparison", rows[0][0])
	assert.Equal(t, "standard vs advanced", rows[1][0])
	assert.Equal(t, "10", rows[1][1])
}

func TestOutput_XLSXNeedsReport(t *testing.T) {
	doc := &PermutationDocument{A: "a", B: "b", Result: &domainstats.PermutationResult{PValue: 0.5, Trials: 10, Marker: domainstats.MarkerFor(0.5)}}
	err := NewWriterFormatter(FormatXLSX, &bytes.Buffer{}, false).Output(doc)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestPermutationAndTTestDocuments(t *testing.T) {
	perm := &PermutationDocument{A: "standard", B: "advanced", Result: &domainstats.PermutationResult{
		Observed: 10, PValue: 0.0286, Extreme: 286, Trials: 10000, Marker: domainstats.MarkerFor(0.0286),
	}}
	out := render(t, FormatText, perm)
	assert.Contains(t, out, "Permutation test: standard vs advanced")
	assert.Contains(t, out, "286")

	tt := &TTestDocument{Label: "pre vs post", Result: &domainstats.TTestResult{
		Test: domainstats.TestPairedT, T: -17, DoF: 3, PValue: 0.000443, N: 4, Truncated: 1, Marker: domainstats.MarkerFor(0.000443),
	}}
	out = render(t, FormatText, tt)
	assert.Contains(t, out, "paired_t: pre vs post")
	assert.Contains(t, out, "1 unmatched observation(s) dropped")

	out = render(t, FormatJSON, tt)
	assert.Contains(t, out, `"truncated": 1`)
}

func TestMarkerColorKeepsText(t *testing.T) {
	for _, m := range []string{"***", "**", "*", "n.s."} {
		assert.Contains(t, MarkerColor(m), m)
	}
	assert.Equal(t, "", MarkerColor(""))
}

func TestFormatterNotices(t *testing.T) {
	var buf bytes.Buffer
	f := NewWriterFormatter(FormatText, &buf, false)

	f.Success("wrote %s", "report.json")
	f.Warning("%d comparisons could not be computed", 2)

	assert.Equal(t, "wrote report.json\nWARNING: 2 comparisons could not be computed\n", buf.String())
}

func TestReportDocumentShowsRunID(t *testing.T) {
	rep := sampleReport()
	rep.RunID = "pilot"

	var buf bytes.Buffer
	require.NoError(t, NewReportDocument(rep).RenderText(&buf, false))
	assert.Contains(t, buf.String(), "seed 42, run pilot")
}
