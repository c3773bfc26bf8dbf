package excel

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"chronostat/domain/core"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadTable_CSVWithHeader(t *testing.T) {
	path := writeFile(t, "distance.csv", "Standard,Advanced,Delayed\n10,12,\n11, NA ,14\n12,13,15\n")

	table, err := NewDataReader(DefaultReaderConfig(path)).ReadTable(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Standard", "Advanced", "Delayed"}, table.Names())
	col, ok := table.Column("advanced")
	require.True(t, ok)
	assert.Equal(t, []float64{12, 13}, col.Values)
	assert.Equal(t, 1, col.Missing)

	col, _ = table.Column("delayed")
	assert.Equal(t, []float64{14, 15}, col.Values)
}

func TestReadTable_HeaderlessWithNames(t *testing.T) {
	path := writeFile(t, "fatigue.csv", "3,5,2,4,1,3\n4,6,2,5,2,4\n")
	cfg := DefaultReaderConfig(path)
	cfg.HasHeader = false
	cfg.ColumnNames = []string{"Standard_pre", "Standard_post", "Advanced_pre", "Advanced_post", "Delayed_pre", "Delayed_post"}

	table, err := NewDataReader(cfg).ReadTable(context.Background())
	require.NoError(t, err)

	assert.Len(t, table.Columns, 6)
	s, err := table.Sample("delayed_post")
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 4}, s.Values)
}

func TestReadTable_UseColumns(t *testing.T) {
	path := writeFile(t, "wide.csv", "a,b,c,notes\n1,2,3,x\n")
	cfg := DefaultReaderConfig(path)
	cfg.UseColumns = 3

	table, err := NewDataReader(cfg).ReadTable(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, table.Names())
}

func TestReadTable_RejectsText(t *testing.T) {
	path := writeFile(t, "bad.csv", "standard,advanced\n1,2\n3,abc\n")

	_, err := NewDataReader(DefaultReaderConfig(path)).ReadTable(context.Background())
	require.Error(t, err)
	assert.True(t, core.IsNonFinite(err))
	assert.Contains(t, err.Error(), `column "advanced" row 3`)
}

func TestReadTable_RejectsInfinity(t *testing.T) {
	path := writeFile(t, "inf.csv", "standard\nInf\n")

	_, err := NewDataReader(DefaultReaderConfig(path)).ReadTable(context.Background())
	assert.True(t, core.IsNonFinite(err))
}

func TestReadTable_MissingFile(t *testing.T) {
	_, err := NewDataReader(DefaultReaderConfig(filepath.Join(t.TempDir(), "nope.csv"))).ReadTable(context.Background())
	assert.True(t, core.IsNotFoundError(err))
}

func TestReadTable_HeaderOnly(t *testing.T) {
	path := writeFile(t, "empty.csv", "standard,advanced\n")

	_, err := NewDataReader(DefaultReaderConfig(path)).ReadTable(context.Background())
	assert.ErrorIs(t, err, core.ErrInsufficientData)
}

func TestReadTable_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"standard", "advanced"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{1.5, 2}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{2.5}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := NewDataReader(DefaultReaderConfig(path)).ReadTable(context.Background())
	require.NoError(t, err)

	std, _ := table.Column("standard")
	adv, _ := table.Column("advanced")
	assert.Equal(t, []float64{1.5, 2.5}, std.Values)
	assert.Equal(t, []float64{2}, adv.Values)
	assert.Equal(t, 1, adv.Missing)
}

func TestReadTable_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDataReader(DefaultReaderConfig("x.csv")).ReadTable(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
