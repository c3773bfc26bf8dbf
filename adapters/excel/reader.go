package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"chronostat/domain/core"
	"chronostat/domain/dataset"
	"chronostat/internal"
)

// missingTokens are cells dropped as missing rather than rejected
var missingTokens = map[string]bool{
	"":    true,
	"na":  true,
	"n/a": true,
	"nan": true,
}

// DataReader handles reading Excel and CSV results tables
type DataReader struct {
	cfg      ReaderConfig
	fileType string // "xlsx" or "csv"
	logger   *internal.Logger
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(cfg ReaderConfig) *DataReader {
	ext := strings.ToLower(filepath.Ext(cfg.FilePath))
	fileType := "csv"
	if ext == ".xlsx" || ext == ".xlsm" {
		fileType = "xlsx"
	}
	return &DataReader{cfg: cfg, fileType: fileType, logger: internal.DefaultLogger}
}

// WithLogger replaces the reader logger
func (r *DataReader) WithLogger(l *internal.Logger) *DataReader {
	r.logger = l
	return r
}

// ReadTable reads the file into a table of numeric condition columns
func (r *DataReader) ReadTable(ctx context.Context) (*dataset.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.logger.Debug("[DataReader] reading %s file: %s", r.fileType, r.cfg.FilePath)

	if _, err := os.Stat(r.cfg.FilePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s file %s", core.ErrNotFound, strings.ToUpper(r.fileType), r.cfg.FilePath)
	}

	var (
		rows [][]string
		err  error
	)
	start := time.Now()
	switch r.fileType {
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		rows, err = r.readCSVRows()
	}
	if err != nil {
		return nil, err
	}
	r.logger.Debug("[DataReader] %d rows read in %.2fms", len(rows), float64(time.Since(start).Nanoseconds())/1e6)

	return ParseRows(r.cfg.FilePath, rows, r.cfg)
}

// readExcelRows reads the configured sheet (or the first one)
func (r *DataReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := r.cfg.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	return rows, nil
}

func (r *DataReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return rows, nil
}

// ParseRows converts raw string rows into numeric columns. Missing cells are
// dropped per column; any other unparsable or infinite cell is an error.
func ParseRows(source string, rows [][]string, cfg ReaderConfig) (*dataset.Table, error) {
	var headers []string
	body := rows
	if cfg.HasHeader {
		if len(rows) == 0 {
			return nil, fmt.Errorf("%w: %s has no header row", core.ErrInvalidInput, source)
		}
		for _, h := range rows[0] {
			headers = append(headers, strings.TrimSpace(h))
		}
		body = rows[1:]
	} else {
		width := 0
		for _, row := range rows {
			if len(row) > width {
				width = len(row)
			}
		}
		for i := 0; i < width; i++ {
			headers = append(headers, strconv.Itoa(i))
		}
	}

	if cfg.UseColumns > 0 && cfg.UseColumns < len(headers) {
		headers = headers[:cfg.UseColumns]
	}
	if len(headers) == 0 {
		return nil, fmt.Errorf("%w: %s has no columns", core.ErrInvalidInput, source)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: %s has no data rows", core.ErrInsufficientData, source)
	}

	columns := make([]dataset.Column, len(headers))
	for j, h := range headers {
		columns[j] = dataset.Column{Name: h}
	}

	for i, row := range body {
		line := i + 1
		if cfg.HasHeader {
			line++
		}
		for j := range columns {
			cell := ""
			if j < len(row) {
				cell = strings.TrimSpace(row[j])
			}
			if missingTokens[strings.ToLower(cell)] {
				columns[j].Missing++
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil || math.IsInf(v, 0) {
				return nil, core.NewUnparsableCellError(columns[j].Name, line, cell)
			}
			columns[j].Values = append(columns[j].Values, v)
		}
	}

	table := dataset.NewTable(source, columns...)
	if len(cfg.ColumnNames) > 0 {
		if err := table.Rename(cfg.ColumnNames); err != nil {
			return nil, err
		}
	}
	return table, nil
}
