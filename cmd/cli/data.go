package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"chronostat/adapters/excel"
	"chronostat/domain/core"
	"chronostat/domain/dataset"
	"chronostat/internal/container"
	"chronostat/internal/report"
	"chronostat/ports"
)

// tableOptions select and shape the results table a command reads
type tableOptions struct {
	file     string
	sheet    string
	noHeader bool
	names    []string
}

func (o *tableOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.file, "file", "f", "", "Results table (.csv or .xlsx); default DATA_FILE")
	cmd.Flags().StringVar(&o.sheet, "sheet", "", "Worksheet of an xlsx file (default DATA_SHEET or the first sheet)")
	cmd.Flags().BoolVar(&o.noHeader, "no-header", false, "The file has no header row")
	cmd.Flags().StringSliceVar(&o.names, "names", nil, "Column names for a headerless file, in order")
}

func (o *tableOptions) load(ctx context.Context, c *container.Container) (*dataset.Table, error) {
	src, err := o.reader(c)
	if err != nil {
		return nil, err
	}
	return src.ReadTable(ctx)
}

func (o *tableOptions) reader(c *container.Container) (ports.TableReader, error) {
	path := o.file
	if path == "" {
		path = c.Config.Data.File
	}
	if path == "" {
		return nil, fmt.Errorf("%w: no results file given (--file or DATA_FILE)", core.ErrInvalidInput)
	}

	cfg := excel.DefaultReaderConfig(path)
	cfg.Sheet = o.sheet
	if cfg.Sheet == "" {
		cfg.Sheet = c.Config.Data.Sheet
	}
	cfg.HasHeader = !o.noHeader
	if len(o.names) > 0 {
		cfg.ColumnNames = o.names
		cfg.UseColumns = len(o.names)
	}

	return excel.NewDataReader(cfg).WithLogger(c.Logger), nil
}

// parseValues parses a comma separated list of numbers
func parseValues(name, list string) ([]float64, error) {
	if strings.TrimSpace(list) == "" {
		return nil, nil
	}
	parts := strings.Split(list, ",")
	values := make([]float64, 0, len(parts))
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s value %d %q", core.ErrInvalidInput, name, i+1, part)
		}
		values = append(values, v)
	}
	return values, nil
}

// output renders doc with the global format flags
func output(opts *globalOptions, doc report.Renderable) error {
	format, err := report.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	if format == report.FormatXLSX && opts.out == "" {
		return fmt.Errorf("%w: xlsx output needs --out", core.ErrInvalidInput)
	}

	f, err := report.NewFormatter(format, opts.out, !opts.noColor)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Output(doc); err != nil {
		return err
	}
	if opts.out != "" {
		notices(opts).Success("wrote %s report to %s", format, opts.out)
	}
	return nil
}

// notices writes status lines to stderr so they never mix with the report
func notices(opts *globalOptions) *report.Formatter {
	return report.NewWriterFormatter(report.FormatText, os.Stderr, !opts.noColor)
}
