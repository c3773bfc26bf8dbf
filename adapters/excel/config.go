package excel

// ReaderConfig controls how a results table is read
type ReaderConfig struct {
	FilePath string `json:"file_path"`
	// Sheet is the worksheet read from xlsx files; empty selects the first sheet.
	Sheet string `json:"sheet"`
	// HasHeader is false for headerless exports; columns are then named by
	// ColumnNames, or "0", "1", ... when none are given.
	HasHeader   bool     `json:"has_header"`
	ColumnNames []string `json:"column_names"`
	// UseColumns keeps only the first n columns when > 0.
	UseColumns int `json:"use_columns"`
}

// DefaultReaderConfig returns sensible defaults for results tables
func DefaultReaderConfig(path string) ReaderConfig {
	return ReaderConfig{
		FilePath:  path,
		HasHeader: true,
	}
}
