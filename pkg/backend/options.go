package backend

// ReadOptions carries the per-format reader configuration. It replaces an
// open keyword bag with named, statically checked fields; each format reads
// only its own section and ignores the rest. The zero value is valid for
// every format.
type ReadOptions struct {
	// CSV configures the delimited-text reader
	CSV CSVOptions `yaml:"csv" json:"csv"`

	// JSON configures the JSON array and JSON lines readers
	JSON JSONOptions `yaml:"json" json:"json"`

	// FixedWidth configures the fixed-width text reader
	FixedWidth FixedWidthOptions `yaml:"fixed_width" json:"fixed_width"`

	// XML configures the markup reader
	XML XMLOptions `yaml:"xml" json:"xml"`

	// Excel configures the xlsx reader
	Excel ExcelOptions `yaml:"excel" json:"excel"`

	// Parquet configures the Parquet reader
	Parquet ParquetOptions `yaml:"parquet" json:"parquet"`
}

// CSVOptions configures delimited-text parsing.
type CSVOptions struct {
	// Delimiter is the field separator; ',' when unset
	Delimiter rune `yaml:"delimiter" json:"delimiter"`
	// Comment skips lines starting with this rune when set
	Comment rune `yaml:"comment" json:"comment"`
	// NoHeader treats the first row as data and names columns column_0..n
	NoHeader bool `yaml:"no_header" json:"no_header"`
	// TrimSpace trims leading whitespace in fields
	TrimSpace bool `yaml:"trim_space" json:"trim_space"`
}

// JSONOptions configures JSON parsing.
type JSONOptions struct {
	// KeepStrings disables numeric and boolean inference on decoded values
	KeepStrings bool `yaml:"keep_strings" json:"keep_strings"`
}

// FixedWidthOptions configures fixed-width text parsing. Widths is required;
// the reader fails without it.
type FixedWidthOptions struct {
	// Widths lists the character width of each column, left to right
	Widths []int `yaml:"widths" json:"widths"`
	// Columns names the columns; column_0..n when empty and NoHeader is set
	Columns []string `yaml:"columns" json:"columns"`
	// NoHeader treats the first line as data
	NoHeader bool `yaml:"no_header" json:"no_header"`
}

// XMLOptions configures markup parsing.
type XMLOptions struct {
	// RowElement is the element name holding one row; when empty every
	// direct child of the document root is a row
	RowElement string `yaml:"row_element" json:"row_element"`
}

// ExcelOptions configures xlsx parsing.
type ExcelOptions struct {
	// Sheet is the worksheet name; the first sheet when empty
	Sheet string `yaml:"sheet" json:"sheet"`
	// NoHeader treats the first row as data and names columns column_0..n
	NoHeader bool `yaml:"no_header" json:"no_header"`
}

// ParquetOptions configures Parquet parsing.
type ParquetOptions struct {
	// BatchSize is the Arrow record batch size; the reader default when zero
	BatchSize int64 `yaml:"batch_size" json:"batch_size"`
}
