// Package backend defines the capability interface implemented by the two
// tabular engines (native and columnar). A backend turns a file of a declared
// format into a table.Frame and renders frame scalars to text with its own
// deterministic formatting rules. The two backends support different format
// sets and different scalar-to-text details; those differences are visible to
// callers on purpose.
package backend

import (
	"context"

	"github.com/framedoc/framedoc/pkg/table"
)

// Format names a supported file format. Each backend declares its own
// enumerated subset.
type Format string

const (
	// FormatCSV is delimited text (both backends)
	FormatCSV Format = "csv"
	// FormatFixedWidth is fixed-width text (native backend)
	FormatFixedWidth Format = "fwf"
	// FormatJSON is a JSON array of objects (native backend)
	FormatJSON Format = "json"
	// FormatJSONLines is line-delimited JSON (native backend)
	FormatJSONLines Format = "jsonl"
	// FormatXML is row-per-element markup (native backend)
	FormatXML Format = "xml"
	// FormatExcel is an xlsx workbook (native backend)
	FormatExcel Format = "excel"
	// FormatParquet is Apache Parquet (columnar backend)
	FormatParquet Format = "parquet"
	// FormatIPC is Arrow IPC / Feather (columnar backend)
	FormatIPC Format = "ipc"
	// FormatAvro is Avro object container files (columnar backend)
	FormatAvro Format = "avro"
)

// Backend reads files of its supported formats into frames. Implementations
// are stateless; every Read is an independent, synchronous, whole-file pass.
type Backend interface {
	// Name returns the backend identifier used in configuration
	Name() string

	// Formats returns the backend's enumerated format set
	Formats() []Format

	// Supports reports whether the format is in the backend's set
	Supports(format Format) bool

	// Read parses one file into a fresh frame. An unsupported format fails
	// before any file I/O; parser and I/O failures wrap the cause.
	Read(ctx context.Context, path string, format Format, opts *ReadOptions) (*table.Frame, error)

	// RenderText converts one scalar to text using the backend's
	// deterministic formatting rules. A null value renders as "".
	RenderText(v table.Value) (string, error)
}

// FormatNames returns the format set as plain strings, for error messages and
// CLI listings.
func FormatNames(formats []Format) []string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return names
}
