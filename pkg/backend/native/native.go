// Package native implements the row-oriented tabular backend. It parses
// delimited text, fixed-width text, JSON, XML and xlsx workbooks with
// row-at-a-time parsers and applies light per-cell scalar inference, the way
// text-first dataframe engines do.
package native

import (
	"context"
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/framedoc/framedoc/pkg/backend"
	"github.com/framedoc/framedoc/pkg/backend/registry"
	"github.com/framedoc/framedoc/pkg/errors"
	"github.com/framedoc/framedoc/pkg/table"
)

// Name is the backend identifier used in configuration
const Name = "native"

func init() {
	_ = registry.Register(Name, func() backend.Backend { return New() })
}

var formats = []backend.Format{
	backend.FormatCSV,
	backend.FormatFixedWidth,
	backend.FormatJSON,
	backend.FormatJSONLines,
	backend.FormatXML,
	backend.FormatExcel,
}

// Native is the row-oriented backend. It is stateless; every Read is an
// independent whole-file pass.
type Native struct{}

// New creates the native backend
func New() *Native { return &Native{} }

// Name returns the backend identifier
func (n *Native) Name() string { return Name }

// Formats returns the backend's enumerated format set
func (n *Native) Formats() []backend.Format {
	return append([]backend.Format(nil), formats...)
}

// Supports reports whether the format is in the backend's set
func (n *Native) Supports(format backend.Format) bool {
	for _, f := range formats {
		if f == format {
			return true
		}
	}
	return false
}

// Read parses one file into a fresh frame.
func (n *Native) Read(ctx context.Context, path string, format backend.Format, opts *backend.ReadOptions) (*table.Frame, error) {
	if !n.Supports(format) {
		return nil, errors.NewUnsupportedFormat(Name, string(format), backend.FormatNames(formats))
	}
	if opts == nil {
		opts = &backend.ReadOptions{}
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.NewFileRead(path, err)
	}

	var (
		frame *table.Frame
		err   error
	)
	switch format {
	case backend.FormatCSV:
		frame, err = readCSV(path, opts.CSV)
	case backend.FormatFixedWidth:
		frame, err = readFixedWidth(path, opts.FixedWidth)
	case backend.FormatJSON:
		frame, err = readJSON(path, opts.JSON)
	case backend.FormatJSONLines:
		frame, err = readJSONLines(path, opts.JSON)
	case backend.FormatXML:
		frame, err = readXML(path, opts.XML)
	case backend.FormatExcel:
		frame, err = readExcel(path, opts.Excel)
	}
	if err != nil {
		return nil, errors.NewFileRead(path, err)
	}
	return frame, nil
}

// RenderText converts one scalar to text. Nulls render as the empty string;
// floats use the shortest exact decimal form; timestamps use RFC 3339.
func (n *Native) RenderText(v table.Value) (string, error) {
	switch v.Kind() {
	case table.KindNull:
		return "", nil
	case table.KindBool:
		return strconv.FormatBool(v.Bool()), nil
	case table.KindInt:
		return strconv.FormatInt(v.Int(), 10), nil
	case table.KindFloat:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64), nil
	case table.KindString:
		return v.Str(), nil
	case table.KindTime:
		return v.Time().Format(time.RFC3339), nil
	case table.KindBytes:
		if !utf8.Valid(v.Bytes()) {
			return "", fmt.Errorf("byte value is not valid UTF-8")
		}
		return string(v.Bytes()), nil
	default:
		return "", fmt.Errorf("unknown scalar kind %d", v.Kind())
	}
}

// inferCell turns a raw text cell into a typed scalar. An empty cell is null;
// integers, floats and booleans are recognized; everything else stays text.
func inferCell(s string) table.Value {
	if s == "" {
		return table.Null()
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return table.NewInt(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return table.NewFloat(f)
	}
	if s == "true" || s == "false" {
		return table.NewBool(s == "true")
	}
	return table.NewString(s)
}

// autoColumns names header-less columns column_0..column_n-1.
func autoColumns(n int) []string {
	cols := make([]string, n)
	for i := range cols {
		cols[i] = fmt.Sprintf("column_%d", i)
	}
	return cols
}

// frameFromKeyed builds a frame from row maps, padding absent keys with null
// so every row covers every column.
func frameFromKeyed(columns []string, rows []map[string]table.Value) (*table.Frame, error) {
	frame, err := table.New(columns)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		values := make([]table.Value, len(columns))
		for i, col := range columns {
			if v, ok := row[col]; ok {
				values[i] = v
			} else {
				values[i] = table.Null()
			}
		}
		if err := frame.AppendRow(values); err != nil {
			return nil, err
		}
	}
	return frame, nil
}
