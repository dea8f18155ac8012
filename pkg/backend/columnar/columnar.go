// Package columnar implements the column-oriented tabular backend on Apache
// Arrow. Parquet, Arrow IPC and CSV files flow through Arrow readers, Avro
// object container files through goavro; cell types come from the columnar
// schema rather than per-cell inference.
package columnar

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
const Name = "columnar"

func init() {
	_ = registry.Register(Name, func() backend.Backend { return New() })
}

var formats = []backend.Format{
	backend.FormatCSV,
	backend.FormatParquet,
	backend.FormatIPC,
	backend.FormatAvro,
}

// Columnar is the Arrow-based backend. It is stateless; every Read is an
// independent whole-file pass.
type Columnar struct{}

// New creates the columnar backend
func New() *Columnar { return &Columnar{} }

// Name returns the backend identifier
func (c *Columnar) Name() string { return Name }

// Formats returns the backend's enumerated format set
func (c *Columnar) Formats() []backend.Format {
	return append([]backend.Format(nil), formats...)
}

// Supports reports whether the format is in the backend's set
func (c *Columnar) Supports(format backend.Format) bool {
	for _, f := range formats {
		if f == format {
			return true
		}
	}
	return false
}

// Read parses one file into a fresh frame.
func (c *Columnar) Read(ctx context.Context, path string, format backend.Format, opts *backend.ReadOptions) (*table.Frame, error) {
	if !c.Supports(format) {
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
	case backend.FormatParquet:
		frame, err = readParquet(ctx, path, opts.Parquet)
	case backend.FormatIPC:
		frame, err = readIPC(path)
	case backend.FormatAvro:
		frame, err = readAvro(path)
	}
	if err != nil {
		return nil, errors.NewFileRead(path, err)
	}
	return frame, nil
}

// RenderText converts one scalar to text. Nulls render as the empty string;
// floats use the shortest 'g' form; timestamps use RFC 3339 with nanoseconds
// in UTC.
func (c *Columnar) RenderText(v table.Value) (string, error) {
	switch v.Kind() {
	case table.KindNull:
		return "", nil
	case table.KindBool:
		return strconv.FormatBool(v.Bool()), nil
	case table.KindInt:
		return strconv.FormatInt(v.Int(), 10), nil
	case table.KindFloat:
		return strconv.FormatFloat(v.Float(), 'g', -1, 64), nil
	case table.KindString:
		return v.Str(), nil
	case table.KindTime:
		return v.Time().UTC().Format(time.RFC3339Nano), nil
	case table.KindBytes:
		if !utf8.Valid(v.Bytes()) {
			return "", fmt.Errorf("byte value is not valid UTF-8")
		}
		return string(v.Bytes()), nil
	default:
		return "", fmt.Errorf("unknown scalar kind %d", v.Kind())
	}
}
