package columnar

import (
	"os"

	"github.com/apache/arrow-go/v18/arrow/csv"

	"github.com/framedoc/framedoc/pkg/backend"
	"github.com/framedoc/framedoc/pkg/table"
)

// readCSV parses delimited text with Arrow's inferring reader, so column
// types come from whole-column inference rather than per-cell parsing.
func readCSV(path string, opts backend.CSVOptions) (*table.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	readerOpts := []csv.Option{
		csv.WithHeader(!opts.NoHeader),
		csv.WithChunk(-1),
		csv.WithNullReader(true, ""),
	}
	if opts.Delimiter != 0 {
		readerOpts = append(readerOpts, csv.WithComma(opts.Delimiter))
	}
	if opts.Comment != 0 {
		readerOpts = append(readerOpts, csv.WithComment(opts.Comment))
	}

	r := csv.NewInferringReader(f, readerOpts...)
	defer r.Release()

	var frame *table.Frame
	for r.Next() {
		rec := r.Record()
		if frame == nil {
			frame, err = frameForSchema(rec.Schema())
			if err != nil {
				return nil, err
			}
		}
		if err := appendRecord(frame, rec); err != nil {
			return nil, err
		}
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	if frame == nil {
		// Header-only or empty file: the inferring reader produces no
		// record batches, so there is no schema to expose.
		return nil, errEmptyTable
	}
	return frame, nil
}
