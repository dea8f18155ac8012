package columnar

import (
	"context"
	"errors"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/framedoc/framedoc/pkg/backend"
	"github.com/framedoc/framedoc/pkg/table"
)

var errEmptyTable = errors.New("file has no rows")

// readParquet reads a Parquet file through the Arrow bridge, batch by batch.
func readParquet(ctx context.Context, path string, opts backend.ParquetOptions) (*table.Frame, error) {
	fr, err := file.OpenParquetFile(path, false)
	if err != nil {
		return nil, err
	}
	defer fr.Close()

	props := pqarrow.ArrowReadProperties{}
	if opts.BatchSize > 0 {
		props.BatchSize = opts.BatchSize
	}

	arrowReader, err := pqarrow.NewFileReader(fr, props, memory.NewGoAllocator())
	if err != nil {
		return nil, err
	}

	schema, err := arrowReader.Schema()
	if err != nil {
		return nil, err
	}
	frame, err := frameForSchema(schema)
	if err != nil {
		return nil, err
	}

	rr, err := arrowReader.GetRecordReader(ctx, nil, nil)
	if err != nil {
		return nil, err
	}
	defer rr.Release()

	for rr.Next() {
		if err := appendRecord(frame, rr.Record()); err != nil {
			return nil, err
		}
	}
	if err := rr.Err(); err != nil {
		return nil, err
	}
	return frame, nil
}
