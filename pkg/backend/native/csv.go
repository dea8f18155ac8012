package native

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/framedoc/framedoc/pkg/backend"
	"github.com/framedoc/framedoc/pkg/table"
)

// readCSV parses delimited text. The first record names the columns unless
// NoHeader is set, in which case columns are named column_0..n.
func readCSV(path string, opts backend.CSVOptions) (*table.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	if opts.Comment != 0 {
		reader.Comment = opts.Comment
	}
	reader.TrimLeadingSpace = opts.TrimSpace

	first, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("file has no rows")
	}
	if err != nil {
		return nil, err
	}

	var frame *table.Frame
	if opts.NoHeader {
		frame, err = table.New(autoColumns(len(first)))
		if err != nil {
			return nil, err
		}
		if err := appendCSVRow(frame, first); err != nil {
			return nil, err
		}
	} else {
		frame, err = table.New(first)
		if err != nil {
			return nil, err
		}
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if err := appendCSVRow(frame, record); err != nil {
			return nil, err
		}
	}
	return frame, nil
}

func appendCSVRow(frame *table.Frame, record []string) error {
	values := make([]table.Value, len(record))
	for i, cell := range record {
		values[i] = inferCell(cell)
	}
	return frame.AppendRow(values)
}
