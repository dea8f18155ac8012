package native

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/framedoc/framedoc/pkg/backend"
	"github.com/framedoc/framedoc/pkg/table"
)

// readExcel parses one worksheet of an xlsx workbook. The first row names the
// columns unless NoHeader is set. Rows shorter than the header are padded
// with null cells.
func readExcel(path string, opts backend.ExcelOptions) (*table.Frame, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q has no rows", sheet)
	}

	var (
		columns []string
		data    [][]string
	)
	if opts.NoHeader {
		width := 0
		for _, row := range rows {
			if len(row) > width {
				width = len(row)
			}
		}
		columns = autoColumns(width)
		data = rows
	} else {
		columns = rows[0]
		data = rows[1:]
	}

	frame, err := table.New(columns)
	if err != nil {
		return nil, err
	}
	for _, row := range data {
		values := make([]table.Value, len(columns))
		for i := range columns {
			if i < len(row) {
				values[i] = inferCell(row[i])
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
