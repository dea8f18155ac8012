package native

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/framedoc/framedoc/pkg/backend"
	"github.com/framedoc/framedoc/pkg/table"
)

// readFixedWidth parses fixed-width text. Widths is required and gives the
// character width of each column. Column names come from opts.Columns when
// set, otherwise from the first line unless NoHeader names them column_0..n.
func readFixedWidth(path string, opts backend.FixedWidthOptions) (*table.Frame, error) {
	if len(opts.Widths) == 0 {
		return nil, fmt.Errorf("fixed-width read requires column widths")
	}
	for i, w := range opts.Widths {
		if w <= 0 {
			return nil, fmt.Errorf("fixed-width column %d has non-positive width %d", i, w)
		}
	}
	if len(opts.Columns) > 0 && len(opts.Columns) != len(opts.Widths) {
		return nil, fmt.Errorf("fixed-width has %d widths but %d column names",
			len(opts.Widths), len(opts.Columns))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)

	columns := opts.Columns
	if len(columns) == 0 {
		if opts.NoHeader {
			columns = autoColumns(len(opts.Widths))
		} else {
			if !scanner.Scan() {
				if err := scanner.Err(); err != nil {
					return nil, err
				}
				return nil, fmt.Errorf("file has no rows")
			}
			header := sliceFixedWidth(scanner.Text(), opts.Widths)
			columns = make([]string, len(header))
			for i, cell := range header {
				columns[i] = cell
			}
		}
	} else if !opts.NoHeader {
		// Explicit names plus a header line: skip the header.
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return nil, err
			}
			return nil, fmt.Errorf("file has no rows")
		}
	}

	frame, err := table.New(columns)
	if err != nil {
		return nil, err
	}

	for scanner.Scan() {
		cells := sliceFixedWidth(scanner.Text(), opts.Widths)
		values := make([]table.Value, len(cells))
		for i, cell := range cells {
			values[i] = inferCell(cell)
		}
		if err := frame.AppendRow(values); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return frame, nil
}

// sliceFixedWidth cuts a line into trimmed cells at character positions. A
// line shorter than the declared widths yields empty trailing cells.
func sliceFixedWidth(line string, widths []int) []string {
	runes := []rune(line)
	cells := make([]string, len(widths))
	pos := 0
	for i, w := range widths {
		if pos >= len(runes) {
			cells[i] = ""
			continue
		}
		end := pos + w
		if end > len(runes) {
			end = len(runes)
		}
		cells[i] = strings.TrimSpace(string(runes[pos:end]))
		pos = end
	}
	return cells
}
