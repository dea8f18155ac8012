package columnar

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/framedoc/framedoc/pkg/table"
)

// frameForSchema creates an empty frame whose columns mirror the Arrow schema.
func frameForSchema(schema *arrow.Schema) (*table.Frame, error) {
	columns := make([]string, schema.NumFields())
	for i := 0; i < schema.NumFields(); i++ {
		columns[i] = schema.Field(i).Name
	}
	return table.New(columns)
}

// appendRecord appends every row of an Arrow record batch to the frame.
func appendRecord(frame *table.Frame, rec arrow.Record) error {
	numRows := int(rec.NumRows())
	numCols := int(rec.NumCols())
	for row := 0; row < numRows; row++ {
		values := make([]table.Value, numCols)
		for col := 0; col < numCols; col++ {
			v, err := arrowValue(rec.Column(col), row)
			if err != nil {
				return fmt.Errorf("column %q: %w", rec.ColumnName(col), err)
			}
			values[col] = v
		}
		if err := frame.AppendRow(values); err != nil {
			return err
		}
	}
	return nil
}

// arrowValue extracts one cell from an Arrow array as a table scalar.
func arrowValue(col arrow.Array, row int) (table.Value, error) {
	if col.IsNull(row) {
		return table.Null(), nil
	}

	switch c := col.(type) {
	case *array.Boolean:
		return table.NewBool(c.Value(row)), nil
	case *array.Int8:
		return table.NewInt(int64(c.Value(row))), nil
	case *array.Int16:
		return table.NewInt(int64(c.Value(row))), nil
	case *array.Int32:
		return table.NewInt(int64(c.Value(row))), nil
	case *array.Int64:
		return table.NewInt(c.Value(row)), nil
	case *array.Uint8:
		return table.NewInt(int64(c.Value(row))), nil
	case *array.Uint16:
		return table.NewInt(int64(c.Value(row))), nil
	case *array.Uint32:
		return table.NewInt(int64(c.Value(row))), nil
	case *array.Uint64:
		return table.NewInt(int64(c.Value(row))), nil
	case *array.Float32:
		return table.NewFloat(float64(c.Value(row))), nil
	case *array.Float64:
		return table.NewFloat(c.Value(row)), nil
	case *array.String:
		return table.NewString(c.Value(row)), nil
	case *array.LargeString:
		return table.NewString(c.Value(row)), nil
	case *array.Binary:
		return table.NewBytes(c.Value(row)), nil
	case *array.LargeBinary:
		return table.NewBytes(c.Value(row)), nil
	case *array.Timestamp:
		dt, ok := c.DataType().(*arrow.TimestampType)
		if !ok {
			return table.Null(), fmt.Errorf("timestamp column has unexpected type %T", c.DataType())
		}
		return table.NewTime(c.Value(row).ToTime(dt.Unit)), nil
	case *array.Date32:
		return table.NewTime(c.Value(row).ToTime()), nil
	case *array.Date64:
		return table.NewTime(c.Value(row).ToTime()), nil
	default:
		return table.Null(), fmt.Errorf("unsupported arrow type %s", col.DataType())
	}
}
