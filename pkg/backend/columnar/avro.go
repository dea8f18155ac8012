package columnar

import (
	"bufio"
	"fmt"
	"os"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/linkedin/goavro/v2"

	"github.com/framedoc/framedoc/pkg/table"
)

// readAvro reads an Avro object container file of flat records. Column order
// comes from the writer schema's field order.
func readAvro(path string) (*table.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ocf, err := goavro.NewOCFReader(bufio.NewReader(f))
	if err != nil {
		return nil, err
	}

	columns, err := avroFieldOrder(ocf.Codec().Schema())
	if err != nil {
		return nil, err
	}
	frame, err := table.New(columns)
	if err != nil {
		return nil, err
	}

	for ocf.Scan() {
		datum, err := ocf.Read()
		if err != nil {
			return nil, err
		}
		record, ok := datum.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("avro datum is %T, expected a record", datum)
		}
		values := make([]table.Value, len(columns))
		for i, col := range columns {
			v, err := avroValue(record[col])
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", col, err)
			}
			values[i] = v
		}
		if err := frame.AppendRow(values); err != nil {
			return nil, err
		}
	}
	if err := ocf.Err(); err != nil {
		return nil, err
	}
	return frame, nil
}

// avroFieldOrder extracts the record field names, in declaration order, from
// the writer schema JSON.
func avroFieldOrder(schema string) ([]string, error) {
	var parsed struct {
		Fields []struct {
			Name string `json:"name"`
		} `json:"fields"`
	}
	if err := gojson.Unmarshal([]byte(schema), &parsed); err != nil {
		return nil, fmt.Errorf("invalid avro schema: %w", err)
	}
	if len(parsed.Fields) == 0 {
		return nil, fmt.Errorf("avro schema declares no record fields")
	}
	columns := make([]string, len(parsed.Fields))
	for i, f := range parsed.Fields {
		columns[i] = f.Name
	}
	return columns, nil
}

// avroValue maps a decoded Avro datum onto a table scalar. goavro decodes
// unions as single-entry maps keyed by the branch type; those are unwrapped
// first.
func avroValue(raw interface{}) (table.Value, error) {
	if union, ok := raw.(map[string]interface{}); ok && len(union) == 1 {
		for _, inner := range union {
			return avroValue(inner)
		}
	}

	switch x := raw.(type) {
	case nil:
		return table.Null(), nil
	case bool:
		return table.NewBool(x), nil
	case int32:
		return table.NewInt(int64(x)), nil
	case int64:
		return table.NewInt(x), nil
	case float32:
		return table.NewFloat(float64(x)), nil
	case float64:
		return table.NewFloat(x), nil
	case string:
		return table.NewString(x), nil
	case []byte:
		return table.NewBytes(x), nil
	case time.Time:
		return table.NewTime(x), nil
	default:
		return table.Null(), fmt.Errorf("unsupported avro type %T", raw)
	}
}
