package native

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	gojson "github.com/goccy/go-json"

	"github.com/framedoc/framedoc/pkg/backend"
	"github.com/framedoc/framedoc/pkg/table"
)

// readJSON parses a file holding one JSON array of flat objects. Column order
// follows first appearance in the document; a key absent from a row becomes a
// null cell.
func readJSON(path string, opts backend.JSONOptions) (*table.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := gojson.NewDecoder(bufio.NewReader(f))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(gojson.Delim); !ok || delim != '[' {
		return nil, fmt.Errorf("expected a JSON array of objects, got %v", tok)
	}

	var (
		columns []string
		seen    = make(map[string]bool)
		rows    []map[string]table.Value
	)
	for dec.More() {
		row, order, err := decodeObject(dec, opts)
		if err != nil {
			return nil, err
		}
		for _, key := range order {
			if !seen[key] {
				seen[key] = true
				columns = append(columns, key)
			}
		}
		rows = append(rows, row)
	}
	if _, err := dec.Token(); err != nil { // closing ']'
		return nil, err
	}

	return frameFromKeyed(columns, rows)
}

// readJSONLines parses line-delimited JSON (JSONL/NDJSON), one flat object
// per line. Blank lines are skipped.
func readJSONLines(path string, opts backend.JSONOptions) (*table.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var (
		columns []string
		seen    = make(map[string]bool)
		rows    []map[string]table.Value
	)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		dec := gojson.NewDecoder(strings.NewReader(text))
		dec.UseNumber()
		if tok, err := dec.Token(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		} else if delim, ok := tok.(gojson.Delim); !ok || delim != '{' {
			return nil, fmt.Errorf("line %d: expected a JSON object, got %v", line, tok)
		}
		row, order, err := decodeFields(dec, opts)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		for _, key := range order {
			if !seen[key] {
				seen[key] = true
				columns = append(columns, key)
			}
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return frameFromKeyed(columns, rows)
}

// decodeObject consumes one object from the decoder, including its opening
// and closing braces, returning values keyed by field name plus the field
// order as written.
func decodeObject(dec *gojson.Decoder, opts backend.JSONOptions) (map[string]table.Value, []string, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if delim, ok := tok.(gojson.Delim); !ok || delim != '{' {
		return nil, nil, fmt.Errorf("expected a JSON object, got %v", tok)
	}
	return decodeFields(dec, opts)
}

// decodeFields consumes object fields up to and including the closing brace.
func decodeFields(dec *gojson.Decoder, opts backend.JSONOptions) (map[string]table.Value, []string, error) {
	row := make(map[string]table.Value)
	var order []string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("expected an object key, got %v", keyTok)
		}

		var raw interface{}
		if err := dec.Decode(&raw); err != nil {
			return nil, nil, err
		}
		val, err := jsonValue(key, raw, opts)
		if err != nil {
			return nil, nil, err
		}
		row[key] = val
		order = append(order, key)
	}
	if _, err := dec.Token(); err != nil { // closing '}'
		return nil, nil, err
	}
	return row, order, nil
}

// jsonValue maps a decoded JSON scalar onto a table scalar. Nested arrays and
// objects are not tabular and fail the read.
func jsonValue(key string, raw interface{}, opts backend.JSONOptions) (table.Value, error) {
	switch x := raw.(type) {
	case nil:
		return table.Null(), nil
	case bool:
		return table.NewBool(x), nil
	case string:
		return table.NewString(x), nil
	case gojson.Number:
		if opts.KeepStrings {
			return table.NewString(x.String()), nil
		}
		if i, err := x.Int64(); err == nil {
			return table.NewInt(i), nil
		}
		f, err := x.Float64()
		if err != nil {
			return table.Null(), fmt.Errorf("field %q: invalid number %q", key, x.String())
		}
		return table.NewFloat(f), nil
	default:
		return table.Null(), fmt.Errorf("field %q: nested %T values are not tabular", key, raw)
	}
}
