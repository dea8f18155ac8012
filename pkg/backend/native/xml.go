package native

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/framedoc/framedoc/pkg/backend"
	"github.com/framedoc/framedoc/pkg/table"
)

// readXML parses row-per-element markup: each direct child of the document
// root is one row, and that row's child elements are its columns, with their
// character data as cell text. When RowElement is set, children with other
// names are skipped.
func readXML(path string, opts backend.XMLOptions) (*table.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := xml.NewDecoder(bufio.NewReader(f))

	if _, err := nextStartElement(dec); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("file has no root element")
		}
		return nil, err
	}

	var (
		columns []string
		seen    = make(map[string]bool)
		rows    []map[string]table.Value
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if opts.RowElement != "" && start.Name.Local != opts.RowElement {
			if err := dec.Skip(); err != nil {
				return nil, err
			}
			continue
		}

		row, order, err := decodeRowElement(dec)
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

	return frameFromKeyed(columns, rows)
}

// decodeRowElement consumes the children of one row element up to and
// including its end tag. Each child element becomes a cell named after the
// element, holding its trimmed character data.
func decodeRowElement(dec *xml.Decoder) (map[string]table.Value, []string, error) {
	row := make(map[string]table.Value)
	var order []string
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			text, err := elementText(dec)
			if err != nil {
				return nil, nil, err
			}
			name := t.Name.Local
			if _, dup := row[name]; !dup {
				order = append(order, name)
			}
			row[name] = inferCell(text)
		case xml.EndElement:
			return row, order, nil
		}
	}
}

// elementText collects character data until the element's end tag.
func elementText(dec *xml.Decoder) (string, error) {
	var sb strings.Builder
	depth := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			if depth == 0 {
				sb.Write(t)
			}
		case xml.StartElement:
			depth++
		case xml.EndElement:
			if depth == 0 {
				return strings.TrimSpace(sb.String()), nil
			}
			depth--
		}
	}
}

func nextStartElement(dec *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := dec.Token()
		if err != nil {
			return xml.StartElement{}, err
		}
		if start, ok := tok.(xml.StartElement); ok {
			return start, nil
		}
	}
}
