// Package convert turns validated frame rows into documents. Column existence
// is checked once up front; conversion then walks the rows in order, producing
// exactly one document per row.
package convert

import (
	"fmt"

	"github.com/framedoc/framedoc/pkg/document"
	"github.com/framedoc/framedoc/pkg/errors"
	"github.com/framedoc/framedoc/pkg/table"
)

// TextRenderer converts a scalar to text. The reading backend supplies it so
// stringification follows that backend's formatting rules.
type TextRenderer interface {
	RenderText(v table.Value) (string, error)
}

// Request names the columns to convert from a frame.
type Request struct {
	// Frame is the source table
	Frame *table.Frame
	// ContentColumn holds the primary text payload; required
	ContentColumn string
	// MetaColumns are carried into each document's metadata bag, in order
	MetaColumns []string
	// IndexColumn optionally supplies the document ID
	IndexColumn string
}

// Validated is a request whose columns are all known to exist. It is produced
// by Validate and consumed once by Documents.
type Validated struct {
	frame      *table.Frame
	contentIdx int
	metaCols   []string
	metaIdx    []int
	indexIdx   int // -1 when no index column is configured
}

// Validate checks that the content column, every metadata column and the
// optional index column exist in the frame. All missing names are reported in
// a single error so the caller can fix every mistake in one pass. The content
// column is never carried as metadata, even when listed.
func Validate(req Request) (*Validated, error) {
	if req.Frame == nil {
		return nil, errors.New(errors.ErrorTypeValidation, "frame must not be nil")
	}
	if req.ContentColumn == "" {
		return nil, errors.New(errors.ErrorTypeValidation, "content column must not be empty")
	}

	var missing []string

	contentIdx, ok := req.Frame.ColumnIndex(req.ContentColumn)
	if !ok {
		missing = append(missing, req.ContentColumn)
	}

	seen := make(map[string]bool, len(req.MetaColumns))
	metaCols := make([]string, 0, len(req.MetaColumns))
	metaIdx := make([]int, 0, len(req.MetaColumns))
	for _, name := range req.MetaColumns {
		if name == req.ContentColumn || seen[name] {
			continue
		}
		seen[name] = true
		i, ok := req.Frame.ColumnIndex(name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		metaCols = append(metaCols, name)
		metaIdx = append(metaIdx, i)
	}

	indexIdx := -1
	if req.IndexColumn != "" {
		i, ok := req.Frame.ColumnIndex(req.IndexColumn)
		if !ok {
			missing = append(missing, req.IndexColumn)
		} else {
			indexIdx = i
		}
	}

	if len(missing) > 0 {
		return nil, errors.NewMissingColumns(missing)
	}

	return &Validated{
		frame:      req.Frame,
		contentIdx: contentIdx,
		metaCols:   metaCols,
		metaIdx:    metaIdx,
		indexIdx:   indexIdx,
	}, nil
}

// Meta is optional extra metadata attached to the produced documents: either
// one map applied to every document, or one map per row. Extra keys overwrite
// column-sourced keys.
type Meta struct {
	// Common is merged into every document's metadata
	Common map[string]table.Value
	// PerRow is zipped with the rows; its length must equal the row count
	PerRow []map[string]table.Value
}

func (m *Meta) forRow(i int) map[string]table.Value {
	if m == nil {
		return nil
	}
	if m.PerRow != nil {
		return m.PerRow[i]
	}
	return m.Common
}

func (m *Meta) validate(rows int) error {
	if m == nil {
		return nil
	}
	if m.PerRow != nil && m.Common != nil {
		return errors.New(errors.ErrorTypeValidation, "extra metadata must be common or per-row, not both")
	}
	if m.PerRow != nil && len(m.PerRow) != rows {
		return errors.New(errors.ErrorTypeValidation,
			fmt.Sprintf("extra metadata has %d entries, frame has %d rows", len(m.PerRow), rows))
	}
	return nil
}

// Documents converts every row, in row order, into one document each.
//
// The content column value is rendered to text by the backend renderer; a
// null cell yields an empty string. Metadata values are copied as-is with
// their scalar types preserved; a null metadata cell stays in the bag as an
// explicit null. A cell the renderer cannot stringify aborts the whole
// conversion; no partial result is returned.
func (v *Validated) Documents(r TextRenderer, extra *Meta) ([]*document.Document, error) {
	if err := extra.validate(v.frame.NumRows()); err != nil {
		return nil, err
	}

	docs := make([]*document.Document, 0, v.frame.NumRows())
	for i := 0; i < v.frame.NumRows(); i++ {
		row := v.frame.Row(i)

		content, err := r.RenderText(row[v.contentIdx])
		if err != nil {
			return nil, errors.NewRowConversion(i, v.frame.Columns()[v.contentIdx], err)
		}

		doc := document.New(content)
		for j, colIdx := range v.metaIdx {
			doc.Meta[v.metaCols[j]] = row[colIdx]
		}
		for k, val := range extra.forRow(i) {
			doc.Meta[k] = val
		}

		if v.indexIdx >= 0 {
			id, err := r.RenderText(row[v.indexIdx])
			if err != nil {
				return nil, errors.NewRowConversion(i, v.frame.Columns()[v.indexIdx], err)
			}
			doc.ID = id
		}

		docs = append(docs, doc)
	}
	return docs, nil
}

// Documents is the one-shot path: validate then convert.
func Documents(req Request, r TextRenderer, extra *Meta) ([]*document.Document, error) {
	validated, err := Validate(req)
	if err != nil {
		return nil, err
	}
	return validated.Documents(r, extra)
}
