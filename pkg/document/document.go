// Package document defines the normalized output unit handed to the
// surrounding retrieval pipeline: a primary text payload plus an optional
// key-value metadata bag.
package document

import (
	"github.com/framedoc/framedoc/pkg/table"
)

// Document is one converted table row. Meta holds the configured metadata
// columns with their original scalar types preserved; it never contains the
// content column's key.
type Document struct {
	// ID is optional and comes from the configured index column
	ID string `json:"id,omitempty"`
	// Content is the stringified value of the content column
	Content string `json:"content"`
	// Meta carries auxiliary key-value data alongside the content
	Meta map[string]table.Value `json:"meta,omitempty"`
}

// New creates a document with an empty metadata bag.
func New(content string) *Document {
	return &Document{
		Content: content,
		Meta:    make(map[string]table.Value),
	}
}
