// Package framedoc converts tabular data files into text documents for
// retrieval pipelines.
//
// A conversion run reads one or more files through a tabular backend, treats
// one configured column as each document's text content, and carries a chosen
// set of columns into each document's metadata with their scalar types
// preserved. One row becomes one document; file order and row order are kept.
//
// Two backends are built in:
//
//   - native: row-at-a-time parsers for CSV, fixed-width text, JSON, JSON
//     lines, XML and xlsx workbooks, with light per-cell scalar inference.
//   - columnar: Apache Arrow readers for CSV, Parquet, Arrow IPC and Avro,
//     with cell types taken from the columnar schema.
//
// # Quick start
//
//	import (
//	    "context"
//
//	    "github.com/framedoc/framedoc/pkg/config"
//	    "github.com/framedoc/framedoc/pkg/ingest"
//	    _ "github.com/framedoc/framedoc/pkg/backend/columnar"
//	)
//
//	cfg := config.New()
//	cfg.Format = "parquet"
//	cfg.ContentColumn = "text"
//	cfg.MetaColumns = []string{"source", "page"}
//
//	ing, err := ingest.New(cfg)
//	if err != nil {
//	    return err
//	}
//	docs, err := ing.Run(context.Background(), []string{"corpus.parquet"})
//
// Any failure aborts the whole run; there is no partial-success mode. Missing
// columns are reported together in a single error before any row is
// converted.
package framedoc
