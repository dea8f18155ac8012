// Package ingest orchestrates multi-file conversion runs: for each file, in
// the order given, read the file into a frame, validate the configured
// columns, convert the rows, and append the documents to the running output.
// Any failure aborts the whole run; there is no partial-success mode.
package ingest

import (
	"context"

	"go.uber.org/zap"

	"github.com/framedoc/framedoc/pkg/backend"
	"github.com/framedoc/framedoc/pkg/backend/registry"
	"github.com/framedoc/framedoc/pkg/config"
	"github.com/framedoc/framedoc/pkg/convert"
	"github.com/framedoc/framedoc/pkg/document"
	"github.com/framedoc/framedoc/pkg/errors"
	"github.com/framedoc/framedoc/pkg/logger"
	"github.com/framedoc/framedoc/pkg/table"
)

// Ingestor runs conversions for one configuration. It holds no data between
// runs; every invocation is independent.
type Ingestor struct {
	backend       backend.Backend
	format        backend.Format
	contentColumn string
	metaColumns   []string
	indexColumn   string
	columnsSubset []string
	opts          *backend.ReadOptions
	logger        *zap.Logger
}

// New creates an ingestor from a validated configuration. The backend is
// resolved by name and the format is checked against its set here, before any
// file I/O happens.
func New(cfg *config.Config) (*Ingestor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newIngestor(cfg)
}

// NewFrameReader creates an ingestor for frame-only reads (ReadFrame). No
// content column is required because no documents are produced.
func NewFrameReader(cfg *config.Config) (*Ingestor, error) {
	if cfg.Backend == "" {
		return nil, errors.New(errors.ErrorTypeConfig, "backend must not be empty")
	}
	if cfg.Format == "" {
		return nil, errors.New(errors.ErrorTypeConfig, "format must not be empty")
	}
	return newIngestor(cfg)
}

func newIngestor(cfg *config.Config) (*Ingestor, error) {
	b, err := registry.Create(cfg.Backend)
	if err != nil {
		return nil, err
	}

	format := backend.Format(cfg.Format)
	if !b.Supports(format) {
		return nil, errors.NewUnsupportedFormat(b.Name(), cfg.Format, backend.FormatNames(b.Formats()))
	}

	opts := cfg.Read
	return &Ingestor{
		backend:       b,
		format:        format,
		contentColumn: cfg.ContentColumn,
		metaColumns:   append([]string(nil), cfg.MetaColumns...),
		indexColumn:   cfg.IndexColumn,
		columnsSubset: append([]string(nil), cfg.ColumnsSubset...),
		opts:          &opts,
		logger: logger.Get().With(
			zap.String("component", "ingestor"),
			zap.String("backend", b.Name()),
			zap.String("format", cfg.Format),
		),
	}, nil
}

// Run converts the given files, in order, and returns the concatenated
// documents: file order first, row order within each file.
func (i *Ingestor) Run(ctx context.Context, files []string) ([]*document.Document, error) {
	var out []*document.Document
	for _, path := range files {
		frame, err := i.backend.Read(ctx, path, i.format, i.opts)
		if err != nil {
			return nil, err
		}

		validated, err := convert.Validate(convert.Request{
			Frame:         frame,
			ContentColumn: i.contentColumn,
			MetaColumns:   i.metaColumns,
			IndexColumn:   i.indexColumn,
		})
		if err != nil {
			return nil, err
		}

		docs, err := validated.Documents(i.backend, nil)
		if err != nil {
			return nil, err
		}

		i.logger.Debug("file converted",
			zap.String("file", path),
			zap.Int("rows", frame.NumRows()),
			zap.Int("documents", len(docs)))
		out = append(out, docs...)
	}

	i.logger.Info("run complete",
		zap.Int("files", len(files)),
		zap.Int("documents", len(out)))
	return out, nil
}

// RunWithMeta behaves like Run but attaches extra metadata to the documents.
// Because per-row extra metadata is zipped against the combined row sequence,
// the files are concatenated into one frame first, so they must share a
// column set.
func (i *Ingestor) RunWithMeta(ctx context.Context, files []string, extra *convert.Meta) ([]*document.Document, error) {
	frame, err := i.ReadFrame(ctx, files)
	if err != nil {
		return nil, err
	}

	validated, err := convert.Validate(convert.Request{
		Frame:         frame,
		ContentColumn: i.contentColumn,
		MetaColumns:   i.metaColumns,
		IndexColumn:   i.indexColumn,
	})
	if err != nil {
		return nil, err
	}
	return validated.Documents(i.backend, extra)
}

// ReadFrame reads every file and vertically concatenates the frames,
// preserving file order and row order. When a columns subset is configured it
// is applied to each frame after reading.
func (i *Ingestor) ReadFrame(ctx context.Context, files []string) (*table.Frame, error) {
	if len(files) == 0 {
		return nil, errors.New(errors.ErrorTypeValidation, "no files to read")
	}

	frames := make([]*table.Frame, 0, len(files))
	for _, path := range files {
		frame, err := i.backend.Read(ctx, path, i.format, i.opts)
		if err != nil {
			return nil, err
		}
		if len(i.columnsSubset) > 0 {
			frame, err = frame.Select(i.columnsSubset)
			if err != nil {
				return nil, err
			}
		}
		frames = append(frames, frame)
	}
	return table.Concat(frames...)
}

// Backend exposes the resolved backend, mainly so callers can render scalars
// with the same rules the run used.
func (i *Ingestor) Backend() backend.Backend { return i.backend }
