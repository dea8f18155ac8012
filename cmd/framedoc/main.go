package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	gojson "github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/framedoc/framedoc/pkg/backend/registry"
	"github.com/framedoc/framedoc/pkg/config"
	"github.com/framedoc/framedoc/pkg/ingest"
	"github.com/framedoc/framedoc/pkg/logger"
	"github.com/framedoc/framedoc/pkg/table"

	// Import both backends to register them
	_ "github.com/framedoc/framedoc/pkg/backend/columnar"
	_ "github.com/framedoc/framedoc/pkg/backend/native"
)

var version = "0.1.0"

func main() {
	// Load .env file if it exists
	_ = godotenv.Load() // Ignore error if .env doesn't exist

	root := &cobra.Command{
		Use:   "framedoc",
		Short: "framedoc - tabular files to pipeline documents",
		Long: `framedoc reads tabular files (CSV, JSON, Parquet, Avro, Excel, ...) with a
pluggable backend and converts their rows into text documents with metadata,
ready for ingestion by a retrieval pipeline.`,
	}

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("framedoc v%s\n", version)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "backends",
		Short: "List available backends and their formats",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range registry.List() {
				b, err := registry.Create(name)
				if err != nil {
					return err
				}
				fmt.Printf("%s:\n", name)
				for _, f := range b.Formats() {
					fmt.Printf("  - %s\n", f)
				}
			}
			return nil
		},
	})

	root.AddCommand(newConvertCmd())
	root.AddCommand(newReadCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newConvertCmd() *cobra.Command {
	var (
		configPath    string
		backendName   string
		format        string
		contentColumn string
		metaColumns   []string
		indexColumn   string
		outPath       string
	)

	cmd := &cobra.Command{
		Use:   "convert [files...]",
		Short: "Convert tabular files to documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, files []string) error {
			cfg := config.New()
			if configPath != "" {
				if err := config.Load(configPath, cfg); err != nil {
					return err
				}
			}
			if backendName != "" {
				cfg.Backend = backendName
			}
			if format != "" {
				cfg.Format = format
			}
			if contentColumn != "" {
				cfg.ContentColumn = contentColumn
			}
			if len(metaColumns) > 0 {
				cfg.MetaColumns = metaColumns
			}
			if indexColumn != "" {
				cfg.IndexColumn = indexColumn
			}

			if err := logger.Init(logger.Config{
				Level:       cfg.Logging.Level,
				Encoding:    cfg.Logging.Encoding,
				Development: cfg.Logging.Development,
			}); err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ingestor, err := ingest.New(cfg)
			if err != nil {
				return err
			}

			docs, err := ingestor.Run(context.Background(), files)
			if err != nil {
				logger.Error("run failed", zap.Error(err))
				return err
			}

			out := os.Stdout
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}

			enc := gojson.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(docs)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	cmd.Flags().StringVarP(&backendName, "backend", "b", "", "backend to read with (native, columnar)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "file format to read")
	cmd.Flags().StringVar(&contentColumn, "content-column", "", "column holding the document text")
	cmd.Flags().StringSliceVar(&metaColumns, "meta-columns", nil, "columns carried as document metadata")
	cmd.Flags().StringVar(&indexColumn, "index-column", "", "column supplying the document ID")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write documents to this file instead of stdout")

	return cmd
}

func newReadCmd() *cobra.Command {
	var (
		configPath  string
		backendName string
		format      string
		columns     []string
		outPath     string
	)

	cmd := &cobra.Command{
		Use:   "read [files...]",
		Short: "Read tabular files into one table without converting",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, files []string) error {
			cfg := config.New()
			if configPath != "" {
				if err := config.Load(configPath, cfg); err != nil {
					return err
				}
			}
			if backendName != "" {
				cfg.Backend = backendName
			}
			if format != "" {
				cfg.Format = format
			}
			if len(columns) > 0 {
				cfg.ColumnsSubset = columns
			}

			if err := logger.Init(logger.Config{
				Level:       cfg.Logging.Level,
				Encoding:    cfg.Logging.Encoding,
				Development: cfg.Logging.Development,
			}); err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ingestor, err := ingest.NewFrameReader(cfg)
			if err != nil {
				return err
			}

			frame, err := ingestor.ReadFrame(context.Background(), files)
			if err != nil {
				logger.Error("read failed", zap.Error(err))
				return err
			}

			out := os.Stdout
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}

			payload := struct {
				Columns []string        `json:"columns"`
				Rows    [][]table.Value `json:"rows"`
			}{Columns: frame.Columns()}
			for i := 0; i < frame.NumRows(); i++ {
				payload.Rows = append(payload.Rows, frame.Row(i))
			}

			enc := gojson.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(payload)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	cmd.Flags().StringVarP(&backendName, "backend", "b", "", "backend to read with (native, columnar)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "file format to read")
	cmd.Flags().StringSliceVar(&columns, "columns", nil, "restrict the table to these columns")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write the table to this file instead of stdout")

	return cmd
}
