package native

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/framedoc/framedoc/pkg/backend"
	"github.com/framedoc/framedoc/pkg/errors"
	"github.com/framedoc/framedoc/pkg/table"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestUnsupportedFormatBeforeIO(t *testing.T) {
	n := New()
	// The path does not exist; the format check must fail first.
	_, err := n.Read(context.Background(), "/does/not/exist.parquet", backend.FormatParquet, nil)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeFormat))
}

func TestReadMissingFile(t *testing.T) {
	n := New()
	_, err := n.Read(context.Background(), "/does/not/exist.csv", backend.FormatCSV, nil)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeFile))
}

func TestReadCSV(t *testing.T) {
	path := writeFile(t, "data.csv", "text,count,score,ok\nhello,3,1.5,true\nworld,,2,false\n")

	n := New()
	frame, err := n.Read(context.Background(), path, backend.FormatCSV, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"text", "count", "score", "ok"}, frame.Columns())
	require.Equal(t, 2, frame.NumRows())
	assert.Equal(t, table.NewString("hello"), frame.At(0, 0))
	assert.Equal(t, table.NewInt(3), frame.At(0, 1))
	assert.Equal(t, table.NewFloat(1.5), frame.At(0, 2))
	assert.Equal(t, table.NewBool(true), frame.At(0, 3))
	// An empty cell is a null value, not an empty string.
	assert.True(t, frame.At(1, 1).IsNull())
}

func TestReadCSVOptions(t *testing.T) {
	path := writeFile(t, "data.csv", "# comment\na;b\n1;2\n")

	n := New()
	frame, err := n.Read(context.Background(), path, backend.FormatCSV, &backend.ReadOptions{
		CSV: backend.CSVOptions{Delimiter: ';', Comment: '#'},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, frame.Columns())
	assert.Equal(t, table.NewInt(1), frame.At(0, 0))
}

func TestReadCSVNoHeader(t *testing.T) {
	path := writeFile(t, "data.csv", "x,1\ny,2\n")

	n := New()
	frame, err := n.Read(context.Background(), path, backend.FormatCSV, &backend.ReadOptions{
		CSV: backend.CSVOptions{NoHeader: true},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"column_0", "column_1"}, frame.Columns())
	assert.Equal(t, 2, frame.NumRows())
}

func TestReadCSVMalformed(t *testing.T) {
	path := writeFile(t, "bad.csv", "a,b\n1,2,3\n")

	n := New()
	_, err := n.Read(context.Background(), path, backend.FormatCSV, nil)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeFile))
}

func TestReadFixedWidth(t *testing.T) {
	path := writeFile(t, "data.txt",
		"name  age\n"+
			"ada   36 \n"+
			"bob      \n")

	n := New()
	frame, err := n.Read(context.Background(), path, backend.FormatFixedWidth, &backend.ReadOptions{
		FixedWidth: backend.FixedWidthOptions{Widths: []int{6, 3}},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "age"}, frame.Columns())
	require.Equal(t, 2, frame.NumRows())
	assert.Equal(t, table.NewString("ada"), frame.At(0, 0))
	assert.Equal(t, table.NewInt(36), frame.At(0, 1))
	assert.True(t, frame.At(1, 1).IsNull())
}

func TestReadFixedWidthExplicitColumns(t *testing.T) {
	path := writeFile(t, "data.txt", "ada   36 \n")

	n := New()
	frame, err := n.Read(context.Background(), path, backend.FormatFixedWidth, &backend.ReadOptions{
		FixedWidth: backend.FixedWidthOptions{
			Widths:   []int{6, 3},
			Columns:  []string{"name", "age"},
			NoHeader: true,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "age"}, frame.Columns())
	assert.Equal(t, 1, frame.NumRows())
}

func TestReadFixedWidthRequiresWidths(t *testing.T) {
	path := writeFile(t, "data.txt", "whatever\n")

	n := New()
	_, err := n.Read(context.Background(), path, backend.FormatFixedWidth, nil)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeFile))
}

func TestReadJSON(t *testing.T) {
	path := writeFile(t, "data.json",
		`[{"text":"hello","n":1},{"text":"world","n":2.5,"extra":true},{"text":null}]`)

	n := New()
	frame, err := n.Read(context.Background(), path, backend.FormatJSON, nil)
	require.NoError(t, err)

	// Column order follows first appearance in the document.
	assert.Equal(t, []string{"text", "n", "extra"}, frame.Columns())
	require.Equal(t, 3, frame.NumRows())
	assert.Equal(t, table.NewString("hello"), frame.At(0, 0))
	assert.Equal(t, table.NewInt(1), frame.At(0, 1))
	assert.Equal(t, table.NewFloat(2.5), frame.At(1, 1))
	assert.Equal(t, table.NewBool(true), frame.At(1, 2))
	// Keys absent from a row become null cells.
	assert.True(t, frame.At(0, 2).IsNull())
	assert.True(t, frame.At(2, 1).IsNull())
}

func TestReadJSONKeepStrings(t *testing.T) {
	path := writeFile(t, "data.json", `[{"n":12345678901234567890}]`)

	n := New()
	frame, err := n.Read(context.Background(), path, backend.FormatJSON, &backend.ReadOptions{
		JSON: backend.JSONOptions{KeepStrings: true},
	})
	require.NoError(t, err)
	assert.Equal(t, table.NewString("12345678901234567890"), frame.At(0, 0))
}

func TestReadJSONRejectsNested(t *testing.T) {
	path := writeFile(t, "data.json", `[{"a":{"b":1}}]`)

	n := New()
	_, err := n.Read(context.Background(), path, backend.FormatJSON, nil)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeFile))
}

func TestReadJSONLines(t *testing.T) {
	path := writeFile(t, "data.jsonl",
		`{"text":"a","n":1}`+"\n\n"+`{"text":"b","m":false}`+"\n")

	n := New()
	frame, err := n.Read(context.Background(), path, backend.FormatJSONLines, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"text", "n", "m"}, frame.Columns())
	require.Equal(t, 2, frame.NumRows())
	assert.Equal(t, table.NewString("b"), frame.At(1, 0))
	assert.True(t, frame.At(1, 1).IsNull())
	assert.Equal(t, table.NewBool(false), frame.At(1, 2))
}

func TestReadXML(t *testing.T) {
	path := writeFile(t, "data.xml", `<rows>
  <row><text>hello</text><n>1</n></row>
  <row><text>world</text></row>
</rows>`)

	n := New()
	frame, err := n.Read(context.Background(), path, backend.FormatXML, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"text", "n"}, frame.Columns())
	require.Equal(t, 2, frame.NumRows())
	assert.Equal(t, table.NewString("hello"), frame.At(0, 0))
	assert.Equal(t, table.NewInt(1), frame.At(0, 1))
	assert.True(t, frame.At(1, 1).IsNull())
}

func TestReadXMLRowElementFilter(t *testing.T) {
	path := writeFile(t, "data.xml", `<doc>
  <meta><created>2024</created></meta>
  <item><text>keep</text></item>
</doc>`)

	n := New()
	frame, err := n.Read(context.Background(), path, backend.FormatXML, &backend.ReadOptions{
		XML: backend.XMLOptions{RowElement: "item"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"text"}, frame.Columns())
	require.Equal(t, 1, frame.NumRows())
	assert.Equal(t, table.NewString("keep"), frame.At(0, 0))
}

func TestReadExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"text", "count"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"hello", 3}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"world"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	n := New()
	frame, err := n.Read(context.Background(), path, backend.FormatExcel, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"text", "count"}, frame.Columns())
	require.Equal(t, 2, frame.NumRows())
	assert.Equal(t, table.NewString("hello"), frame.At(0, 0))
	assert.Equal(t, table.NewInt(3), frame.At(0, 1))
	// Short rows are padded with nulls.
	assert.True(t, frame.At(1, 1).IsNull())
}

func TestRenderText(t *testing.T) {
	n := New()
	ts := time.Date(2024, 3, 1, 12, 30, 0, 500000000, time.UTC)

	tests := []struct {
		name string
		v    table.Value
		want string
	}{
		{"null", table.Null(), ""},
		{"string", table.NewString("x"), "x"},
		{"int", table.NewInt(-42), "-42"},
		{"float", table.NewFloat(1.5), "1.5"},
		{"big float", table.NewFloat(1234567.25), "1234567.25"},
		{"bool", table.NewBool(true), "true"},
		{"time", table.NewTime(ts), "2024-03-01T12:30:00Z"},
		{"bytes", table.NewBytes([]byte("ok")), "ok"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := n.RenderText(tt.v)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := n.RenderText(table.NewBytes([]byte{0xff, 0xfe}))
	require.Error(t, err)
}

func TestFormats(t *testing.T) {
	n := New()
	assert.True(t, n.Supports(backend.FormatCSV))
	assert.True(t, n.Supports(backend.FormatExcel))
	assert.False(t, n.Supports(backend.FormatParquet))
	assert.Len(t, n.Formats(), 6)
}
