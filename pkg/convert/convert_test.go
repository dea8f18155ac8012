package convert

import (
	"fmt"
	"strconv"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framedoc/framedoc/pkg/errors"
	"github.com/framedoc/framedoc/pkg/table"
)

// plainRenderer stringifies scalars the simple way; backends bring their own
// rules, conversion logic must not care.
type plainRenderer struct{}

func (plainRenderer) RenderText(v table.Value) (string, error) {
	switch v.Kind() {
	case table.KindNull:
		return "", nil
	case table.KindBool:
		return strconv.FormatBool(v.Bool()), nil
	case table.KindInt:
		return strconv.FormatInt(v.Int(), 10), nil
	case table.KindFloat:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64), nil
	case table.KindString:
		return v.Str(), nil
	case table.KindTime:
		return v.Time().Format(time.RFC3339), nil
	case table.KindBytes:
		if !utf8.Valid(v.Bytes()) {
			return "", fmt.Errorf("byte value is not valid UTF-8")
		}
		return string(v.Bytes()), nil
	default:
		return "", fmt.Errorf("unknown kind")
	}
}

func buildFrame(t *testing.T, columns []string, rows ...[]table.Value) *table.Frame {
	t.Helper()
	frame, err := table.New(columns)
	require.NoError(t, err)
	for _, row := range rows {
		require.NoError(t, frame.AppendRow(row))
	}
	return frame
}

func TestRoundTripLiteralRows(t *testing.T) {
	frame := buildFrame(t, []string{"text", "filename"},
		[]table.Value{table.NewString("Hello world"), table.NewString("doc1.txt")},
		[]table.Value{table.NewString("Hello everyone"), table.NewString("doc2.txt")},
	)

	docs, err := Documents(Request{
		Frame:         frame,
		ContentColumn: "text",
		MetaColumns:   []string{"filename"},
	}, plainRenderer{}, nil)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, "Hello world", docs[0].Content)
	assert.Equal(t, table.NewString("doc1.txt"), docs[0].Meta["filename"])
	assert.Equal(t, "Hello everyone", docs[1].Content)
	assert.Equal(t, table.NewString("doc2.txt"), docs[1].Meta["filename"])
}

func TestOneDocumentPerRowInOrder(t *testing.T) {
	frame := buildFrame(t, []string{"text"},
		[]table.Value{table.NewString("a")},
		[]table.Value{table.NewString("b")},
		[]table.Value{table.NewString("c")},
	)

	docs, err := Documents(Request{Frame: frame, ContentColumn: "text"}, plainRenderer{}, nil)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "a", docs[0].Content)
	assert.Equal(t, "b", docs[1].Content)
	assert.Equal(t, "c", docs[2].Content)
}

func TestMetadataKeysExactlyConfigured(t *testing.T) {
	frame := buildFrame(t, []string{"text", "a", "b", "c"},
		[]table.Value{table.NewString("x"), table.NewInt(1), table.NewInt(2), table.NewInt(3)},
	)

	docs, err := Documents(Request{
		Frame:         frame,
		ContentColumn: "text",
		MetaColumns:   []string{"b", "a"},
	}, plainRenderer{}, nil)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	keys := make([]string, 0, len(docs[0].Meta))
	for k := range docs[0].Meta {
		keys = append(keys, k)
	}
	assert.ElementsMatch(t, []string{"a", "b"}, keys)
}

func TestMetadataNeverContainsContentColumn(t *testing.T) {
	frame := buildFrame(t, []string{"text", "filename"},
		[]table.Value{table.NewString("x"), table.NewString("f")},
	)

	// Content column listed among the metadata columns is dropped.
	docs, err := Documents(Request{
		Frame:         frame,
		ContentColumn: "text",
		MetaColumns:   []string{"text", "filename"},
	}, plainRenderer{}, nil)
	require.NoError(t, err)
	assert.NotContains(t, docs[0].Meta, "text")
	assert.Contains(t, docs[0].Meta, "filename")
}

func TestValidateReportsAllMissingColumns(t *testing.T) {
	frame := buildFrame(t, []string{"text"})

	_, err := Validate(Request{
		Frame:         frame,
		ContentColumn: "body",
		MetaColumns:   []string{"author", "text"},
		IndexColumn:   "id",
	})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeColumn))
	assert.ElementsMatch(t, []string{"body", "author", "id"}, errors.MissingColumns(err))
}

func TestValidateEmptyContentColumn(t *testing.T) {
	frame := buildFrame(t, []string{"text"})
	_, err := Validate(Request{Frame: frame})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))

	_, err = Validate(Request{ContentColumn: "text"})
	require.Error(t, err)
}

func TestNullHandling(t *testing.T) {
	frame := buildFrame(t, []string{"text", "source"},
		[]table.Value{table.Null(), table.Null()},
	)

	docs, err := Documents(Request{
		Frame:         frame,
		ContentColumn: "text",
		MetaColumns:   []string{"source"},
	}, plainRenderer{}, nil)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	// Null content renders as the empty string; a null metadata value stays
	// in the bag as an explicit null rather than being omitted.
	assert.Equal(t, "", docs[0].Content)
	v, present := docs[0].Meta["source"]
	require.True(t, present)
	assert.True(t, v.IsNull())
}

func TestMetadataPreservesTypes(t *testing.T) {
	ts := time.Date(2024, 5, 4, 3, 2, 1, 0, time.UTC)
	frame := buildFrame(t, []string{"text", "count", "score", "ok", "when"},
		[]table.Value{
			table.NewString("x"), table.NewInt(9), table.NewFloat(1.25),
			table.NewBool(true), table.NewTime(ts),
		},
	)

	docs, err := Documents(Request{
		Frame:         frame,
		ContentColumn: "text",
		MetaColumns:   []string{"count", "score", "ok", "when"},
	}, plainRenderer{}, nil)
	require.NoError(t, err)

	meta := docs[0].Meta
	assert.Equal(t, table.NewInt(9), meta["count"])
	assert.Equal(t, table.NewFloat(1.25), meta["score"])
	assert.Equal(t, table.NewBool(true), meta["ok"])
	assert.Equal(t, table.KindTime, meta["when"].Kind())
}

func TestRowConversionAbortsWholeRun(t *testing.T) {
	frame := buildFrame(t, []string{"payload"},
		[]table.Value{table.NewString("fine")},
		[]table.Value{table.NewBytes([]byte{0xff, 0xfe})},
		[]table.Value{table.NewString("never reached")},
	)

	docs, err := Documents(Request{Frame: frame, ContentColumn: "payload"}, plainRenderer{}, nil)
	require.Error(t, err)
	assert.Nil(t, docs)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConversion))

	var e *errors.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, 1, e.Details["row"])
	assert.Equal(t, "payload", e.Details["column"])
}

func TestIndexColumnBecomesID(t *testing.T) {
	frame := buildFrame(t, []string{"id", "text"},
		[]table.Value{table.NewInt(7), table.NewString("x")},
		[]table.Value{table.Null(), table.NewString("y")},
	)

	docs, err := Documents(Request{
		Frame:         frame,
		ContentColumn: "text",
		IndexColumn:   "id",
	}, plainRenderer{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "7", docs[0].ID)
	assert.Equal(t, "", docs[1].ID)
	assert.NotContains(t, docs[0].Meta, "id")
}

func TestExtraMetaCommon(t *testing.T) {
	frame := buildFrame(t, []string{"text"},
		[]table.Value{table.NewString("a")},
		[]table.Value{table.NewString("b")},
	)

	docs, err := Documents(Request{Frame: frame, ContentColumn: "text"}, plainRenderer{},
		&Meta{Common: map[string]table.Value{"origin": table.NewString("batch-1")}})
	require.NoError(t, err)
	for _, doc := range docs {
		assert.Equal(t, table.NewString("batch-1"), doc.Meta["origin"])
	}
}

func TestExtraMetaPerRow(t *testing.T) {
	frame := buildFrame(t, []string{"text", "source"},
		[]table.Value{table.NewString("a"), table.NewString("col")},
		[]table.Value{table.NewString("b"), table.NewString("col")},
	)

	docs, err := Documents(Request{
		Frame:         frame,
		ContentColumn: "text",
		MetaColumns:   []string{"source"},
	}, plainRenderer{}, &Meta{PerRow: []map[string]table.Value{
		{"source": table.NewString("override")},
		{"page": table.NewInt(2)},
	}})
	require.NoError(t, err)

	// Extra keys overwrite column-sourced keys.
	assert.Equal(t, table.NewString("override"), docs[0].Meta["source"])
	assert.Equal(t, table.NewString("col"), docs[1].Meta["source"])
	assert.Equal(t, table.NewInt(2), docs[1].Meta["page"])
}

func TestExtraMetaLengthMismatch(t *testing.T) {
	frame := buildFrame(t, []string{"text"},
		[]table.Value{table.NewString("a")},
		[]table.Value{table.NewString("b")},
	)

	_, err := Documents(Request{Frame: frame, ContentColumn: "text"}, plainRenderer{},
		&Meta{PerRow: []map[string]table.Value{{"k": table.Null()}}})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
}

func TestExtraMetaBothSet(t *testing.T) {
	frame := buildFrame(t, []string{"text"}, []table.Value{table.NewString("a")})

	_, err := Documents(Request{Frame: frame, ContentColumn: "text"}, plainRenderer{},
		&Meta{
			Common: map[string]table.Value{"k": table.Null()},
			PerRow: []map[string]table.Value{{"k": table.Null()}},
		})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
}

func TestEmptyFrameYieldsNoDocuments(t *testing.T) {
	frame := buildFrame(t, []string{"text"})
	docs, err := Documents(Request{Frame: frame, ContentColumn: "text"}, plainRenderer{}, nil)
	require.NoError(t, err)
	assert.Empty(t, docs)
}
