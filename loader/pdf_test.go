package loader

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextFromContentStream(t *testing.T) {
	stream := []byte(`BT
/F1 12 Tf
72 712 Td
(Hello, world) Tj
T*
[(Sum) -120 (mary)] TJ
0 -14 Td
(Line with \(parens\)) Tj
(next) '
ET
`)
	assert.Equal(t, "Hello, world\nSummary Line with (parens)\nnext", textFromContentStream(stream))
}

func TestTextFromContentStream_Layouts(t *testing.T) {
	tests := []struct {
		name   string
		stream string
		want   string
	}{
		{
			name:   "single line",
			stream: `BT /F1 12 Tf 72 712 Td (Hello World) Tj ET`,
			want:   "Hello World",
		},
		{
			name:   "hex operand",
			stream: "BT\n<48656C6C6F> Tj\nET",
			want:   "Hello",
		},
		{
			name:   "hex with whitespace and odd digit",
			stream: `BT <48 69 4> Tj ET`,
			want:   "Hi@",
		},
		{
			name:   "mixed array on one line",
			stream: `BT [(Sum) -120 <6D617279>] TJ 0 -14 Td (next) ' ET`,
			want:   "Summary\nnext",
		},
		{
			name:   "nested parens and line continuation",
			stream: "BT (a (nested) str\\\ning) Tj ET",
			want:   "a (nested) string",
		},
		{
			name:   "operands of other operators are dropped",
			stream: `BT (ignored) 12 Tf (kept) Tj ET % (comment) Tj`,
			want:   "kept",
		},
		{
			name:   "inline image data is skipped",
			stream: "BI /W 1 /H 1 ID (x) Tj \x00\x01 EI BT (after) Tj ET",
			want:   "after",
		},
		{
			name:   "dictionary operands",
			stream: `/Span << /ActualText (Alt) >> BDC BT (Body) Tj ET EMC`,
			want:   "Body",
		},
		{name: "empty", stream: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, textFromContentStream([]byte(tt.stream)))
		})
	}
}

func TestUnescapePDFString(t *testing.T) {
	assert.Equal(t, "a\nb", unescapePDFString([]byte(`a\nb`)))
	assert.Equal(t, "A B", unescapePDFString([]byte(`\101\040B`)))
	assert.Equal(t, `back\slash`, unescapePDFString([]byte(`back\\slash`)))
	assert.Equal(t, "trailing\\", unescapePDFString([]byte(`trailing\`)))
	assert.Equal(t, "joined", unescapePDFString([]byte("join\\\r\ned")))
}

func TestNormalizeSpace(t *testing.T) {
	assert.Equal(t, "a b\nc", normalizeSpace("  a \t b \n\n\n c\x00 "))
}

func TestPDFLoader_Errors(t *testing.T) {
	l, err := NewPDFLoader()
	require.NoError(t, err)

	_, err = l.FetchDocument(context.Background(), filepath.Join(t.TempDir(), "absent.pdf"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	notPDF := filepath.Join(t.TempDir(), "notes.pdf")
	require.NoError(t, os.WriteFile(notPDF, []byte("plain text, not a pdf"), 0o600))
	_, err = l.FetchDocument(context.Background(), notPDF)
	assert.Error(t, err)
}

// writePDF writes a minimal uncompressed PDF with one page per content stream.
func writePDF(t *testing.T, contents ...string) string {
	t.Helper()

	var (
		buf     bytes.Buffer
		offsets []int
	)
	object := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n")

	kids := ""
	for i := range contents {
		kids += fmt.Sprintf("%d 0 R ", 4+2*i)
	}
	object("<< /Type /Catalog /Pages 2 0 R >>")
	object(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d /MediaBox [0 0 612 792] >>", kids, len(contents)))
	object("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")
	for i, content := range contents {
		object(fmt.Sprintf("<< /Type /Page /Parent 2 0 R /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i))
		object(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(offsets)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)

	path := filepath.Join(t.TempDir(), "doc.pdf")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

func TestPDFLoader_FetchDocument(t *testing.T) {
	l, err := NewPDFLoader()
	require.NoError(t, err)

	path := writePDF(t,
		`BT /F1 12 Tf 72 712 Td (Hello World) Tj ET`,
		`BT /F1 12 Tf 72 712 Td ET`,
		`BT /F1 12 Tf 72 712 Td <536563 6F6E64> Tj ET`,
	)

	pages, err := l.FetchDocument(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Hello World", "", "Second"}, pages)
}

func TestPDFLoader_NoText(t *testing.T) {
	l, err := NewPDFLoader()
	require.NoError(t, err)

	path := writePDF(t, `BT /F1 12 Tf 72 712 Td ET`, `0 0 m 10 10 l S`)

	_, err = l.FetchDocument(context.Background(), path)
	assert.ErrorIs(t, err, ErrNoText)
}

func TestAllBlank(t *testing.T) {
	assert.True(t, allBlank(nil))
	assert.True(t, allBlank([]string{"", " \n "}))
	assert.False(t, allBlank([]string{"", "text"}))
}
