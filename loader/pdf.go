package loader

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDFLoader reads the text of every page of a PDF file.
// It implements extract.DocumentFetcher.
type PDFLoader struct {
	logger *slog.Logger
}

// PDFOption configures a PDFLoader.
type PDFOption func(*PDFLoader) error

// WithPDFLogger sets a custom logger.
// Default is slog.Default().
func WithPDFLogger(logger *slog.Logger) PDFOption {
	return func(l *PDFLoader) error {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
		return nil
	}
}

// NewPDFLoader creates a PDF loader.
func NewPDFLoader(opts ...PDFOption) (*PDFLoader, error) {
	l := &PDFLoader{logger: slog.Default()}
	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}
	l.logger = l.logger.With("component", "pdf-loader")
	return l, nil
}

// FetchDocument returns one text fragment per page, in page order. Pages
// without extractable text yield empty fragments so the result length always
// equals the page count. A document with no text on any page fails with
// ErrNoText.
func (l *PDFLoader) FetchDocument(ctx context.Context, path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			l.logger.Warn("failed to close pdf", "path", path, "err", err)
		}
	}()

	pdfCtx, err := api.ReadValidateAndOptimize(f, model.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}

	pages := make([]string, 0, pdfCtx.PageCount)
	for pageNr := 1; pageNr <= pdfCtx.PageCount; pageNr++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, err := pageText(pdfCtx, pageNr)
		if err != nil {
			l.logger.Debug("skipping unreadable page", "path", path, "page", pageNr, "err", err)
		}
		pages = append(pages, text)
	}

	if allBlank(pages) {
		return nil, fmt.Errorf("%w: %d pages", ErrNoText, len(pages))
	}

	l.logger.Debug("loaded pdf", "path", path, "pages", len(pages))
	return pages, nil
}

func allBlank(pages []string) bool {
	for _, page := range pages {
		if strings.TrimSpace(page) != "" {
			return false
		}
	}
	return true
}

func pageText(pdfCtx *model.Context, pageNr int) (string, error) {
	r, err := pdfcpu.ExtractPageContent(pdfCtx, pageNr)
	if err != nil {
		return "", err
	}
	if r == nil {
		return "", nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return textFromContentStream(data), nil
}

// textFromContentStream collects the string operands of the text showing
// operators (Tj, TJ, ' and ") and turns positioning operators into
// whitespace. Operators are recognized by token, so streams written on a
// single line parse the same as one operator per line.
func textFromContentStream(data []byte) string {
	var (
		sb      strings.Builder
		pending []string
	)
	flush := func() {
		for _, op := range pending {
			sb.WriteString(op)
		}
		pending = pending[:0]
	}

	lex := contentLexer{data: data}
	for {
		tok, ok := lex.next()
		if !ok {
			break
		}
		if tok.kind == tokenString {
			pending = append(pending, tok.text)
			continue
		}
		if tok.kind != tokenOperator {
			continue
		}

		switch tok.text {
		case "Tj", "TJ":
			flush()
		case "'", `"`:
			sb.WriteByte('\n')
			flush()
		case "Td", "TD":
			sb.WriteByte(' ')
		case "T*", "ET":
			sb.WriteByte('\n')
		case "ID":
			lex.skipInlineImage()
		}
		pending = pending[:0]
	}

	return normalizeSpace(sb.String())
}

type tokenKind int

const (
	tokenOperator tokenKind = iota
	tokenOperand
	tokenString
)

type contentToken struct {
	kind tokenKind
	text string
}

// contentLexer splits a content stream into operators, strings and other
// operands. Literal strings are unescaped and hex strings decoded.
type contentLexer struct {
	data []byte
	pos  int
}

func isPDFSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', 0:
		return true
	}
	return false
}

func isPDFDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func (l *contentLexer) next() (contentToken, bool) {
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		switch {
		case isPDFSpace(c):
			l.pos++
		case c == '%':
			for l.pos < len(l.data) && l.data[l.pos] != '\n' && l.data[l.pos] != '\r' {
				l.pos++
			}
		case c == '(':
			return contentToken{kind: tokenString, text: unescapePDFString(l.literal())}, true
		case c == '<' && l.pos+1 < len(l.data) && l.data[l.pos+1] == '<':
			l.pos += 2
		case c == '>' && l.pos+1 < len(l.data) && l.data[l.pos+1] == '>':
			l.pos += 2
		case c == '<':
			return contentToken{kind: tokenString, text: l.hex()}, true
		case c == '[', c == ']', c == '{', c == '}', c == ')', c == '>':
			l.pos++
		case c == '/':
			l.pos++
			return contentToken{kind: tokenOperand, text: l.regular()}, true
		default:
			word := l.regular()
			if isNumeric(word) {
				return contentToken{kind: tokenOperand, text: word}, true
			}
			return contentToken{kind: tokenOperator, text: word}, true
		}
	}
	return contentToken{}, false
}

// regular reads a run of regular characters.
func (l *contentLexer) regular() string {
	start := l.pos
	for l.pos < len(l.data) && !isPDFSpace(l.data[l.pos]) && !isPDFDelimiter(l.data[l.pos]) {
		l.pos++
	}
	if l.pos == start && l.pos < len(l.data) {
		l.pos++
	}
	return string(l.data[start:l.pos])
}

// literal reads a parenthesized string, honoring nesting and escapes, and
// returns its raw body.
func (l *contentLexer) literal() []byte {
	l.pos++
	start, depth := l.pos, 1
	for l.pos < len(l.data) {
		switch l.data[l.pos] {
		case '\\':
			l.pos++
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				raw := l.data[start:l.pos]
				l.pos++
				return raw
			}
		}
		l.pos++
	}
	return l.data[start:min(l.pos, len(l.data))]
}

// hex reads a <...> string. Whitespace is ignored and an odd final digit is
// padded with zero.
func (l *contentLexer) hex() string {
	l.pos++
	var (
		out  []byte
		cur  byte
		half bool
	)
	for l.pos < len(l.data) && l.data[l.pos] != '>' {
		if v, ok := hexValue(l.data[l.pos]); ok {
			if half {
				out = append(out, cur<<4|v)
			} else {
				cur = v
			}
			half = !half
		}
		l.pos++
	}
	if half {
		out = append(out, cur<<4)
	}
	if l.pos < len(l.data) {
		l.pos++
	}
	return string(out)
}

// skipInlineImage moves past the binary data of an inline image up to and
// including its EI operator.
func (l *contentLexer) skipInlineImage() {
	for l.pos+1 < len(l.data) {
		if l.data[l.pos] == 'E' && l.data[l.pos+1] == 'I' &&
			l.pos > 0 && isPDFSpace(l.data[l.pos-1]) &&
			(l.pos+2 == len(l.data) || isPDFSpace(l.data[l.pos+2])) {
			l.pos += 2
			return
		}
		l.pos++
	}
	l.pos = len(l.data)
}

func hexValue(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

func isNumeric(word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(word); i++ {
		c := word[i]
		if (c < '0' || c > '9') && c != '.' && c != '-' && c != '+' {
			return false
		}
	}
	return true
}

// unescapePDFString resolves the backslash escapes of a literal string.
func unescapePDFString(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 == len(raw) {
			sb.WriteByte(raw[i])
			continue
		}
		i++
		switch c := raw[i]; c {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'b', 'f':
		case '\n':
		case '\r':
			if i+1 < len(raw) && raw[i+1] == '\n' {
				i++
			}
		case '0', '1', '2', '3', '4', '5', '6', '7':
			val := int(c - '0')
			for n := 0; n < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; n++ {
				i++
				val = val*8 + int(raw[i]-'0')
			}
			sb.WriteByte(byte(val))
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// normalizeSpace collapses runs of spaces within lines, drops unprintable
// runes and removes blank lines.
func normalizeSpace(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.FieldsFunc(line, func(r rune) bool {
			return unicode.IsSpace(r) || !unicode.IsPrint(r)
		}), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
