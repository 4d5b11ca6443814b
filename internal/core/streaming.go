package core

// streaming.go turns a sheet response body into text the decoder can use.
//
// Exported spreadsheets arrive with the usual noise: a UTF-8 BOM when the
// sheet was saved from Excel, the occasional invalid byte from a Latin-1
// cell, and no upper bound on size. ReadSheet handles all three while the
// body streams, so only the final text is held in memory.

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// DefaultMaxSheetBytes caps a single sheet body.
const DefaultMaxSheetBytes = 32 << 20

// ErrSheetTooLarge is returned when a sheet body exceeds the configured limit.
var ErrSheetTooLarge = errors.New("sheet exceeds size limit")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CountingReader tracks bytes read from the wrapped reader.
type CountingReader struct {
	reader    io.Reader
	BytesRead int64
}

// NewCountingReader wraps r.
func NewCountingReader(r io.Reader) *CountingReader {
	return &CountingReader{reader: r}
}

func (r *CountingReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	r.BytesRead += int64(n)
	return n, err
}

// SkipBOM returns a reader over r without a leading UTF-8 byte order mark.
func SkipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(utf8BOM))
	if err == nil && string(head) == string(utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}

// ReadSheet reads a whole sheet body, skipping a BOM and replacing invalid
// UTF-8 with U+FFFD. It returns the text and the raw byte count.
// A limit of zero or less uses DefaultMaxSheetBytes.
func ReadSheet(r io.Reader, limit int64) (string, int64, error) {
	if limit <= 0 {
		limit = DefaultMaxSheetBytes
	}

	counter := NewCountingReader(io.LimitReader(r, limit+1))
	var sb strings.Builder
	if _, err := io.Copy(&sb, SkipBOM(counter)); err != nil {
		return "", counter.BytesRead, fmt.Errorf("read sheet: %w", err)
	}
	if counter.BytesRead > limit {
		return "", counter.BytesRead, fmt.Errorf("%w (%d bytes)", ErrSheetTooLarge, limit)
	}

	text := sb.String()
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, string(utf8.RuneError))
	}
	return text, counter.BytesRead, nil
}
