package form4

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/beevik/etree"
)

// ErrEmptyDocument marks a filing with no usable content at all.
var ErrEmptyDocument = errors.New("document is empty")

// Document is one filing prepared for extraction. Root is nil when the
// XML failed to parse; Text is always populated so the pattern fallback
// can still run.
type Document struct {
	Root *etree.Element
	Text string
}

// Malformed reports whether structural parsing failed for this document.
func (d *Document) Malformed() bool {
	return d.Root == nil
}

// DecodeBytes converts raw filing bytes to text. UTF-8 is attempted
// first; invalid UTF-8 is re-read as Latin-1, which cannot fail. Only
// an empty input is an error.
func DecodeBytes(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyDocument
	}
	if utf8.Valid(data) {
		return string(data), nil
	}
	var b strings.Builder
	b.Grow(len(data))
	for _, c := range data {
		b.WriteRune(rune(c))
	}
	return b.String(), nil
}

// ParseDocument builds a Document from decoded filing text. XML syntax
// errors do not propagate: the returned Document has a nil Root and the
// raw text preserved for pattern recovery.
func ParseDocument(content string) *Document {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(content); err != nil {
		return &Document{Text: content}
	}
	return &Document{Root: doc.Root(), Text: content}
}
