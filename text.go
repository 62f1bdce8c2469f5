package pngq

import (
	"bytes"
	"fmt"

	"golang.org/x/text/encoding/charmap"
)

// longest keyword PNG allows
const maxKeywordLength = 79

// Text is the content of a tEXt chunk.
type Text struct {
	Keyword []byte
	Text    []byte
}

// ParseText splits a tEXt payload at its first NUL byte. Without a NUL
// the whole payload is the keyword. Both slices share data.
func ParseText(data []byte) Text {
	i := bytes.IndexByte(data, 0)
	if i < 0 {
		return Text{Keyword: data}
	}
	return Text{Keyword: data[:i], Text: data[i+1:]}
}

// Validate checks the keyword length.
func (t Text) Validate() error {
	if n := len(t.Keyword); n < 1 || n > maxKeywordLength {
		return fmt.Errorf("%w: got %d", ErrKeywordLength, n)
	}
	return nil
}

// tEXt is ISO 8859-1; convert for output
func latin1ToUTF8(b []byte) ([]byte, error) {
	return charmap.ISO8859_1.NewDecoder().Bytes(b)
}
