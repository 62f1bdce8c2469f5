package pngq

import (
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// escapeChar introduces a two-character directive in a format string.
const escapeChar = '_'

// A Directive produces the output of one escape.
type Directive func(w io.Writer) error

// Escapes maps the character following '_' to its directive.
type Escapes map[rune]Directive

// Render writes tmpl to w, replacing each "_X" with the output of
// esc['X']. An X without a directive, or a '_' that ends tmpl, writes
// nothing. Everything else is copied verbatim.
func Render(w io.Writer, tmpl string, esc Escapes) error {
	for len(tmpl) > 0 {
		i := strings.IndexByte(tmpl, escapeChar)
		if i < 0 {
			_, err := io.WriteString(w, tmpl)
			return err
		}
		if i > 0 {
			if _, err := io.WriteString(w, tmpl[:i]); err != nil {
				return err
			}
		}
		sel, size := utf8.DecodeRuneInString(tmpl[i+1:])
		tmpl = tmpl[i+1+size:]
		if size == 0 {
			break
		}
		if d, ok := esc[sel]; ok {
			if err := d(w); err != nil {
				return err
			}
		}
	}
	return nil
}

func emitString(s string) Directive {
	return func(w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	}
}

func emitUint(v uint64) Directive {
	return emitString(strconv.FormatUint(v, 10))
}

// set a flag and write nothing
func setFlag(flag *bool) Directive {
	return func(io.Writer) error {
		*flag = true
		return nil
	}
}

// FileState is the display state of one file. A new one is made for
// each file; the show flags, once set, stay set for that file.
type FileState struct {
	Label      string // name of the file as given by the caller
	Header     Header
	ChunkCount int

	ShowChunks bool // set by _C
	ShowText   bool // set by _K
}

// HeaderEscapes returns the directives of the image header format.
func HeaderEscapes(s *FileState) Escapes {
	return Escapes{
		'f': emitString(s.Label),
		'w': emitUint(uint64(s.Header.Width)),
		'h': emitUint(uint64(s.Header.Height)),
		'd': emitUint(uint64(s.Header.BitDepth)),
		'c': emitString(s.Header.ColorType.String()),
		'N': emitUint(uint64(s.ChunkCount)),
		'C': setFlag(&s.ShowChunks),
		'K': setFlag(&s.ShowText),
	}
}

// ChunkEscapes returns the directives of the chunk format.
func ChunkEscapes(c *Chunk) Escapes {
	return Escapes{
		'n': emitUint(uint64(c.Sequence)),
		't': emitString(c.Type),
		'l': emitUint(uint64(c.Length)),
		'c': emitUint(uint64(c.CRC)),
		'D': func(w io.Writer) error { return DumpHex(w, c.Data) },
	}
}

// TextEscapes returns the directives of the text chunk format.
func TextEscapes(t Text) Escapes {
	latin1 := func(b []byte) Directive {
		return func(w io.Writer) error {
			s, err := latin1ToUTF8(b)
			if err != nil {
				return err
			}
			_, err = w.Write(s)
			return err
		}
	}
	return Escapes{
		'k': latin1(t.Keyword),
		't': latin1(t.Text),
	}
}
