package pngq

import (
	"bytes"
	"io"
)

const (
	hexDigits   = "0123456789abcdef"
	dumpColumns = 16 // bytes per line
)

// DumpHex writes every byte of b as a two-digit hex value. Values are
// separated by spaces and a line break follows every 16th byte except the
// last one. An empty b writes a single line break.
func DumpHex(w io.Writer, b []byte) error {
	if len(b) == 0 {
		_, err := io.WriteString(w, "\n")
		return err
	}
	var buf bytes.Buffer
	buf.Grow(len(b) * 3)
	for i, v := range b {
		if i > 0 {
			if i%dumpColumns == 0 {
				buf.WriteByte('\n')
			} else {
				buf.WriteByte(' ')
			}
		}
		buf.WriteByte(hexDigits[v>>4])
		buf.WriteByte(hexDigits[v&0x0f])
	}
	_, err := buf.WriteTo(w)
	return err
}
