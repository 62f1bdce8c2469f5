package pngq

import (
	"strings"
	"testing"
)

func dump(t *testing.T, b []byte) string {
	t.Helper()
	var sb strings.Builder
	if err := DumpHex(&sb, b); err != nil {
		t.Fatal(err)
	}
	return sb.String()
}

func TestDumpHex(t *testing.T) {
	seq := func(n int) []byte {
		b := make([]byte, n)
		for i := range b {
			b[i] = byte(i)
		}
		return b
	}
	cases := []struct {
		in   []byte
		want string
	}{
		{nil, "\n"},
		{[]byte{0x0a}, "0a"},
		{[]byte{0xde, 0xad, 0xbe, 0xef}, "de ad be ef"},
		{seq(16), "00 01 02 03 04 05 06 07 08 09 0a 0b 0c 0d 0e 0f"},
		{seq(17), "00 01 02 03 04 05 06 07 08 09 0a 0b 0c 0d 0e 0f\n10"},
	}
	for _, c := range cases {
		if got := dump(t, c.in); got != c.want {
			t.Fatalf("%x: got %q, want %q", c.in, got, c.want)
		}
	}
}

func TestDumpHexLineBreaks(t *testing.T) {
	for _, n := range []int{1, 15, 16, 17, 32, 33, 100} {
		got := dump(t, make([]byte, n))
		breaks := strings.Count(got, "\n")
		if want := (n - 1) / 16; breaks != want {
			t.Fatalf("%d bytes: %d line breaks, want %d", n, breaks, want)
		}
		if strings.HasSuffix(got, "\n") {
			t.Fatalf("%d bytes: trailing line break", n)
		}
		if values := len(strings.Fields(got)); values != n {
			t.Fatalf("%d bytes: %d values", n, values)
		}
	}
}
