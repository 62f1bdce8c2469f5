package pngq

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func inspect(t *testing.T, b []byte, f Formats) (string, *Report, error) {
	t.Helper()
	var out strings.Builder
	rep, err := Inspect(&out, bytes.NewReader(b), "test.png", f)
	return out.String(), rep, err
}

func textPNG(t *testing.T, depth uint8) []byte {
	t.Helper()
	return makePNG(
		makeIHDR(t, 100, 50, depth, uint8(Indexed)),
		makeChunk(t, "tEXt", []byte("Author\x00Jane Doe")),
		makeChunk(t, "IDAT", []byte{1, 2, 3}),
		makeChunk(t, TypeIEND, nil),
	)
}

func TestInspectDefault(t *testing.T) {
	out, rep, err := inspect(t, textPNG(t, 4), DefaultFormats())
	if err != nil {
		t.Fatal(err)
	}
	want := "test.png: 100 x 50, Indexed, 4 bits per sample, 4 chunks\n" +
		"\t1: IHDR (13)\n" +
		"\t2: tEXt (15)\n" +
		"\t3: IDAT (3)\n" +
		"\t4: IEND (0)\n"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
	if len(rep.Warnings) != 0 {
		t.Fatalf("warnings %v", rep.Warnings)
	}
	if !rep.State.ShowChunks || rep.State.ShowText {
		t.Fatalf("state %+v", rep.State)
	}
}

func TestInspectText(t *testing.T) {
	f := Formats{Header: "_K_f\n", Chunk: "-", Text: DefaultTextFormat}
	out, _, err := inspect(t, textPNG(t, 4), f)
	if err != nil {
		t.Fatal(err)
	}
	// no _C: only the text chunk is printed
	if out != "test.png\n\tAuthor: Jane Doe\n" {
		t.Fatalf("got %q", out)
	}

	f = Formats{Header: "_C_K", Chunk: "[_t]", Text: "(_k)"}
	out, _, err = inspect(t, textPNG(t, 4), f)
	if err != nil {
		t.Fatal(err)
	}
	if out != "[IHDR][tEXt](Author)[IDAT][IEND]" {
		t.Fatalf("got %q", out)
	}
}

func TestInspectDump(t *testing.T) {
	f := Formats{Header: "_C", Chunk: "_t:_D|"}
	b := makePNG(makeChunk(t, TypeIHDR, []byte{0, 0, 0, 1, 0, 0, 0, 1, 8, 2, 0, 0, 0}), makeChunk(t, TypeIEND, nil))
	out, _, err := inspect(t, b, f)
	if err != nil {
		t.Fatal(err)
	}
	if out != "IHDR:00 00 00 01 00 00 00 01 08 02 00 00 00|IEND:\n|" {
		t.Fatalf("got %q", out)
	}
}

func TestInspectInvalidBitDepth(t *testing.T) {
	out, rep, err := inspect(t, textPNG(t, 16), DefaultFormats())
	if err != nil {
		t.Fatal(err)
	}
	// output is still produced
	if !strings.HasPrefix(out, "test.png: 100 x 50, Indexed, 16 bits per sample, 4 chunks\n\t1: IHDR (13)\n") {
		t.Fatalf("got %q", out)
	}
	if len(rep.Warnings) != 1 || !errors.Is(rep.Warnings[0], ErrInvalidBitDepth) {
		t.Fatalf("warnings %v", rep.Warnings)
	}
}

func TestInspectBadKeyword(t *testing.T) {
	b := makePNG(makeIHDR(t, 1, 1, 8, 0), makeChunk(t, "tEXt", []byte("\x00orphan")))
	_, rep, err := inspect(t, b, DefaultFormats())
	if err != nil {
		t.Fatal(err)
	}
	if len(rep.Warnings) != 1 || !errors.Is(rep.Warnings[0], ErrKeywordLength) {
		t.Fatalf("warnings %v", rep.Warnings)
	}
	if rep.Sequence.Terminated {
		t.Fatal("terminated without IEND")
	}
}

func TestInspectFatal(t *testing.T) {
	b := textPNG(t, 4)
	b[len(b)-1] ^= 0xff // IEND crc
	out, rep, err := inspect(t, b, DefaultFormats())
	if !errors.Is(err, ErrCRCMismatch) || rep != nil {
		t.Fatalf("got %v, %v", rep, err)
	}
	if out != "" {
		t.Fatalf("output %q", out)
	}
}
