package pngq

import (
	"bytes"
	"testing"

	bst "github.com/mixcode/binarystruct"
)

// encode a chunk with a correct CRC
func makeChunk(t *testing.T, typ string, data []byte) []byte {
	t.Helper()
	hdr, err := bst.Marshal(pngChunk{DataLen: uint32(len(data)), Type: typ}, bst.BigEndian)
	if err != nil {
		t.Fatal(err)
	}
	crc, err := bst.Marshal(Update(Checksum([]byte(typ)), data), bst.BigEndian)
	if err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	b.Write(hdr)
	b.Write(data)
	b.Write(crc)
	return b.Bytes()
}

func makeIHDR(t *testing.T, width, height uint32, depth, colorType uint8) []byte {
	t.Helper()
	data, err := bst.Marshal(ihdrData{Width: width, Height: height, BitDepth: depth, ColorType: colorType}, bst.BigEndian)
	if err != nil {
		t.Fatal(err)
	}
	return makeChunk(t, TypeIHDR, data)
}

// signature followed by chunks
func makePNG(chunks ...[]byte) []byte {
	var b bytes.Buffer
	b.Write(pngHeader)
	for _, c := range chunks {
		b.Write(c)
	}
	return b.Bytes()
}

// signature + IHDR(1x1, 8-bit truecolour) + IEND
func minimalPNG(t *testing.T) []byte {
	t.Helper()
	return makePNG(makeIHDR(t, 1, 1, 8, uint8(Truecolour)), makeChunk(t, TypeIEND, nil))
}
