package pngq

import (
	"bytes"
	"errors"
	"fmt"

	bst "github.com/mixcode/binarystruct"
)

// ColorType is the color type byte of IHDR.
type ColorType uint8

const (
	Greyscale       ColorType = 0
	Truecolour      ColorType = 2
	Indexed         ColorType = 3
	GreyscaleAlpha  ColorType = 4
	TruecolourAlpha ColorType = 6
)

var colorTypeName = map[ColorType]string{
	Greyscale:       "Greyscale",
	Truecolour:      "Truecolour",
	Indexed:         "Indexed",
	GreyscaleAlpha:  "Greyscale with alpha",
	TruecolourAlpha: "Truecolour with alpha",
}

// allowed bit depths of each color type
var colorTypeDepths = map[ColorType][]uint8{
	Greyscale:       {1, 2, 4, 8, 16},
	Truecolour:      {8, 16},
	Indexed:         {1, 2, 4, 8},
	GreyscaleAlpha:  {8, 16},
	TruecolourAlpha: {8, 16},
}

// Valid reports whether c is one of the five PNG color types.
func (c ColorType) Valid() bool {
	_, ok := colorTypeName[c]
	return ok
}

func (c ColorType) String() string {
	if name, ok := colorTypeName[c]; ok {
		return name
	}
	return fmt.Sprintf("ColorType(%d)", uint8(c))
}

// size of the IHDR payload
const ihdrLength = 13

// IHDR payload as stored in the file, big-endian
type ihdrData struct {
	Width       uint32 `binary:"uint32"`
	Height      uint32 `binary:"uint32"`
	BitDepth    uint8  `binary:"uint8"`
	ColorType   uint8  `binary:"uint8"`
	Compression uint8  `binary:"uint8"`
	Filter      uint8  `binary:"uint8"`
	Interlace   uint8  `binary:"uint8"`
}

// Header holds the fields of an IHDR chunk.
type Header struct {
	Width       uint32
	Height      uint32
	BitDepth    uint8
	ColorType   ColorType
	Compression uint8
	Filter      uint8
	Interlace   uint8
}

// Validate checks the bit depth against the color type.
func (h Header) Validate() error {
	depths, ok := colorTypeDepths[h.ColorType]
	if !ok {
		return fmt.Errorf("%w: %d", ErrInvalidColorType, uint8(h.ColorType))
	}
	for _, d := range depths {
		if d == h.BitDepth {
			return nil
		}
	}
	return fmt.Errorf("%w: %d bits for %s", ErrInvalidBitDepth, h.BitDepth, h.ColorType)
}

// ParseHeader decodes the IHDR chunk that starts seq and validates it.
// The errors it returns are not fatal: the fields that could be decoded
// are returned along with them.
func ParseHeader(seq *Sequence) (h Header, err error) {
	if len(seq.Chunks) == 0 || seq.Chunks[0].Type != TypeIHDR {
		return h, ErrMissingHeader
	}
	c := seq.Chunks[0]

	var errs []error
	buf := make([]byte, ihdrLength)
	if len(c.Data) != ihdrLength {
		errs = append(errs, fmt.Errorf("%w: %d bytes", ErrHeaderLength, len(c.Data)))
	}
	// a short payload leaves its missing fields zero
	copy(buf, c.Data)

	var raw ihdrData
	if _, err = bst.Read(bytes.NewReader(buf), bst.BigEndian, &raw); err != nil {
		return h, err
	}
	h = Header{
		Width:       raw.Width,
		Height:      raw.Height,
		BitDepth:    raw.BitDepth,
		ColorType:   ColorType(raw.ColorType),
		Compression: raw.Compression,
		Filter:      raw.Filter,
		Interlace:   raw.Interlace,
	}
	if err := h.Validate(); err != nil {
		errs = append(errs, err)
	}
	return h, errors.Join(errs...)
}
