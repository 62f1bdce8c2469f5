package pngq

import (
	"errors"
	"fmt"
)

// Errors that abort reading a file. No chunk sequence is returned with them.
var (
	ErrBadSignature  = errors.New("invalid PNG signature")
	ErrTruncated     = errors.New("truncated chunk")
	ErrBadChunkType  = errors.New("invalid chunk type")
	ErrCRCMismatch   = errors.New("chunk has invalid CRC")
	ErrChunkTooLarge = errors.New("chunk length exceeds limit")
)

// Errors that are reported but do not stop the output of a file.
var (
	ErrMissingHeader    = errors.New("first chunk is not IHDR")
	ErrHeaderLength     = errors.New("IHDR chunk has wrong length")
	ErrInvalidColorType = errors.New("invalid color type")
	ErrInvalidBitDepth  = errors.New("invalid bit depth for color type")
	ErrKeywordLength    = errors.New("tEXt keyword must be 1 to 79 bytes")
)

// chunk fields, as named by TruncatedError
const (
	FieldLength = "length"
	FieldType   = "type"
	FieldData   = "data"
	FieldCRC    = "crc"
)

// TruncatedError is returned when the stream ends inside a chunk.
type TruncatedError struct {
	Sequence int    // 1-based number of the chunk being read
	Field    string // one of the Field* constants
	Err      error  // underlying read error
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("chunk %d: truncated %s field: %v", e.Sequence, e.Field, e.Err)
}

func (e *TruncatedError) Is(target error) bool { return target == ErrTruncated }

func (e *TruncatedError) Unwrap() error { return e.Err }

// ChunkTypeError reports a chunk type containing a byte that is not an ASCII letter.
type ChunkTypeError struct {
	Sequence int
	Type     [4]byte
}

func (e *ChunkTypeError) Error() string {
	return fmt.Sprintf("chunk %d: invalid chunk type %q", e.Sequence, e.Type[:])
}

func (e *ChunkTypeError) Is(target error) bool { return target == ErrBadChunkType }

// CRCError reports a chunk whose stored CRC differs from the computed one.
type CRCError struct {
	Sequence int
	Type     string
	Stored   uint32
	Computed uint32
}

func (e *CRCError) Error() string {
	return fmt.Sprintf("chunk %d (%s) has invalid CRC: stored %08x, computed %08x",
		e.Sequence, e.Type, e.Stored, e.Computed)
}

func (e *CRCError) Is(target error) bool { return target == ErrCRCMismatch }
