//
// read the chunk stream of a PNG file
//
// PNG spec
// https://www.w3.org/TR/2003/REC-PNG-20031110/
//

package pngq

import (
	"bytes"
	"fmt"
	"hash"
	"io"

	bst "github.com/mixcode/binarystruct"
)

var (
	pngHeader = []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a} // PNG file header
)

// chunk types with special meaning
const (
	TypeIHDR = "IHDR" // image header, must be the first chunk
	TypeIEND = "IEND" // image trailer
	TypeTEXt = "tEXt" // Latin-1 keyword and text
)

// MaxChunkLength is the largest chunk length PNG allows (2^31-1).
const MaxChunkLength = 1<<31 - 1

// Chunk is one {Length, Type, [DATA], CRC} unit of a PNG stream.
type Chunk struct {
	Sequence int    // 1-based position in the file
	Length   uint32 // declared size of Data
	Type     string // always 4 ASCII letters
	Data     []byte
	CRC      uint32 // CRC stored in the file; equals the CRC of Type+Data
}

// header of a chunk on the wire, stored in big-endian
type pngChunk struct {
	DataLen uint32 `binary:"uint32"`  // size of actual data
	Type    string `binary:"[4]byte"` // type is 4-byte char sequence
}

// Sequence is the list of chunks read from one file.
type Sequence struct {
	Chunks []*Chunk

	// Terminated is set if the stream ended with an IEND chunk.
	// A stream that simply runs out of chunks is not an error.
	Terminated bool
}

// IsCritical reports the "ancillary" bit of the first type byte being clear.
func (c *Chunk) IsCritical() bool { return c.Type[0]&0x20 == 0 }

// IsPublic reports the "private" bit of the second type byte being clear.
func (c *Chunk) IsPublic() bool { return c.Type[1]&0x20 == 0 }

// IsSafeToCopy reports the "safe-to-copy" bit of the fourth type byte.
func (c *Chunk) IsSafeToCopy() bool { return c.Type[3]&0x20 != 0 }

func (c *Chunk) String() string {
	return fmt.Sprintf("%d: %s (%d bytes)", c.Sequence, c.Type, c.Length)
}

// crcReader is a reader with a built-in CRC32 calculator
type crcReader struct {
	R   io.Reader
	Crc hash.Hash32
}

func newCrcReader(r io.Reader) *crcReader {
	return &crcReader{R: r, Crc: NewCRC()}
}

// reset CRC calculator
func (c *crcReader) ResetCRC(initialData []byte) {
	c.Crc.Reset()
	if initialData != nil {
		c.Crc.Write(initialData)
	}
}

// read data and update CRC32
func (c *crcReader) Read(p []byte) (n int, err error) {
	n, err = c.R.Read(p)
	c.Crc.Write(p[:n])
	return
}

// Reader reads PNG chunk streams.
type Reader struct {
	// MaxChunkLength rejects chunks declaring a longer payload.
	// Zero means the PNG limit, MaxChunkLength.
	MaxChunkLength uint32
}

// ReadChunks reads a PNG chunk stream with a default Reader.
func ReadChunks(in io.Reader) (*Sequence, error) {
	var rd Reader
	return rd.ReadChunks(in)
}

// ReadChunks checks the PNG signature, then reads chunks until an IEND
// chunk or the end of the stream. On any error no sequence is returned.
func (rd *Reader) ReadChunks(in io.Reader) (seq *Sequence, err error) {
	h := make([]byte, len(pngHeader))
	if _, err = io.ReadFull(in, h); err != nil || !bytes.Equal(h, pngHeader) {
		return nil, ErrBadSignature
	}

	limit := rd.MaxChunkLength
	if limit == 0 {
		limit = MaxChunkLength
	}

	newSeq := Sequence{Chunks: make([]*Chunk, 0)}
	r := newCrcReader(in)
	for n := 1; ; n++ {
		var ch *Chunk
		ch, err = readChunk(in, r, n, limit)
		if err == io.EOF {
			// no more chunks
			break
		}
		if err != nil {
			return nil, err
		}
		newSeq.Chunks = append(newSeq.Chunks, ch)
		if ch.Type == TypeIEND {
			newSeq.Terminated = true
			break
		}
	}
	return &newSeq, nil
}

// read one chunk; io.EOF means the stream ended before the chunk started
func readChunk(in io.Reader, r *crcReader, n int, limit uint32) (*Chunk, error) {
	// length and type are read separately so a short read names its field
	var h [8]byte
	if _, err := io.ReadFull(in, h[:4]); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, &TruncatedError{Sequence: n, Field: FieldLength, Err: err}
	}
	if _, err := io.ReadFull(in, h[4:]); err != nil {
		return nil, &TruncatedError{Sequence: n, Field: FieldType, Err: unexpectedEOF(err)}
	}
	if !validChunkType(h[4:]) {
		e := &ChunkTypeError{Sequence: n}
		copy(e.Type[:], h[4:])
		return nil, e
	}

	var hdr pngChunk
	if _, err := bst.Read(bytes.NewReader(h[:]), bst.BigEndian, &hdr); err != nil {
		return nil, err
	}
	if hdr.DataLen > limit {
		return nil, fmt.Errorf("chunk %d (%s): %w: %d > %d", n, hdr.Type, ErrChunkTooLarge, hdr.DataLen, limit)
	}

	// the buffer grows with the bytes actually read, not with the declared length
	var data bytes.Buffer
	r.ResetCRC(h[4:])
	if _, err := io.CopyN(&data, r, int64(hdr.DataLen)); err != nil {
		return nil, &TruncatedError{Sequence: n, Field: FieldData, Err: unexpectedEOF(err)}
	}

	var crcBuf [4]byte
	if _, err := io.ReadFull(in, crcBuf[:]); err != nil {
		return nil, &TruncatedError{Sequence: n, Field: FieldCRC, Err: unexpectedEOF(err)}
	}
	var stored uint32
	if _, err := bst.Read(bytes.NewReader(crcBuf[:]), bst.BigEndian, &stored); err != nil {
		return nil, err
	}
	if computed := r.Crc.Sum32(); stored != computed {
		return nil, &CRCError{Sequence: n, Type: hdr.Type, Stored: stored, Computed: computed}
	}

	return &Chunk{
		Sequence: n,
		Length:   hdr.DataLen,
		Type:     hdr.Type,
		Data:     data.Bytes(),
		CRC:      stored,
	}, nil
}

// every byte of a chunk type must be an ASCII letter
func validChunkType(t []byte) bool {
	for _, b := range t {
		if !('A' <= b && b <= 'Z' || 'a' <= b && b <= 'z') {
			return false
		}
	}
	return true
}

// a stream ending inside a chunk is never a clean EOF
func unexpectedEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
