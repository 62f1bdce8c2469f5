package pngq

import (
	"fmt"
	"io"
)

// default formats
const (
	DefaultHeaderFormat = "_f: _w x _h, _c, _d bits per sample, _N chunks\n_C"
	DefaultChunkFormat  = "\t_n: _t (_l)\n"
	DefaultTextFormat   = "\t_k: _t\n"
)

// Formats are the three format strings used to print a file.
type Formats struct {
	Header string // printed once per file
	Chunk  string // printed per chunk, if the header format contains _C
	Text   string // printed per tEXt chunk, if the header format contains _K
}

func DefaultFormats() Formats {
	return Formats{
		Header: DefaultHeaderFormat,
		Chunk:  DefaultChunkFormat,
		Text:   DefaultTextFormat,
	}
}

// Report is the outcome of inspecting a file that could be read.
type Report struct {
	Sequence *Sequence
	State    *FileState

	// Warnings are problems that did not stop the output, in the order
	// they were found.
	Warnings []error
}

// Inspect inspects a PNG stream with a default Reader.
func Inspect(w io.Writer, in io.Reader, label string, f Formats) (*Report, error) {
	var rd Reader
	return rd.Inspect(w, in, label, f)
}

// Inspect reads the chunks of in and prints them to w with the formats
// in f. An error reading the chunks is returned before anything is
// printed. Problems in the header or text chunks are collected in the
// report instead.
func (rd *Reader) Inspect(w io.Writer, in io.Reader, label string, f Formats) (rep *Report, err error) {
	seq, err := rd.ReadChunks(in)
	if err != nil {
		return nil, err
	}

	st := &FileState{Label: label, ChunkCount: len(seq.Chunks)}
	rep = &Report{Sequence: seq, State: st}

	h, err := ParseHeader(seq)
	st.Header = h
	if err != nil {
		rep.Warnings = append(rep.Warnings, err)
	}

	if err = Render(w, f.Header, HeaderEscapes(st)); err != nil {
		return rep, err
	}
	for _, c := range seq.Chunks {
		if st.ShowChunks {
			if err = Render(w, f.Chunk, ChunkEscapes(c)); err != nil {
				return rep, err
			}
		}
		if c.Type != TypeTEXt {
			continue
		}
		t := ParseText(c.Data)
		if verr := t.Validate(); verr != nil {
			rep.Warnings = append(rep.Warnings, fmt.Errorf("chunk %d: %w", c.Sequence, verr))
		}
		if st.ShowText {
			if err = Render(w, f.Text, TextEscapes(t)); err != nil {
				return rep, err
			}
		}
	}
	return rep, nil
}
