package fasta

import (
	"bufio"
	"io"
)

// Writer is a FASTA writer.  Each sequence is written unwrapped, as a header
// line followed by a single sequence line.
type Writer struct {
	w     *bufio.Writer
	off   int64
	index []IndexEntry
	err   error
}

// NewWriter constructs a new FASTA writer that writes sequences to the
// underlying writer w.  The caller must call Flush once done.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Write writes one record.  An error is returned if the write failed; once a
// write fails, all later calls fail with the same error.
func (w *Writer) Write(name, seq string) error {
	w.writeByte('>')
	w.writeString(name)
	w.writeByte('\n')
	seqOff := w.off
	w.writeString(seq)
	w.writeByte('\n')
	if w.err == nil {
		w.index = append(w.index, IndexEntry{
			Name:      name,
			Length:    int64(len(seq)),
			Offset:    seqOff,
			LineBases: int64(len(seq)),
			LineWidth: int64(len(seq)) + 1,
		})
	}
	return w.err
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	w.err = w.w.Flush()
	return w.err
}

// Index returns the index entries of the records written so far.
func (w *Writer) Index() []IndexEntry {
	return w.index
}

func (w *Writer) writeString(s string) {
	if w.err != nil {
		return
	}
	var n int
	n, w.err = w.w.WriteString(s)
	w.off += int64(n)
}

func (w *Writer) writeByte(c byte) {
	if w.err != nil {
		return
	}
	if w.err = w.w.WriteByte(c); w.err == nil {
		w.off++
	}
}
