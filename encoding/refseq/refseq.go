// Package refseq reads single-line reference sequence tables.  Each line holds
// a sequence name followed by the full sequence, separated by whitespace:
//
// chr7 ACGTACGAGGACGCG
// chr8 ACGT
//
// Tokens after the sequence are ignored, and empty lines are skipped.  Unlike
// FASTA, a sequence may not be wrapped across lines.  Sequences must be ASCII,
// so that byte i of a sequence is its (i+1)-th base.
package refseq

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/conseq/util"
	"github.com/klauspost/compress/gzip"
)

// maxLineSize bounds the length of a single line.  A line holds an entire
// sequence, so this is the longest sequence that can be loaded.
const maxLineSize = 1 << 30

// Reference is an in-memory set of named sequences.
type Reference struct {
	seqs     map[string]string
	seqNames []string
}

// New reads a reference table from r.  If a name appears more than once, the
// last sequence wins, but the name keeps the position of its first
// appearance.
func New(r io.Reader) (*Reference, error) {
	return newReference(r, "reference")
}

// Load reads a reference table from the given path.  Paths ending in .gz are
// decompressed.
func Load(ctx context.Context, path string) (ref *Reference, err error) {
	var in file.File
	if in, err = file.Open(ctx, path); err != nil {
		return nil, errors.E(err, "open reference", path)
	}
	defer file.CloseAndReport(ctx, in, &err)
	reader := io.Reader(in.Reader(ctx))
	switch fileio.DetermineType(path) {
	case fileio.Gzip:
		gz, gerr := gzip.NewReader(reader)
		if gerr != nil {
			return nil, errors.E(gerr, "open reference", path)
		}
		defer gz.Close() // nolint: errcheck
		reader = gz
	}
	return newReference(reader, path)
}

func newReference(r io.Reader, label string) (*Reference, error) {
	ref := &Reference{seqs: make(map[string]string)}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, maxLineSize)
	var (
		tokens = make([][]byte, 2)
		lineno int
	)
	for scanner.Scan() {
		lineno++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if util.Fields(tokens, line) < 2 {
			return nil, errors.E(errors.Invalid,
				fmt.Sprintf("%s:%d: malformed reference line, want <name> <sequence>: %q", label, lineno, line))
		}
		if i := nonASCII(tokens[1]); i >= 0 {
			return nil, errors.E(errors.Invalid,
				fmt.Sprintf("%s:%d: non-ASCII byte 0x%02x at sequence offset %d", label, lineno, tokens[1][i], i))
		}
		name := string(tokens[0])
		if _, ok := ref.seqs[name]; !ok {
			ref.seqNames = append(ref.seqNames, name)
		}
		ref.seqs[name] = string(tokens[1])
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.E(err, "read reference", label)
	}
	return ref, nil
}

// Get returns the sequence with the given name.
func (r *Reference) Get(name string) (string, bool) {
	s, ok := r.seqs[name]
	return s, ok
}

// SeqNames returns the names of all sequences, in the order of their first
// appearance.
func (r *Reference) SeqNames() []string {
	return r.seqNames
}

// NumSeqs returns the number of distinct sequences.
func (r *Reference) NumSeqs() int {
	return len(r.seqNames)
}

// nonASCII returns the index of the first byte of seq above 0x7f, or -1.
func nonASCII(seq []byte) int {
	for i, c := range seq {
		if c >= 0x80 {
			return i
		}
	}
	return -1
}
