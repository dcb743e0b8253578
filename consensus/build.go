package consensus

import (
	"fmt"

	"github.com/grailbio/conseq/coverage"
	"github.com/grailbio/conseq/encoding/refseq"
	"github.com/willf/bitset"
)

// Sequence is one masked sequence of a Genome.
type Sequence struct {
	Name string
	Seq  string
	// Listed is the number of low-coverage positions reported for the
	// sequence, duplicates included.
	Listed int
	// Masked is the number of distinct bases replaced by the mask.
	Masked int
}

// Genome is a consensus genome.  Sequences appear in reference order.
type Genome struct {
	Seqs  []Sequence
	index map[string]int
}

// Get returns the masked sequence with the given name.
func (g *Genome) Get(name string) (string, bool) {
	i, ok := g.index[name]
	if !ok {
		return "", false
	}
	return g.Seqs[i].Seq, true
}

// TotalMasked returns the number of masked bases across all sequences.
func (g *Genome) TotalMasked() int {
	n := 0
	for _, s := range g.Seqs {
		n += s.Masked
	}
	return n
}

// RangeError reports a low-coverage position that lies outside its sequence.
type RangeError struct {
	Name string
	// Pos is the offending 1-based position.
	Pos int
	// Len is the length of the sequence.
	Len int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("consensus: position %d out of range [1, %d] for sequence %s", e.Pos, e.Len, e.Name)
}

// Build copies every reference sequence, replacing the base at each 1-based
// low-coverage position with mask.  Sequences are indexed by byte; refseq
// guarantees they are ASCII.  Build fails with a *RangeError if a position
// lies outside its sequence.  Positions for names absent from ref are ignored.
func Build(ref *refseq.Reference, low coverage.LowCoverage, mask byte) (*Genome, error) {
	g := &Genome{
		Seqs:  make([]Sequence, 0, ref.NumSeqs()),
		index: make(map[string]int, ref.NumSeqs()),
	}
	for _, name := range ref.SeqNames() {
		seq, _ := ref.Get(name)
		positions := low.Positions(name)
		buf := []byte(seq)
		masked := bitset.New(uint(len(buf)))
		for _, pos := range positions {
			if pos < 1 || pos > len(buf) {
				return nil, &RangeError{Name: name, Pos: pos, Len: len(buf)}
			}
			buf[pos-1] = mask
			masked.Set(uint(pos - 1))
		}
		g.index[name] = len(g.Seqs)
		g.Seqs = append(g.Seqs, Sequence{
			Name:   name,
			Seq:    string(buf),
			Listed: len(positions),
			Masked: int(masked.Count()),
		})
	}
	return g, nil
}
