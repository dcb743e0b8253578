package consensus_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/grailbio/conseq/consensus"
	"github.com/grailbio/conseq/coverage"
	"github.com/grailbio/conseq/encoding/refseq"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func newRef(t *testing.T, data string) *refseq.Reference {
	ref, err := refseq.New(strings.NewReader(data))
	assert.NoError(t, err)
	return ref
}

func TestBuild(t *testing.T) {
	ref := newRef(t, "seq1 ACGTACGT\nseq2 GGGG\nseq3 TTTT\n")
	tests := []struct {
		name string
		low  coverage.LowCoverage
		want map[string]string
	}{
		{
			name: "empty coverage",
			low:  coverage.LowCoverage{},
			want: map[string]string{"seq1": "ACGTACGT", "seq2": "GGGG", "seq3": "TTTT"},
		},
		{
			name: "nil coverage",
			low:  nil,
			want: map[string]string{"seq1": "ACGTACGT", "seq2": "GGGG", "seq3": "TTTT"},
		},
		{
			name: "first and last",
			low:  coverage.LowCoverage{"seq1": {1, 8}},
			want: map[string]string{"seq1": "NCGTACGN", "seq2": "GGGG", "seq3": "TTTT"},
		},
		{
			name: "duplicates and unsorted",
			low:  coverage.LowCoverage{"seq1": {6, 3, 6}, "seq3": {2}},
			want: map[string]string{"seq1": "ACNTANGT", "seq2": "GGGG", "seq3": "TNTT"},
		},
		{
			name: "unknown sequence",
			low:  coverage.LowCoverage{"chrUn": {1, 2, 100}, "seq2": {4}},
			want: map[string]string{"seq1": "ACGTACGT", "seq2": "GGGN", "seq3": "TTTT"},
		},
	}
	for _, test := range tests {
		g, err := consensus.Build(ref, test.low, 'N')
		assert.NoError(t, err)
		expect.EQ(t, len(g.Seqs), 3, test.name)
		for i, name := range []string{"seq1", "seq2", "seq3"} {
			expect.EQ(t, g.Seqs[i].Name, name, test.name)
			got, ok := g.Get(name)
			expect.True(t, ok)
			expect.EQ(t, got, test.want[name], test.name)
		}
		_, ok := g.Get("chrUn")
		expect.False(t, ok)
	}
}

// Every listed position is masked and every other base is unchanged.
func TestBuildMasksExactlyListedPositions(t *testing.T) {
	const seq = "ACGTTGCAACGTTGCAACGT"
	ref := newRef(t, "s "+seq+"\n")
	positions := []int{2, 5, 5, 11, 20, 1}
	g, err := consensus.Build(ref, coverage.LowCoverage{"s": positions}, 'N')
	assert.NoError(t, err)
	got, _ := g.Get("s")
	assert.EQ(t, len(got), len(seq))

	listed := map[int]bool{}
	for _, p := range positions {
		listed[p-1] = true
	}
	for i := range seq {
		if listed[i] {
			expect.EQ(t, got[i], byte('N'), "index %d", i)
		} else {
			expect.EQ(t, got[i], seq[i], "index %d", i)
		}
	}
	expect.EQ(t, g.Seqs[0].Listed, 6)
	expect.EQ(t, g.Seqs[0].Masked, 5)
	expect.EQ(t, g.TotalMasked(), 5)
}

func TestBuildIdempotent(t *testing.T) {
	ref := newRef(t, "a ACGTACGT\nb NNAC\n")
	low := coverage.LowCoverage{"a": {2, 4}, "b": {1, 3}}
	g1, err := consensus.Build(ref, low, 'N')
	assert.NoError(t, err)
	g2, err := consensus.Build(ref, low, 'N')
	assert.NoError(t, err)
	expect.EQ(t, g1.Seqs, g2.Seqs)

	// Masking a consensus again changes nothing.
	again := newRef(t, "a "+g1.Seqs[0].Seq+"\nb "+g1.Seqs[1].Seq+"\n")
	g3, err := consensus.Build(again, low, 'N')
	assert.NoError(t, err)
	for i := range g1.Seqs {
		expect.EQ(t, g3.Seqs[i].Seq, g1.Seqs[i].Seq)
	}
}

func TestBuildReferenceUnchanged(t *testing.T) {
	ref := newRef(t, "a ACGT\n")
	_, err := consensus.Build(ref, coverage.LowCoverage{"a": {1, 2, 3, 4}}, 'N')
	assert.NoError(t, err)
	seq, _ := ref.Get("a")
	expect.EQ(t, seq, "ACGT")
}

func TestBuildMask(t *testing.T) {
	ref := newRef(t, "a ACGT\n")
	g, err := consensus.Build(ref, coverage.LowCoverage{"a": {3}}, '-')
	assert.NoError(t, err)
	got, _ := g.Get("a")
	expect.EQ(t, got, "AC-T")
}

func TestBuildOutOfRange(t *testing.T) {
	ref := newRef(t, "a ACGT\nb GG\n")
	for _, pos := range []int{0, -1, 5, 10} {
		g, err := consensus.Build(ref, coverage.LowCoverage{"a": {1, pos}}, 'N')
		expect.True(t, g == nil)
		assert.NotNil(t, err)
		var rangeErr *consensus.RangeError
		assert.True(t, errors.As(err, &rangeErr))
		expect.EQ(t, *rangeErr, consensus.RangeError{Name: "a", Pos: pos, Len: 4})
		assert.HasSubstr(t, err.Error(), "out of range [1, 4] for sequence a")
	}
}
