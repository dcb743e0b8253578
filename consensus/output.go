package consensus

import (
	"context"
	"fmt"
	"io"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/conseq/encoding/fasta"
	"github.com/klauspost/compress/gzip"
)

// WriteFASTA writes g to path as FASTA, one unwrapped record per sequence.
// A path ending in .gz is gzip-compressed.  The returned index entries
// describe the uncompressed data.  An existing file is replaced.  The write
// is not transactional.
func WriteFASTA(ctx context.Context, path string, g *Genome) (index []fasta.IndexEntry, err error) {
	var out file.File
	if out, err = file.Create(ctx, path); err != nil {
		return nil, errors.E(err, "create output", path)
	}
	defer file.CloseAndReport(ctx, out, &err)

	w := out.Writer(ctx)
	if fileio.DetermineType(path) == fileio.Gzip {
		gz := gzip.NewWriter(w)
		defer func() {
			if cerr := gz.Close(); cerr != nil && err == nil {
				err = errors.E(cerr, "write output", path)
			}
		}()
		w = gz
	}
	fw := fasta.NewWriter(w)
	for _, s := range g.Seqs {
		if err = fw.Write(s.Name, s.Seq); err != nil {
			return nil, errors.E(err, "write output", path)
		}
	}
	if err = fw.Flush(); err != nil {
		return nil, errors.E(err, "write output", path)
	}
	return fw.Index(), nil
}

// WriteIndex writes index entries, as returned by WriteFASTA, to path in
// samtools .fai format.
func WriteIndex(ctx context.Context, path string, index []fasta.IndexEntry) (err error) {
	var out file.File
	if out, err = file.Create(ctx, path); err != nil {
		return errors.E(err, "create index", path)
	}
	defer file.CloseAndReport(ctx, out, &err)
	if err = fasta.WriteIndex(out.Writer(ctx), index); err != nil {
		return errors.E(err, "write index", path)
	}
	return nil
}

// VerifyIndexed re-reads a FASTA file written by WriteFASTA together with its
// .fai index, and checks that both describe exactly the sequences of g, in
// order.  Gzip output is not supported.
func VerifyIndexed(ctx context.Context, fastaPath, indexPath string, g *Genome) (err error) {
	var (
		in      file.File
		f       *fasta.Fasta
		entries []fasta.IndexEntry
	)
	if in, err = file.Open(ctx, fastaPath); err != nil {
		return errors.E(err, "open output", fastaPath)
	}
	f, err = fasta.New(in.Reader(ctx))
	file.CloseAndReport(ctx, in, &err)
	if err != nil {
		return errors.E(err, "read output", fastaPath)
	}
	if in, err = file.Open(ctx, indexPath); err != nil {
		return errors.E(err, "open index", indexPath)
	}
	entries, err = fasta.ReadIndex(in.Reader(ctx))
	file.CloseAndReport(ctx, in, &err)
	if err != nil {
		return errors.E(err, "read index", indexPath)
	}

	mismatch := func(format string, args ...interface{}) error {
		return errors.E(errors.Integrity, fmt.Sprintf("consensus: %s: ", fastaPath)+fmt.Sprintf(format, args...))
	}
	if got, want := len(f.SeqNames()), len(g.Seqs); got != want {
		return mismatch("found %d sequence(s), want %d", got, want)
	}
	if got, want := len(entries), len(g.Seqs); got != want {
		return mismatch("index has %d entries, want %d", got, want)
	}
	for i, s := range g.Seqs {
		if name := f.SeqNames()[i]; name != s.Name {
			return mismatch("sequence %d is %s, want %s", i, name, s.Name)
		}
		seq, err := f.Get(s.Name)
		if err != nil {
			return errors.E(err, "read output", fastaPath)
		}
		if seq != s.Seq {
			return mismatch("sequence %s differs from the consensus", s.Name)
		}
		n, err := f.Len(s.Name)
		if err != nil {
			return errors.E(err, "read output", fastaPath)
		}
		if e := entries[i]; e.Name != s.Name || e.Length != int64(n) {
			return mismatch("index entry %s/%d does not match sequence %s/%d", e.Name, e.Length, s.Name, n)
		}
	}
	return nil
}

// WriteStats writes a per-sequence masking summary of g to path as TSV.  The
// columns are NAME, LENGTH, LISTED (low-coverage positions reported,
// duplicates included) and MASKED (distinct bases masked).
func WriteStats(ctx context.Context, path string, g *Genome) (err error) {
	var out file.File
	if out, err = file.Create(ctx, path); err != nil {
		return errors.E(err, "create stats", path)
	}
	defer file.CloseAndReport(ctx, out, &err)
	if err = writeStats(out.Writer(ctx), g); err != nil {
		return errors.E(err, "write stats", path)
	}
	return nil
}

func writeStats(w io.Writer, g *Genome) error {
	tsvOut := tsv.NewWriter(w)
	tsvOut.WriteString("NAME\tLENGTH\tLISTED\tMASKED")
	if err := tsvOut.EndLine(); err != nil {
		return err
	}
	for _, s := range g.Seqs {
		tsvOut.WriteString(s.Name)
		tsvOut.WriteInt64(int64(len(s.Seq)))
		tsvOut.WriteInt64(int64(s.Listed))
		tsvOut.WriteInt64(int64(s.Masked))
		if err := tsvOut.EndLine(); err != nil {
			return err
		}
	}
	return tsvOut.Flush()
}
