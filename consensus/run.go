package consensus

import (
	"context"

	"github.com/grailbio/base/log"
	"github.com/grailbio/conseq/coverage"
	"github.com/grailbio/conseq/encoding/refseq"
)

// Run loads the reference and depth report named in opts, masks low-depth
// bases, and writes the consensus to opts.OutputPath.  The first error aborts
// the run; nothing is written unless every input parsed and every position
// was in range.
func Run(ctx context.Context, opts Opts) error {
	if err := opts.validate(); err != nil {
		return err
	}
	ref, err := refseq.Load(ctx, opts.ReferencePath)
	if err != nil {
		return err
	}
	log.Printf("consensus: loaded %d sequence(s) from %s", ref.NumSeqs(), opts.ReferencePath)
	low, err := coverage.Load(ctx, opts.CoveragePath, opts.DepthThreshold)
	if err != nil {
		return err
	}
	log.Printf("consensus: %d low-coverage position(s) on %d sequence(s)", low.NumPositions(), len(low))
	g, err := Build(ref, low, opts.Mask)
	if err != nil {
		return err
	}
	log.Printf("consensus: masked %d base(s) across %d sequence(s)", g.TotalMasked(), len(g.Seqs))

	index, err := WriteFASTA(ctx, opts.OutputPath, g)
	if err != nil {
		return err
	}
	if opts.WriteIndex {
		indexPath := opts.OutputPath + ".fai"
		if err := WriteIndex(ctx, indexPath, index); err != nil {
			return err
		}
		if err := VerifyIndexed(ctx, opts.OutputPath, indexPath, g); err != nil {
			return err
		}
	}
	if opts.StatsPath != "" {
		if err := WriteStats(ctx, opts.StatsPath, g); err != nil {
			return err
		}
	}
	log.Debug.Printf("consensus: wrote %s", opts.OutputPath)
	return nil
}
