package consensus

import (
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/fileio"
)

// Opts configures Run.
type Opts struct {
	// ReferencePath is the reference table (see package refseq).  Required.
	ReferencePath string
	// CoveragePath is the per-position depth report (see package coverage).
	// Required.
	CoveragePath string
	// OutputPath is where the consensus FASTA is written.  A .gz suffix
	// causes gzip output.  Required.
	OutputPath string
	// DepthThreshold is the minimum depth at which a base is kept; positions
	// with depth strictly below it are masked.
	DepthThreshold int
	// Mask replaces low-depth bases.
	Mask byte
	// StatsPath, if nonempty, receives a per-sequence masking summary TSV.
	StatsPath string
	// WriteIndex causes OutputPath + ".fai" to be written.  Not supported for
	// gzip output.
	WriteIndex bool
}

// DefaultOpts is the default setting for Opts.
var DefaultOpts = Opts{
	DepthThreshold: 10,
	Mask:           'N',
}

func (o *Opts) validate() error {
	if o.ReferencePath == "" {
		return errors.E(errors.Invalid, "consensus: reference path is required")
	}
	if o.CoveragePath == "" {
		return errors.E(errors.Invalid, "consensus: coverage path is required")
	}
	if o.OutputPath == "" {
		return errors.E(errors.Invalid, "consensus: output path is required")
	}
	if o.Mask <= ' ' || o.Mask > '~' || o.Mask == '>' {
		return errors.E(errors.Invalid, "consensus: mask must be a printable character other than '>'")
	}
	if o.WriteIndex && fileio.DetermineType(o.OutputPath) == fileio.Gzip {
		return errors.E(errors.Invalid, "consensus: cannot index gzip output", o.OutputPath)
	}
	return nil
}
