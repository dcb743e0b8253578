// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package main

// See doc.go for documentation

import (
	"fmt"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/conseq/consensus"
	"v.io/x/lib/cmdline"
)

func newCmdRoot() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "bio-consensus",
		Short:    "Mask low-coverage bases of a reference genome",
		Long:     "Writes a consensus FASTA in which every reference base with depth below --depth_threshold is replaced by the mask character.",
		LookPath: false,
	}
	opts := consensus.DefaultOpts
	cmd.Flags.StringVar(&opts.ReferencePath, "reference", "", "Path to the reference genome table (<name> <sequence> per line). Required.")
	cmd.Flags.StringVar(&opts.CoveragePath, "coverage_file", "", "Path to the per-position depth report (<name> <pos> <depth> per line). Required.")
	cmd.Flags.StringVar(&opts.OutputPath, "output_file", "", "Path of the consensus FASTA to write. A .gz suffix enables gzip output. Required.")
	cmd.Flags.IntVar(&opts.DepthThreshold, "depth_threshold", consensus.DefaultOpts.DepthThreshold, "Bases with depth strictly below this value are masked")
	cmd.Flags.StringVar(&opts.StatsPath, "stats_file", "", "If set, write a per-sequence masking summary TSV to this path")
	cmd.Flags.BoolVar(&opts.WriteIndex, "output_index", false, "Also write a samtools-style index to <output_file>.fai")
	maskFlag := cmd.Flags.String("mask", string(consensus.DefaultOpts.Mask), "Character that replaces low-coverage bases")

	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 0 {
			return env.UsageErrorf("bio-consensus takes no positional arguments, but got %v", argv)
		}
		for _, f := range []struct{ name, val string }{
			{"reference", opts.ReferencePath},
			{"coverage_file", opts.CoveragePath},
			{"output_file", opts.OutputPath},
		} {
			if f.val == "" {
				return env.UsageErrorf("--%s is required", f.name)
			}
		}
		if len(*maskFlag) != 1 {
			return env.UsageErrorf("--mask must be a single character, but got %q", *maskFlag)
		}
		opts.Mask = (*maskFlag)[0]
		if err := consensus.Run(vcontext.Background(), opts); err != nil {
			return err
		}
		fmt.Fprintf(env.Stdout, "Consensus genome generated and saved to %s\n", opts.OutputPath)
		return nil
	})
	return cmd
}

func main() {
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(newCmdRoot())
}
