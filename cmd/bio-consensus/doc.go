// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

/*
Command bio-consensus builds a consensus genome from a reference and a
per-position depth report, replacing every base whose depth is below
--depth_threshold with 'N'.

The reference holds one sequence per line ("<name> <sequence>"), and the
depth report one position per line ("<name> <1-based pos> <depth>", as
produced by "samtools depth").  Either input may be gzip-compressed.  The
output is FASTA with one unwrapped record per reference sequence, in
reference order.

Sample usage:
bio-consensus \
    --reference ref.txt \
    --coverage_file sample.depth.txt \
    --output_file sample.consensus.fa \
    --depth_threshold 10
*/
package main
