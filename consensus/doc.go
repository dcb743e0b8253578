// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

/*
Package consensus derives a consensus genome from a reference and a depth
report.  Every reference base whose sequencing depth is below a threshold is
replaced with a mask character ('N' by default); all other bases are copied
unchanged.

The pipeline has four stages, run in order by Run:

  1. refseq.Load reads the reference table.
  2. coverage.Load collects the low-depth positions.
  3. Build masks those positions in a copy of each reference sequence.
  4. WriteFASTA writes the result, one unwrapped record per reference
     sequence, in reference order.

Positions are 1-based.  A position outside its sequence aborts the build;
positions on sequences missing from the reference are ignored.
*/
package consensus
