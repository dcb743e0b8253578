// Package coverage scans per-position depth reports, such as the output of
// "samtools depth", and collects the positions whose depth falls below a
// threshold.
//
// Each line of a depth report holds three whitespace-separated fields:
//
// <sequence name> <1-based position> <depth>
package coverage

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/log"
	"github.com/grailbio/conseq/util"
	"github.com/klauspost/compress/gzip"
)

// LowCoverage maps a sequence name to its low-coverage positions.  Positions
// are 1-based and kept in file order; duplicates are preserved.
type LowCoverage map[string][]int

// Positions returns the low-coverage positions of the given sequence, or nil
// if it has none.
func (c LowCoverage) Positions(name string) []int {
	return c[name]
}

// NumPositions returns the total number of positions across all sequences.
func (c LowCoverage) NumPositions() int {
	n := 0
	for _, p := range c {
		n += len(p)
	}
	return n
}

// Stats summarizes one scan.
type Stats struct {
	// Lines is the number of records read.
	Lines int
	// Low is the number of records with depth below the threshold.
	Low int
}

// Scan reads a depth report from r and returns the positions whose depth is
// strictly less than threshold.
func Scan(r io.Reader, threshold int) (LowCoverage, error) {
	c, _, err := scan(r, threshold, "coverage")
	return c, err
}

// Load is a wrapper for Scan that takes a path instead of an io.Reader.
// Paths ending in .gz are decompressed.
func Load(ctx context.Context, path string, threshold int) (c LowCoverage, err error) {
	var in file.File
	if in, err = file.Open(ctx, path); err != nil {
		return nil, errors.E(err, "open coverage", path)
	}
	defer file.CloseAndReport(ctx, in, &err)
	reader := io.Reader(in.Reader(ctx))
	switch fileio.DetermineType(path) {
	case fileio.Gzip:
		gz, gerr := gzip.NewReader(reader)
		if gerr != nil {
			return nil, errors.E(gerr, "open coverage", path)
		}
		defer gz.Close() // nolint: errcheck
		reader = gz
	}
	var stats Stats
	if c, stats, err = scan(reader, threshold, path); err != nil {
		return nil, err
	}
	log.Printf("coverage: %s: %d record(s), %d below depth %d, %d sequence(s)",
		path, stats.Lines, stats.Low, threshold, len(c))
	return c, nil
}

func scan(r io.Reader, threshold int, label string) (LowCoverage, Stats, error) {
	var (
		c      = LowCoverage{}
		stats  Stats
		tokens = make([][]byte, 3)
		lineno int
	)
	malformed := func(line []byte, reason string) error {
		return errors.E(errors.Invalid,
			fmt.Sprintf("%s:%d: malformed coverage line (%s): %q", label, lineno, reason, line))
	}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineno++
		line := scanner.Bytes()
		if n := util.Fields(tokens, line); n != 3 {
			return nil, stats, malformed(line, fmt.Sprintf("want 3 fields, got %s", fieldCount(n)))
		}
		pos, err := strconv.Atoi(string(tokens[1]))
		if err != nil {
			return nil, stats, malformed(line, "bad position")
		}
		depth, err := strconv.Atoi(string(tokens[2]))
		if err != nil {
			return nil, stats, malformed(line, "bad depth")
		}
		stats.Lines++
		if depth >= threshold {
			continue
		}
		name := string(tokens[0])
		c[name] = append(c[name], pos)
		stats.Low++
	}
	if err := scanner.Err(); err != nil {
		return nil, stats, errors.E(err, "read coverage", label)
	}
	log.Debug.Printf("coverage: %s: scanned %d line(s)", label, lineno)
	return c, stats, nil
}

// fieldCount renders the count reported by util.Fields, which saturates one
// past the number of requested tokens.
func fieldCount(n int) string {
	if n > 3 {
		return "more than 3"
	}
	return strconv.Itoa(n)
}
