package fasta

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/tsv"
)

// Index files consist of one tab-separated line per sequence in the associated
// FASTA file.  The format is: "<sequence name>\t<length>\t<byte
// offset>\t<bases per line>\t<bytes per line>".
// For example: "chr3\t12345\t9000\t80\t81".
//
// The format is defined by "samtools faidx"
// (http://www.htslib.org/doc/faidx.html).
var indexRegExp = regexp.MustCompile(`^(\S+)\t(\d+)\t(\d+)\t(\d+)\t(\d+)$`)

// IndexEntry is one line of a FASTA index.
type IndexEntry struct {
	Name      string
	Length    int64
	Offset    int64
	LineBases int64
	LineWidth int64
}

// WriteIndex writes entries to out in .fai format.
func WriteIndex(out io.Writer, entries []IndexEntry) error {
	tsvOut := tsv.NewWriter(out)
	for _, e := range entries {
		tsvOut.WriteString(e.Name)
		tsvOut.WriteInt64(e.Length)
		tsvOut.WriteInt64(e.Offset)
		tsvOut.WriteInt64(e.LineBases)
		tsvOut.WriteInt64(e.LineWidth)
		if err := tsvOut.EndLine(); err != nil {
			return err
		}
	}
	return tsvOut.Flush()
}

// ReadIndex parses a .fai index.
func ReadIndex(in io.Reader) ([]IndexEntry, error) {
	var entries []IndexEntry
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		matches := indexRegExp.FindStringSubmatch(scanner.Text())
		if len(matches) != 6 {
			return nil, errors.E(errors.Invalid, fmt.Sprintf("invalid index line: %s", scanner.Text()))
		}
		ent := IndexEntry{Name: matches[1]}
		ent.Length, _ = strconv.ParseInt(matches[2], 10, 64)
		ent.Offset, _ = strconv.ParseInt(matches[3], 10, 64)
		ent.LineBases, _ = strconv.ParseInt(matches[4], 10, 64)
		ent.LineWidth, _ = strconv.ParseInt(matches[5], 10, 64)
		entries = append(entries, ent)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.E(err, "read FASTA index")
	}
	return entries, nil
}
