// Package reads maps read names to barcode sequences from the FASTA or FASTQ
// file that was given to the aligner. Read names must be integers holding the
// 1-based row order of the families file.
package reads

import (
	"bufio"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/io/seqio/fastq"
	"github.com/biogo/biogo/seq/linear"

	"bccorrect/fileio"
)

// MapNamesToBarcodes reads fn and returns the read-name to barcode map.
// Format is taken from the file extension, falling back to sniffing the
// first record marker.
func MapNamesToBarcodes(fn string, limit int) map[int]string {
	fp := fileio.Open(fn)
	defer fp.Close()
	buf := bufio.NewReader(fp)
	format := detectFormat(fn, buf)
	names := make(map[int]string)
	add := func(id, seq string) bool {
		if limit > 0 && len(names) >= limit {
			return false
		}
		name, err := strconv.Atoi(id)
		if err != nil {
			log.Fatalf("[MapNamesToBarcodes] non-int read name %q in %s\n", id, fn)
		}
		names[name] = seq
		return true
	}
	switch format {
	case "fasta":
		template := linear.NewSeq("", nil, alphabet.DNA)
		sc := seqio.NewScanner(fasta.NewReader(buf, template))
		for sc.Next() {
			s := sc.Seq().(*linear.Seq)
			if !add(s.ID, s.Seq.String()) {
				break
			}
		}
		if err := sc.Error(); err != nil && err != io.EOF {
			log.Fatalf("[MapNamesToBarcodes] read file: %s failed, err: %v\n", fn, err)
		}
	case "fastq":
		template := linear.NewQSeq("", alphabet.QLetters{}, alphabet.DNA, alphabet.Sanger)
		sc := seqio.NewScanner(fastq.NewReader(buf, template))
		for sc.Next() {
			s := sc.Seq().(*linear.QSeq)
			if !add(s.ID, s.String()) {
				break
			}
		}
		if err := sc.Error(); err != nil && err != io.EOF {
			log.Fatalf("[MapNamesToBarcodes] read file: %s failed, err: %v\n", fn, err)
		}
	}
	return names
}

// detectFormat chooses fasta or fastq from the file name, or from the first
// byte of the stream when the extension says nothing.
func detectFormat(fn string, buf *bufio.Reader) string {
	base := fn
	for _, ext := range []string{".gz", ".zst", ".br"} {
		base = strings.TrimSuffix(base, ext)
	}
	switch {
	case strings.HasSuffix(base, ".fa"), strings.HasSuffix(base, ".fasta"):
		return "fasta"
	case strings.HasSuffix(base, ".fq"), strings.HasSuffix(base, ".fastq"):
		return "fastq"
	}
	lead, err := buf.Peek(1)
	if err != nil {
		log.Fatalf("[detectFormat] read file: %s failed, err: %v\n", fn, err)
	}
	switch lead[0] {
	case '>':
		return "fasta"
	case '@':
		return "fastq"
	}
	log.Fatalf("[detectFormat] file: %s is neither fasta nor fastq\n", fn)
	return ""
}
