// Package families reads and rewrites the sorted, tab-delimited families
// table: column 0 is the barcode, column 1 the strand order (ab|ba), the
// remaining columns are passed through untouched.
package families

import (
	"bufio"
	"io"
	"log"
	"strings"

	"bccorrect/fileio"
	"bccorrect/utils"
)

// Counts holds the per-strand read pair counts of one family.
// All is always AB + BA.
type Counts struct {
	AB, BA, All int
}

// GetFamilyCounts scans the families file once and counts read pairs per
// barcode and strand order. The file must be sorted by barcode; each run of
// consecutive identical barcodes is one family.
func GetFamilyCounts(fn string, limit int) map[string]Counts {
	fp := fileio.Open(fn)
	defer fp.Close()
	counts := make(map[string]Counts)
	var last string
	var cur Counts
	scanner := bufio.NewScanner(fp)
	scanner.Buffer(make([]byte, 0, 1<<20), 1<<20)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		if limit > 0 && lineNum > limit {
			break
		}
		barcode, order := splitFamilyLine(fn, lineNum, scanner.Text())
		if barcode != last {
			if last != "" {
				cur.All = cur.AB + cur.BA
				counts[last] = cur
			}
			cur = Counts{}
			last = barcode
		}
		switch order {
		case "ab":
			cur.AB++
		case "ba":
			cur.BA++
		default:
			log.Fatalf("[GetFamilyCounts] file: %s line: %d unknown order: %q\n", fn, lineNum, order)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("[GetFamilyCounts] read file: %s failed, err: %v\n", fn, err)
	}
	if last == "" {
		log.Fatalf("[GetFamilyCounts] file: %s contains no families\n", fn)
	}
	cur.All = cur.AB + cur.BA
	counts[last] = cur
	return counts
}

func splitFamilyLine(fn string, lineNum int, line string) (barcode, order string) {
	fields := strings.Split(line, "\t")
	if len(fields) < 2 {
		log.Fatalf("[splitFamilyLine] file: %s line: %d has %d columns, need at least 2\n", fn, lineNum, len(fields))
	}
	return fields[0], fields[1]
}

// PrintCorrected reads the families file a second time and writes it to w
// with each barcode replaced by its canonical form from corrections (or, with
// prepend, with the canonical barcode inserted as a new first column). The
// correction table must be complete before this runs. Returns the number of
// corrected barcodes and read pairs.
func PrintCorrected(fn string, w io.Writer, corrections map[string]string, prepend bool, tagLen, limit int, output bool) (barcodes, readPairs int) {
	fp := fileio.Open(fn)
	defer fp.Close()
	out := bufio.NewWriter(w)
	defer out.Flush()
	scanner := bufio.NewScanner(fp)
	scanner.Buffer(make([]byte, 0, 1<<20), 1<<20)
	lineNum := 0
	var barcodeLast string
	var reads [2]int
	correctionsInFamily := 0
	flush := func() {
		if barcodeLast == "" {
			return
		}
		if correctionsInFamily > 0 {
			readPairs += correctionsInFamily
			barcodes++
			utils.Vlogf("%s\t%d\t%d\tCORRECTED!", barcodeLast, reads[0], reads[1])
		} else {
			utils.Vlogf("%s\t%d\t%d\tuncorrected", barcodeLast, reads[0], reads[1])
		}
	}
	for scanner.Scan() {
		lineNum++
		if limit > 0 && lineNum > limit {
			break
		}
		fields := strings.Split(scanner.Text(), "\t")
		if len(fields) < 2 {
			log.Fatalf("[PrintCorrected] file: %s line: %d has %d columns, need at least 2\n", fn, lineNum, len(fields))
		}
		rawBarcode := fields[0]
		order := fields[1]
		if tagLen == 0 {
			tagLen = len(rawBarcode) / 2
			utils.Vlogf("[PrintCorrected] using tag length %d", tagLen)
		}
		if rawBarcode != barcodeLast {
			flush()
			reads[0], reads[1] = 0, 0
			correctionsInFamily = 0
			barcodeLast = rawBarcode
		}
		switch order {
		case "ab":
			reads[0]++
		case "ba":
			reads[1]++
		}
		correct, ok := corrections[rawBarcode]
		if ok {
			correctionsInFamily++
		} else {
			correct = rawBarcode
		}
		if prepend {
			fields = append([]string{correct}, fields...)
		} else {
			fields[0] = correct
		}
		if output {
			out.WriteString(strings.Join(fields, "\t"))
			out.WriteByte('\n')
		}
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("[PrintCorrected] read file: %s failed, err: %v\n", fn, err)
	}
	flush()
	utils.Logf("Corrected %d barcodes on %d read pairs.", barcodes, readPairs)
	return barcodes, readPairs
}
