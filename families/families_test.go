package families

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeFamilies(t *testing.T, lines ...string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), "families.tsv")
	if err := ioutil.WriteFile(fn, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	return fn
}

func TestGetFamilyCounts(t *testing.T) {
	fn := writeFamilies(t,
		"AAAA\tab\tr1\tr2",
		"AAAA\tab\tr3\tr4",
		"AAAA\tab\tr5\tr6",
		"AAAA\tba\tr7\tr8",
		"AAAA\tba\tr9\tr10",
		"AAAT\tab\tr11\tr12",
		"TTTT\tba\tr13\tr14",
	)
	counts := GetFamilyCounts(fn, 0)
	want := map[string]Counts{
		"AAAA": {AB: 3, BA: 2, All: 5},
		"AAAT": {AB: 1, BA: 0, All: 1},
		"TTTT": {AB: 0, BA: 1, All: 1},
	}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("counts = %v, want %v", counts, want)
	}
	for barcode, c := range counts {
		if c.All != c.AB+c.BA || c.All < 1 {
			t.Errorf("barcode %q violates All = AB+BA >= 1: %+v", barcode, c)
		}
	}
}

func TestGetFamilyCountsLimit(t *testing.T) {
	fn := writeFamilies(t,
		"AAAA\tab",
		"AAAA\tba",
		"TTTT\tab",
	)
	counts := GetFamilyCounts(fn, 2)
	want := map[string]Counts{"AAAA": {AB: 1, BA: 1, All: 2}}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("counts = %v, want %v", counts, want)
	}
}

func TestPrintCorrected(t *testing.T) {
	fn := writeFamilies(t,
		"AAAA\tab\tr1",
		"AAAT\tab\tr2",
		"AAAT\tba\tr3",
		"TTTT\tba\tr4",
	)
	corrections := map[string]string{"AAAT": "AAAA"}
	var buf bytes.Buffer
	barcodes, readPairs := PrintCorrected(fn, &buf, corrections, false, 0, 0, true)
	if barcodes != 1 || readPairs != 2 {
		t.Errorf("summary = %d barcodes, %d read pairs; want 1, 2", barcodes, readPairs)
	}
	want := "AAAA\tab\tr1\n" +
		"AAAA\tab\tr2\n" +
		"AAAA\tba\tr3\n" +
		"TTTT\tba\tr4\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestPrintCorrectedPrepend(t *testing.T) {
	fn := writeFamilies(t,
		"AAAT\tab\tr1",
		"TTTT\tba\tr2",
	)
	corrections := map[string]string{"AAAT": "AAAA"}
	var buf bytes.Buffer
	PrintCorrected(fn, &buf, corrections, true, 0, 0, true)
	want := "AAAA\tAAAT\tab\tr1\n" +
		"TTTT\tTTTT\tba\tr2\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestPrintCorrectedIdempotent(t *testing.T) {
	fn := writeFamilies(t,
		"AAAT\tab\tr1",
		"AAAT\tba\tr2",
		"TTTT\tab\tr3",
	)
	corrections := map[string]string{"AAAT": "AAAA"}
	var first bytes.Buffer
	PrintCorrected(fn, &first, corrections, false, 0, 0, true)

	// re-apply the table to the already corrected rows
	corrected := filepath.Join(t.TempDir(), "corrected.tsv")
	if err := ioutil.WriteFile(corrected, first.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	var second bytes.Buffer
	barcodes, readPairs := PrintCorrected(corrected, &second, corrections, false, 0, 0, true)
	if barcodes != 0 || readPairs != 0 {
		t.Errorf("second pass corrected %d barcodes, %d read pairs; want none", barcodes, readPairs)
	}
	if second.String() != first.String() {
		t.Errorf("second pass changed the output:\n%q\n%q", first.String(), second.String())
	}
}

func TestPrintCorrectedNoOutput(t *testing.T) {
	fn := writeFamilies(t, "AAAT\tab\tr1")
	var buf bytes.Buffer
	barcodes, _ := PrintCorrected(fn, &buf, map[string]string{"AAAT": "AAAA"}, false, 0, 0, false)
	if buf.Len() != 0 {
		t.Errorf("output suppressed but got %q", buf.String())
	}
	if barcodes != 1 {
		t.Errorf("summary must still be counted, got %d", barcodes)
	}
}
