package reads

import (
	"io/ioutil"
	"path/filepath"
	"reflect"
	"testing"

	"bccorrect/fileio"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	if err := ioutil.WriteFile(fn, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return fn
}

func TestMapNamesToBarcodesFasta(t *testing.T) {
	fn := writeFile(t, "barcodes.fa", ">1\nAAAATTTT\n>2\nAAAATTTA\n>3\nCCCCGGGG\n")
	names := MapNamesToBarcodes(fn, 0)
	want := map[int]string{1: "AAAATTTT", 2: "AAAATTTA", 3: "CCCCGGGG"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("names = %v, want %v", names, want)
	}
}

func TestMapNamesToBarcodesFastq(t *testing.T) {
	fn := writeFile(t, "barcodes.fq", "@1\nAAAATTTT\n+\nIIIIIIII\n@2\nGGGGCCCC\n+\nIIIIIIII\n")
	names := MapNamesToBarcodes(fn, 0)
	want := map[int]string{1: "AAAATTTT", 2: "GGGGCCCC"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("names = %v, want %v", names, want)
	}
}

func TestMapNamesToBarcodesLimit(t *testing.T) {
	fn := writeFile(t, "barcodes.fa", ">1\nAAAATTTT\n>2\nAAAATTTA\n>3\nCCCCGGGG\n")
	names := MapNamesToBarcodes(fn, 2)
	if len(names) != 2 {
		t.Errorf("limit 2 kept %d reads", len(names))
	}
}

func TestDetectFormatSniff(t *testing.T) {
	// no useful extension: format comes from the first record marker
	fa := writeFile(t, "reads.txt", ">1\nAAAATTTT\n")
	names := MapNamesToBarcodes(fa, 0)
	if !reflect.DeepEqual(names, map[int]string{1: "AAAATTTT"}) {
		t.Errorf("sniffed fasta names = %v", names)
	}
	fq := writeFile(t, "reads2.txt", "@1\nAAAATTTT\n+\nIIIIIIII\n")
	names = MapNamesToBarcodes(fq, 0)
	if !reflect.DeepEqual(names, map[int]string{1: "AAAATTTT"}) {
		t.Errorf("sniffed fastq names = %v", names)
	}
}

func TestMapNamesToBarcodesGzip(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "barcodes.fa.gz")
	w := fileio.Create(fn)
	if _, err := w.Write([]byte(">1\nAAAATTTT\n>2\nAAAATTTA\n")); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	names := MapNamesToBarcodes(fn, 0)
	want := map[int]string{1: "AAAATTTT", 2: "AAAATTTA"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("names = %v, want %v", names, want)
	}
}
