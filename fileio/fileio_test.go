package fileio

import (
	"io/ioutil"
	"path/filepath"
	"testing"
)

func roundTrip(t *testing.T, fn, body string) {
	w := Create(fn)
	if _, err := w.Write([]byte(body)); err != nil {
		t.Fatalf("write %s: %v", fn, err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close %s: %v", fn, err)
	}
	r := Open(fn)
	got, err := ioutil.ReadAll(r)
	if err != nil {
		t.Fatalf("read %s: %v", fn, err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("close reader %s: %v", fn, err)
	}
	if string(got) != body {
		t.Errorf("round trip %s: got %q, want %q", fn, got, body)
	}
}

func TestPlainRoundTrip(t *testing.T) {
	dir := t.TempDir()
	roundTrip(t, filepath.Join(dir, "families.tsv"), "AAAA\tab\t1\nAAAA\tba\t2\n")
}

func TestGzRoundTrip(t *testing.T) {
	dir := t.TempDir()
	roundTrip(t, filepath.Join(dir, "families.tsv.gz"), "AAAA\tab\t1\nTTTT\tba\t2\n")
}

func TestZstdRoundTrip(t *testing.T) {
	dir := t.TempDir()
	roundTrip(t, filepath.Join(dir, "families.tsv.zst"), "AAAT\tab\t1\n")
}
