// Package fileio opens input and output files transparently of compression.
// The format is chosen by extension: .gz, .zst and .br are understood, '-'
// means stdin/stdout, anything else is read as plain text.
package fileio

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/google/brotli/go/cbrotli"
	"github.com/klauspost/compress/zstd"
	"github.com/shenwei356/xopen"
)

type readCloser struct {
	io.Reader
	closers []func() error
}

func (rc *readCloser) Close() error {
	var err error
	for _, c := range rc.closers {
		if e := c(); e != nil && err == nil {
			err = e
		}
	}
	return err
}

type writeCloser struct {
	io.Writer
	closers []func() error
}

func (wc *writeCloser) Close() error {
	var err error
	for _, c := range wc.closers {
		if e := c(); e != nil && err == nil {
			err = e
		}
	}
	return err
}

// Open opens fn for reading, decompressing by extension.
func Open(fn string) io.ReadCloser {
	switch filepath.Ext(fn) {
	case ".zst":
		fp, err := os.Open(fn)
		if err != nil {
			log.Fatalf("[Open] open file: %s failed, err: %v\n", fn, err)
		}
		zr, err := zstd.NewReader(fp, zstd.WithDecoderConcurrency(1))
		if err != nil {
			log.Fatalf("[Open] zstd open file: %s failed, err: %v\n", fn, err)
		}
		return &readCloser{Reader: zr, closers: []func() error{
			func() error { zr.Close(); return nil },
			fp.Close,
		}}
	case ".br":
		fp, err := os.Open(fn)
		if err != nil {
			log.Fatalf("[Open] open file: %s failed, err: %v\n", fn, err)
		}
		brfp := cbrotli.NewReader(fp)
		return &readCloser{Reader: brfp, closers: []func() error{brfp.Close, fp.Close}}
	default:
		// xopen handles '-', plain and .gz
		fp, err := xopen.Ropen(fn)
		if err != nil {
			log.Fatalf("[Open] open file: %s failed, err: %v\n", fn, err)
		}
		return fp
	}
}

// Create opens fn for writing, compressing by extension.
func Create(fn string) io.WriteCloser {
	switch filepath.Ext(fn) {
	case ".zst":
		fp, err := os.Create(fn)
		if err != nil {
			log.Fatalf("[Create] create file: %s failed, err: %v\n", fn, err)
		}
		zw, err := zstd.NewWriter(fp, zstd.WithEncoderCRC(false), zstd.WithEncoderConcurrency(1), zstd.WithEncoderLevel(1))
		if err != nil {
			log.Fatalf("[Create] zstd create file: %s failed, err: %v\n", fn, err)
		}
		return &writeCloser{Writer: zw, closers: []func() error{zw.Close, fp.Close}}
	case ".br":
		fp, err := os.Create(fn)
		if err != nil {
			log.Fatalf("[Create] create file: %s failed, err: %v\n", fn, err)
		}
		brfp := cbrotli.NewWriter(fp, cbrotli.WriterOptions{Quality: 1, LGWin: 21})
		return &writeCloser{Writer: brfp, closers: []func() error{brfp.Close, fp.Close}}
	default:
		fp, err := xopen.Wopen(fn)
		if err != nil {
			log.Fatalf("[Create] create file: %s failed, err: %v\n", fn, err)
		}
		return fp
	}
}
