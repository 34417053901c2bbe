package main

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// nopWriteCloser adapts os.Stdout (which must not be closed by us) to
// io.WriteCloser so enumerate's output handling doesn't special-case it.
type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// sinkFor returns the writer for ground size n, opening and memoizing it
// on first use. An empty template means stdout, shared across every n.
// A non-empty template may contain "{n}", substituted with n, producing
// one file per size.
func sinkFor(writers map[int]io.WriteCloser, template string, n int) (io.WriteCloser, error) {
	key := n
	if template == "" {
		key = 0
	}
	if w, ok := writers[key]; ok {
		return w, nil
	}
	if template == "" {
		w := nopWriteCloser{os.Stdout}
		writers[key] = w
		return w, nil
	}
	path := strings.ReplaceAll(template, "{n}", strconv.Itoa(n))
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "create output file %q", path)
	}
	writers[key] = f
	return f, nil
}
