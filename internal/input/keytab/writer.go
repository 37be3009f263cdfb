package keytab

import (
	"fmt"
	"io"
	"strings"
)

// Writer writes keyboard translator files.
type Writer struct {
	w io.Writer
	n int64
}

// NewWriter creates a writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteHeader writes the title line.
func (w *Writer) WriteHeader(description string) error {
	return w.printf("keyboard \"%s\"\n", strings.ReplaceAll(description, `"`, ""))
}

// WriteEntry writes one key line.
func (w *Writer) WriteEntry(e Entry) error {
	return w.printf("key %s : %s\n", e.ConditionString(), e.ResultString())
}

// Written returns the number of bytes written so far.
func (w *Writer) Written() int64 {
	return w.n
}

func (w *Writer) printf(format string, args ...any) error {
	n, err := fmt.Fprintf(w.w, format, args...)
	w.n += int64(n)
	return err
}
