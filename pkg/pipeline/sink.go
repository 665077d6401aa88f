/*
 * Copyright 2022 Holoinsight Project Authors. Licensed under Apache-2.0.
 */

package pipeline

import (
	"bufio"
	"io"
	"os"
)

type (
	// Sink writes one record per line. It must be closed on every exit path to flush it.
	Sink struct {
		w            *bufio.Writer
		closer       io.Closer
		lineBuffered bool
	}
)

// NewSink wraps w. closer may be nil when w is not owned (stdout).
// When lineBuffered is true every record is flushed as soon as it is written.
func NewSink(w io.Writer, closer io.Closer, lineBuffered bool) *Sink {
	return &Sink{
		w:            bufio.NewWriter(w),
		closer:       closer,
		lineBuffered: lineBuffered,
	}
}

func (s *Sink) WriteLine(line string) error {
	if _, err := s.w.WriteString(line); err != nil {
		return err
	}
	if err := s.w.WriteByte('\n'); err != nil {
		return err
	}
	if s.lineBuffered {
		return s.w.Flush()
	}
	return nil
}

// Close flushes pending output and closes the owned writer.
func (s *Sink) Close() error {
	err := s.w.Flush()
	if s.closer != nil {
		if cerr := s.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// OpenInput opens path for reading, or stdin when path is empty.
// Closing the returned reader never closes stdin.
func OpenInput(path string) (io.ReadCloser, error) {
	if path == "" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// OpenOutput creates (or truncates) path, or returns a sink on stdout when path is empty.
func OpenOutput(path string, lineBuffered bool) (*Sink, error) {
	if path == "" {
		return NewSink(os.Stdout, nil, lineBuffered), nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return NewSink(f, f, lineBuffered), nil
}
