/*
 * Copyright 2022 Holoinsight Project Authors. Licensed under Apache-2.0.
 */

package linesource

import (
	"bytes"
)

const (
	line_separator_r = '\r'
	line_separator_n = '\n'
)

const (
	// StatusMore means no complete line is available, Add more bytes.
	StatusMore Status = iota
	// StatusLine means a complete line was returned.
	StatusLine
	// StatusBroken means an overlong line ended and was dropped.
	StatusBroken
)

type (
	Status uint8
	// LineBuffer accumulates bytes and cuts them into lines.
	// Lines longer than maxSize are dropped: the buffer enters a broken state until the next '\n'.
	LineBuffer struct {
		// buffer holds the head of a line whose '\n' has not arrived yet
		buffer []byte
		// add is the unconsumed part of the last Add
		add     []byte
		maxSize int
		broken  bool
	}
)

func NewLineBuffer(maxSize int) *LineBuffer {
	return &LineBuffer{
		maxSize: maxSize,
	}
}

// Add hands a new chunk to the buffer. Call it only after Next returned StatusMore.
// The line returned by Next may alias a, so it must be consumed before a is reused.
func (buf *LineBuffer) Add(a []byte) {
	buf.add = a
}

// Next tries to cut the next line. The trailing '\r' of a "\r\n" ending is removed.
func (buf *LineBuffer) Next() ([]byte, Status) {
	index := bytes.IndexByte(buf.add, line_separator_n)

	if buf.broken {
		if index < 0 {
			buf.add = nil
			return nil, StatusMore
		}
		buf.add = buf.add[index+1:]
		buf.broken = false
		return nil, StatusBroken
	}

	if index < 0 {
		if !buf.checkNewLen(len(buf.buffer) + len(buf.add)) {
			return nil, StatusMore
		}
		buf.buffer = append(buf.buffer, buf.add...)
		buf.add = nil
		return nil, StatusMore
	}

	lineLen := len(buf.buffer) + index
	if lineLen > buf.maxSize {
		buf.buffer = nil
		buf.add = buf.add[index+1:]
		return nil, StatusBroken
	}

	var line []byte
	if len(buf.buffer) > 0 {
		// the line was cut in two: head in buffer, tail in add
		line = make([]byte, lineLen)
		copy(line, buf.buffer)
		copy(line[len(buf.buffer):], buf.add[:index])
		buf.buffer = nil
	} else {
		line = buf.add[:index]
	}
	buf.add = buf.add[index+1:]
	return trim(line), StatusLine
}

// Flush returns the last line when the input ended without a '\n'.
// Call it once Next returned StatusMore, so that add holds no complete line.
// It returns StatusMore when nothing is left.
func (buf *LineBuffer) Flush() ([]byte, Status) {
	if len(buf.add) > 0 && !buf.broken && buf.checkNewLen(len(buf.buffer)+len(buf.add)) {
		buf.buffer = append(buf.buffer, buf.add...)
	}
	buf.add = nil

	if buf.broken {
		buf.Clear()
		return nil, StatusBroken
	}
	if len(buf.buffer) == 0 {
		return nil, StatusMore
	}
	line := buf.buffer
	buf.buffer = nil
	return line, StatusLine
}

func (buf *LineBuffer) Clear() {
	buf.buffer = nil
	buf.add = nil
	buf.broken = false
}

func (buf *LineBuffer) checkNewLen(newLen int) bool {
	if newLen <= buf.maxSize {
		return true
	}
	buf.buffer = nil
	buf.add = nil
	buf.broken = true
	return false
}

// trim \r
func trim(b []byte) []byte {
	blen := len(b)
	if blen > 0 && b[blen-1] == line_separator_r {
		return b[0 : blen-1]
	}
	return b
}
