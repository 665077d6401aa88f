/*
 * Copyright 2022 Holoinsight Project Authors. Licensed under Apache-2.0.
 */

// Package linesource reads numbered lines from an io.Reader.
package linesource

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
	"github.com/traas-stack/linex/pkg/logger"
	"github.com/traas-stack/linex/pkg/text"
	"go.uber.org/zap"
)

const (
	DefaultMaxLineSize = 16 * 1024 * 1024
	defaultReadBytes   = 64 * 1024
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type (
	Config struct {
		// Charset of the input, text.Auto detects it from the first chunk.
		Charset string
		// MaxLineSize is the max length of a line in bytes, longer lines are skipped.
		MaxLineSize int
	}
	Line struct {
		// Index is the 1-based physical line number.
		Index int
		Text  string
	}
	// Source yields the decodable lines of a reader. It is not safe for concurrent use.
	Source struct {
		r          io.Reader
		config     Config
		lineBuffer *LineBuffer
		readBuf    []byte
		decode     text.LineDecoder
		index      int
		eof        bool
		flushed    bool
		firstChunk bool
	}
)

func New(r io.Reader, config Config) (*Source, error) {
	if config.MaxLineSize <= 0 {
		config.MaxLineSize = DefaultMaxLineSize
	}
	s := &Source{
		r:          r,
		config:     config,
		lineBuffer: NewLineBuffer(config.MaxLineSize),
		readBuf:    make([]byte, defaultReadBytes),
		firstChunk: true,
	}
	if config.Charset != text.Auto {
		decode, err := text.NewLineDecoder(config.Charset)
		if err != nil {
			return nil, err
		}
		s.decode = decode
	}
	return s, nil
}

// Next returns the next line, or io.EOF when the input is exhausted.
// Lines that are too long or cannot be decoded are skipped with a warning but still consume an index.
// A read error ends the input with a warning.
func (s *Source) Next() (Line, error) {
	for {
		if s.flushed {
			return Line{}, io.EOF
		}

		// complete lines of the last chunk come out of Next before the tail is flushed
		data, status := s.lineBuffer.Next()
		if status == StatusMore && s.eof {
			s.flushed = true
			data, status = s.lineBuffer.Flush()
		}

		switch status {
		case StatusLine:
			s.index++
			if line, ok := s.decodeLine(data); ok {
				return line, nil
			}
			continue
		case StatusBroken:
			s.index++
			logger.Warnz("[linesource] skip line, too long",
				zap.Int("line", s.index),
				zap.Int("maxLineSize", s.config.MaxLineSize))
			continue
		}

		if s.eof {
			continue
		}
		s.read()
	}
}

// Index returns the index of the last line consumed, skipped or not.
func (s *Source) Index() int {
	return s.index
}

func (s *Source) read() {
	n, err := s.r.Read(s.readBuf)
	if n > 0 {
		chunk := s.readBuf[:n]
		if s.firstChunk {
			s.firstChunk = false
			chunk = bytes.TrimPrefix(chunk, utf8BOM)
			if s.decode == nil {
				s.detect(chunk)
			}
		}
		s.lineBuffer.Add(chunk)
	}
	if err == nil {
		return
	}
	if err != io.EOF {
		logger.Warnz("[linesource] read error, stop reading",
			zap.Int("line", s.index+1),
			zap.Error(err))
	}
	s.eof = true
	if s.decode == nil {
		// empty input with charset detection
		s.decode, _ = text.NewLineDecoder(text.UTF8)
	}
}

func (s *Source) detect(chunk []byte) {
	charset := text.DetectCharset(chunk)
	decode, err := text.NewLineDecoder(charset)
	if err != nil {
		logger.Warnz("[linesource] detected charset is not supported, use UTF-8",
			zap.String("charset", charset),
			zap.Error(err))
		decode, _ = text.NewLineDecoder(text.UTF8)
		charset = text.UTF8
	}
	logger.Debugz("[linesource] detect charset", zap.String("charset", charset))
	s.decode = decode
}

func (s *Source) decodeLine(data []byte) (Line, bool) {
	str, err := s.decode(data)
	if err != nil {
		logger.Warnz("[linesource] skip line, decode error",
			zap.Int("line", s.index),
			zap.Error(errors.WithMessage(err, "charset "+s.charsetName())))
		return Line{}, false
	}
	return Line{Index: s.index, Text: str}, true
}

func (s *Source) charsetName() string {
	if s.config.Charset == "" {
		return text.UTF8
	}
	return s.config.Charset
}
