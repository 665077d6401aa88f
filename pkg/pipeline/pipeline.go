/*
 * Copyright 2022 Holoinsight Project Authors. Licensed under Apache-2.0.
 */

// Package pipeline reads lines, matches them against one pattern and writes one record per match.
// Every line is fully processed before the next one is read.
package pipeline

import (
	"io"

	"github.com/pkg/errors"
	"github.com/traas-stack/linex/pkg/linesource"
	"github.com/traas-stack/linex/pkg/logger"
	"github.com/traas-stack/linex/pkg/pattern"
	"github.com/traas-stack/linex/pkg/serializer"
	"github.com/traas-stack/linex/pkg/text"
	"go.uber.org/zap"
)

type (
	Config struct {
		Regex       string
		Format      serializer.Format
		LineNumbers bool
		// Separator as typed by the user, escape sequences are decoded here.
		Separator   string
		Charset     string
		MaxLineSize int
	}
	// Pipeline holds what is derived from the configuration alone. Building it touches no input or output.
	Pipeline struct {
		config     Config
		pattern    *pattern.Pattern
		serializer serializer.Serializer
	}
	Stats struct {
		// Lines is the number of lines read, skipped ones included.
		Lines   int
		Matched int
		Skipped int
	}
)

func New(cfg Config) (*Pipeline, error) {
	p, err := pattern.Compile(cfg.Regex)
	if err != nil {
		return nil, err
	}

	s, err := newSerializer(cfg, p)
	if err != nil {
		return nil, err
	}

	if err := text.ValidateCharset(cfg.Charset); err != nil {
		return nil, err
	}

	return &Pipeline{
		config:     cfg,
		pattern:    p,
		serializer: s,
	}, nil
}

func newSerializer(cfg Config, p *pattern.Pattern) (serializer.Serializer, error) {
	sc := serializer.Config{
		Format:      cfg.Format,
		HasGroups:   p.NumGroups() > 0,
		LineNumbers: cfg.LineNumbers,
	}
	switch cfg.Format {
	case serializer.FormatJSON:
		// a group named "line" wins over the synthetic line number
		if sc.LineNumbers && p.HasGroupNamed(serializer.KeyLine) {
			logger.Debugz("[pipeline] pattern has a group named line, line numbers disabled")
			sc.LineNumbers = false
		}
		sc.GroupNames = pattern.DeriveNames(p)
	case serializer.FormatColumns:
		sc.Separator = text.Unescape(cfg.Separator)
	}
	return serializer.New(sc)
}

// Run consumes the whole input and writes one record per match to sink.
// It returns on the first write error.
func (p *Pipeline) Run(in io.Reader, sink *Sink) (Stats, error) {
	source, err := linesource.New(in, linesource.Config{
		Charset:     p.config.Charset,
		MaxLineSize: p.config.MaxLineSize,
	})
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{}
	read := 0
	for {
		line, err := source.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return summarize(stats, source, read), err
		}
		read++

		caps := p.pattern.Match(line.Text)
		if caps == nil {
			logger.Debugz("[pipeline] no match", zap.Int("line", line.Index))
			continue
		}

		if err := sink.WriteLine(p.serializer.Serialize(caps, line.Index)); err != nil {
			return summarize(stats, source, read), errors.Wrapf(err, "write line %d", line.Index)
		}
		stats.Matched++
	}
	return summarize(stats, source, read), nil
}

func summarize(stats Stats, source *linesource.Source, read int) Stats {
	stats.Lines = source.Index()
	stats.Skipped = stats.Lines - read
	return stats
}
