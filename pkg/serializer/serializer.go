/*
 * Copyright 2022 Holoinsight Project Authors. Licensed under Apache-2.0.
 */

// Package serializer turns the captures of one matched line into one output record.
//
// There are exactly two formats. Both share the same contract: when the pattern declares
// capture groups the record is built from groups 1..N, otherwise from the whole match, and the
// 1-based line index can be added as an extra field.
package serializer

import (
	"strings"

	"github.com/pkg/errors"
)

const (
	FormatColumns Format = "columns"
	FormatJSON    Format = "json"
)

const (
	// KeyLine is the JSON key of the synthetic line number field.
	KeyLine = "line"
	// KeyMatch is the JSON key of the whole match when the pattern has no groups.
	KeyMatch = "match"
)

type (
	Format string
	// Captures is what a serializer reads from one match.
	Captures interface {
		// NumGroups returns the number of declared groups (the whole match excluded).
		NumGroups() int
		// Whole returns the whole match.
		Whole() string
		// Group returns group i (1-based) and whether it participated in the match.
		Group(i int) (string, bool)
	}
	// Serializer converts one match into one output record.
	Serializer interface {
		Serialize(caps Captures, index int) string
	}
	Config struct {
		Format Format
		// HasGroups is decided once from the pattern.
		HasGroups bool
		// LineNumbers adds the line index field. For FormatJSON the caller must turn it off
		// when the pattern already names a group KeyLine.
		LineNumbers bool
		// Separator is the raw (already unescaped) column separator, FormatColumns only.
		Separator string
		// GroupNames is the display name table, FormatJSON only.
		GroupNames []string
	}
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatColumns, "":
		return FormatColumns, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", errors.Errorf("unknown output format %q", s)
}

// New returns the serializer variant selected by cfg.Format.
func New(cfg Config) (Serializer, error) {
	switch cfg.Format {
	case FormatColumns:
		return NewColumnar(cfg.HasGroups, cfg.LineNumbers, cfg.Separator), nil
	case FormatJSON:
		return NewStructured(cfg.HasGroups, cfg.LineNumbers, cfg.GroupNames), nil
	}
	return nil, errors.Errorf("unknown output format %q", cfg.Format)
}

// useGroups is false for a capture set without groups even if hasGroups was set.
func useGroups(hasGroups bool, caps Captures) bool {
	return hasGroups && caps.NumGroups() > 0
}
