/*
 * Copyright 2022 Holoinsight Project Authors. Licensed under Apache-2.0.
 */

// Package pattern wraps the compiled regular expression that linex applies to every line.
package pattern

import (
	"regexp"

	"github.com/pkg/errors"
)

var (
	ErrEmptyExpression = errors.New("empty regular expression")
)

type (
	// Pattern is a compiled expression. It is immutable and safe to share.
	Pattern struct {
		reg *regexp.Regexp
	}
	// Captures is the result of matching one line.
	// idx holds the submatch index pairs, -1 for groups that did not participate.
	Captures struct {
		line string
		idx  []int
	}
)

func Compile(expr string) (*Pattern, error) {
	if expr == "" {
		return nil, ErrEmptyExpression
	}
	reg, err := regexp.Compile(expr)
	if err != nil {
		return nil, errors.Wrap(err, "invalid regular expression")
	}
	return &Pattern{reg: reg}, nil
}

func MustCompile(expr string) *Pattern {
	p, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Pattern) String() string {
	return p.reg.String()
}

// NumGroups returns the number of declared capture groups.
func (p *Pattern) NumGroups() int {
	return p.reg.NumSubexp()
}

// SubexpNames returns declared group names, index 0 is the whole match and is always "".
func (p *Pattern) SubexpNames() []string {
	return p.reg.SubexpNames()
}

// HasGroupNamed reports whether any group declares exactly this name.
func (p *Pattern) HasGroupNamed(name string) bool {
	if name == "" {
		return false
	}
	for _, n := range p.reg.SubexpNames()[1:] {
		if n == name {
			return true
		}
	}
	return false
}

// Match returns nil if the line does not match.
func (p *Pattern) Match(line string) *Captures {
	idx := p.reg.FindStringSubmatchIndex(line)
	if idx == nil {
		return nil
	}
	return &Captures{line: line, idx: idx}
}

func (c *Captures) NumGroups() int {
	return len(c.idx)/2 - 1
}

// Whole returns the text of the whole match.
func (c *Captures) Whole() string {
	return c.line[c.idx[0]:c.idx[1]]
}

// Group returns the text captured by group i (1-based).
// ok is false when the group did not participate in the match.
func (c *Captures) Group(i int) (string, bool) {
	if i < 1 || i > c.NumGroups() {
		return "", false
	}
	start, end := c.idx[2*i], c.idx[2*i+1]
	if start < 0 {
		return "", false
	}
	return c.line[start:end], true
}
