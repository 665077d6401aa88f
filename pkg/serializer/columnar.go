/*
 * Copyright 2022 Holoinsight Project Authors. Licensed under Apache-2.0.
 */

package serializer

import (
	"strconv"
	"strings"
)

type (
	// Columnar joins fields with a separator. Separators inside values are not escaped.
	Columnar struct {
		hasGroups   bool
		lineNumbers bool
		separator   string
	}
)

func NewColumnar(hasGroups, lineNumbers bool, separator string) *Columnar {
	return &Columnar{
		hasGroups:   hasGroups,
		lineNumbers: lineNumbers,
		separator:   separator,
	}
}

// Serialize renders absent groups as empty columns.
func (c *Columnar) Serialize(caps Captures, index int) string {
	sb := strings.Builder{}

	if c.lineNumbers {
		sb.WriteString(strconv.Itoa(index))
		sb.WriteString(c.separator)
	}

	if !useGroups(c.hasGroups, caps) {
		sb.WriteString(caps.Whole())
		return sb.String()
	}

	for i := 1; i <= caps.NumGroups(); i++ {
		if i > 1 {
			sb.WriteString(c.separator)
		}
		// absent group: empty column
		s, _ := caps.Group(i)
		sb.WriteString(s)
	}
	return sb.String()
}
