/*
 * Copyright 2022 Holoinsight Project Authors. Licensed under Apache-2.0.
 */

package serializer

import (
	"bytes"
	"encoding/json"
	"strconv"
)

type (
	// Structured renders one JSON object per record. All values are JSON strings.
	Structured struct {
		hasGroups   bool
		lineNumbers bool
		names       []string
	}
)

func NewStructured(hasGroups, lineNumbers bool, groupNames []string) *Structured {
	return &Structured{
		hasGroups:   hasGroups,
		lineNumbers: lineNumbers,
		names:       groupNames,
	}
}

// Serialize omits groups that did not participate in the match.
// Keys are emitted in lexicographic order.
func (s *Structured) Serialize(caps Captures, index int) string {
	var fields map[string]string

	if useGroups(s.hasGroups, caps) {
		fields = make(map[string]string, caps.NumGroups()+1)
		for i := 1; i <= caps.NumGroups(); i++ {
			v, ok := caps.Group(i)
			if !ok {
				continue
			}
			// a later group with a duplicate name wins
			fields[s.name(i)] = v
		}
	} else {
		fields = make(map[string]string, 2)
		fields[KeyMatch] = caps.Whole()
	}

	if s.lineNumbers {
		fields[KeyLine] = strconv.Itoa(index)
	}

	return encode(fields)
}

func (s *Structured) name(i int) string {
	if i-1 < len(s.names) {
		return s.names[i-1]
	}
	return strconv.Itoa(i)
}

func encode(fields map[string]string) string {
	bb := bytes.Buffer{}
	encoder := json.NewEncoder(&bb)
	encoder.SetEscapeHTML(false)
	// a map[string]string always encodes
	_ = encoder.Encode(fields)
	// Encoder.Encode appends a newline
	return string(bytes.TrimSuffix(bb.Bytes(), []byte{'\n'}))
}
