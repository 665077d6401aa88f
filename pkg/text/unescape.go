/*
 * Copyright 2022 Holoinsight Project Authors. Licensed under Apache-2.0.
 */

package text

import "strings"

// Unescape decodes the escape sequences \t \n \r and \\ in s.
// Any other backslash sequence is kept as-is, and so is a trailing lone backslash.
// s is scanned byte by byte, bytes that are not valid UTF-8 are copied unchanged.
func Unescape(s string) string {
	if strings.IndexByte(s, '\\') < 0 {
		return s
	}

	sb := strings.Builder{}
	sb.Grow(len(s))

	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !escaped {
			if c == '\\' {
				escaped = true
			} else {
				sb.WriteByte(c)
			}
			continue
		}

		escaped = false
		switch c {
		case 't':
			sb.WriteByte('\t')
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case '\\':
			sb.WriteByte('\\')
		default:
			sb.WriteByte('\\')
			sb.WriteByte(c)
		}
	}
	if escaped {
		sb.WriteByte('\\')
	}

	return sb.String()
}
