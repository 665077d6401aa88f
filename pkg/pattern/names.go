/*
 * Copyright 2022 Holoinsight Project Authors. Licensed under Apache-2.0.
 */

package pattern

import "strconv"

// DeriveNames returns one display name per capture group in declaration order.
// Named groups keep their name, unnamed ones use their 1-based position among all groups,
// so `(a)(?P<b>b)(c)` gives ["1", "b", "3"]. Names may repeat.
func DeriveNames(p *Pattern) []string {
	subexpNames := p.SubexpNames()
	names := make([]string, 0, len(subexpNames)-1)
	for i := 1; i < len(subexpNames); i++ {
		if subexpNames[i] != "" {
			names = append(names, subexpNames[i])
		} else {
			names = append(names, strconv.Itoa(i))
		}
	}
	return names
}
