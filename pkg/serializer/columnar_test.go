package serializer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColumnar_lineNumbers(t *testing.T) {
	_, caps := match(t, `(\d+)-(\d+)`, "x 10-20 y")

	assert.Equal(t, "10,20", NewColumnar(true, false, ",").Serialize(caps, 5))
	assert.Equal(t, "5,10,20", NewColumnar(true, true, ",").Serialize(caps, 5))
	assert.Equal(t, "5::10::20", NewColumnar(true, true, "::").Serialize(caps, 5))
}

func TestColumnar_wholeMatchWithLineNumbers(t *testing.T) {
	_, caps := match(t, `\d+`, "abc 123 def")
	assert.Equal(t, "123", NewColumnar(false, false, "\t").Serialize(caps, 12))
	assert.Equal(t, "12\t123", NewColumnar(false, true, "\t").Serialize(caps, 12))
}

func TestColumnar_zeroLengthMatchIsNotSuppressed(t *testing.T) {
	_, caps := match(t, `x*`, "abc")
	assert.Equal(t, "", NewColumnar(false, false, "\t").Serialize(caps, 1))
	assert.Equal(t, "1\t", NewColumnar(false, true, "\t").Serialize(caps, 1))
}

func TestColumnar_separatorInsideValueIsNotEscaped(t *testing.T) {
	_, caps := match(t, `(.*);(.*)`, "a,b;c")
	assert.Equal(t, "a,b,c", NewColumnar(true, false, ",").Serialize(caps, 1))
}

func TestColumnar_emptySeparator(t *testing.T) {
	_, caps := match(t, `(a)(b)(c)`, "abc")
	assert.Equal(t, "abc", NewColumnar(true, false, "").Serialize(caps, 1))
}

func TestColumnar_allGroupsAbsent(t *testing.T) {
	_, caps := match(t, `x|(a)|(b)`, "x")
	// groups mode is kept even when no group participated on this line
	assert.Equal(t, "\t", NewColumnar(true, false, "\t").Serialize(caps, 1))
}
