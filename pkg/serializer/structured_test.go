package serializer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/traas-stack/linex/pkg/pattern"
)

func TestStructured_namedGroups(t *testing.T) {
	p, caps := match(t, `^(?P<first>[a-z]+)-(?P<second>[0-9]+)$`, "abc-123")
	s := NewStructured(true, false, pattern.DeriveNames(p))
	assert.Equal(t, `{"first":"abc","second":"123"}`, s.Serialize(caps, 1))
}

func TestStructured_mixedNamesAndOrdinals(t *testing.T) {
	p, caps := match(t, `([^ ]+) xyz (?<B>[0-9])([a-z])`, "foo xyz 7q")
	s := NewStructured(true, true, pattern.DeriveNames(p))
	assert.Equal(t, `{"1":"foo","3":"q","B":"7","line":"3"}`, s.Serialize(caps, 3))
}

func TestStructured_absentGroupsAreOmittedIndividually(t *testing.T) {
	// the second group is absent, the third is still emitted
	p, caps := match(t, `(a)(x)?(c)`, "ac")
	s := NewStructured(true, false, pattern.DeriveNames(p))
	assert.Equal(t, `{"1":"a","3":"c"}`, s.Serialize(caps, 1))
}

func TestStructured_emptyCaptureIsKept(t *testing.T) {
	p, caps := match(t, `k=(?P<v>\w*);`, "k=;")
	s := NewStructured(true, false, pattern.DeriveNames(p))
	assert.Equal(t, `{"v":""}`, s.Serialize(caps, 1))
}

func TestStructured_allGroupsAbsent(t *testing.T) {
	p, caps := match(t, `x|(a)|(b)`, "x")
	assert.Equal(t, `{}`, NewStructured(true, false, pattern.DeriveNames(p)).Serialize(caps, 1))
	assert.Equal(t, `{"line":"4"}`, NewStructured(true, true, pattern.DeriveNames(p)).Serialize(caps, 4))
}

func TestStructured_duplicateNames(t *testing.T) {
	p, caps := match(t, `(?P<n>a)(?P<n>b)`, "ab")
	s := NewStructured(true, false, pattern.DeriveNames(p))
	assert.Equal(t, `{"n":"b"}`, s.Serialize(caps, 1))

	p, caps = match(t, `(?P<n>a)(?P<n>x)?`, "a")
	s = NewStructured(true, false, pattern.DeriveNames(p))
	assert.Equal(t, `{"n":"a"}`, s.Serialize(caps, 1))
}

func TestStructured_escaping(t *testing.T) {
	p, caps := match(t, `v=(.*)$`, "v=\"quoted\" <b>&\\ \ttab")
	s := NewStructured(true, false, pattern.DeriveNames(p))
	out := s.Serialize(caps, 1)
	assert.Equal(t, `{"1":"\"quoted\" <b>&\\ \ttab"}`, out)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "\"quoted\" <b>&\\ \ttab", decoded["1"])
}

func TestStructured_lineIsAString(t *testing.T) {
	_, caps := match(t, `abc`, "abc")
	out := NewStructured(false, true, nil).Serialize(caps, 42)
	assert.Equal(t, `{"line":"42","match":"abc"}`, out)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.IsType(t, "", decoded["line"])
}
