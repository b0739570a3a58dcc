package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalVersion(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"v1.2", "1.2"},
		{"1.2", "1.2"},
		{"1.0", "1"},
		{"2.0.0", "2"},
		{"1.0.1", "1.0.1"},
		{"1.5 ", "1.5"},
		{"v 2.1", "2.1"},
		{"", ""},
		{"2", "2"},
		{"1.2.3", "1.2.3"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, CanonicalVersion(c.in), "input %q", c.in)
	}
}

func TestCanonicalVersionEquivalence(t *testing.T) {
	// different renderings of the same release compare equal
	assert.Equal(t, CanonicalVersion("v1.0"), CanonicalVersion("1"))
	assert.Equal(t, CanonicalVersion("2.0.0"), CanonicalVersion("2.0"))
	assert.NotEqual(t, CanonicalVersion("1.0.1"), CanonicalVersion("1.1"))
}
