package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	assert.Equal(t,
		[]string{"foo", "bar"},
		DedupeAndTrim([]string{"  foo ", "bar", "foo", "", "  "}),
	)

	var empty []string
	assert.Empty(t, DedupeAndTrim(empty))
}

func TestDedupeAndTrimLower(t *testing.T) {
	assert.Equal(t,
		[]string{"foo", "bar"},
		DedupeAndTrimLower([]string{"  FOO ", "bar", "Foo"}),
	)
}
