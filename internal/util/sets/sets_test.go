package sets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	s := New("/docs/b", "/docs/a")
	s.Add("/blog", "/docs/a")

	assert.True(t, s.Has("/blog"))
	assert.False(t, s.Has("/docs"))
	assert.Equal(t, []string{"/blog", "/docs/a", "/docs/b"}, Sorted(s))

	var empty Set[string]
	assert.False(t, empty.Has("x"))
	assert.Empty(t, Sorted(empty))
}
