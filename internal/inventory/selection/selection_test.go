package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectAndDeselect(t *testing.T) {
	s := NewSet()

	s.Select(1, 2, 3)
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Contains(2))

	s.Select(2)
	assert.Equal(t, 3, s.Len(), "selecting twice is idempotent")

	s.Deselect(2, 4)
	assert.Equal(t, 2, s.Len())
	assert.False(t, s.Contains(2))
}

func TestSelectAllReplaces(t *testing.T) {
	s := NewSet()
	s.Select(1, 2, 3)

	s.SelectAll([]uint{7, 8})

	assert.Equal(t, 2, s.Len())
	assert.False(t, s.Contains(1))
	assert.True(t, s.Contains(7))
	assert.ElementsMatch(t, []uint{7, 8}, s.IDs())
}

func TestClear(t *testing.T) {
	s := NewSet()
	s.Select(1, 2)

	s.Clear()

	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.IDs())
}
