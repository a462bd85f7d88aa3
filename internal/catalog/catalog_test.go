package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsNonPositiveSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		_, err := New(size)
		assert.Error(t, err)
	}
}

func TestNew_AssignsSequentialIDsAndLabels(t *testing.T) {
	c, err := New(1000)
	require.NoError(t, err)

	assert.Equal(t, 1000, c.Len())

	item, ok := c.Lookup(1)
	require.True(t, ok)
	assert.Equal(t, "Item 1", item.Label)

	item, ok = c.Lookup(1000)
	require.True(t, ok)
	assert.Equal(t, 1000, item.ID)
	assert.Equal(t, "Item 1000", item.Label)
}

func TestLookup_OutOfRange(t *testing.T) {
	c, err := New(10)
	require.NoError(t, err)

	for _, id := range []int{0, -5, 11} {
		_, ok := c.Lookup(id)
		assert.False(t, ok, "id %d", id)
	}
}

func TestFindByLabel_ExactMatchOnly(t *testing.T) {
	c, err := New(1000)
	require.NoError(t, err)

	item, ok := c.FindByLabel("Item 500")
	require.True(t, ok)
	assert.Equal(t, 500, item.ID)

	for _, label := range []string{"item 500", "Item 50 ", "Item 0500", "Item", "500", "Item 1001"} {
		_, ok := c.FindByLabel(label)
		assert.False(t, ok, "label %q", label)
	}
}

func TestIDs_Ascending(t *testing.T) {
	c, err := New(5)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3, 4, 5}, c.IDs())
}

func TestLabelFor(t *testing.T) {
	assert.Equal(t, "Item 42", LabelFor("42"))
	assert.Equal(t, Label(42), LabelFor("42"))
}
