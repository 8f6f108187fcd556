package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func rowIDs(rows []Row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ID())
	}
	return out
}

func TestFlatten_CollapsedHidesChildren(t *testing.T) {
	rows := Flatten(sample(), nil)
	assert.Equal(t, []string{"a", "b", "c"}, rowIDs(rows))
	assert.True(t, rows[0].HasChildren)
	assert.False(t, rows[0].Expanded)
	assert.False(t, rows[1].HasChildren)
}

func TestFlatten_ExpandedShowsDepth(t *testing.T) {
	open := map[string]bool{"a": true, "a2": true, "b": true}
	rows := Flatten(sample(), func(id string) bool { return open[id] })

	assert.Equal(t, []string{"a", "a1", "a2", "a2x", "b", "c"}, rowIDs(rows))
	assert.Equal(t, 2, rows[3].Depth)
	assert.Equal(t, "a2", rows[3].ContainerID)
	// b has no children, so it never reports expanded.
	assert.False(t, rows[4].Expanded)
	assert.Equal(t, 4, RowIndex(rows, "b"))
	assert.Equal(t, -1, RowIndex(rows, "c1"))
}
