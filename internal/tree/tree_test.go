package tree

import (
	"testing"

	"navtree/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(id string, children ...model.MenuItem) model.MenuItem {
	return model.MenuItem{ID: id, Title: id, URL: "/" + id, Type: model.ItemTypeCustom, Active: true, Children: children}
}

func ids(list []model.MenuItem) []string {
	out := make([]string, 0, len(list))
	for _, it := range list {
		out = append(out, it.ID)
	}
	return out
}

func sample() []model.MenuItem {
	return []model.MenuItem{
		item("a", item("a1"), item("a2", item("a2x"))),
		item("b"),
		item("c", item("c1")),
	}
}

func TestFind_ReportsContainer(t *testing.T) {
	items := sample()

	n, c, ok := Find(items, "b")
	require.True(t, ok)
	assert.Equal(t, "b", n.ID)
	assert.Equal(t, model.RootContainer, c)

	n, c, ok = Find(items, "a2x")
	require.True(t, ok)
	assert.Equal(t, "a2x", n.ID)
	assert.Equal(t, "a2", c)

	_, _, ok = Find(items, "missing")
	assert.False(t, ok)
}

func TestContainerItems(t *testing.T) {
	items := sample()

	root, ok := ContainerItems(items, model.RootContainer)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b", "c"}, ids(root))

	kids, ok := ContainerItems(items, "a")
	require.True(t, ok)
	assert.Equal(t, []string{"a1", "a2"}, ids(kids))

	_, ok = ContainerItems(items, "nope")
	assert.False(t, ok)
}

func TestRemoveFromContainer_DoesNotTouchInput(t *testing.T) {
	items := sample()

	out, removed, ok := RemoveFromContainer(items, "a2", "a")
	require.True(t, ok)
	assert.Equal(t, "a2", removed.ID)
	assert.Equal(t, []string{"a2x"}, ids(removed.Children))

	kids, _ := ContainerItems(out, "a")
	assert.Equal(t, []string{"a1"}, ids(kids))

	orig, _ := ContainerItems(items, "a")
	assert.Equal(t, []string{"a1", "a2"}, ids(orig), "input tree must be unchanged")
}

func TestRemoveFromContainer_WrongContainer(t *testing.T) {
	items := sample()
	out, _, ok := RemoveFromContainer(items, "a2", model.RootContainer)
	assert.False(t, ok)
	assert.Equal(t, items, out)
}

func TestInsertAfter(t *testing.T) {
	items := sample()

	out, ok := InsertAfter(items, item("new"), "a1", "a")
	require.True(t, ok)
	kids, _ := ContainerItems(out, "a")
	assert.Equal(t, []string{"a1", "new", "a2"}, ids(kids))

	_, ok = InsertAfter(items, item("new"), "b", "a")
	assert.False(t, ok, "afterID must live in the named container")
}

func TestInsertChild_RootAndNested(t *testing.T) {
	items := sample()

	out, ok := InsertChild(items, item("z"), "")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b", "c", "z"}, ids(out))

	out, ok = InsertChild(items, item("b1"), "b")
	require.True(t, ok)
	kids, _ := ContainerItems(out, "b")
	assert.Equal(t, []string{"b1"}, ids(kids))
}

func TestReorder_ArrayMoveSemantics(t *testing.T) {
	list := []model.MenuItem{item("A"), item("B"), item("C"), item("D")}

	assert.Equal(t, []string{"B", "C", "A", "D"}, ids(Reorder(list, 0, 2)))
	assert.Equal(t, []string{"D", "A", "B", "C"}, ids(Reorder(list, 3, 0)))
	assert.Equal(t, []string{"A", "B", "C", "D"}, ids(Reorder(list, 1, 9)))
	assert.Equal(t, []string{"A", "B", "C", "D"}, ids(list))
}

func TestClone_IsDeep(t *testing.T) {
	items := []model.MenuItem{{ID: "a", Roles: []string{"editor"}, Children: []model.MenuItem{{ID: "b"}}}}
	cp := Clone(items)
	cp[0].Roles[0] = "admin"
	cp[0].Children[0].ID = "changed"

	assert.Equal(t, "editor", items[0].Roles[0])
	assert.Equal(t, "b", items[0].Children[0].ID)
}

func TestIndex(t *testing.T) {
	ix := NewIndex(sample())

	e, ok := ix.Lookup("a2x")
	require.True(t, ok)
	assert.Equal(t, "a2", e.ContainerID)
	assert.Equal(t, 2, e.Depth)
	assert.Equal(t, 0, e.Position)

	assert.Equal(t, 7, ix.Len())
	assert.Equal(t, []string{"a", "a1", "a2", "a2x", "b", "c", "c1"}, ix.IDs())
	assert.True(t, ix.IsAncestor("a", "a2x"))
	assert.True(t, ix.IsAncestor("a2x", "a2x"))
	assert.False(t, ix.IsAncestor("b", "a2x"))
	assert.Equal(t, []string{"a", "a2"}, ix.Ancestors("a2x"))
	assert.Empty(t, ix.Duplicates())
}

func TestIndex_Duplicates(t *testing.T) {
	ix := NewIndex([]model.MenuItem{item("a", item("x")), item("x")})
	assert.Equal(t, []string{"x"}, ix.Duplicates())
}

func TestSubtreeAndCount(t *testing.T) {
	items := sample()
	assert.Equal(t, []string{"a", "a1", "a2", "a2x"}, Subtree(items, "a"))
	assert.Nil(t, Subtree(items, "zzz"))
	assert.Equal(t, 7, Count(items))
}
