package mutate

import (
	"encoding/json"
	"errors"
	"testing"

	"navtree/internal/model"
	"navtree/internal/tree"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func node(id string, children ...model.MenuItem) model.MenuItem {
	return model.MenuItem{ID: id, Title: id, URL: "/" + id, Type: model.ItemTypeCustom, Target: model.TargetSelf, Active: true, Children: children}
}

func menuOf(items ...model.MenuItem) model.Menu {
	return model.Menu{ID: "menu-main", Name: "Main", Location: model.LocationHeader, Type: model.MenuTypeMain, Status: model.StatusActive, Items: items}
}

func childIDs(t *testing.T, m model.Menu, containerID string) []string {
	t.Helper()
	list, ok := tree.ContainerItems(m.Items, containerID)
	require.True(t, ok, "container %s", containerID)
	out := []string{}
	for _, it := range list {
		out = append(out, it.ID)
	}
	return out
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func TestMove_SelfDropIsIdentity(t *testing.T) {
	m := menuOf(node("A", node("A1")), node("B"))
	before := mustJSON(t, m)

	res, err := Move(m, "A", "A")
	require.NoError(t, err)
	assert.False(t, res.Changed())
	assert.Equal(t, before, mustJSON(t, res.Menu))
}

func TestMove_SameContainerReorder(t *testing.T) {
	m := menuOf(node("A"), node("B"), node("C"), node("D"))

	res, err := Move(m, "A", "C")
	require.NoError(t, err)
	assert.Equal(t, OutcomeReordered, res.Outcome)
	assert.Equal(t, "Order updated", res.Message())
	assert.Equal(t, []string{"B", "C", "A", "D"}, childIDs(t, res.Menu, model.RootContainer))

	// Input menu untouched.
	assert.Equal(t, []string{"A", "B", "C", "D"}, childIDs(t, m, model.RootContainer))
}

func TestMove_SameContainerUpward(t *testing.T) {
	m := menuOf(node("P", node("x"), node("y"), node("z")))

	res, err := Move(m, "z", "x")
	require.NoError(t, err)
	assert.Equal(t, OutcomeReordered, res.Outcome)
	assert.Equal(t, []string{"z", "x", "y"}, childIDs(t, res.Menu, "P"))
}

func TestMove_Reparent(t *testing.T) {
	m := menuOf(node("A"), node("B", node("C")))

	res, err := Move(m, "A", "C")
	require.NoError(t, err)
	assert.Equal(t, OutcomeReparented, res.Outcome)
	assert.Equal(t, "Moved to new parent", res.Message())
	assert.Equal(t, model.RootContainer, res.From)
	assert.Equal(t, "B", res.To)
	assert.Equal(t, []string{"B"}, childIDs(t, res.Menu, model.RootContainer))
	assert.Equal(t, []string{"C", "A"}, childIDs(t, res.Menu, "B"))
}

func TestMove_ReparentCarriesSubtree(t *testing.T) {
	m := menuOf(node("A", node("A1", node("A1a"))), node("B", node("C")))

	res, err := Move(m, "A1", "C")
	require.NoError(t, err)
	moved, containerID, ok := tree.Find(res.Menu.Items, "A1")
	require.True(t, ok)
	assert.Equal(t, "B", containerID)
	require.Len(t, moved.Children, 1)
	assert.Equal(t, "A1a", moved.Children[0].ID)
	assert.Empty(t, childIDs(t, res.Menu, "A"))
}

func TestMove_ExclusiveMembership(t *testing.T) {
	m := menuOf(node("A", node("A1")), node("B", node("B1")), node("C"))

	res, err := Move(m, "A1", "B1")
	require.NoError(t, err)

	count := 0
	tree.Walk(res.Menu.Items, func(it *model.MenuItem, _ int, _ string) bool {
		if it.ID == "A1" {
			count++
		}
		return true
	})
	assert.Equal(t, 1, count)
	assert.NotContains(t, childIDs(t, res.Menu, "A"), "A1")
	assert.Contains(t, childIDs(t, res.Menu, "B"), "A1")
	assert.Empty(t, tree.NewIndex(res.Menu.Items).Duplicates())
}

func TestMove_RejectsDropOntoDescendant(t *testing.T) {
	m := menuOf(node("A", node("A1", node("A1a"))), node("B"))
	before := mustJSON(t, m)

	res, err := Move(m, "A", "A1a")
	require.ErrorIs(t, err, ErrCycle)
	assert.False(t, res.Changed())
	assert.Equal(t, before, mustJSON(t, res.Menu))
	assert.Equal(t, before, mustJSON(t, m))
}

func TestMove_MissingTargetLeavesTreeIntact(t *testing.T) {
	m := menuOf(node("A"), node("B", node("C")))
	before := mustJSON(t, m)

	res, err := Move(m, "A", "gone")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, before, mustJSON(t, res.Menu))
	assert.Equal(t, 3, tree.Count(res.Menu.Items), "active node must not be dropped")

	_, err = Move(m, "gone", "A")
	var nf NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "gone", nf.ID)
}

func TestMove_EmptyOverIsNoop(t *testing.T) {
	m := menuOf(node("A"), node("B"))
	res, err := Move(m, "A", "")
	require.NoError(t, err)
	assert.False(t, res.Changed())
}

func TestIndentOutdent(t *testing.T) {
	m := menuOf(node("A"), node("B"), node("C"))

	res, err := Indent(m, "B")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C"}, childIDs(t, res.Menu, model.RootContainer))
	assert.Equal(t, []string{"B"}, childIDs(t, res.Menu, "A"))

	res, err = Outdent(res.Menu, "B")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, childIDs(t, res.Menu, model.RootContainer))

	res, err = Indent(m, "A")
	require.NoError(t, err)
	assert.False(t, res.Changed(), "first sibling cannot be indented")

	res, err = Outdent(m, "A")
	require.NoError(t, err)
	assert.False(t, res.Changed(), "root items cannot be outdented")
}

func TestMoveToRoot(t *testing.T) {
	m := menuOf(node("A", node("A1")), node("B"))
	res, err := MoveToRoot(m, "A1")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "A1"}, childIDs(t, res.Menu, model.RootContainer))
}

func TestMutations_UniquenessAcrossMixedSequence(t *testing.T) {
	m := menuOf(node("A", node("A1"), node("A2")), node("B", node("B1")), node("C"))
	in := func(title string) ItemInput { return ItemInput{Title: title, URL: "/" + title, Type: "custom"} }

	steps := []struct {
		name    string
		run     func(model.Menu) (Result, error)
		wantErr bool
		count   int
	}{
		{"move A1 onto B1", func(m model.Menu) (Result, error) { return Move(m, "A1", "B1") }, false, 6},
		{"add N1 under A", func(m model.Menu) (Result, error) { return AddItem(m, "A", "N1", in("n1")) }, false, 7},
		{"move C onto A2", func(m model.Menu) (Result, error) { return Move(m, "C", "A2") }, false, 7},
		{"delete B", func(m model.Menu) (Result, error) { return DeleteItem(m, "B") }, false, 4},
		{"add N2 at the top", func(m model.Menu) (Result, error) { return AddItem(m, "", "N2", in("n2")) }, false, 5},
		{"move N1 onto N2", func(m model.Menu) (Result, error) { return Move(m, "N1", "N2") }, false, 5},
		{"move A into its own subtree", func(m model.Menu) (Result, error) { return Move(m, "A", "C") }, true, 5},
		{"reuse deleted id A1", func(m model.Menu) (Result, error) { return AddItem(m, "", "A1", in("a1")) }, false, 6},
		{"add taken id N2", func(m model.Menu) (Result, error) { return AddItem(m, "A", "N2", in("dup")) }, true, 6},
		{"indent N1", func(m model.Menu) (Result, error) { return Indent(m, "N1") }, false, 6},
		{"move A2 onto N1", func(m model.Menu) (Result, error) { return Move(m, "A2", "N1") }, false, 6},
		{"delete missing B1", func(m model.Menu) (Result, error) { return DeleteItem(m, "B1") }, true, 6},
	}
	for _, st := range steps {
		res, err := st.run(m)
		if st.wantErr {
			require.Error(t, err, st.name)
		} else {
			require.NoError(t, err, st.name)
			m = res.Menu
		}
		require.NoError(t, model.ValidateTree(m), st.name)
		ids := tree.IDs(m.Items)
		seen := map[string]bool{}
		for _, id := range ids {
			require.False(t, seen[id], "%s: id %s appears twice", st.name, id)
			seen[id] = true
		}
		require.Len(t, ids, st.count, st.name)
	}
	assert.Equal(t, []string{"A", "C", "N2", "N1", "A2", "A1"}, tree.IDs(m.Items))
}
