package tree

import "navtree/internal/model"

// Walk visits every item once in pre-order. Returning false from fn skips the
// item's children.
func Walk(items []model.MenuItem, fn func(it *model.MenuItem, depth int, containerID string) bool) {
	var walk func(list []model.MenuItem, containerID string, depth int)
	walk = func(list []model.MenuItem, containerID string, depth int) {
		for i := range list {
			if fn(&list[i], depth, containerID) {
				walk(list[i].Children, list[i].ID, depth+1)
			}
		}
	}
	walk(items, model.RootContainer, 0)
}

// IDs lists every item id in pre-order.
func IDs(items []model.MenuItem) []string {
	var out []string
	Walk(items, func(it *model.MenuItem, _ int, _ string) bool {
		out = append(out, it.ID)
		return true
	})
	return out
}

func Count(items []model.MenuItem) int {
	n := 0
	Walk(items, func(*model.MenuItem, int, string) bool {
		n++
		return true
	})
	return n
}

// Subtree returns id followed by all of its descendants, pre-order.
func Subtree(items []model.MenuItem, id string) []string {
	n, _, ok := Find(items, id)
	if !ok {
		return nil
	}
	return append([]string{n.ID}, IDs(n.Children)...)
}
