package tree

import "navtree/internal/model"

// Row is one visible line of a flattened tree.
type Row struct {
	Item        model.MenuItem
	ContainerID string
	Depth       int
	HasChildren bool
	Expanded    bool
}

func (r Row) ID() string { return r.Item.ID }

// Flatten lists the visible items in display order. Children of an item are only
// included when expanded reports true for it.
func Flatten(items []model.MenuItem, expanded func(id string) bool) []Row {
	var out []Row
	Walk(items, func(it *model.MenuItem, depth int, containerID string) bool {
		open := len(it.Children) > 0 && expanded != nil && expanded(it.ID)
		out = append(out, Row{
			Item:        *it,
			ContainerID: containerID,
			Depth:       depth,
			HasChildren: len(it.Children) > 0,
			Expanded:    open,
		})
		return open
	})
	return out
}

// RowIndex returns the position of id within rows, or -1.
func RowIndex(rows []Row, id string) int {
	for i := range rows {
		if rows[i].Item.ID == id {
			return i
		}
	}
	return -1
}
