package drag

import (
	"strings"

	"navtree/internal/tree"
)

type Direction int

const (
	Up Direction = iota
	Down
)

// KeyboardMove builds the command for moving activeID one visible row up or down.
// Moving down skips the rows of the active item's own subtree. Moving a first
// child up places it right before its parent, which is a drop on the parent's
// previous sibling; with no such sibling there is no move.
func KeyboardMove(rows []tree.Row, activeID string, dir Direction) (Command, bool) {
	activeID = strings.TrimSpace(activeID)
	i := tree.RowIndex(rows, activeID)
	if i < 0 {
		return Command{}, false
	}
	var j int
	switch dir {
	case Up:
		j = i - 1
		if j >= 0 && rows[j].ID() == rows[i].ContainerID {
			j = previousSibling(rows, j)
		}
	case Down:
		j = i + 1
		for j < len(rows) && rows[j].Depth > rows[i].Depth {
			j++
		}
	default:
		return Command{}, false
	}
	if j < 0 || j >= len(rows) {
		return Command{}, false
	}
	return Command{Kind: KindMove, ActiveID: activeID, OverID: rows[j].ID()}, true
}

// previousSibling returns the row of the nearest earlier item sharing rows[i]'s
// container, or -1.
func previousSibling(rows []tree.Row, i int) int {
	for k := i - 1; k >= 0; k-- {
		switch {
		case rows[k].Depth < rows[i].Depth:
			return -1
		case rows[k].Depth == rows[i].Depth:
			return k
		}
	}
	return -1
}

func IndentCommand(id string) Command {
	return Command{Kind: KindIndent, ActiveID: strings.TrimSpace(id)}
}

func OutdentCommand(id string) Command {
	return Command{Kind: KindOutdent, ActiveID: strings.TrimSpace(id)}
}
