package mutate

import (
	"errors"
	"fmt"
	"strings"

	"navtree/internal/model"
	"navtree/internal/tree"
)

// NewItem builds a menu item from validated input.
func NewItem(id string, in ItemInput) model.MenuItem {
	it := model.MenuItem{ID: strings.TrimSpace(id), Active: true}
	applyInput(&it, in.Normalize())
	return it
}

func applyInput(it *model.MenuItem, in ItemInput) {
	it.Title = in.Title
	it.URL = in.URL
	it.Type = model.ItemType(in.Type)
	it.Target = model.Target(in.Target)
	if it.Target == "" {
		it.Target = model.TargetSelf
	}
	it.Icon = model.Icon(in.Icon)
	it.CSSClass = in.CSSClass
	it.HTMLID = in.HTMLID
	it.Rel = nil
	for _, r := range in.Rel {
		it.Rel = append(it.Rel, model.Rel(r))
	}
	it.Visibility = nil
	for _, v := range in.Visibility {
		it.Visibility = append(it.Visibility, model.Visibility(v))
	}
	it.Roles = append([]string(nil), in.Roles...)
	if in.Active != nil {
		it.Active = *in.Active
	}
}

// InputFromItem is the inverse of NewItem, used to prefill edit forms.
func InputFromItem(it model.MenuItem) ItemInput {
	active := it.Active
	in := ItemInput{
		Title:    it.Title,
		URL:      it.URL,
		Type:     string(it.Type),
		Target:   string(it.Target),
		Icon:     string(it.Icon),
		CSSClass: it.CSSClass,
		HTMLID:   it.HTMLID,
		Roles:    append([]string(nil), it.Roles...),
		Active:   &active,
	}
	for _, r := range it.Rel {
		in.Rel = append(in.Rel, string(r))
	}
	for _, v := range it.Visibility {
		in.Visibility = append(in.Visibility, string(v))
	}
	return in
}

// AddItem validates in and appends a new item with the given id to parentID's
// children ("" or "root" adds to the top level).
func AddItem(m model.Menu, parentID, id string, in ItemInput) (Result, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return unchanged(m, ""), errors.New("missing item id")
	}
	if err := in.Validate(); err != nil {
		return unchanged(m, ""), err
	}
	ix := tree.NewIndex(m.Items)
	if ix.Has(id) || id == model.RootContainer {
		return unchanged(m, ""), fmt.Errorf("item id already in use: %s", id)
	}
	parentID = strings.TrimSpace(parentID)
	if parentID == "" {
		parentID = model.RootContainer
	}
	if parentID != model.RootContainer && !ix.Has(parentID) {
		return unchanged(m, ""), NotFoundError{Kind: "item", ID: parentID}
	}

	next, ok := tree.InsertChild(m.Items, NewItem(id, in), parentID)
	if !ok {
		return unchanged(m, ""), NotFoundError{Kind: "item", ID: parentID}
	}
	out := m
	out.Items = next
	return Result{Menu: out, Outcome: OutcomeAdded, ItemID: id, To: parentID}, nil
}

// EditItem replaces the editable fields of the item matched by id. Id and children
// are kept.
func EditItem(m model.Menu, id string, in ItemInput) (Result, error) {
	id = strings.TrimSpace(id)
	if err := in.Validate(); err != nil {
		return unchanged(m, id), err
	}
	items := tree.Clone(m.Items)
	n, _, ok := tree.Find(items, id)
	if !ok {
		return unchanged(m, id), NotFoundError{Kind: "item", ID: id}
	}
	before := tree.Clone([]model.MenuItem{*n})[0]
	applyInput(n, in.Normalize())
	if itemFieldsEqual(before, *n) {
		return unchanged(m, id), nil
	}
	out := m
	out.Items = items
	return Result{Menu: out, Outcome: OutcomeEdited, ItemID: id}, nil
}

// DeleteItem removes the item together with its entire subtree.
func DeleteItem(m model.Menu, id string) (Result, error) {
	id = strings.TrimSpace(id)
	_, containerID, ok := tree.Find(m.Items, id)
	if !ok {
		return unchanged(m, id), NotFoundError{Kind: "item", ID: id}
	}
	removedIDs := tree.Subtree(m.Items, id)
	next, _, ok := tree.RemoveFromContainer(m.Items, id, containerID)
	if !ok {
		return unchanged(m, id), NotFoundError{Kind: "item", ID: id}
	}
	out := m
	out.Items = next
	return Result{Menu: out, Outcome: OutcomeDeleted, ItemID: id, From: containerID, RemovedIDs: removedIDs}, nil
}

func itemFieldsEqual(a, b model.MenuItem) bool {
	if a.Title != b.Title || a.URL != b.URL || a.Type != b.Type || a.Target != b.Target ||
		a.Icon != b.Icon || a.CSSClass != b.CSSClass || a.HTMLID != b.HTMLID || a.Active != b.Active {
		return false
	}
	if len(a.Rel) != len(b.Rel) || len(a.Visibility) != len(b.Visibility) || len(a.Roles) != len(b.Roles) {
		return false
	}
	for i := range a.Rel {
		if a.Rel[i] != b.Rel[i] {
			return false
		}
	}
	for i := range a.Visibility {
		if a.Visibility[i] != b.Visibility[i] {
			return false
		}
	}
	for i := range a.Roles {
		if a.Roles[i] != b.Roles[i] {
			return false
		}
	}
	return true
}
