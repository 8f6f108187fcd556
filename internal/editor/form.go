package editor

import (
	"errors"
	"strings"

	"navtree/internal/model"
	"navtree/internal/mutate"
	"navtree/internal/tree"
)

type FormMode int

const (
	FormAdd FormMode = iota
	FormEdit
)

// Form is an open add or edit form. ParentID is fixed when the form opens.
type Form struct {
	Mode     FormMode
	ParentID string
	ItemID   string
	Input    mutate.ItemInput
}

func (f Form) Title() string {
	if f.Mode == FormEdit {
		return "Edit menu item"
	}
	if f.ParentID == model.RootContainer {
		return "Add menu item"
	}
	return "Add child item"
}

// BeginAdd opens an add form under parentID ("" for the top level).
func (e *Editor) BeginAdd(parentID string) (Form, error) {
	parentID = strings.TrimSpace(parentID)
	if parentID == "" {
		parentID = model.RootContainer
	}
	if parentID != model.RootContainer {
		if _, _, ok := tree.Find(e.menu.Items, parentID); !ok {
			return Form{}, mutate.NotFoundError{Kind: "item", ID: parentID}
		}
	}
	f := Form{
		Mode:     FormAdd,
		ParentID: parentID,
		Input:    mutate.ItemInput{Type: string(model.ItemTypeCustom), Target: string(model.TargetSelf)},
	}
	e.form = &f
	return f, nil
}

// BeginEdit opens an edit form prefilled from the item.
func (e *Editor) BeginEdit(id string) (Form, error) {
	it, _, ok := e.Lookup(id)
	if !ok {
		return Form{}, mutate.NotFoundError{Kind: "item", ID: id}
	}
	f := Form{Mode: FormEdit, ItemID: it.ID, Input: mutate.InputFromItem(it)}
	e.form = &f
	return f, nil
}

// Form returns the open form, if any.
func (e *Editor) Form() (Form, bool) {
	if e.form == nil {
		return Form{}, false
	}
	return *e.form, true
}

func (e *Editor) CancelForm() { e.form = nil }

// Submit applies the open form. A validation failure keeps the form open so the
// caller can show the field errors. On add the parent is expanded so the new item
// is visible.
func (e *Editor) Submit(in mutate.ItemInput) (mutate.Result, error) {
	if e.form == nil {
		return mutate.Result{Menu: e.menu}, ErrNoForm
	}
	f := *e.form
	f.Input = in
	e.form = &f

	var (
		res mutate.Result
		err error
		op  string
	)
	switch f.Mode {
	case FormEdit:
		op = "edit"
		res, err = mutate.EditItem(e.menu, f.ItemID, in)
	default:
		op = "add"
		res, err = mutate.AddItem(e.menu, f.ParentID, e.newID(), in)
	}
	if err != nil {
		var ve mutate.ValidationError
		if !errors.As(err, &ve) {
			e.form = nil
		}
		e.metrics.Record(op, "rejected")
		return res, err
	}
	e.form = nil
	e.commit(op, res)
	if res.Outcome == mutate.OutcomeAdded && f.ParentID != model.RootContainer {
		e.expanded[f.ParentID] = true
	}
	if res.ItemID != "" {
		e.cursor = res.ItemID
	}
	e.ensureCursor()
	return res, nil
}
