package store

import (
	"context"
	"errors"
	"strings"
	"testing"

	"navtree/internal/model"
)

func sampleMenu(id string) model.Menu {
	return model.Menu{
		ID:       id,
		Name:     "Main",
		Location: model.LocationHeader,
		Type:     model.MenuTypeMain,
		Status:   model.StatusActive,
		Items: []model.MenuItem{
			{ID: "mi-a", Title: "Home", URL: "/", Type: model.ItemTypePage, Active: true, Children: []model.MenuItem{
				{ID: "mi-b", Title: "Docs", URL: "/docs", Type: model.ItemTypeCustom, Rel: []model.Rel{model.RelNoFollow}},
			}},
		},
	}
}

func TestSaveMenu_GetMenu_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := Store{Dir: t.TempDir()}

	saved, err := s.SaveMenu(ctx, sampleMenu("menu-1"))
	if err != nil {
		t.Fatalf("SaveMenu: %v", err)
	}
	if saved.CreatedAt.IsZero() || saved.UpdatedAt.IsZero() {
		t.Fatalf("expected timestamps to be set; got %#v", saved)
	}

	got, err := s.GetMenu(ctx, "menu-1")
	if err != nil {
		t.Fatalf("GetMenu: %v", err)
	}
	if got.Name != "Main" || got.Location != model.LocationHeader {
		t.Fatalf("unexpected menu: %#v", got)
	}
	if len(got.Items) != 1 || len(got.Items[0].Children) != 1 {
		t.Fatalf("expected nested items to survive; got %#v", got.Items)
	}
	if ch := got.Items[0].Children[0]; ch.ID != "mi-b" || len(ch.Rel) != 1 || ch.Rel[0] != model.RelNoFollow {
		t.Fatalf("child mismatch: %#v", ch)
	}
	if !got.CreatedAt.Equal(saved.CreatedAt) {
		t.Fatalf("createdAt mismatch: %v vs %v", got.CreatedAt, saved.CreatedAt)
	}
}

func TestSaveMenu_KeepsCreatedAt(t *testing.T) {
	ctx := context.Background()
	s := Store{Dir: t.TempDir()}

	first, err := s.SaveMenu(ctx, sampleMenu("menu-1"))
	if err != nil {
		t.Fatalf("SaveMenu: %v", err)
	}
	m := sampleMenu("menu-1")
	m.Name = "Renamed"
	m.Items = nil
	second, err := s.SaveMenu(ctx, m)
	if err != nil {
		t.Fatalf("SaveMenu (update): %v", err)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("createdAt changed: %v -> %v", first.CreatedAt, second.CreatedAt)
	}
	got, _ := s.GetMenu(ctx, "menu-1")
	if got.Name != "Renamed" || len(got.Items) != 0 {
		t.Fatalf("expected update to replace the tree; got %#v", got)
	}
}

func TestSaveMenu_RejectsDuplicateIDs(t *testing.T) {
	m := sampleMenu("menu-1")
	m.Items = append(m.Items, model.MenuItem{ID: "mi-b", Title: "Again", URL: "/x", Type: model.ItemTypeCustom})

	_, err := Store{Dir: t.TempDir()}.SaveMenu(context.Background(), m)
	var dup model.DuplicateIDError
	if !errors.As(err, &dup) || dup.ID != "mi-b" {
		t.Fatalf("expected DuplicateIDError for mi-b; got %v", err)
	}
}

func TestListAndDeleteMenus(t *testing.T) {
	ctx := context.Background()
	s := Store{Dir: t.TempDir()}

	menus, err := s.ListMenus(ctx)
	if err != nil {
		t.Fatalf("ListMenus: %v", err)
	}
	if len(menus) != 0 {
		t.Fatalf("expected empty store; got %d menus", len(menus))
	}

	for _, id := range []string{"menu-1", "menu-2"} {
		if _, err := s.SaveMenu(ctx, sampleMenu(id)); err != nil {
			t.Fatalf("SaveMenu %s: %v", id, err)
		}
	}
	menus, _ = s.ListMenus(ctx)
	if len(menus) != 2 {
		t.Fatalf("expected 2 menus; got %d", len(menus))
	}

	if err := s.DeleteMenu(ctx, "menu-1"); err != nil {
		t.Fatalf("DeleteMenu: %v", err)
	}
	if _, err := s.GetMenu(ctx, "menu-1"); !errors.Is(err, ErrMenuNotFound) {
		t.Fatalf("expected ErrMenuNotFound after delete; got %v", err)
	}
	if err := s.DeleteMenu(ctx, "menu-1"); !errors.Is(err, ErrMenuNotFound) {
		t.Fatalf("expected ErrMenuNotFound on second delete; got %v", err)
	}
}

func TestEvents_AppendAndRead(t *testing.T) {
	ctx := context.Background()
	s := Store{Dir: t.TempDir()}

	if err := s.AppendEvent(ctx, "item.move", "menu-1", map[string]any{"itemId": "mi-a"}); err != nil {
		t.Fatalf("append 1: %v", err)
	}
	if err := s.AppendEvent(ctx, "item.delete", "menu-2", map[string]any{"itemId": "mi-b"}); err != nil {
		t.Fatalf("append 2: %v", err)
	}
	if err := s.AppendEvent(ctx, "", "menu-1", nil); err == nil {
		t.Fatalf("expected error for missing type")
	}

	all, err := s.ReadEvents(ctx, "", 0)
	if err != nil {
		t.Fatalf("ReadEvents: %v", err)
	}
	if len(all) != 2 || all[0].Type != "item.move" || all[1].Type != "item.delete" {
		t.Fatalf("unexpected events: %#v", all)
	}

	one, err := s.ReadEvents(ctx, "menu-2", 0)
	if err != nil {
		t.Fatalf("ReadEvents menu-2: %v", err)
	}
	if len(one) != 1 || one[0].MenuID != "menu-2" {
		t.Fatalf("expected one menu-2 event; got %#v", one)
	}
	p, ok := one[0].Payload.(map[string]any)
	if !ok || p["itemId"] != "mi-b" {
		t.Fatalf("payload not decoded: %#v", one[0].Payload)
	}
}

func TestNewIDs(t *testing.T) {
	a, b := NewItemID(), NewItemID()
	if a == b {
		t.Fatalf("expected unique ids; got %q twice", a)
	}
	if !strings.HasPrefix(a, "mi-") || len(a) != len("mi-")+26 {
		t.Fatalf("unexpected item id shape: %q", a)
	}
	if a != strings.ToLower(a) {
		t.Fatalf("expected lowercase id: %q", a)
	}
	if !strings.HasPrefix(NewMenuID(), "menu-") {
		t.Fatalf("unexpected menu id shape")
	}
}
