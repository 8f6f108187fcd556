// Package perm decides which menu items a site visitor gets to see.
package perm

import (
	"strings"

	"navtree/internal/model"
)

type Device string

const (
	DeviceDesktop Device = "desktop"
	DeviceMobile  Device = "mobile"
)

// Viewer describes the visitor a menu is rendered for.
type Viewer struct {
	LoggedIn bool
	Roles    []string
	// Device is empty when any device should match.
	Device Device
}

// CanSee applies an item's own rules. It does not consider ancestors; Filter does.
//
// Rules:
// - Inactive items are hidden.
// - Device visibility (desktop, mobile) limits the item to those devices when the
//   viewer's device is known.
// - Audience visibility (logged-in, guests) limits the item by login state.
// - Roles, when set, require the viewer to hold at least one of them. Guests hold
//   no roles.
func CanSee(it model.MenuItem, v Viewer) bool {
	if !it.Active {
		return false
	}

	var devices, audience []model.Visibility
	for _, vis := range it.Visibility {
		switch vis {
		case model.VisibleDesktop, model.VisibleMobile:
			devices = append(devices, vis)
		case model.VisibleLoggedIn, model.VisibleGuests:
			audience = append(audience, vis)
		}
	}
	if len(devices) > 0 && v.Device != "" && !containsVis(devices, model.Visibility(v.Device)) {
		return false
	}
	if len(audience) > 0 {
		want := model.VisibleGuests
		if v.LoggedIn {
			want = model.VisibleLoggedIn
		}
		if !containsVis(audience, want) {
			return false
		}
	}

	if len(it.Roles) == 0 {
		return true
	}
	if !v.LoggedIn {
		return false
	}
	for _, r := range it.Roles {
		for _, have := range v.Roles {
			if strings.EqualFold(strings.TrimSpace(r), strings.TrimSpace(have)) {
				return true
			}
		}
	}
	return false
}

// Filter returns a copy of items without the ones v can't see. A hidden item
// hides its whole subtree.
func Filter(items []model.MenuItem, v Viewer) []model.MenuItem {
	out := make([]model.MenuItem, 0, len(items))
	for _, it := range items {
		if !CanSee(it, v) {
			continue
		}
		cp := it
		cp.Children = nil
		if len(it.Children) > 0 {
			if kids := Filter(it.Children, v); len(kids) > 0 {
				cp.Children = kids
			}
		}
		out = append(out, cp)
	}
	return out
}

func containsVis(xs []model.Visibility, v model.Visibility) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
