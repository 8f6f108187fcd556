package model

import (
	"fmt"
	"net/url"
	"strings"
)

type DuplicateIDError struct {
	ID string
}

func (e DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate item id: %s", e.ID)
}

type EmptyIDError struct {
	Title string
}

func (e EmptyIDError) Error() string {
	return fmt.Sprintf("item %q has no id", e.Title)
}

// ValidateTree checks that every item has an id and that
// no id appears twice at any depth. It returns the first violation found.
func ValidateTree(m Menu) error {
	seen := map[string]bool{}
	var walk func(items []MenuItem) error
	walk = func(items []MenuItem) error {
		for i := range items {
			id := strings.TrimSpace(items[i].ID)
			if id == "" {
				return EmptyIDError{Title: items[i].Title}
			}
			if id == RootContainer || seen[id] {
				return DuplicateIDError{ID: id}
			}
			seen[id] = true
			if err := walk(items[i].Children); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(m.Items)
}

var linkSchemes = map[string]bool{"http": true, "https": true, "mailto": true, "tel": true}

// SafeLinkURL reports whether u is a relative reference or an absolute URL with
// a scheme menus may link to. Blank and unparsable values are not safe.
func SafeLinkURL(u string) bool {
	u = strings.TrimSpace(u)
	if u == "" {
		return false
	}
	parsed, err := url.Parse(u)
	if err != nil {
		return false
	}
	return parsed.Scheme == "" || linkSchemes[parsed.Scheme]
}
