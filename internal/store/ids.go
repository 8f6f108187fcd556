package store

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// newID returns prefix-<ulid>, lowercased. ULIDs sort by creation time.
func newID(prefix string) string {
	id := ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader)
	return prefix + "-" + strings.ToLower(id.String())
}

func NewItemID() string { return newID("mi") }

func NewMenuID() string { return newID("menu") }
