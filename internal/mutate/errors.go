package mutate

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrCycle is returned when a move would place an item inside its own subtree.
var ErrCycle = errors.New("cannot move an item into its own subtree")

type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}

// ValidationError maps form field names (json names) to a message.
type ValidationError struct {
	Fields map[string]string
}

func (e ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid input"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// ItemError is a ValidationError for one item of a whole menu document.
type ItemError struct {
	ID     string
	Fields map[string]string
}

func (e ItemError) Error() string {
	return "item " + e.ID + ": " + ValidationError{Fields: e.Fields}.Error()
}
