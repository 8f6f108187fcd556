package mutate

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"navtree/internal/model"
	"navtree/internal/tree"

	"github.com/go-playground/validator/v10"
)

// ItemInput is the editable field set of a menu item, as submitted by a form,
// a CLI command or the HTTP API.
type ItemInput struct {
	Title      string   `json:"title" validate:"required,max=200"`
	URL        string   `json:"url" validate:"required,max=2048,linkurl"`
	Type       string   `json:"type" validate:"required,oneof=custom page category post"`
	Target     string   `json:"target,omitempty" validate:"omitempty,oneof=_self _blank"`
	Icon       string   `json:"icon,omitempty" validate:"omitempty,oneof=home news category tag user search star link mail video image info"`
	CSSClass   string   `json:"cssClass,omitempty" validate:"max=200"`
	HTMLID     string   `json:"htmlId,omitempty" validate:"omitempty,max=200"`
	Rel        []string `json:"rel,omitempty" validate:"omitempty,unique,dive,oneof=nofollow noopener noreferrer external"`
	Visibility []string `json:"visibility,omitempty" validate:"omitempty,unique,dive,oneof=desktop mobile logged-in guests"`
	Roles      []string `json:"roles,omitempty" validate:"omitempty,dive,required"`
	Active     *bool    `json:"active,omitempty"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func itemValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(JSONFieldName)
		_ = v.RegisterValidation("linkurl", func(fl validator.FieldLevel) bool {
			return model.SafeLinkURL(fl.Field().String())
		})
		validate = v
	})
	return validate
}

// Normalize trims whitespace and lowercases the enumerated fields.
func (in ItemInput) Normalize() ItemInput {
	in.Title = strings.TrimSpace(in.Title)
	in.URL = strings.TrimSpace(in.URL)
	in.Type = strings.ToLower(strings.TrimSpace(in.Type))
	in.Target = strings.TrimSpace(in.Target)
	in.Icon = strings.ToLower(strings.TrimSpace(in.Icon))
	in.CSSClass = strings.TrimSpace(in.CSSClass)
	in.HTMLID = strings.TrimSpace(in.HTMLID)
	in.Rel = normalizeList(in.Rel, true)
	in.Visibility = normalizeList(in.Visibility, true)
	in.Roles = normalizeList(in.Roles, false)
	return in
}

func normalizeList(xs []string, lower bool) []string {
	var out []string
	for _, x := range xs {
		x = strings.TrimSpace(x)
		if lower {
			x = strings.ToLower(x)
		}
		if x != "" {
			out = append(out, x)
		}
	}
	return out
}

// Validate checks required fields and enumerations. Failures come back as a
// ValidationError keyed by json field name.
func (in ItemInput) Validate() error {
	err := itemValidator().Struct(in.Normalize())
	if err == nil {
		return nil
	}
	if ve, ok := FromValidator(err); ok {
		return ve
	}
	return err
}

// ValidateMenu checks a whole menu document: unique ids first, then every item's
// fields the way single-item edits check them. The first invalid item is
// reported as an ItemError.
func ValidateMenu(m model.Menu) error {
	if err := model.ValidateTree(m); err != nil {
		return err
	}
	var bad error
	tree.Walk(m.Items, func(it *model.MenuItem, _ int, _ string) bool {
		if bad != nil {
			return false
		}
		if err := InputFromItem(*it).Validate(); err != nil {
			var ve ValidationError
			if errors.As(err, &ve) {
				err = ItemError{ID: it.ID, Fields: ve.Fields}
			}
			bad = err
			return false
		}
		return true
	})
	return bad
}

// FromValidator converts validator.ValidationErrors into a ValidationError. Field
// names are taken as reported by the validator, with any "[i]" suffix removed.
func FromValidator(err error) (ValidationError, bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ValidationError{}, false
	}
	fields := map[string]string{}
	for _, fe := range verrs {
		name := fe.Field()
		if i := strings.IndexByte(name, '['); i > 0 {
			name = name[:i]
		}
		if _, seen := fields[name]; seen {
			continue
		}
		fields[name] = fieldMessage(fe)
	}
	return ValidationError{Fields: fields}, true
}

// JSONFieldName reports the json name of a struct field, for validator tag name funcs.
func JSONFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "max":
		return "is too long"
	case "unique":
		return "contains duplicates"
	case "linkurl":
		return "must be a relative path or an http, https, mailto or tel URL"
	default:
		return "is invalid"
	}
}
