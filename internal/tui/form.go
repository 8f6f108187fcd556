package tui

import (
	"strings"

	"navtree/internal/editor"
	"navtree/internal/model"
	"navtree/internal/mutate"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// formField is one line of the item form. key is the json field name, which is
// also how validation errors are reported.
type formField struct {
	key   string
	label string
	hint  string
	input textinput.Model
}

type itemForm struct {
	title  string
	fields []formField
	focus  int
	errors map[string]string
}

func newFormField(key, label, hint, value string, limit int) formField {
	in := textinput.New()
	in.Prompt = ""
	in.CharLimit = limit
	in.Width = 40
	in.Placeholder = hint
	in.SetValue(value)
	return formField{key: key, label: label, hint: hint, input: in}
}

func newItemForm(f editor.Form) itemForm {
	in := f.Input
	active := "yes"
	if in.Active != nil && !*in.Active {
		active = "no"
	}
	types := make([]string, 0, 4)
	for _, t := range model.ItemTypes() {
		types = append(types, string(t))
	}
	form := itemForm{
		title: f.Title(),
		fields: []formField{
			newFormField("title", "Title", "Menu label", in.Title, 200),
			newFormField("url", "URL", "/path or https://…", in.URL, 2048),
			newFormField("type", "Type", strings.Join(types, "|"), in.Type, 20),
			newFormField("target", "Target", "_self|_blank", in.Target, 10),
			newFormField("icon", "Icon", "home, news, star…", in.Icon, 20),
			newFormField("rel", "Rel", "nofollow, noopener…", strings.Join(in.Rel, ", "), 200),
			newFormField("visibility", "Visibility", "desktop, mobile, logged-in, guests", strings.Join(in.Visibility, ", "), 200),
			newFormField("cssClass", "CSS class", "", in.CSSClass, 200),
			newFormField("htmlId", "HTML id", "", in.HTMLID, 200),
			newFormField("roles", "Roles", "editor, admin…", strings.Join(in.Roles, ", "), 200),
			newFormField("active", "Active", "yes|no", active, 5),
		},
	}
	form.focusField(0)
	return form
}

func (f *itemForm) focusField(i int) {
	if len(f.fields) == 0 {
		return
	}
	i = (i%len(f.fields) + len(f.fields)) % len(f.fields)
	for j := range f.fields {
		if j == i {
			f.fields[j].input.Focus()
		} else {
			f.fields[j].input.Blur()
		}
	}
	f.focus = i
}

func (f itemForm) value(key string) string {
	for _, fd := range f.fields {
		if fd.key == key {
			return strings.TrimSpace(fd.input.Value())
		}
	}
	return ""
}

// itemInput converts the form into mutate input. The active field is parsed here
// since the validator only sees the resulting pointer.
func (f itemForm) itemInput() (mutate.ItemInput, map[string]string) {
	in := mutate.ItemInput{
		Title:      f.value("title"),
		URL:        f.value("url"),
		Type:       f.value("type"),
		Target:     f.value("target"),
		Icon:       f.value("icon"),
		CSSClass:   f.value("cssClass"),
		HTMLID:     f.value("htmlId"),
		Rel:        splitList(f.value("rel")),
		Visibility: splitList(f.value("visibility")),
		Roles:      splitList(f.value("roles")),
	}
	switch strings.ToLower(f.value("active")) {
	case "", "yes", "y", "true":
		v := true
		in.Active = &v
	case "no", "n", "false":
		v := false
		in.Active = &v
	default:
		return in, map[string]string{"active": "must be yes or no"}
	}
	return in, nil
}

func (f *itemForm) update(msg tea.Msg) tea.Cmd {
	if f.focus < 0 || f.focus >= len(f.fields) {
		return nil
	}
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return cmd
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
