// Package publish renders menus for embedding in a site.
package publish

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"navtree/internal/model"
)

type WriteOptions struct {
	RenderOptions
	Overwrite bool
}

type WriteResult struct {
	Written []string `json:"written"`
}

// WriteMenu writes <menu-id>.md and <menu-id>.html into toDir.
func WriteMenu(m model.Menu, toDir string, opt WriteOptions) (WriteResult, error) {
	if strings.TrimSpace(m.ID) == "" {
		return WriteResult{}, errors.New("missing menu id")
	}
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)
	if err := os.MkdirAll(toDir, 0o755); err != nil {
		return WriteResult{}, err
	}

	files := []struct {
		name string
		body string
	}{
		{m.ID + ".md", RenderMarkdown(m, opt.RenderOptions)},
		{m.ID + ".html", RenderHTML(m, opt.RenderOptions)},
	}
	var res WriteResult
	for _, f := range files {
		p := filepath.Join(toDir, f.name)
		if err := writeFile(p, []byte(f.body), opt.Overwrite); err != nil {
			return res, err
		}
		res.Written = append(res.Written, p)
	}
	return res, nil
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return os.WriteFile(path, b, 0o644)
}
