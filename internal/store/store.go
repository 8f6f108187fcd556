package store

import (
	"os"
	"path/filepath"
)

const (
	dirName        = ".navtree"
	sqliteFileName = "navtree.sqlite"
)

// Store is a menu store rooted at Dir. Each operation opens its own connection, so
// a Store value is safe to copy and share between commands.
type Store struct {
	Dir string
}

// DiscoverDir walks up from start looking for a .navtree directory.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, dirName)
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// DefaultDir is the nearest existing .navtree directory, or ./.navtree.
func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	return filepath.Join(cwd, dirName), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) sqlitePath() string {
	return filepath.Join(filepath.Clean(s.Dir), sqliteFileName)
}
