package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const tuiStateFileName = "tui_state.json"

// TUIState stores small UI state for restoring the editor on relaunch.
// It is best effort: callers tolerate missing or invalid data.
type TUIState struct {
	Version int `json:"version"`

	LastMenuID string `json:"lastMenuId,omitempty"`

	// Expanded maps a menu id to the ids of its expanded items.
	Expanded map[string][]string `json:"expanded,omitempty"`

	// Cursor maps a menu id to the selected item id.
	Cursor map[string]string `json:"cursor,omitempty"`
}

// SetExpanded stores a sorted copy of ids for menuID.
func (st *TUIState) SetExpanded(menuID string, ids []string) {
	if st.Expanded == nil {
		st.Expanded = map[string][]string{}
	}
	if len(ids) == 0 {
		delete(st.Expanded, menuID)
		return
	}
	cp := append([]string(nil), ids...)
	sort.Strings(cp)
	st.Expanded[menuID] = cp
}

func (s Store) tuiStatePath() string {
	return filepath.Join(s.Dir, tuiStateFileName)
}

func (s Store) LoadTUIState() (*TUIState, error) {
	if strings.TrimSpace(s.Dir) == "" {
		return &TUIState{Version: 1}, nil
	}
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.tuiStatePath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &TUIState{Version: 1}, nil
		}
		return nil, err
	}
	var st TUIState
	if err := json.Unmarshal(b, &st); err != nil {
		// Corrupt state is treated as missing.
		return &TUIState{Version: 1}, nil
	}
	if st.Version == 0 {
		st.Version = 1
	}
	return &st, nil
}

func (s Store) SaveTUIState(st *TUIState) error {
	if st == nil || strings.TrimSpace(s.Dir) == "" {
		return nil
	}
	if err := s.Ensure(); err != nil {
		return err
	}
	if st.Version == 0 {
		st.Version = 1
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	path := s.tuiStatePath()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
