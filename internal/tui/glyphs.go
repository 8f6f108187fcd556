package tui

import (
	"os"
	"strings"
	"sync"

	"navtree/internal/model"
)

// Terminals can't change the font, so the TUI picks between Unicode and ASCII
// glyphs for handles, twisties and item icons.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

func applyGlyphPreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("NAVTREE_TUI_GLYPHS"))) {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	default:
		// Unknown value: ignore.
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func pick(unicode, ascii string) string {
	if glyphs() == glyphSetASCII {
		return ascii
	}
	return unicode
}

func glyphTwistyCollapsed() string { return pick("▸", ">") }

func glyphTwistyExpanded() string { return pick("▾", "v") }

func glyphHandle() string { return pick("⠿", "::") }

func glyphNewWindow() string { return pick("↗", "^") }

func glyphHRule() string { return pick("─", "-") }

func glyphItemType(t model.ItemType) string {
	switch t {
	case model.ItemTypePage:
		return pick("▤", "P")
	case model.ItemTypeCategory:
		return pick("▦", "C")
	case model.ItemTypePost:
		return pick("✎", "B")
	default:
		return pick("⛓", "L")
	}
}

var unicodeIcons = map[model.Icon]string{
	model.IconHome:     "⌂",
	model.IconNews:     "▣",
	model.IconCategory: "▦",
	model.IconTag:      "#",
	model.IconUser:     "☺",
	model.IconSearch:   "⌕",
	model.IconStar:     "★",
	model.IconLink:     "⛓",
	model.IconMail:     "✉",
	model.IconVideo:    "▶",
	model.IconImage:    "▨",
	model.IconInfo:     "ℹ",
}

// glyphIcon returns the symbol for an item icon, or "" when the item has none.
func glyphIcon(ic model.Icon) string {
	if ic == "" {
		return ""
	}
	if glyphs() == glyphSetASCII {
		return "[" + string(ic) + "]"
	}
	if g, ok := unicodeIcons[ic]; ok {
		return g
	}
	return "?"
}
