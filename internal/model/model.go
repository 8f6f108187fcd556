package model

import (
	"fmt"
	"strings"
	"time"
)

// RootContainer labels the top-level item list of a menu.
const RootContainer = "root"

type ItemType string

const (
	ItemTypeCustom   ItemType = "custom"
	ItemTypePage     ItemType = "page"
	ItemTypeCategory ItemType = "category"
	ItemTypePost     ItemType = "post"
)

type Target string

const (
	TargetSelf  Target = "_self"
	TargetBlank Target = "_blank"
)

type Icon string

const (
	IconHome     Icon = "home"
	IconNews     Icon = "news"
	IconCategory Icon = "category"
	IconTag      Icon = "tag"
	IconUser     Icon = "user"
	IconSearch   Icon = "search"
	IconStar     Icon = "star"
	IconLink     Icon = "link"
	IconMail     Icon = "mail"
	IconVideo    Icon = "video"
	IconImage    Icon = "image"
	IconInfo     Icon = "info"
)

type Rel string

const (
	RelNoFollow   Rel = "nofollow"
	RelNoOpener   Rel = "noopener"
	RelNoReferrer Rel = "noreferrer"
	RelExternal   Rel = "external"
)

type Visibility string

const (
	VisibleDesktop  Visibility = "desktop"
	VisibleMobile   Visibility = "mobile"
	VisibleLoggedIn Visibility = "logged-in"
	VisibleGuests   Visibility = "guests"
)

type Location string

const (
	LocationHeader  Location = "header"
	LocationFooter  Location = "footer"
	LocationSidebar Location = "sidebar"
	LocationMobile  Location = "mobile"
)

type MenuType string

const (
	MenuTypeMain      MenuType = "main"
	MenuTypeSecondary MenuType = "secondary"
	MenuTypeUtility   MenuType = "utility"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

type MenuItem struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	URL    string   `json:"url"`
	Type   ItemType `json:"type"`
	Target Target   `json:"target,omitempty"`
	Icon   Icon     `json:"icon,omitempty"`

	CSSClass   string       `json:"cssClass,omitempty"`
	HTMLID     string       `json:"htmlId,omitempty"`
	Rel        []Rel        `json:"rel,omitempty"`
	Visibility []Visibility `json:"visibility,omitempty"`
	Roles      []string     `json:"roles,omitempty"`
	Active     bool         `json:"active"`

	Children []MenuItem `json:"children,omitempty"`
}

type Menu struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Location    Location   `json:"location"`
	Type        MenuType   `json:"type"`
	Status      Status     `json:"status"`
	Description string     `json:"description,omitempty"`
	Items       []MenuItem `json:"items"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Event is one entry of the mutation log.
type Event struct {
	ID      string    `json:"id"`
	TS      time.Time `json:"ts"`
	Type    string    `json:"type"`
	MenuID  string    `json:"menuId"`
	Payload any       `json:"payload"`
}

func ItemTypes() []ItemType {
	return []ItemType{ItemTypeCustom, ItemTypePage, ItemTypeCategory, ItemTypePost}
}

func Icons() []Icon {
	return []Icon{IconHome, IconNews, IconCategory, IconTag, IconUser, IconSearch, IconStar, IconLink, IconMail, IconVideo, IconImage, IconInfo}
}

func ParseItemType(s string) (ItemType, error) {
	v := ItemType(strings.ToLower(strings.TrimSpace(s)))
	for _, t := range ItemTypes() {
		if t == v {
			return t, nil
		}
	}
	return "", fmt.Errorf("invalid item type: %q (expected custom|page|category|post)", s)
}

func ParseLocation(s string) (Location, error) {
	switch Location(strings.ToLower(strings.TrimSpace(s))) {
	case LocationHeader:
		return LocationHeader, nil
	case LocationFooter:
		return LocationFooter, nil
	case LocationSidebar:
		return LocationSidebar, nil
	case LocationMobile:
		return LocationMobile, nil
	default:
		return "", fmt.Errorf("invalid location: %q (expected header|footer|sidebar|mobile)", s)
	}
}

func ParseMenuType(s string) (MenuType, error) {
	switch MenuType(strings.ToLower(strings.TrimSpace(s))) {
	case MenuTypeMain, "":
		return MenuTypeMain, nil
	case MenuTypeSecondary:
		return MenuTypeSecondary, nil
	case MenuTypeUtility:
		return MenuTypeUtility, nil
	default:
		return "", fmt.Errorf("invalid menu type: %q (expected main|secondary|utility)", s)
	}
}

func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusActive, "":
		return StatusActive, nil
	case StatusInactive:
		return StatusInactive, nil
	default:
		return "", fmt.Errorf("invalid status: %q (expected active|inactive)", s)
	}
}

// OpensNewWindow reports whether the item link targets a new browser window.
func (it MenuItem) OpensNewWindow() bool { return it.Target == TargetBlank }
