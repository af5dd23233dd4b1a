package theme

import (
	"os"

	"github.com/grovetools/lens/config"
)

// Nerd Font Icons (Private Constants)
const (
	nerdIconTree         = "" // fa-tree (U+F1BB)
	nerdIconFolderOpen   = "" // custom-folder_open (U+E5FE)
	nerdIconFolderClosed = "" // custom-folder (U+E5FF)
	nerdIconSuccess      = "󰄬" // md-check (U+F012C)
	nerdIconError        = "" // cod-error (U+EA87)
	nerdIconWarning      = "" // fa-warning (U+F071)
	nerdIconInfo         = "󰋼" // md-information (U+F02FC)
	nerdIconSearch       = "" // fa-search (U+F002)
	nerdIconBullet       = "" // oct-dot_fill (U+F444)
	nerdIconArrow        = "󰁔" // md-arrow_right (U+F0054)
	nerdIconWatch        = "󰈈" // md-eye (U+F0208)
)

// ASCII Fallback Icons (Private Constants)
const (
	asciiIconTree         = "[T]"
	asciiIconFolderOpen   = "▼"
	asciiIconFolderClosed = "▶"
	asciiIconSuccess      = "✓"
	asciiIconError        = "✗"
	asciiIconWarning      = "⚠"
	asciiIconInfo         = "ℹ"
	asciiIconSearch       = "/"
	asciiIconBullet       = "•"
	asciiIconArrow        = "→"
	asciiIconWatch        = "◉"
)

// Public Icon Variables
var (
	IconTree         string
	IconFolderOpen   string
	IconFolderClosed string
	IconSuccess      string
	IconError        string
	IconWarning      string
	IconInfo         string
	IconSearch       string
	IconBullet       string
	IconArrow        string
	IconWatch        string
)

// init determines which icon set to use
func init() {
	useASCII := false

	// 1. Check environment variable first
	if os.Getenv("LENS_ICONS") == "ascii" {
		useASCII = true
	} else {
		// 2. Check config file
		cfg, err := config.LoadDefault()
		if err == nil && cfg.Theme.NerdFont != nil && !*cfg.Theme.NerdFont {
			useASCII = true
		}
	}

	if useASCII {
		IconTree = asciiIconTree
		IconFolderOpen = asciiIconFolderOpen
		IconFolderClosed = asciiIconFolderClosed
		IconSuccess = asciiIconSuccess
		IconError = asciiIconError
		IconWarning = asciiIconWarning
		IconInfo = asciiIconInfo
		IconSearch = asciiIconSearch
		IconBullet = asciiIconBullet
		IconArrow = asciiIconArrow
		IconWatch = asciiIconWatch
	} else {
		IconTree = nerdIconTree
		IconFolderOpen = nerdIconFolderOpen
		IconFolderClosed = nerdIconFolderClosed
		IconSuccess = nerdIconSuccess
		IconError = nerdIconError
		IconWarning = nerdIconWarning
		IconInfo = nerdIconInfo
		IconSearch = nerdIconSearch
		IconBullet = nerdIconBullet
		IconArrow = nerdIconArrow
		IconWatch = nerdIconWatch
	}
}
