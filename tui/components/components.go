// Package components holds small shared rendering helpers used by the lens
// TUI widgets.
package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/grovetools/lens/tui/theme"
)

// RenderHeader creates a consistent one-line header with the tree icon and
// an optional muted subtitle appended after the title.
func RenderHeader(title string, subtitle ...string) string {
	t := theme.DefaultTheme

	header := t.Header.Render(fmt.Sprintf("%s %s", theme.IconTree, title))

	if len(subtitle) > 0 && subtitle[0] != "" {
		sub := t.Muted.Render(subtitle[0])
		return lipgloss.JoinHorizontal(lipgloss.Top, header, " ", sub)
	}

	return header
}

// RenderKeyValue creates a muted-key "key: value" fragment for status lines.
func RenderKeyValue(key, value string) string {
	t := theme.DefaultTheme
	return fmt.Sprintf("%s %s", t.Muted.Render(key+":"), value)
}
