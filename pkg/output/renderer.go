package output

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/ccollicutt/fightlog/pkg/markup"
)

// NewRenderer selects a renderer by dialect name.
func NewRenderer(name string, palette markup.Palette, term *lipgloss.Renderer) (Renderer, error) {
	switch name {
	case "terminal":
		return NewTerminalRenderer(term), nil
	case "text":
		return NewPlainRenderer(), nil
	case "markup":
		return NewMarkupRenderer(palette), nil
	default:
		return nil, fmt.Errorf("unknown output dialect %q (use terminal, text or markup)", name)
	}
}
