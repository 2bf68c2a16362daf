package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/partviz/internal/colorscale"
)

const boxColor = "#444466"

var (
	Panel   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(boxColor))
	Title   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ffff"))
	Subtle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	KeyHint = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
)

// Legend renders one "● name" row per layer in the layer's color.
func Legend(layers []Layer) string {
	colors := make(map[string]string, len(layers))
	for _, l := range layers {
		colors[l.Name] = l.Color
	}
	scale := colorscale.New(colors)

	var b strings.Builder
	for _, l := range layers {
		fmt.Fprintf(&b, "%s %s\n", scale.Style(l.Name).Render("●"), l.Name)
	}
	return b.String()
}

func hints(pairs ...string) string {
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, KeyHint.Render(pairs[i])+Subtle.Render(" "+pairs[i+1]))
	}
	return strings.Join(parts, "  ")
}
