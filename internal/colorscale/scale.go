package colorscale

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// palette is the fixed ordered color table. Never modified.
var palette = [...]string{
	"#a6cee3", "#1f78b4", "#b2df8a", "#33a02c", "#e31a1c", "#8dd3c7",
	"#ffffb3", "#bebada", "#fb8072", "#80b1d3", "#fdb462", "#b3de69",
	"#fccde5", "#d9d9d9", "#bc80bd", "#ccebc5", "#ffed6f",
}

// Size is the number of palette entries.
const Size = len(palette)

// Palette returns a copy of the palette in allocation order.
func Palette() []string {
	p := make([]string, Size)
	copy(p, palette[:])
	return p
}

// Scale maps keys to palette colors.
type Scale struct {
	assigned     map[string]string
	available    []string
	pinnedRefill bool
}

// Option configures a Scale.
type Option func(*Scale)

// WithPinnedRefill makes the queue refill skip colors that are already
// assigned to some key. Without it an exhausted queue is refilled with the
// full palette, which can hand a pinned color to a new key.
func WithPinnedRefill() Option {
	return func(s *Scale) { s.pinnedRefill = true }
}

// New creates a Scale backed by seed. The map is used in place, not copied;
// a nil seed starts an empty mapping.
func New(seed map[string]string, opts ...Option) *Scale {
	if seed == nil {
		seed = make(map[string]string)
	}
	s := &Scale{assigned: seed}
	for _, opt := range opts {
		opt(s)
	}
	s.available = without(palette[:], seed)
	return s
}

// Color returns the color for key, assigning the next free one on first use.
func (s *Scale) Color(key string) string {
	if c, ok := s.assigned[key]; ok {
		return c
	}
	c := s.available[0]
	s.available = s.available[1:]
	s.assigned[key] = c
	if len(s.available) == 0 {
		s.refill()
	}
	return c
}

// Colors returns the colors for keys in order.
func (s *Scale) Colors(keys []string) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = s.Color(k)
	}
	return out
}

// Config returns the live key to color mapping.
func (s *Scale) Config() map[string]string { return s.assigned }

// Remaining reports how many colors are left before the next refill.
func (s *Scale) Remaining() int { return len(s.available) }

func (s *Scale) refill() {
	if s.pinnedRefill {
		if rest := without(palette[:], s.assigned); len(rest) > 0 {
			s.available = rest
			return
		}
	}
	s.available = Palette()
}

// without returns the colors of p that are not values of m, in palette order.
// An empty result falls back to the full palette so the queue never starts empty.
func without(p []string, m map[string]string) []string {
	used := make(map[string]bool, len(m))
	for _, c := range m {
		used[c] = true
	}
	out := make([]string, 0, len(p))
	for _, c := range p {
		if !used[c] {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return Palette()
	}
	return out
}

// RGB parses a hex color such as "#a6cee3" into 8-bit components.
func RGB(hex string) (r, g, b uint8, err error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0, 0, 0, err
	}
	r, g, b = c.RGB255()
	return r, g, b, nil
}

// Style returns a lipgloss style whose foreground is the key's color.
func (s *Scale) Style(key string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color(key)))
}
