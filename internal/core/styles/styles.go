// Package styles provides shared lipgloss styles for the TUI.
package styles

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Surface    lipgloss.Color
	Added      lipgloss.Color
	Removed    lipgloss.Color
	Changed    lipgloss.Color
	Comment    lipgloss.Color
	Error      lipgloss.Color
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "tokyo-night"

// themes holds the built-in named palettes.
var themes = map[string]Palette{
	"tokyo-night": {
		Primary:    lipgloss.Color("#7aa2f7"),
		Foreground: lipgloss.Color("#c0caf5"),
		Muted:      lipgloss.Color("#565f89"),
		Surface:    lipgloss.Color("#3b4261"),
		Added:      lipgloss.Color("#9ece6a"),
		Removed:    lipgloss.Color("#f7768e"),
		Changed:    lipgloss.Color("#e0af68"),
		Comment:    lipgloss.Color("#7dcfff"),
		Error:      lipgloss.Color("#f7768e"),
	},
	"gruvbox": {
		Primary:    lipgloss.Color("#83a598"),
		Foreground: lipgloss.Color("#ebdbb2"),
		Muted:      lipgloss.Color("#665c54"),
		Surface:    lipgloss.Color("#3c3836"),
		Added:      lipgloss.Color("#b8bb26"),
		Removed:    lipgloss.Color("#fb4934"),
		Changed:    lipgloss.Color("#fabd2f"),
		Comment:    lipgloss.Color("#8ec07c"),
		Error:      lipgloss.Color("#fb4934"),
	},
}

// ThemeNames returns sorted names of all built-in themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetPalette returns the palette for the given theme name.
func GetPalette(name string) (Palette, bool) {
	p, ok := themes[name]
	return p, ok
}

// Shared styles, initialized from the default theme. Apply swaps them when
// the configured theme differs.
var (
	TextPrimaryStyle    lipgloss.Style
	TextMutedStyle      lipgloss.Style
	TextForegroundStyle lipgloss.Style
	TextErrorStyle      lipgloss.Style

	LineAddedStyle   lipgloss.Style
	LineRemovedStyle lipgloss.Style
	LineContextStyle lipgloss.Style
	LineMissingStyle lipgloss.Style

	ConnectorStyle        lipgloss.Style
	ConnectorHoveredStyle lipgloss.Style
	CommentBarStyle       lipgloss.Style
	CommentTextStyle      lipgloss.Style

	SelectionStyle  lipgloss.Style
	GutterStyle     lipgloss.Style
	PaneBorderStyle lipgloss.Style
	StatusBarStyle  lipgloss.Style
	ModalStyle      lipgloss.Style
)

func init() {
	Apply(DefaultTheme)
}

// Apply rebuilds the shared styles from the named theme. Unknown names
// fall back to the default theme.
func Apply(name string) {
	p, ok := themes[name]
	if !ok {
		p = themes[DefaultTheme]
	}

	TextPrimaryStyle = lipgloss.NewStyle().Foreground(p.Primary)
	TextMutedStyle = lipgloss.NewStyle().Foreground(p.Muted)
	TextForegroundStyle = lipgloss.NewStyle().Foreground(p.Foreground)
	TextErrorStyle = lipgloss.NewStyle().Foreground(p.Error)

	LineAddedStyle = lipgloss.NewStyle().Foreground(p.Added)
	LineRemovedStyle = lipgloss.NewStyle().Foreground(p.Removed)
	LineContextStyle = lipgloss.NewStyle().Foreground(p.Foreground)
	LineMissingStyle = lipgloss.NewStyle().Foreground(p.Muted)

	ConnectorStyle = lipgloss.NewStyle().Foreground(p.Changed)
	ConnectorHoveredStyle = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
	CommentBarStyle = lipgloss.NewStyle().Foreground(p.Comment)
	CommentTextStyle = lipgloss.NewStyle().Foreground(p.Comment).Italic(true)

	SelectionStyle = lipgloss.NewStyle().Background(p.Surface)
	GutterStyle = lipgloss.NewStyle().Foreground(p.Muted)
	PaneBorderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Surface)
	StatusBarStyle = lipgloss.NewStyle().Foreground(p.Muted)
	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Primary).
		Padding(1, 2)
}
