package tui

import "github.com/charmbracelet/lipgloss"

// Palette is the raw 256-color assignment behind a theme.
type Palette struct {
	Primary  string
	Success  string
	Warning  string
	Error    string
	Info     string
	Emphasis string
	Border   string
}

// Theme is a named set of ready-to-use styles derived from a Palette.
type Theme struct {
	Name     string
	Title    lipgloss.Style // screen titles and the menu header
	Word     lipgloss.Style // the term being studied
	Phonetic lipgloss.Style // phonetic transcription
	Correct  lipgloss.Style // positive feedback
	Warn     lipgloss.Style // warnings and wrong answers
	Errorish lipgloss.Style // hard failures
	Hint     lipgloss.Style // dimmed helper text
	Border   lipgloss.Style // framed panels
}

func themeFromPalette(name string, p Palette) Theme {
	return Theme{
		Name:     name,
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Primary)),
		Word:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Emphasis)),
		Phonetic: lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color(p.Info)),
		Correct:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.Success)),
		Warn:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.Warning)),
		Errorish: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Error)),
		Hint:     lipgloss.NewStyle().Faint(true),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.Border)).
			Padding(0, 1),
	}
}

var palettes = map[string]Palette{
	"default":    {Primary: "213", Success: "114", Warning: "220", Error: "196", Info: "39", Emphasis: "212", Border: "213"},
	"dark":       {Primary: "105", Success: "78", Warning: "214", Error: "160", Info: "33", Emphasis: "147", Border: "105"},
	"light":      {Primary: "135", Success: "150", Warning: "222", Error: "210", Info: "117", Emphasis: "219", Border: "135"},
	"monochrome": {Primary: "245", Success: "252", Warning: "241", Error: "232", Info: "248", Emphasis: "255", Border: "245"},
	"ocean":      {Primary: "31", Success: "36", Warning: "220", Error: "196", Info: "33", Emphasis: "51", Border: "31"},
	"sunset":     {Primary: "208", Success: "154", Warning: "214", Error: "196", Info: "69", Emphasis: "203", Border: "208"},
}

// themeOrder fixes the cycle order; map iteration would shuffle it.
var themeOrder = []string{"default", "dark", "light", "monochrome", "ocean", "sunset"}

// Registry holds the available themes and the active selection. Cycling
// walks themeOrder and wraps.
type Registry struct {
	themes map[string]Theme
	active int
}

func NewRegistry() *Registry {
	r := &Registry{themes: make(map[string]Theme, len(themeOrder))}
	for name, p := range palettes {
		r.themes[name] = themeFromPalette(name, p)
	}
	return r
}

// Names lists the themes in cycle order.
func (r *Registry) Names() []string {
	out := make([]string, len(themeOrder))
	copy(out, themeOrder)
	return out
}

// Active returns the currently selected theme.
func (r *Registry) Active() Theme {
	return r.themes[themeOrder[r.active]]
}

// SetActive selects a theme by name and reports whether it exists.
func (r *Registry) SetActive(name string) bool {
	for i, n := range themeOrder {
		if n == name {
			r.active = i
			return true
		}
	}
	return false
}

// Cycle advances to the next theme, wrapping at the end, and returns it.
func (r *Registry) Cycle() Theme {
	r.active = (r.active + 1) % len(themeOrder)
	return r.Active()
}
