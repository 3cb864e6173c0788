package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jhlucc/vocab-tui/internal/log"
)

// viewerState shows a rendered markdown document in a scrollable viewport.
// Closing it returns to whichever mode opened it.
type viewerState struct {
	vp         viewport.Model
	title      string
	raw        string
	returnMode Mode
	open       bool
}

func (v *viewerState) resize(width, height int) {
	if !v.open {
		return
	}
	v.vp.Width = width
	v.vp.Height = height - 3
	v.vp.SetContent(renderMarkdown(v.raw, width))
}

// renderMarkdown pretty-prints markdown for the terminal; on a renderer
// error the raw text is shown instead.
func renderMarkdown(md string, width int) string {
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width-4),
	)
	if err != nil {
		log.Debug("glamour renderer: %v", err)
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		log.Debug("glamour render: %v", err)
		return md
	}
	return out
}

func (m *Model) openViewer(title, markdown string, returnMode Mode) {
	vp := viewport.New(m.width, m.height-3)
	vp.SetContent(renderMarkdown(markdown, m.width))
	m.viewer = viewerState{
		vp:         vp,
		title:      title,
		raw:        markdown,
		returnMode: returnMode,
		open:       true,
	}
	m.status = ""
	// never break the disguise: when the boss overlay is up, the viewer
	// shows after it closes
	if m.mode == ModeBoss {
		m.prevMode = ModeViewer
		return
	}
	m.mode = ModeViewer
}

func (m *Model) updateViewer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v := &m.viewer
	if key.Matches(msg, m.keys.Close) {
		m.mode = v.returnMode
		v.open = false
		return m, nil
	}
	var cmd tea.Cmd
	v.vp, cmd = v.vp.Update(msg)
	return m, cmd
}
