// Package tui is the interactive trainer: a bubbletea program with a menu,
// a flashcard learning loop, a spelling drill, a markdown note viewer, a
// batch note generator and a boss-key disguise screen.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jhlucc/vocab-tui/internal/ai"
	"github.com/jhlucc/vocab-tui/internal/boss"
	"github.com/jhlucc/vocab-tui/internal/config"
	"github.com/jhlucc/vocab-tui/internal/log"
	"github.com/jhlucc/vocab-tui/internal/store"
	"github.com/jhlucc/vocab-tui/pkg/types"
)

// Mode identifies which screen owns the keyboard. Exactly one is active.
type Mode int

const (
	ModeMenu Mode = iota
	ModeLearning
	ModeSpelling
	ModeBoss
	ModeViewer
	ModeBatch
)

// Explainer produces a markdown note for a term. Satisfied by *ai.Client.
type Explainer interface {
	Explain(ctx context.Context, term string, opts ai.Options) (string, error)
}

// NoteStore persists generated notes. Satisfied by *storage.Files.
type NoteStore interface {
	NoteExists(term string) bool
	SaveNote(term, markdown string) error
	LoadNote(term string) (string, error)
}

// ProgressSaver persists learning counters. Satisfied by *storage.Files.
type ProgressSaver interface {
	SaveProgress(map[string]types.Progress) error
}

// Deps are the model's external collaborators.
type Deps struct {
	Explainer Explainer
	Notes     NoteStore
	Saver     ProgressSaver
}

type Model struct {
	cfg    *config.Config
	words  *store.Store
	deps   Deps
	themes *Registry
	keys   keyMap
	help   help.Model

	mode     Mode
	prevMode Mode // restored when the boss overlay closes

	width  int
	height int

	status      string
	confirmQuit bool
	aiBusy      bool

	learning learningState
	spelling spellingState
	viewer   viewerState
	batch    batchState
	boss     *boss.Overlay
}

func New(cfg *config.Config, words *store.Store, deps Deps) *Model {
	themes := NewRegistry()
	if !themes.SetActive(cfg.Theme.Name) {
		log.Warn("unknown theme %q, using default", cfg.Theme.Name)
	}
	return &Model{
		cfg:    cfg,
		words:  words,
		deps:   deps,
		themes: themes,
		keys:   defaultKeyMap(),
		help:   help.New(),
		mode:   ModeMenu,
		width:  80,
		height: 24,
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.viewer.resize(msg.Width, msg.Height)
		return m, nil

	case WordsReloadedMsg:
		m.words.Load(msg.Entries, nil)
		m.syncOrders()
		m.status = "word list reloaded"
		return m, nil

	case bossTickMsg:
		if m.mode != ModeBoss || m.boss == nil {
			return m, nil
		}
		m.boss.Tick()
		return m, bossTick()

	case explainDoneMsg:
		return m.handleExplainDone(msg)

	case batchItemMsg:
		return m.handleBatchItem(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.mode == ModeBatch {
		var cmd tea.Cmd
		m.batch.spin, cmd = m.batch.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmQuit {
		switch msg.String() {
		case "y", "Y":
			m.saveProgress()
			return m, tea.Quit
		default:
			m.confirmQuit = false
			m.status = ""
		}
		return m, nil
	}

	// a single-note generation blocks input until its result arrives,
	// except for the boss key
	if m.aiBusy && !key.Matches(msg, m.keys.Boss) {
		return m, nil
	}

	// boss overlay swallows everything except its own toggle and the
	// config-gated quit
	if m.mode == ModeBoss {
		switch {
		case key.Matches(msg, m.keys.Boss):
			m.mode = m.prevMode
			return m, nil
		case key.Matches(msg, m.keys.Quit) && m.cfg.Boss.QuitEnabled:
			m.saveProgress()
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Boss):
		m.prevMode = m.mode
		m.mode = ModeBoss
		if m.boss == nil {
			m.boss = boss.New(boss.ParseStyle(m.cfg.Boss.Style), time.Now().UnixNano())
		}
		return m, bossTick()
	case key.Matches(msg, m.keys.CycleTheme):
		t := m.themes.Cycle()
		m.status = "theme: " + t.Name
		return m, nil
	}

	switch m.mode {
	case ModeMenu:
		return m.updateMenu(msg)
	case ModeLearning:
		return m.updateLearning(msg)
	case ModeSpelling:
		return m.updateSpelling(msg)
	case ModeViewer:
		return m.updateViewer(msg)
	case ModeBatch:
		return m.updateBatch(msg)
	}
	return m, nil
}

func (m *Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.MenuLearn):
		return m, m.startLearning(false)
	case key.Matches(msg, m.keys.MenuMistakes):
		return m, m.startLearning(true)
	case key.Matches(msg, m.keys.MenuSpelling):
		return m, m.startSpelling(m.words.Terms(), 0, ModeMenu)
	case key.Matches(msg, m.keys.MenuStats):
		m.openViewer("Statistics", m.statsMarkdown(), ModeMenu)
		return m, nil
	case key.Matches(msg, m.keys.MenuHelp):
		m.openViewer("Help", helpMarkdown, ModeMenu)
		return m, nil
	case key.Matches(msg, m.keys.MenuBatch):
		return m, m.startBatch()
	case key.Matches(msg, m.keys.Quit):
		m.confirmQuit = true
		m.status = "quit? (y/n)"
		return m, nil
	}
	return m, nil
}

func bossTick() tea.Cmd {
	return tea.Tick(boss.TickInterval, func(t time.Time) tea.Msg {
		return bossTickMsg(t)
	})
}

// saveProgress writes the counters to disk. Failures never interrupt the
// session; the in-memory state stays authoritative.
func (m *Model) saveProgress() {
	if m.deps.Saver == nil {
		return
	}
	if err := m.deps.Saver.SaveProgress(m.words.Snapshot()); err != nil {
		log.Warn("saving progress: %v", err)
		m.status = "warning: progress not saved"
	}
}

func (m *Model) aiOptions() ai.Options {
	return ai.Options{
		Model:         m.cfg.AI.Model,
		Sentences:     m.cfg.AI.Sentences,
		Search:        ai.SearchMode(m.cfg.AI.Search),
		MaxWebResults: m.cfg.AI.MaxWebResults,
	}
}

func (m *Model) generate(term string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(m.cfg.AI.TimeoutSeconds)*time.Second)
	defer cancel()
	return m.deps.Explainer.Explain(ctx, term, m.aiOptions())
}

// syncOrders repairs the learning and spelling orders after a word reload:
// terms that vanished are dropped, new ones appended, and the cursor stays
// on its term when that term survived.
func (m *Model) syncOrders() {
	m.learning.sync(m.words)
	m.spelling.sync(m.words)
}
