package tui

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jhlucc/vocab-tui/internal/ai"
	"github.com/jhlucc/vocab-tui/internal/store"
	"github.com/jhlucc/vocab-tui/pkg/types"
)

// learningState is the flashcard loop: an ordered deck of terms, a cursor,
// and per-visit flags. `judged` guards the seen counter so a card visited
// once bumps it once no matter how many judgments land on it.
type learningState struct {
	order        []string
	cursor       int
	reveal       bool
	mistakesOnly bool
	judged       bool
}

func (l *learningState) current() string {
	if len(l.order) == 0 {
		return ""
	}
	return l.order[l.cursor]
}

// move advances the cursor by delta, wrapping at both ends, and resets the
// per-visit flags.
func (l *learningState) move(delta int) {
	if len(l.order) == 0 {
		return
	}
	l.cursor = ((l.cursor+delta)%len(l.order) + len(l.order)) % len(l.order)
	l.reveal = false
	l.judged = false
}

// sync drops vanished terms from the deck after a reload, keeping the
// cursor on its term when possible.
func (l *learningState) sync(words *store.Store) {
	if len(l.order) == 0 {
		return
	}
	cur := l.current()
	var kept []string
	for _, term := range l.order {
		if _, ok := words.Entry(term); ok {
			kept = append(kept, term)
		}
	}
	l.order = kept
	l.cursor = 0
	for i, term := range kept {
		if term == cur {
			l.cursor = i
			break
		}
	}
	if l.cursor >= len(kept) {
		l.cursor = 0
	}
}

func (m *Model) startLearning(mistakesOnly bool) tea.Cmd {
	var order []string
	if mistakesOnly {
		order = m.words.MistakeSet()
		if len(order) == 0 {
			m.status = "no mistakes to review"
			return nil
		}
	} else {
		order = m.words.Terms()
		if len(order) == 0 {
			m.status = "word list is empty"
			return nil
		}
	}
	m.learning = learningState{order: order, mistakesOnly: mistakesOnly}
	m.mode = ModeLearning
	m.status = ""
	return nil
}

func (m *Model) updateLearning(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	l := &m.learning
	switch {
	case key.Matches(msg, m.keys.Next):
		l.move(1)
	case key.Matches(msg, m.keys.Prev):
		l.move(-1)
	case key.Matches(msg, m.keys.Reveal):
		l.reveal = !l.reveal
	case key.Matches(msg, m.keys.Star):
		if term := l.current(); term != "" {
			if m.words.ToggleStar(term) {
				m.status = "starred " + term
			} else {
				m.status = "unstarred " + term
			}
			m.saveProgress()
		}
	case key.Matches(msg, m.keys.Known):
		m.judge(types.OutcomeKnown)
	case key.Matches(msg, m.keys.Unknown):
		m.judge(types.OutcomeUnknown)
	case key.Matches(msg, m.keys.Shuffle):
		m.shuffleDeck()
	case key.Matches(msg, m.keys.Spell):
		return m, m.startSpelling(l.order, l.cursor, ModeLearning)
	case key.Matches(msg, m.keys.Explain):
		return m, m.explainCurrent()
	case key.Matches(msg, m.keys.Help):
		m.openViewer("Help", helpMarkdown, ModeLearning)
	case key.Matches(msg, m.keys.ToMenu):
		m.mode = ModeMenu
		m.status = ""
	case key.Matches(msg, m.keys.Quit):
		m.confirmQuit = true
		m.status = "quit? (y/n)"
	}
	return m, nil
}

// judge records the outcome for the current card. The first judgment of a
// visit also counts the visit; moving on is a separate navigation action,
// so repeated judgments keep landing on the same card.
func (m *Model) judge(outcome types.Outcome) {
	l := &m.learning
	term := l.current()
	if term == "" {
		return
	}
	if !l.judged {
		m.words.MarkSeen(term)
		l.judged = true
	}
	m.words.RecordJudgment(term, outcome)
	m.saveProgress()
}

// shuffleDeck reorders the deck but keeps the cursor on the same term.
func (m *Model) shuffleDeck() {
	l := &m.learning
	if len(l.order) < 2 {
		return
	}
	cur := l.current()
	rand.Shuffle(len(l.order), func(i, j int) {
		l.order[i], l.order[j] = l.order[j], l.order[i]
	})
	for i, term := range l.order {
		if term == cur {
			l.cursor = i
			break
		}
	}
	m.status = "shuffled"
}

// explainCurrent shows the stored note for the current card, or generates
// one when none exists yet. Generation runs in a command; input is blocked
// until the result message arrives.
func (m *Model) explainCurrent() tea.Cmd {
	term := m.learning.current()
	if term == "" {
		return nil
	}
	if m.deps.Notes != nil && m.deps.Notes.NoteExists(term) {
		md, err := m.deps.Notes.LoadNote(term)
		if err == nil {
			m.openViewer(term, md, ModeLearning)
			return nil
		}
	}
	if m.deps.Explainer == nil {
		m.status = "AI note generation is not configured"
		return nil
	}
	m.aiBusy = true
	m.status = fmt.Sprintf("generating note for %s…", term)
	return func() tea.Msg {
		text, err := m.generate(term)
		return explainDoneMsg{term: term, text: text, err: err}
	}
}

func (m *Model) handleExplainDone(msg explainDoneMsg) (tea.Model, tea.Cmd) {
	m.aiBusy = false
	m.status = ""
	if msg.err != nil {
		m.openViewer(msg.term, generationErrorMarkdown(msg.term, msg.err), ModeLearning)
		return m, nil
	}
	if m.deps.Notes != nil {
		if err := m.deps.Notes.SaveNote(msg.term, msg.text); err != nil {
			m.status = "warning: note not saved"
		}
	}
	m.openViewer(msg.term, msg.text, ModeLearning)
	return m, nil
}

func generationErrorMarkdown(term string, err error) string {
	md := fmt.Sprintf("# %s\n\n**Note generation failed.**\n\n```\n%v\n```\n", term, err)
	var genErr *ai.GenerationError
	if errors.As(err, &genErr) {
		switch genErr.Kind {
		case ai.KindAuthFailure:
			md += "\nCheck OPENAI_API_KEY (and TAVILY_API_KEY if search is enabled).\n"
		case ai.KindTimeout:
			md += "\nThe request timed out; try again or raise ai.timeout_seconds.\n"
		}
	}
	return md
}
