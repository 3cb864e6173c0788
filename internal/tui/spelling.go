package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jhlucc/vocab-tui/internal/store"
	"github.com/jhlucc/vocab-tui/pkg/types"
)

// spellingState is the typing drill: the learner spells the term whose
// meaning (and optionally hint) is shown. Wrong answers count as unknown.
type spellingState struct {
	input      textinput.Model
	order      []string
	cursor     int
	hintOn     bool
	feedback   string
	wasCorrect bool
	judged     bool
	returnMode Mode
}

func (s *spellingState) current() string {
	if len(s.order) == 0 {
		return ""
	}
	return s.order[s.cursor]
}

func (s *spellingState) move(delta int) {
	if len(s.order) == 0 {
		return
	}
	s.cursor = ((s.cursor+delta)%len(s.order) + len(s.order)) % len(s.order)
	s.input.SetValue("")
	s.feedback = ""
	s.judged = false
}

func (s *spellingState) sync(words *store.Store) {
	if len(s.order) == 0 {
		return
	}
	cur := s.current()
	var kept []string
	for _, term := range s.order {
		if _, ok := words.Entry(term); ok {
			kept = append(kept, term)
		}
	}
	s.order = kept
	s.cursor = 0
	for i, term := range kept {
		if term == cur {
			s.cursor = i
			break
		}
	}
	if s.cursor >= len(kept) {
		s.cursor = 0
	}
}

// matches compares an answer to the term: surrounding whitespace and letter
// case are forgiven, nothing else.
func matches(answer, term string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), term)
}

func (m *Model) startSpelling(order []string, cursor int, returnMode Mode) tea.Cmd {
	if len(order) == 0 {
		m.status = "word list is empty"
		return nil
	}
	deck := make([]string, len(order))
	copy(deck, order)

	input := textinput.New()
	input.Placeholder = "type the word, enter to check"
	input.CharLimit = 64
	input.Focus()

	m.spelling = spellingState{
		input:      input,
		order:      deck,
		cursor:     cursor,
		hintOn:     m.cfg.Spelling.HintOn,
		returnMode: returnMode,
	}
	m.mode = ModeSpelling
	m.status = ""
	return textinput.Blink
}

func (m *Model) updateSpelling(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.spelling
	switch {
	case key.Matches(msg, m.keys.Back):
		m.mode = s.returnMode
		m.status = ""
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		m.checkSpelling()
		return m, nil
	case key.Matches(msg, m.keys.HintOnOff):
		s.hintOn = !s.hintOn
		return m, nil
	case key.Matches(msg, m.keys.SpellNext):
		s.move(1)
		return m, nil
	case key.Matches(msg, m.keys.SpellPrev):
		s.move(-1)
		return m, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return m, cmd
}

func (m *Model) checkSpelling() {
	s := &m.spelling
	term := s.current()
	if term == "" {
		return
	}
	if !s.judged {
		m.words.MarkSeen(term)
		s.judged = true
	}
	if matches(s.input.Value(), term) {
		m.words.RecordJudgment(term, types.OutcomeKnown)
		m.saveProgress()
		s.wasCorrect = true
		s.move(1)
		s.feedback = "correct, next word"
		return
	}
	m.words.RecordJudgment(term, types.OutcomeUnknown)
	m.saveProgress()
	s.wasCorrect = false
	s.input.SetValue("")
	if m.cfg.Spelling.StayOnWrong {
		s.feedback = "wrong, try again"
	} else {
		s.move(1)
		s.feedback = "wrong, next word"
	}
}
