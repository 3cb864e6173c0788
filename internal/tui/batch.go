package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jhlucc/vocab-tui/internal/log"
)

// batchState runs AI note generation over every term that has no note yet.
// Items run strictly one at a time; cancellation takes effect between
// items, never inside one.
type batchState struct {
	queue     []string
	initial   int
	completed int
	failed    int
	logLines  []string
	cancelled bool
	done      bool

	prog progress.Model
	spin spinner.Model
}

// fraction is the share of the initial workload that finished successfully.
func (b *batchState) fraction() float64 {
	if b.initial == 0 {
		return 1
	}
	return float64(b.completed) / float64(b.initial)
}

func (b *batchState) addLog(line string) {
	b.logLines = append(b.logLines, line)
	if len(b.logLines) > 200 {
		b.logLines = b.logLines[len(b.logLines)-200:]
	}
}

func (m *Model) startBatch() tea.Cmd {
	if m.deps.Explainer == nil || m.deps.Notes == nil {
		m.status = "AI note generation is not configured"
		return nil
	}

	// workload = mistake-set terms without a stored note, in word-table
	// order, frozen at job start
	var queue []string
	for _, term := range m.words.MistakeSet() {
		if !m.deps.Notes.NoteExists(term) {
			queue = append(queue, term)
		}
	}

	b := batchState{
		queue:   queue,
		initial: len(queue),
		prog:    progress.New(progress.WithDefaultGradient()),
		spin:    spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	m.batch = b
	m.mode = ModeBatch
	m.status = ""

	if len(queue) == 0 {
		m.batch.done = true
		m.batch.addLog("nothing to do: every mistake-set word already has a note")
		return nil
	}
	m.batch.addLog(fmt.Sprintf("generating notes for %d words", len(queue)))
	return tea.Batch(m.batch.spin.Tick, m.batchItemCmd(queue[0]))
}

// batchItemCmd generates one note off the update loop. The note-exists
// check runs again right before generating so a rerun, or a note written by
// another action meanwhile, skips cleanly.
func (m *Model) batchItemCmd(term string) tea.Cmd {
	return func() tea.Msg {
		if m.deps.Notes.NoteExists(term) {
			return batchItemMsg{term: term}
		}
		text, err := m.generate(term)
		return batchItemMsg{term: term, text: text, err: err}
	}
}

func (m *Model) handleBatchItem(msg batchItemMsg) (tea.Model, tea.Cmd) {
	b := &m.batch
	if b.done || len(b.queue) == 0 || b.queue[0] != msg.term {
		return m, nil
	}
	b.queue = b.queue[1:]

	switch {
	case msg.err != nil:
		b.failed++
		b.addLog(fmt.Sprintf("✗ %s: %v", msg.term, msg.err))
		log.Warn("batch: %s: %v", msg.term, msg.err)
	case msg.text == "":
		// note appeared since the queue was built
		b.completed++
		b.addLog("• " + msg.term + ": note already exists, skipped")
	default:
		if err := m.deps.Notes.SaveNote(msg.term, msg.text); err != nil {
			b.failed++
			b.addLog(fmt.Sprintf("✗ %s: saving note: %v", msg.term, err))
		} else {
			b.completed++
			b.addLog("✓ " + msg.term)
		}
	}

	if b.cancelled || len(b.queue) == 0 {
		b.done = true
		if b.cancelled {
			b.addLog(fmt.Sprintf("cancelled: %d done, %d failed, %d left", b.completed, b.failed, len(b.queue)))
		} else {
			b.addLog(fmt.Sprintf("finished: %d done, %d failed", b.completed, b.failed))
		}
		return m, nil
	}
	return m, m.batchItemCmd(b.queue[0])
}

func (m *Model) updateBatch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	b := &m.batch
	switch {
	case key.Matches(msg, m.keys.Cancel) && !b.done:
		if !b.cancelled {
			b.cancelled = true
			b.addLog("cancelling after the current word…")
		}
		return m, nil
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.ToMenu):
		if b.done {
			m.mode = ModeMenu
			m.status = ""
		}
		return m, nil
	}
	return m, nil
}
