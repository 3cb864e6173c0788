package tui

import (
	"fmt"
	"strings"
)

const helpMarkdown = `# Key reference

## Menu
| key | action |
|-----|--------|
| 1 | learn all words |
| 2 | review mistakes (starred or ever missed) |
| 3 | spelling drill |
| 4 | statistics |
| 5 | this help |
| b | batch-generate AI notes |
| q | quit |

## Learning
| key | action |
|-----|--------|
| s / w | next / previous card |
| p | reveal or hide the meaning |
| space, enter | I know this word |
| x | I don't know this word |
| , | star / unstar |
| r | shuffle the deck |
| t | spell this word |
| a | AI note for this word |
| . | back to menu |

## Spelling
| key | action |
|-----|--------|
| enter | check the answer |
| f2 | toggle the hint |
| ↑ / ↓ | previous / next word |
| esc | back |

## Everywhere
| key | action |
|-----|--------|
| tab | boss key (press again to come back) |
| ctrl+t | cycle the color theme |
`

func (m *Model) View() string {
	if m.mode == ModeBoss {
		if m.boss == nil {
			return ""
		}
		return m.boss.View(m.width, m.height)
	}

	th := m.themes.Active()
	var body string
	switch m.mode {
	case ModeMenu:
		body = m.menuView(th)
	case ModeLearning:
		body = m.learningView(th)
	case ModeSpelling:
		body = m.spellingView(th)
	case ModeViewer:
		body = m.viewerView(th)
	case ModeBatch:
		body = m.batchView(th)
	}

	status := m.status
	if m.aiBusy && status == "" {
		status = "working…"
	}
	if status == "" {
		return body
	}
	style := th.Hint
	if m.confirmQuit || strings.HasPrefix(status, "warning") {
		style = th.Warn
	}
	return body + "\n" + style.Render(status)
}

func (m *Model) menuView(th Theme) string {
	st := m.words.Stats()
	lines := []string{
		th.Title.Render("Vocab Trainer"),
		"",
		fmt.Sprintf("%d words · %d seen · %d starred", st.Total, st.Seen, st.Starred),
		"",
		"  1  learn all words",
		"  2  review mistakes",
		"  3  spelling drill",
		"  4  statistics",
		"  5  help",
		"  b  batch AI notes",
		"  q  quit",
		"",
		th.Hint.Render("theme: " + th.Name + "  ·  tab boss key  ·  ctrl+t theme"),
	}
	return th.Border.Render(strings.Join(lines, "\n"))
}

func (m *Model) learningView(th Theme) string {
	l := &m.learning
	term := l.current()
	if term == "" {
		return th.Border.Render("deck is empty, press . for the menu")
	}
	entry, _ := m.words.Entry(term)
	p := m.words.Progress(term)

	title := "Learning"
	if l.mistakesOnly {
		title = "Mistake review"
	}

	star := " "
	if p.Starred {
		star = th.Warn.Render("★")
	}

	lines := []string{
		th.Title.Render(title) + th.Hint.Render(fmt.Sprintf("  %d/%d", l.cursor+1, len(l.order))),
		"",
		th.Word.Render(entry.Term) + " " + star,
	}
	if entry.Phonetic != "" {
		lines = append(lines, th.Phonetic.Render(entry.Phonetic))
	}
	lines = append(lines, "")
	if l.reveal {
		lines = append(lines, entry.Meaning)
		if entry.Example != "" {
			lines = append(lines, th.Hint.Render("e.g. "+entry.Example))
		}
	} else {
		lines = append(lines, th.Hint.Render("p to reveal the meaning"))
	}
	lines = append(lines, "",
		th.Hint.Render(fmt.Sprintf("seen %d · known %d · unknown %d", p.Seen, p.Known, p.Unknown)),
		"",
		m.help.View(m.keys),
	)
	return th.Border.Render(strings.Join(lines, "\n"))
}

func (m *Model) spellingView(th Theme) string {
	s := &m.spelling
	term := s.current()
	if term == "" {
		return th.Border.Render("deck is empty, esc to go back")
	}
	entry, _ := m.words.Entry(term)

	lines := []string{
		th.Title.Render("Spelling") + th.Hint.Render(fmt.Sprintf("  %d/%d", s.cursor+1, len(s.order))),
		"",
		"meaning: " + entry.Meaning,
	}
	if s.hintOn {
		lines = append(lines, th.Hint.Render("hint: "+hintFor(term)))
	}
	lines = append(lines, "", s.input.View())
	if s.feedback != "" {
		style := th.Warn
		if s.wasCorrect {
			style = th.Correct
		}
		lines = append(lines, "", style.Render(s.feedback))
	}
	lines = append(lines, "", th.Hint.Render("enter check · f2 hint · ↑/↓ move · esc back"))
	return th.Border.Render(strings.Join(lines, "\n"))
}

// hintFor masks the middle of the term, keeping first and last letter.
func hintFor(term string) string {
	r := []rune(term)
	if len(r) <= 2 {
		return term
	}
	masked := make([]rune, len(r))
	masked[0] = r[0]
	masked[len(r)-1] = r[len(r)-1]
	for i := 1; i < len(r)-1; i++ {
		masked[i] = '_'
	}
	return fmt.Sprintf("%s (%d letters)", string(masked), len(r))
}

func (m *Model) viewerView(th Theme) string {
	v := &m.viewer
	header := th.Title.Render(v.title) + th.Hint.Render("  ↑/↓ scroll · q close")
	return header + "\n" + v.vp.View()
}

func (m *Model) batchView(th Theme) string {
	b := &m.batch
	lines := []string{th.Title.Render("Batch AI notes"), ""}

	if b.initial > 0 {
		lines = append(lines,
			b.prog.ViewAs(b.fraction()),
			th.Hint.Render(fmt.Sprintf("%d/%d done · %d failed · %d left",
				b.completed, b.initial, b.failed, len(b.queue))),
			"")
	}

	logStart := 0
	if len(b.logLines) > 10 {
		logStart = len(b.logLines) - 10
	}
	lines = append(lines, b.logLines[logStart:]...)

	lines = append(lines, "")
	if b.done {
		lines = append(lines, th.Hint.Render("q back to menu"))
	} else if b.cancelled {
		lines = append(lines, th.Warn.Render("finishing the current word…"))
	} else {
		lines = append(lines, b.spin.View()+" "+th.Hint.Render("esc cancel (finishes the current word)"))
	}
	return th.Border.Render(strings.Join(lines, "\n"))
}

func (m *Model) statsMarkdown() string {
	st := m.words.Stats()
	var b strings.Builder
	fmt.Fprintf(&b, "# Statistics\n\n")
	fmt.Fprintf(&b, "| metric | words |\n|--------|-------|\n")
	fmt.Fprintf(&b, "| total | %d |\n", st.Total)
	fmt.Fprintf(&b, "| seen | %d |\n", st.Seen)
	fmt.Fprintf(&b, "| known at least once | %d |\n", st.Known)
	fmt.Fprintf(&b, "| missed at least once | %d |\n", st.Unknown)
	fmt.Fprintf(&b, "| starred | %d |\n", st.Starred)

	if mistakes := m.words.MistakeSet(); len(mistakes) > 0 {
		fmt.Fprintf(&b, "\n## Review list\n\n")
		for _, term := range mistakes {
			p := m.words.Progress(term)
			mark := ""
			if p.Starred {
				mark = " ★"
			}
			fmt.Fprintf(&b, "- %s%s (missed %d)\n", term, mark, p.Unknown)
		}
	}
	return b.String()
}
