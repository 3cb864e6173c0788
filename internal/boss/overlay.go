// Package boss renders a fake work screen that replaces the trainer UI
// while the boss key is held down. Two styles are available: a scrolling
// service log tail and a growing directory listing behind a shell prompt.
package boss

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// Style selects which fake screen the overlay draws.
type Style string

const (
	StyleTail Style = "tail" // scrolling log lines
	StyleLS   Style = "ls"   // directory listing entries
)

// ParseStyle maps a config string to a Style, defaulting to the log tail.
func ParseStyle(s string) Style {
	if Style(strings.ToLower(strings.TrimSpace(s))) == StyleLS {
		return StyleLS
	}
	return StyleTail
}

// TickInterval is how often the host program should send the overlay a tick.
const TickInterval = 500 * time.Millisecond

// maxLines caps the scrollback the overlay keeps.
const maxLines = 200

var logTemplates = []string{
	"INFO  worker-%d: processed batch %d in %dms",
	"INFO  http: GET /api/v1/status 200 in %dms",
	"DEBUG cache: evicted %d stale entries",
	"INFO  scheduler: job sync-%d completed",
	"WARN  pool: connection %d recycled after idle timeout",
	"INFO  gc: heap released, %d objects collected",
	"DEBUG queue: depth=%d consumers=%d",
	"INFO  http: POST /api/v1/ingest 202 in %dms",
}

var fileNames = []string{
	"main.go", "config.yaml", "Makefile", "go.mod", "go.sum",
	"server.go", "handler.go", "README.md", "Dockerfile", "client.go",
	"queue.go", "worker.go", "notes.txt", "deploy.sh", "metrics.go",
}

// Overlay holds the state of one boss-key activation. Re-entering the boss
// screen reuses the same overlay so the fake output keeps its history.
type Overlay struct {
	style Style
	rng   *rand.Rand
	now   func() time.Time
	lines []string
	ticks int
}

// New seeds an overlay. A fixed seed plus a fixed clock gives deterministic
// output, which the tests rely on; the TUI passes time.Now().UnixNano().
func New(style Style, seed int64) *Overlay {
	o := &Overlay{style: style, rng: rand.New(rand.NewSource(seed)), now: time.Now}
	n := 12
	if style == StyleLS {
		n = 6
	}
	for i := 0; i < n; i++ {
		o.lines = append(o.lines, o.nextLine())
	}
	return o
}

// SetClock overrides the timestamp source.
func (o *Overlay) SetClock(now func() time.Time) { o.now = now }

func (o *Overlay) Style() Style { return o.style }

func (o *Overlay) Ticks() int { return o.ticks }

func (o *Overlay) nextLine() string {
	if o.style == StyleLS {
		return o.lsLine()
	}
	return o.logLine()
}

func (o *Overlay) logLine() string {
	ts := o.now().Format("15:04:05.000")
	tpl := logTemplates[o.rng.Intn(len(logTemplates))]
	var msg string
	switch strings.Count(tpl, "%d") {
	case 1:
		msg = fmt.Sprintf(tpl, o.rng.Intn(900)+20)
	case 2:
		msg = fmt.Sprintf(tpl, o.rng.Intn(16), o.rng.Intn(4000))
	default:
		msg = fmt.Sprintf(tpl, o.rng.Intn(16), o.rng.Intn(9000), o.rng.Intn(900)+20)
	}
	return ts + " " + msg
}

func (o *Overlay) lsLine() string {
	name := fileNames[o.rng.Intn(len(fileNames))]
	size := o.rng.Intn(48000) + 120
	mtime := o.now().Format("Jan _2 15:04")
	return fmt.Sprintf("-rw-r--r--  1 dev dev %6d %s %s", size, mtime, name)
}

// Tick advances the fake screen by one interval, appending one synthetic
// line stamped with the current time.
func (o *Overlay) Tick() {
	o.ticks++
	o.lines = append(o.lines, o.nextLine())
	if len(o.lines) > maxLines {
		o.lines = o.lines[len(o.lines)-maxLines:]
	}
}

// View renders the overlay for a terminal of the given size. Output is plain
// text on purpose: a styled screen would defeat the disguise.
func (o *Overlay) View(width, height int) string {
	if height < 4 {
		height = 4
	}
	head := "$ tail -f /var/log/app/service.log"
	tail := ""
	if o.style == StyleLS {
		head = "$ watch -n1 ls -l --sort=time /srv/app"
		tail = "\n$ "
	}
	visible := height - 2
	lines := o.lines
	if len(lines) > visible {
		lines = lines[len(lines)-visible:]
	}
	return head + "\n" + strings.Join(lines, "\n") + tail
}
