package tui

import (
	"time"

	"github.com/jhlucc/vocab-tui/pkg/types"
)

// WordsReloadedMsg carries a fresh word list, typically sent by the file
// watcher through Program.Send. Live progress counters survive the reload
// for terms that still exist.
type WordsReloadedMsg struct {
	Entries []types.WordEntry
}

// explainDoneMsg reports the outcome of a single AI note generation.
type explainDoneMsg struct {
	term string
	text string
	err  error
}

// batchItemMsg reports one finished item of the batch note job.
type batchItemMsg struct {
	term string
	text string
	err  error
}

// bossTickMsg drives the fake screen while the boss overlay is active.
type bossTickMsg time.Time
