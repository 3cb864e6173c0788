// Package store holds the in-memory word table and per-term progress
// counters. It is mutated only from the session's update loop; it does no
// locking of its own.
package store

import (
	"github.com/jhlucc/vocab-tui/pkg/types"
)

type Store struct {
	entries  []types.WordEntry
	progress map[string]*types.Progress
}

// New builds a store from a word list and previously saved progress.
// Initialization is total: every loaded term gets a progress record, either
// the saved one or fresh zeros. Saved records for terms no longer in the
// list are dropped.
func New(entries []types.WordEntry, saved map[string]types.Progress) *Store {
	s := &Store{}
	s.Load(entries, saved)
	return s
}

// Load replaces the word table. Progress records for terms still present
// are preserved; records for removed terms are dropped; new terms are
// zero-initialized.
func (s *Store) Load(entries []types.WordEntry, saved map[string]types.Progress) {
	prev := s.progress
	s.entries = make([]types.WordEntry, len(entries))
	copy(s.entries, entries)
	s.progress = make(map[string]*types.Progress, len(entries))
	for _, e := range entries {
		if p, ok := prev[e.Term]; ok {
			s.progress[e.Term] = p
			continue
		}
		p := types.Progress{}
		if saved != nil {
			if sp, ok := saved[e.Term]; ok {
				p = sp
			}
		}
		cp := p
		s.progress[e.Term] = &cp
	}
}

// Entries returns the word table in load order.
func (s *Store) Entries() []types.WordEntry {
	return s.entries
}

func (s *Store) Len() int {
	return len(s.entries)
}

// Terms returns just the terms, in load order.
func (s *Store) Terms() []string {
	terms := make([]string, len(s.entries))
	for i, e := range s.entries {
		terms[i] = e.Term
	}
	return terms
}

// Entry looks up a word by term.
func (s *Store) Entry(term string) (types.WordEntry, bool) {
	for _, e := range s.entries {
		if e.Term == term {
			return e, true
		}
	}
	return types.WordEntry{}, false
}

// Progress returns the progress record for term, or zeros for an unknown
// term.
func (s *Store) Progress(term string) types.Progress {
	if p, ok := s.progress[term]; ok {
		return *p
	}
	return types.Progress{}
}

// RecordJudgment increments exactly one of the known/unknown tallies.
// Bumping `seen` is a separate concern (MarkSeen): the session decides
// whether the current visit has already been counted.
func (s *Store) RecordJudgment(term string, outcome types.Outcome) {
	p, ok := s.progress[term]
	if !ok {
		return
	}
	if outcome == types.OutcomeKnown {
		p.Known++
	} else {
		p.Unknown++
	}
}

// MarkSeen bumps the seen counter for term. Called at most once per
// distinct visit to the term.
func (s *Store) MarkSeen(term string) {
	if p, ok := s.progress[term]; ok {
		p.Seen++
	}
}

// ToggleStar flips the starred flag and returns the new value.
func (s *Store) ToggleStar(term string) bool {
	p, ok := s.progress[term]
	if !ok {
		return false
	}
	p.Starred = !p.Starred
	return p.Starred
}

// MistakeSet returns the terms needing extra review: starred or failed at
// least once. Recomputed on every call, in word-table order.
func (s *Store) MistakeSet() []string {
	var terms []string
	for _, e := range s.entries {
		p := s.progress[e.Term]
		if p.Starred || p.Unknown > 0 {
			terms = append(terms, e.Term)
		}
	}
	return terms
}

// Stats summarizes the table by full scan; nothing is cached, so the result
// cannot drift from the progress records.
func (s *Store) Stats() types.Stats {
	st := types.Stats{Total: len(s.entries)}
	for _, e := range s.entries {
		p := s.progress[e.Term]
		if p.Seen > 0 {
			st.Seen++
		}
		if p.Known > 0 {
			st.Known++
		}
		if p.Unknown > 0 {
			st.Unknown++
		}
		if p.Starred {
			st.Starred++
		}
	}
	return st
}

// Snapshot copies the progress map for persistence.
func (s *Store) Snapshot() map[string]types.Progress {
	out := make(map[string]types.Progress, len(s.progress))
	for term, p := range s.progress {
		out[term] = *p
	}
	return out
}
