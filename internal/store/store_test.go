package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhlucc/vocab-tui/pkg/types"
)

func words(terms ...string) []types.WordEntry {
	var out []types.WordEntry
	for _, t := range terms {
		out = append(out, types.WordEntry{Term: t, Meaning: "m:" + t})
	}
	return out
}

func TestLoadInitializesEveryTerm(t *testing.T) {
	s := New(words("apple", "banana"), nil)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"apple", "banana"}, s.Terms())
	assert.Equal(t, types.Progress{}, s.Progress("apple"))
	assert.Equal(t, types.Progress{}, s.Progress("banana"))
}

func TestLoadPreservesSavedProgress(t *testing.T) {
	saved := map[string]types.Progress{
		"apple": {Seen: 3, Known: 2, Unknown: 1, Starred: true},
		"gone":  {Seen: 9},
	}
	s := New(words("apple", "banana"), saved)
	assert.Equal(t, saved["apple"], s.Progress("apple"))
	assert.Equal(t, types.Progress{}, s.Progress("banana"))
	// the removed term's record is dropped
	assert.NotContains(t, s.Snapshot(), "gone")
}

func TestReloadKeepsLiveCounters(t *testing.T) {
	s := New(words("apple", "banana"), nil)
	s.MarkSeen("apple")
	s.RecordJudgment("apple", types.OutcomeKnown)

	// word list edited: banana removed, cherry added
	s.Load(words("apple", "cherry"), nil)

	assert.Equal(t, types.Progress{Seen: 1, Known: 1}, s.Progress("apple"))
	assert.Equal(t, types.Progress{}, s.Progress("cherry"))
	assert.NotContains(t, s.Snapshot(), "banana")
}

func TestSeenCountsOncePerVisit(t *testing.T) {
	s := New(words("apple"), nil)

	// first judgment of the visit also marks the term seen
	s.MarkSeen("apple")
	s.RecordJudgment("apple", types.OutcomeKnown)
	assert.Equal(t, types.Progress{Seen: 1, Known: 1}, s.Progress("apple"))

	// further judgments without revisiting grow the tallies but not seen
	s.RecordJudgment("apple", types.OutcomeUnknown)
	s.RecordJudgment("apple", types.OutcomeKnown)
	p := s.Progress("apple")
	assert.Equal(t, uint(1), p.Seen)
	assert.Equal(t, uint(2), p.Known)
	assert.Equal(t, uint(1), p.Unknown)
}

func TestMistakeSetDefinition(t *testing.T) {
	s := New(words("a", "b", "c", "d"), nil)
	assert.Empty(t, s.MistakeSet())

	s.RecordJudgment("b", types.OutcomeUnknown)
	s.ToggleStar("d")
	assert.Equal(t, []string{"b", "d"}, s.MistakeSet())

	// starring b too must not duplicate it; unstarring d removes it
	s.ToggleStar("b")
	s.ToggleStar("d")
	assert.Equal(t, []string{"b"}, s.MistakeSet())

	// unknown > 0 keeps a term in the set even after unstarring
	s.ToggleStar("b")
	assert.Equal(t, []string{"b"}, s.MistakeSet())
}

func TestMistakeSetTracksInterleavedMutations(t *testing.T) {
	s := New(words("x", "y"), nil)
	for i := 0; i < 5; i++ {
		s.ToggleStar("x")
	}
	// odd number of toggles: starred
	assert.Equal(t, []string{"x"}, s.MistakeSet())
	s.RecordJudgment("y", types.OutcomeKnown)
	assert.Equal(t, []string{"x"}, s.MistakeSet())
	s.RecordJudgment("y", types.OutcomeUnknown)
	assert.Equal(t, []string{"x", "y"}, s.MistakeSet())
}

func TestStatsScenario(t *testing.T) {
	s := New([]types.WordEntry{
		{Term: "apple", Meaning: "苹果"},
		{Term: "banana", Meaning: "香蕉"},
	}, nil)

	s.MarkSeen("apple")
	s.RecordJudgment("apple", types.OutcomeKnown)
	s.MarkSeen("banana")
	s.RecordJudgment("banana", types.OutcomeUnknown)

	st := s.Stats()
	assert.Equal(t, types.Stats{Total: 2, Seen: 2, Known: 1, Unknown: 1, Starred: 0}, st)
}

func TestStatsCountsTermsNotEvents(t *testing.T) {
	s := New(words("apple"), nil)
	s.MarkSeen("apple")
	for i := 0; i < 4; i++ {
		s.RecordJudgment("apple", types.OutcomeKnown)
	}
	st := s.Stats()
	assert.Equal(t, 1, st.Known)
	assert.Equal(t, 1, st.Seen)
}

func TestUnknownTermIsIgnored(t *testing.T) {
	s := New(words("apple"), nil)
	s.RecordJudgment("zzz", types.OutcomeKnown)
	s.MarkSeen("zzz")
	assert.False(t, s.ToggleStar("zzz"))
	_, ok := s.Entry("zzz")
	require.False(t, ok)
	assert.Equal(t, types.Stats{Total: 1}, s.Stats())
}

func TestSnapshotIsACopy(t *testing.T) {
	s := New(words("apple"), nil)
	snap := s.Snapshot()
	snap["apple"] = types.Progress{Seen: 99}
	assert.Equal(t, types.Progress{}, s.Progress("apple"))
}
