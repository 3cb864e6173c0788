package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhlucc/vocab-tui/pkg/types"
)

func newTestFiles(t *testing.T) *Files {
	t.Helper()
	dir := t.TempDir()
	return New(
		filepath.Join(dir, "words.csv"),
		filepath.Join(dir, "progress.json"),
		filepath.Join(dir, "ai_notes"),
	)
}

func TestLoadWords(t *testing.T) {
	f := newTestFiles(t)
	csv := "word,meaning,phonetic,example\n" +
		"apple,n. 苹果,/ˈæpəl/,I like apples.\n" +
		"banana,n. 香蕉,,\n" +
		",skipped because term is empty,,\n"
	require.NoError(t, os.WriteFile(f.WordsPath(), []byte(csv), 0o644))

	entries, err := f.LoadWords()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, types.WordEntry{Term: "apple", Meaning: "n. 苹果", Phonetic: "/ˈæpəl/", Example: "I like apples."}, entries[0])
	assert.Equal(t, types.WordEntry{Term: "banana", Meaning: "n. 香蕉"}, entries[1])
}

func TestLoadWordsOptionalColumns(t *testing.T) {
	f := newTestFiles(t)
	require.NoError(t, os.WriteFile(f.WordsPath(), []byte("word,meaning\ncat,n. 猫\n"), 0o644))

	entries, err := f.LoadWords()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Empty(t, entries[0].Phonetic)
}

func TestLoadWordsMissingRequiredColumn(t *testing.T) {
	f := newTestFiles(t)
	require.NoError(t, os.WriteFile(f.WordsPath(), []byte("term,definition\na,b\n"), 0o644))
	_, err := f.LoadWords()
	assert.Error(t, err)
}

func TestCreateSampleWordsIsLoadable(t *testing.T) {
	f := newTestFiles(t)
	assert.False(t, f.WordsFileExists())
	require.NoError(t, f.CreateSampleWords())
	assert.True(t, f.WordsFileExists())

	entries, err := f.LoadWords()
	require.NoError(t, err)
	assert.Equal(t, 8, len(entries))
	assert.Equal(t, "apple", entries[0].Term)
}

func TestProgressRoundTrip(t *testing.T) {
	f := newTestFiles(t)

	// missing file: empty map, no error
	progress, err := f.LoadProgress()
	require.NoError(t, err)
	assert.Empty(t, progress)

	want := map[string]types.Progress{
		"apple":  {Seen: 2, Known: 1, Unknown: 1, Starred: true},
		"banana": {Seen: 1},
	}
	require.NoError(t, f.SaveProgress(want))

	got, err := f.LoadProgress()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestNotes(t *testing.T) {
	f := newTestFiles(t)
	assert.False(t, f.NoteExists("apple"))

	require.NoError(t, f.SaveNote("apple", "# apple\nsome note\n"))
	assert.True(t, f.NoteExists("apple"))

	text, err := f.LoadNote("apple")
	require.NoError(t, err)
	assert.Contains(t, text, "some note")

	_, err = f.LoadNote("banana")
	assert.Error(t, err)
}

func TestNotePathStaysInNotesDir(t *testing.T) {
	f := newTestFiles(t)
	notesDir := filepath.Dir(f.NotePath("apple"))

	for _, term := range []string{"../../etc/passwd", "a/b", `a\b`, ".."} {
		p := f.NotePath(term)
		assert.Equal(t, notesDir, filepath.Dir(p), "term %q must not escape the notes directory", term)

		require.NoError(t, f.SaveNote(term, "note for "+term))
		assert.True(t, f.NoteExists(term))
		text, err := f.LoadNote(term)
		require.NoError(t, err)
		assert.Equal(t, "note for "+term, text)
	}

	// nothing landed outside ai_notes/
	outside, err := os.Stat(filepath.Join(filepath.Dir(notesDir), "passwd.md"))
	assert.Error(t, err)
	assert.Nil(t, outside)
}
