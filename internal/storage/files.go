// Package storage reads and writes the three on-disk artifacts: the word
// list CSV, the progress JSON and the per-term AI note files. The session
// engine treats every write failure here as non-fatal.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jhlucc/vocab-tui/pkg/types"
)

type Files struct {
	wordsPath    string
	progressPath string
	notesDir     string
}

func New(wordsPath, progressPath, notesDir string) *Files {
	return &Files{
		wordsPath:    wordsPath,
		progressPath: progressPath,
		notesDir:     notesDir,
	}
}

func (f *Files) WordsPath() string { return f.wordsPath }

func (f *Files) WordsFileExists() bool {
	_, err := os.Stat(f.wordsPath)
	return err == nil
}

// LoadWords parses the word list CSV. The header row must contain at least
// `word` and `meaning`; `phonetic` and `example` are optional columns.
func (f *Files) LoadWords() ([]types.WordEntry, error) {
	file, err := os.Open(f.wordsPath)
	if err != nil {
		return nil, fmt.Errorf("open words file: %w", err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse words file: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	col := map[string]int{}
	for i, name := range records[0] {
		col[strings.TrimSpace(strings.ToLower(name))] = i
	}
	wordIdx, ok := col["word"]
	if !ok {
		return nil, fmt.Errorf("words file is missing a 'word' column")
	}
	meaningIdx, ok := col["meaning"]
	if !ok {
		return nil, fmt.Errorf("words file is missing a 'meaning' column")
	}

	field := func(row []string, idx int, ok bool) string {
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}
	phoneticIdx, hasPhonetic := col["phonetic"]
	exampleIdx, hasExample := col["example"]

	var entries []types.WordEntry
	for _, row := range records[1:] {
		term := field(row, wordIdx, true)
		if term == "" {
			continue
		}
		entries = append(entries, types.WordEntry{
			Term:     term,
			Meaning:  field(row, meaningIdx, true),
			Phonetic: field(row, phoneticIdx, hasPhonetic),
			Example:  field(row, exampleIdx, hasExample),
		})
	}
	return entries, nil
}

// LoadProgress reads the progress JSON. A missing file yields an empty map.
func (f *Files) LoadProgress() (map[string]types.Progress, error) {
	data, err := os.ReadFile(f.progressPath)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]types.Progress{}, nil
		}
		return nil, fmt.Errorf("read progress file: %w", err)
	}
	progress := map[string]types.Progress{}
	if err := json.Unmarshal(data, &progress); err != nil {
		return nil, fmt.Errorf("parse progress file: %w", err)
	}
	return progress, nil
}

func (f *Files) SaveProgress(progress map[string]types.Progress) error {
	data, err := json.MarshalIndent(progress, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}
	if err := os.WriteFile(f.progressPath, data, 0o644); err != nil {
		return fmt.Errorf("write progress file: %w", err)
	}
	return nil
}

// CreateSampleWords writes a starter word list so a first run has something
// to show.
func (f *Files) CreateSampleWords() error {
	file, err := os.Create(f.wordsPath)
	if err != nil {
		return fmt.Errorf("create words file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	rows := [][]string{
		{"word", "meaning", "phonetic", "example"},
		{"apple", "n. 苹果", "/ˈæpəl/", "I like to eat an apple every day."},
		{"beautiful", "adj. 美丽的，漂亮的", "/ˈbjuːtɪfəl/", "She is a beautiful girl."},
		{"computer", "n. 计算机，电脑", "/kəmˈpjuːtər/", "I use my computer for work and entertainment."},
		{"difficult", "adj. 困难的，艰难的", "/ˈdɪfɪkəlt/", "This math problem is very difficult."},
		{"environment", "n. 环境", "/ɪnˈvaɪrənmənt/", "We should protect our environment."},
		{"fantastic", "adj. 极好的，了不起的", "/fænˈtæstɪk/", "The movie was fantastic!"},
		{"government", "n. 政府", "/ˈɡʌvərnmənt/", "The government made a new policy."},
		{"happiness", "n. 幸福，快乐", "/ˈhæpɪnəs/", "Money cannot buy happiness."},
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write sample words: %w", err)
	}
	w.Flush()
	return w.Error()
}

// NotePath returns where the AI note for term lives. Path separators in
// the term are flattened so a malformed CSV row cannot write outside the
// notes directory.
func (f *Files) NotePath(term string) string {
	return filepath.Join(f.notesDir, noteFileName(term)+".md")
}

func noteFileName(term string) string {
	term = strings.ReplaceAll(term, "/", "_")
	return strings.ReplaceAll(term, "\\", "_")
}

func (f *Files) NoteExists(term string) bool {
	info, err := os.Stat(f.NotePath(term))
	return err == nil && !info.IsDir()
}

func (f *Files) SaveNote(term, text string) error {
	if err := os.MkdirAll(f.notesDir, 0o755); err != nil {
		return fmt.Errorf("create notes directory: %w", err)
	}
	if err := os.WriteFile(f.NotePath(term), []byte(text), 0o644); err != nil {
		return fmt.Errorf("write note for %q: %w", term, err)
	}
	return nil
}

func (f *Files) LoadNote(term string) (string, error) {
	data, err := os.ReadFile(f.NotePath(term))
	if err != nil {
		return "", fmt.Errorf("read note for %q: %w", term, err)
	}
	return string(data), nil
}
