package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jhlucc/vocab-tui/internal/ai"
	"github.com/jhlucc/vocab-tui/internal/log"
	"github.com/jhlucc/vocab-tui/internal/storage"
	"github.com/jhlucc/vocab-tui/internal/store"
	"github.com/jhlucc/vocab-tui/internal/tui"
	"github.com/jhlucc/vocab-tui/internal/watch"
)

func NewLearnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "learn",
		Short: "Start the interactive trainer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLearn()
		},
	}
}

// loadStore opens the word file (creating a sample list on first run) and
// merges saved progress.
func loadStore(files *storage.Files) (*store.Store, error) {
	if !files.WordsFileExists() {
		if err := files.CreateSampleWords(); err != nil {
			return nil, fmt.Errorf("creating sample word list: %w", err)
		}
		fmt.Printf("created a sample word list at %s\n", files.WordsPath())
	}
	entries, err := files.LoadWords()
	if err != nil {
		return nil, err
	}
	saved, err := files.LoadProgress()
	if err != nil {
		log.Warn("loading progress: %v, starting fresh", err)
		saved = nil
	}
	return store.New(entries, saved), nil
}

func runLearn() error {
	if closer, err := log.ToFile(cfg.Files.Log); err == nil {
		defer closer.Close()
	}

	files := storage.New(cfg.Files.Words, cfg.Files.Progress, cfg.Files.Notes)
	words, err := loadStore(files)
	if err != nil {
		return err
	}

	model := tui.New(cfg, words, tui.Deps{
		Explainer: ai.NewClient(),
		Notes:     files,
		Saver:     files,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())

	if cfg.Watch.Enabled {
		w, err := watch.New(files.WordsPath(), func() {
			entries, err := files.LoadWords()
			if err != nil {
				log.Warn("reloading words: %v", err)
				return
			}
			p.Send(tui.WordsReloadedMsg{Entries: entries})
		})
		if err != nil {
			log.Warn("file watching disabled: %v", err)
		} else {
			defer w.Stop()
		}
	}

	_, err = p.Run()
	return err
}
