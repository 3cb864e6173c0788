package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhlucc/vocab-tui/internal/ai"
	"github.com/jhlucc/vocab-tui/internal/storage"
)

func NewExplainCmd() *cobra.Command {
	var (
		sentences int
		model     string
		search    string
		plain     bool
		save      bool
	)

	cmd := &cobra.Command{
		Use:   "explain <word>",
		Short: "Generate a study note for one word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := args[0]

			opts := ai.Options{
				Model:         cfg.AI.Model,
				Sentences:     cfg.AI.Sentences,
				Search:        ai.SearchMode(cfg.AI.Search),
				MaxWebResults: cfg.AI.MaxWebResults,
				Plain:         plain,
			}
			if model != "" {
				opts.Model = model
			}
			if sentences > 0 {
				opts.Sentences = sentences
			}
			if search != "" {
				opts.Search = ai.SearchMode(search)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(),
				time.Duration(cfg.AI.TimeoutSeconds)*time.Second)
			defer cancel()

			md, err := ai.NewClient().Explain(ctx, term, opts)
			if err != nil {
				return err
			}
			fmt.Println(md)

			if save {
				files := storage.New(cfg.Files.Words, cfg.Files.Progress, cfg.Files.Notes)
				if err := files.SaveNote(term, md); err != nil {
					return fmt.Errorf("saving note: %w", err)
				}
				fmt.Printf("saved to %s\n", files.NotePath(term))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&sentences, "sentences", 0, "example sentences to request (default from config)")
	cmd.Flags().StringVar(&model, "model", "", "model name (default from config)")
	cmd.Flags().StringVar(&search, "search", "", "web search mode: auto, tavily or off")
	cmd.Flags().BoolVar(&plain, "plain", false, "strip markdown headings")
	cmd.Flags().BoolVar(&save, "save", false, "also store the note in the notes directory")

	return cmd
}
