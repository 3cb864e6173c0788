package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gobwas/glob"
	"github.com/spf13/cobra"

	"github.com/jhlucc/vocab-tui/internal/ai"
	"github.com/jhlucc/vocab-tui/internal/log"
	"github.com/jhlucc/vocab-tui/internal/storage"
)

func NewBatchCmd() *cobra.Command {
	var (
		filter string
		limit  int
		all    bool
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Generate notes for mistake-set words that have none yet",
		Long: "Generates an AI note for each word in the mistake set (starred or ever\n" +
			"missed) that has no note. Already-covered words are skipped, so reruns\n" +
			"only do the remaining work. Ctrl-C stops after the word in flight.",
		RunE: func(cmd *cobra.Command, args []string) error {
			files := storage.New(cfg.Files.Words, cfg.Files.Progress, cfg.Files.Notes)
			words, err := loadStore(files)
			if err != nil {
				return err
			}

			var match glob.Glob
			if filter != "" {
				match, err = glob.Compile(filter)
				if err != nil {
					return fmt.Errorf("bad --filter pattern: %w", err)
				}
			}

			candidates := words.MistakeSet()
			if all {
				candidates = words.Terms()
			}
			var pending []string
			for _, term := range candidates {
				if match != nil && !match.Match(term) {
					continue
				}
				if files.NoteExists(term) {
					continue
				}
				pending = append(pending, term)
			}
			if limit > 0 && len(pending) > limit {
				pending = pending[:limit]
			}
			if len(pending) == 0 {
				fmt.Println("nothing to do: every matching word already has a note")
				return nil
			}
			fmt.Printf("generating notes for %d words\n", len(pending))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			client := ai.NewClient()
			opts := ai.Options{
				Model:         cfg.AI.Model,
				Sentences:     cfg.AI.Sentences,
				Search:        ai.SearchMode(cfg.AI.Search),
				MaxWebResults: cfg.AI.MaxWebResults,
			}

			done, failed := 0, 0
			for i, term := range pending {
				// cancellation lands between items, never inside one
				if ctx.Err() != nil {
					fmt.Printf("\ninterrupted: %d done, %d failed, %d left\n",
						done, failed, len(pending)-i)
					return nil
				}

				fmt.Printf("[%d/%d] %s… ", i+1, len(pending), term)
				itemCtx, cancel := context.WithTimeout(ctx,
					time.Duration(cfg.AI.TimeoutSeconds)*time.Second)
				md, err := client.Explain(itemCtx, term, opts)
				cancel()
				if err != nil {
					failed++
					fmt.Println("failed")
					log.Warn("batch: %s: %v", term, err)
					continue
				}
				if err := files.SaveNote(term, md); err != nil {
					failed++
					fmt.Println("not saved")
					log.Warn("batch: saving %s: %v", term, err)
					continue
				}
				done++
				fmt.Println("ok")
			}

			fmt.Printf("finished: %d done, %d failed\n", done, failed)
			return nil
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "only words matching this glob, e.g. 'a*'")
	cmd.Flags().IntVar(&limit, "limit", 0, "stop after this many generations")
	cmd.Flags().BoolVar(&all, "all", false, "cover the whole word list, not just the mistake set")

	return cmd
}
