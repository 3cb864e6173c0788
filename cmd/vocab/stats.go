package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhlucc/vocab-tui/internal/storage"
)

func NewStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print learning statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			files := storage.New(cfg.Files.Words, cfg.Files.Progress, cfg.Files.Notes)
			words, err := loadStore(files)
			if err != nil {
				return err
			}

			st := words.Stats()
			fmt.Printf("words:   %d\n", st.Total)
			fmt.Printf("seen:    %d\n", st.Seen)
			fmt.Printf("known:   %d\n", st.Known)
			fmt.Printf("missed:  %d\n", st.Unknown)
			fmt.Printf("starred: %d\n", st.Starred)

			if mistakes := words.MistakeSet(); len(mistakes) > 0 {
				fmt.Println("\nreview list:")
				for _, term := range mistakes {
					p := words.Progress(term)
					mark := " "
					if p.Starred {
						mark = "★"
					}
					fmt.Printf("  %s %-20s missed %d\n", mark, term, p.Unknown)
				}
			}
			return nil
		},
	}
}
