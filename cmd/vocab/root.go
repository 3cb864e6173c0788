package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhlucc/vocab-tui/internal/config"
	"github.com/jhlucc/vocab-tui/internal/log"
)

var (
	cfgFile string
	debug   bool
	cfg     *config.Config
)

// NewRootCmd creates the root command. Running the binary with no
// subcommand starts the interactive trainer.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "vocab",
		Short:   "A terminal vocabulary trainer",
		Long:    "Vocab drills flashcards and spelling in the terminal,\nwith AI-generated study notes and a boss key.",
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetDebug(debug)

			var err error
			if cfgFile != "" {
				cfg, err = config.LoadConfigFile(cfgFile)
			} else {
				cfg, err = config.LoadConfig()
			}
			if err != nil {
				fmt.Printf("warning: %v, using defaults\n", err)
				cfg = config.New()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLearn()
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/vocab/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "verbose logging")

	rootCmd.AddCommand(NewLearnCmd())
	rootCmd.AddCommand(NewExplainCmd())
	rootCmd.AddCommand(NewBatchCmd())
	rootCmd.AddCommand(NewStatsCmd())

	return rootCmd
}
