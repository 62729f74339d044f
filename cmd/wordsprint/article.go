package main

import (
	"github.com/spf13/cobra"

	"github.com/heartmarshall/wordsprint/internal/app"
	"github.com/heartmarshall/wordsprint/internal/config"
	"github.com/heartmarshall/wordsprint/internal/wordlist"
)

// defaultArticleWords is the selection size when --count is not given.
const defaultArticleWords = 10

func newArticleCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "article FILE",
		Short: "Generate a reading passage from a random selection of a word list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := app.NewLogger(cfg.Log)

			words, err := readWordList(wordlist.NewParser(logger), args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("count") {
				count = min(defaultArticleWords, len(words))
			}

			result, err := app.NewArticleService(cfg.LLM, logger).Generate(cmd.Context(), words, count)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", defaultArticleWords, "number of words to select")
	return cmd
}
