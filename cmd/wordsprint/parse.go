package main

import (
	"github.com/spf13/cobra"

	"github.com/heartmarshall/wordsprint/internal/app"
	"github.com/heartmarshall/wordsprint/internal/config"
	"github.com/heartmarshall/wordsprint/internal/domain"
	"github.com/heartmarshall/wordsprint/internal/wordlist"
)

type parseOutput struct {
	Count int           `json:"count"`
	Words []domain.Word `json:"words"`
}

func newParseCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Parse a word list and print it as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level := "warn"
			if verbose {
				level = "debug"
			}
			logger := app.NewLogger(config.LogConfig{Level: level, Format: "text"})

			words, err := readWordList(wordlist.NewParser(logger), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), parseOutput{Count: len(words), Words: words})
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log every skipped line")
	return cmd
}
