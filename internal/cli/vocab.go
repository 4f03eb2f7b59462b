package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/happyhackingspace/textvec"
)

type vocabEntry struct {
	Token string `json:"token"`
	Count int    `json:"count"`
}

func (c *CLI) newVocabCommand() *cobra.Command {
	var k int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "vocab <corpus-folder>",
		Short: "Show the most frequent corpus tokens",
		Args:  cobra.ExactArgs(1),
		Example: `  textvec vocab ./docs --k 50
  textvec vocab ./docs --k 100 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			texts, err := newLoader(args[0], cfg).Texts()
			if err != nil {
				return err
			}
			slog.Debug("Corpus loaded", "documents", len(texts))

			start := time.Now()
			bow := textvec.NewBagOfWords(k)
			rows, err := textvec.FitTransform(bow, texts)
			if err != nil {
				return err
			}
			slog.Debug("Vocabulary fitted", "size", bow.VocabSize(), "duration", time.Since(start))

			// Column sums of the count matrix are the corpus-wide counts.
			vocab := bow.Vocabulary()
			entries := make([]vocabEntry, len(vocab))
			for i, token := range vocab {
				total := 0
				for _, row := range rows {
					total += int(row[i])
				}
				entries[i] = vocabEntry{Token: token, Count: total}
			}

			if asJSON {
				output, _ := json.MarshalIndent(entries, "", "  ")
				fmt.Println(string(output))
				return nil
			}
			for _, e := range entries {
				fmt.Printf("%8d  %s\n", e.Count, e.Token)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&k, "k", 100, "Number of most frequent tokens to keep")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
