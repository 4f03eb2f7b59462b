package cli

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/happyhackingspace/textvec"
)

type scoredDoc struct {
	path  string
	score float64
}

func (c *CLI) newSimilarCommand() *cobra.Command {
	var topN int
	var k int

	cmd := &cobra.Command{
		Use:   "similar <query> <corpus-folder>",
		Short: "Rank corpus documents by TF-IDF cosine similarity to a query",
		Args:  cobra.ExactArgs(2),
		Example: `  textvec similar "connection timeout error" ./docs
  textvec similar "install guide" ./docs --top 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			query, folder := args[0], args[1]

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if k >= 0 {
				cfg.Vectorizer.K = k
			}

			docs, err := newLoader(folder, cfg).Load()
			if err != nil {
				return err
			}
			if len(docs) == 0 {
				fmt.Println("No documents found.")
				return nil
			}

			texts := make([]string, len(docs))
			for i, d := range docs {
				texts[i] = d.Text
			}

			start := time.Now()
			v := textvec.NewTfIdf(cfg.Vectorizer.K, true)
			rows, err := textvec.FitTransform(v, texts)
			if err != nil {
				return err
			}
			queryRows, err := v.Transform([]string{query})
			if err != nil {
				return err
			}
			slog.Debug("Vectors computed", "documents", len(docs), "terms", v.VocabSize(), "duration", time.Since(start))

			results := make([]scoredDoc, len(docs))
			for i, row := range rows {
				results[i] = scoredDoc{path: docs[i].Path, score: cosine(queryRows[0], row)}
			}
			sort.Slice(results, func(i, j int) bool {
				return results[i].score > results[j].score
			})
			if len(results) > topN {
				results = results[:topN]
			}

			for _, r := range results {
				fmt.Printf("%.4f  %s\n", r.score, r.path)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&topN, "top", 10, "Number of results to show")
	cmd.Flags().IntVar(&k, "k", -1, "Max TF-IDF table size, 0 = unbounded (default from config)")
	return cmd
}

// cosine computes cosine similarity between two equal-length vectors.
// Zero vectors score 0.
func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
