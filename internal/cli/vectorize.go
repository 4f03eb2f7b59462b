package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/happyhackingspace/textvec"
	"github.com/happyhackingspace/textvec/internal/config"
)

func (c *CLI) newVectorizeCommand() *cobra.Command {
	var (
		method    string
		k         int
		normalize bool
		inputPath string
		output    string
		format    string
	)

	cmd := &cobra.Command{
		Use:   "vectorize <corpus-folder>",
		Short: "Fit a vectorizer on a corpus and write the feature matrix",
		Args:  cobra.ExactArgs(1),
		Example: `  textvec vectorize ./docs --method tfidf --k 500 --normalize -o matrix.csv
  textvec vectorize ./docs --method bow --k 100 --format json
  textvec vectorize ./train --input ./test -o test.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			applyVectorizerFlags(cmd, cfg, method, k, normalize, format)
			if err := cfg.Validate(); err != nil {
				return err
			}

			texts, err := newLoader(args[0], cfg).Texts()
			if err != nil {
				return err
			}
			slog.Info("Corpus loaded", "documents", len(texts))

			tr := newTransformer(cfg)
			start := time.Now()
			tr.Fit(texts)
			slog.Debug("Vectorizer fitted", "duration", time.Since(start))

			batch := texts
			if inputPath != "" {
				batch, err = newLoader(inputPath, cfg).Texts()
				if err != nil {
					return err
				}
				slog.Info("Input batch loaded", "documents", len(batch))
			}

			out := os.Stdout
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create output file: %w", err)
				}
				defer func() { _ = f.Close() }()
				out = f
			}

			var bar *progressbar.ProgressBar
			if output != "" && !c.silent {
				bar = progressbar.NewOptions(len(batch),
					progressbar.OptionSetDescription("Vectorizing"),
					progressbar.OptionSetWidth(40),
					progressbar.OptionShowCount(),
					progressbar.OptionSetWriter(os.Stderr),
					progressbar.OptionOnCompletion(func() {
						fmt.Fprintln(os.Stderr)
					}),
				)
			}

			if err := writeMatrix(out, tr, batch, cfg, bar); err != nil {
				return err
			}
			if output != "" {
				slog.Info("Matrix written", "path", output, "rows", len(batch))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&method, "method", "", "Vectorizer: bow or tfidf (default from config)")
	cmd.Flags().IntVar(&k, "k", -1, "Max vocabulary size, 0 = unbounded tfidf (default from config)")
	cmd.Flags().BoolVar(&normalize, "normalize", false, "L2-normalize each tfidf row")
	cmd.Flags().StringVar(&inputPath, "input", "", "Transform this folder instead of the fitting corpus")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVar(&format, "format", "", "Output format: csv or json (default from config)")
	return cmd
}

// applyVectorizerFlags overlays explicitly set flags onto the config.
func applyVectorizerFlags(cmd *cobra.Command, cfg *config.Config, method string, k int, normalize bool, format string) {
	if method != "" {
		cfg.Vectorizer.Method = method
	}
	if k >= 0 {
		cfg.Vectorizer.K = k
	}
	if cmd.Flags().Changed("normalize") {
		cfg.Vectorizer.Normalize = normalize
	}
	if format != "" {
		cfg.Output.Format = format
	}
}

func newTransformer(cfg *config.Config) textvec.Transformer {
	if cfg.Vectorizer.Method == "bow" {
		return textvec.NewBagOfWords(cfg.Vectorizer.K)
	}
	return textvec.NewTfIdf(cfg.Vectorizer.K, cfg.Vectorizer.Normalize)
}

// writeMatrix transforms texts one at a time and streams rows to w, so large
// corpora do not hold the whole matrix in memory.
func writeMatrix(w io.Writer, tr textvec.Transformer, texts []string, cfg *config.Config, bar *progressbar.ProgressBar) error {
	switch cfg.Output.Format {
	case "json":
		return writeJSONMatrix(w, tr, texts, bar)
	default:
		return writeCSVMatrix(w, tr, texts, cfg.Output.Precision, bar)
	}
}

func writeCSVMatrix(w io.Writer, tr textvec.Transformer, texts []string, precision int, bar *progressbar.ProgressBar) error {
	cw := csv.NewWriter(w)
	record := []string{}
	for _, text := range texts {
		rows, err := tr.Transform([]string{text})
		if err != nil {
			return err
		}
		record = record[:0]
		for _, x := range rows[0] {
			record = append(record, strconv.FormatFloat(float64(x), 'f', precision, 32))
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeJSONMatrix(w io.Writer, tr textvec.Transformer, texts []string, bar *progressbar.ProgressBar) error {
	matrix := make([][]float32, 0, len(texts))
	for _, text := range texts {
		rows, err := tr.Transform([]string{text})
		if err != nil {
			return err
		}
		matrix = append(matrix, rows[0])
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	output, err := json.MarshalIndent(matrix, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}
