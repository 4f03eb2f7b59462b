// Package cli implements the textvec command-line interface.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/happyhackingspace/textvec/internal/config"
	"github.com/happyhackingspace/textvec/internal/corpus"
)

// CLI encapsulates the command-line interface with its dependencies.
type CLI struct {
	version     string
	verbose     bool
	silent      bool
	configPath  string
	initialized bool
	rootCmd     *cobra.Command
}

// New creates a new CLI instance with the given version string.
func New(version string) *CLI {
	c := &CLI{version: version}
	c.setupCommands()
	return c
}

// setupCommands initializes all CLI commands and their configurations.
func (c *CLI) setupCommands() {
	c.rootCmd = &cobra.Command{
		Use:     "textvec",
		Short:   "Bag-of-words and TF-IDF text vectorization",
		Version: c.version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			c.initApp()
		},
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	c.rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable verbose/debug output")
	c.rootCmd.PersistentFlags().BoolVarP(&c.silent, "silent", "s", false, "Suppress all logging")
	c.rootCmd.PersistentFlags().StringVar(&c.configPath, "config", "textvec.yaml", "Path to config file")

	c.rootCmd.AddCommand(c.newVocabCommand())
	c.rootCmd.AddCommand(c.newVectorizeCommand())
	c.rootCmd.AddCommand(c.newSimilarCommand())
	c.rootCmd.AddCommand(c.newUpCommand())
}

// Run executes the CLI and returns any error.
func (c *CLI) Run() error {
	return c.rootCmd.Execute()
}

// initApp initializes logging.
func (c *CLI) initApp() {
	if c.initialized {
		return
	}
	c.initialized = true

	level := slog.LevelInfo
	if c.verbose {
		level = slog.LevelDebug
	}
	if c.silent {
		level = slog.Level(100)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}

// loadConfig reads the configured YAML file, falling back to defaults when
// the file does not exist.
func (c *CLI) loadConfig() (*config.Config, error) {
	return config.Load(c.configPath)
}

// newLoader builds a corpus loader for the given folder from config.
func newLoader(folder string, cfg *config.Config) *corpus.Loader {
	opts := corpus.Options{
		Includes:  cfg.Corpus.Includes,
		Excludes:  cfg.Corpus.Excludes,
		Lines:     cfg.Corpus.Lines,
		Lowercase: cfg.Corpus.Lowercase,
	}
	return corpus.NewLoader(folder, opts)
}
