// Package corpus loads training documents from the filesystem.
package corpus

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/happyhackingspace/textvec/internal/textutil"
)

// Document is a single corpus entry.
type Document struct {
	Path string
	Text string
}

// Options controls document selection and cleanup.
type Options struct {
	Includes  []string // doublestar patterns relative to the root
	Excludes  []string
	Lines     bool // treat each non-empty file line as its own document
	Lowercase bool // lowercase and collapse whitespace before vectorization
}

// DefaultOptions returns loader defaults: every regular file, no cleanup.
func DefaultOptions() Options {
	return Options{Includes: []string{"**/*"}}
}

// Loader reads documents from a folder tree.
type Loader struct {
	root string
	opts Options
}

// NewLoader creates a Loader rooted at folder.
func NewLoader(root string, opts Options) *Loader {
	if len(opts.Includes) == 0 {
		opts.Includes = []string{"**/*"}
	}
	return &Loader{root: root, opts: opts}
}

// Load walks the root folder and returns the selected documents in path
// order. HTML files are reduced to their visible text; everything else is
// read verbatim. Unreadable files are skipped with a warning.
func (l *Loader) Load() ([]Document, error) {
	root, err := filepath.Abs(l.root)
	if err != nil {
		return nil, fmt.Errorf("resolve corpus root: %w", err)
	}

	var docs []Document
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if info.IsDir() {
			if rel != "." && l.excluded(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}
		if !l.included(rel) || l.excluded(rel) {
			return nil
		}

		fileDocs, err := l.readFile(path)
		if err != nil {
			slog.Warn("Skipping unreadable file", "path", path, "error", err)
			return nil
		}
		docs = append(docs, fileDocs...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk corpus folder: %w", err)
	}
	return docs, nil
}

// Texts returns just the document texts, in Load order.
func (l *Loader) Texts() ([]string, error) {
	docs, err := l.Load()
	if err != nil {
		return nil, err
	}
	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Text
	}
	return texts, nil
}

func (l *Loader) readFile(path string) ([]Document, error) {
	if l.opts.Lines {
		return l.readLines(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text := string(data)
	if isHTMLPath(path) {
		text, err = ExtractText(strings.NewReader(text))
		if err != nil {
			return nil, err
		}
	}
	return []Document{{Path: path, Text: l.clean(text)}}, nil
}

// readLines treats each non-empty line as a document (one-text-per-line
// dataset files). HTML extraction does not apply in this mode.
func (l *Loader) readLines(path string) ([]Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var docs []Document
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		docs = append(docs, Document{Path: path, Text: l.clean(line)})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

func (l *Loader) clean(text string) string {
	if l.opts.Lowercase {
		return strings.TrimSpace(textutil.Normalize(text))
	}
	return text
}

func (l *Loader) included(rel string) bool {
	for _, pattern := range l.opts.Includes {
		if ok, err := doublestar.Match(pattern, filepath.ToSlash(rel)); err == nil && ok {
			return true
		}
	}
	return false
}

func (l *Loader) excluded(rel string) bool {
	for _, pattern := range l.opts.Excludes {
		if ok, err := doublestar.Match(pattern, filepath.ToSlash(rel)); err == nil && ok {
			return true
		}
	}
	return false
}

func isHTMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	}
	return false
}
