// Package cmudict loads lexicons in the CMU Pronouncing Dictionary format into a poet.Dictionary.
package cmudict

import (
	"bufio"
	"fmt"
	"github.com/gissleh/poet"
	"io"
	"os"
	"strings"
)

type Options struct {
	// SkipMalformed counts bad lines and moves on instead of failing the load. Hand-written user
	// dictionaries are loaded this way.
	SkipMalformed bool
}

type Stats struct {
	TotalLines   int `json:"totalLines"`
	CommentLines int `json:"commentLines"`
	ParsedLines  int `json:"parsedLines"`
	SkippedLines int `json:"skippedLines"`
}

// LineError is a malformed lexicon line, with the 1-based line number it was found on.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Load parses every line of the reader and inserts the entries into the dictionary. Nothing is
// inserted if it fails.
func Load(r io.Reader, dict *poet.Dictionary, opts Options) (Stats, error) {
	stats := Stats{}
	entries := make([]poet.Entry, 0, 4096)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		stats.TotalLines += 1
		line := strings.TrimSpace(scanner.Text())

		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ";;;") {
			stats.CommentLines += 1
			continue
		}

		entry, err := poet.ParseEntry(line)
		if err != nil {
			if opts.SkipMalformed {
				stats.SkippedLines += 1
				continue
			}

			return stats, &LineError{Line: stats.TotalLines, Err: err}
		}

		stats.ParsedLines += 1
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("scanner error: %w", err)
	}

	dict.InsertAll(entries)

	return stats, nil
}

func LoadFile(path string, dict *poet.Dictionary, opts Options) (Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return Stats{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return Load(f, dict, opts)
}
