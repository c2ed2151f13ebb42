// Package adapter provides host-side infrastructure for the debugger:
// loading grammar and input texts and persisting recorded traces.
package adapter

import (
	"fmt"
	"os"

	m "github.com/pegstep/pegstep/internal/model"
	"golang.org/x/sync/errgroup"
)

// SourceLoader loads the grammar and input texts for a session.
type SourceLoader interface {
	Load(grammarPath, inputPath m.Path) (grammar string, input string, err error)
	LoadGrammar(grammarPath m.Path) (string, error)
}

type localSourceLoader struct{}

// NewLocalSourceLoader creates a SourceLoader reading from the local
// file system.
func NewLocalSourceLoader() SourceLoader {
	return &localSourceLoader{}
}

// Load reads both files concurrently and returns their contents.
func (l *localSourceLoader) Load(grammarPath, inputPath m.Path) (string, string, error) {
	var grammarText, inputText string

	var group errgroup.Group

	group.Go(func() error {
		data, err := os.ReadFile(string(grammarPath))
		if err != nil {
			return fmt.Errorf("loading grammar: %w", err)
		}

		grammarText = string(data)

		return nil
	})

	group.Go(func() error {
		data, err := os.ReadFile(string(inputPath))
		if err != nil {
			return fmt.Errorf("loading input: %w", err)
		}

		inputText = string(data)

		return nil
	})

	if err := group.Wait(); err != nil {
		return "", "", err
	}

	return grammarText, inputText, nil
}

// LoadGrammar reads just the grammar file.
func (l *localSourceLoader) LoadGrammar(grammarPath m.Path) (string, error) {
	data, err := os.ReadFile(string(grammarPath))
	if err != nil {
		return "", fmt.Errorf("loading grammar: %w", err)
	}

	return string(data), nil
}
