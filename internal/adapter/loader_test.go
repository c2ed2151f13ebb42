package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	m "github.com/pegstep/pegstep/internal/model"
)

func writeFile(t *testing.T, dir, name, content string) m.Path {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return m.Path(path)
}

func TestLocalSourceLoader_LoadsBothFiles(t *testing.T) {
	dir := t.TempDir()
	grammarPath := writeFile(t, dir, "grammar.peg", "a = { \"x\" }\n")
	inputPath := writeFile(t, dir, "input.txt", "xxx")

	loader := NewLocalSourceLoader()

	grammarText, inputText, err := loader.Load(grammarPath, inputPath)
	require.NoError(t, err)
	require.Equal(t, "a = { \"x\" }\n", grammarText)
	require.Equal(t, "xxx", inputText)
}

func TestLocalSourceLoader_MissingGrammar(t *testing.T) {
	dir := t.TempDir()
	inputPath := writeFile(t, dir, "input.txt", "xxx")

	loader := NewLocalSourceLoader()

	_, _, err := loader.Load(m.Path(filepath.Join(dir, "absent.peg")), inputPath)
	require.Error(t, err)
	require.Contains(t, err.Error(), "loading grammar")
}

func TestLocalSourceLoader_MissingInput(t *testing.T) {
	dir := t.TempDir()
	grammarPath := writeFile(t, dir, "grammar.peg", "a = { \"x\" }\n")

	loader := NewLocalSourceLoader()

	_, _, err := loader.Load(grammarPath, m.Path(filepath.Join(dir, "absent.txt")))
	require.Error(t, err)
	require.Contains(t, err.Error(), "loading input")
}

func TestLocalSourceLoader_LoadGrammarOnly(t *testing.T) {
	dir := t.TempDir()
	grammarPath := writeFile(t, dir, "grammar.peg", "a = { \"x\" }\n")

	loader := NewLocalSourceLoader()

	grammarText, err := loader.LoadGrammar(grammarPath)
	require.NoError(t, err)
	require.Equal(t, "a = { \"x\" }\n", grammarText)
}
