package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamedock/gamedock/internal/infrastructure/logging"
)

func TestLibrarySeed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "puzzle"), 0o755))

	writeFile(t, filepath.Join(dir, "snake.html"), "<html><body>snake</body></html>")
	writeFile(t, filepath.Join(dir, "puzzle", "match.html"), "<html><body>match</body></html>")
	writeFile(t, filepath.Join(dir, "notes.txt"), "not a game")

	m := newTestManager()
	loaded, err := NewLibrary(dir, logging.NewNop()).Seed(m)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded)

	titles := map[string]bool{}
	for _, s := range m.List() {
		titles[s.Meta.Title] = true
		assert.Equal(t, "library", s.Meta.Type)
		assert.False(t, s.Meta.Generated)
	}
	assert.True(t, titles["snake"])
	assert.True(t, titles["match"])
}

func TestLibrarySeedMissingRoot(t *testing.T) {
	m := newTestManager()
	_, err := NewLibrary(filepath.Join(t.TempDir(), "absent"), logging.NewNop()).Seed(m)
	assert.Error(t, err)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
