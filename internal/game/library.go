package game

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
	"go.uber.org/zap"

	"github.com/gamedock/gamedock/internal/infrastructure/logging"
)

// Library seeds the manager with prebuilt games from a directory tree.
type Library struct {
	path string
	log  *logging.Logger
}

// NewLibrary creates a seeder rooted at path.
func NewLibrary(path string, log *logging.Logger) *Library {
	return &Library{path: path, log: log}
}

// Seed walks the library directory and loads every HTML document as a
// non-generated game. Unreadable files are skipped with a warning; the
// walk itself only fails if the root is unusable.
func (l *Library) Seed(m *Manager) (int, error) {
	if _, err := os.Stat(l.path); err != nil {
		return 0, err
	}

	loaded := 0
	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, l.path, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(l.path, p)
		if relErr != nil {
			return nil
		}
		if ok, _ := doublestar.Match("**/*.html", filepath.ToSlash(rel)); !ok {
			return nil
		}

		data, readErr := os.ReadFile(p)
		if readErr != nil {
			l.log.Warn("skipping unreadable library game", zap.String("path", p), zap.Error(readErr))
			return nil
		}

		title := strings.TrimSuffix(d.Name(), filepath.Ext(d.Name()))
		if _, _, loadErr := m.Load(GameData{
			HTML: string(data),
			Meta: Metadata{Title: title, Type: "library", Generated: false},
		}); loadErr != nil {
			l.log.Warn("failed to load library game", zap.String("path", p), zap.Error(loadErr))
			return nil
		}
		loaded++
		return nil
	})
	if err != nil {
		return loaded, err
	}

	l.log.Info("library seeded", zap.String("path", l.path), zap.Int("games", loaded))
	return loaded, nil
}
