// Package store persists simulation configurations as serialized YAML blobs
// under a fixed namespace key. Schema migration is applied on every load so
// callers always receive a current-schema configuration; the engine itself
// performs no migration or defaulting.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/revenuex/revenue-forecast/internal/config"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Store is a file-backed key-value blob store. Each key maps to one YAML
// file inside the store directory.
type Store struct {
	dir    string
	logger *zap.Logger
}

// New creates a store rooted at dir with the given logger.
// If logger is nil, it will use a no-op logger to prevent panics.
func New(dir string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{dir: dir, logger: logger}
}

// Save serializes the configuration and writes it under key.
func (s *Store) Save(key string, conf *config.Configuration) error {
	if conf == nil {
		return fmt.Errorf("cannot save nil configuration")
	}

	data, err := yaml.Marshal(conf)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create store directory %s: %w", s.dir, err)
	}

	path := s.path(key)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write configuration blob %s: %w", path, err)
	}

	s.logger.Debug("configuration saved",
		zap.String("op", "store.Save"),
		zap.String("key", key),
		zap.Int("bytes", len(data)),
	)
	return nil
}

// Load reads and migrates the configuration stored under key. A missing or
// unreadable blob yields the default configuration rather than an error,
// matching first-run behavior; decode failures are logged as warnings.
func (s *Store) Load(key string) *config.Configuration {
	path := s.path(key)

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("failed to read configuration blob, falling back to defaults",
				zap.String("op", "store.Load"),
				zap.String("key", key),
				zap.Error(err),
			)
		}
		return config.DefaultConfiguration()
	}

	var conf config.Configuration
	if err := yaml.Unmarshal(data, &conf); err != nil {
		s.logger.Warn("failed to decode configuration blob, falling back to defaults",
			zap.String("op", "store.Load"),
			zap.String("key", key),
			zap.Error(err),
		)
		return config.DefaultConfiguration()
	}

	// Blobs written by earlier schema versions are upgraded in place here.
	conf.ApplyDefaults()
	return &conf
}

// Delete removes the blob stored under key; deleting a missing key is a no-op.
func (s *Store) Delete(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete configuration blob for %s: %w", key, err)
	}
	return nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".yaml")
}
