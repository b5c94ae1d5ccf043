package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/comicwatch/internal/domain"
)

// FileStore keeps each snapshot as a plain text file under a root directory.
type FileStore struct {
	log  zerolog.Logger
	root string
}

var _ domain.SnapshotStore = (*FileStore)(nil)

// NewFileStore creates a new file-based snapshot store
func NewFileStore(log zerolog.Logger, root string) *FileStore {
	return &FileStore{
		log:  log.With().Str("module", "storage").Str("backend", "file").Logger(),
		root: root,
	}
}

func (s *FileStore) path(key string) (string, error) {
	clean := filepath.Clean(key)
	if key == "" || filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid snapshot key %q", key)
	}
	return filepath.Join(s.root, clean), nil
}

// Exists reports whether a regular file is stored under key.
func (s *FileStore) Exists(ctx context.Context, key string) (bool, error) {
	path, err := s.path(key)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, "failed to stat file %s", path)
	}
	if info.IsDir() {
		return false, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	return true, nil
}

// Get retrieves the snapshot body stored under key
func (s *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}

	body, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(domain.ErrSnapshotNotFound, path)
		}
		return nil, errors.Wrapf(err, "failed to read file %s", path)
	}

	return body, nil
}

// Put replaces the snapshot under key. The body is written to a temporary
// file first so a crash never leaves a truncated snapshot behind.
func (s *FileStore) Put(ctx context.Context, key string, body []byte) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "failed to create directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, ".snapshot-*")
	if err != nil {
		return errors.Wrapf(err, "failed to create temp file in %s", dir)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "failed to write to file %s", tmp.Name())
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "failed to close file %s", tmp.Name())
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrapf(err, "failed to move snapshot into %s", path)
	}

	s.log.Debug().Str("path", path).Int("bytes", len(body)).Msg("stored snapshot")
	return nil
}
