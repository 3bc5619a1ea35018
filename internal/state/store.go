// Package state persists the address book between runs.
package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/smileynet/contactbook/internal/contact"
)

// Store loads and saves a whole address book.
type Store interface {
	Load(ctx context.Context) (*contact.Book, error)
	Save(ctx context.Context, book *contact.Book) error
}

// Compile-time checks.
var (
	_ Store = (*FileStore)(nil)
	_ Store = (*RedisStore)(nil)
)

// FileStore persists the book as a JSON document at a single path.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore backed by the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Save writes the book to a temporary file next to the target and renames it
// into place, creating the parent directory if needed.
func (s *FileStore) Save(_ context.Context, book *contact.Book) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("state: creating directory: %w", err)
	}

	data, err := json.MarshalIndent(book, "", "  ")
	if err != nil {
		return fmt.Errorf("state: marshaling: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("state: creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("state: writing %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("state: writing %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("state: writing %s: %w", s.path, err)
	}
	return nil
}

// Load reads the book. A missing or empty file yields an empty book.
func (s *FileStore) Load(_ context.Context) (*contact.Book, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return contact.NewBook(), nil
		}
		return nil, fmt.Errorf("state: reading %s: %w", s.path, err)
	}
	return decode(data, s.path)
}

// decode parses a serialized book; src names the source in errors.
func decode(data []byte, src string) (*contact.Book, error) {
	book := contact.NewBook()
	if len(data) == 0 {
		return book, nil
	}
	if err := json.Unmarshal(data, book); err != nil {
		return nil, fmt.Errorf("state: parsing %s: %w", src, err)
	}
	return book, nil
}
