// Package fs provides file-based storage for crawl results.
package fs

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
)

// ListStore writes a list of URLs to a file with atomic update semantics.
// URLs are saved to a temporary file next to the target, then moved into
// place on Commit, so an interrupted crawl never leaves a partial list.
type ListStore struct {
	path string
}

// NewListStore creates a new ListStore that writes to path.
func NewListStore(path string) *ListStore {
	return &ListStore{path: path}
}

func (s *ListStore) tempPath() string {
	return s.path + ".tmp"
}

// Path returns the final location of the list.
func (s *ListStore) Path() string {
	return s.path
}

// Save writes urls, one per line, to the temporary file.
// It replaces anything saved earlier.
func (s *ListStore) Save(ctx context.Context, urls []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	f, err := os.Create(s.tempPath())
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	for _, u := range urls {
		if _, err := w.WriteString(u + "\n"); err != nil {
			f.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Commit atomically replaces the target file with the saved list.
func (s *ListStore) Commit() error {
	return os.Rename(s.tempPath(), s.path)
}

// Abort discards the saved list.
func (s *ListStore) Abort() error {
	err := os.Remove(s.tempPath())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
