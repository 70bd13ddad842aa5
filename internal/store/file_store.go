// Package store persists the catalog as a single JSON document.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"bookshelf/internal/book"
)

// document is the on-disk layout: {"books": [...]}.
type document struct {
	Books []book.Book `json:"books"`
}

// FileStore keeps the catalog in one JSON file that is rewritten in full on
// every append. Appends are serialized, and reads never see a partial file
// because writes go to a temp file that is renamed over the original.
//
// The lock only covers this process; two processes sharing a file can
// still lose each other's appends.
type FileStore struct {
	path      string
	mu        sync.RWMutex
	writeFile func(path string, data []byte) error
}

// NewFileStore returns a store backed by path. The file does not have to
// exist yet; a missing file is an empty catalog.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, writeFile: writeFileAtomic}
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

// ListAll returns every record in storage order.
func (s *FileStore) ListAll(ctx context.Context) ([]book.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return doc.Books, nil
}

// Append assigns the next id (max existing + 1, starting at 1), adds the
// record to the end of the catalog and rewrites the file. Nothing changes
// on disk when the write fails.
func (s *FileStore) Append(ctx context.Context, c book.Candidate) (book.Book, error) {
	added, err := s.AppendAll(ctx, []book.Candidate{c})
	if err != nil {
		return book.Book{}, err
	}
	return added[0], nil
}

// AppendAll adds every candidate in order with consecutive ids and writes
// the file once. Either all of them are stored or none are.
func (s *FileStore) AppendAll(ctx context.Context, cs []book.Candidate) ([]book.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return s.commit(doc, cs)
}

// ReplaceAll discards the current catalog and stores cs with ids starting
// at 1, in a single write. The old catalog stays in place if the write
// fails.
func (s *FileStore) ReplaceAll(ctx context.Context, cs []book.Candidate) ([]book.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commit(document{Books: []book.Book{}}, cs)
}

// commit appends cs to doc and saves it. Callers hold the write lock.
func (s *FileStore) commit(doc document, cs []book.Candidate) ([]book.Book, error) {
	id := nextID(doc.Books)
	added := make([]book.Book, 0, len(cs))
	for _, c := range cs {
		added = append(added, book.Book{
			ID:     id,
			Title:  c.Title,
			Author: c.Author,
			Image:  c.Image,
		})
		id++
	}
	doc.Books = append(doc.Books, added...)

	if err := s.save(doc); err != nil {
		return nil, err
	}
	return added, nil
}

func nextID(books []book.Book) int {
	maxID := 0
	for _, b := range books {
		if b.ID > maxID {
			maxID = b.ID
		}
	}
	return maxID + 1
}

func (s *FileStore) load() (document, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return document{Books: []book.Book{}}, nil
	}
	if err != nil {
		return document{}, &book.StorageError{Op: "read", Path: s.path, Err: err}
	}

	var doc document
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &doc); err != nil {
			return document{}, &book.StorageError{Op: "decode", Path: s.path, Err: err}
		}
	}
	if doc.Books == nil {
		doc.Books = []book.Book{}
	}
	return doc, nil
}

func (s *FileStore) save(doc document) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return &book.StorageError{Op: "encode", Path: s.path, Err: err}
	}

	if err := s.writeFile(s.path, buf.Bytes()); err != nil {
		return &book.StorageError{Op: "write", Path: s.path, Err: err}
	}
	return nil
}

func writeFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
