// Package store persists the todoterm document to a single JSON file and
// upgrades older file shapes on read.
package store

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/moby/sys/atomicwriter"

	"github.com/ihatemodels/todoterm/internal/todo"
)

// FileName is the default store file, kept in the user's home directory.
const FileName = ".todoterm.json"

// Store is the only component that touches the store file.
type Store struct {
	path   string
	logger *log.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load, upgrade and save events.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Store for the file at path. The file is not touched until
// the first Load or Save.
func New(path string, opts ...Option) *Store {
	s := &Store{
		path:   path,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefaultPath returns ~/.todoterm.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, FileName), nil
}

// Path returns the full path to the store file.
func (s *Store) Path() string {
	return s.path
}

// Exists checks if the store file exists.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Read reads the raw store file.
func (s *Store) Read() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	return data, err
}

// Write replaces the store file with data. The file is written to a
// temporary sibling and renamed into place.
func (s *Store) Write(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	return atomicwriter.WriteFile(s.path, data, 0644)
}

// Load reads the document. A missing file is created with the default
// document. Legacy or incomplete documents are upgraded and written back
// before Load returns.
func (s *Store) Load() (*todo.Document, error) {
	data, err := s.Read()
	if errors.Is(err, ErrNotFound) {
		doc := todo.NewDocument()
		if err := s.Save(doc); err != nil {
			return nil, err
		}
		s.logger.Info("created store", "path", s.path)
		return doc, nil
	}
	if err != nil {
		return nil, &Error{Op: "load", Path: s.path, Kind: ErrUnreadable, Err: err}
	}

	doc, changes, err := Decode(data)
	if err != nil {
		var se *Error
		if errors.As(err, &se) {
			se.Op = "load"
			se.Path = s.path
			return nil, se
		}
		return nil, &Error{Op: "load", Path: s.path, Kind: ErrUnreadable, Err: err}
	}

	if len(changes) > 0 {
		s.logger.Info("upgraded store", "path", s.path, "changes", changes.String())
		if err := s.Save(doc); err != nil {
			return nil, err
		}
	}
	s.logger.Debug("loaded store", "path", s.path, "projects", len(doc.Projects))
	return doc, nil
}

// Save writes the whole document.
func (s *Store) Save(doc *todo.Document) error {
	data, err := Encode(doc)
	if err != nil {
		return &Error{Op: "save", Path: s.path, Kind: ErrWriteFailed, Err: err}
	}
	if err := s.Write(data); err != nil {
		return &Error{Op: "save", Path: s.path, Kind: ErrWriteFailed, Err: err}
	}
	s.logger.Debug("saved store", "path", s.path, "bytes", len(data))
	return nil
}

// Update loads the document, applies fn and saves the result. Nothing is
// written if fn returns an error.
func (s *Store) Update(fn func(*todo.Document) error) error {
	doc, err := s.Load()
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return s.Save(doc)
}
