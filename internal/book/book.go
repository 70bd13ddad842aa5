package book

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrNotFound is returned when no book has the requested id.
	ErrNotFound = errors.New("book not found")
	// ErrInvalidArgument marks input rejected before it reaches storage.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrStorage matches every *StorageError via errors.Is.
	ErrStorage = errors.New("storage error")
)

// StorageError reports a failed read or write of the catalog file.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("catalog %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// FieldError rejects one field of a candidate. Message is shown to users
// as is; errors.Is matches ErrInvalidArgument.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Message }

func (e *FieldError) Is(target error) bool { return target == ErrInvalidArgument }

// Book is a single catalog record.
type Book struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Image  string `json:"image"`
}

// Candidate is a book submitted for the catalog, before it has an id.
type Candidate struct {
	Title  string `json:"title" validate:"required"`
	Author string `json:"author" validate:"required"`
	Image  string `json:"image" validate:"required,coverurl"`
}

// Trimmed returns c with surrounding whitespace removed from every field.
func (c Candidate) Trimmed() Candidate {
	return Candidate{
		Title:  strings.TrimSpace(c.Title),
		Author: strings.TrimSpace(c.Author),
		Image:  strings.TrimSpace(c.Image),
	}
}

// ParseID parses a book id taken from a request path.
func ParseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: book id %q is not an integer", ErrInvalidArgument, s)
	}
	return id, nil
}
