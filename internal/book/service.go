package book

import (
	"context"
	"fmt"
	"strings"

	"bookshelf/internal/coverurl"
)

// Service provides catalog queries and the add-book flow.
type Service struct {
	repo Repository
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// All returns the whole catalog in storage order.
func (s *Service) All(ctx context.Context) ([]Book, error) {
	return s.repo.ListAll(ctx)
}

// Search returns books whose title or author contains term, ignoring case,
// in storage order. A blank term matches nothing.
func (s *Service) Search(ctx context.Context, term string) ([]Book, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return []Book{}, nil
	}

	books, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", term, err)
	}

	matches := []Book{}
	for _, b := range books {
		if strings.Contains(strings.ToLower(b.Title), term) || strings.Contains(strings.ToLower(b.Author), term) {
			matches = append(matches, b)
		}
	}
	return matches, nil
}

// GetByID returns the book with the given id, or ErrNotFound.
func (s *Service) GetByID(ctx context.Context, id int) (Book, error) {
	books, err := s.repo.ListAll(ctx)
	if err != nil {
		return Book{}, fmt.Errorf("get book %d: %w", id, err)
	}
	for _, b := range books {
		if b.ID == id {
			return b, nil
		}
	}
	return Book{}, ErrNotFound
}

// Add stores a new book. The candidate is checked here as well as by the
// callers so that nothing reaches storage without a valid cover URL.
func (s *Service) Add(ctx context.Context, c Candidate) (Book, error) {
	c = c.Trimmed()
	switch {
	case c.Title == "":
		return Book{}, &FieldError{Field: "title", Message: "Title is required"}
	case c.Author == "":
		return Book{}, &FieldError{Field: "author", Message: "Author is required"}
	case !coverurl.Valid(c.Image):
		return Book{}, &FieldError{Field: "image", Message: coverurl.Hint}
	}

	b, err := s.repo.Append(ctx, c)
	if err != nil {
		return Book{}, fmt.Errorf("add book: %w", err)
	}
	return b, nil
}
