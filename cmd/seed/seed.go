package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/rs/zerolog/log"

	"bookshelf/internal/book"
	"bookshelf/internal/store"
)

var errCatalogNotEmpty = errors.New("catalog is not empty, use -force to overwrite")

type seedOptions struct {
	Count int
	Force bool
}

var samples = []book.Candidate{
	{Title: "Dune", Author: "Frank Herbert", Image: "https://m.media-amazon.com/images/I/81ym3QUd3KL.jpg"},
	{Title: "Neuromancer", Author: "William Gibson", Image: "https://m.media-amazon.com/images/I/71Yx4uRZ6PL.jpg"},
	{Title: "The Left Hand of Darkness", Author: "Ursula K. Le Guin", Image: "https://m.media-amazon.com/images/I/71x7ZRMkDaL.jpg"},
	{Title: "Foundation", Author: "Isaac Asimov", Image: "https://m.media-amazon.com/images/I/81mQ5bq6CtL.jpg"},
	{Title: "The Pragmatic Programmer", Author: "Andrew Hunt & David Thomas", Image: "https://m.media-amazon.com/images/I/71f1jieYHNL.jpg"},
	{Title: "The Go Programming Language", Author: "Alan A. A. Donovan", Image: "https://m.media-amazon.com/images/I/71zOQ+udZPL.jpg"},
	{Title: "Project Hail Mary", Author: "Andy Weir", Image: "https://m.media-amazon.com/images/G/01/pv_starlight/hail-mary.png"},
}

var words = []string{
	"Adventure", "Mystery", "Journey", "Discovery", "Secrets", "Dreams", "Hope",
	"Light", "Darkness", "World", "Universe", "Time", "Space", "Mind", "Soul",
}

var authors = []string{
	"A. Writer", "B. Novelist", "C. Essayist", "D. Poet", "E. Chronicler",
}

// seed writes the sample books followed by opts.Count generated ones to s
// in one write and returns the resulting catalog size. With opts.Force an
// existing catalog is replaced; a failed write leaves it untouched.
func seed(ctx context.Context, s *store.FileStore, opts seedOptions) (int, error) {
	existing, err := s.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 && !opts.Force {
		return 0, errCatalogNotEmpty
	}

	candidates := make([]book.Candidate, 0, len(samples)+opts.Count)
	candidates = append(candidates, samples...)
	for i := range opts.Count {
		candidates = append(candidates, generated(i+1))
	}

	added, err := s.ReplaceAll(ctx, candidates)
	if err != nil {
		return 0, fmt.Errorf("write catalog: %w", err)
	}
	if len(existing) > 0 {
		log.Warn().Int("books", len(existing)).Msg("existing catalog replaced")
	}
	return len(added), nil
}

func generated(n int) book.Candidate {
	return book.Candidate{
		Title:  fmt.Sprintf("Book Title %d - %s", n, words[rand.IntN(len(words))]),
		Author: authors[rand.IntN(len(authors))],
		Image:  fmt.Sprintf("https://m.media-amazon.com/images/I/seed-%05d.jpg", n),
	}
}
