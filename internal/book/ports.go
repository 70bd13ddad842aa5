package book

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=book

// Repository defines the contract for catalog storage. Records are only
// ever appended; ListAll returns them in storage order.
type Repository interface {
	ListAll(ctx context.Context) ([]Book, error)
	Append(ctx context.Context, c Candidate) (Book, error)
}
