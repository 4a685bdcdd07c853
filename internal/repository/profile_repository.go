package repository

import (
	"context"

	"github.com/grandaincontri/incontri-backend/internal/domain"
)

type ProfileRepository interface {
	// GetAll returns every profile ordered by created_at descending with
	// NULL/empty timestamps last, then id descending.
	GetAll(ctx context.Context) ([]*domain.Profile, error)
	GetByID(ctx context.Context, id int) (*domain.Profile, error)
	// Insert stores a new profile and fills in the generated id.
	Insert(ctx context.Context, profile *domain.Profile) error
	// Update replaces every stored column except id and created_at.
	Update(ctx context.Context, profile *domain.Profile) error
	Delete(ctx context.Context, id int) error
}
