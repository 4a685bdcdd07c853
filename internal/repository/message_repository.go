package repository

import (
	"context"

	"github.com/grandaincontri/incontri-backend/internal/domain"
)

type MessageRepository interface {
	// Insert stores a new message and fills in the generated id.
	Insert(ctx context.Context, message *domain.Message) error
	// DetachProfile nulls profile_id on every message referencing the
	// profile. Run before deleting the profile so the FK never blocks.
	DetachProfile(ctx context.Context, profileID int) error
}
