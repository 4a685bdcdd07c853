package postgres

import (
	"context"

	"github.com/grandaincontri/incontri-backend/internal/domain"
	"github.com/grandaincontri/incontri-backend/internal/repository"
	"github.com/jmoiron/sqlx"
)

type messageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) repository.MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Insert(ctx context.Context, message *domain.Message) error {
	query := `
		INSERT INTO messages (
			sender_name, sender_phone, sender_email, sender_job,
			sender_age, sender_city, sender_message, profile_id, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	return r.db.QueryRowContext(
		ctx, query,
		message.SenderName, message.SenderPhone, message.SenderEmail,
		message.SenderJob, message.SenderAge, message.SenderCity,
		message.SenderMessage, message.ProfileID, message.CreatedAt,
	).Scan(&message.ID)
}

func (r *messageRepository) DetachProfile(ctx context.Context, profileID int) error {
	query := `UPDATE messages SET profile_id = NULL WHERE profile_id = $1`
	_, err := r.db.ExecContext(ctx, query, profileID)
	return err
}
