package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/grandaincontri/incontri-backend/internal/domain"
	"github.com/grandaincontri/incontri-backend/internal/repository"
	"github.com/jmoiron/sqlx"
)

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetAll(ctx context.Context) ([]*domain.Profile, error) {
	var profiles []*domain.Profile

	// created_at is TEXT and may be NULL or "" on legacy rows; both sort
	// last regardless of value, newest first otherwise, id as tie-break.
	query := `
		SELECT id, first_name, last_name, gender, birth_year, city, occupation,
		       eyes_color, hair_color, height_cm, weight_kg, marital_status,
		       zodiac_sign, smoker, bio, is_active, created_at
		FROM profiles
		ORDER BY
		  CASE WHEN created_at IS NULL OR created_at = '' THEN 1 ELSE 0 END,
		  created_at DESC NULLS LAST,
		  id DESC
	`
	if err := r.db.SelectContext(ctx, &profiles, query); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *profileRepository) GetByID(ctx context.Context, id int) (*domain.Profile, error) {
	var profile domain.Profile
	query := `
		SELECT id, first_name, last_name, gender, birth_year, city, occupation,
		       eyes_color, hair_color, height_cm, weight_kg, marital_status,
		       zodiac_sign, smoker, bio, is_active, created_at
		FROM profiles WHERE id = $1
	`
	err := r.db.GetContext(ctx, &profile, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Insert(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (
			first_name, last_name, gender, birth_year, city, occupation,
			eyes_color, hair_color, height_cm, weight_kg, marital_status,
			zodiac_sign, smoker, bio, is_active, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id
	`
	return r.db.QueryRowContext(
		ctx, query,
		profile.FirstName, profile.LastName, profile.Gender, profile.BirthYear,
		profile.City, profile.Occupation, profile.EyesColor, profile.HairColor,
		profile.HeightCm, profile.WeightKg, profile.MaritalStatus,
		profile.ZodiacSign, profile.Smoker, profile.Bio, profile.IsActive,
		profile.CreatedAt,
	).Scan(&profile.ID)
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	// created_at is immutable after insert and is deliberately absent here.
	query := `
		UPDATE profiles
		SET first_name = $1, last_name = $2, gender = $3, birth_year = $4,
		    city = $5, occupation = $6, eyes_color = $7, hair_color = $8,
		    height_cm = $9, weight_kg = $10, marital_status = $11,
		    zodiac_sign = $12, smoker = $13, bio = $14, is_active = $15
		WHERE id = $16
	`
	result, err := r.db.ExecContext(
		ctx, query,
		profile.FirstName, profile.LastName, profile.Gender, profile.BirthYear,
		profile.City, profile.Occupation, profile.EyesColor, profile.HairColor,
		profile.HeightCm, profile.WeightKg, profile.MaritalStatus,
		profile.ZodiacSign, profile.Smoker, profile.Bio, profile.IsActive,
		profile.ID,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM profiles WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}
