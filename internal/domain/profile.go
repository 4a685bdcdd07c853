package domain

import (
	"strings"
	"time"
)

// TimeLayout is the storage format for created_at columns. The tables were
// imported from an older deployment that kept timestamps as text, so the
// columns stay TEXT and may hold NULL or "" for rows that predate the field.
const TimeLayout = "2006-01-02 15:04:05"

// UTCNow returns the current UTC time in the storage format.
func UTCNow() string {
	return time.Now().UTC().Format(TimeLayout)
}

// Profile represents one published listing.
type Profile struct {
	ID            int     `json:"id" db:"id"`
	FirstName     string  `json:"first_name" db:"first_name"`
	LastName      *string `json:"last_name" db:"last_name"`
	Gender        string  `json:"gender" db:"gender"`
	BirthYear     *int    `json:"birth_year" db:"birth_year"`
	City          *string `json:"city" db:"city"`
	Occupation    *string `json:"occupation" db:"occupation"`
	EyesColor     *string `json:"eyes_color" db:"eyes_color"`
	HairColor     *string `json:"hair_color" db:"hair_color"`
	HeightCm      *int    `json:"height_cm" db:"height_cm"`
	WeightKg      *int    `json:"weight_kg" db:"weight_kg"`
	MaritalStatus *string `json:"marital_status" db:"marital_status"`
	ZodiacSign    *string `json:"zodiac_sign" db:"zodiac_sign"`
	Smoker        int     `json:"smoker" db:"smoker"`
	Bio           string  `json:"bio" db:"bio"`
	IsActive      *string `json:"is_active" db:"is_active"`
	CreatedAt     *string `json:"created_at" db:"created_at"`
}

// IsPublished reports whether the profile belongs to the published set.
// A missing is_active means published; otherwise only the explicit falsy
// forms "0", "false", "no" and "n" unpublish a profile. Any other value,
// including garbage left by the legacy importer, counts as published.
func (p *Profile) IsPublished() bool {
	if p.IsActive == nil {
		return true
	}
	switch strings.ToLower(strings.TrimSpace(*p.IsActive)) {
	case "0", "false", "no", "n":
		return false
	}
	return true
}

// Age derives the age from birth_year against the given year. The second
// return is false when the profile has no usable birth year.
func (p *Profile) Age(currentYear int) (int, bool) {
	if p.BirthYear == nil {
		return 0, false
	}
	return currentYear - *p.BirthYear, true
}

// FullName joins first and last name for display and name search.
func (p *Profile) FullName() string {
	last := ""
	if p.LastName != nil {
		last = *p.LastName
	}
	return strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(last))
}
