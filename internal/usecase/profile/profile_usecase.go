package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/grandaincontri/incontri-backend/internal/domain"
	"github.com/grandaincontri/incontri-backend/internal/repository"
)

// Height bounds in meters accepted from the form.
const (
	minHeightM = 1.00
	maxHeightM = 2.50
)

type ProfileUseCase struct {
	profileRepo repository.ProfileRepository
	messageRepo repository.MessageRepository
	logger      *slog.Logger
	now         func() string
}

func NewProfileUseCase(
	profileRepo repository.ProfileRepository,
	messageRepo repository.MessageRepository,
	logger *slog.Logger,
) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: profileRepo,
		messageRepo: messageRepo,
		logger:      logger,
		now:         domain.UTCNow,
	}
}

// SaveRequest is the raw profile form. Everything arrives as text because
// the admin form posts it that way; parsing and normalization happen here,
// not in the handler.
type SaveRequest struct {
	ProfileID     int    `form:"profile_id" json:"profile_id"`
	FirstName     string `form:"first_name" json:"first_name"`
	LastName      string `form:"last_name" json:"last_name"`
	Gender        string `form:"gender" json:"gender"`
	BirthYear     string `form:"birth_year" json:"birth_year"`
	City          string `form:"city" json:"city"`
	Occupation    string `form:"occupation" json:"occupation"`
	EyesColor     string `form:"eyes_color" json:"eyes_color"`
	HairColor     string `form:"hair_color" json:"hair_color"`
	ZodiacSign    string `form:"zodiac_sign" json:"zodiac_sign"`
	HeightM       string `form:"height_m" json:"height_m"`
	HeightCm      string `form:"height_cm" json:"height_cm"`
	WeightKg      string `form:"weight_kg" json:"weight_kg"`
	MaritalStatus string `form:"marital_status" json:"marital_status"`
	Smoker        string `form:"smoker" json:"smoker"`
	Bio           string `form:"bio" json:"bio"`
}

// IsUpdate reports whether the request targets an existing profile.
func (r *SaveRequest) IsUpdate() bool {
	return r.ProfileID > 0
}

// Save validates and applies a create (ProfileID == 0) or a full-replace
// update. On validation failure it returns every violated rule at once and
// touches nothing; a failed update keeps its ProfileID so the caller can
// reopen the same record.
func (uc *ProfileUseCase) Save(ctx context.Context, req *SaveRequest) (*domain.Profile, domain.ValidationErrors, error) {
	firstName := strings.TrimSpace(req.FirstName)
	gender := strings.TrimSpace(strings.ToLower(req.Gender))
	bio := strings.TrimSpace(req.Bio)

	heightM := parseOptionalFloat(req.HeightM)
	heightCm := heightToCm(heightM, req.HeightCm)

	// An update that omits height keeps the stored value instead of
	// clearing it; every other field is replaced outright.
	if req.IsUpdate() && heightCm == nil {
		old, err := uc.profileRepo.GetByID(ctx, req.ProfileID)
		switch {
		case err == nil:
			heightCm = old.HeightCm
		case !errors.Is(err, domain.ErrProfileNotFound):
			return nil, nil, fmt.Errorf("failed to load profile %d: %w", req.ProfileID, err)
		}
	}

	var errs domain.ValidationErrors
	if firstName == "" {
		errs = errs.Add("Il nome è obbligatorio.")
	}
	if gender == "" {
		errs = errs.Add("Il genere è obbligatorio.")
	}
	if bio == "" {
		errs = errs.Add("La bio è obbligatoria.")
	}
	if heightM != nil && (*heightM < minHeightM || *heightM > maxHeightM) {
		errs = errs.Add("L'altezza deve essere tra 1.00 m e 2.50 m.")
	}
	if len(errs) > 0 {
		return nil, errs, nil
	}

	// Store the canonical gender when the value is in the known
	// vocabulary, the lowercased raw value otherwise.
	if canonical, ok := domain.NormalizeGender(gender); ok {
		gender = canonical
	}

	published := "1"
	profile := &domain.Profile{
		ID:            req.ProfileID,
		FirstName:     firstName,
		LastName:      optionalString(req.LastName),
		Gender:        gender,
		BirthYear:     parseOptionalInt(req.BirthYear),
		City:          optionalString(req.City),
		Occupation:    optionalString(req.Occupation),
		EyesColor:     optionalString(req.EyesColor),
		HairColor:     optionalString(req.HairColor),
		HeightCm:      heightCm,
		WeightKg:      parseOptionalInt(req.WeightKg),
		MaritalStatus: optionalString(req.MaritalStatus),
		ZodiacSign:    optionalString(req.ZodiacSign),
		Smoker:        checkboxToInt(req.Smoker),
		Bio:           bio,
		IsActive:      &published,
	}

	if req.IsUpdate() {
		if err := uc.profileRepo.Update(ctx, profile); err != nil {
			return nil, nil, fmt.Errorf("failed to update profile %d: %w", profile.ID, err)
		}
		uc.logger.InfoContext(ctx, "profile updated", slog.Int("profile_id", profile.ID))
		return profile, nil, nil
	}

	createdAt := uc.now()
	profile.CreatedAt = &createdAt
	if err := uc.profileRepo.Insert(ctx, profile); err != nil {
		return nil, nil, fmt.Errorf("failed to create profile: %w", err)
	}
	uc.logger.InfoContext(ctx, "profile created", slog.Int("profile_id", profile.ID))
	return profile, nil, nil
}

// Delete detaches every message referencing the profile, then removes the
// profile row. The two statements are not one transaction: a failure in
// between leaves messages detached with the profile still present. Known
// gap, kept as-is.
func (uc *ProfileUseCase) Delete(ctx context.Context, id int) error {
	if err := uc.messageRepo.DetachProfile(ctx, id); err != nil {
		return fmt.Errorf("failed to detach messages from profile %d: %w", id, err)
	}
	if err := uc.profileRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete profile %d: %w", id, err)
	}
	uc.logger.InfoContext(ctx, "profile deleted", slog.Int("profile_id", id))
	return nil
}

// heightToCm resolves the stored centimeter value from the form: a meters
// value wins and is rounded to whole centimeters, otherwise a raw
// centimeter integer is accepted as-is.
func heightToCm(heightM *float64, rawCm string) *int {
	if heightM != nil {
		cm := int(math.Round(*heightM * 100))
		return &cm
	}
	return parseOptionalInt(rawCm)
}

// parseOptionalFloat accepts both the comma and the dot as decimal
// separator; blank or unparseable input means "not supplied".
func parseOptionalFloat(v string) *float64 {
	v = strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}

func parseOptionalInt(v string) *int {
	v = strings.TrimSpace(v)
	if v == "" || v == "None" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}

func optionalString(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

// checkboxToInt normalizes a checkbox post to the stored 0/1 flag. Only
// the exact tokens "on", "1" and "true" count; anything else is 0.
func checkboxToInt(v string) int {
	switch strings.TrimSpace(v) {
	case "on", "1", "true":
		return 1
	}
	return 0
}
