package listing

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/grandaincontri/incontri-backend/internal/domain"
	"github.com/grandaincontri/incontri-backend/internal/repository"
)

// homePageSize is how many of the newest profiles the home summary shows.
const homePageSize = 10

// ageBuckets are the fixed age-range filters offered by the listing page,
// inclusive on both ends.
var ageBuckets = map[string][2]int{
	"25-35": {25, 35},
	"35-45": {35, 45},
	"45-55": {45, 55},
	"55+":   {55, 150},
}

// Criteria is one listing request's filter set. Zero values impose no
// constraint. ID and Name are only honored for authenticated callers;
// Authenticated is explicit per-request state, never read from anywhere
// ambient.
type Criteria struct {
	ID            *int
	Gender        string
	AgeRange      string
	HairColor     string
	EyesColor     string
	Name          string
	Authenticated bool
}

// ProfileView is a profile as surfaced to callers: display-cased names and
// the cosmetic is_online flag, which is rolled fresh on every listing call
// and never stored.
type ProfileView struct {
	domain.Profile
	IsOnline bool `json:"is_online"`
	Age      *int `json:"age,omitempty"`
}

// ListResult carries the filtered listing plus the per-gender counts of the
// whole published set (the counts ignore the filters on purpose, they feed
// the "N donne / N uomini disponibili" header).
type ListResult struct {
	Profiles    []ProfileView `json:"profiles"`
	WomenCount  int           `json:"available_women_count"`
	MenCount    int           `json:"available_men_count"`
	CurrentYear int           `json:"current_year"`
}

// HomeResult is the home summary: the latest profiles and the same counts.
type HomeResult struct {
	Latest      []ProfileView `json:"latest_profiles"`
	WomenCount  int           `json:"available_women_count"`
	MenCount    int           `json:"available_men_count"`
	CurrentYear int           `json:"current_year"`
}

type ListingUseCase struct {
	profileRepo repository.ProfileRepository
	logger      *slog.Logger
	now         func() time.Time
}

func NewListingUseCase(profileRepo repository.ProfileRepository, logger *slog.Logger) *ListingUseCase {
	return &ListingUseCase{
		profileRepo: profileRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// List returns the published profiles matching every supplied criterion,
// ordered newest-first with undated rows last.
func (uc *ListingUseCase) List(ctx context.Context, criteria Criteria) (*ListResult, error) {
	published, err := uc.publishedSet(ctx)
	if err != nil {
		return nil, err
	}

	women, men := countGenders(published)
	year := uc.now().Year()

	var views []ProfileView
	for _, p := range published {
		if uc.matches(p, criteria, year) {
			views = append(views, decorate(p, year))
		}
	}

	return &ListResult{
		Profiles:    views,
		WomenCount:  women,
		MenCount:    men,
		CurrentYear: year,
	}, nil
}

// Home returns the newest published profiles for the landing page.
func (uc *ListingUseCase) Home(ctx context.Context) (*HomeResult, error) {
	published, err := uc.publishedSet(ctx)
	if err != nil {
		return nil, err
	}

	women, men := countGenders(published)
	year := uc.now().Year()

	latest := published
	if len(latest) > homePageSize {
		latest = latest[:homePageSize]
	}
	views := make([]ProfileView, 0, len(latest))
	for _, p := range latest {
		views = append(views, decorate(p, year))
	}

	return &HomeResult{
		Latest:      views,
		WomenCount:  women,
		MenCount:    men,
		CurrentYear: year,
	}, nil
}

// GetForEdit loads the raw stored profile for the edit form. The caller is
// responsible for only exposing this to authenticated sessions.
func (uc *ListingUseCase) GetForEdit(ctx context.Context, id int) (*domain.Profile, error) {
	profile, err := uc.profileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile %d for edit: %w", id, err)
	}
	return profile, nil
}

// publishedSet loads every profile, drops the unpublished ones and orders
// the rest. The ordering is owned here as well as in the SQL so the listing
// contract holds no matter which repository backs it.
func (uc *ListingUseCase) publishedSet(ctx context.Context) ([]*domain.Profile, error) {
	all, err := uc.profileRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles: %w", err)
	}

	published := make([]*domain.Profile, 0, len(all))
	for _, p := range all {
		if p.IsPublished() {
			published = append(published, p)
		}
	}
	OrderProfiles(published)
	return published, nil
}

// OrderProfiles sorts newest-first on created_at with NULL/"" rows last,
// breaking ties (and ordering the undated tail) by id descending.
func OrderProfiles(profiles []*domain.Profile) {
	sort.SliceStable(profiles, func(i, j int) bool {
		a, b := profiles[i], profiles[j]
		aDated := a.CreatedAt != nil && *a.CreatedAt != ""
		bDated := b.CreatedAt != nil && *b.CreatedAt != ""
		if aDated != bDated {
			return aDated
		}
		if aDated && *a.CreatedAt != *b.CreatedAt {
			// TimeLayout sorts lexicographically.
			return *a.CreatedAt > *b.CreatedAt
		}
		return a.ID > b.ID
	})
}

// matches applies every supplied criterion with AND semantics.
func (uc *ListingUseCase) matches(p *domain.Profile, c Criteria, currentYear int) bool {
	if c.Authenticated && c.ID != nil && p.ID != *c.ID {
		return false
	}

	if c.Gender != "" {
		want, ok := domain.NormalizeGender(c.Gender)
		if !ok {
			return false
		}
		got, ok := domain.NormalizeGender(p.Gender)
		if !ok || got != want {
			return false
		}
	}

	if c.HairColor != "" && !equalFold(p.HairColor, c.HairColor) {
		return false
	}
	if c.EyesColor != "" && !equalFold(p.EyesColor, c.EyesColor) {
		return false
	}

	if bucket, ok := ageBuckets[c.AgeRange]; ok {
		age, ok := p.Age(currentYear)
		if !ok {
			return false
		}
		if age < bucket[0] || age > bucket[1] {
			return false
		}
	}

	if c.Authenticated && c.Name != "" {
		q := strings.ToLower(strings.TrimSpace(c.Name))
		first := strings.ToLower(strings.TrimSpace(p.FirstName))
		last := ""
		if p.LastName != nil {
			last = strings.ToLower(strings.TrimSpace(*p.LastName))
		}
		full := strings.TrimSpace(first + " " + last)
		if !strings.Contains(first, q) && !strings.Contains(last, q) && !strings.Contains(full, q) {
			return false
		}
	}

	return true
}

func equalFold(stored *string, query string) bool {
	s := ""
	if stored != nil {
		s = *stored
	}
	return strings.EqualFold(strings.TrimSpace(s), strings.TrimSpace(query))
}

func countGenders(profiles []*domain.Profile) (women, men int) {
	for _, p := range profiles {
		switch g, _ := domain.NormalizeGender(p.Gender); g {
		case domain.GenderFemale:
			women++
		case domain.GenderMale:
			men++
		}
	}
	return women, men
}

// decorate builds the caller-facing view: a copy of the record with
// display-cased names and the per-call online flag.
func decorate(p *domain.Profile, currentYear int) ProfileView {
	view := ProfileView{Profile: *p}
	view.FirstName = displayCase(p.FirstName)
	if p.LastName != nil {
		cased := displayCase(*p.LastName)
		view.LastName = &cased
	}
	if age, ok := p.Age(currentYear); ok {
		view.Age = &age
	}
	view.IsOnline = rand.Intn(2) == 1
	return view
}

// displayCase uppercases the first letter and lowercases the rest.
func displayCase(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
