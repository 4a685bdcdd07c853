package listing

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/grandaincontri/incontri-backend/internal/domain"
)

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) GetAll(ctx context.Context) ([]*domain.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Profile), args.Error(1)
}

func (m *MockProfileRepository) GetByID(ctx context.Context, id int) (*domain.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepository) Insert(ctx context.Context, profile *domain.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockProfileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockProfileRepository) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func setupListingTest() (*ListingUseCase, *MockProfileRepository) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mockRepo := new(MockProfileRepository)
	uc := NewListingUseCase(mockRepo, logger)
	uc.now = func() time.Time {
		return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	}
	return uc, mockRepo
}

func ids(views []ProfileView) []int {
	out := make([]int, 0, len(views))
	for _, v := range views {
		out = append(out, v.ID)
	}
	return out
}

func TestList_PublishedSet(t *testing.T) {
	uc, mockRepo := setupListingTest()
	ctx := context.Background()

	profiles := []*domain.Profile{
		{ID: 1, FirstName: "anna", Gender: "donna"},
		{ID: 2, FirstName: "bruno", Gender: "uomo", IsActive: strPtr("0")},
		{ID: 3, FirstName: "carla", Gender: "f", IsActive: strPtr("true")},
		{ID: 4, FirstName: "dario", Gender: "m", IsActive: strPtr("no")},
		{ID: 5, FirstName: "elisa", Gender: "female", IsActive: strPtr("whatever")},
	}
	mockRepo.On("GetAll", ctx).Return(profiles, nil).Once()

	result, err := uc.List(ctx, Criteria{})
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{1, 3, 5}, ids(result.Profiles))
	assert.Equal(t, 3, result.WomenCount)
	assert.Equal(t, 0, result.MenCount)
	mockRepo.AssertExpectations(t)
}

func TestList_Ordering(t *testing.T) {
	uc, mockRepo := setupListingTest()
	ctx := context.Background()

	profiles := []*domain.Profile{
		{ID: 1, FirstName: "a", Gender: "f", CreatedAt: nil},
		{ID: 2, FirstName: "b", Gender: "f", CreatedAt: strPtr("2024-01-01 00:00:00")},
		{ID: 3, FirstName: "c", Gender: "f", CreatedAt: strPtr("2023-01-01 00:00:00")},
		{ID: 4, FirstName: "d", Gender: "f", CreatedAt: strPtr("")},
	}
	mockRepo.On("GetAll", ctx).Return(profiles, nil).Once()

	result, err := uc.List(ctx, Criteria{})
	require.NoError(t, err)
	// Dated rows newest-first, the null/empty pair last ordered by id desc.
	assert.Equal(t, []int{2, 3, 4, 1}, ids(result.Profiles))
}

func TestList_GenderSynonyms(t *testing.T) {
	uc, mockRepo := setupListingTest()
	ctx := context.Background()

	profiles := []*domain.Profile{
		{ID: 1, FirstName: "marco", Gender: "M"},
		{ID: 2, FirstName: "anna", Gender: "donna"},
	}

	// "uomo" and "male" must select the same set against a stored "M".
	var got [][]int
	for _, q := range []string{"uomo", "male", "m"} {
		mockRepo.On("GetAll", ctx).Return(profiles, nil).Once()
		result, err := uc.List(ctx, Criteria{Gender: q})
		require.NoError(t, err)
		got = append(got, ids(result.Profiles))
	}
	assert.Equal(t, got[0], got[1])
	assert.Equal(t, got[1], got[2])
	assert.Equal(t, []int{1}, got[0])

	// Unmapped filter values never match anything.
	mockRepo.On("GetAll", ctx).Return(profiles, nil).Once()
	result, err := uc.List(ctx, Criteria{Gender: "altro"})
	require.NoError(t, err)
	assert.Empty(t, result.Profiles)
}

func TestList_AndSemantics(t *testing.T) {
	uc, mockRepo := setupListingTest()
	ctx := context.Background()

	profiles := []*domain.Profile{
		{ID: 1, FirstName: "a", Gender: "uomo", HairColor: strPtr("castani")},
		{ID: 2, FirstName: "b", Gender: "uomo", HairColor: strPtr("biondi")},
		{ID: 3, FirstName: "c", Gender: "donna", HairColor: strPtr("castani")},
	}

	mockRepo.On("GetAll", ctx).Return(profiles, nil).Times(3)

	byGender, err := uc.List(ctx, Criteria{Gender: "uomo"})
	require.NoError(t, err)
	byHair, err := uc.List(ctx, Criteria{HairColor: "Castani"})
	require.NoError(t, err)
	combined, err := uc.List(ctx, Criteria{Gender: "uomo", HairColor: "Castani"})
	require.NoError(t, err)

	intersection := map[int]bool{}
	for _, id := range ids(byGender.Profiles) {
		intersection[id] = true
	}
	var want []int
	for _, id := range ids(byHair.Profiles) {
		if intersection[id] {
			want = append(want, id)
		}
	}
	assert.Equal(t, want, ids(combined.Profiles))
	assert.Equal(t, []int{1}, ids(combined.Profiles))
}

func TestList_AgeRange(t *testing.T) {
	uc, mockRepo := setupListingTest()
	ctx := context.Background()

	profiles := []*domain.Profile{
		{ID: 1, FirstName: "a", Gender: "f", BirthYear: intPtr(1994)}, // 30
		{ID: 2, FirstName: "b", Gender: "f", BirthYear: intPtr(1960)}, // 64
		{ID: 3, FirstName: "c", Gender: "f"},                          // no birth year
	}

	mockRepo.On("GetAll", ctx).Return(profiles, nil).Times(3)

	result, err := uc.List(ctx, Criteria{AgeRange: "25-35"})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, ids(result.Profiles))

	result, err = uc.List(ctx, Criteria{AgeRange: "55+"})
	require.NoError(t, err)
	assert.Equal(t, []int{2}, ids(result.Profiles))

	// Unknown bucket imposes no constraint.
	result, err = uc.List(ctx, Criteria{AgeRange: "18-99"})
	require.NoError(t, err)
	assert.Len(t, result.Profiles, 3)
}

func TestList_AuthGatedCriteria(t *testing.T) {
	uc, mockRepo := setupListingTest()
	ctx := context.Background()

	profiles := []*domain.Profile{
		{ID: 1, FirstName: "maria", LastName: strPtr("rossi"), Gender: "f"},
		{ID: 2, FirstName: "anna", LastName: strPtr("bianchi"), Gender: "f"},
	}

	t.Run("id filter honored when authenticated", func(t *testing.T) {
		mockRepo.On("GetAll", ctx).Return(profiles, nil).Once()
		result, err := uc.List(ctx, Criteria{ID: intPtr(2), Authenticated: true})
		require.NoError(t, err)
		assert.Equal(t, []int{2}, ids(result.Profiles))
	})

	t.Run("id filter ignored when anonymous", func(t *testing.T) {
		mockRepo.On("GetAll", ctx).Return(profiles, nil).Once()
		result, err := uc.List(ctx, Criteria{ID: intPtr(2), Authenticated: false})
		require.NoError(t, err)
		assert.Len(t, result.Profiles, 2)
	})

	t.Run("name matches first, last and full name", func(t *testing.T) {
		mockRepo.On("GetAll", ctx).Return(profiles, nil).Times(3)
		for _, q := range []string{"ROSSI", "mari", "maria ros"} {
			result, err := uc.List(ctx, Criteria{Name: q, Authenticated: true})
			require.NoError(t, err)
			assert.Equal(t, []int{1}, ids(result.Profiles), "query %q", q)
		}
	})

	t.Run("name filter ignored when anonymous", func(t *testing.T) {
		mockRepo.On("GetAll", ctx).Return(profiles, nil).Once()
		result, err := uc.List(ctx, Criteria{Name: "rossi", Authenticated: false})
		require.NoError(t, err)
		assert.Len(t, result.Profiles, 2)
	})
}

func TestList_OnlineDecoration(t *testing.T) {
	uc, mockRepo := setupListingTest()
	ctx := context.Background()

	profiles := make([]*domain.Profile, 0, 50)
	for i := 1; i <= 50; i++ {
		profiles = append(profiles, &domain.Profile{ID: i, FirstName: "p", Gender: "f"})
	}
	// Across repeated calls with 50 profiles each, an always-equal flag
	// would be astronomically unlikely.
	mockRepo.On("GetAll", ctx).Return(profiles, nil).Times(4)

	sawOnline, sawOffline := false, false
	for i := 0; i < 4; i++ {
		result, err := uc.List(ctx, Criteria{})
		require.NoError(t, err)
		for _, v := range result.Profiles {
			if v.IsOnline {
				sawOnline = true
			} else {
				sawOffline = true
			}
		}
	}
	assert.True(t, sawOnline)
	assert.True(t, sawOffline)
}

func TestList_DisplayCase(t *testing.T) {
	uc, mockRepo := setupListingTest()
	ctx := context.Background()

	profiles := []*domain.Profile{
		{ID: 1, FirstName: "mARIA", LastName: strPtr("ROSSI"), Gender: "f"},
	}
	mockRepo.On("GetAll", ctx).Return(profiles, nil).Once()

	result, err := uc.List(ctx, Criteria{})
	require.NoError(t, err)
	require.Len(t, result.Profiles, 1)
	assert.Equal(t, "Maria", result.Profiles[0].FirstName)
	require.NotNil(t, result.Profiles[0].LastName)
	assert.Equal(t, "Rossi", *result.Profiles[0].LastName)
	// The stored record keeps its raw casing.
	assert.Equal(t, "mARIA", profiles[0].FirstName)
}

func TestHome_LatestTen(t *testing.T) {
	uc, mockRepo := setupListingTest()
	ctx := context.Background()

	profiles := make([]*domain.Profile, 0, 15)
	for i := 1; i <= 15; i++ {
		created := time.Date(2024, 1, i, 0, 0, 0, 0, time.UTC).Format(domain.TimeLayout)
		profiles = append(profiles, &domain.Profile{
			ID: i, FirstName: "p", Gender: "uomo", CreatedAt: &created,
		})
	}
	mockRepo.On("GetAll", ctx).Return(profiles, nil).Once()

	result, err := uc.Home(ctx)
	require.NoError(t, err)
	require.Len(t, result.Latest, 10)
	assert.Equal(t, 15, result.Latest[0].ID)
	assert.Equal(t, 6, result.Latest[9].ID)
	assert.Equal(t, 15, result.MenCount)
}

func TestList_RepositoryError(t *testing.T) {
	uc, mockRepo := setupListingTest()
	ctx := context.Background()

	repoErr := errors.New("connection refused")
	mockRepo.On("GetAll", ctx).Return(nil, repoErr).Once()

	_, err := uc.List(ctx, Criteria{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, repoErr))
}
