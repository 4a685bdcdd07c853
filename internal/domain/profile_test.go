package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestProfile_IsPublished(t *testing.T) {
	tests := []struct {
		name     string
		isActive *string
		want     bool
	}{
		{"absent means published", nil, true},
		{"one", strPtr("1"), true},
		{"true", strPtr("true"), true},
		{"yes", strPtr("yes"), true},
		{"arbitrary garbage is published", strPtr("maybe"), true},
		{"empty string is published", strPtr(""), true},
		{"zero", strPtr("0"), false},
		{"false", strPtr("false"), false},
		{"no", strPtr("no"), false},
		{"n", strPtr("n"), false},
		{"case and whitespace insensitive", strPtr("  FALSE "), false},
		{"uppercase No", strPtr("No"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Profile{IsActive: tt.isActive}
			assert.Equal(t, tt.want, p.IsPublished())
		})
	}
}

func TestProfile_Age(t *testing.T) {
	t.Run("derived from birth year", func(t *testing.T) {
		p := &Profile{BirthYear: intPtr(1980)}
		age, ok := p.Age(2024)
		require.True(t, ok)
		assert.Equal(t, 44, age)
	})

	t.Run("missing birth year", func(t *testing.T) {
		p := &Profile{}
		_, ok := p.Age(2024)
		assert.False(t, ok)
	})
}

func TestNormalizeGender(t *testing.T) {
	for _, v := range []string{"male", "m", "uomo", "M", " UOMO ", "Male"} {
		g, ok := NormalizeGender(v)
		require.True(t, ok, "expected %q to normalize", v)
		assert.Equal(t, GenderMale, g)
	}
	for _, v := range []string{"female", "f", "donna", "F", "Donna"} {
		g, ok := NormalizeGender(v)
		require.True(t, ok, "expected %q to normalize", v)
		assert.Equal(t, GenderFemale, g)
	}
	for _, v := range []string{"", "x", "altro", "uom"} {
		_, ok := NormalizeGender(v)
		assert.False(t, ok, "expected %q to stay unmapped", v)
	}
}

func TestProfile_FullName(t *testing.T) {
	p := &Profile{FirstName: " Maria ", LastName: strPtr("Rossi")}
	assert.Equal(t, "Maria Rossi", p.FullName())

	p = &Profile{FirstName: "Maria"}
	assert.Equal(t, "Maria", p.FullName())
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	errs = errs.Add("prima regola")
	errs = errs.Add("seconda regola")
	require.Len(t, errs, 2)
	assert.Equal(t, "prima regola; seconda regola", errs.Error())
}
