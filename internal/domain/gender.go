package domain

import "strings"

// Canonical gender values stored and filtered on.
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// The site ran in Italian for years, so both the Italian and the English
// spellings are accepted wherever a gender enters the system.
var genderSynonyms = map[string]string{
	"male":   GenderMale,
	"m":      GenderMale,
	"uomo":   GenderMale,
	"female": GenderFemale,
	"f":      GenderFemale,
	"donna":  GenderFemale,
}

// NormalizeGender maps a free-form gender value onto its canonical form.
// The second return is false for values outside the known vocabulary.
func NormalizeGender(v string) (string, bool) {
	g, ok := genderSynonyms[strings.ToLower(strings.TrimSpace(v))]
	return g, ok
}
