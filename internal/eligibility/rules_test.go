package eligibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(f float64) *float64 { return &f }
func sptr(s string) *string   { return &s }
func bptr(b bool) *bool       { return &b }
func iptr(i int) *int         { return &i }

func TestEvaluateFullMatch(t *testing.T) {
	scholarship := Scholarship{
		ID:   "nsp-post-matric-sc",
		Name: "Post-Matric Scholarship for SC Students",
		Criteria: Criteria{
			IncomeMax: fptr(250000),
			Castes:    []string{"SC"},
			MarksMin:  fptr(60),
		},
	}
	profile := Profile{
		Income: fptr(90000),
		Caste:  sptr("SC"),
		Marks:  fptr(85),
	}

	rec := Evaluate(scholarship, profile)
	assert.Equal(t, 100, rec.MatchScore)
	assert.Len(t, rec.MatchReasons, 3)
	assert.Empty(t, rec.MissingCriteria)
}

func TestEvaluateBoundariesInclusive(t *testing.T) {
	criteria := Criteria{IncomeMax: fptr(250000), MarksMin: fptr(60)}
	scholarship := Scholarship{ID: "s", Criteria: criteria}

	t.Run("income equal to max satisfies", func(t *testing.T) {
		rec := Evaluate(scholarship, Profile{Income: fptr(250000), Marks: fptr(60)})
		assert.Equal(t, 100, rec.MatchScore)
	})

	t.Run("income just over fails", func(t *testing.T) {
		rec := Evaluate(scholarship, Profile{Income: fptr(250001), Marks: fptr(60)})
		assert.Equal(t, 50, rec.MatchScore)
		assert.Len(t, rec.MissingCriteria, 1)
	})

	t.Run("marks just under fails", func(t *testing.T) {
		rec := Evaluate(scholarship, Profile{Income: fptr(100000), Marks: fptr(59.9)})
		assert.Equal(t, 50, rec.MatchScore)
	})
}

func TestEvaluatePartialProfile(t *testing.T) {
	scholarship := Scholarship{
		ID: "s",
		Criteria: Criteria{
			IncomeMax: fptr(250000),
			Castes:    []string{"SC", "ST"},
			MarksMin:  fptr(60),
		},
	}

	// Only income present: one compared dimension, satisfied.
	rec := Evaluate(scholarship, Profile{Income: fptr(90000)})
	assert.Equal(t, 100, rec.MatchScore)
	assert.Len(t, rec.MatchReasons, 1)
	// Missing criteria still lists the undeclarable dimensions.
	assert.Len(t, rec.MissingCriteria, 2)
}

func TestEvaluateCasteMatchingCaseInsensitive(t *testing.T) {
	scholarship := Scholarship{ID: "s", Criteria: Criteria{Castes: []string{"SC", "ST"}}}

	rec := Evaluate(scholarship, Profile{Caste: sptr("sc")})
	assert.Equal(t, 100, rec.MatchScore)

	rec = Evaluate(scholarship, Profile{Caste: sptr("OBC")})
	assert.Equal(t, 0, rec.MatchScore)
	assert.Len(t, rec.MissingCriteria, 1)
}

func TestEvaluateDisabilityAndRegion(t *testing.T) {
	scholarship := Scholarship{
		ID:       "s",
		Criteria: Criteria{Disability: bptr(true), Region: sptr("rural")},
	}

	rec := Evaluate(scholarship, Profile{Disability: bptr(true), Region: sptr("rural")})
	assert.Equal(t, 100, rec.MatchScore)

	rec = Evaluate(scholarship, Profile{Disability: bptr(false), Region: sptr("urban")})
	assert.Equal(t, 0, rec.MatchScore)
	assert.Len(t, rec.MissingCriteria, 2)
}

func TestEvaluateAgeRangeDefaults(t *testing.T) {
	// Max 0 defaults to 100.
	scholarship := Scholarship{ID: "s", Criteria: Criteria{Age: &AgeRange{Min: 18}}}

	assert.Equal(t, 100, Evaluate(scholarship, Profile{Age: iptr(45)}).MatchScore)
	assert.Equal(t, 0, Evaluate(scholarship, Profile{Age: iptr(17)}).MatchScore)

	bounded := Scholarship{ID: "s", Criteria: Criteria{Age: &AgeRange{Min: 17, Max: 22}}}
	assert.Equal(t, 100, Evaluate(bounded, Profile{Age: iptr(22)}).MatchScore)
	assert.Equal(t, 0, Evaluate(bounded, Profile{Age: iptr(23)}).MatchScore)
}

func TestEvaluateCourseTokenMatch(t *testing.T) {
	scholarship := Scholarship{
		ID:       "s",
		Criteria: Criteria{Courses: []string{"Engineering", "Medicine"}},
	}

	rec := Evaluate(scholarship, Profile{Course: sptr("B.Tech Computer Engineering")})
	assert.Equal(t, 100, rec.MatchScore)

	rec = Evaluate(scholarship, Profile{Course: sptr("History")})
	assert.Equal(t, 0, rec.MatchScore)
}

func TestEvaluateScoreRounding(t *testing.T) {
	// 2 of 3 compared dimensions satisfied rounds to 67.
	scholarship := Scholarship{
		ID: "s",
		Criteria: Criteria{
			IncomeMax: fptr(250000),
			Castes:    []string{"SC"},
			MarksMin:  fptr(90),
		},
	}
	rec := Evaluate(scholarship, Profile{
		Income: fptr(90000),
		Caste:  sptr("SC"),
		Marks:  fptr(85),
	})
	assert.Equal(t, 67, rec.MatchScore)
}

func TestRankFiltersAndSorts(t *testing.T) {
	catalog := []Scholarship{
		{ID: "partial", Criteria: Criteria{IncomeMax: fptr(250000), MarksMin: fptr(95)}},
		{ID: "full", Criteria: Criteria{IncomeMax: fptr(250000), MarksMin: fptr(60)}},
		{ID: "none", Criteria: Criteria{Castes: []string{"ST"}}},
	}
	profile := Profile{Income: fptr(90000), Caste: sptr("SC"), Marks: fptr(85)}

	recs := Rank(catalog, profile)
	require.Len(t, recs, 2)
	assert.Equal(t, "full", recs[0].Scholarship.ID)
	assert.Equal(t, 100, recs[0].MatchScore)
	assert.Equal(t, "partial", recs[1].Scholarship.ID)
	assert.Equal(t, 50, recs[1].MatchScore)
}

func TestRankStableOnTies(t *testing.T) {
	catalog := []Scholarship{
		{ID: "first", Criteria: Criteria{IncomeMax: fptr(250000)}},
		{ID: "second", Criteria: Criteria{IncomeMax: fptr(300000)}},
		{ID: "third", Criteria: Criteria{IncomeMax: fptr(400000)}},
	}
	profile := Profile{Income: fptr(90000)}

	recs := Rank(catalog, profile)
	require.Len(t, recs, 3)
	assert.Equal(t, "first", recs[0].Scholarship.ID)
	assert.Equal(t, "second", recs[1].Scholarship.ID)
	assert.Equal(t, "third", recs[2].Scholarship.ID)
}

func TestRankEmptyProfile(t *testing.T) {
	catalog := []Scholarship{
		{ID: "s", Criteria: Criteria{IncomeMax: fptr(250000)}},
	}
	assert.Empty(t, Rank(catalog, Profile{}))
}

func TestEvaluateNoDeclaredCriteria(t *testing.T) {
	// Nothing declared means nothing compared; score stays 0.
	rec := Evaluate(Scholarship{ID: "open"}, Profile{Income: fptr(90000)})
	assert.Equal(t, 0, rec.MatchScore)
	assert.Empty(t, rec.MissingCriteria)
}
