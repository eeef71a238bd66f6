package eligibility

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"eduraksha/pkg/strutil"
)

// dimension enumerates the criteria a scholarship may declare and a profile
// may satisfy.
type dimension int

const (
	dimIncome dimension = iota
	dimCaste
	dimMarks
	dimRegion
	dimDisability
	dimAge
	dimCourse
)

// dimensionOrder fixes the order reasons and missing criteria are reported in.
var dimensionOrder = []dimension{dimIncome, dimCaste, dimMarks, dimRegion, dimDisability, dimAge, dimCourse}

// ageBounds applies the default bounds for a partially declared age range.
func ageBounds(a AgeRange) (int, int) {
	min, max := a.Min, a.Max
	if max == 0 {
		max = 100
	}
	return min, max
}

// declares reports whether the scholarship constrains the given dimension.
func (c Criteria) declares(d dimension) bool {
	switch d {
	case dimIncome:
		return c.IncomeMax != nil
	case dimCaste:
		return len(c.Castes) > 0
	case dimMarks:
		return c.MarksMin != nil
	case dimRegion:
		return c.Region != nil
	case dimDisability:
		return c.Disability != nil
	case dimAge:
		return c.Age != nil
	case dimCourse:
		return len(c.Courses) > 0
	}
	return false
}

// has reports whether the profile carries a value for the given dimension.
func (p Profile) has(d dimension) bool {
	switch d {
	case dimIncome:
		return p.Income != nil
	case dimCaste:
		return p.Caste != nil
	case dimMarks:
		return p.Marks != nil
	case dimRegion:
		return p.Region != nil
	case dimDisability:
		return p.Disability != nil
	case dimAge:
		return p.Age != nil
	case dimCourse:
		return p.Course != nil
	}
	return false
}

// satisfies evaluates the boolean satisfaction predicate for one dimension.
// Callers must ensure the dimension is declared and present in the profile.
func satisfies(p Profile, c Criteria, d dimension) bool {
	switch d {
	case dimIncome:
		return *p.Income <= *c.IncomeMax
	case dimCaste:
		for _, caste := range c.Castes {
			if strings.EqualFold(caste, *p.Caste) {
				return true
			}
		}
		return false
	case dimMarks:
		return *p.Marks >= *c.MarksMin
	case dimRegion:
		return *p.Region == *c.Region
	case dimDisability:
		return *p.Disability == *c.Disability
	case dimAge:
		min, max := ageBounds(*c.Age)
		return *p.Age >= min && *p.Age <= max
	case dimCourse:
		for _, course := range c.Courses {
			if strutil.ContainsFold(*p.Course, course) {
				return true
			}
		}
		return false
	}
	return false
}

// matchReason renders a satisfied dimension with the actual profile and
// threshold values interpolated.
func matchReason(p Profile, c Criteria, d dimension) string {
	switch d {
	case dimIncome:
		return fmt.Sprintf("Annual income Rs.%.0f is within the limit of Rs.%.0f", *p.Income, *c.IncomeMax)
	case dimCaste:
		return fmt.Sprintf("Caste %s is among the eligible categories (%s)", *p.Caste, strings.Join(c.Castes, ", "))
	case dimMarks:
		return fmt.Sprintf("Marks %.1f%% meet the minimum requirement of %.1f%%", *p.Marks, *c.MarksMin)
	case dimRegion:
		return fmt.Sprintf("Region %q matches the required region", *p.Region)
	case dimDisability:
		return "Disability status matches the scheme requirement"
	case dimAge:
		min, max := ageBounds(*c.Age)
		return fmt.Sprintf("Age %d is within the eligible range %d-%d", *p.Age, min, max)
	case dimCourse:
		return fmt.Sprintf("Course %q is covered by the scheme (%s)", *p.Course, strings.Join(c.Courses, ", "))
	}
	return ""
}

// missingReason renders a declared dimension the profile either lacks or
// fails. Evaluated independently of the comparison set, so a dimension
// excluded from scoring because the profile lacks the field still appears
// here.
func missingReason(p Profile, c Criteria, d dimension) string {
	switch d {
	case dimIncome:
		if p.Income == nil {
			return fmt.Sprintf("Income certificate required (limit Rs.%.0f)", *c.IncomeMax)
		}
		return fmt.Sprintf("Annual income must be at most Rs.%.0f (yours: Rs.%.0f)", *c.IncomeMax, *p.Income)
	case dimCaste:
		if p.Caste == nil {
			return fmt.Sprintf("Caste certificate required (eligible: %s)", strings.Join(c.Castes, ", "))
		}
		return fmt.Sprintf("Caste must be one of %s (yours: %s)", strings.Join(c.Castes, ", "), *p.Caste)
	case dimMarks:
		if p.Marks == nil {
			return fmt.Sprintf("Academic certificate required (minimum %.1f%%)", *c.MarksMin)
		}
		return fmt.Sprintf("Marks must be at least %.1f%% (yours: %.1f%%)", *c.MarksMin, *p.Marks)
	case dimRegion:
		if p.Region == nil {
			return fmt.Sprintf("Domicile certificate required (region: %s)", *c.Region)
		}
		return fmt.Sprintf("Region must be %s (yours: %s)", *c.Region, *p.Region)
	case dimDisability:
		if p.Disability == nil {
			return "Disability certificate required"
		}
		return "Disability status does not match the scheme requirement"
	case dimAge:
		min, max := ageBounds(*c.Age)
		if p.Age == nil {
			return fmt.Sprintf("Age proof required (eligible range %d-%d)", min, max)
		}
		return fmt.Sprintf("Age must be within %d-%d (yours: %d)", min, max, *p.Age)
	case dimCourse:
		if p.Course == nil {
			return fmt.Sprintf("Course enrollment proof required (covered: %s)", strings.Join(c.Courses, ", "))
		}
		return fmt.Sprintf("Course must be one of %s (yours: %s)", strings.Join(c.Courses, ", "), *p.Course)
	}
	return ""
}

// Evaluate scores one scholarship against a profile.
//
// The comparison set is the subset of declared dimensions the profile also
// has a value for; an empty comparison set yields score 0, which excludes the
// scholarship from ranked results. Missing criteria are computed over all
// declared dimensions regardless of comparison-set membership.
func Evaluate(s Scholarship, p Profile) Recommendation {
	rec := Recommendation{Scholarship: s}

	compared, satisfied := 0, 0
	for _, d := range dimensionOrder {
		if !s.Criteria.declares(d) {
			continue
		}

		inComparison := p.has(d)
		ok := inComparison && satisfies(p, s.Criteria, d)
		if inComparison {
			compared++
			if ok {
				satisfied++
				rec.MatchReasons = append(rec.MatchReasons, matchReason(p, s.Criteria, d))
			}
		}
		if !ok {
			rec.MissingCriteria = append(rec.MissingCriteria, missingReason(p, s.Criteria, d))
		}
	}

	if compared > 0 {
		rec.MatchScore = int(math.Round(100 * float64(satisfied) / float64(compared)))
	}
	return rec
}

// Rank evaluates every catalog entry against the profile and returns the
// recommendations with a positive score, sorted descending by score. The sort
// is stable: equal scores preserve catalog order.
func Rank(catalog []Scholarship, p Profile) []Recommendation {
	recs := make([]Recommendation, 0, len(catalog))
	for _, s := range catalog {
		rec := Evaluate(s, p)
		if rec.MatchScore > 0 {
			recs = append(recs, rec)
		}
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].MatchScore > recs[j].MatchScore
	})
	return recs
}
