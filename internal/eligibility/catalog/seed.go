package catalog

import (
	"context"
	"time"

	"eduraksha/internal/eligibility"
)

// NewStaticFetcher returns a fetcher serving the built-in scheme list. There
// is no live government-portal fetch; the static list stands in for it behind
// the same interface.
func NewStaticFetcher() Fetcher {
	return FetcherFunc(func(_ context.Context) ([]eligibility.Scholarship, error) {
		return seedScholarships(), nil
	})
}

func floatPtr(f float64) *float64 { return &f }
func strPtr(s string) *string     { return &s }
func boolPtr(b bool) *bool        { return &b }

// seedScholarships returns fresh copies so callers can never mutate the seed.
func seedScholarships() []eligibility.Scholarship {
	return []eligibility.Scholarship{
		{
			ID:          "nsp-post-matric-sc",
			Name:        "Post-Matric Scholarship for SC Students",
			Description: "Central scheme supporting SC students studying at post-matriculation stages.",
			Amount:      "Rs.12,000 per year",
			Source:      "National Scholarship Portal",
			Category:    "Post-Matric",
			Deadline:    time.Date(2026, time.October, 31, 0, 0, 0, 0, time.UTC),
			Status:      eligibility.StatusOpen,
			Criteria: eligibility.Criteria{
				IncomeMax: floatPtr(250000),
				Castes:    []string{"SC"},
				MarksMin:  floatPtr(60),
			},
		},
		{
			ID:          "nsp-post-matric-st",
			Name:        "Post-Matric Scholarship for ST Students",
			Description: "Central scheme supporting ST students studying at post-matriculation stages.",
			Amount:      "Rs.12,000 per year",
			Source:      "National Scholarship Portal",
			Category:    "Post-Matric",
			Deadline:    time.Date(2026, time.October, 31, 0, 0, 0, 0, time.UTC),
			Status:      eligibility.StatusOpen,
			Criteria: eligibility.Criteria{
				IncomeMax: floatPtr(250000),
				Castes:    []string{"ST"},
				MarksMin:  floatPtr(60),
			},
		},
		{
			ID:          "merit-cum-means-minority",
			Name:        "Merit-cum-Means Scholarship for Minority Students",
			Description: "Scholarship for professional and technical courses at undergraduate and postgraduate level.",
			Amount:      "Rs.20,000 per year",
			Source:      "Ministry of Minority Affairs",
			Category:    "Merit-cum-Means",
			Deadline:    time.Date(2026, time.November, 15, 0, 0, 0, 0, time.UTC),
			Status:      eligibility.StatusOpen,
			Criteria: eligibility.Criteria{
				IncomeMax: floatPtr(250000),
				MarksMin:  floatPtr(50),
				Courses:   []string{"Engineering", "Medicine", "Management"},
			},
		},
		{
			ID:          "karnataka-rural-merit",
			Name:        "Karnataka Rural Merit Scholarship",
			Description: "State scholarship for meritorious students from rural Karnataka.",
			Amount:      "Rs.10,000 per year",
			Source:      "Karnataka Government",
			Category:    "Merit",
			Deadline:    time.Date(2026, time.September, 30, 0, 0, 0, 0, time.UTC),
			Status:      eligibility.StatusOpen,
			Criteria: eligibility.Criteria{
				MarksMin: floatPtr(75),
				Region:   strPtr("rural"),
			},
		},
		{
			ID:          "national-fellowship-pwd",
			Name:        "National Fellowship for Persons with Disabilities",
			Description: "Fellowship for students with benchmark disabilities pursuing higher education.",
			Amount:      "Rs.25,000 per year",
			Source:      "Department of Empowerment of Persons with Disabilities",
			Category:    "Fellowship",
			Deadline:    time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC),
			Status:      eligibility.StatusOpen,
			Criteria: eligibility.Criteria{
				Disability: boolPtr(true),
				MarksMin:   floatPtr(55),
			},
		},
		{
			ID:          "obc-post-matric",
			Name:        "Post-Matric Scholarship for OBC Students",
			Description: "Scheme supporting OBC students in post-matric courses.",
			Amount:      "Rs.8,000 per year",
			Source:      "National Scholarship Portal",
			Category:    "Post-Matric",
			Deadline:    time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC),
			Status:      eligibility.StatusOpen,
			Criteria: eligibility.Criteria{
				IncomeMax: floatPtr(150000),
				Castes:    []string{"OBC"},
				MarksMin:  floatPtr(50),
			},
		},
		{
			ID:          "inspire-science",
			Name:        "INSPIRE Scholarship for Higher Education",
			Description: "Scholarship for students pursuing basic and natural science courses.",
			Amount:      "Rs.80,000 per year",
			Source:      "Department of Science and Technology",
			Category:    "Science",
			Deadline:    time.Date(2027, time.January, 31, 0, 0, 0, 0, time.UTC),
			Status:      eligibility.StatusUpcoming,
			Criteria: eligibility.Criteria{
				MarksMin: floatPtr(85),
				Age:      &eligibility.AgeRange{Min: 17, Max: 22},
				Courses:  []string{"Science", "Physics", "Chemistry", "Mathematics", "Biology"},
			},
		},
	}
}
