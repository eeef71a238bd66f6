package eligibility

import "time"

// ScholarshipStatus reports whether a scheme is currently accepting applications.
type ScholarshipStatus string

const (
	StatusOpen     ScholarshipStatus = "open"
	StatusClosed   ScholarshipStatus = "closed"
	StatusUpcoming ScholarshipStatus = "upcoming"
)

// AgeRange bounds an age criterion. Missing bounds default to 0 and 100.
type AgeRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Criteria is the structured eligibility predicate a scholarship declares.
// Nil pointer / empty slice means the dimension is not declared.
type Criteria struct {
	IncomeMax  *float64  `json:"incomeMax,omitempty"`
	Castes     []string  `json:"castes,omitempty"`
	MarksMin   *float64  `json:"marksMin,omitempty"`
	Region     *string   `json:"region,omitempty"`
	Disability *bool     `json:"disability,omitempty"`
	Age        *AgeRange `json:"age,omitempty"`
	Courses    []string  `json:"courses,omitempty"`
}

// Scholarship is one read-only catalog record. The catalog is supplied at
// startup and never mutated by the matcher.
type Scholarship struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Amount      string            `json:"amount"`
	Source      string            `json:"source"`
	Category    string            `json:"category"`
	Deadline    time.Time         `json:"deadline"`
	Status      ScholarshipStatus `json:"status"`
	Criteria    Criteria          `json:"criteria"`
}

// Profile is the ephemeral user profile extracted from active credentials.
// Nil fields mean the holder has no credentialed value for that dimension.
// Profiles are built per query and never persisted.
type Profile struct {
	Income      *float64 `json:"income,omitempty"`
	Caste       *string  `json:"caste,omitempty"`
	Marks       *float64 `json:"marks,omitempty"`
	Region      *string  `json:"region,omitempty"`
	Disability  *bool    `json:"disability,omitempty"`
	Age         *int     `json:"age,omitempty"`
	Course      *string  `json:"course,omitempty"`
	Institution *string  `json:"institution,omitempty"`
}

// IsEmpty reports whether no dimension of the profile is set.
func (p Profile) IsEmpty() bool {
	return p.Income == nil && p.Caste == nil && p.Marks == nil &&
		p.Region == nil && p.Disability == nil && p.Age == nil &&
		p.Course == nil && p.Institution == nil
}

// Recommendation pairs a scholarship with its match outcome for one profile.
type Recommendation struct {
	Scholarship     Scholarship `json:"scholarship"`
	MatchScore      int         `json:"matchScore"`
	MatchReasons    []string    `json:"matchReasons"`
	MissingCriteria []string    `json:"missingCriteria"`
}
