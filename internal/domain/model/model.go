// Package model contains domain models passed between layers.
package model

// Language is a language entry on either side of a pair. MustHave is only
// meaningful on jobs.
type Language struct {
	Title    string `json:"title"`
	Rating   string `json:"rating"`
	MustHave bool   `json:"must_have,omitempty"`
}

// Talent is a job-seeker profile. Every field except TalentID may be absent;
// nil means absent.
type Talent struct {
	TalentID          string     `json:"talent_id"`
	Languages         []Language `json:"languages"`
	JobRoles          []string   `json:"job_roles"`
	Seniority         *string    `json:"seniority,omitempty"`
	SalaryExpectation *int       `json:"salary_expectation,omitempty"`
	Degree            *string    `json:"degree,omitempty"`
}

// Job is an employer-side vacancy. Every field except JobID may be absent.
type Job struct {
	JobID       string     `json:"job_id"`
	Languages   []Language `json:"languages"`
	JobRoles    []string   `json:"job_roles"`
	Seniorities []string   `json:"seniorities"`
	MaxSalary   *int       `json:"max_salary,omitempty"`
	MinDegree   *string    `json:"min_degree,omitempty"`
}

// MatchResult is one scored pair. Label and Score come from the same
// classifier invocation.
type MatchResult struct {
	Talent Talent  `json:"talent"`
	Job    Job     `json:"job"`
	Label  bool    `json:"label"`
	Score  float64 `json:"score"`
}

// Criteria holds rank_and_filter post-filters keyed by name.
type Criteria map[string]any

// Sample is one labelled row of the raw training dataset.
type Sample struct {
	Talent Talent `json:"talent"`
	Job    Job    `json:"job"`
	Label  bool   `json:"label"`
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T { return &v }
