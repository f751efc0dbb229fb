package features

import (
	"github.com/okian/talentmatch/internal/domain/model"
)

// Pair is one talent/job combination fed to the pipeline.
type Pair struct {
	Talent model.Talent `json:"talent"`
	Job    model.Job    `json:"job"`
}

// Record is a pair after normalization: every optional field is filled.
type Record struct {
	TalentID string
	JobID    string

	TalentDegree    string
	TalentSalary    int
	TalentSeniority string
	TalentJobRoles  []string
	TalentLanguages []model.Language

	JobMinDegree   string
	JobMaxSalary   int
	JobSeniorities []string
	JobJobRoles    []string
	JobLanguages   []model.Language
}

// Dotted field paths of a Record.
const (
	PathTalentID        = "talent.talent_id"
	PathTalentDegree    = "talent.degree"
	PathTalentSalary    = "talent.salary_expectation"
	PathTalentSeniority = "talent.seniority"
	PathTalentJobRoles  = "talent.job_roles"
	PathTalentLanguages = "talent.languages"
	PathJobID           = "job.job_id"
	PathJobMinDegree    = "job.min_degree"
	PathJobMaxSalary    = "job.max_salary"
	PathJobSeniorities  = "job.seniorities"
	PathJobJobRoles     = "job.job_roles"
	PathJobLanguages    = "job.languages"
)

// Path returns the value at a dotted path such as "talent.degree".
func (r Record) Path(path string) (any, bool) {
	switch path {
	case PathTalentID:
		return r.TalentID, true
	case PathTalentDegree:
		return r.TalentDegree, true
	case PathTalentSalary:
		return r.TalentSalary, true
	case PathTalentSeniority:
		return r.TalentSeniority, true
	case PathTalentJobRoles:
		return r.TalentJobRoles, true
	case PathTalentLanguages:
		return r.TalentLanguages, true
	case PathJobID:
		return r.JobID, true
	case PathJobMinDegree:
		return r.JobMinDegree, true
	case PathJobMaxSalary:
		return r.JobMaxSalary, true
	case PathJobSeniorities:
		return r.JobSeniorities, true
	case PathJobJobRoles:
		return r.JobJobRoles, true
	case PathJobLanguages:
		return r.JobLanguages, true
	default:
		return nil, false
	}
}
