package loadtest

import (
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/okian/talentmatch/internal/domain/features"
	"github.com/okian/talentmatch/internal/domain/model"
)

// Endpoints exercised by a run.
const (
	EndpointMatchBulk     = "/match_bulk"
	EndpointRankAndFilter = "/rank_and_filter"
)

// Value pools for generated profiles.
var (
	languageTitles = []string{"German", "English", "French", "Spanish", "Italian"}                                 //nolint:gochecknoglobals // read-only pool
	jobRoles       = []string{"customer-success-manager", "sales-manager", "account-manager", "support-specialist"} //nolint:gochecknoglobals // read-only pool
)

// Generation bounds.
const (
	salaryFloor  = 30_000
	salarySpread = 90_000
	salaryStep   = 1_000
	maxLanguages = 3
	maxRoles     = 2
)

// Request is one generated call against the service.
type Request struct {
	Endpoint string
	Body     any
	Talents  int
	Jobs     int
	Filter   bool
}

type matchBulkBody struct {
	Talents     []model.Talent `json:"talents"`
	Jobs        []model.Job    `json:"jobs"`
	FilterFalse bool           `json:"filter_false_predictions"`
}

type rankAndFilterBody struct {
	Talent   model.Talent   `json:"talent"`
	Jobs     []model.Job    `json:"jobs"`
	Criteria model.Criteria `json:"criteria,omitempty"`
}

// Generator produces random but well-formed talents, jobs and requests.
// It is not safe for concurrent use.
type Generator struct {
	rnd         *rand.Rand
	degrees     []string
	seniorities []string
	ratings     []string
}

// NewGenerator returns a generator seeded with seed. IDs are random UUIDs
// so repeated runs never collide.
func NewGenerator(seed uint64) *Generator {
	return &Generator{
		rnd:         rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		degrees:     features.Degrees(),
		seniorities: features.Seniorities(),
		ratings:     features.Ratings(),
	}
}

// Talent returns a talent with every optional field present.
func (g *Generator) Talent() model.Talent {
	return model.Talent{
		TalentID:          uuid.NewString(),
		Languages:         g.languages(false),
		JobRoles:          g.roles(),
		Seniority:         model.Ptr(g.pick(g.seniorities[1:])),
		SalaryExpectation: model.Ptr(g.salary()),
		Degree:            model.Ptr(g.pick(g.degrees)),
	}
}

// Job returns a job with every optional field present.
func (g *Generator) Job() model.Job {
	n := 1 + g.rnd.IntN(2)
	seniorities := make([]string, 0, n)
	for _, idx := range g.rnd.Perm(len(g.seniorities) - 1)[:n] {
		seniorities = append(seniorities, g.seniorities[idx+1])
	}
	return model.Job{
		JobID:       uuid.NewString(),
		Languages:   g.languages(true),
		JobRoles:    g.roles(),
		Seniorities: seniorities,
		MaxSalary:   model.Ptr(g.salary()),
		MinDegree:   model.Ptr(g.pick(g.degrees)),
	}
}

// Request alternates between match_bulk and rank_and_filter calls.
func (g *Generator) Request(i, talents, jobs int) Request {
	js := make([]model.Job, jobs)
	for k := range js {
		js[k] = g.Job()
	}

	if i%2 == 1 {
		var criteria model.Criteria
		if g.rnd.IntN(2) == 0 {
			criteria = model.Criteria{"salary_expectation": float64(g.salary())}
		}
		return Request{
			Endpoint: EndpointRankAndFilter,
			Body:     rankAndFilterBody{Talent: g.Talent(), Jobs: js, Criteria: criteria},
			Talents:  1,
			Jobs:     jobs,
			Filter:   true,
		}
	}

	ts := make([]model.Talent, talents)
	for k := range ts {
		ts[k] = g.Talent()
	}
	filter := g.rnd.IntN(2) == 0
	return Request{
		Endpoint: EndpointMatchBulk,
		Body:     matchBulkBody{Talents: ts, Jobs: js, FilterFalse: filter},
		Talents:  talents,
		Jobs:     jobs,
		Filter:   filter,
	}
}

func (g *Generator) languages(job bool) []model.Language {
	n := 1 + g.rnd.IntN(maxLanguages)
	out := make([]model.Language, 0, n)
	for _, idx := range g.rnd.Perm(len(languageTitles))[:n] {
		l := model.Language{Title: languageTitles[idx], Rating: g.pick(g.ratings[1:])}
		if job {
			l.MustHave = g.rnd.IntN(2) == 0
		}
		out = append(out, l)
	}
	return out
}

func (g *Generator) roles() []string {
	n := 1 + g.rnd.IntN(maxRoles)
	out := make([]string, 0, n)
	for _, idx := range g.rnd.Perm(len(jobRoles))[:n] {
		out = append(out, jobRoles[idx])
	}
	return out
}

func (g *Generator) salary() int {
	return salaryFloor + g.rnd.IntN(salarySpread/salaryStep)*salaryStep
}

func (g *Generator) pick(values []string) string {
	return values[g.rnd.IntN(len(values))]
}
