package jobs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobtatkal/backend/models"
)

func fixtureJobs() []models.Job {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return []models.Job{
		{
			ID: "j1", Title: "Backend Engineer", CompanyName: "Acme",
			Location: "Bengaluru", JobType: models.JobTypeFullTime,
			CategorySlug: "engineering", Skills: []string{"Go", "PostgreSQL"},
			SalaryMax: 1500000, CreatedAt: base,
		},
		{
			ID: "j2", Title: "Product Designer", CompanyName: "Pixel Studio",
			Location: "Remote", JobType: models.JobTypeWorkFromHome,
			CategorySlug: "design", Skills: []string{"Figma"},
			SalaryMax: 1200000, CreatedAt: base.Add(48 * time.Hour),
		},
		{
			ID: "j3", Title: "Data Analyst", CompanyName: "Acme",
			Location: "Mumbai", JobType: models.JobTypePartTime,
			CategorySlug: "data-science", Skills: []string{"SQL", "Python"},
			SalaryMax: 900000, CreatedAt: base.Add(24 * time.Hour),
		},
		{
			ID: "j4", Title: "Platform Engineer", CompanyName: "CloudWorks",
			Location: "Bengaluru", JobType: models.JobTypeFullTime,
			CategorySlug: "engineering", Skills: []string{"Go", "Kubernetes"},
			SalaryMax: 2000000, CreatedAt: base.Add(72 * time.Hour),
		},
	}
}

func ids(jobs []models.Job) []string {
	out := make([]string, len(jobs))
	for i, j := range jobs {
		out[i] = j.ID
	}
	return out
}

func TestApplyDefaultsToRecencyOrder(t *testing.T) {
	got := Apply(fixtureJobs(), Filter{})
	assert.Equal(t, []string{"j4", "j2", "j3", "j1"}, ids(got))
}

func TestApplySortBySalary(t *testing.T) {
	got := Apply(fixtureJobs(), Filter{SortBy: SortSalary})
	assert.Equal(t, []string{"j4", "j1", "j2", "j3"}, ids(got))
}

func TestApplyQueryIsCaseInsensitiveAcrossFields(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"title match", "backend", []string{"j1"}},
		{"company match", "acme", []string{"j3", "j1"}},
		{"skill match", "kubernetes", []string{"j4"}},
		{"location match", "BENGALURU", []string{"j4", "j1"}},
		{"substring match", "engineer", []string{"j4", "j1"}},
		{"no match", "blockchain", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(fixtureJobs(), Filter{Query: tt.query})
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestApplyCombinesFiltersWithAND(t *testing.T) {
	got := Apply(fixtureJobs(), Filter{
		Query:        "go",
		JobType:      models.JobTypeFullTime,
		CategorySlug: "engineering",
	})
	require.Len(t, got, 2)
	assert.Equal(t, []string{"j4", "j1"}, ids(got))

	got = Apply(fixtureJobs(), Filter{
		Query:   "go",
		JobType: models.JobTypePartTime,
	})
	assert.Empty(t, got)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	in := fixtureJobs()
	Apply(in, Filter{SortBy: SortSalary})
	assert.Equal(t, []string{"j1", "j2", "j3", "j4"}, ids(in))
}

func TestApplySortIsStable(t *testing.T) {
	in := fixtureJobs()
	in[0].SalaryMax = 1200000 // tie with j2, j1 listed first stays first after filter order
	got := Apply(in, Filter{SortBy: SortSalary})
	assert.Equal(t, []string{"j4", "j1", "j2", "j3"}, ids(got))
}
