// Package jobs implements listing filter and sort over in-memory job
// collections. It is a pure function layer; querying and persistence
// live in the storage package.
package jobs

import (
	"sort"
	"strings"

	"github.com/jobtatkal/backend/models"
)

// Sort keys
const (
	SortRecent = "recent"
	SortSalary = "salary"
)

// Filter describes the active listing filters. Zero values mean "no
// constraint" for that dimension; all active dimensions combine with AND.
type Filter struct {
	Query        string // case-insensitive substring over title, company, skills, location
	JobType      string // exact job-type tag, e.g. "Full Time"
	CategorySlug string // exact category slug, e.g. "engineering"
	SortBy       string // SortRecent (default) or SortSalary
}

// Apply returns the ordered subsequence of jobs matching every active
// filter, stably sorted by the chosen key. The input slice is not
// modified.
func Apply(all []models.Job, f Filter) []models.Job {
	results := make([]models.Job, 0, len(all))
	for _, j := range all {
		if matches(j, f) {
			results = append(results, j)
		}
	}

	switch f.SortBy {
	case SortSalary:
		sort.SliceStable(results, func(i, k int) bool {
			return results[i].SalaryMax > results[k].SalaryMax
		})
	default:
		sort.SliceStable(results, func(i, k int) bool {
			return results[i].CreatedAt.After(results[k].CreatedAt)
		})
	}

	return results
}

func matches(j models.Job, f Filter) bool {
	if f.JobType != "" && j.JobType != f.JobType {
		return false
	}
	if f.CategorySlug != "" && j.CategorySlug != f.CategorySlug {
		return false
	}
	if f.Query != "" && !matchesQuery(j, f.Query) {
		return false
	}
	return true
}

func matchesQuery(j models.Job, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(j.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(j.CompanyName), q) {
		return true
	}
	if strings.Contains(strings.ToLower(j.Location), q) {
		return true
	}
	for _, s := range j.Skills {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}
