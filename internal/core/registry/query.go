package registry

import (
	"strings"
	"time"
)

// Query describes one view over the registry: free-text search, inclusive
// date bounds at day granularity, and 1-indexed pagination. Nil date bounds
// mean unbounded on that side.
type Query struct {
	SearchText string
	DateFrom   *time.Time
	DateTo     *time.Time
	Page       int
	PageSize   int
}

// NewQuery returns the cleared view: no filters, first page.
func NewQuery(pageSize int) Query {
	return Query{Page: 1, PageSize: pageSize}
}

// WithSearch returns a copy with new search text. Changing a filter resets
// pagination; stale page numbers across a new filter are not permitted.
func (q Query) WithSearch(text string) Query {
	q.SearchText = text
	q.Page = 1
	return q
}

// WithDateFrom returns a copy with a new lower bound and the page reset.
func (q Query) WithDateFrom(from *time.Time) Query {
	q.DateFrom = from
	q.Page = 1
	return q
}

// WithDateTo returns a copy with a new upper bound and the page reset.
func (q Query) WithDateTo(to *time.Time) Query {
	q.DateTo = to
	q.Page = 1
	return q
}

// WithPage returns a copy on another page, filters untouched.
func (q Query) WithPage(page int) Query {
	q.Page = page
	return q
}

// Cleared drops every filter and returns to the first page.
func (q Query) Cleared() Query {
	return NewQuery(q.PageSize)
}

// Result is the outcome of applying a query to a set of entries.
type Result struct {
	Matched     []Entry
	TotalCount  int
	TotalPages  int
	Page        int
	PageEntries []Entry
}

// Apply filters and paginates entries. Matching is the conjunction of the
// search predicate (case-insensitive substring over number and counterparty,
// empty text matches everything) and the inclusive date-range predicate.
// Requesting a page beyond the last yields an empty page; callers that want
// clamping use ClampPage first. Apply never mutates its input.
func Apply(entries []Entry, q Query) Result {
	matched := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if matchesSearch(entry, q.SearchText) && matchesDates(entry, q.DateFrom, q.DateTo) {
			matched = append(matched, entry)
		}
	}

	pageSize := q.PageSize
	if pageSize < 1 {
		pageSize = 1
	}
	totalPages := (len(matched) + pageSize - 1) / pageSize

	res := Result{
		Matched:     matched,
		TotalCount:  len(matched),
		TotalPages:  totalPages,
		Page:        q.Page,
		PageEntries: []Entry{},
	}

	start := (q.Page - 1) * pageSize
	if q.Page < 1 || start >= len(matched) {
		return res
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}
	res.PageEntries = matched[start:end]
	return res
}

// ClampPage constrains the page to [1, max(1, totalPages)].
func (q Query) ClampPage(totalPages int) Query {
	if totalPages < 1 {
		totalPages = 1
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Page > totalPages {
		q.Page = totalPages
	}
	return q
}

func matchesSearch(e Entry, text string) bool {
	if text == "" {
		return true
	}
	needle := strings.ToLower(text)
	return strings.Contains(strings.ToLower(e.Number), needle) ||
		strings.Contains(strings.ToLower(e.CounterpartyName), needle)
}

func matchesDates(e Entry, from, to *time.Time) bool {
	day := dayOf(e.Date)
	if from != nil && day.Before(dayOf(*from)) {
		return false
	}
	if to != nil && day.After(dayOf(*to)) {
		return false
	}
	return true
}

// dayOf truncates to day granularity; bounds are inclusive whole days.
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
