// Package listings implements job postings: recruiter/admin authored
// listings grouped into categories, owned by their poster.
package listings

import "time"

// CategoryRef is the joined category summary on a job.
type CategoryRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Job is a single listing.
type Job struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Company     string      `json:"company"`
	Location    string      `json:"location"`
	JobType     string      `json:"job_type"`
	Category    CategoryRef `json:"category"`
	PostedBy    *int64      `json:"posted_by"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// OwnerID resolves the job's owner to its poster. A job whose poster was
// removed has no owner and only admins may mutate it.
func (j *Job) OwnerID() (int64, bool) {
	if j.PostedBy == nil {
		return 0, false
	}
	return *j.PostedBy, true
}

// ListFilters narrows and orders a listing query.
type ListFilters struct {
	CategoryID int64
	JobType    string
	Location   string
	Search     string
	SortBy     string
	SortDir    string
	Page       int
	Limit      int
}
