// Package applications implements candidate submissions to job listings:
// the self-application ban, the one-application-per-candidate-per-job
// rule, and the role-scoped visibility of submissions.
package applications

import "time"

// Application is a candidate's submission to a job.
type Application struct {
	ID          int64     `json:"id"`
	JobID       int64     `json:"job"`
	JobTitle    string    `json:"job_title"`
	CandidateID int64     `json:"candidate"`
	Resume      string    `json:"resume"`
	CoverLetter string    `json:"cover_letter"`
	CreatedAt   time.Time `json:"created_at"`

	// JobPostedBy carries the referenced job's poster for visibility
	// decisions; it is not part of the API shape.
	JobPostedBy *int64 `json:"-"`
}

// OwnerID resolves the application's owner to its candidate.
func (a *Application) OwnerID() (int64, bool) {
	return a.CandidateID, true
}
