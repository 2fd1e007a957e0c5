package applications

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobboard/jobboard/internal/authz"
	"github.com/jobboard/jobboard/internal/listings"
	"github.com/jobboard/jobboard/internal/shared"
)

type mockRepository struct {
	apps   map[int64]*Application
	jobs   map[int64]*listings.Job
	nextID int64

	// Error injection
	createError error
}

func newMockRepository(jobs map[int64]*listings.Job) *mockRepository {
	return &mockRepository{apps: make(map[int64]*Application), jobs: jobs, nextID: 1}
}

type pairKey struct{ job, candidate int64 }

func (m *mockRepository) pairs() map[pairKey]bool {
	set := make(map[pairKey]bool, len(m.apps))
	for _, app := range m.apps {
		set[pairKey{app.JobID, app.CandidateID}] = true
	}
	return set
}

func (m *mockRepository) Create(ctx context.Context, app Application) (*Application, error) {
	if m.createError != nil {
		return nil, m.createError
	}
	if m.pairs()[pairKey{app.JobID, app.CandidateID}] {
		return nil, fmt.Errorf("%w: already applied to this job", shared.ErrConflict)
	}
	app.ID = m.nextID
	m.nextID++
	app.CreatedAt = time.Now()
	// Rows come back joined against the job, as the SQL layer does.
	if job, ok := m.jobs[app.JobID]; ok {
		app.JobTitle = job.Title
		app.JobPostedBy = job.PostedBy
	}
	m.apps[app.ID] = &app
	return &app, nil
}

func (m *mockRepository) Get(ctx context.Context, id int64) (*Application, error) {
	app, ok := m.apps[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *app
	return &copied, nil
}

func (m *mockRepository) Exists(ctx context.Context, jobID, candidateID int64) (bool, error) {
	return m.pairs()[pairKey{jobID, candidateID}], nil
}

func (m *mockRepository) ListAll(ctx context.Context) ([]Application, error) {
	result := make([]Application, 0, len(m.apps))
	for _, app := range m.apps {
		result = append(result, *app)
	}
	return result, nil
}

func (m *mockRepository) ListVisible(ctx context.Context, userID int64) ([]Application, error) {
	var result []Application
	for _, app := range m.apps {
		if app.CandidateID == userID || (app.JobPostedBy != nil && *app.JobPostedBy == userID) {
			result = append(result, *app)
		}
	}
	return result, nil
}

func (m *mockRepository) Update(ctx context.Context, id int64, resume, coverLetter string) (*Application, error) {
	app, ok := m.apps[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	app.Resume = resume
	app.CoverLetter = coverLetter
	copied := *app
	return &copied, nil
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.apps[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.apps, id)
	return nil
}

type mockJobs struct {
	jobs map[int64]*listings.Job
}

func (m *mockJobs) Get(ctx context.Context, id int64) (*listings.Job, error) {
	job, ok := m.jobs[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return job, nil
}

var (
	admin     = authz.Actor{ID: 1, Role: authz.RoleAdmin, Authenticated: true}
	recruiter = authz.Actor{ID: 2, Role: authz.RoleRecruiter, Authenticated: true}
	candidate = authz.Actor{ID: 3, Role: authz.RoleUser, Authenticated: true}
	bystander = authz.Actor{ID: 4, Role: authz.RoleUser, Authenticated: true}
)

func newService(t *testing.T) (*Service, *mockRepository, *mockJobs) {
	t.Helper()
	poster := recruiter.ID
	jobs := &mockJobs{jobs: map[int64]*listings.Job{
		10: {ID: 10, Title: "Backend Engineer", PostedBy: &poster},
	}}
	repo := newMockRepository(jobs.jobs)
	return NewService(repo, jobs), repo, jobs
}

func TestSubmit(t *testing.T) {
	service, _, _ := newService(t)
	ctx := context.Background()

	app, err := service.Submit(ctx, candidate, 10, SubmitInput{Resume: "ten years of Go"})
	require.NoError(t, err)
	assert.Equal(t, int64(10), app.JobID)
	assert.Equal(t, candidate.ID, app.CandidateID, "candidate always comes from the actor")
	assert.Equal(t, "Backend Engineer", app.JobTitle)
	require.NotNil(t, app.JobPostedBy, "poster carried through for visibility checks")
	assert.Equal(t, recruiter.ID, *app.JobPostedBy)
}

func TestSubmitUnknownJob(t *testing.T) {
	service, _, _ := newService(t)
	_, err := service.Submit(context.Background(), candidate, 999, SubmitInput{Resume: "r"})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestSubmitAnonymous(t *testing.T) {
	service, _, _ := newService(t)
	_, err := service.Submit(context.Background(), authz.Anonymous(), 10, SubmitInput{Resume: "r"})
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestSubmitOwnJobDenied(t *testing.T) {
	service, repo, _ := newService(t)
	_, err := service.Submit(context.Background(), recruiter, 10, SubmitInput{Resume: "impressive resume"})
	assert.ErrorIs(t, err, shared.ErrPermissionDenied)
	assert.Empty(t, repo.apps, "denied submission must not persist anything")
}

func TestSubmitRequiresResume(t *testing.T) {
	service, _, _ := newService(t)
	_, err := service.Submit(context.Background(), candidate, 10, SubmitInput{CoverLetter: "only a letter"})
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestSubmitDuplicate(t *testing.T) {
	service, repo, _ := newService(t)
	ctx := context.Background()

	_, err := service.Submit(ctx, candidate, 10, SubmitInput{Resume: "first"})
	require.NoError(t, err)

	_, err = service.Submit(ctx, candidate, 10, SubmitInput{Resume: "second"})
	assert.ErrorIs(t, err, shared.ErrValidation, "pre-check rejects the duplicate")
	assert.Len(t, repo.apps, 1, "never a second row")
}

func TestSubmitRaceLoserGetsConflict(t *testing.T) {
	service, repo, _ := newService(t)
	ctx := context.Background()

	// The pre-check passes but a concurrent writer wins the insert: the
	// storage constraint surfaces as a conflict, not a second row.
	repo.createError = fmt.Errorf("%w: already applied to this job", shared.ErrConflict)
	_, err := service.Submit(ctx, candidate, 10, SubmitInput{Resume: "racy"})
	assert.ErrorIs(t, err, shared.ErrConflict)
}

func TestListScoping(t *testing.T) {
	service, _, _ := newService(t)
	ctx := context.Background()

	submitted, err := service.Submit(ctx, candidate, 10, SubmitInput{Resume: "r"})
	require.NoError(t, err)

	// Admin sees everything.
	all, err := service.List(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	// The candidate sees their own submission.
	mine, err := service.List(ctx, candidate)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, submitted.ID, mine[0].ID)

	// The job's poster sees submissions to their job.
	incoming, err := service.List(ctx, recruiter)
	require.NoError(t, err)
	assert.Len(t, incoming, 1)

	// An unrelated user sees nothing.
	other, err := service.List(ctx, bystander)
	require.NoError(t, err)
	assert.Empty(t, other)

	_, err = service.List(ctx, authz.Anonymous())
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestGetVisibility(t *testing.T) {
	service, _, _ := newService(t)
	ctx := context.Background()

	app, err := service.Submit(ctx, candidate, 10, SubmitInput{Resume: "r"})
	require.NoError(t, err)

	for _, actor := range []authz.Actor{candidate, recruiter, admin} {
		_, err := service.Get(ctx, actor, app.ID)
		assert.NoError(t, err, "actor %d", actor.ID)
	}
	_, err = service.Get(ctx, bystander, app.ID)
	assert.ErrorIs(t, err, shared.ErrPermissionDenied)
}

func TestUpdateAndDeleteGating(t *testing.T) {
	service, repo, _ := newService(t)
	ctx := context.Background()

	app, err := service.Submit(ctx, candidate, 10, SubmitInput{Resume: "v1"})
	require.NoError(t, err)

	updated, err := service.Update(ctx, candidate, app.ID, SubmitInput{Resume: "v2"})
	require.NoError(t, err)
	assert.Equal(t, "v2", updated.Resume)

	_, err = service.Update(ctx, bystander, app.ID, SubmitInput{Resume: "hijack"})
	assert.ErrorIs(t, err, shared.ErrPermissionDenied)

	// The job's poster may manage submissions to their job.
	_, err = service.Update(ctx, recruiter, app.ID, SubmitInput{Resume: "v3"})
	assert.NoError(t, err)

	assert.ErrorIs(t, service.Delete(ctx, bystander, app.ID), shared.ErrPermissionDenied)
	assert.NoError(t, service.Delete(ctx, candidate, app.ID))
	assert.Empty(t, repo.apps)
}

func TestOrphanedJobStillAcceptsApplications(t *testing.T) {
	service, _, jobs := newService(t)
	ctx := context.Background()
	jobs.jobs[11] = &listings.Job{ID: 11, Title: "Orphaned"}

	app, err := service.Submit(ctx, candidate, 11, SubmitInput{Resume: "r"})
	require.NoError(t, err)
	assert.Equal(t, int64(11), app.JobID)
}
