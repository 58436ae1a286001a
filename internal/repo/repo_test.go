package repo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/job_board/internal/models"
	"github.com/Skotchmaster/job_board/internal/testutil"
	"github.com/Skotchmaster/job_board/pkg/apperr"
)

func newRepo(t *testing.T) *GormRepo {
	t.Helper()
	return &GormRepo{DB: testutil.NewDB(t)}
}

func TestLikePattern_EscapesWildcards(t *testing.T) {
	assert.Equal(t, "%go!_dev!%!!%", likePattern("  Go_Dev%! "))
}

func TestCreateUser_DuplicateEmailIsConflict(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	require.NoError(t, r.CreateUser(ctx, &models.User{Email: "a@b.com", PasswordHash: "x", Role: models.RoleJobseeker}))
	err := r.CreateUser(ctx, &models.User{Email: "a@b.com", PasswordHash: "y", Role: models.RoleJobseeker})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	r := newRepo(t)

	_, err := r.GetUserByEmail(context.Background(), "nobody@b.com")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestRevokeRefreshIfActive_OnlyOnce(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()
	now := time.Now().UTC()

	tok := &models.RefreshToken{TokenHash: "h1", UserID: "u1", FamilyID: "f1", ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, r.CreateRefresh(ctx, tok))

	ok, err := r.RevokeRefreshIfActive(ctx, tok.ID, now)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.RevokeRefreshIfActive(ctx, tok.ID, now)
	require.NoError(t, err)
	assert.False(t, ok)

	stored, err := r.FindRefreshByHash(ctx, "h1")
	require.NoError(t, err)
	assert.True(t, stored.Revoked)
	require.NotNil(t, stored.RevokedAt)
}

func TestRevokeAllForUser(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()
	now := time.Now().UTC()

	for _, h := range []string{"a", "b", "c"} {
		require.NoError(t, r.CreateRefresh(ctx, &models.RefreshToken{TokenHash: h, UserID: "u1", FamilyID: h, ExpiresAt: now.Add(time.Hour)}))
	}
	require.NoError(t, r.CreateRefresh(ctx, &models.RefreshToken{TokenHash: "other", UserID: "u2", FamilyID: "o", ExpiresAt: now.Add(time.Hour)}))

	n, err := r.RevokeAllForUser(ctx, "u1", now)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	active, err := r.CountActiveInFamily(ctx, "o", now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, active)
}

func TestListJobs_Filters(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	owner := testutil.CreateUser(t, r.DB, "emp@b.com", models.RoleEmployer)
	company := testutil.CreateCompany(t, r.DB, owner.ID, "Acme")
	goJob := testutil.CreateJob(t, r.DB, company, "Go Developer")
	closed := testutil.CreateJob(t, r.DB, company, "Rust Developer")
	closed.Status = models.JobClosed
	closed.Remote = true
	require.NoError(t, r.SaveJob(ctx, closed))

	remote := true
	tests := []struct {
		name   string
		filter JobFilter
		want   []string
	}{
		{name: "query matches title", filter: JobFilter{Query: "go"}, want: []string{goJob.ID}},
		{name: "status open", filter: JobFilter{Status: models.JobOpen}, want: []string{goJob.ID}},
		{name: "remote", filter: JobFilter{Remote: &remote}, want: []string{closed.ID}},
		{name: "wildcard is literal", filter: JobFilter{Query: "%"}, want: nil},
		{name: "company", filter: JobFilter{CompanyID: company.ID, Query: "developer"}, want: []string{goJob.ID, closed.ID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobs, total, err := r.ListJobs(ctx, tt.filter, 0, 10)
			require.NoError(t, err)
			assert.EqualValues(t, len(tt.want), total)

			var ids []string
			for _, j := range jobs {
				ids = append(ids, j.ID)
				require.NotNil(t, j.Company)
			}
			assert.ElementsMatch(t, tt.want, ids)
		})
	}
}

func TestGetJobsByIDs_KeepsOrder(t *testing.T) {
	r := newRepo(t)
	owner := testutil.CreateUser(t, r.DB, "emp@b.com", models.RoleEmployer)
	company := testutil.CreateCompany(t, r.DB, owner.ID, "Acme")
	a := testutil.CreateJob(t, r.DB, company, "A")
	b := testutil.CreateJob(t, r.DB, company, "B")

	jobs, err := r.GetJobsByIDs(context.Background(), []string{b.ID, "missing", a.ID})
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, b.ID, jobs[0].ID)
	assert.Equal(t, a.ID, jobs[1].ID)
}

func TestDeleteJob_RemovesChildren(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	owner := testutil.CreateUser(t, r.DB, "emp@b.com", models.RoleEmployer)
	seeker := testutil.CreateUser(t, r.DB, "js@b.com", models.RoleJobseeker)
	company := testutil.CreateCompany(t, r.DB, owner.ID, "Acme")
	job := testutil.CreateJob(t, r.DB, company, "Go Developer")

	require.NoError(t, r.CreateApplication(ctx, &models.Application{JobID: job.ID, ApplicantID: seeker.ID, Status: models.AppPending}))
	_, err := r.SaveJobForUser(ctx, seeker.ID, job.ID)
	require.NoError(t, err)

	require.NoError(t, r.DeleteJob(ctx, job.ID))

	var apps, saved int64
	require.NoError(t, r.DB.Model(&models.Application{}).Count(&apps).Error)
	require.NoError(t, r.DB.Model(&models.SavedJob{}).Count(&saved).Error)
	assert.Zero(t, apps)
	assert.Zero(t, saved)

	assert.ErrorIs(t, r.DeleteJob(ctx, job.ID), apperr.ErrNotFound)
}

func TestCreateApplication_Duplicate(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	owner := testutil.CreateUser(t, r.DB, "emp@b.com", models.RoleEmployer)
	seeker := testutil.CreateUser(t, r.DB, "js@b.com", models.RoleJobseeker)
	job := testutil.CreateJob(t, r.DB, testutil.CreateCompany(t, r.DB, owner.ID, "Acme"), "Go")

	require.NoError(t, r.CreateApplication(ctx, &models.Application{JobID: job.ID, ApplicantID: seeker.ID, Status: models.AppPending}))
	err := r.CreateApplication(ctx, &models.Application{JobID: job.ID, ApplicantID: seeker.ID, Status: models.AppPending})
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestSaveJobForUser_Idempotent(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	owner := testutil.CreateUser(t, r.DB, "emp@b.com", models.RoleEmployer)
	seeker := testutil.CreateUser(t, r.DB, "js@b.com", models.RoleJobseeker)
	job := testutil.CreateJob(t, r.DB, testutil.CreateCompany(t, r.DB, owner.ID, "Acme"), "Go")

	first, err := r.SaveJobForUser(ctx, seeker.ID, job.ID)
	require.NoError(t, err)
	second, err := r.SaveJobForUser(ctx, seeker.ID, job.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	items, total, err := r.ListSavedJobs(ctx, seeker.ID, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Job)
	assert.Equal(t, "Go", items[0].Job.Title)

	require.NoError(t, r.UnsaveJob(ctx, seeker.ID, job.ID))
	assert.ErrorIs(t, r.UnsaveJob(ctx, seeker.ID, job.ID), apperr.ErrNotFound)
}

func TestNotifications_ReadFlow(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	require.NoError(t, r.CreateNotifications(ctx, []models.Notification{
		{UserID: "u1", Type: models.NotifyJobAlert, Title: "one"},
		{UserID: "u1", Type: models.NotifyJobAlert, Title: "two"},
		{UserID: "u2", Type: models.NotifyJobAlert, Title: "other"},
	}))

	unread, err := r.CountUnread(ctx, "u1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, unread)

	items, _, err := r.ListNotifications(ctx, "u1", true, 0, 10)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.ErrorIs(t, r.MarkNotificationRead(ctx, "u2", items[0].ID), apperr.ErrNotFound)
	require.NoError(t, r.MarkNotificationRead(ctx, "u1", items[0].ID))

	unread, err = r.CountUnread(ctx, "u1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, unread)

	n, err := r.MarkAllNotificationsRead(ctx, "u1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestListActiveAlerts_SkipsInactiveAndExcluded(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	require.NoError(t, r.CreateAlert(ctx, &models.JobAlert{UserID: "u1", Keywords: "go", Active: true}))
	require.NoError(t, r.CreateAlert(ctx, &models.JobAlert{UserID: "u2", Keywords: "go", Active: false}))
	require.NoError(t, r.CreateAlert(ctx, &models.JobAlert{UserID: "poster", Keywords: "go", Active: true}))

	alerts, err := r.ListActiveAlerts(ctx, "poster")
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "u1", alerts[0].UserID)
}
