package service

import (
	"testing"
	"time"

	"github.com/Skotchmaster/job_board/internal/events"
	"github.com/Skotchmaster/job_board/internal/repo"
	"github.com/Skotchmaster/job_board/internal/testutil"
)

var testSecret = []byte("test-jwt-secret")

type testEnv struct {
	Repo   *repo.GormRepo
	Events *events.Recorder
	Tokens *TokenIssuer
	Auth   *AuthService
	Jobs   *JobService
	Comps  *CompanyService
	Apps   *ApplicationService
	Saved  *SavedJobService
	Notes  *NotificationService
	Alerts *JobAlertService
	clock  time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		Repo:   &repo.GormRepo{DB: testutil.NewDB(t)},
		Events: &events.Recorder{},
		clock:  time.Now().UTC(),
	}
	env.Tokens = &TokenIssuer{
		Repo:         env.Repo,
		AccessSecret: testSecret,
		AccessTTL:    15 * time.Minute,
		RefreshTTL:   7 * 24 * time.Hour,
		Now:          func() time.Time { return env.clock },
	}
	env.Auth = &AuthService{Repo: env.Repo, Tokens: env.Tokens, Events: env.Events}
	env.Jobs = &JobService{Repo: env.Repo, Events: env.Events}
	env.Comps = &CompanyService{Repo: env.Repo}
	env.Apps = &ApplicationService{Repo: env.Repo, Events: env.Events}
	env.Saved = &SavedJobService{Repo: env.Repo}
	env.Notes = &NotificationService{Repo: env.Repo}
	env.Alerts = &JobAlertService{Repo: env.Repo}
	return env
}

func (env *testEnv) advance(d time.Duration) {
	env.clock = env.clock.Add(d)
}
