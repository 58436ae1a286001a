package httpserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/job_board/internal/events"
	"github.com/Skotchmaster/job_board/internal/models"
	"github.com/Skotchmaster/job_board/internal/repo"
	"github.com/Skotchmaster/job_board/internal/service"
	"github.com/Skotchmaster/job_board/internal/testutil"
	"github.com/Skotchmaster/job_board/pkg/apperr"
	"github.com/Skotchmaster/job_board/pkg/logging"
	"github.com/Skotchmaster/job_board/pkg/middleware/ratelimit"
)

const authLimit = 5

type testServer struct {
	e      *echo.Echo
	repo   *repo.GormRepo
	events *events.Recorder
}

func newTestServer(t *testing.T) *testServer {
	return newLimitedServer(t, 100)
}

func newLimitedServer(t *testing.T, limit int) *testServer {
	t.Helper()

	r := &repo.GormRepo{DB: testutil.NewDB(t)}
	rec := &events.Recorder{}
	secret := []byte("http-test-secret")
	tokens := &service.TokenIssuer{Repo: r, AccessSecret: secret}

	e := NewEcho(Options{
		Logger:      logging.Discard(),
		CORSOrigins: []string{"http://localhost:3000"},
	})
	Register(e, &Deps{
		Auth:          &AuthHTTP{Svc: &service.AuthService{Repo: r, Tokens: tokens, Events: rec}},
		Companies:     &CompanyHTTP{Svc: &service.CompanyService{Repo: r}},
		Jobs:          &JobHTTP{Svc: &service.JobService{Repo: r, Events: rec}},
		Applications:  &ApplicationHTTP{Svc: &service.ApplicationService{Repo: r, Events: rec}},
		SavedJobs:     &SavedJobHTTP{Svc: &service.SavedJobService{Repo: r}},
		Notifications: &NotificationHTTP{Svc: &service.NotificationService{Repo: r}},
		Alerts:        &JobAlertHTTP{Svc: &service.JobAlertService{Repo: r}},
		JWTSecret:     secret,
		AuthLimiter:   ratelimit.New(ratelimit.Config{Limit: limit, Window: time.Minute}),
		Ready:         r.Ping,
	})
	return &testServer{e: e, repo: r, events: rec}
}

type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Errors    []ErrorItem     `json:"errors"`
	Timestamp string          `json:"timestamp"`
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (int, envelope) {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

type tokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Role  string `json:"role"`
	} `json:"user"`
}

func (s *testServer) signup(t *testing.T, email, role string) tokenPair {
	t.Helper()
	code, _ := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": email, "password": testutil.Password, "role": role,
	})
	require.Equal(t, http.StatusCreated, code)
	code, env := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": email, "password": testutil.Password,
	})
	require.Equal(t, http.StatusOK, code)
	return decode[tokenPair](t, env.Data)
}

func TestRegisterLoginMe(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "a@b.com", "password": "Abcd123!",
	})
	require.Equal(t, http.StatusCreated, code)
	assert.True(t, env.Success)
	assert.NotEmpty(t, env.Timestamp)
	assert.NotContains(t, string(env.Data), "password")

	code, env = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "a@b.com", "password": "Abcd123!",
	})
	require.Equal(t, http.StatusOK, code)
	pair := decode[tokenPair](t, env.Data)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, models.RoleJobseeker, pair.User.Role)

	code, env = s.do(t, http.MethodGet, "/api/auth/me", pair.AccessToken, nil)
	require.Equal(t, http.StatusOK, code)
	me := decode[struct {
		Email string `json:"email"`
	}](t, env.Data)
	assert.Equal(t, "a@b.com", me.Email)

	assert.Equal(t, []string{events.UserRegistered, events.UserLoggedIn}, s.events.Types(events.TopicUsers))
}

func TestMeWithoutToken(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, env.Success)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, apperr.ErrTokenMissing.Code, env.Errors[0].Code)

	code, env = s.do(t, http.MethodGet, "/api/auth/me", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, apperr.ErrTokenMalformed.Code, env.Errors[0].Code)
}

func TestRegisterErrors(t *testing.T) {
	s := newTestServer(t)
	s.signup(t, "dup@b.com", models.RoleJobseeker)

	code, env := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "DUP@b.com", "password": testutil.Password,
	})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, apperr.ErrConflict.Code, env.Errors[0].Code)

	code, env = s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "nope", "password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	fields := map[string]bool{}
	for _, it := range env.Errors {
		assert.Equal(t, apperr.ErrValidation.Code, it.Code)
		fields[it.Field] = true
	}
	assert.True(t, fields["email"])
	assert.True(t, fields["password"])

	// 64 characters but 124 bytes
	code, env = s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "multi@b.com", "password": "Aa1!" + strings.Repeat("é", 60),
	})
	assert.Equal(t, http.StatusBadRequest, code)
	require.NotEmpty(t, env.Errors)
	assert.Equal(t, "password", env.Errors[0].Field)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBufferString("{"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginDoesNotRevealAccounts(t *testing.T) {
	s := newTestServer(t)
	s.signup(t, "known@b.com", models.RoleJobseeker)

	wrongCode, wrong := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "known@b.com", "password": "Wrong123!",
	})
	unknownCode, unknown := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "ghost@b.com", "password": "Wrong123!",
	})

	assert.Equal(t, http.StatusUnauthorized, wrongCode)
	assert.Equal(t, wrongCode, unknownCode)
	assert.Equal(t, wrong.Message, unknown.Message)
	assert.Equal(t, wrong.Errors, unknown.Errors)
}

func TestRefreshAndLogout(t *testing.T) {
	s := newTestServer(t)
	pair := s.signup(t, "r@b.com", models.RoleJobseeker)

	code, env := s.do(t, http.MethodPost, "/api/auth/refresh", "", map[string]string{"refreshToken": pair.RefreshToken})
	require.Equal(t, http.StatusOK, code)
	next := decode[tokenPair](t, env.Data)
	assert.NotEqual(t, pair.RefreshToken, next.RefreshToken)

	// the rotated token is dead
	code, env = s.do(t, http.MethodPost, "/api/auth/refresh", "", map[string]string{"refreshToken": pair.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, apperr.ErrTokenInvalid.Code, env.Errors[0].Code)

	code, _ = s.do(t, http.MethodPost, "/api/auth/logout", "", map[string]string{"refreshToken": next.RefreshToken})
	assert.Equal(t, http.StatusOK, code)
	code, _ = s.do(t, http.MethodPost, "/api/auth/logout", "", map[string]string{"refreshToken": next.RefreshToken})
	assert.Equal(t, http.StatusOK, code)

	code, _ = s.do(t, http.MethodPost, "/api/auth/refresh", "", map[string]string{"refreshToken": next.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestAuthRateLimit(t *testing.T) {
	s := newLimitedServer(t, authLimit)
	body := map[string]string{"email": "x@b.com", "password": "Wrong123!"}

	for i := 0; i < authLimit; i++ {
		code, _ := s.do(t, http.MethodPost, "/api/auth/login", "", body)
		require.Equal(t, http.StatusUnauthorized, code)
	}
	code, env := s.do(t, http.MethodPost, "/api/auth/login", "", body)
	assert.Equal(t, http.StatusTooManyRequests, code)
	assert.False(t, env.Success)
	assert.Equal(t, apperr.ErrRateLimited.Code, env.Errors[0].Code)

	// reads are not limited
	code, _ = s.do(t, http.MethodGet, "/api/jobs", "", nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestHiringFlow(t *testing.T) {
	s := newTestServer(t)
	boss := s.signup(t, "boss@corp.com", models.RoleEmployer)
	seeker := s.signup(t, "seeker@b.com", models.RoleJobseeker)

	code, _ := s.do(t, http.MethodPost, "/api/companies", seeker.AccessToken, map[string]string{"name": "Nope"})
	assert.Equal(t, http.StatusForbidden, code)

	code, env := s.do(t, http.MethodPost, "/api/companies", boss.AccessToken, map[string]string{"name": "Corp"})
	require.Equal(t, http.StatusCreated, code)
	company := decode[struct {
		ID string `json:"id"`
	}](t, env.Data)

	code, env = s.do(t, http.MethodPost, "/api/jobs", boss.AccessToken, map[string]any{
		"companyId":      company.ID,
		"title":          "Go Engineer",
		"description":    "Build services",
		"location":       "Berlin",
		"employmentType": "full-time",
		"salaryMin":      50000,
		"salaryMax":      70000,
	})
	require.Equal(t, http.StatusCreated, code)
	job := decode[struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}](t, env.Data)
	assert.Equal(t, models.JobOpen, job.Status)

	code, env = s.do(t, http.MethodGet, "/api/jobs?q=engineer", "", nil)
	require.Equal(t, http.StatusOK, code)
	list := decode[struct {
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
		Meta struct {
			Total int64 `json:"total"`
		} `json:"meta"`
	}](t, env.Data)
	assert.Equal(t, int64(1), list.Meta.Total)
	require.Len(t, list.Items, 1)
	assert.Equal(t, job.ID, list.Items[0].ID)

	code, _ = s.do(t, http.MethodPost, "/api/jobs/"+job.ID+"/apply", boss.AccessToken, map[string]string{})
	assert.Equal(t, http.StatusForbidden, code)

	code, env = s.do(t, http.MethodPost, "/api/jobs/"+job.ID+"/apply", seeker.AccessToken, map[string]string{"coverLetter": "hi"})
	require.Equal(t, http.StatusCreated, code)
	app := decode[struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}](t, env.Data)
	assert.Equal(t, models.AppPending, app.Status)

	code, _ = s.do(t, http.MethodPost, "/api/jobs/"+job.ID+"/apply", seeker.AccessToken, map[string]string{})
	assert.Equal(t, http.StatusConflict, code)

	code, env = s.do(t, http.MethodGet, "/api/notifications/unread-count", boss.AccessToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, int64(1), decode[struct {
		Unread int64 `json:"unread"`
	}](t, env.Data).Unread)

	code, _ = s.do(t, http.MethodPatch, "/api/applications/"+app.ID+"/status", seeker.AccessToken, map[string]string{"status": "accepted"})
	assert.Equal(t, http.StatusForbidden, code)

	code, env = s.do(t, http.MethodPatch, "/api/applications/"+app.ID+"/status", boss.AccessToken, map[string]string{"status": "interview"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, models.AppInterview, decode[struct {
		Status string `json:"status"`
	}](t, env.Data).Status)

	code, env = s.do(t, http.MethodGet, "/api/notifications", seeker.AccessToken, nil)
	require.Equal(t, http.StatusOK, code)
	notes := decode[struct {
		Items []struct {
			Type string `json:"type"`
			Read bool   `json:"read"`
		} `json:"items"`
	}](t, env.Data)
	require.Len(t, notes.Items, 1)
	assert.Equal(t, models.NotifyApplicationStatus, notes.Items[0].Type)
	assert.False(t, notes.Items[0].Read)

	code, env = s.do(t, http.MethodPost, "/api/notifications/read-all", seeker.AccessToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"updated":1}`, string(env.Data))

	assert.Equal(t,
		[]string{events.ApplicationSubmitted, events.ApplicationStatusChanged},
		s.events.Types(events.TopicApplications))
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, http.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)

	code, _ = s.do(t, http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, code)

	code, env = s.do(t, http.MethodGet, "/api/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, apperr.ErrNotFound.Code, env.Errors[0].Code)
}

func TestRender(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", apperr.Validation(apperr.FieldError{Field: "email", Message: "is required"}), http.StatusBadRequest, apperr.ErrValidation.Code},
		{"revoked shown as invalid", apperr.ErrTokenRevoked, http.StatusUnauthorized, apperr.ErrTokenInvalid.Code},
		{"wrapped", apperr.Wrap(apperr.ErrForbidden, errors.New("x")), http.StatusForbidden, apperr.ErrForbidden.Code},
		{"gorm not found", gorm.ErrRecordNotFound, http.StatusNotFound, apperr.ErrNotFound.Code},
		{"echo 405", echo.ErrMethodNotAllowed, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"},
		{"echo 5xx", echo.ErrInternalServerError, http.StatusInternalServerError, apperr.ErrInternal.Code},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, apperr.ErrInternal.Code},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _, items := render(tt.err, false)
			assert.Equal(t, tt.status, status)
			require.NotEmpty(t, items)
			assert.Equal(t, tt.code, items[0].Code)
		})
	}
}

func TestRenderHidesInternalDetailInProduction(t *testing.T) {
	_, _, items := render(errors.New("dial tcp 10.0.0.1:5432: refused"), true)
	assert.Equal(t, apperr.ErrInternal.Message, items[0].Message)

	_, _, items = render(errors.New("dial tcp 10.0.0.1:5432: refused"), false)
	assert.Contains(t, items[0].Message, "dial tcp")
}
