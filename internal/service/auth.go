package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Skotchmaster/job_board/internal/events"
	"github.com/Skotchmaster/job_board/internal/models"
	"github.com/Skotchmaster/job_board/internal/repo"
	"github.com/Skotchmaster/job_board/internal/transport"
	"github.com/Skotchmaster/job_board/internal/validation"
	"github.com/Skotchmaster/job_board/pkg/apperr"
	"github.com/Skotchmaster/job_board/pkg/hash"
	"github.com/Skotchmaster/job_board/pkg/logging"
)

type AuthService struct {
	Repo   *repo.GormRepo
	Tokens *TokenIssuer
	Events events.Publisher
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account. It does not log the user in.
func (s *AuthService) Register(ctx context.Context, in transport.RegisterRequest) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	in.Email = normalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(in); err != nil {
		l.Warn("register_failed", "status", 400, "reason", "validation", "error", err)
		return nil, err
	}
	if in.Role == "" {
		in.Role = models.RoleJobseeker
	}

	exists, err := s.Repo.EmailExists(ctx, in.Email)
	if err != nil {
		l.Error("register_failed", "status", 500, "reason", "cannot check email", "error", err)
		return nil, err
	}
	if exists {
		l.Warn("register_failed", "status", 409, "reason", "email already registered")
		return nil, apperr.Conflict("email already registered")
	}

	pwHash, err := hash.HashPassword(in.Password)
	if err != nil {
		l.Error("register_failed", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := &models.User{
		Email:        in.Email,
		PasswordHash: pwHash,
		Name:         in.Name,
		Role:         in.Role,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			l.Warn("register_failed", "status", 409, "reason", "email already registered")
		} else {
			l.Error("register_failed", "status", 500, "reason", "cannot create user", "error", err)
		}
		return nil, err
	}

	events.Emit(ctx, s.Events, events.TopicUsers, user.ID, events.New(events.UserRegistered, map[string]any{
		"userId": user.ID,
		"email":  user.Email,
		"role":   user.Role,
	}))
	l.Info("register_success", "user_id", user.ID)
	return user, nil
}

// Login answers unknown email and wrong password with the same error and
// pays for one bcrypt comparison either way.
func (s *AuthService) Login(ctx context.Context, in transport.LoginRequest) (*transport.TokenPair, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	in.Email = normalizeEmail(in.Email)
	if err := validation.Struct(in); err != nil {
		l.Warn("login_failed", "status", 400, "reason", "validation", "error", err)
		return nil, err
	}

	user, err := s.Repo.GetUserByEmail(ctx, in.Email)
	if err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			l.Error("login_failed", "status", 500, "reason", "cannot load user", "error", err)
			return nil, err
		}
		hash.CompareDummy(in.Password)
		l.Warn("login_failed", "status", 401, "reason", "invalid credentials")
		return nil, apperr.ErrInvalidCredentials
	}
	if !hash.CheckPassword(user.PasswordHash, in.Password) {
		l.Warn("login_failed", "status", 401, "reason", "invalid credentials")
		return nil, apperr.ErrInvalidCredentials
	}

	pair, err := s.Tokens.NewSession(ctx, user)
	if err != nil {
		l.Error("login_failed", "status", 500, "reason", "cannot issue tokens", "error", err)
		return nil, err
	}

	events.Emit(ctx, s.Events, events.TopicUsers, user.ID, events.New(events.UserLoggedIn, map[string]any{
		"userId": user.ID,
	}))
	l.Info("login_success", "user_id", user.ID)
	return pair, nil
}

func (s *AuthService) Refresh(ctx context.Context, raw string) (*transport.TokenPair, error) {
	l := logging.FromContext(ctx).With("svc", "auth.refresh")

	pair, err := s.Tokens.RotateRefreshToken(ctx, raw)
	if err != nil {
		logFailed(l, "refresh_failed", err)
		return nil, err
	}

	l.Info("refresh_success", "user_id", pair.User.ID)
	return pair, nil
}

// LogOut revokes raw. Unknown, empty or already revoked tokens succeed.
func (s *AuthService) LogOut(ctx context.Context, raw string) error {
	l := logging.FromContext(ctx).With("svc", "auth.logout")

	revoked, err := s.Tokens.Revoke(ctx, raw)
	if err != nil {
		logFailed(l, "logout_failed", err)
		return err
	}
	if revoked == nil {
		l.Info("logout_success", "revoked", false)
		return nil
	}

	events.Emit(ctx, s.Events, events.TopicUsers, revoked.UserID, events.New(events.UserLoggedOut, map[string]any{
		"userId":   revoked.UserID,
		"familyId": revoked.FamilyID,
	}))
	l.Info("logout_success", "revoked", true, "user_id", revoked.UserID)
	return nil
}

// Me returns the profile behind a validated access token. A token whose user
// is gone is treated as invalid.
func (s *AuthService) Me(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.ErrTokenInvalid
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID string, in transport.UpdateProfileRequest) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.update_profile", "user_id", userID)

	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	user, err := s.Me(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.Phone != nil {
		user.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Location != nil {
		user.Location = strings.TrimSpace(*in.Location)
	}
	if in.Bio != nil {
		user.Bio = *in.Bio
	}

	if err := s.Repo.SaveUser(ctx, user); err != nil {
		logFailed(l, "update_profile_failed", err)
		return nil, err
	}
	l.Info("update_profile_success")
	return user, nil
}

// ChangePassword re-hashes the password and revokes every refresh token of
// the user, ending all sessions.
func (s *AuthService) ChangePassword(ctx context.Context, userID string, in transport.ChangePasswordRequest) error {
	l := logging.FromContext(ctx).With("svc", "auth.change_password", "user_id", userID)

	if err := validation.Struct(in); err != nil {
		l.Warn("change_password_failed", "status", 400, "reason", "validation", "error", err)
		return err
	}
	user, err := s.Me(ctx, userID)
	if err != nil {
		return err
	}
	if !hash.CheckPassword(user.PasswordHash, in.CurrentPassword) {
		l.Warn("change_password_failed", "status", 400, "reason", "wrong current password")
		return apperr.Invalid("currentPassword", "is incorrect")
	}
	if in.CurrentPassword == in.NewPassword {
		return apperr.Invalid("newPassword", "must differ from the current password")
	}

	pwHash, err := hash.HashPassword(in.NewPassword)
	if err != nil {
		l.Error("change_password_failed", "status", 500, "reason", "cannot hash the password", "error", err)
		return err
	}
	user.PasswordHash = pwHash

	var revoked int64
	err = s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		if err := tx.SaveUser(ctx, user); err != nil {
			return err
		}
		revoked, err = tx.RevokeAllForUser(ctx, user.ID, s.Tokens.now())
		return err
	})
	if err != nil {
		logFailed(l, "change_password_failed", err)
		return err
	}

	events.Emit(ctx, s.Events, events.TopicUsers, user.ID, events.New(events.PasswordChanged, map[string]any{
		"userId": user.ID,
	}))
	l.Info("change_password_success", "revoked_sessions", revoked)
	return nil
}
