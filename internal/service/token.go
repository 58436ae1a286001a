package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/job_board/internal/models"
	"github.com/Skotchmaster/job_board/internal/repo"
	"github.com/Skotchmaster/job_board/internal/transport"
	"github.com/Skotchmaster/job_board/pkg/apperr"
	"github.com/Skotchmaster/job_board/pkg/tokens"
)

const (
	DefaultAccessTTL  = 15 * time.Minute
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

// TokenIssuer signs access tokens and keeps the refresh-token chain.
// Refresh tokens are opaque; only their sha256 is stored.
type TokenIssuer struct {
	Repo         *repo.GormRepo
	AccessSecret []byte
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
	Now          func() time.Time
}

func (t *TokenIssuer) now() time.Time {
	if t.Now != nil {
		return t.Now().UTC()
	}
	return time.Now().UTC()
}

func (t *TokenIssuer) accessTTL() time.Duration {
	if t.AccessTTL > 0 {
		return t.AccessTTL
	}
	return DefaultAccessTTL
}

func (t *TokenIssuer) refreshTTL() time.Duration {
	if t.RefreshTTL > 0 {
		return t.RefreshTTL
	}
	return DefaultRefreshTTL
}

func (t *TokenIssuer) IssueAccessToken(u *models.User) (string, time.Time, error) {
	now := t.now()
	exp := now.Add(t.accessTTL())
	token, err := tokens.SignAccess(u.ID, u.Role, now, exp, t.AccessSecret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign access token: %w", err)
	}
	return token, exp, nil
}

// IssueRefreshToken stores a new refresh token in familyID and returns the
// raw value. It is the only time the raw value exists server side.
func (t *TokenIssuer) IssueRefreshToken(ctx context.Context, u *models.User, familyID string, parentID *string) (string, time.Time, error) {
	return t.issueRefresh(ctx, t.Repo, u.ID, familyID, parentID)
}

func (t *TokenIssuer) issueRefresh(ctx context.Context, r *repo.GormRepo, userID, familyID string, parentID *string) (string, time.Time, error) {
	raw, err := tokens.NewOpaque()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("generate refresh token: %w", err)
	}
	exp := t.now().Add(t.refreshTTL())

	row := &models.RefreshToken{
		TokenHash: tokens.Sha256Hex(raw),
		UserID:    userID,
		FamilyID:  familyID,
		ParentID:  parentID,
		ExpiresAt: exp,
	}
	if err := r.CreateRefresh(ctx, row); err != nil {
		return "", time.Time{}, fmt.Errorf("store refresh token: %w", err)
	}
	return raw, exp, nil
}

// NewSession starts a new refresh family for u and returns both tokens.
func (t *TokenIssuer) NewSession(ctx context.Context, u *models.User) (*transport.TokenPair, error) {
	access, accessExp, err := t.IssueAccessToken(u)
	if err != nil {
		return nil, err
	}
	refresh, refreshExp, err := t.IssueRefreshToken(ctx, u, uuid.NewString(), nil)
	if err != nil {
		return nil, err
	}
	return &transport.TokenPair{
		AccessToken:           access,
		RefreshToken:          refresh,
		AccessTokenExpiresAt:  accessExp,
		RefreshTokenExpiresAt: refreshExp,
		User:                  u,
	}, nil
}

// RotateRefreshToken exchanges raw for a new pair. The old token is revoked
// and its successor inserted in one transaction; when two callers race on
// the same token only one revoke succeeds and the other gets ErrTokenRevoked.
func (t *TokenIssuer) RotateRefreshToken(ctx context.Context, raw string) (*transport.TokenPair, error) {
	if raw == "" {
		return nil, apperr.ErrTokenInvalid
	}
	hash := tokens.Sha256Hex(raw)
	now := t.now()

	var pair *transport.TokenPair
	err := t.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		stored, err := tx.FindRefreshByHash(ctx, hash)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return apperr.ErrTokenInvalid
			}
			return err
		}
		if stored.Revoked {
			return apperr.ErrTokenRevoked
		}
		if stored.Expired(now) {
			return apperr.ErrTokenExpired
		}

		revoked, err := tx.RevokeRefreshIfActive(ctx, stored.ID, now)
		if err != nil {
			return err
		}
		if !revoked {
			return apperr.ErrTokenRevoked
		}

		user, err := tx.GetUserByID(ctx, stored.UserID)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return apperr.ErrTokenInvalid
			}
			return err
		}

		refresh, refreshExp, err := t.issueRefresh(ctx, tx, user.ID, stored.FamilyID, &stored.ID)
		if err != nil {
			return err
		}
		access, accessExp, err := t.IssueAccessToken(user)
		if err != nil {
			return err
		}

		pair = &transport.TokenPair{
			AccessToken:           access,
			RefreshToken:          refresh,
			AccessTokenExpiresAt:  accessExp,
			RefreshTokenExpiresAt: refreshExp,
			User:                  user,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pair, nil
}

// Revoke marks the token behind raw as revoked and returns it. Unknown or
// already revoked tokens give (nil, nil).
func (t *TokenIssuer) Revoke(ctx context.Context, raw string) (*models.RefreshToken, error) {
	if raw == "" {
		return nil, nil
	}
	stored, err := t.Repo.FindRefreshByHash(ctx, tokens.Sha256Hex(raw))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	ok, err := t.Repo.RevokeRefreshIfActive(ctx, stored.ID, t.now())
	if err != nil || !ok {
		return nil, err
	}
	return stored, nil
}

func (t *TokenIssuer) RevokeAll(ctx context.Context, userID string) (int64, error) {
	return t.Repo.RevokeAllForUser(ctx, userID, t.now())
}
