package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Skotchmaster/job_board/pkg/apperr"
)

const TypeAccess = "access"

type AccessClaims struct {
	Role string `json:"role"`
	Type string `json:"typ"`
	jwt.RegisteredClaims
}

func SignAccess(userID, role string, issuedAt, expiresAt time.Time, secret []byte) (string, error) {
	claims := AccessClaims{
		Role: role,
		Type: TypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseAccess verifies signature and expiry. now may be nil (wall clock).
// Errors are apperr.ErrTokenExpired or apperr.ErrTokenMalformed.
func ParseAccess(tokenStr string, secret []byte, now func() time.Time) (*AccessClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if now != nil {
		opts = append(opts, jwt.WithTimeFunc(now))
	}

	var claims AccessClaims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperr.Wrap(apperr.ErrTokenExpired, err)
		}
		return nil, apperr.Wrap(apperr.ErrTokenMalformed, err)
	}
	if !tkn.Valid || claims.Type != TypeAccess || claims.Subject == "" {
		return nil, apperr.ErrTokenMalformed
	}
	return &claims, nil
}
