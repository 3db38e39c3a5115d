// Package token implements the session issuer as signed, stateless JWTs.
//
// Tokens carry only registered claims: the subject is the user id encoded as
// a base-10 string, and the expiry bounds the blast radius of a leaked token.
// There is no server-side session state, so tokens remain valid across
// processes sharing the signing secret.
package token

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"jokebox/src/core/domain"
	"jokebox/src/core/ports"
	"jokebox/src/infra/config"
)

// JWT issues and validates HMAC-SHA256 signed session tokens.
type JWT struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

var _ ports.TokenService = (*JWT)(nil)

// NewJWT creates a token service from auth configuration.
func NewJWT(cfg config.AuthConfig) *JWT {
	return &JWT{
		secret: []byte(cfg.TokenSecret),
		issuer: cfg.TokenIssuer,
		ttl:    cfg.TokenTTL,
	}
}

// Issue produces a signed token with the user's id as its subject.
func (j *JWT) Issue(user *domain.User) (string, error) {
	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    j.issuer,
		Subject:   strconv.FormatInt(user.ID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
}

// Parse verifies the token and returns the subject user id.
// The subject's type contract is user-id-as-string; anything that fails to
// verify or parse is unauthenticated, never a crash.
func (j *JWT) Parse(tokenString string) (int64, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(*jwt.Token) (any, error) { return j.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(j.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return 0, domain.NewUnauthorizedError("invalid or expired token")
	}

	subject, err := parsed.Claims.GetSubject()
	if err != nil || subject == "" {
		return 0, domain.NewUnauthorizedError("token has no subject")
	}

	userID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, domain.NewUnauthorizedError("malformed token subject")
	}

	return userID, nil
}
