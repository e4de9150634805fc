package auth

import (
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MrSnakeDoc/sitecms/internal/domain"
)

// TokenIssuer hands out the bearer token after a successful login and checks it on admin routes.
type TokenIssuer interface {
	Issue() (string, error)
	Validate(token string) error
}

// StaticTokens issues one fixed, shared token to every login.
//
// The token never expires and cannot be revoked short of changing the
// configuration. It proves nothing about who presents it: anyone holding the
// string is the admin. Kept for compatibility with existing admin frontends.
type StaticTokens struct {
	token string
}

// NewStaticTokens panics on an empty token: an empty constant would authenticate everyone.
func NewStaticTokens(token string) *StaticTokens {
	if token == "" {
		panic("auth: static admin token must not be empty")
	}
	return &StaticTokens{token: token}
}

func (s *StaticTokens) Issue() (string, error) { return s.token, nil }

func (s *StaticTokens) Validate(token string) error {
	if subtle.ConstantTimeCompare([]byte(token), []byte(s.token)) != 1 {
		return domain.ErrUnauthorized
	}
	return nil
}

const (
	jwtIssuer  = "sitecms"
	jwtSubject = "admin"
)

// JWTTokens issues HS256-signed tokens that expire after ttl.
type JWTTokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTTokens creates a signed-token issuer.
func NewJWTTokens(secret string, ttl time.Duration) (*JWTTokens, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("jwt secret must be at least 32 bytes, got %d", len(secret))
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("jwt ttl must be > 0, got %v", ttl)
	}
	return &JWTTokens{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (j *JWTTokens) Issue() (string, error) {
	now := j.now()
	claims := jwt.RegisteredClaims{
		Issuer:    jwtIssuer,
		Subject:   jwtSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (j *JWTTokens) Validate(token string) error {
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return j.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return domain.ErrUnauthorized
	}
	if claims.Issuer != jwtIssuer || claims.Subject != jwtSubject || claims.ExpiresAt == nil {
		return domain.ErrUnauthorized
	}
	return nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
