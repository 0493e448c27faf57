package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/medichain/identity-service/internal/core/domain"
	"github.com/medichain/identity-service/internal/core/ports"
)

const defaultTokenTTL = 24 * time.Hour

// JWTTokenService issues and verifies HS256 session tokens. Tokens are
// self-contained: validity is signature plus expiry, with no server-side
// state and no early revocation.
type JWTTokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTTokenService(secret string, ttl time.Duration) *JWTTokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &JWTTokenService{secret: []byte(secret), ttl: ttl}
}

func (s *JWTTokenService) Issue(subject string, role domain.Role) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  now.Add(s.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify checks the signature before anything else, then expiry. Every
// claim read in this package goes through here first.
func (s *JWTTokenService) Verify(token string) (ports.Claims, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ports.Claims{}, domain.ErrTokenExpired
		}
		return ports.Claims{}, domain.ErrTokenInvalid
	}
	if !parsed.Valid {
		return ports.Claims{}, domain.ErrTokenInvalid
	}

	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if sub == "" {
		return ports.Claims{}, domain.ErrTokenInvalid
	}
	return ports.Claims{Subject: sub, Role: domain.Role(role)}, nil
}

func (s *JWTTokenService) Subject(token string) (string, error) {
	claims, err := s.Verify(token)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}
