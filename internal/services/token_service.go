package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/agrodash/plot-api/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers missing, malformed, tampered and expired tokens.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the payload carried by a session token.
type Claims struct {
	UserID uint64            `json:"id"`
	Email  string            `json:"email"`
	Name   string            `json:"name"`
	Roles  []models.RoleName `json:"roles"`
	jwt.RegisteredClaims
}

// HasRole reports whether the token grants role.
func (c *Claims) HasRole(role models.RoleName) bool {
	return models.HasRole(c.Roles, role)
}

// TokenService issues and verifies HS256 session tokens. There is no
// revocation list; expiry is the only way a token stops working.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService creates a new TokenService.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a token for user. Roles must be loaded on user.
func (s *TokenService) Issue(user *models.User) (string, error) {
	now := s.now()
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Roles:  user.RoleNames(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token string.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == 0 {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
