package service

import (
	"fmt"
	"time"

	"project_space/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// Claims defines JWT claims
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// TokenManager issues and verifies HS256 access tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL reports how long issued tokens stay valid.
func (m *TokenManager) TTL() time.Duration { return m.ttl }

// Issue signs a token carrying id that expires after the configured TTL.
func (m *TokenManager) Issue(id models.Identity) (string, error) {
	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: id.ID,
		Name:   id.Name,
		Email:  id.Email,
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify returns the identity inside token. Every failure (malformed,
// tampered, expired, wrong algorithm) is reported as ErrUnauthenticated.
func (m *TokenManager) Verify(accessToken string) (models.Identity, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
	)
	if err != nil {
		return models.Identity{}, ErrUnauthenticated
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return models.Identity{}, ErrUnauthenticated
	}

	return models.Identity{ID: claims.UserID, Name: claims.Name, Email: claims.Email}, nil
}
