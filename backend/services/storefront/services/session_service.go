package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/yashrajoria/storefront/backend/services/storefront/models"
)

const SessionTTL = 7 * 24 * time.Hour

var ErrInvalidSession = errors.New("invalid or expired session")

type sessionClaims struct {
	UserID uint   `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// SessionService signs and verifies session tokens. The claims are a
// snapshot of the user at login.
type SessionService struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

func NewSessionService(secret string) (*SessionService, error) {
	if secret == "" {
		return nil, errors.New("session secret not configured")
	}
	return &SessionService{secretKey: []byte(secret), ttl: SessionTTL, now: time.Now}, nil
}

// Issue creates a signed token for user and returns its expiry.
func (s *SessionService) Issue(user *models.User) (string, time.Time, error) {
	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.ttl)

	claims := sessionClaims{
		UserID: user.ID,
		Name:   user.Name,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(user.ID),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session: %w", err)
	}
	return token, expiresAt, nil
}

// Parse verifies the signature and expiry of a token.
func (s *SessionService) Parse(tokenStr string) (*models.Session, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil || token == nil || !token.Valid {
		return nil, ErrInvalidSession
	}

	return &models.Session{ID: claims.UserID, Name: claims.Name, Role: claims.Role}, nil
}
