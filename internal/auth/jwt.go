// Package auth issues and validates the bearer tokens that scope every
// API request to one account.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var ErrInvalidToken = errors.New("invalid token")

// TokenService signs and verifies JWT bearer tokens.
type TokenService struct {
	secretKey string
	issuer    string
	ttl       time.Duration
}

// Claims carried by every issued token.
type Claims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

func NewTokenService(secretKey string, ttlHours int) *TokenService {
	return &TokenService{
		secretKey: secretKey,
		issuer:    "homeledger",
		ttl:       time.Duration(ttlHours) * time.Hour,
	}
}

// Generate issues a signed token for a user.
func (s *TokenService) Generate(userID uint) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secretKey))
}

// Validate parses a token string and returns the user ID it carries.
func (s *TokenService) Validate(tokenString string) (uint, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secretKey), nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return 0, ErrInvalidToken
	}
	return claims.UserID, nil
}
