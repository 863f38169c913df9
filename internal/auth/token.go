// Package auth validates callers of the content API
package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Claims identifies the user an access token was issued to
type Claims struct {
	UserID int
	Role   int
}

// TokenValidator checks HMAC signed access tokens issued by the auth service
type TokenValidator struct {
	secret []byte
}

// NewTokenValidator creates a new token validator for the shared secret
func NewTokenValidator(secret string) *TokenValidator {
	return &TokenValidator{secret: []byte(secret)}
}

// ValidateAccessToken parses the token and returns its claims.
// Expired tokens, refresh tokens and tokens without user_id or role are rejected.
func (v *TokenValidator) ValidateAccessToken(tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{
		jwt.SigningMethodHS256.Alg(),
		jwt.SigningMethodHS384.Alg(),
		jwt.SigningMethodHS512.Alg(),
	}), jwt.WithExpirationRequired())
	if err != nil {
		return Claims{}, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Claims{}, errors.New("token is invalid")
	}

	if tokenType, _ := claims["type"].(string); tokenType != "access" {
		return Claims{}, errors.New("token is not an access token")
	}

	// JWT claims decode numbers as float64
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return Claims{}, errors.New("user_id not found in token")
	}
	role, ok := claims["role"].(float64)
	if !ok {
		return Claims{}, errors.New("role not found in token")
	}

	return Claims{UserID: int(userID), Role: int(role)}, nil
}
