package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bloodwraith8851/gocart/pkg/middleware"
)

// Claims represents the JWT claims for an access token issued by the
// identity provider.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// JWTValidator validates access tokens issued by the identity provider. This
// service never mints tokens, it only verifies them.
type JWTValidator struct {
	secret []byte
}

// NewJWTValidator creates a validator with the shared signing secret.
func NewJWTValidator(secret string) *JWTValidator {
	return &JWTValidator{secret: []byte(secret)}
}

// Validate parses and validates an access token, returning the claims.
func (v *JWTValidator) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse access token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid access token claims")
	}

	return claims, nil
}

// Middleware adapts the validator to the auth middleware's contract.
func (v *JWTValidator) Middleware() middleware.TokenValidator {
	return func(token string) (*middleware.Claims, error) {
		claims, err := v.Validate(token)
		if err != nil {
			return nil, err
		}
		return &middleware.Claims{
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   claims.Role,
		}, nil
	}
}
