package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-signing-secret"

func signToken(t *testing.T, secret string, method jwt.SigningMethod, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func validClaims() Claims {
	return Claims{
		UserID: "user-123",
		Email:  "seller@example.com",
		Role:   "seller",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

func TestValidate_Success(t *testing.T) {
	validator := NewJWTValidator(testSecret)
	token := signToken(t, testSecret, jwt.SigningMethodHS256, validClaims())

	claims, err := validator.Validate(token)

	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "seller@example.com", claims.Email)
	assert.Equal(t, "seller", claims.Role)
}

func TestValidate_WrongSecret(t *testing.T) {
	validator := NewJWTValidator(testSecret)
	token := signToken(t, "some-other-secret", jwt.SigningMethodHS256, validClaims())

	_, err := validator.Validate(token)

	assert.Error(t, err)
}

func TestValidate_Expired(t *testing.T) {
	validator := NewJWTValidator(testSecret)
	claims := validClaims()
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	token := signToken(t, testSecret, jwt.SigningMethodHS256, claims)

	_, err := validator.Validate(token)

	assert.Error(t, err)
}

func TestValidate_Malformed(t *testing.T) {
	validator := NewJWTValidator(testSecret)

	_, err := validator.Validate("not-a-jwt")

	assert.Error(t, err)
}

func TestValidate_UnsignedAlgorithmRejected(t *testing.T) {
	validator := NewJWTValidator(testSecret)
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, validClaims()).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = validator.Validate(token)

	assert.Error(t, err)
}

func TestMiddleware_AdaptsClaims(t *testing.T) {
	validator := NewJWTValidator(testSecret)
	token := signToken(t, testSecret, jwt.SigningMethodHS256, validClaims())

	claims, err := validator.Middleware()(token)

	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "seller", claims.Role)
}
