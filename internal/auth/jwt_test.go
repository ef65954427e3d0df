package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt-testing"

func TestGenerateAccessToken(t *testing.T) {
	userID := int64(4711)

	token, err := GenerateAccessToken(userID, testSecret, DefaultAccessTokenTTL)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := ValidateToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, AccessToken, claims.Type)
	assert.WithinDuration(t, time.Now().Add(DefaultAccessTokenTTL), claims.ExpiresAt.Time, 5*time.Second)
}

func TestGenerateAccessToken_EmptySecret(t *testing.T) {
	token, err := GenerateAccessToken(1, "", time.Minute)

	assert.Error(t, err)
	assert.Empty(t, token)
}

func TestValidateToken_InvalidSecret(t *testing.T) {
	token, err := generateToken(789, AccessToken, 15*time.Minute, testSecret)
	require.NoError(t, err)

	claims, err := ValidateToken(token, "wrong-secret")

	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_ExpiredToken(t *testing.T) {
	// Negative duration yields an already expired token
	token, err := generateToken(101, AccessToken, -1*time.Hour, testSecret)
	require.NoError(t, err)

	claims, err := ValidateToken(token, testSecret)

	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_MalformedToken(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{
			name:  "Empty token",
			token: "",
		},
		{
			name:  "Random string",
			token: "not-a-valid-jwt-token",
		},
		{
			name:  "Incomplete JWT",
			token: "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := ValidateToken(tt.token, testSecret)

			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}

func TestValidateToken_RejectsUnsignedToken(t *testing.T) {
	claims := Claims{
		UserID: 999,
		Type:   AccessToken,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(15 * time.Minute)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	parsed, err := ValidateToken(tokenString, testSecret)

	assert.Nil(t, parsed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGetUserIDFromContext_Success(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	c.Set(UserIDKey, int64(123))

	userID, err := GetUserIDFromContext(c)

	require.NoError(t, err)
	assert.Equal(t, int64(123), userID)
}

func TestGetUserIDFromContext_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	userID, err := GetUserIDFromContext(c)

	assert.Error(t, err)
	assert.Equal(t, int64(0), userID)
	assert.Contains(t, err.Error(), "user ID not found in context")
}

func TestGetUserIDFromContext_InvalidType(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	c.Set(UserIDKey, "not-an-int")

	userID, err := GetUserIDFromContext(c)

	assert.Error(t, err)
	assert.Equal(t, int64(0), userID)
	assert.Contains(t, err.Error(), "invalid user ID type")
}

func BenchmarkValidateToken(b *testing.B) {
	token, _ := generateToken(123, AccessToken, 15*time.Minute, testSecret)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ValidateToken(token, testSecret)
	}
}
