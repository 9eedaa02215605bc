package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/dayplan-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-long-enough-for-testing"

func sign(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestNewJWTService(t *testing.T) {
	_, err := NewJWTService(config.AuthConfig{JWTSecret: "short"})
	assert.Error(t, err)

	svc, err := NewJWTService(config.AuthConfig{JWTSecret: testSecret})
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestValidateToken(t *testing.T) {
	fixedTime := time.Date(2025, 1, 13, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()

	svc, err := newHMACJWTService(testSecret, func() time.Time { return fixedTime })
	require.NoError(t, err)

	valid := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(fixedTime.Add(-time.Minute)),
		ExpiresAt: jwt.NewNumericDate(fixedTime.Add(time.Hour)),
		ID:        "token-1",
	}

	tests := []struct {
		name    string
		token   func() string
		wantErr error
	}{
		{
			name:  "valid token",
			token: func() string { return sign(t, jwt.SigningMethodHS256, []byte(testSecret), valid) },
		},
		{
			name:    "missing token",
			token:   func() string { return "" },
			wantErr: ErrMissingToken,
		},
		{
			name:    "malformed token",
			token:   func() string { return "not.a.jwt" },
			wantErr: ErrInvalidToken,
		},
		{
			name: "wrong secret",
			token: func() string {
				return sign(t, jwt.SigningMethodHS256, []byte("another-secret-that-is-long-enough-too"), valid)
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "wrong algorithm",
			token: func() string {
				return sign(t, jwt.SigningMethodHS512, []byte(testSecret), valid)
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "expired beyond clock skew",
			token: func() string {
				c := valid
				c.ExpiresAt = jwt.NewNumericDate(fixedTime.Add(-5 * time.Minute))
				return sign(t, jwt.SigningMethodHS256, []byte(testSecret), c)
			},
			wantErr: ErrExpiredToken,
		},
		{
			name: "expired within clock skew",
			token: func() string {
				c := valid
				c.ExpiresAt = jwt.NewNumericDate(fixedTime.Add(-time.Minute))
				return sign(t, jwt.SigningMethodHS256, []byte(testSecret), c)
			},
		},
		{
			name: "not yet valid",
			token: func() string {
				c := valid
				c.NotBefore = jwt.NewNumericDate(fixedTime.Add(10 * time.Minute))
				return sign(t, jwt.SigningMethodHS256, []byte(testSecret), c)
			},
			wantErr: ErrTokenNotYetValid,
		},
		{
			name: "missing expiry",
			token: func() string {
				c := valid
				c.ExpiresAt = nil
				return sign(t, jwt.SigningMethodHS256, []byte(testSecret), c)
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "subject is not a UUID",
			token: func() string {
				c := valid
				c.Subject = "alice"
				return sign(t, jwt.SigningMethodHS256, []byte(testSecret), c)
			},
			wantErr: ErrInvalidToken,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			claims, err := svc.ValidateToken(context.Background(), tc.token())
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, userID, claims.UserID)
			assert.Equal(t, "token-1", claims.ID)
			assert.Equal(t, fixedTime.Add(-time.Minute).Unix(), claims.IssuedAt.Unix())
		})
	}
}
