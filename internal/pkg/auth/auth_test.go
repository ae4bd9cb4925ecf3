package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/campustrack/internal/pkg/apperrors"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)
	assert.Equal(t, bcrypt.MinCost, h.Cost())

	hashed, err := h.Hash("101")
	require.NoError(t, err)
	assert.NotEqual(t, "101", hashed)
	assert.True(t, h.Check(hashed, "101"))
	assert.False(t, h.Check(hashed, "102"))
	assert.True(t, CheckPassword(hashed, "101"))
	assert.False(t, CheckPassword("not-a-hash", "101"))

	cost, err := bcrypt.Cost([]byte(hashed))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestNewPasswordHasherFallsBackToDefaultCost(t *testing.T) {
	assert.Equal(t, DefaultBcryptCost, NewPasswordHasher(0).Cost())
	assert.Equal(t, DefaultBcryptCost, NewPasswordHasher(99).Cost())
	assert.Equal(t, 10, DefaultBcryptCost)
}

func TestJWTService(t *testing.T) {
	svc := NewJWTService(JWTConfig{SecretKey: "secret", AccessTokenExp: time.Hour, TokenIssuer: "campustrack.test"})

	token, exp, err := svc.Generate("ops@campus.edu", "superadmin", "")
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "superadmin", claims.Role)
	assert.Equal(t, "ops@campus.edu", claims.Subject)

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService(JWTConfig{SecretKey: "other", AccessTokenExp: time.Hour, TokenIssuer: "campustrack.test"})
		_, err := other.ValidateToken(token)
		assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
	})

	t.Run("expired", func(t *testing.T) {
		expired := NewJWTService(JWTConfig{SecretKey: "secret", AccessTokenExp: -time.Minute, TokenIssuer: "campustrack.test"})
		tok, _, err := expired.Generate("ops", "admin", "CS")
		require.NoError(t, err)
		_, err = svc.ValidateToken(tok)
		assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, apperrors.ErrInvalidFormat)
	})
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "bearer", header: "Bearer a.b.c", want: "a.b.c"},
		{name: "raw jwt", header: "a.b.c", want: "a.b.c"},
		{name: "empty", header: "", wantErr: true},
		{name: "bearer without token", header: "Bearer ", wantErr: true},
		{name: "garbage", header: "Basic dXNlcjpwYXNz", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractBearerToken(tt.header)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrInvalidFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
