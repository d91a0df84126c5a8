package jwttoken

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"looview/pkg/domain"
	dErrors "looview/pkg/domain-errors"
)

var jwtService = NewJWTService(
	"test-signing-key",
	"test-issuer",
	"test-audience",
)

var identity = domain.Identity{UserID: "user-123", DisplayName: "Loo Hunter", Role: domain.RoleModerator}

func Test_GenerateAccessToken(t *testing.T) {
	token, err := jwtService.GenerateAccessToken(identity, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := jwtService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "Loo Hunter", claims.DisplayName)
	assert.Equal(t, "moderator", claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func Test_ValidateToken_InvalidToken(t *testing.T) {
	_, err := jwtService.ValidateToken("invalid-token-string")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	assert.Equal(t, "invalid token", dErrors.MessageOf(err))
}

func Test_ValidateToken_ExpiredToken(t *testing.T) {
	token, err := jwtService.GenerateAccessToken(identity, -time.Hour)
	require.NoError(t, err)

	_, err = jwtService.ValidateToken(token)
	require.Error(t, err)
	assert.Equal(t, "token has expired", dErrors.MessageOf(err))
}

func Test_ValidateToken_WrongKey(t *testing.T) {
	other := NewJWTService("another-key", "test-issuer", "test-audience")
	token, err := other.GenerateAccessToken(identity, time.Hour)
	require.NoError(t, err)

	_, err = jwtService.ValidateToken(token)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func Test_ValidateToken_WrongAudience(t *testing.T) {
	other := NewJWTService("test-signing-key", "test-issuer", "someone-else")
	token, err := other.GenerateAccessToken(identity, time.Hour)
	require.NoError(t, err)

	_, err = jwtService.ValidateToken(token)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func Test_IdentityValidator(t *testing.T) {
	token, err := jwtService.GenerateAccessToken(identity, time.Hour)
	require.NoError(t, err)

	got, err := NewIdentityValidator(jwtService).ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, identity, *got)
}

func Test_IdentityRejectsBadSubject(t *testing.T) {
	token, err := jwtService.GenerateAccessToken(domain.Identity{UserID: "bad id!"}, time.Hour)
	require.NoError(t, err)

	_, err = NewIdentityValidator(jwtService).ValidateToken(token)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func Test_ValidateToken_NoSigningKey(t *testing.T) {
	_, err := NewJWTService("", "test-issuer", "test-audience").ValidateToken("anything")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
}
