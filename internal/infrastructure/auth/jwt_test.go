package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/domain/identity"
	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/infrastructure/config"
)

func newTestService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:          "test-secret-key-with-enough-length",
		TokenExpiration: expiration,
		Issuer:          "paypilot-test",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestService(time.Hour)

	user, err := identity.NewStaffUser("alice", "s3cret-password")
	require.NoError(t, err)

	issued, err := svc.GenerateToken(user)
	require.NoError(t, err)
	assert.NotEmpty(t, issued.Token)
	assert.Equal(t, "Bearer", issued.TokenType)
	assert.WithinDuration(t, time.Now().Add(time.Hour), issued.ExpiresAt, 5*time.Second)

	claims, err := svc.ValidateToken(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "staff", claims.Role)
	assert.Empty(t, claims.ClientID)
	assert.True(t, claims.IsStaff())
}

func TestClientTokenCarriesClientID(t *testing.T) {
	svc := newTestService(time.Hour)
	clientID := uuid.New()

	user, err := identity.NewClientUser("bob.shop", "s3cret-password", clientID)
	require.NoError(t, err)

	issued, err := svc.GenerateToken(user)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(issued.Token)
	require.NoError(t, err)
	assert.False(t, claims.IsStaff())

	parsed, err := claims.GetClientUUID()
	require.NoError(t, err)
	assert.Equal(t, clientID, parsed)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	svc := newTestService(-time.Minute)

	user, err := identity.NewStaffUser("alice", "s3cret-password")
	require.NoError(t, err)

	issued, err := svc.GenerateToken(user)
	require.NoError(t, err)

	_, err = svc.ValidateToken(issued.Token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	svc := newTestService(time.Hour)
	other := NewJWTService(config.JWTConfig{
		Secret:          "a-completely-different-secret-key",
		TokenExpiration: time.Hour,
		Issuer:          "paypilot-test",
	})

	user, err := identity.NewStaffUser("alice", "s3cret-password")
	require.NoError(t, err)

	issued, err := svc.GenerateToken(user)
	require.NoError(t, err)

	_, err = other.ValidateToken(issued.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := newTestService(time.Hour)

	_, err := svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGetClientUUIDEmpty(t *testing.T) {
	claims := &Claims{}
	id, err := claims.GetClientUUID()
	assert.NoError(t, err)
	assert.Equal(t, uuid.Nil, id)
}
