package identity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/domain/shared"
)

func TestNewStaffUser(t *testing.T) {
	t.Run("creates active staff user", func(t *testing.T) {
		user, err := NewStaffUser("admin", "changeme123")
		require.NoError(t, err)
		assert.Equal(t, RoleStaff, user.Role)
		assert.True(t, user.Active)
		assert.True(t, user.IsStaff())
		assert.Nil(t, user.ClientID)
		assert.NotEqual(t, "changeme123", user.PasswordHash)
	})

	t.Run("lowercases username", func(t *testing.T) {
		user, err := NewStaffUser("  Admin ", "changeme123")
		require.NoError(t, err)
		assert.Equal(t, "admin", user.Username)
	})

	t.Run("rejects short username", func(t *testing.T) {
		_, err := NewStaffUser("ab", "changeme123")
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_USERNAME", domainErr.Code)
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := NewStaffUser("admin", "short")
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "WEAK_PASSWORD", domainErr.Code)
	})
}

func TestNewClientUser(t *testing.T) {
	t.Run("binds client id", func(t *testing.T) {
		clientID := uuid.New()
		user, err := NewClientUser("shop.front", "changeme123", clientID)
		require.NoError(t, err)
		assert.Equal(t, RoleClient, user.Role)
		require.NotNil(t, user.ClientID)
		assert.Equal(t, clientID, *user.ClientID)
		assert.False(t, user.IsStaff())
	})

	t.Run("rejects nil client id", func(t *testing.T) {
		_, err := NewClientUser("shop.front", "changeme123", uuid.Nil)
		assert.Error(t, err)
	})
}

func TestUserCheckPassword(t *testing.T) {
	user, err := NewStaffUser("admin", "changeme123")
	require.NoError(t, err)

	assert.True(t, user.CheckPassword("changeme123"))
	assert.False(t, user.CheckPassword("wrong-password"))
}

func TestUserChangePassword(t *testing.T) {
	user, err := NewStaffUser("admin", "changeme123")
	require.NoError(t, err)

	require.NoError(t, user.ChangePassword("newsecret456"))
	assert.True(t, user.CheckPassword("newsecret456"))
	assert.False(t, user.CheckPassword("changeme123"))

	assert.Error(t, user.ChangePassword("short"))
}

func TestUserSetEmail(t *testing.T) {
	user, _ := NewStaffUser("admin", "changeme123")
	require.NoError(t, user.SetEmail("Admin@Example.com"))
	assert.Equal(t, "admin@example.com", user.Email)

	assert.Error(t, user.SetEmail("not-an-email"))
}

func TestUserLifecycle(t *testing.T) {
	user, _ := NewStaffUser("admin", "changeme123")

	at := time.Now()
	user.RecordLogin(at)
	require.NotNil(t, user.LastLoginAt)
	assert.Equal(t, at, *user.LastLoginAt)

	user.Deactivate()
	assert.False(t, user.Active)
}

func TestRoleIsValid(t *testing.T) {
	assert.True(t, RoleStaff.IsValid())
	assert.True(t, RoleClient.IsValid())
	assert.False(t, Role("admin").IsValid())
}
