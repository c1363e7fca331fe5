package userrepo_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pancakehouse/internal/adapters/out/memory/userrepo"
	"pancakehouse/internal/core/domain/model/user"
	"pancakehouse/internal/core/ports"
	"pancakehouse/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.UserDirectory = (*userrepo.UserDirectory)(nil)

func TestUserDirectory_Lookup(t *testing.T) {
	d, err := userrepo.NewUserDirectory(userrepo.DefaultUsers("kitchen-crew", "delivery-crew")...)
	require.NoError(t, err)

	t.Run("should find registered users", func(t *testing.T) {
		alice, err := d.Lookup("alice")

		require.NoError(t, err)
		assert.True(t, alice.Can(user.ResourceOrder, user.Create|user.Read|user.Update))
		assert.False(t, alice.Can(user.ResourceKitchen, user.Read))
	})

	t.Run("should give crews their resource only", func(t *testing.T) {
		kitchen, err := d.Lookup("kitchen-crew")
		require.NoError(t, err)
		delivery, err := d.Lookup("delivery-crew")
		require.NoError(t, err)

		assert.True(t, kitchen.Can(user.ResourceKitchen, user.Update))
		assert.False(t, kitchen.Can(user.ResourceDelivery, user.Update))
		assert.True(t, delivery.Can(user.ResourceDelivery, user.Update))
		assert.False(t, delivery.Can(user.ResourceOrder, user.Create))
	})

	t.Run("should not find unknown users", func(t *testing.T) {
		_, err := d.Lookup("mallory")

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should list names", func(t *testing.T) {
		assert.Equal(t, []string{"alice", "bob", "delivery-crew", "kitchen-crew"}, d.Names())
	})
}

func TestNewUserDirectory_Rejects(t *testing.T) {
	t.Run("should reject duplicates", func(t *testing.T) {
		a, _ := user.NewPrincipal("alice")

		_, err := userrepo.NewUserDirectory(a, a)

		require.ErrorIs(t, err, errs.ErrIllegalState)
	})

	t.Run("should reject unset users", func(t *testing.T) {
		_, err := userrepo.NewUserDirectory(user.User{})

		require.ErrorIs(t, err, user.ErrUserIsNotConstructed)
	})
}

func TestLoadUsers(t *testing.T) {
	t.Run("should parse privileges", func(t *testing.T) {
		users, err := userrepo.LoadUsers(strings.NewReader(`{
			"users": [
				{"name": "erin", "privileges": {"order": "cr", "kitchen": "-"}},
				{"name": "chef", "privileges": {"kitchen": "RU"}}
			]
		}`))

		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "erin", users[0].Name())
		assert.Equal(t, user.Create|user.Read, users[0].Privileges(user.ResourceOrder))
		assert.Equal(t, user.None, users[0].Privileges(user.ResourceKitchen))
		assert.True(t, users[1].Can(user.ResourceKitchen, user.Update))
	})

	t.Run("should report every broken entry", func(t *testing.T) {
		_, err := userrepo.LoadUsers(strings.NewReader(`{
			"users": [
				{"name": "", "privileges": {}},
				{"name": "x", "privileges": {"pantry": "R"}},
				{"name": "y", "privileges": {"order": "CRX"}}
			]
		}`))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "user #0")
		assert.Contains(t, err.Error(), "user #1")
		assert.Contains(t, err.Error(), "user #2")
	})

	t.Run("should fail on malformed JSON", func(t *testing.T) {
		_, err := userrepo.LoadUsers(strings.NewReader(`{"users": [`))

		require.ErrorContains(t, err, "decode users")
	})

	t.Run("should load from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "users.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"users":[{"name":"zoe","privileges":{"order":"CRUD"}}]}`), 0o600))

		users, err := userrepo.LoadUsersFile(path)

		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "zoe", users[0].Name())
	})
}
