package access_test

import (
	"errors"
	"testing"

	"pancakehouse/internal/adapters/out/memory/ownershiprepo"
	"pancakehouse/internal/adapters/out/memory/userrepo"
	"pancakehouse/internal/core/application/usecases/access"
	"pancakehouse/internal/core/domain/model/kernel"
	"pancakehouse/internal/core/domain/model/user"
	"pancakehouse/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDirectory(t *testing.T) *userrepo.UserDirectory {
	t.Helper()
	reader, err := user.NewUser("reader", map[user.Resource]user.Privilege{user.ResourceOrder: user.Read})
	require.NoError(t, err)
	d, err := userrepo.NewUserDirectory(append(userrepo.DefaultUsers("kitchen-crew", "delivery-crew"), reader)...)
	require.NoError(t, err)
	return d
}

func principal(t *testing.T, name string) user.User {
	t.Helper()
	u, err := user.NewPrincipal(name)
	require.NoError(t, err)
	return u
}

func TestAuthenticator_Authenticate(t *testing.T) {
	authenticator := access.NewAuthenticator(newDirectory(t))

	t.Run("should resolve registered principal with its privileges", func(t *testing.T) {
		u, err := authenticator.Authenticate(principal(t, "alice"))

		require.NoError(t, err)
		assert.Equal(t, "alice", u.Name())
		assert.True(t, u.Can(user.ResourceOrder, user.Create))
	})

	t.Run("should ignore privileges claimed by the caller", func(t *testing.T) {
		claimed, _ := user.NewUser("alice", map[user.Resource]user.Privilege{user.ResourceKitchen: user.All})

		u, err := authenticator.Authenticate(claimed)

		require.NoError(t, err)
		assert.False(t, u.Can(user.ResourceKitchen, user.Read))
	})

	t.Run("should reject unset caller", func(t *testing.T) {
		_, err := authenticator.Authenticate(user.User{})

		require.ErrorIs(t, err, errs.ErrAuthenticationFailed)
		assert.Contains(t, err.Error(), "<unset>")
	})

	t.Run("should reject unknown caller", func(t *testing.T) {
		_, err := authenticator.Authenticate(principal(t, "mallory"))

		require.ErrorIs(t, err, errs.ErrAuthenticationFailed)
		assert.Contains(t, err.Error(), "mallory")
	})
}

func TestAuthorizer_CheckOwnership(t *testing.T) {
	ownership := ownershiprepo.NewOwnershipMap()
	authorizer := access.NewAuthorizer(ownership)
	owned := kernel.NewUUID()
	require.NoError(t, ownership.Assign(owned, "alice"))

	t.Run("should pass for the owner", func(t *testing.T) {
		require.NoError(t, authorizer.CheckOwnership(owned, principal(t, "alice")))
	})

	t.Run("should tell missing order apart from foreign order", func(t *testing.T) {
		missingErr := authorizer.CheckOwnership(kernel.NewUUID(), principal(t, "alice"))
		foreignErr := authorizer.CheckOwnership(owned, principal(t, "bob"))

		require.ErrorIs(t, missingErr, errs.ErrAuthorizationFailed)
		require.ErrorIs(t, foreignErr, errs.ErrAuthorizationFailed)
		require.ErrorIs(t, missingErr, errs.ErrOrderNotFound)
		require.ErrorIs(t, foreignErr, errs.ErrNotOrderOwner)
		assert.NotErrorIs(t, missingErr, errs.ErrNotOrderOwner)
		assert.NotErrorIs(t, foreignErr, errs.ErrOrderNotFound)
		assert.Contains(t, missingErr.Error(), "order not found")
		assert.Contains(t, foreignErr.Error(), "not authorized to access order")

		var authErr *errs.AuthorizationFailedError
		require.True(t, errors.As(foreignErr, &authErr))
		assert.Equal(t, "bob", authErr.User)
		assert.Equal(t, owned.String(), authErr.Resource)
	})
}

func TestAuthorizer_CheckPrivilege(t *testing.T) {
	directory := newDirectory(t)
	authorizer := access.NewAuthorizer(ownershiprepo.NewOwnershipMap())
	reader, _ := directory.Lookup("reader")
	crew, _ := directory.Lookup("kitchen-crew")

	cases := []struct {
		name     string
		caller   user.User
		resource user.Resource
		required user.Privilege
		allowed  bool
	}{
		{"should allow read to reader", reader, user.ResourceOrder, user.Read, true},
		{"should deny create to reader", reader, user.ResourceOrder, user.Create, false},
		{"should deny combined codes when one is missing", reader, user.ResourceOrder, user.Read | user.Update, false},
		{"should allow kitchen update to crew", crew, user.ResourceKitchen, user.Update, true},
		{"should deny other resources to crew", crew, user.ResourceDelivery, user.Read, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := authorizer.CheckPrivilege(tc.caller, tc.resource, tc.required)

			if tc.allowed {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, errs.ErrInsufficientPrivilege)
			assert.Contains(t, err.Error(), "insufficient privilege")
			assert.Contains(t, err.Error(), string(tc.resource))
		})
	}
}

func TestAuthorizer_Authorize(t *testing.T) {
	ownership := ownershiprepo.NewOwnershipMap()
	authorizer := access.NewAuthorizer(ownership)
	directory := newDirectory(t)
	reader, _ := directory.Lookup("reader")
	id := kernel.NewUUID()
	require.NoError(t, ownership.Assign(id, "alice"))

	t.Run("should check ownership before privilege", func(t *testing.T) {
		err := authorizer.Authorize(id, reader, user.ResourceOrder, user.Update)

		require.ErrorIs(t, err, errs.ErrNotOrderOwner)
	})

	t.Run("should check privilege of the owner", func(t *testing.T) {
		readerID := kernel.NewUUID()
		require.NoError(t, ownership.Assign(readerID, "reader"))

		require.NoError(t, authorizer.Authorize(readerID, reader, user.ResourceOrder, user.Read))
		require.ErrorIs(t, authorizer.Authorize(readerID, reader, user.ResourceOrder, user.Update),
			errs.ErrInsufficientPrivilege)
	})
}
