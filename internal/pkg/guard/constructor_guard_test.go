package guard_test

import (
	"errors"
	"sync"
	"testing"

	"pancakehouse/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("Pancake must be created via NewPancake")

	t.Run("should pass for constructed guard", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errNotConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("should return supplied error for zero value", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(errNotConstructed)

		require.Error(t, err)
		assert.Equal(t, errNotConstructed, err)
	})

	t.Run("should fall back to default error for zero value", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})

	t.Run("should survive copies by value", func(t *testing.T) {
		g := guard.NewConstructorGuard()
		copied := g

		require.NoError(t, copied.Validate(errNotConstructed))
	})
}

func TestConstructorGuard_EmbeddedInValueObject(t *testing.T) {
	type tray struct {
		slots int
		guard guard.ConstructorGuard
	}
	errTrayNotConstructed := errors.New("tray must be created via newTray")

	newTray := func(slots int) (tray, error) {
		if slots <= 0 {
			return tray{}, errors.New("slots must be positive")
		}
		return tray{slots: slots, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("should validate constructed value", func(t *testing.T) {
		tr, err := newTray(4)

		require.NoError(t, err)
		require.NoError(t, tr.guard.Validate(errTrayNotConstructed))
		assert.Equal(t, 4, tr.slots)
	})

	t.Run("should reject value returned on constructor failure", func(t *testing.T) {
		tr, err := newTray(0)

		require.Error(t, err)
		assert.Equal(t, errTrayNotConstructed, tr.guard.Validate(errTrayNotConstructed))
	})
}

func TestConstructorGuard_ConcurrentValidate(t *testing.T) {
	g := guard.NewConstructorGuard()
	errNotConstructed := errors.New("not constructed")

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				assert.NoError(t, g.Validate(errNotConstructed))
			}
		}()
	}
	wg.Wait()
}
