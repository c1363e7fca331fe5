package services_test

import (
	"context"
	"testing"
	"time"

	"pancakehouse/internal/core/domain/model/menu"
	"pancakehouse/internal/core/domain/model/order"
	"pancakehouse/internal/core/domain/services"
	"pancakehouse/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPancakePreparer_Prepare(t *testing.T) {
	preparer := services.NewPancakePreparer(menu.NewCatalog(), 0)

	t.Run("should prepare every unit in name order", func(t *testing.T) {
		items := order.Items{menu.MilkChocolate: 1, menu.DarkChocolate: 2}

		prepared, err := preparer.Prepare(t.Context(), items)

		require.NoError(t, err)
		require.Len(t, prepared, 3)
		assert.Equal(t, menu.DarkChocolate, prepared[0].Recipe.Pancake)
		assert.Equal(t, 1, prepared[0].Seq)
		assert.Equal(t, menu.DarkChocolate, prepared[1].Recipe.Pancake)
		assert.Equal(t, 2, prepared[1].Seq)
		assert.Equal(t, menu.MilkChocolate, prepared[2].Recipe.Pancake)
		assert.Equal(t, menu.Milk, prepared[2].Recipe.Chocolate)
	})

	t.Run("should reject pancakes not on the menu before preparing anything", func(t *testing.T) {
		items := order.Items{menu.DarkChocolate: 1, menu.Pancake("strawberry"): 1}

		prepared, err := preparer.Prepare(t.Context(), items)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Empty(t, prepared)
	})

	t.Run("should reject empty items", func(t *testing.T) {
		_, err := preparer.Prepare(t.Context(), order.Items{})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should refuse quantities above the order limit without allocating", func(t *testing.T) {
		prepared, err := preparer.Prepare(t.Context(), order.Items{menu.DarkChocolate: 1 << 40})

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Empty(t, prepared)
	})

	t.Run("should stop when interrupted", func(t *testing.T) {
		slow := services.NewPancakePreparer(menu.NewCatalog(), time.Hour)
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		prepared, err := slow.Prepare(ctx, order.Items{menu.DarkChocolate: 3})

		require.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, prepared)
		assert.Contains(t, err.Error(), "preparing dark_chocolate #1")
	})

	t.Run("should spend unit time per pancake", func(t *testing.T) {
		timed := services.NewPancakePreparer(menu.NewCatalog(), 5*time.Millisecond)
		start := time.Now()

		prepared, err := timed.Prepare(t.Context(), order.Items{menu.DarkChocolate: 2})

		require.NoError(t, err)
		assert.Len(t, prepared, 2)
		assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
	})
}
