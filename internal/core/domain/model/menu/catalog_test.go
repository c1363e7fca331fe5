package menu_test

import (
	"testing"

	"pancakehouse/internal/core/domain/model/menu"
	"pancakehouse/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Recipe(t *testing.T) {
	catalog := menu.NewCatalog()

	t.Run("should describe every pancake", func(t *testing.T) {
		tests := []struct {
			pancake     menu.Pancake
			description string
		}{
			{menu.DarkChocolate, "Delicious pancake with dark chocolate!"},
			{menu.DarkChocolateWhippedCream, "Delicious pancake with dark chocolate, whipped cream!"},
			{menu.DarkChocolateWhippedCreamHazelnut, "Delicious pancake with dark chocolate, whipped cream, hazelnuts!"},
			{menu.MilkChocolate, "Delicious pancake with milk chocolate!"},
			{menu.MilkChocolateHazelnut, "Delicious pancake with milk chocolate, hazelnuts!"},
		}

		for _, tc := range tests {
			t.Run(string(tc.pancake), func(t *testing.T) {
				r, err := catalog.Recipe(tc.pancake)

				require.NoError(t, err)
				assert.Equal(t, tc.description, r.Description())
				assert.True(t, catalog.Contains(tc.pancake))
			})
		}
	})

	t.Run("should reject unknown pancake", func(t *testing.T) {
		_, err := catalog.Recipe("blueberry")

		require.Error(t, err)
		assert.True(t, errs.IsValidation(err))
		assert.False(t, catalog.Contains("blueberry"))
	})

	t.Run("should not leak toppings slice", func(t *testing.T) {
		r, err := catalog.Recipe(menu.DarkChocolateWhippedCreamHazelnut)
		require.NoError(t, err)

		toppings := r.Toppings()
		toppings[0] = "sprinkles"

		again, _ := catalog.Recipe(menu.DarkChocolateWhippedCreamHazelnut)
		assert.Equal(t, []menu.Topping{menu.WhippedCream, menu.Hazelnuts}, again.Toppings())
	})
}

func TestCatalog_Pancakes(t *testing.T) {
	assert.Equal(t, []menu.Pancake{
		menu.DarkChocolate,
		menu.DarkChocolateWhippedCream,
		menu.DarkChocolateWhippedCreamHazelnut,
		menu.MilkChocolate,
		menu.MilkChocolateHazelnut,
	}, menu.NewCatalog().Pancakes())
}
