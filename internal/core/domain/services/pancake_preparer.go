package services

import (
	"context"
	"fmt"
	"slices"
	"time"

	"pancakehouse/internal/core/domain/model/menu"
	"pancakehouse/internal/core/domain/model/order"
)

// PreparedPancake is one unit coming off the griddle.
type PreparedPancake struct {
	Recipe menu.Recipe
	// Seq numbers the units of one pancake type from 1.
	Seq int
}

// PancakePreparer is a stateless domain service preparing the pancakes of an order.
//
// Business rules:
//   - Every unit of every item is prepared separately
//   - Pancakes not on the menu fail the whole preparation before any unit is made
//   - Item types are prepared in name order so logs are reproducible
//
// Example usage:
//
//	preparer := services.NewPancakePreparer(menu.NewCatalog(), 0)
//	pancakes, err := preparer.Prepare(ctx, o.Items())
//	if err != nil {
//	    // unknown pancake or ctx cancelled
//	}
type PancakePreparer struct {
	catalog  menu.Catalog
	unitTime time.Duration
}

// NewPancakePreparer creates a preparer. unitTime is spent on every unit; zero
// prepares instantly.
func NewPancakePreparer(catalog menu.Catalog, unitTime time.Duration) PancakePreparer {
	return PancakePreparer{
		catalog:  catalog,
		unitTime: unitTime,
	}
}

// Prepare returns one PreparedPancake per ordered unit.
// Cancelling ctx interrupts the preparation between or during units.
func (p PancakePreparer) Prepare(ctx context.Context, items order.Items) ([]PreparedPancake, error) {
	if err := items.Validate(); err != nil {
		return nil, err
	}

	kinds := make([]menu.Pancake, 0, len(items))
	recipes := make(map[menu.Pancake]menu.Recipe, len(items))
	for pancake := range items {
		r, err := p.catalog.Recipe(pancake)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, pancake)
		recipes[pancake] = r
	}
	slices.Sort(kinds)

	var prepared []PreparedPancake
	for _, pancake := range kinds {
		for seq := 1; seq <= items[pancake]; seq++ {
			if err := p.cook(ctx); err != nil {
				return prepared, fmt.Errorf("preparing %s #%d: %w", pancake, seq, err)
			}
			prepared = append(prepared, PreparedPancake{Recipe: recipes[pancake], Seq: seq})
		}
	}

	return prepared, nil
}

func (p PancakePreparer) cook(ctx context.Context) error {
	if p.unitTime <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(p.unitTime)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
