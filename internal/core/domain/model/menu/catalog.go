// Package menu is the static pancake catalog consulted by the kitchen while preparing orders.
package menu

import (
	"fmt"
	"slices"
	"strings"

	"pancakehouse/internal/pkg/errs"
)

// Pancake identifies a menu item.
type Pancake string

const (
	DarkChocolate                     Pancake = "dark_chocolate"
	DarkChocolateWhippedCream         Pancake = "dark_chocolate_whipped_cream"
	DarkChocolateWhippedCreamHazelnut Pancake = "dark_chocolate_whipped_cream_hazelnuts"
	MilkChocolate                     Pancake = "milk_chocolate"
	MilkChocolateHazelnut             Pancake = "milk_chocolate_hazelnuts"
)

// Chocolate is the base chocolate of a pancake.
type Chocolate string

const (
	Dark Chocolate = "dark chocolate"
	Milk Chocolate = "milk chocolate"
)

// Topping is an extra ingredient on top of the chocolate.
type Topping string

const (
	WhippedCream Topping = "whipped cream"
	Hazelnuts    Topping = "hazelnuts"
)

// Recipe holds the ingredient attributes of a pancake.
type Recipe struct {
	Pancake   Pancake
	Chocolate Chocolate
	toppings  []Topping
}

// Toppings returns a copy of the recipe's toppings in serving order.
func (r Recipe) Toppings() []Topping {
	return slices.Clone(r.toppings)
}

// Description renders the recipe the way it is printed on the menu.
func (r Recipe) Description() string {
	parts := []string{string(r.Chocolate)}
	for _, t := range r.toppings {
		parts = append(parts, string(t))
	}
	return fmt.Sprintf("Delicious pancake with %s!", strings.Join(parts, ", "))
}

// Catalog is an immutable lookup from pancake to recipe. It is safe for concurrent use.
type Catalog struct {
	recipes map[Pancake]Recipe
}

// NewCatalog returns the catalog with every pancake on the menu.
func NewCatalog() Catalog {
	recipes := []Recipe{
		{Pancake: DarkChocolate, Chocolate: Dark},
		{Pancake: DarkChocolateWhippedCream, Chocolate: Dark, toppings: []Topping{WhippedCream}},
		{Pancake: DarkChocolateWhippedCreamHazelnut, Chocolate: Dark, toppings: []Topping{WhippedCream, Hazelnuts}},
		{Pancake: MilkChocolate, Chocolate: Milk},
		{Pancake: MilkChocolateHazelnut, Chocolate: Milk, toppings: []Topping{Hazelnuts}},
	}

	c := Catalog{recipes: make(map[Pancake]Recipe, len(recipes))}
	for _, r := range recipes {
		c.recipes[r.Pancake] = r
	}
	return c
}

// Recipe looks up a pancake. Unknown pancakes are a validation failure.
func (c Catalog) Recipe(p Pancake) (Recipe, error) {
	r, ok := c.recipes[p]
	if !ok {
		return Recipe{}, errs.NewValueIsInvalidErrorWithCause("pancake", fmt.Errorf("%q is not on the menu", p))
	}
	return r, nil
}

// Contains reports whether p is on the menu.
func (c Catalog) Contains(p Pancake) bool {
	_, ok := c.recipes[p]
	return ok
}

// Pancakes lists the menu in a stable order.
func (c Catalog) Pancakes() []Pancake {
	out := make([]Pancake, 0, len(c.recipes))
	for p := range c.recipes {
		out = append(out, p)
	}
	slices.Sort(out)
	return out
}
