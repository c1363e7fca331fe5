// Package services provides domain services that operate on orders but do not
// belong to the Order aggregate itself.
//
// The package includes:
//   - PancakePreparer: turns the items of an order into prepared pancakes,
//     consulting the menu catalog for every unit
package services
