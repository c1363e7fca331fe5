// Package order provides the Order aggregate and the Status state machine of the
// fulfillment pipeline.
//
// The package includes:
//   - Order: identity, owner, delivery target and pancake quantities
//   - Items: pancake -> quantity with summing merge semantics
//   - Status: forward-only lifecycle from Pending to Delivered, plus Cancelled and Error
//
// Key business rules:
//   - Quantities are positive and accumulate on repeated additions
//   - Status never moves backwards; Error is reachable from any non-terminal state
//   - Delivered, Cancelled and Error are terminal
package order
