// Package kernel provides core domain primitives shared by the order, user and
// pipeline models.
//
// The package includes:
//   - UUID: a value object for order identifiers
//   - DeliveryInfo: the room/building delivery target with range validation
//
// Both are immutable value objects whose zero values fail validation, so they are
// safe to share between the workflow and the pipeline goroutines.
package kernel
