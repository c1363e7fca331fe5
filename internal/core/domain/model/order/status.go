package order

import (
	"fmt"

	"pancakehouse/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine that only moves forward along the pipeline;
// the single exception is Error, reachable from every non-terminal state.
//
// State transitions:
//
//	Pending ──> Completed ──> InProgress ──> ReadyForDelivery ──> OutForDelivery ──┬──> Delivered
//	   │                                                                           │        ^
//	   └──> Cancelled                                        DeliveryPartnerAssigned <─┘────────┘
//
//	any non-terminal ──> Error
//
// Completed means the owner checked the order out and it was submitted to the
// kitchen. Delivered, Cancelled and Error are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status; the owner may still add pancakes.
	Pending

	// Completed orders were submitted to the kitchen intake queue.
	Completed

	// InProgress orders were accepted by a kitchen worker.
	InProgress

	// ReadyForDelivery orders are prepared and queued for the delivery stage.
	ReadyForDelivery

	// OutForDelivery orders were taken by a delivery worker.
	OutForDelivery

	// DeliveryPartnerAssigned orders wait for the partner's "delivered" signal.
	DeliveryPartnerAssigned

	// Delivered is final.
	Delivered

	// Cancelled is final; only pending orders can be cancelled.
	Cancelled

	// Error is final and marks an order a pipeline stage could not process.
	Error
)

// WaitingForDelivery is the name the delivery partner protocol uses for OutForDelivery.
const WaitingForDelivery = OutForDelivery

var statusStrings = map[Status]string{
	Unknown:                 "Unknown",
	Pending:                 "Pending",
	Completed:               "Completed",
	InProgress:              "InProgress",
	ReadyForDelivery:        "ReadyForDelivery",
	OutForDelivery:          "OutForDelivery",
	DeliveryPartnerAssigned: "DeliveryPartnerAssigned",
	Delivered:               "Delivered",
	Cancelled:               "Cancelled",
	Error:                   "Error",
}

// transitions lists the forward moves of the pipeline. Error is handled separately.
var transitions = map[Status][]Status{
	Pending:                 {Completed, Cancelled},
	Completed:               {InProgress},
	InProgress:              {ReadyForDelivery},
	ReadyForDelivery:        {OutForDelivery},
	OutForDelivery:          {DeliveryPartnerAssigned, Delivered},
	DeliveryPartnerAssigned: {Delivered},
}

// Validate checks if the Status value is one of the defined states.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := statusStrings[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the name of the status, "Unknown" for invalid values.
func (s Status) String() string {
	if str, ok := statusStrings[s]; ok {
		return str
	}
	return "Unknown"
}

// ParseStatus is the inverse of String for valid statuses.
func ParseStatus(str string) (Status, error) {
	for s, name := range statusStrings {
		if name == str && s != Unknown {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", str))
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled || s == Error
}

// CanTransitionTo reports whether the state machine allows s -> to.
func (s Status) CanTransitionTo(to Status) bool {
	if s.Validate() != nil || to.Validate() != nil || s.IsTerminal() {
		return false
	}
	if to == Error {
		return true
	}
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// TransitionTo returns to when the move is allowed and an IllegalStateError otherwise.
//
// Example:
//
//	next, err := order.Pending.TransitionTo(order.Completed)
//	// next == order.Completed, err == nil
//
//	_, err = order.Delivered.TransitionTo(order.Pending)
//	// errors.Is(err, errs.ErrIllegalState)
func (s Status) TransitionTo(to Status) (Status, error) {
	if !s.CanTransitionTo(to) {
		return Unknown, errs.NewIllegalStateErrorWithCause(
			"status transition",
			fmt.Errorf("%s -> %s is not allowed", s, to),
		)
	}
	return to, nil
}
