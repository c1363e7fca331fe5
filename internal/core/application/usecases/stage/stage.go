// Package stage has the store helpers shared by the kitchen and delivery desks.
package stage

import (
	"errors"
	"slices"
	"strings"

	"pancakehouse/internal/core/domain/model/kernel"
	"pancakehouse/internal/core/domain/model/order"
	"pancakehouse/internal/core/ports"
	"pancakehouse/internal/pkg/errs"
)

// Tickets lists the stored orders whose status is one of wanted, ordered by id.
func Tickets(orders ports.OrderStore, statuses ports.StatusStore, wanted ...order.Status) []order.Ticket {
	current := statuses.Snapshot()

	tickets := make([]order.Ticket, 0)
	for _, o := range orders.Snapshot() {
		st, ok := current[o.ID()]
		if !ok || !slices.Contains(wanted, st) {
			continue
		}
		tickets = append(tickets, order.Ticket{Order: o, Status: st})
	}

	slices.SortFunc(tickets, func(a, b order.Ticket) int {
		return strings.Compare(a.Order.ID().String(), b.Order.ID().String())
	})
	return tickets
}

// IDs lists every id whose status is one of wanted, whether or not the record
// is still stored, ordered by id.
func IDs(statuses ports.StatusStore, wanted ...order.Status) []kernel.UUID {
	ids := make([]kernel.UUID, 0)
	for id, st := range statuses.Snapshot() {
		if slices.Contains(wanted, st) {
			ids = append(ids, id)
		}
	}

	slices.SortFunc(ids, func(a, b kernel.UUID) int {
		return strings.Compare(a.String(), b.String())
	})
	return ids
}

// Fail moves the order to Error. Terminal statuses are kept; an id without any
// status gets Error.
func Fail(statuses ports.StatusStore, id kernel.UUID) {
	err := statuses.Transition(id, order.Error)
	if errors.Is(err, errs.ErrObjectNotFound) {
		statuses.Set(id, order.Error)
	}
}

// Refuse builds the IllegalState error a stage returns for an order it cannot process.
func Refuse(id kernel.UUID, cause error) error {
	return errs.NewIllegalStateErrorWithCause("order "+id.String(), cause)
}
