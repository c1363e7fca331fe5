package order

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"pancakehouse/internal/core/domain/model/kernel"
	"pancakehouse/internal/core/domain/model/menu"
	"pancakehouse/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder factory method.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	ErrOwnerIsRequired  = errs.NewValueIsRequiredError("owner")
	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")

	// ErrOrderIsCheckedOut is the cause returned for changes to an order handed to the kitchen.
	ErrOrderIsCheckedOut = errors.New("order is checked out")
)

const (
	// MaxQuantity bounds the quantity of a single pancake type in an order.
	MaxQuantity = 100
	// MaxPancakes bounds the number of pancakes in an order over all types.
	MaxPancakes = 500
)

// Items maps a pancake to the number ordered.
type Items map[menu.Pancake]int

// Total returns the number of pancakes over all types.
func (i Items) Total() int {
	total := 0
	for _, q := range i {
		total += q
	}
	return total
}

// Validate requires a non-empty map of quantities in [1, MaxQuantity] adding up
// to at most MaxPancakes.
func (i Items) Validate() error {
	if len(i) == 0 {
		return ErrItemsAreRequired
	}

	var problems []error
	for p, q := range i {
		if strings.TrimSpace(string(p)) == "" {
			problems = append(problems, errs.NewValueIsRequiredError("pancake"))
			continue
		}
		if q <= 0 {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
				"quantity", fmt.Errorf("%d %s is not greater than 0", q, p)))
			continue
		}
		if q > MaxQuantity {
			problems = append(problems, errs.NewValueIsOutOfRangeError("quantity of "+string(p), q, 1, MaxQuantity))
		}
	}
	if len(problems) > 0 {
		return errors.Join(problems...)
	}

	if total := i.Total(); total > MaxPancakes {
		return errs.NewValueIsOutOfRangeError("pancakes in order", total, 1, MaxPancakes)
	}
	return nil
}

// Order is the aggregate tracked through the fulfillment pipeline: an immutable id,
// owner and delivery target plus the pancakes ordered. Its status lives in the
// status store, next to the order store, and not on the record itself.
//
// Order follows these invariants:
//   - Must have a valid unique identifier, owner and delivery info
//   - Quantities are always positive; adding a pancake type twice sums the quantities
//   - Sums stay within MaxQuantity per pancake type and MaxPancakes per order
//   - Once checked out, the pancakes can no longer change
//   - Can only be created through NewOrder constructor
//
// An Order is not safe for concurrent mutation. Stores hand out clones, and
// every mutation goes through the store's per-order update.
type Order struct {
	id            kernel.UUID
	owner         string
	deliveryInfo  kernel.DeliveryInfo
	items         Items
	checkedOut    bool
	isConstructed bool
}

// NewOrder creates an empty order for owner.
//
// Example:
//
//	info, _ := kernel.NewDeliveryInfo(101, 7)
//	o, err := order.NewOrder(kernel.NewUUID(), "alice", info)
func NewOrder(id kernel.UUID, owner string, deliveryInfo kernel.DeliveryInfo) (*Order, error) {
	o := &Order{
		items:         make(Items),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOwner(owner),
		o.setDeliveryInfo(deliveryInfo),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed through NewOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Owner returns the name of the user who created the order.
func (o *Order) Owner() string {
	return o.owner
}

// DeliveryInfo returns the delivery target.
func (o *Order) DeliveryInfo() kernel.DeliveryInfo {
	return o.deliveryInfo
}

// Items returns a copy of the pancakes ordered.
func (o *Order) Items() Items {
	return maps.Clone(o.items)
}

// IsEmpty reports whether no pancake was added yet.
func (o *Order) IsEmpty() bool {
	return len(o.items) == 0
}

// IsCheckedOut reports whether CheckOut succeeded.
func (o *Order) IsCheckedOut() bool {
	return o.checkedOut
}

// AddPancakes merges items into the order, summing quantities per pancake.
// Either all items are added or, on any failure, none.
func (o *Order) AddPancakes(items Items) error {
	if o.checkedOut {
		return errs.NewIllegalStateErrorWithCause("order "+o.id.String(), ErrOrderIsCheckedOut)
	}
	if err := items.Validate(); err != nil {
		return err
	}

	merged := maps.Clone(o.items)
	if merged == nil {
		merged = make(Items)
	}
	for p, q := range items {
		merged[p] += q
		if merged[p] > MaxQuantity {
			return errs.NewValueIsOutOfRangeError("quantity of "+string(p), merged[p], 1, MaxQuantity)
		}
	}
	if total := merged.Total(); total > MaxPancakes {
		return errs.NewValueIsOutOfRangeError("pancakes in order", total, 1, MaxPancakes)
	}

	o.items = merged
	return nil
}

// CheckOut freezes the pancakes before the order goes to the kitchen. An empty
// order cannot be checked out. Checking out twice is a no-op.
func (o *Order) CheckOut() error {
	if o.IsEmpty() {
		return ErrItemsAreRequired
	}
	o.checkedOut = true
	return nil
}

// Clone returns a deep copy.
func (o *Order) Clone() *Order {
	c := *o
	c.items = maps.Clone(o.items)
	if c.items == nil {
		c.items = make(Items)
	}
	return &c
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOwner(owner string) error {
	if strings.TrimSpace(owner) == "" {
		return ErrOwnerIsRequired
	}
	o.owner = owner
	return nil
}

func (o *Order) setDeliveryInfo(info kernel.DeliveryInfo) error {
	if err := info.Validate(); err != nil {
		return err
	}
	o.deliveryInfo = info
	return nil
}

// Ticket pairs an order with its status, as shown on the kitchen and delivery screens.
type Ticket struct {
	Order  *Order
	Status Status
}
