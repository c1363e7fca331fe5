package kernel

import (
	"errors"
	"fmt"

	"pancakehouse/internal/pkg/errs"
	"pancakehouse/internal/pkg/guard"
)

const (
	// RoomMin is the lowest deliverable room number.
	RoomMin = 1
	// RoomMax is the highest deliverable room number.
	RoomMax = 1000
	// BuildingMin is the lowest deliverable building number.
	BuildingMin = 1
	// BuildingMax is the highest deliverable building number.
	BuildingMax = 100
)

// ErrDeliveryInfoIsNotConstructed is returned when a DeliveryInfo was not built by NewDeliveryInfo.
var ErrDeliveryInfoIsNotConstructed = errs.NewValueIsRequiredError(
	"delivery info must be created via NewDeliveryInfo constructor")

// DeliveryInfo is the delivery target of an order: a room inside a building on campus.
// It is an immutable value object; the zero value is invalid.
//
// Example:
//
//	info, err := kernel.NewDeliveryInfo(101, 7)
//	if err != nil {
//	    // room or building out of range
//	}
//	fmt.Println(info) // DeliveryInfo(room=101,building=7)
type DeliveryInfo struct { //nolint:recvcheck //using for validation
	room     int
	building int
	guard    guard.ConstructorGuard
}

// NewDeliveryInfo validates room ∈ [RoomMin, RoomMax] and building ∈ [BuildingMin, BuildingMax].
// Both violations are reported together.
func NewDeliveryInfo(room, building int) (DeliveryInfo, error) {
	info := DeliveryInfo{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(info.setRoom(room), info.setBuilding(building)); err != nil {
		return DeliveryInfo{}, err
	}

	return info, nil
}

// Validate reports whether the value was built by NewDeliveryInfo.
func (d DeliveryInfo) Validate() error {
	return d.guard.Validate(ErrDeliveryInfoIsNotConstructed)
}

// Room returns the room number.
func (d DeliveryInfo) Room() int {
	return d.room
}

// Building returns the building number.
func (d DeliveryInfo) Building() int {
	return d.building
}

func (d DeliveryInfo) String() string {
	return fmt.Sprintf("DeliveryInfo(room=%d,building=%d)", d.room, d.building)
}

func (d *DeliveryInfo) setRoom(room int) error {
	if room < RoomMin || room > RoomMax {
		return errs.NewValueIsOutOfRangeError("room", room, RoomMin, RoomMax)
	}

	d.room = room
	return nil
}

func (d *DeliveryInfo) setBuilding(building int) error {
	if building < BuildingMin || building > BuildingMax {
		return errs.NewValueIsOutOfRangeError("building", building, BuildingMin, BuildingMax)
	}

	d.building = building
	return nil
}
