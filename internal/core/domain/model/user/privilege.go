package user

import (
	"fmt"
	"strings"

	"pancakehouse/internal/pkg/errs"
)

// Resource names an area of the system guarded by privileges.
type Resource string

const (
	ResourceOrder    Resource = "order"
	ResourceKitchen  Resource = "kitchen"
	ResourceDelivery Resource = "delivery"
)

// Validate rejects resource names the system does not know.
func (r Resource) Validate() error {
	switch r {
	case ResourceOrder, ResourceKitchen, ResourceDelivery:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("resource", fmt.Errorf("%q is not a known resource", string(r)))
	}
}

// Privilege is a set of CRUD codes. Individual codes combine with bitwise or.
type Privilege uint8

const (
	Create Privilege = 1 << iota
	Read
	Update
	Delete

	None Privilege = 0
	All            = Create | Read | Update | Delete
)

var privilegeLetters = []struct {
	code   Privilege
	letter byte
}{
	{Create, 'C'},
	{Read, 'R'},
	{Update, 'U'},
	{Delete, 'D'},
}

// Contains reports whether every code in required is part of p.
func (p Privilege) Contains(required Privilege) bool {
	return p&required == required
}

// String renders the set in CRUD letter form, e.g. "CR" or "-" for the empty set.
func (p Privilege) String() string {
	var b strings.Builder
	for _, l := range privilegeLetters {
		if p.Contains(l.code) {
			b.WriteByte(l.letter)
		}
	}
	if b.Len() == 0 {
		return "-"
	}
	return b.String()
}

// ParsePrivilege reads the CRUD letter form produced by String. Letters are case
// insensitive and may appear in any order; "-" and "" mean no privilege.
func ParsePrivilege(s string) (Privilege, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return None, nil
	}

	var p Privilege
	for _, r := range strings.ToUpper(s) {
		found := false
		for _, l := range privilegeLetters {
			if r == rune(l.letter) {
				p |= l.code
				found = true
				break
			}
		}
		if !found {
			return None, errs.NewValueIsInvalidErrorWithCause("privilege", fmt.Errorf("%q is not one of C, R, U, D", r))
		}
	}
	return p, nil
}
