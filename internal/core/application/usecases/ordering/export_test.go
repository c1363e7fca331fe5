package ordering

import "pancakehouse/internal/core/domain/model/kernel"

// SetIDGenerator replaces the id source so tests can force collisions.
func (s *Service) SetIDGenerator(newID func() kernel.UUID) {
	s.newID = newID
}
