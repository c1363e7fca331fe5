package orderrepo_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"pancakehouse/internal/adapters/out/memory/orderrepo"
	"pancakehouse/internal/core/domain/model/kernel"
	"pancakehouse/internal/core/domain/model/order"
	"pancakehouse/internal/core/ports"
	"pancakehouse/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.StatusStore = (*orderrepo.StatusStore)(nil)

func TestStatusStore(t *testing.T) {
	t.Run("should return not found for unknown id", func(t *testing.T) {
		s := orderrepo.NewStatusStore()

		st, err := s.Get(kernel.NewUUID())

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		assert.Equal(t, order.Unknown, st)
	})

	t.Run("should follow allowed transitions", func(t *testing.T) {
		s := orderrepo.NewStatusStore()
		id := kernel.NewUUID()
		s.Set(id, order.Pending)

		require.NoError(t, s.Transition(id, order.Completed))
		require.NoError(t, s.Transition(id, order.InProgress))

		st, err := s.Get(id)
		require.NoError(t, err)
		assert.Equal(t, order.InProgress, st)
	})

	t.Run("should refuse forbidden transitions and keep the status", func(t *testing.T) {
		s := orderrepo.NewStatusStore()
		id := kernel.NewUUID()
		s.Set(id, order.Completed)

		err := s.Transition(id, order.Cancelled)

		require.ErrorIs(t, err, errs.ErrIllegalState)
		st, _ := s.Get(id)
		assert.Equal(t, order.Completed, st)
	})

	t.Run("should refuse transitions of unknown ids", func(t *testing.T) {
		s := orderrepo.NewStatusStore()

		require.ErrorIs(t, s.Transition(kernel.NewUUID(), order.Completed), errs.ErrObjectNotFound)
	})

	t.Run("should compare before setting", func(t *testing.T) {
		s := orderrepo.NewStatusStore()
		id := kernel.NewUUID()
		s.Set(id, order.InProgress)

		err := s.CompareAndSet(id, order.ReadyForDelivery, order.OutForDelivery)

		require.ErrorIs(t, err, errs.ErrIllegalState)
		assert.Contains(t, err.Error(), "is InProgress, expected ReadyForDelivery")

		require.NoError(t, s.Transition(id, order.ReadyForDelivery))
		require.NoError(t, s.CompareAndSet(id, order.ReadyForDelivery, order.OutForDelivery))
		st, _ := s.Get(id)
		assert.Equal(t, order.OutForDelivery, st)
	})

	t.Run("should let exactly one of concurrent CAS calls win", func(t *testing.T) {
		s := orderrepo.NewStatusStore()
		id := kernel.NewUUID()
		s.Set(id, order.ReadyForDelivery)

		var wins atomic.Int32
		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if s.CompareAndSet(id, order.ReadyForDelivery, order.OutForDelivery) == nil {
					wins.Add(1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), wins.Load())
	})

	t.Run("should delete and snapshot", func(t *testing.T) {
		s := orderrepo.NewStatusStore()
		kept, dropped := kernel.NewUUID(), kernel.NewUUID()
		s.Set(kept, order.Pending)
		s.Set(dropped, order.Pending)

		s.Delete(dropped)
		snapshot := s.Snapshot()
		s.Set(kept, order.Error)

		assert.Equal(t, map[kernel.UUID]order.Status{kept: order.Pending}, snapshot)
	})
}
