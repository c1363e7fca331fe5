package ports

import (
	"context"

	"pancakehouse/internal/core/domain/model/kernel"
)

// OrderQueue is the producing end of a hand-off queue between two stages.
type OrderQueue interface {
	// Put appends id. It blocks only when the queue is bounded and full, and
	// fails once the queue was closed for shutdown.
	Put(ctx context.Context, id kernel.UUID) error
}
