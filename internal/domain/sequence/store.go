package sequence

import "context"

// Store hands out gap-free numbers per partition.
//
// Reserve returns the next number (1-based) for key. It runs inside the
// transaction carried by ctx when there is one, so a rollback of the
// caller's unit of work also returns the number. Concurrent calls for the
// same key serialize on the counter row; calls for different keys do not
// wait on each other.
type Store interface {
	Reserve(ctx context.Context, key PartitionKey) (int64, error)
	// Current returns the last issued number, 0 when none was issued.
	Current(ctx context.Context, key PartitionKey) (int64, error)
}
