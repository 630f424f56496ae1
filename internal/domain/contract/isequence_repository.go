package contract

import "context"

// ISequenceRepository allocates monotonically increasing numbers per key.
type ISequenceRepository interface {
	// NextSequence atomically increments the counter and returns the new value.
	NextSequence(ctx context.Context, key string) (int64, error)
	// CurrentSequence returns the last allocated value without allocating.
	CurrentSequence(ctx context.Context, key string) (int64, error)
}
