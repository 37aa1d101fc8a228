package registry

import "context"

// Registry hands out exclusive claims on file names. Several server
// instances writing into one shared volume can point at the same
// external registry so that no two of them pick the same name.
type Registry interface {
	// Reserve claims name. It reports true when the caller now owns the
	// name and false when the name had already been claimed.
	Reserve(ctx context.Context, name string) (bool, error)
	Close() error
}
