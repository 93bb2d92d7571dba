package replay

import "github.com/pkg/errors"

// Replay failures. All of them are precondition violations on the caller's
// side; none is retried.
var (
	// ErrAmbiguousHistory means a transform in a domain's history does not
	// have exactly one domain input.
	ErrAmbiguousHistory = errors.New("could not decipher transform history")

	// ErrCyclicHistory means the producer graph revisits a transform.
	ErrCyclicHistory = errors.New("transform history contains a cycle")

	// ErrUnknownTransform means a transform outside {split, merge, reorder}
	// reached a dispatcher.
	ErrUnknownTransform = errors.New("unknown transform")

	// ErrRootMismatch means reference and target do not share a root shape.
	ErrRootMismatch = errors.New("reference and target roots do not match")

	// ErrMissingRealAxis means a replay step needs an axis the target never
	// materialized.
	ErrMissingRealAxis = errors.New("replay requires an axis that was not materialized")

	// ErrReductionBeforeComputeAt means the replayed domain would consume a
	// reduction axis before the compute-at boundary.
	ErrReductionBeforeComputeAt = errors.New("generated a compute_at dependency where a reduction would be used before computed")

	// ErrInvalidComputeAt means the cutoff is negative or past the reference domain.
	ErrInvalidComputeAt = errors.New("invalid compute_at axis")

	// ErrAxisOutOfRange means a recorded transform addresses an axis the
	// influence vector or axis map does not have.
	ErrAxisOutOfRange = errors.New("transform axis out of range")

	// ErrFusionMismatch means reference and target live in different fusions.
	ErrFusionMismatch = errors.New("reference and target belong to different fusions")

	// ErrSelfReplay means reference and target are the same view.
	ErrSelfReplay = errors.New("cannot replay a tensor view onto itself")
)
