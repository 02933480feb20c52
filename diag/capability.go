// Package diag reports on the optional database collaborator used for
// operational visibility. The collaborator is owned elsewhere; this
// package only resolves it and asks for its collection names.
package diag

import "context"

// Handle is a live database handle supplied by the collaborator.
type Handle interface {
	// Name returns a human-readable database name, or "" if unknown.
	Name() string
	// ListCollectionNames returns collection or table names in the
	// collaborator's own order. It must return promptly once ctx is
	// done; the Prober's timeout is only enforced through ctx, so a
	// handle that ignores it blocks the diagnostics request.
	ListCollectionNames(ctx context.Context) ([]string, error)
}

// State tags which variant a Capability holds.
type State int

const (
	StateAbsent State = iota
	StateUninitialized
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateAbsent:
		return "absent"
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Capability is the collaborator as seen at construction time.
// The zero value is Absent.
type Capability struct {
	state  State
	handle Handle
	err    error
}

// Absent means no collaborator is installed.
func Absent() Capability { return Capability{state: StateAbsent} }

// Uninitialized means the collaborator exists but has no usable handle.
func Uninitialized() Capability { return Capability{state: StateUninitialized} }

// Ready wraps a usable handle. A nil handle is treated as Uninitialized.
func Ready(h Handle) Capability {
	if h == nil {
		return Uninitialized()
	}
	return Capability{state: StateReady, handle: h}
}

// Failed records an error hit while setting up the collaborator.
func Failed(err error) Capability { return Capability{state: StateFailed, err: err} }

// State reports the variant.
func (c Capability) State() State { return c.state }

// Resolve returns the handle, or the error describing why there is none.
func (c Capability) Resolve() (Handle, error) {
	switch c.state {
	case StateReady:
		return c.handle, nil
	case StateUninitialized:
		return nil, ErrNotInitialized
	case StateFailed:
		return nil, c.err
	default:
		return nil, ErrModuleNotFound
	}
}
