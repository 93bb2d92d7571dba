package ir

import (
	"fmt"

	"github.com/pkg/errors"
)

// TensorView is a handle to a tensor being scheduled. It owns exactly one
// domain at a time; SetDomain rebinds it.
type TensorView struct {
	name   string
	fusion *Fusion
	domain DomainID
}

// Name returns the tensor name.
func (tv *TensorView) Name() string {
	return tv.name
}

// Fusion returns the arena the view belongs to.
func (tv *TensorView) Fusion() *Fusion {
	return tv.fusion
}

// DomainID returns the handle of the current domain.
func (tv *TensorView) DomainID() DomainID {
	return tv.domain
}

// Domain returns the current domain.
func (tv *TensorView) Domain() *Domain {
	return tv.fusion.Domain(tv.domain)
}

// SetDomain replaces the view's domain. The old domain stays in the arena
// and remains reachable through the producer map.
func (tv *TensorView) SetDomain(d DomainID) error {
	if tv.fusion.Domain(d) == nil {
		return errors.Wrapf(ErrUnknownDomain, "tensor %q domain %d", tv.name, d)
	}
	tv.domain = d
	return nil
}

// String renders the view as name[axes].
func (tv *TensorView) String() string {
	return fmt.Sprintf("%s%s", tv.name, tv.Domain())
}
