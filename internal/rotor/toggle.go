package rotor

import (
	"context"
	"io"
	"log"

	"github.com/hegde-atri/wg-burrow/internal/nm"
	"github.com/hegde-atri/wg-burrow/internal/types"
)

// Toggler flips the activation state of a tunnel
type Toggler struct {
	src nm.Source
	log *log.Logger
}

// NewToggler creates a toggler. A nil logger discards output.
func NewToggler(src nm.Source, logger *log.Logger) *Toggler {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Toggler{src: src, log: logger}
}

// State reports whether name is currently active
func (t *Toggler) State(ctx context.Context, name string) (types.State, error) {
	active, err := nm.IsActive(ctx, t.src, name)
	if err != nil {
		return types.Inactive, err
	}
	return types.StateOf(active), nil
}

// Toggle asks NetworkManager to bring name down if it is active and up otherwise,
// and returns the state it asked for. The request's outcome is not checked, so
// the returned state can disagree with reality until the next query.
func (t *Toggler) Toggle(ctx context.Context, name string) (types.State, error) {
	current, err := t.State(ctx, name)
	if err != nil {
		return types.Inactive, err
	}

	target := current.Flip()
	if err := t.src.SetActive(ctx, name, target == types.Active); err != nil {
		t.log.Printf("toggle %s: %v", name, err)
	}
	return target, nil
}
