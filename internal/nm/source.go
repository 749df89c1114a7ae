// Package nm talks to NetworkManager, the owner of tunnel configurations and
// their activation state.
package nm

import (
	"context"
	"errors"
	"fmt"
)

// ErrQueryActive marks a failure to find out which connections are active.
// Nothing meaningful can be reported without that answer.
var ErrQueryActive = errors.New("failed to query active connections")

// Source lists tunnel configurations and reads or changes their activation state
type Source interface {
	ListTunnels(ctx context.Context) ([]string, error)
	ListActive(ctx context.Context) ([]string, error)
	SetActive(ctx context.Context, name string, up bool) error
}

// IsActive reports whether the named connection is among the active ones
func IsActive(ctx context.Context, src Source, name string) (bool, error) {
	active, err := src.ListActive(ctx)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrQueryActive, err)
	}
	for _, a := range active {
		if a == name {
			return true, nil
		}
	}
	return false, nil
}
