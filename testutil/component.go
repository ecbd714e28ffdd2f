package testutil

import (
	"context"

	"github.com/kbukum/restmapper/component"
)

// TestComponent extends component.Component with testing-specific lifecycle
// methods, so the same value can sit in a component.Registry and serve as a
// test helper.
type TestComponent interface {
	component.Component

	// Reset restores the component to its initial state.
	Reset(ctx context.Context) error

	// Snapshot captures the current state of the component.
	Snapshot(ctx context.Context) (any, error)

	// Restore returns the component to a state captured by Snapshot.
	Restore(ctx context.Context, snapshot any) error
}
