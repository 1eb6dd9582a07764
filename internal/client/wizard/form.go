package wizard

import (
	"context"

	"github.com/dmitrijs2005/agsregistration/internal/client/drafts"
	"github.com/dmitrijs2005/agsregistration/internal/client/schemas"
)

// State is the lifecycle position of a step.
type State int

const (
	Idle State = iota
	Editing
	Committing
	Advancing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Editing:
		return "editing"
	case Committing:
		return "committing"
	case Advancing:
		return "advancing"
	}
	return "unknown"
}

// Form is the controller of one data-entry step whose draft has type T.
type Form[T any] struct {
	key      string
	store    drafts.Store
	validate func(T) (T, error)

	state  State
	value  T
	loaded bool
	errs   schemas.FieldErrors
}

func NewForm[T any](key string, store drafts.Store, validate func(T) (T, error)) *Form[T] {
	return &Form[T]{key: key, store: store, validate: validate}
}

func (f *Form[T]) Key() string  { return f.key }
func (f *Form[T]) State() State { return f.state }

// Loaded reports whether Mount found a stored draft.
func (f *Form[T]) Loaded() bool { return f.loaded }

// Value is the current edit state.
func (f *Form[T]) Value() T { return f.value }

// Errors holds the field errors of the last failed Submit.
func (f *Form[T]) Errors() schemas.FieldErrors { return f.errs }

// Mount loads the stored draft, if any, into the edit state. Mounting an
// already mounted form reloads it.
func (f *Form[T]) Mount(ctx context.Context) T {
	var zero T
	f.value = zero
	f.errs = nil
	f.loaded = f.store.Load(ctx, f.key, &f.value)
	f.state = Editing
	return f.value
}

// Submit validates in. On failure the form stays in Editing with the field
// errors and the error is returned. On success the normalized value is
// merged into the stored draft and the form moves to Advancing.
func (f *Form[T]) Submit(ctx context.Context, in T) (T, error) {
	if f.state == Idle {
		f.Mount(ctx)
	}

	f.value = in
	out, err := f.validate(in)
	if err != nil {
		f.errs, _ = schemas.AsFieldErrors(err)
		f.state = Editing
		var zero T
		return zero, err
	}

	f.errs = nil
	f.state = Committing
	drafts.SaveMerged(ctx, f.store, f.key, out)
	f.value = out
	f.loaded = true
	f.state = Advancing
	return out, nil
}

// Reset returns the form to Idle, dropping the in-memory edit state.
func (f *Form[T]) Reset() {
	var zero T
	f.value = zero
	f.errs = nil
	f.loaded = false
	f.state = Idle
}
