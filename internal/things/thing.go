// Package things holds the Thing payload, its strict body decoder and the
// hook run for things flagged as important.
package things

import "context"

// Thing is the payload accepted by POST /things.
type Thing struct {
	ImportantField bool `json:"important_field"`
}

// Action runs for every Thing whose ImportantField is true.
type Action func(ctx context.Context, t Thing) error

// NopAction accepts every Thing and does nothing.
func NopAction(context.Context, Thing) error { return nil }

// Service implements the HTTP layer's view of the things domain.
type Service struct {
	onImportant Action
}

// NewService returns a Service that calls onImportant for important things.
// A nil action falls back to NopAction.
func NewService(onImportant Action) *Service {
	if onImportant == nil {
		onImportant = NopAction
	}
	return &Service{onImportant: onImportant}
}

// CreateThing accepts a decoded Thing. Nothing is retained afterwards.
func (s *Service) CreateThing(ctx context.Context, t Thing) error {
	if t.ImportantField {
		return s.onImportant(ctx, t)
	}
	return nil
}

// Ready reports whether the service can accept requests. There is nothing
// to warm up, so it always can.
func (s *Service) Ready() bool { return true }
