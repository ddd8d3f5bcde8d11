package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventNodeReplaced EventType = "node_replaced"
	EventNodeSkipped  EventType = "node_skipped"
	EventSaveStep     EventType = "save_step"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// ReplaceEvent is emitted after a node was swapped for a trigger volume.
type ReplaceEvent struct {
	EventBase
	Path     string `json:"path"`
	Name     string `json:"name"`
	FromKind Kind   `json:"from_kind"`
	ToKind   Kind   `json:"to_kind"`
	Index    int    `json:"index"`
	Children int    `json:"children"`
}

// WarningEvent is emitted for a node left untouched with a warning.
type WarningEvent struct {
	EventBase
	Warning Warning `json:"warning"`
}

// SaveEvent is emitted once per persistence step.
type SaveEvent struct {
	EventBase
	Step Step   `json:"step"`
	Path string `json:"path"`
	Err  error  `json:"-"`
}

// LifecycleHooks defines callbacks for importer observability.
type LifecycleHooks struct {
	OnNodeReplaced func(context.Context, *ReplaceEvent)
	OnNodeSkipped  func(context.Context, *WarningEvent)
	OnSaveStep     func(context.Context, *SaveEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnNodeReplaced: chain(h.OnNodeReplaced, other.OnNodeReplaced),
		OnNodeSkipped:  chain(h.OnNodeSkipped, other.OnNodeSkipped),
		OnSaveStep:     chain(h.OnSaveStep, other.OnSaveStep),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
