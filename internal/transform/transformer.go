// Package transform replaces tagged collision volumes in a scene graph with
// trigger volumes.
package transform

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/sceneswap/pkg/domain"
	"github.com/aretw0/sceneswap/pkg/ports"
)

// Transformer walks a scene graph and swaps eligible nodes in place.
type Transformer struct {
	classifier  ports.Classifier
	triggerKind domain.Kind
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
}

// Option defines a functional option for configuring the Transformer.
type Option func(*Transformer)

// WithTriggerKind sets the kind given to replacement nodes (default Area3D).
func WithTriggerKind(kind domain.Kind) Option {
	return func(t *Transformer) {
		if kind != "" {
			t.triggerKind = kind
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(t *Transformer) {
		t.hooks = hooks
	}
}

// WithLogger sets the structured logger used for debug traces.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Transformer) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// New creates a Transformer that asks classifier about node kinds.
func New(classifier ports.Classifier, opts ...Option) *Transformer {
	t := &Transformer{
		classifier:  classifier,
		triggerKind: domain.KindArea3D,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Transform replaces, below root, every node whose name ends with tag and
// whose kind is a collision volume. The replacement keeps the name, the local
// transform, the child slot and the children of the node it replaces.
// Nodes that match the tag but are not collision volumes are reported as
// warnings, in traversal order, and left untouched. The root itself is never
// examined. ctx only reaches the hooks; traversal is not cancellable.
func (t *Transformer) Transform(ctx context.Context, root *domain.Node, tag string) (*domain.TransformResult, error) {
	if root == nil {
		return nil, domain.ErrNilRoot
	}
	if t.classifier == nil {
		return nil, fmt.Errorf("transformer has no classifier")
	}
	res := &domain.TransformResult{Root: root}
	if err := t.visit(ctx, root, tag, res); err != nil {
		return res, err
	}
	return res, nil
}

// visit handles the children of parent. The child list is captured before
// any of them is replaced, so a splice never changes which siblings are
// visited and a replacement is never examined again.
func (t *Transformer) visit(ctx context.Context, parent *domain.Node, tag string, res *domain.TransformResult) error {
	for i, child := range parent.Children() {
		current := child
		if strings.HasSuffix(child.Name, tag) {
			if t.classifier.Classify(child) == domain.CapabilityCollisionVolume {
				repl, err := t.replace(parent, i, child)
				if err != nil {
					return err
				}
				current = repl
				res.Replaced++
				t.logger.Debug("Replaced node", "path", repl.Path(), "from", child.Kind, "to", repl.Kind)
				if t.hooks.OnNodeReplaced != nil {
					t.hooks.OnNodeReplaced(ctx, &domain.ReplaceEvent{
						EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventNodeReplaced},
						Path:      repl.Path(),
						Name:      repl.Name,
						FromKind:  child.Kind,
						ToKind:    repl.Kind,
						Index:     i,
						Children:  repl.NumChildren(),
					})
				}
			} else {
				w := domain.Warning{
					Code: domain.WarningUnsupportedNodeKind,
					Path: child.Path(),
					Name: child.Name,
					Kind: child.Kind,
					Tag:  tag,
				}
				res.Warnings = append(res.Warnings, w)
				t.logger.Debug("Skipped node", "path", w.Path, "kind", w.Kind)
				if t.hooks.OnNodeSkipped != nil {
					t.hooks.OnNodeSkipped(ctx, &domain.WarningEvent{
						EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventNodeSkipped},
						Warning:   w,
					})
				}
			}
		}
		if err := t.visit(ctx, current, tag, res); err != nil {
			return err
		}
	}
	return nil
}

// replace builds the trigger node for old, moves old's children onto it and
// splices it into old's slot. old is released by the splice.
func (t *Transformer) replace(parent *domain.Node, index int, old *domain.Node) (*domain.Node, error) {
	repl := domain.NewNode(old.Name, t.triggerKind)
	repl.Transform = old.Transform
	old.MoveChildrenTo(repl)
	if _, err := parent.ReplaceChildAt(index, repl); err != nil {
		// put the subtree back so the tree is left as it was
		repl.MoveChildrenTo(old)
		return nil, fmt.Errorf("failed to replace %s: %w", old.Path(), err)
	}
	return repl, nil
}
