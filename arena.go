package genid

import (
	"fmt"
	"log/slog"
	"slices"
	"time"
)

// ArenaOption configures an Arena.
type ArenaOption[E DynamicEntity] func(*Arena[E])

// Arena owns the allocator of one dynamic entity kind and forwards every kill batch
// to the collections attached to it.
type Arena[E DynamicEntity] struct {
	alloc     *Allocator[E]
	deps      []attached[E]
	resources *Registry
	logger    *slog.Logger
	observer  Observer
}

type attached[E Entity] struct {
	name string
	dep  Dependent[E]
}

type checksummed[E Entity] interface {
	Checksum() AllocGen[E]
}

// NewArena constructs an arena with a fresh allocator and registry.
func NewArena[E DynamicEntity](opts ...ArenaOption[E]) *Arena[E] {
	a := &Arena[E]{
		alloc:     NewAllocator[E](),
		resources: NewRegistry(),
		logger:    slog.New(slog.DiscardHandler),
		observer:  noopObserver{},
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.With("entity", EntityName[E]())
	return a
}

// WithAllocator overrides the default allocator.
func WithAllocator[E DynamicEntity](alloc *Allocator[E]) ArenaOption[E] {
	return func(a *Arena[E]) {
		if alloc != nil {
			a.alloc = alloc
		}
	}
}

// WithRegistry publishes attached collections into a shared registry.
func WithRegistry[E DynamicEntity](registry *Registry) ArenaOption[E] {
	return func(a *Arena[E]) {
		if registry != nil {
			a.resources = registry
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger[E DynamicEntity](logger *slog.Logger) ArenaOption[E] {
	return func(a *Arena[E]) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithObserver receives a summary of every kill batch.
func WithObserver[E DynamicEntity](observer Observer) ArenaOption[E] {
	return func(a *Arena[E]) {
		if observer != nil {
			a.observer = observer
		}
	}
}

// Allocator exposes the backing allocator.
func (a *Arena[E]) Allocator() *Allocator[E] {
	return a.alloc
}

// Resources exposes the registry attached collections are published in.
func (a *Arena[E]) Resources() *Registry {
	return a.resources
}

// Create issues a handle.
func (a *Arena[E]) Create() Valid[E] {
	return a.alloc.Create()
}

// Attach subscribes dep to kill batches and registers it under name. A dependent that
// reports a checksum must already be synchronized with the allocator.
func (a *Arena[E]) Attach(name string, dep Dependent[E]) error {
	if isNil(dep) {
		return ErrNilResource
	}
	if c, ok := dep.(checksummed[E]); ok {
		if have, want := c.Checksum(), a.alloc.Checksum(); have != want {
			a.logger.Error("attach rejected", "dependent", name, "have", have.Value(), "want", want.Value())
			return fmt.Errorf("%w: %q has %v, allocator has %v", ErrOutOfSync, name, have, want)
		}
	}
	if err := a.resources.Register(name, dep); err != nil {
		return err
	}
	a.deps = append(a.deps, attached[E]{name: name, dep: dep})
	a.logger.Info("dependent attached", "dependent", name, "dependents", len(a.deps))
	return nil
}

// Detach stops forwarding kills to name and removes it from the registry.
func (a *Arena[E]) Detach(name string) bool {
	i := slices.IndexFunc(a.deps, func(d attached[E]) bool { return d.name == name })
	if i < 0 {
		return false
	}
	a.deps = slices.Delete(a.deps, i, i+1)
	a.resources.Delete(name)
	a.logger.Info("dependent detached", "dependent", name, "dependents", len(a.deps))
	return true
}

// Dependents returns the attached names in notification order.
func (a *Arena[E]) Dependents() []string {
	names := make([]string, len(a.deps))
	for i, d := range a.deps {
		names[i] = d.name
	}
	return names
}

// Kill kills ids as one batch and forwards the batch to every dependent.
func (a *Arena[E]) Kill(ids ...ID[E]) *Killed[E] {
	start := time.Now()
	killed := a.alloc.KillMany(ids)
	if killed.Len() > 0 {
		for _, d := range a.deps {
			d.dep.KillMany(killed)
		}
	}
	summary := KillSummary{
		Entity:     EntityName[E](),
		Requested:  len(ids),
		Killed:     killed.Len(),
		Before:     killed.Before().Value(),
		After:      killed.After().Value(),
		Dependents: len(a.deps),
		Duration:   time.Since(start),
	}
	a.observer.KillCommitted(summary)
	a.logger.Debug("kill batch", "requested", summary.Requested, "killed", summary.Killed, "after", summary.After)
	return killed
}
