// Package cache keeps built plans keyed by exact run-time type.
//
// Entries are written once per type and never evicted. Lookups take a read lock;
// a miss takes the write lock and checks again before building, so concurrent
// first use of a type builds its plan exactly once.
package cache

import (
	"log/slog"
	"reflect"
	"sync"

	"tsvwriter/plan"
)

// Plans is a read-through plan cache.
type Plans struct {
	mu     sync.RWMutex
	plans  map[reflect.Type]*plan.Node
	source plan.Source
	logger *slog.Logger
	builds int
}

// New creates an empty cache building plans from source (plan.TagSource when nil).
func New(source plan.Source, logger *slog.Logger) *Plans {
	if source == nil {
		source = plan.TagSource
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Plans{
		plans:  make(map[reflect.Type]*plan.Node),
		source: source,
		logger: logger,
	}
}

// Get returns the plan for t, building and storing it on first use.
// Build failures are returned and not cached.
func (p *Plans) Get(t reflect.Type) (*plan.Node, error) {
	p.mu.RLock()
	root, ok := p.plans[t]
	p.mu.RUnlock()

	if ok {
		return root, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if root, ok := p.plans[t]; ok {
		return root, nil
	}

	b := plan.NewBuilder(p.source)
	root, err := b.Build(plan.Reflect(t))
	p.builds++

	diags := b.Diagnostics()
	for _, w := range diags.Warnings {
		p.logger.Warn("plan warning", "type", t.String(), "diagnostic", w.String())
	}

	if err != nil {
		return nil, err
	}

	p.plans[t] = root
	p.logger.Debug("plan built", "type", t.String(), "columns", root.Width())

	return root, nil
}

// Len returns the number of cached plans.
func (p *Plans) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return len(p.plans)
}

// Builds returns how many times a plan was built, failed builds included.
func (p *Plans) Builds() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.builds
}
