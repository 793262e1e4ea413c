package library

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/kishan-gau/recruitiq-sub007/pkg/formula/engine"
	"github.com/kishan-gau/recruitiq-sub007/pkg/telemetry/logging"
	"github.com/kishan-gau/recruitiq-sub007/pkg/telemetry/metrics"
)

// Registry is a thread-safe in-memory store of valid formulas.
// Reloads swap the whole set at once.
type Registry struct {
	mu       sync.RWMutex
	formulas map[string]*Formula
	version  string
	loadTime time.Time

	metrics *metrics.Collector
}

// NewRegistry creates an empty registry. collector may be nil.
func NewRegistry(collector *metrics.Collector) *Registry {
	r := &Registry{
		formulas: make(map[string]*Formula),
		loadTime: time.Now(),
		metrics:  collector,
	}
	r.updateVersion()
	return r
}

// Replace atomically replaces the formula set. Every formula must be valid
// and uniquely named; on error the registry is left unchanged.
func (r *Registry) Replace(formulas []*Formula) error {
	if formulas == nil {
		return &RegistryError{Operation: "replace", Message: "formulas cannot be nil"}
	}

	next := make(map[string]*Formula, len(formulas))
	for _, f := range formulas {
		if f == nil {
			return &RegistryError{Operation: "replace", Message: "formula cannot be nil"}
		}
		if f.Name == "" {
			return &RegistryError{Operation: "replace", Message: "formula name cannot be empty"}
		}
		if !f.Valid() {
			return &RegistryError{Formula: f.Name, Operation: "replace", Message: "formula is invalid"}
		}
		if _, ok := next[f.Name]; ok {
			return &RegistryError{Formula: f.Name, Operation: "replace", Message: "duplicate formula name"}
		}
		next[f.Name] = f
	}

	r.mu.Lock()
	r.formulas = next
	r.loadTime = time.Now()
	r.updateVersion()
	count := len(r.formulas)
	r.mu.Unlock()

	r.metrics.SetLibraryFormulas(count)
	return nil
}

// Get retrieves a formula by name.
func (r *Registry) Get(name string) (*Formula, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.formulas[name]
	return f, ok
}

// Names returns a sorted list of all formula names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.formulas))
	for name := range r.formulas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns all formulas sorted by name.
func (r *Registry) All() []*Formula {
	names := r.Names()

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Formula, 0, len(names))
	for _, name := range names {
		if f, ok := r.formulas[name]; ok {
			out = append(out, f)
		}
	}
	return out
}

// Count returns the number of formulas in the registry.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.formulas)
}

// Version returns a short hash of the registered formula set. It changes
// whenever a formula is added, removed or edited.
func (r *Registry) Version() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.version
}

// LoadTime returns when the formula set was last replaced.
func (r *Registry) LoadTime() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.loadTime
}

// Execute runs a registered formula. The formula name is attached to the
// context for logging.
func (r *Registry) Execute(ctx context.Context, eng *engine.Engine, name string, vars map[string]float64) (*engine.Result, error) {
	f, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFormulaNotFound, name)
	}
	return eng.ExecuteContext(logging.WithFormula(ctx, name), f.Tree, vars)
}

// Calculate is Execute returning only the value.
func (r *Registry) Calculate(ctx context.Context, eng *engine.Engine, name string, vars map[string]float64) (float64, error) {
	res, err := r.Execute(ctx, eng, name, vars)
	if err != nil {
		return 0, err
	}
	return res.Value, nil
}

// updateVersion must be called with the write lock held.
func (r *Registry) updateVersion() {
	h := sha256.New()

	names := make([]string, 0, len(r.formulas))
	for name := range r.formulas {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		f := r.formulas[name]
		h.Write([]byte(f.Name))
		h.Write([]byte{0})
		h.Write([]byte(f.Expression))
		h.Write([]byte{0})
	}

	r.version = fmt.Sprintf("%x", h.Sum(nil))[:16]
}
