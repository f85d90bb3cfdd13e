package series

import (
	"fmt"
	"sort"
	"sync"
)

// Factory resolves series by name. It allows the service and server layers
// to be tested against custom registries.
type Factory interface {
	// Get returns the series registered under name.
	Get(name string) (Series, error)

	// List returns the sorted names of all registered series.
	List() []string

	// Register adds or replaces a series under its own name.
	Register(s Series) error

	// GetAll returns a map of all registered series.
	GetAll() map[string]Series
}

// DefaultFactory is a thread-safe registry of series.
type DefaultFactory struct {
	mu     sync.RWMutex
	series map[string]Series
}

// NewDefaultFactory creates a DefaultFactory with the built-in series
// pre-registered:
//   - "exp", "sin", "cos": Taylor series of e^x, sin x and cos x
//   - "geometric", "log1p", "binomial": power series on the unit disk
//   - "zeta2": the Basel series
//   - "fibonacci": the reciprocal Fibonacci constant
func NewDefaultFactory() *DefaultFactory {
	f := NewEmptyFactory()
	for _, s := range []Series{Exp{}, Geometric{}, Log1p{}, Sin{}, Cos{}, Binomial{}, Zeta2{}, ReciprocalFib{}} {
		_ = f.Register(s)
	}
	return f
}

// NewEmptyFactory creates a DefaultFactory with nothing registered.
func NewEmptyFactory() *DefaultFactory {
	return &DefaultFactory{series: make(map[string]Series)}
}

// Register adds s under s.Name(), replacing any previous series with the
// same name.
func (f *DefaultFactory) Register(s Series) error {
	if s == nil || s.Name() == "" {
		return fmt.Errorf("series must have a name")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.series[s.Name()] = s
	return nil
}

// Get returns the series registered under name.
func (f *DefaultFactory) Get(name string) (Series, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	s, ok := f.series[name]
	if !ok {
		return nil, fmt.Errorf("unknown series: %s", name)
	}
	return s, nil
}

// List returns a sorted list of all registered series names.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	names := make([]string, 0, len(f.series))
	for name := range f.series {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAll returns a copy of the registry.
func (f *DefaultFactory) GetAll() map[string]Series {
	f.mu.RLock()
	defer f.mu.RUnlock()

	result := make(map[string]Series, len(f.series))
	for name, s := range f.series {
		result[name] = s
	}
	return result
}

// MustGet is like Get but panics if the series is not registered.
func (f *DefaultFactory) MustGet(name string) Series {
	s, err := f.Get(name)
	if err != nil {
		panic(fmt.Sprintf("series: required series not found: %s", name))
	}
	return s
}

// Has reports whether a series with the given name is registered.
func (f *DefaultFactory) Has(name string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, exists := f.series[name]
	return exists
}

var globalFactory = NewDefaultFactory()

// GlobalFactory returns the process-wide registry.
func GlobalFactory() *DefaultFactory {
	return globalFactory
}

// Register adds a series to the global registry.
func Register(s Series) error {
	return globalFactory.Register(s)
}
