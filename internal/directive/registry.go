package directive

import (
	"sync"

	"storyscript/internal/source"
)

// Registry collects all directive scenarios found in the checked files.
// It is safe for concurrent use.
type Registry struct {
	mu        sync.Mutex
	scenarios []Scenario
}

// NewRegistry creates an empty directive registry.
func NewRegistry() *Registry {
	return &Registry{
		scenarios: make([]Scenario, 0),
	}
}

// Add registers a new directive scenario.
func (r *Registry) Add(scenario *Scenario) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.scenarios = append(r.scenarios, *scenario)
}

// All returns all registered scenarios.
func (r *Registry) All() []Scenario {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Scenario(nil), r.scenarios...)
}

// FilterByNamespace returns scenarios matching any of the given namespaces.
// If namespaces is empty, returns all scenarios.
func (r *Registry) FilterByNamespace(namespaces []string) []Scenario {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(namespaces) == 0 {
		return append([]Scenario(nil), r.scenarios...)
	}

	// Build set of allowed namespaces
	allowed := make(map[string]bool)
	for _, ns := range namespaces {
		allowed[ns] = true
	}

	var result []Scenario
	for _, s := range r.scenarios {
		if allowed[s.Namespace] {
			result = append(result, s)
		}
	}
	return result
}

// Len returns the total number of scenarios.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.scenarios)
}

// CollectFromFile extracts directive scenarios from the comments of sf and
// returns how many were found.
func (r *Registry) CollectFromFile(sf *source.File) int {
	if sf == nil {
		return 0
	}
	namespaceIndex := make(map[string]int)
	n := 0
	scanFile(sf, func(sc Scenario) {
		sc.Index = namespaceIndex[sc.Namespace]
		namespaceIndex[sc.Namespace]++
		r.Add(&sc)
		n++
	})
	return n
}
