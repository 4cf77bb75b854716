package fit

import "sync"

// globalRegistry holds the built-in rules in evaluation order.
var globalRegistry = &Registry{}

// Registry stores rules in registration order. Order matters: change
// requests are reported in the order their rules run.
type Registry struct {
	mu    sync.RWMutex
	rules []RuleDef
}

// Register adds a rule to the global registry, replacing any rule with the
// same ID in place.
func Register(rule RuleDef) {
	globalRegistry.add(rule)
}

func (r *Registry) add(rule RuleDef) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.rules {
		if existing.ID == rule.ID {
			r.rules[i] = rule
			return
		}
	}
	r.rules = append(r.rules, rule)
}

func (r *Registry) all() []RuleDef {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]RuleDef, len(r.rules))
	copy(out, r.rules)
	return out
}

// GetAll returns all registered rules in evaluation order.
func GetAll() []RuleDef {
	return globalRegistry.all()
}

// GetByID returns a rule by its ID.
func GetByID(id string) (RuleDef, bool) {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	for _, rule := range globalRegistry.rules {
		if rule.ID == id {
			return rule, true
		}
	}
	return RuleDef{}, false
}

// Count returns the number of registered rules.
func Count() int {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	return len(globalRegistry.rules)
}
