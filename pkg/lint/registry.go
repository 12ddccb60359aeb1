package lint

import (
	"sort"
	"sync"
)

// The rule registry. Rule files add themselves from init(), so the write
// path only runs during package initialization; the lock exists for tests
// that register synthetic rules.
var (
	registryMu sync.RWMutex
	registry   = map[string]RuleDef{}
)

// Register adds a rule under its ID. Two rules claiming one code is a
// programming error and panics.
func Register(rule RuleDef) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, taken := registry[rule.ID]; taken {
		panic("lint: duplicate rule ID " + rule.ID)
	}
	registry[rule.ID] = rule
}

// All returns every registered rule in ascending ID order, the same order
// the analyzer runs them in.
func All() []RuleDef {
	registryMu.RLock()
	rules := make([]RuleDef, 0, len(registry))
	for _, rule := range registry {
		rules = append(rules, rule)
	}
	registryMu.RUnlock()

	sort.Slice(rules, func(i, j int) bool { return rules[i].ID < rules[j].ID })
	return rules
}

// Lookup finds a rule by ID.
func Lookup(id string) (RuleDef, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	rule, ok := registry[id]
	return rule, ok
}

// ByGroup returns the rules of one group, in ascending ID order.
func ByGroup(group string) []RuleDef {
	var rules []RuleDef
	for _, rule := range All() {
		if rule.Group == group {
			rules = append(rules, rule)
		}
	}
	return rules
}

// Count reports how many rules are registered.
func Count() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}
