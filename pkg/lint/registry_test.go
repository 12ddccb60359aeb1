package lint_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newton-physics/kernelint/pkg/lint"
	_ "github.com/newton-physics/kernelint/pkg/lint/rules" // register rules
)

func TestRegistry_AllSortedByID(t *testing.T) {
	rules := lint.All()
	require.NotEmpty(t, rules)

	ids := make([]string, 0, len(rules))
	for _, rule := range rules {
		ids = append(ids, rule.ID)
	}
	assert.True(t, sort.StringsAreSorted(ids), "All() must return ascending IDs: %v", ids)
}

func TestRegistry_BuiltinRules(t *testing.T) {
	for _, code := range []string{
		"KA0001", "KA0002", "KA0003", "KA0004", "KA0005",
		"KA0006", "KA0007", "KA0008", "KA0009", "KA0010",
	} {
		rule, ok := lint.Lookup(code)
		require.True(t, ok, "missing rule %s", code)
		assert.Equal(t, code, rule.ID)
		assert.NotEmpty(t, rule.Name)
		assert.NotEmpty(t, rule.Group)
		assert.NotEmpty(t, rule.Description)
		assert.NotNil(t, rule.Check)
	}
}

func TestRegistry_LookupUnknown(t *testing.T) {
	_, ok := lint.Lookup("KA9999")
	assert.False(t, ok)
}

func TestRegistry_ByGroup(t *testing.T) {
	signature := lint.ByGroup("signature")
	require.Len(t, signature, 3)
	assert.Equal(t, "KA0001", signature[0].ID)
	assert.Equal(t, "KA0002", signature[1].ID)
	assert.Equal(t, "KA0003", signature[2].ID)

	naming := lint.ByGroup("naming")
	require.Len(t, naming, 2)
	assert.Equal(t, "KA0006", naming[0].ID)
	assert.Equal(t, "KA0007", naming[1].ID)

	assert.Empty(t, lint.ByGroup("nonexistent"))
}

func TestRegister_DuplicateIDPanics(t *testing.T) {
	rule := lint.RuleDef{
		ID:          "ZZ9991",
		Name:        "testing.duplicate",
		Group:       "testing",
		Description: "Registered twice to prove the registry rejects it.",
		Severity:    lint.SeverityWarning,
		Check:       func(*lint.Context) []lint.Issue { return nil },
	}
	lint.Register(rule)

	assert.PanicsWithValue(t, "lint: duplicate rule ID ZZ9991", func() {
		lint.Register(rule)
	})
}
