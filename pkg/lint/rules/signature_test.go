package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newton-physics/kernelint/pkg/lint"
	_ "github.com/newton-physics/kernelint/pkg/lint/rules" // register rules
	"github.com/newton-physics/kernelint/pkg/schema"
)

// Helper to run analysis and filter by rule ID
func runRule(t *testing.T, src string, ruleID string) []lint.Issue {
	t.Helper()

	analyzer := lint.New(schema.Default(), lint.NewConfig(), nil)

	var filtered []lint.Issue
	for _, issue := range analyzer.Analyze([]byte(src), "test.py") {
		if issue.Code() == ruleID {
			filtered = append(filtered, issue)
		}
	}
	return filtered
}

func TestKA0001_DefaultParams(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantDiag bool
	}{
		{
			name: "typed default",
			src: `@kernel
def fwd(scratch: int = 3):
    pass
`,
			wantDiag: true,
		},
		{
			name: "untyped default",
			src: `@kernel
def fwd(scratch=3):
    pass
`,
			wantDiag: true,
		},
		{
			name: "no defaults",
			src: `@kernel
def fwd(scratch: int):
    pass
`,
			wantDiag: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := runRule(t, tt.src, "KA0001")
			if tt.wantDiag {
				assert.NotEmpty(t, issues, "expected KA0001 issue")
			} else {
				assert.Empty(t, issues, "unexpected KA0001 issue")
			}
		})
	}
}

func TestKA0001_OneIssuePerKernel(t *testing.T) {
	src := `@kernel
def fwd(a: int = 1, b: int = 2):
    pass
`
	issues := runRule(t, src, "KA0001")
	require.Len(t, issues, 1)
	assert.Equal(t, "2: Kernel 'fwd' has default params", issues[0].String())
}

func TestKA0002_VarArgs(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantDiag bool
	}{
		{
			name: "star args",
			src: `@kernel
def fwd(*args):
    pass
`,
			wantDiag: true,
		},
		{
			name: "annotated star args",
			src: `@kernel
def fwd(a: int, *args: int):
    pass
`,
			wantDiag: true,
		},
		{
			name: "keyword-only marker is not varargs",
			src: `@kernel
def fwd(a: int, *, b: int):
    pass
`,
			wantDiag: false,
		},
		{
			name: "plain params",
			src: `@kernel
def fwd(a: int, b: int):
    pass
`,
			wantDiag: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := runRule(t, tt.src, "KA0002")
			if tt.wantDiag {
				assert.NotEmpty(t, issues, "expected KA0002 issue")
			} else {
				assert.Empty(t, issues, "unexpected KA0002 issue")
			}
		})
	}
}

func TestKA0003_KwArgs(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantDiag bool
	}{
		{
			name: "double star kwargs",
			src: `@kernel
def fwd(**kwargs):
    pass
`,
			wantDiag: true,
		},
		{
			name: "plain params",
			src: `@kernel
def fwd(a: int):
    pass
`,
			wantDiag: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := runRule(t, tt.src, "KA0003")
			if tt.wantDiag {
				assert.NotEmpty(t, issues, "expected KA0003 issue")
			} else {
				assert.Empty(t, issues, "unexpected KA0003 issue")
			}
		})
	}
}
