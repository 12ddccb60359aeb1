package parser_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newton-physics/kernelint/pkg/parser"
)

func parseKernels(t *testing.T, src string) []parser.Function {
	t.Helper()
	tree, err := parser.Parse(context.Background(), []byte(src))
	require.NoError(t, err)
	t.Cleanup(tree.Close)
	return tree.Kernels()
}

func TestTree_HasError(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr bool
	}{
		{
			name:    "clean source",
			src:     "def f(x: int):\n    pass\n",
			wantErr: false,
		},
		{
			name:    "empty source",
			src:     "",
			wantErr: false,
		},
		{
			name:    "broken signature",
			src:     "def f(:\n",
			wantErr: true,
		},
		{
			name:    "unterminated call",
			src:     "x = f(1,\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := parser.Parse(context.Background(), []byte(tt.src))
			require.NoError(t, err)
			t.Cleanup(tree.Close)
			assert.Equal(t, tt.wantErr, tree.HasError())
		})
	}
}

func TestKernels_DecoratorForms(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want int
	}{
		{
			name: "bare kernel decorator",
			src:  "@kernel\ndef f(x: int):\n    pass\n",
			want: 1,
		},
		{
			name: "attribute decorator is not a marker",
			src:  "@wp.kernel\ndef f(x: int):\n    pass\n",
			want: 0,
		},
		{
			name: "call decorator is not a marker",
			src:  "@kernel(enable_backward=False)\ndef f(x: int):\n    pass\n",
			want: 0,
		},
		{
			name: "other decorator name",
			src:  "@jit\ndef f(x: int):\n    pass\n",
			want: 0,
		},
		{
			name: "undecorated function",
			src:  "def f(x: int):\n    pass\n",
			want: 0,
		},
		{
			name: "async def is never a kernel",
			src:  "@kernel\nasync def f(x: int):\n    pass\n",
			want: 0,
		},
		{
			name: "kernel among several decorators",
			src:  "@functools.cache\n@kernel\ndef f(x: int):\n    pass\n",
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, parseKernels(t, tt.src), tt.want)
		})
	}
}

func TestKernels_Signature(t *testing.T) {
	src := `
@kernel
def integrate(
    qpos0: wp.array(dtype=wp.float32, ndim=1),
    qvel,
):
    pass
`
	kernels := parseKernels(t, src)
	require.Len(t, kernels, 1)

	fn := kernels[0]
	assert.Equal(t, "integrate", fn.Name)
	assert.Equal(t, 3, fn.Line)
	require.NotNil(t, fn.Body)
	require.Len(t, fn.Params, 2)

	assert.Equal(t, "qpos0", fn.Params[0].Name)
	assert.Equal(t, 0, fn.Params[0].Index)
	assert.Equal(t, 3, fn.Params[0].Row)
	assert.NotNil(t, fn.Params[0].Annotation)

	assert.Equal(t, "qvel", fn.Params[1].Name)
	assert.Equal(t, 1, fn.Params[1].Index)
	assert.Equal(t, 4, fn.Params[1].Row)
	assert.Nil(t, fn.Params[1].Annotation)

	assert.False(t, fn.HasDefaults)
	assert.False(t, fn.HasVarArg)
	assert.False(t, fn.HasKwArg)
}

func TestKernels_SignatureFlags(t *testing.T) {
	tests := []struct {
		name        string
		src         string
		wantParams  []string
		hasDefaults bool
		hasVarArg   bool
		hasKwArg    bool
	}{
		{
			name:        "defaults varargs kwargs",
			src:         "@kernel\ndef f(a: int, b: int = 1, *args, c: int, **kwargs):\n    pass\n",
			wantParams:  []string{"a", "b", "c"},
			hasDefaults: true,
			hasVarArg:   true,
			hasKwArg:    true,
		},
		{
			name:       "keyword separator is not a param",
			src:        "@kernel\ndef f(a: int, *, b: int):\n    pass\n",
			wantParams: []string{"a", "b"},
		},
		{
			name:       "positional separator is not a param",
			src:        "@kernel\ndef f(a: int, /, b: int):\n    pass\n",
			wantParams: []string{"a", "b"},
		},
		{
			name:        "untyped default",
			src:         "@kernel\ndef f(a, b=2):\n    pass\n",
			wantParams:  []string{"a", "b"},
			hasDefaults: true,
		},
		{
			name:       "annotated varargs",
			src:        "@kernel\ndef f(a: int, *args: int):\n    pass\n",
			wantParams: []string{"a"},
			hasVarArg:  true,
		},
		{
			name:       "no params",
			src:        "@kernel\ndef f():\n    pass\n",
			wantParams: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kernels := parseKernels(t, tt.src)
			require.Len(t, kernels, 1)
			fn := kernels[0]

			var names []string
			for _, p := range fn.Params {
				names = append(names, p.Name)
			}
			assert.Equal(t, tt.wantParams, names)
			assert.Equal(t, tt.hasDefaults, fn.HasDefaults, "HasDefaults")
			assert.Equal(t, tt.hasVarArg, fn.HasVarArg, "HasVarArg")
			assert.Equal(t, tt.hasKwArg, fn.HasKwArg, "HasKwArg")
		})
	}
}

func TestKernels_NestedDefinitions(t *testing.T) {
	src := `
class Solver:
    @kernel
    def step(qpos: int):
        pass

def make():
    @kernel
    def inner(qvel: int):
        pass
    return inner
`
	kernels := parseKernels(t, src)
	require.Len(t, kernels, 2)
	assert.Equal(t, "step", kernels[0].Name)
	assert.Equal(t, "inner", kernels[1].Name)
}

func TestKernels_MultipleInWalkOrder(t *testing.T) {
	src := `
@kernel
def first(qpos: int):
    pass

def plain():
    pass

@kernel
def second(qvel: int):
    pass
`
	kernels := parseKernels(t, src)
	require.Len(t, kernels, 2)
	assert.Equal(t, "first", kernels[0].Name)
	assert.Equal(t, "second", kernels[1].Name)
}
