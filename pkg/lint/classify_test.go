package lint_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newton-physics/kernelint/pkg/lint"
	"github.com/newton-physics/kernelint/pkg/parser"
	"github.com/newton-physics/kernelint/pkg/schema"
)

func TestClassify(t *testing.T) {
	src := `@kernel
def fwd(
    qpos0: int,
    qpos: int,
    qvel_in: int,
    act_out: int,
    qpos0_in: int,
    qvel_invalid: int,
    scratch: int,
):
    pass
`
	tree, err := parser.Parse(context.Background(), []byte(src))
	require.NoError(t, err)
	t.Cleanup(tree.Close)

	kernels := tree.Kernels()
	require.Len(t, kernels, 1)

	params := lint.Classify(kernels[0], schema.Default())
	require.Len(t, params, 7)

	want := []lint.ParamClass{
		lint.ClassModel,
		lint.ClassData,
		lint.ClassDataIn,
		lint.ClassDataOut,
		lint.ClassOther, // qpos0 is a Model field, so the _in form resolves to nothing
		lint.ClassOther,
		lint.ClassOther,
	}
	for i, p := range params {
		assert.Equal(t, want[i], p.Class, "param %s", p.Name)
	}
}

func TestClassify_ExactNameWinsOverSuffix(t *testing.T) {
	// act_dot is a Data field in its own right, not act with a _dot suffix.
	src := `@kernel
def fwd(act_dot: int):
    pass
`
	tree, err := parser.Parse(context.Background(), []byte(src))
	require.NoError(t, err)
	t.Cleanup(tree.Close)

	params := lint.Classify(tree.Kernels()[0], schema.Default())
	require.Len(t, params, 1)
	assert.Equal(t, lint.ClassData, params[0].Class)
}

func TestParamClass_String(t *testing.T) {
	tests := []struct {
		class lint.ParamClass
		want  string
	}{
		{lint.ClassModel, "Model"},
		{lint.ClassData, "Data"},
		{lint.ClassDataIn, "Data in"},
		{lint.ClassDataOut, "Data out"},
		{lint.ClassOther, "Other"},
		{lint.ParamClass(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.class.String())
		})
	}
}
