package f5project_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thejimmylin/f5project"
)

func TestNewProject(t *testing.T) {
	_, _, err := f5project.NewProject(f5project.Config{}, f5project.Options{})
	assert.Error(t, err)

	project, analytics, err := f5project.NewProject(f5project.Config{}, f5project.Options{
		FinlabBaseURL: "http://127.0.0.1:0",
		TempDir:       t.TempDir(),
	})
	require.NoError(t, err)
	require.NotNil(t, analytics)
	assert.Equal(t, f5project.StateUnconfigured, project.State())

	_, err = project.Invoke(context.Background(), f5project.InvokeOptions{}, nil)
	assert.ErrorIs(t, err, f5project.ErrPrecondition)

	_, err = project.RegisterEndpoint("noop", func(context.Context, f5project.Params) (any, error) {
		return "ok", nil
	})
	require.NoError(t, err)

	result, err := project.Invoke(context.Background(), f5project.InvokeOptions{}, []string{"-d"})
	require.NoError(t, err)
	assert.Equal(t, "ok", result)

	err = project.Setup(context.Background(), "")
	assert.ErrorIs(t, err, f5project.ErrPrecondition)
}

func TestDefaultCreateOrdersParams(t *testing.T) {
	params := f5project.DefaultCreateOrdersParams()
	assert.True(t, params.ViewOnly)
	assert.True(t, params.OddLot)
	assert.Equal(t, "10000", params.Fund.String())
}
