package handler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZOO-Project/zoo-template-common/pkg/stacio"
	"github.com/ZOO-Project/zoo-template-common/pkg/types"
)

func TestRunnerSequence(t *testing.T) {
	ctx := context.Background()

	t.Run("pre hook runs before the workflow, post hook after", func(t *testing.T) {
		var calls []string
		ext := newStubHooks("ext")
		ext.preCalled = &calls
		ext.postCalled = &calls

		conf := types.Conf{}
		runner := NewRunner(New(conf, nil), []Hooks{ext})

		artifacts, err := runner.Execute(ctx, func(ctx context.Context, spec *PodSpec) (*types.RunArtifacts, error) {
			calls = append(calls, "workflow")
			return &types.RunArtifacts{Log: "/tmp/run.log"}, nil
		})
		require.NoError(t, err)
		require.NotNil(t, artifacts)
		assert.Equal(t, []string{"ext", "workflow", "ext"}, calls)
		assert.Equal(t, types.StatusSucceeded, conf.GetDefault(types.SectionLenv, types.KeyStatus, ""))
	})

	t.Run("accessor results are folded into the pod spec", func(t *testing.T) {
		ext := newStubHooks("ext")
		ext.envVars = map[string]string{"STAGE": "test"}
		ext.selector = map[string]string{"pool": "gpu"}
		ext.params = map[string]any{"max_cores": 4}

		var got *PodSpec
		runner := NewRunner(New(types.Conf{}, nil), []Hooks{ext})
		_, err := runner.Execute(ctx, func(ctx context.Context, spec *PodSpec) (*types.RunArtifacts, error) {
			got = spec
			return nil, nil
		})
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "test", got.EnvVars["STAGE"])
		assert.Equal(t, "gpu", got.NodeSelector["pool"])
		assert.Equal(t, 4, got.AdditionalParameters["max_cores"])
	})

	t.Run("post hook runs even when the workflow fails", func(t *testing.T) {
		var calls []string
		ext := newStubHooks("ext")
		ext.postCalled = &calls

		conf := types.Conf{}
		runner := NewRunner(New(conf, nil), []Hooks{ext})

		wfErr := errors.New("pod evicted")
		_, err := runner.Execute(ctx, func(ctx context.Context, spec *PodSpec) (*types.RunArtifacts, error) {
			return &types.RunArtifacts{Log: "/tmp/run.log"}, wfErr
		})
		require.ErrorIs(t, err, wfErr)
		assert.Equal(t, []string{"ext"}, calls)
		assert.Equal(t, types.StatusFailed, conf.GetDefault(types.SectionLenv, types.KeyStatus, ""))
		assert.Equal(t, "pod evicted", conf.GetDefault(types.SectionLenv, types.KeyMessage, ""))
	})

	t.Run("post hook runs even when a pre hook fails", func(t *testing.T) {
		var calls []string
		ext := newStubHooks("ext")
		ext.preCalled = &calls
		ext.postCalled = &calls
		ext.preErr = errors.New("no credentials")

		conf := types.Conf{}
		runner := NewRunner(New(conf, nil), []Hooks{ext})

		workflowRan := false
		_, err := runner.Execute(ctx, func(ctx context.Context, spec *PodSpec) (*types.RunArtifacts, error) {
			workflowRan = true
			return nil, nil
		})
		require.Error(t, err)
		assert.True(t, IsHookError(err))
		assert.False(t, workflowRan)
		assert.Equal(t, []string{"ext", "ext"}, calls)
		assert.Equal(t, types.StatusFailed, conf.GetDefault(types.SectionLenv, types.KeyStatus, ""))
	})

	t.Run("tool logs become outputs after a successful run", func(t *testing.T) {
		outputs := types.Outputs{}
		runner := NewRunner(New(types.Conf{}, outputs), nil)

		_, err := runner.Execute(ctx, func(ctx context.Context, spec *PodSpec) (*types.RunArtifacts, error) {
			return &types.RunArtifacts{
				ToolLogs: map[string][]string{"toolA": {"/logs/a1.txt"}},
			}, nil
		})
		require.NoError(t, err)
		assert.Equal(t, "/logs/a1.txt", outputs["toolA_log_0"].Value)
	})
}

func TestRunnerTransportInstallation(t *testing.T) {
	ctx := context.Background()

	t.Run("credentials from the post hooks build the default transport", func(t *testing.T) {
		conf := types.Conf{
			types.SectionAdditionalParameters: {
				KeyStageOutServiceURL: "https://minio.example.com",
			},
		}

		var captured *stacio.Credentials
		installed, err := stacio.New(stacio.Credentials{})
		require.NoError(t, err)

		runner := NewRunner(New(conf, nil), nil, WithTransportFactory(
			func(creds stacio.Credentials) (*stacio.StacIO, error) {
				captured = &creds
				return installed, nil
			}))

		_, err = runner.Execute(ctx, func(ctx context.Context, spec *PodSpec) (*types.RunArtifacts, error) {
			return nil, nil
		})
		require.NoError(t, err)
		require.NotNil(t, captured)
		assert.Equal(t, "https://minio.example.com", captured.Endpoint)
		assert.Same(t, installed, stacio.Default())

		stacio.SetDefault(nil)
	})

	t.Run("no endpoint means no transport installation", func(t *testing.T) {
		stacio.SetDefault(nil)

		called := false
		runner := NewRunner(New(types.Conf{}, nil), nil, WithTransportFactory(
			func(creds stacio.Credentials) (*stacio.StacIO, error) {
				called = true
				return stacio.New(creds)
			}))

		_, err := runner.Execute(ctx, func(ctx context.Context, spec *PodSpec) (*types.RunArtifacts, error) {
			return nil, nil
		})
		require.NoError(t, err)
		assert.False(t, called)
	})

	t.Run("transport construction failure surfaces as the run error", func(t *testing.T) {
		conf := types.Conf{
			types.SectionAdditionalParameters: {
				KeyStageOutServiceURL: "https://minio.example.com",
			},
		}

		factoryErr := errors.New("bad endpoint")
		runner := NewRunner(New(conf, nil), nil, WithTransportFactory(
			func(creds stacio.Credentials) (*stacio.StacIO, error) {
				return nil, factoryErr
			}))

		_, err := runner.Execute(ctx, func(ctx context.Context, spec *PodSpec) (*types.RunArtifacts, error) {
			return nil, nil
		})
		assert.ErrorIs(t, err, factoryErr)
		assert.Equal(t, types.StatusFailed, conf.GetDefault(types.SectionLenv, types.KeyStatus, ""))
	})
}
