package handler

import (
	"context"

	"go.uber.org/zap"

	"github.com/ZOO-Project/zoo-template-common/pkg/stacio"
	"github.com/ZOO-Project/zoo-template-common/pkg/types"
)

// PodSpec is the fragment the runner assembles from the accessor
// methods before job submission. The external runner folds it into the
// pod/job specification it submits to the cluster.
type PodSpec struct {
	EnvVars              map[string]string
	NodeSelector         map[string]string
	AdditionalParameters map[string]any
}

// WorkflowFunc is the opaque workflow execution supplied by the
// external runner. It receives the assembled pod spec and returns the
// run artifacts, which may be partial on failure.
type WorkflowFunc func(ctx context.Context, spec *PodSpec) (*types.RunArtifacts, error)

// Runner drives the documented invocation sequence around a workflow:
//
//  1. pre-execution hooks, in chain order
//  2. accessor polling into a PodSpec
//  3. the workflow itself
//  4. post-execution hooks, always, success or failure
//  5. transport installation from the returned credentials
//  6. tool-log output registration
//
// Failures are written into the lenv status/message slot before being
// returned, so the caller sees them in the shared configuration.
type Runner struct {
	base         *CommonHandler
	hooks        Hooks
	log          *zap.Logger
	newTransport func(stacio.Credentials) (*stacio.StacIO, error)
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithTransportFactory overrides how the runner turns credentials into
// a transport.
func WithTransportFactory(f func(stacio.Credentials) (*stacio.StacIO, error)) RunnerOption {
	return func(r *Runner) { r.newTransport = f }
}

// NewRunner builds a runner over the base handler plus any extension
// handlers, chained in the given order after the base.
func NewRunner(base *CommonHandler, extensions []Hooks, opts ...RunnerOption) *Runner {
	hooks := make([]Hooks, 0, len(extensions)+1)
	hooks = append(hooks, base)
	hooks = append(hooks, extensions...)

	r := &Runner{
		base:  base,
		hooks: NewChain(hooks...),
		log:   base.log,
		newTransport: func(creds stacio.Credentials) (*stacio.StacIO, error) {
			return stacio.New(creds)
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Execute runs the full sequence around workflow. The post hooks run
// exactly once, even when the pre hooks or the workflow fail.
func (r *Runner) Execute(ctx context.Context, workflow WorkflowFunc) (*types.RunArtifacts, error) {
	conf := r.base.Conf()
	conf.SetMessage(types.StatusRunning, "workflow execution started")

	var artifacts *types.RunArtifacts
	var runErr error

	if err := r.hooks.PreExecutionHook(ctx); err != nil {
		runErr = err
	} else {
		spec := &PodSpec{
			EnvVars:              r.hooks.PodEnvVars(),
			NodeSelector:         r.hooks.PodNodeSelector(),
			AdditionalParameters: r.hooks.AdditionalParameters(),
		}
		artifacts, runErr = workflow(ctx, spec)
	}

	// Post hooks always run, with whatever artifacts exist.
	creds, postErr := r.hooks.PostExecutionHook(ctx, artifacts)
	if creds != nil && creds.Endpoint != "" {
		io, err := r.newTransport(*creds)
		if err != nil {
			r.log.Error("stage-out transport construction failed", zap.Error(err))
			if postErr == nil {
				postErr = err
			}
		} else {
			stacio.SetDefault(io)
		}
	}

	if runErr == nil && postErr != nil {
		runErr = postErr
	}
	if runErr != nil {
		conf.SetMessage(types.StatusFailed, runErr.Error())
		return artifacts, runErr
	}

	if err := r.base.HandleOutputs(ctx, artifacts); err != nil {
		conf.SetMessage(types.StatusFailed, err.Error())
		return artifacts, err
	}

	conf.SetMessage(types.StatusSucceeded, "workflow execution completed")
	return artifacts, nil
}
