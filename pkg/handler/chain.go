package handler

import (
	"context"

	"github.com/ZOO-Project/zoo-template-common/pkg/stacio"
	"github.com/ZOO-Project/zoo-template-common/pkg/types"
)

// Chain composes several extension handlers into one Hooks value with
// a deterministic, declared order. It replaces diamond-shaped override
// chains: hooks run in the order they were appended, and accessor
// results merge last-writer-wins in that same order.
type Chain struct {
	hooks []Hooks
}

// NewChain creates a chain over the given hooks, invoked in order.
func NewChain(hooks ...Hooks) *Chain {
	return &Chain{hooks: hooks}
}

// Append adds a handler to the end of the chain.
func (c *Chain) Append(h Hooks) {
	c.hooks = append(c.hooks, h)
}

// Name implements Hooks.
func (c *Chain) Name() string { return "chain" }

// PreExecutionHook runs every pre hook in order. The first failure
// aborts the chain and is returned as a HookError naming the handler.
func (c *Chain) PreExecutionHook(ctx context.Context) error {
	for _, h := range c.hooks {
		if err := h.PreExecutionHook(ctx); err != nil {
			return NewHookError(PhasePre, h.Name(), err)
		}
	}
	return nil
}

// PostExecutionHook runs every post hook in order. The last non-nil
// credentials value wins. The first failure aborts the chain and is
// returned as a HookError naming the handler.
func (c *Chain) PostExecutionHook(ctx context.Context, artifacts *types.RunArtifacts) (*stacio.Credentials, error) {
	var creds *stacio.Credentials
	for _, h := range c.hooks {
		got, err := h.PostExecutionHook(ctx, artifacts)
		if err != nil {
			return creds, NewHookError(PhasePost, h.Name(), err)
		}
		if got != nil {
			creds = got
		}
	}
	return creds, nil
}

// PodEnvVars merges every handler's environment variables,
// last-writer-wins on key collision.
func (c *Chain) PodEnvVars() map[string]string {
	merged := map[string]string{}
	for _, h := range c.hooks {
		for k, v := range h.PodEnvVars() {
			merged[k] = v
		}
	}
	return merged
}

// PodNodeSelector merges every handler's node selector labels,
// last-writer-wins on key collision.
func (c *Chain) PodNodeSelector() map[string]string {
	merged := map[string]string{}
	for _, h := range c.hooks {
		for k, v := range h.PodNodeSelector() {
			merged[k] = v
		}
	}
	return merged
}

// AdditionalParameters merges every handler's parameters,
// last-writer-wins on key collision.
func (c *Chain) AdditionalParameters() map[string]any {
	merged := map[string]any{}
	for _, h := range c.hooks {
		for k, v := range h.AdditionalParameters() {
			merged[k] = v
		}
	}
	return merged
}
