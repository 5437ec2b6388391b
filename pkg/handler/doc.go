// Package handler provides the execution-handler lifecycle that CWL
// execution services plug their pre/post-execution behavior into.
//
// The hook surface is:
//   - Hooks: the interface extension handlers implement. There is no
//     base class to chain into; every method has a complete default in
//     CommonHandler, and composition is explicit.
//   - CommonHandler: the base implementation. No-op pre hook, a post
//     hook that resolves the stage-out object-store credentials from
//     the configuration, empty accessor maps, secrets loading, and
//     output registration.
//   - Chain: an explicit ordered list of Hooks. Hooks run in declared
//     order; accessor results merge last-writer-wins in that order.
//   - Runner: drives the documented invocation sequence around an
//     opaque workflow function: pre hooks, accessor polling, workflow,
//     post hooks (always, even on failure), transport installation,
//     output registration.
//
// Everything is synchronous and runs on the caller's goroutine. No
// retries, no recovery: every failure surfaces to whatever invoked the
// method, and the runner records it in the lenv status slot.
package handler
