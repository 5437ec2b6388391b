// Package types defines the shared data model exchanged between the
// external workflow runner, the execution handlers, and the STAC
// transport.
//
// The two central types are:
//   - Conf: the ZOO-kernel configuration sections. The caller owns the
//     map; handlers hold it by reference and mutate it in place, so
//     changes (status messages, staged-output credentials) are visible
//     to the caller without re-fetching.
//   - Outputs: the named results of a workflow execution, populated by
//     the handlers and read by the caller after the run completes.
//
// Both are plain maps on purpose: they are never replaced, only
// mutated, matching the reference-sharing contract with the runner.
package types
