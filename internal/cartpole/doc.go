// Package cartpole implements the classic cart-pole balancing benchmark:
// a cart on a bounded track carrying an inverted pole, driven by a
// fixed-magnitude horizontal force each tick (bang-bang control).
//
// The package is a two-function numerical core:
//
//   - [Init] draws a fresh near-upright starting [State] from an injected
//     random source.
//   - [Step] advances a [State] by one fixed timestep and evaluates the
//     termination conditions.
//
// Both are pure; the caller owns all mutable episode state and threads one
// episode's states sequentially. Independent episodes may be stepped
// concurrently since nothing here is shared.
//
// Step performs no validation: a degenerate [Params] (say, zero total mass)
// propagates NaN/Inf through the state instead of failing. That is the
// intended contract, not an error path.
package cartpole
