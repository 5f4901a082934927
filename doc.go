// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package tx provides a deferred, fallible computation algebra over a
// caller-supplied mutable context.
//
// The core type [Tx] represents a single-use computation that, given a
// mutable context, produces a [Result]. Combinators build new computations
// from existing ones without executing anything; only [Run] performs work,
// collapsing the composed tree in one depth-first, left-to-right pass.
//
// # Design Philosophy
//
// tx provides:
//   - A minimal, precise set of combinators with exact laziness and
//     error-propagation semantics
//   - Free choice of context, item, and error types per composition
//   - One-shot ownership discipline enforced at runtime
//
// # Core Operations
//
//   - [From]: Lift a context→result function into a computation (the only
//     way to introduce a leaf)
//   - [Run]: Execute a computation against a concrete context, exactly once
//
// Sequencing:
//
//   - [Map]: Transform the success value
//   - [AndThen]: Run a dependent second computation on success only
//   - [Then]: Run a second computation unconditionally, with access to the
//     first outcome
//   - [OrElse]: Run a replacement computation on failure only
//
// Joins:
//
//   - [Join], [Join3], [Join4]: Run 2–4 computations against the same
//     context in argument order. Every branch runs even if an earlier one
//     failed; the first error in argument order wins. The branches are
//     evaluated strictly sequentially, so the shared context is never
//     aliased across goroutines.
//
// Outcome transforms:
//
//   - [MapErr], [TryMap], [Recover], [TryRecover], [Abort], [TryAbort]
//
// # Ownership
//
// A computation is consumed when a combinator takes it or when [Run]
// executes it. Go has no move semantics, so a second use cannot be rejected
// at compile time; it panics instead. See [Tx].
//
// # Concurrency
//
// Execution is synchronous and single-threaded from the caller's point of
// view. The package defines no retry, timeout, or cancellation mechanism;
// callers needing those wrap the context or the leaf functions.
package tx
