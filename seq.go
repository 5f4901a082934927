// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tx

// Sequencing combinators.
//
// Each combinator consumes its input computation at application time and
// returns a new unconsumed computation. Nothing executes until Run; the
// continuation, if any, is chosen from the first computation's outcome.

// Map transforms the success value with a pure function.
// On Ok(v) the result is Ok(f(v)); on Err the error passes through and f is
// never invoked.
func Map[Ctx, T, U, E any](t *Tx[Ctx, T, E], f func(T) U) *Tx[Ctx, U, E] {
	step := t.take()
	return From(func(ctx *Ctx) Result[U, E] {
		r := step(ctx)
		if !r.ok {
			return Err[U, E](r.err)
		}
		return Ok[U, E](f(r.val))
	})
}

// AndThen sequences a dependent computation after a successful first one.
// On Ok(v), f(v) produces the second computation, which runs against the
// same context and supplies the final result. On Err the chain
// short-circuits: f is never called and no second computation runs.
// Both computations share the error type.
func AndThen[Ctx, T, U, E any](t *Tx[Ctx, T, E], f func(T) *Tx[Ctx, U, E]) *Tx[Ctx, U, E] {
	step := t.take()
	return From(func(ctx *Ctx) Result[U, E] {
		r := step(ctx)
		if !r.ok {
			return Err[U, E](r.err)
		}
		return Run(f(r.val), ctx)
	})
}

// Then sequences a second computation unconditionally.
// f always receives the full Result of the first computation, success or
// failure, and its computation always runs. Then is the primitive from
// which error-inspecting logic can be built without recovering
// structurally.
func Then[Ctx, T, U, E any](t *Tx[Ctx, T, E], f func(Result[T, E]) *Tx[Ctx, U, E]) *Tx[Ctx, U, E] {
	step := t.take()
	return From(func(ctx *Ctx) Result[U, E] {
		return Run(f(step(ctx)), ctx)
	})
}

// OrElse substitutes a replacement computation on failure.
// On Ok the value passes through untouched and f is never invoked. On
// Err(e), f(e) produces a replacement computation with the same success
// type, which runs against the same context. The replacement may carry a
// different error type.
func OrElse[Ctx, T, E, E2 any](t *Tx[Ctx, T, E], f func(E) *Tx[Ctx, T, E2]) *Tx[Ctx, T, E2] {
	step := t.take()
	return From(func(ctx *Ctx) Result[T, E2] {
		r := step(ctx)
		if r.ok {
			return Ok[T, E2](r.val)
		}
		return Run(f(r.err), ctx)
	})
}
