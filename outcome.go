// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tx

// Outcome-transformation combinators.
//
// These reshape the success or error channel of a single computation
// without needing a second one. Recover and TryRecover are the only
// sanctioned way to convert a failure back into a success.

// MapErr transforms only the error channel; success passes through
// unchanged and f is never invoked on Ok.
func MapErr[Ctx, T, E, E2 any](t *Tx[Ctx, T, E], f func(E) E2) *Tx[Ctx, T, E2] {
	step := t.take()
	return From(func(ctx *Ctx) Result[T, E2] {
		r := step(ctx)
		if r.ok {
			return Ok[T, E2](r.val)
		}
		return Err[T, E2](f(r.err))
	})
}

// TryMap is the fallible counterpart of Map. On Ok(v) the result is f(v)
// directly; on Err the original error passes through. The transformation
// shares the computation's error type, so a structurally invalid success
// can be turned into an error on the same channel.
func TryMap[Ctx, T, U, E any](t *Tx[Ctx, T, E], f func(T) Result[U, E]) *Tx[Ctx, U, E] {
	step := t.take()
	return From(func(ctx *Ctx) Result[U, E] {
		r := step(ctx)
		if !r.ok {
			return Err[U, E](r.err)
		}
		return f(r.val)
	})
}

// Recover converts a failure into a success with a fallback item.
// On Err(e) the result is Ok(f(e)); recovery is total and cannot itself
// fail. On Ok the value passes through and f is never invoked.
func Recover[Ctx, T, E any](t *Tx[Ctx, T, E], f func(E) T) *Tx[Ctx, T, E] {
	step := t.take()
	return From(func(ctx *Ctx) Result[T, E] {
		r := step(ctx)
		if r.ok {
			return r
		}
		return Ok[T, E](f(r.err))
	})
}

// TryRecover is the fallible counterpart of Recover. On Err(e) the result
// is f(e); if the fallback also fails, the new error, of possibly
// different type, replaces the original.
func TryRecover[Ctx, T, E, E2 any](t *Tx[Ctx, T, E], f func(E) Result[T, E2]) *Tx[Ctx, T, E2] {
	step := t.take()
	return From(func(ctx *Ctx) Result[T, E2] {
		r := step(ctx)
		if r.ok {
			return Ok[T, E2](r.val)
		}
		return f(r.err)
	})
}

// Abort is the inverse of Recover: on Ok(v) the success is converted into
// the failure f(v). Original failures pass through with f never invoked.
func Abort[Ctx, T, E any](t *Tx[Ctx, T, E], f func(T) E) *Tx[Ctx, T, E] {
	step := t.take()
	return From(func(ctx *Ctx) Result[T, E] {
		r := step(ctx)
		if !r.ok {
			return r
		}
		return Err[T, E](f(r.val))
	})
}

// TryAbort conditionally reshapes a success. On Ok(v) the result is f(v):
// a succeeding f replaces the item, a failing f becomes the error.
// Original failures pass through with f never invoked.
func TryAbort[Ctx, T, E any](t *Tx[Ctx, T, E], f func(T) Result[T, E]) *Tx[Ctx, T, E] {
	step := t.take()
	return From(func(ctx *Ctx) Result[T, E] {
		r := step(ctx)
		if !r.ok {
			return r
		}
		return f(r.val)
	})
}
