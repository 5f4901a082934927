// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tx

import (
	"sync/atomic"
)

// Unit is the item type of computations run only for their effect.
type Unit = struct{}

// Tx represents a deferred, fallible computation over a mutable context.
// Tx[Ctx, T, E] consumes a *Ctx under Run and produces Result[T, E].
//
// A Tx is single-use: it is consumed either by Run or by the combinator
// that takes it to build a larger computation. Consuming a Tx twice is a
// programming error and panics. The one-shot discipline is what lets
// captured sub-computations assume they are never shared or re-entered.
//
// Construction never touches a context. Only Run performs work, invoking
// the captured sub-computations depth-first, left to right.
type Tx[Ctx, T, E any] struct {
	used atomic.Uintptr
	step func(*Ctx) Result[T, E]
}

// From creates a computation from a context→result function.
// This is the primitive constructor: the only way a leaf operation enters
// the algebra. f executes only when the computation is eventually run.
func From[Ctx, T, E any](f func(*Ctx) Result[T, E]) *Tx[Ctx, T, E] {
	return &Tx[Ctx, T, E]{step: f}
}

// take consumes the computation, returning its step function.
// Panics on second use.
func (t *Tx[Ctx, T, E]) take() func(*Ctx) Result[T, E] {
	if t.used.Add(1) != 1 {
		panic("tx: computation consumed twice")
	}
	return t.step
}

// Run executes the computation against ctx and returns the final Result.
// Run consumes t: a second Run, or running a computation already taken by
// a combinator, panics. Run never retries, never times out, and never
// spawns concurrent work; the context is borrowed only for the duration of
// the call, and committing or cleaning up the underlying resource remains
// the caller's responsibility.
func Run[Ctx, T, E any](t *Tx[Ctx, T, E], ctx *Ctx) Result[T, E] {
	return t.take()(ctx)
}
