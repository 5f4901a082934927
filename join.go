// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tx

// Parallel-shaped combinators.
//
// Join, Join3, and Join4 combine independently constructed computations
// that all run against the same context. They are not concurrent: the
// branches execute strictly sequentially in argument order, because the
// single mutable context must never be aliased across goroutines.
//
// Every branch runs unconditionally, even when an earlier branch already
// failed; all results are known before any is inspected. Callers may
// depend on every branch's side effect running. When more than one branch
// fails, the first error in argument order wins.

// Pair holds the results of a two-way Join.
type Pair[T1, T2 any] struct {
	First  T1
	Second T2
}

// Triple holds the results of a Join3.
type Triple[T1, T2, T3 any] struct {
	First  T1
	Second T2
	Third  T3
}

// Quad holds the results of a Join4.
type Quad[T1, T2, T3, T4 any] struct {
	First  T1
	Second T2
	Third  T3
	Fourth T4
}

// Join combines two computations into one producing both results.
func Join[Ctx, T1, T2, E any](t1 *Tx[Ctx, T1, E], t2 *Tx[Ctx, T2, E]) *Tx[Ctx, Pair[T1, T2], E] {
	s1, s2 := t1.take(), t2.take()
	return From(func(ctx *Ctx) Result[Pair[T1, T2], E] {
		r1 := s1(ctx)
		r2 := s2(ctx)
		if !r1.ok {
			return Err[Pair[T1, T2], E](r1.err)
		}
		if !r2.ok {
			return Err[Pair[T1, T2], E](r2.err)
		}
		return Ok[Pair[T1, T2], E](Pair[T1, T2]{First: r1.val, Second: r2.val})
	})
}

// Join3 combines three computations into one producing all three results.
func Join3[Ctx, T1, T2, T3, E any](
	t1 *Tx[Ctx, T1, E], t2 *Tx[Ctx, T2, E], t3 *Tx[Ctx, T3, E],
) *Tx[Ctx, Triple[T1, T2, T3], E] {
	s1, s2, s3 := t1.take(), t2.take(), t3.take()
	return From(func(ctx *Ctx) Result[Triple[T1, T2, T3], E] {
		r1 := s1(ctx)
		r2 := s2(ctx)
		r3 := s3(ctx)
		if !r1.ok {
			return Err[Triple[T1, T2, T3], E](r1.err)
		}
		if !r2.ok {
			return Err[Triple[T1, T2, T3], E](r2.err)
		}
		if !r3.ok {
			return Err[Triple[T1, T2, T3], E](r3.err)
		}
		return Ok[Triple[T1, T2, T3], E](Triple[T1, T2, T3]{
			First: r1.val, Second: r2.val, Third: r3.val,
		})
	})
}

// Join4 combines four computations into one producing all four results.
func Join4[Ctx, T1, T2, T3, T4, E any](
	t1 *Tx[Ctx, T1, E], t2 *Tx[Ctx, T2, E], t3 *Tx[Ctx, T3, E], t4 *Tx[Ctx, T4, E],
) *Tx[Ctx, Quad[T1, T2, T3, T4], E] {
	s1, s2, s3, s4 := t1.take(), t2.take(), t3.take(), t4.take()
	return From(func(ctx *Ctx) Result[Quad[T1, T2, T3, T4], E] {
		r1 := s1(ctx)
		r2 := s2(ctx)
		r3 := s3(ctx)
		r4 := s4(ctx)
		if !r1.ok {
			return Err[Quad[T1, T2, T3, T4], E](r1.err)
		}
		if !r2.ok {
			return Err[Quad[T1, T2, T3, T4], E](r2.err)
		}
		if !r3.ok {
			return Err[Quad[T1, T2, T3, T4], E](r3.err)
		}
		if !r4.ok {
			return Err[Quad[T1, T2, T3, T4], E](r4.err)
		}
		return Ok[Quad[T1, T2, T3, T4], E](Quad[T1, T2, T3, T4]{
			First: r1.val, Second: r2.val, Third: r3.val, Fourth: r4.val,
		})
	})
}
