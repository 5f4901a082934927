// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tx

// Result represents the outcome of a computation: either Ok with a success
// value of type T, or Err with an error value of type E.
//
// Result is a comparable value type when T and E are comparable, so tests
// and callers may compare outcomes with ==. There is no fixed error
// enumeration; E is a free type parameter supplied by each composition.
type Result[T, E any] struct {
	ok  bool
	val T
	err E
}

// Ok creates a successful Result carrying v.
func Ok[T, E any](v T) Result[T, E] {
	return Result[T, E]{ok: true, val: v}
}

// Err creates a failed Result carrying e.
func Err[T, E any](e E) Result[T, E] {
	return Result[T, E]{err: e}
}

// IsOk returns true if this is a success value.
func (r Result[T, E]) IsOk() bool {
	return r.ok
}

// IsErr returns true if this is an error value.
func (r Result[T, E]) IsErr() bool {
	return !r.ok
}

// Get returns the success value and true, or zero and false.
func (r Result[T, E]) Get() (T, bool) {
	if r.ok {
		return r.val, true
	}
	var zero T
	return zero, false
}

// GetErr returns the error value and true, or zero and false.
func (r Result[T, E]) GetErr() (E, bool) {
	if !r.ok {
		return r.err, true
	}
	var zero E
	return zero, false
}

// Match pattern matches on the Result, calling onOk or onErr.
func Match[T, E, R any](r Result[T, E], onOk func(T) R, onErr func(E) R) R {
	if r.ok {
		return onOk(r.val)
	}
	return onErr(r.err)
}
