// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tx_test

import (
	"fmt"
	"testing"

	"code.hybscloud.com/tx"
)

func TestMapErr(t *testing.T) {
	var u tx.Unit

	got := tx.Run(tx.MapErr(errLeaf("ng"), func(e string) int { return len(e) }), &u)
	if got != tx.Err[int](2) {
		t.Fatalf("got %v, want Err(2)", got)
	}

	calls := 0
	got2 := tx.Run(tx.MapErr(okLeaf(42), func(e string) int {
		calls++
		return len(e)
	}), &u)
	if got2 != tx.Ok[int, int](42) {
		t.Fatalf("got %v, want Ok(42)", got2)
	}
	if calls != 0 {
		t.Fatalf("error transform invoked %d times on success, want 0", calls)
	}
}

func TestTryMap(t *testing.T) {
	var u tx.Unit

	got := tx.Run(tx.TryMap(okLeaf(10), func(int) tx.Result[int, string] {
		return tx.Err[int]("too small")
	}), &u)
	if got != tx.Err[int]("too small") {
		t.Fatalf("got %v, want Err(too small)", got)
	}

	got = tx.Run(tx.TryMap(okLeaf(21), func(v int) tx.Result[int, string] {
		return tx.Ok[int, string](v * 2)
	}), &u)
	if got != tx.Ok[int, string](42) {
		t.Fatalf("got %v, want Ok(42)", got)
	}
}

func TestTryMapPassesErrorThrough(t *testing.T) {
	calls := 0
	comp := tx.TryMap(errLeaf("ng"), func(v int) tx.Result[int, string] {
		calls++
		return tx.Ok[int, string](v)
	})

	var u tx.Unit
	got := tx.Run(comp, &u)
	if got != tx.Err[int]("ng") {
		t.Fatalf("got %v, want Err(ng)", got)
	}
	if calls != 0 {
		t.Fatalf("try-map function invoked %d times on failure, want 0", calls)
	}
}

func TestRecover(t *testing.T) {
	var u tx.Unit

	got := tx.Run(tx.Recover(errLeaf("x"), func(string) int { return 42 }), &u)
	if got != tx.Ok[int, string](42) {
		t.Fatalf("got %v, want Ok(42)", got)
	}

	calls := 0
	got = tx.Run(tx.Recover(okLeaf(21), func(string) int {
		calls++
		return 42
	}), &u)
	if got != tx.Ok[int, string](21) {
		t.Fatalf("got %v, want Ok(21)", got)
	}
	if calls != 0 {
		t.Fatalf("fallback invoked %d times on success, want 0", calls)
	}
}

func TestTryRecover(t *testing.T) {
	var u tx.Unit

	got := tx.Run(tx.TryRecover(errLeaf("x"), func(string) tx.Result[int, string] {
		return tx.Ok[int, string](42)
	}), &u)
	if got != tx.Ok[int, string](42) {
		t.Fatalf("got %v, want Ok(42)", got)
	}

	got = tx.Run(tx.TryRecover(okLeaf(21), func(string) tx.Result[int, string] {
		return tx.Err[int]("y")
	}), &u)
	if got != tx.Ok[int, string](21) {
		t.Fatalf("got %v, want Ok(21): fallback must not run on success", got)
	}
}

// A recovery that itself fails yields the new error, not the original.
func TestTryRecoverFailingFallback(t *testing.T) {
	comp := tx.TryRecover(errLeaf("x"), func(string) tx.Result[int, string] {
		return tx.Err[int]("y")
	})

	var u tx.Unit
	got := tx.Run(comp, &u)
	if got != tx.Err[int]("y") {
		t.Fatalf("got %v, want Err(y)", got)
	}
}

func TestTryRecoverMayChangeErrorType(t *testing.T) {
	comp := tx.TryRecover(errLeaf("boom"), func(e string) tx.Result[int, int] {
		return tx.Err[int](len(e))
	})

	var u tx.Unit
	got := tx.Run(comp, &u)
	if got != tx.Err[int](4) {
		t.Fatalf("got %v, want Err(4)", got)
	}
}

func TestAbort(t *testing.T) {
	var u tx.Unit

	got := tx.Run(tx.Abort(okLeaf(5), func(v int) string {
		return fmt.Sprintf("bad %d", v)
	}), &u)
	if got != tx.Err[int]("bad 5") {
		t.Fatalf("got %v, want Err(bad 5)", got)
	}

	calls := 0
	got = tx.Run(tx.Abort(errLeaf("ng"), func(v int) string {
		calls++
		return "unused"
	}), &u)
	if got != tx.Err[int]("ng") {
		t.Fatalf("got %v, want Err(ng)", got)
	}
	if calls != 0 {
		t.Fatalf("abort function invoked %d times on failure, want 0", calls)
	}
}

func TestTryAbort(t *testing.T) {
	var u tx.Unit

	got := tx.Run(tx.TryAbort(okLeaf(21), func(v int) tx.Result[int, string] {
		return tx.Ok[int, string](v * 2)
	}), &u)
	if got != tx.Ok[int, string](42) {
		t.Fatalf("got %v, want Ok(42)", got)
	}

	got = tx.Run(tx.TryAbort(okLeaf(5), func(v int) tx.Result[int, string] {
		return tx.Err[int](fmt.Sprintf("bad %d", v))
	}), &u)
	if got != tx.Err[int]("bad 5") {
		t.Fatalf("got %v, want Err(bad 5)", got)
	}

	got = tx.Run(tx.TryAbort(errLeaf("ng"), func(v int) tx.Result[int, string] {
		return tx.Ok[int, string](v)
	}), &u)
	if got != tx.Err[int]("ng") {
		t.Fatalf("got %v, want Err(ng)", got)
	}
}
