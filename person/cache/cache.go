// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package cache defines the cache-access boundary for the person registry
// and a cache-aside decorator over the service layer.
//
// Cache operations are expressed as computations over a cache-specific
// connection type, so they compose with the same algebra as store
// operations; they just run against a different context.
package cache

import (
	"context"
	"fmt"

	"code.hybscloud.com/tx"
	"code.hybscloud.com/tx/person"
)

// Error is a cache-access failure. Comparable.
type Error struct {
	Detail string
}

func (e Error) Error() string {
	return fmt.Sprintf("cache unavailable: %s", e.Detail)
}

// Cao supplies primitive cache operations as computations over a
// cache-specific connection Conn. Find yields nil on a miss.
type Cao[Conn any] interface {
	Conn(ctx context.Context) (*Conn, error)
	Exists(id person.ID) *tx.Tx[Conn, bool, Error]
	Find(id person.ID) *tx.Tx[Conn, *person.Person, Error]
	Load(id person.ID, p person.Person) *tx.Tx[Conn, tx.Unit, Error]
	Unload(id person.ID) *tx.Tx[Conn, tx.Unit, Error]
}

// RunTx acquires a connection and executes one cache computation against
// it.
func RunTx[Conn, T any](c Cao[Conn], ctx context.Context, t *tx.Tx[Conn, T, Error]) (T, error) {
	var zero T
	conn, err := c.Conn(ctx)
	if err != nil {
		return zero, err
	}
	r := tx.Run(t, conn)
	if e, failed := r.GetErr(); failed {
		return zero, e
	}
	v, _ := r.Get()
	return v, nil
}
