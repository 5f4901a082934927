// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package dao defines the data-access boundary for the person registry.
//
// A DAO produces leaf computations; it never runs them. Composition and
// execution belong to the layers above.
package dao

import (
	"fmt"

	"code.hybscloud.com/tx"
	"code.hybscloud.com/tx/person"
)

// Kind classifies a data-access failure by the operation that produced it.
type Kind int

const (
	KindInsert Kind = iota
	KindSelect
	KindUpdate
	KindDelete
)

func (k Kind) String() string {
	switch k {
	case KindInsert:
		return "insert"
	case KindSelect:
		return "select"
	case KindUpdate:
		return "update"
	case KindDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Error is a data-access failure. Comparable, so usecase tests can match
// wrapped errors with equality.
type Error struct {
	Kind   Kind
	Detail string
}

func (e Error) Error() string {
	return fmt.Sprintf("%s failed: %s", e.Kind, e.Detail)
}

// Record pairs an ID with the stored person.
type Record struct {
	ID     person.ID
	Person person.Person
}

// PersonDao supplies the primitive store operations as computations over a
// store-specific context Ctx. Fetch yields nil when no row matches.
type PersonDao[Ctx any] interface {
	Insert(p person.Person) *tx.Tx[Ctx, person.ID, Error]
	Fetch(id person.ID) *tx.Tx[Ctx, *person.Person, Error]
	Select() *tx.Tx[Ctx, []Record, Error]
	Save(id person.ID, p person.Person) *tx.Tx[Ctx, tx.Unit, Error]
	Delete(id person.ID) *tx.Tx[Ctx, tx.Unit, Error]
}
