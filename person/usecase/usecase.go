// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package usecase composes DAO primitives into the registry's operations.
//
// Every operation is pure construction: it returns an unexecuted
// computation, and the service layer decides when and against which
// transaction it runs.
package usecase

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"code.hybscloud.com/tx"
	"code.hybscloud.com/tx/person"
	"code.hybscloud.com/tx/person/dao"
)

// Kind classifies a use-case failure by the operation that produced it.
type Kind int

const (
	KindEntryFailed Kind = iota
	KindFindFailed
	KindEntryAndVerifyFailed
	KindCollectFailed
	KindSaveFailed
	KindRemoveFailed
	KindDomainChangeFailed
)

func (k Kind) String() string {
	switch k {
	case KindEntryFailed:
		return "entry person failed"
	case KindFindFailed:
		return "find person failed"
	case KindEntryAndVerifyFailed:
		return "entry and verify failed"
	case KindCollectFailed:
		return "collect person failed"
	case KindSaveFailed:
		return "save person failed"
	case KindRemoveFailed:
		return "remove person failed"
	case KindDomainChangeFailed:
		return "domain object change failed"
	default:
		return "unknown"
	}
}

// Error is a use-case failure wrapping the underlying data-access or
// domain error. Comparable when Cause is.
type Error struct {
	Kind  Kind
	Cause error
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Cause)
}

func (e Error) Unwrap() error { return e.Cause }

// Usecase builds registry operations over any DAO context.
type Usecase[Ctx any] struct {
	dao dao.PersonDao[Ctx]
	log *zap.Logger
}

// New creates a Usecase over d. log may be nil.
func New[Ctx any](d dao.PersonDao[Ctx], log *zap.Logger) *Usecase[Ctx] {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase[Ctx]{dao: d, log: log}
}

// Entry registers a person and yields the assigned ID.
func (u *Usecase[Ctx]) Entry(p person.Person) *tx.Tx[Ctx, person.ID, Error] {
	u.log.Debug("insert person", zap.String("name", p.Name))
	return tx.MapErr(u.dao.Insert(p), func(e dao.Error) Error {
		return Error{Kind: KindEntryFailed, Cause: e}
	})
}

// Find yields the person registered under id, or nil.
func (u *Usecase[Ctx]) Find(id person.ID) *tx.Tx[Ctx, *person.Person, Error] {
	u.log.Debug("find person", zap.Int64("id", int64(id)))
	return tx.MapErr(u.dao.Fetch(id), func(e dao.Error) Error {
		return Error{Kind: KindFindFailed, Cause: e}
	})
}

// EntryAndVerify registers a person, reads the row back within the same
// context, and yields the stored record. A missing read-back surfaces as a
// select error on the same channel before the whole chain is rewrapped.
func (u *Usecase[Ctx]) EntryAndVerify(p person.Person) *tx.Tx[Ctx, dao.Record, Error] {
	u.log.Debug("entry and verify person", zap.String("name", p.Name))
	chain := tx.AndThen(u.dao.Insert(p), func(id person.ID) *tx.Tx[Ctx, dao.Record, dao.Error] {
		return tx.TryMap(u.dao.Fetch(id), func(found *person.Person) tx.Result[dao.Record, dao.Error] {
			if found == nil {
				u.log.Warn("can't find the person just entried", zap.Int64("id", int64(id)))
				return tx.Err[dao.Record](dao.Error{
					Kind:   dao.KindSelect,
					Detail: fmt.Sprintf("not found: %d", id),
				})
			}
			return tx.Ok[dao.Record, dao.Error](dao.Record{ID: id, Person: *found})
		})
	})
	return tx.MapErr(chain, func(e dao.Error) Error {
		return Error{Kind: KindEntryAndVerifyFailed, Cause: e}
	})
}

// Collect yields every registered person.
func (u *Usecase[Ctx]) Collect() *tx.Tx[Ctx, []dao.Record, Error] {
	u.log.Debug("collect all persons")
	return tx.MapErr(u.dao.Select(), func(e dao.Error) Error {
		return Error{Kind: KindCollectFailed, Cause: e}
	})
}

// Death records a death date for the person registered under id and saves
// the updated entity. A missing person surfaces as KindFindFailed and a
// domain-rule violation as KindDomainChangeFailed; the save itself as
// KindSaveFailed.
func (u *Usecase[Ctx]) Death(id person.ID, date time.Time) *tx.Tx[Ctx, tx.Unit, Error] {
	u.log.Debug("death person",
		zap.Int64("id", int64(id)),
		zap.Time("date", date),
	)
	fetched := tx.MapErr(u.dao.Fetch(id), func(e dao.Error) Error {
		return Error{Kind: KindFindFailed, Cause: e}
	})
	updated := tx.TryMap(fetched, func(found *person.Person) tx.Result[person.Person, Error] {
		if found == nil {
			u.log.Warn("can't find the person to dead", zap.Int64("id", int64(id)))
			return tx.Err[person.Person](Error{
				Kind: KindFindFailed,
				Cause: dao.Error{
					Kind:   dao.KindSelect,
					Detail: fmt.Sprintf("person not found: %d", id),
				},
			})
		}
		p := *found
		if err := p.DeadAt(date); err != nil {
			return tx.Err[person.Person](Error{Kind: KindDomainChangeFailed, Cause: err})
		}
		return tx.Ok[person.Person, Error](p)
	})
	return tx.AndThen(updated, func(p person.Person) *tx.Tx[Ctx, tx.Unit, Error] {
		u.log.Debug("save dead person", zap.Int64("id", int64(id)))
		return tx.MapErr(u.dao.Save(id, p), func(e dao.Error) Error {
			return Error{Kind: KindSaveFailed, Cause: e}
		})
	})
}

// Remove deletes the person registered under id.
func (u *Usecase[Ctx]) Remove(id person.ID) *tx.Tx[Ctx, tx.Unit, Error] {
	u.log.Debug("remove person", zap.Int64("id", int64(id)))
	return tx.MapErr(u.dao.Delete(id), func(e dao.Error) Error {
		return Error{Kind: KindRemoveFailed, Cause: e}
	})
}
