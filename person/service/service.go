// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package service owns transaction management for the person registry.
//
// This is the one place composed computations actually run: RunTx begins a
// store session, executes exactly one computation against it, and commits
// or rolls back based on the final result. Layers below only construct.
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"code.hybscloud.com/tx"
	"code.hybscloud.com/tx/notifier"
	"code.hybscloud.com/tx/person"
	"code.hybscloud.com/tx/person/dao"
	"code.hybscloud.com/tx/person/usecase"
)

// adminQueue receives a notification whenever a transaction rolls back.
const adminQueue = "admin"

// Kind classifies a service failure.
type Kind int

const (
	// KindUnavailable covers session establishment and commit failures.
	KindUnavailable Kind = iota
	// KindTransactionFailed wraps a failed computation after rollback.
	KindTransactionFailed
)

// Error is a service-level failure.
type Error struct {
	Kind   Kind
	Detail string
	Cause  error
}

func (e Error) Error() string {
	switch e.Kind {
	case KindUnavailable:
		return fmt.Sprintf("service unavailable: %s", e.Detail)
	case KindTransactionFailed:
		return fmt.Sprintf("transaction failed: %s", e.Cause)
	default:
		return "unknown service error"
	}
}

func (e Error) Unwrap() error { return e.Cause }

// Store begins and finishes sessions of context type Ctx. The session
// value carries whatever the adapter needs for the duration of one
// transaction; its lifetime stays entirely inside RunTx.
type Store[Ctx any] interface {
	Begin(ctx context.Context) (*Ctx, error)
	Commit(sess *Ctx) error
	Rollback(sess *Ctx) error
}

// Service exposes the registry operations over any store.
type Service[Ctx any] struct {
	store    Store[Ctx]
	usecase  *usecase.Usecase[Ctx]
	notifier notifier.Notifier
	log      *zap.Logger
}

// New creates a Service. n and log may be nil; nil n disables rollback
// notifications.
func New[Ctx any](store Store[Ctx], u *usecase.Usecase[Ctx], n notifier.Notifier, log *zap.Logger) *Service[Ctx] {
	if n == nil {
		n = notifier.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service[Ctx]{store: store, usecase: u, notifier: n, log: log}
}

// Usecase exposes the underlying use case for composition by decorators.
func (s *Service[Ctx]) Usecase() *usecase.Usecase[Ctx] { return s.usecase }

// RunTx executes one composed computation inside one transaction.
// Begin and commit failures are KindUnavailable; a failed computation is
// rolled back, reported to the admin queue, and returned as
// KindTransactionFailed.
func RunTx[Ctx, T any](
	s *Service[Ctx],
	ctx context.Context,
	f func(u *usecase.Usecase[Ctx]) *tx.Tx[Ctx, T, usecase.Error],
) (T, error) {
	var zero T

	sess, err := s.store.Begin(ctx)
	if err != nil {
		s.log.Error("failed to start transaction", zap.Error(err))
		return zero, Error{Kind: KindUnavailable, Detail: err.Error()}
	}
	s.log.Debug("transaction started")

	r := tx.Run(f(s.usecase), sess)
	if e, failed := r.GetErr(); failed {
		if rbErr := s.store.Rollback(sess); rbErr != nil {
			s.log.Error("rollback failed", zap.Error(rbErr))
		}
		s.log.Error("transaction rollbacked", zap.Error(e))
		if nErr := s.notifier.Notify(ctx, adminQueue, e.Error()); nErr != nil {
			s.log.Warn("admin notification failed", zap.Error(nErr))
		}
		return zero, Error{Kind: KindTransactionFailed, Cause: e}
	}

	if err := s.store.Commit(sess); err != nil {
		s.log.Error("commit failed", zap.Error(err))
		return zero, Error{Kind: KindUnavailable, Detail: err.Error()}
	}
	s.log.Debug("transaction committed")

	v, _ := r.Get()
	return v, nil
}

// Register stores a new person and returns the verified record.
func (s *Service[Ctx]) Register(ctx context.Context, name string, birth time.Time, death *time.Time, data string) (person.ID, person.Person, error) {
	rec, err := RunTx(s, ctx, func(u *usecase.Usecase[Ctx]) *tx.Tx[Ctx, dao.Record, usecase.Error] {
		return u.EntryAndVerify(person.New(name, birth, death, data))
	})
	if err != nil {
		return 0, person.Person{}, err
	}
	return rec.ID, rec.Person, nil
}

// Find returns the person registered under id, or nil.
func (s *Service[Ctx]) Find(ctx context.Context, id person.ID) (*person.Person, error) {
	return RunTx(s, ctx, func(u *usecase.Usecase[Ctx]) *tx.Tx[Ctx, *person.Person, usecase.Error] {
		return u.Find(id)
	})
}

// BatchImport stores all persons inside a single transaction and returns
// the assigned IDs. One failing entry rolls back the whole batch.
func (s *Service[Ctx]) BatchImport(ctx context.Context, persons []person.Person) ([]person.ID, error) {
	return RunTx(s, ctx, func(u *usecase.Usecase[Ctx]) *tx.Tx[Ctx, []person.ID, usecase.Error] {
		chain := tx.From(func(_ *Ctx) tx.Result[[]person.ID, usecase.Error] {
			return tx.Ok[[]person.ID, usecase.Error](make([]person.ID, 0, len(persons)))
		})
		for _, p := range persons {
			chain = tx.AndThen(chain, func(ids []person.ID) *tx.Tx[Ctx, []person.ID, usecase.Error] {
				return tx.Map(u.Entry(p), func(id person.ID) []person.ID {
					return append(ids, id)
				})
			})
		}
		return chain
	})
}

// ListAll returns every registered person.
func (s *Service[Ctx]) ListAll(ctx context.Context) ([]dao.Record, error) {
	return RunTx(s, ctx, func(u *usecase.Usecase[Ctx]) *tx.Tx[Ctx, []dao.Record, usecase.Error] {
		return u.Collect()
	})
}

// Death records a death date for the person registered under id.
func (s *Service[Ctx]) Death(ctx context.Context, id person.ID, date time.Time) error {
	_, err := RunTx(s, ctx, func(u *usecase.Usecase[Ctx]) *tx.Tx[Ctx, tx.Unit, usecase.Error] {
		return u.Death(id, date)
	})
	return err
}

// Unregister removes the person registered under id.
func (s *Service[Ctx]) Unregister(ctx context.Context, id person.ID) error {
	_, err := RunTx(s, ctx, func(u *usecase.Usecase[Ctx]) *tx.Tx[Ctx, tx.Unit, usecase.Error] {
		return u.Remove(id)
	})
	return err
}
