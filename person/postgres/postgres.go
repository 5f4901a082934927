// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package postgres implements the store boundary on PostgreSQL via pgx.
//
// A Session is one open database transaction. The service layer begins a
// session, runs a composed computation against it, and commits or rolls
// back by the computation's outcome.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"code.hybscloud.com/tx"
	"code.hybscloud.com/tx/person"
	"code.hybscloud.com/tx/person/dao"
)

// Schema creates the person table. Applied by the demo binary on startup.
const Schema = `
CREATE TABLE IF NOT EXISTS person (
    id         BIGSERIAL PRIMARY KEY,
    name       TEXT NOT NULL,
    birth_date TIMESTAMPTZ NOT NULL,
    death_date TIMESTAMPTZ,
    data       TEXT NOT NULL DEFAULT ''
)`

// Session is one open transaction. The embedded context bounds every
// statement issued through it.
type Session struct {
	ctx context.Context
	tx  pgx.Tx
}

// Store begins and finishes sessions on a connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore wraps an existing pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Dial connects to url and verifies the database is reachable.
func Dial(ctx context.Context, url string) (*Store, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("postgres connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return NewStore(pool), nil
}

// Pool exposes the underlying pool for setup tasks such as applying Schema.
func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}

// Close releases the pool.
func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) Begin(ctx context.Context) (*Session, error) {
	pgtx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	return &Session{ctx: ctx, tx: pgtx}, nil
}

func (s *Store) Commit(sess *Session) error {
	return sess.tx.Commit(sess.ctx)
}

func (s *Store) Rollback(sess *Session) error {
	return sess.tx.Rollback(sess.ctx)
}

// Dao serves person store operations over an open Session.
type Dao struct{}

// NewDao constructs the postgres-backed DAO.
func NewDao() Dao { return Dao{} }

func (Dao) Insert(p person.Person) *tx.Tx[Session, person.ID, dao.Error] {
	return tx.From(func(sess *Session) tx.Result[person.ID, dao.Error] {
		var id person.ID
		err := sess.tx.QueryRow(sess.ctx,
			`INSERT INTO person (name, birth_date, death_date, data)
			 VALUES ($1, $2, $3, $4) RETURNING id`,
			p.Name, p.BirthDate, p.DeathDate, p.Data,
		).Scan(&id)
		if err != nil {
			return tx.Err[person.ID](dao.Error{Kind: dao.KindInsert, Detail: err.Error()})
		}
		return tx.Ok[person.ID, dao.Error](id)
	})
}

func (Dao) Fetch(id person.ID) *tx.Tx[Session, *person.Person, dao.Error] {
	return tx.From(func(sess *Session) tx.Result[*person.Person, dao.Error] {
		var p person.Person
		err := sess.tx.QueryRow(sess.ctx,
			`SELECT name, birth_date, death_date, data FROM person WHERE id = $1`,
			id,
		).Scan(&p.Name, &p.BirthDate, &p.DeathDate, &p.Data)
		if errors.Is(err, pgx.ErrNoRows) {
			return tx.Ok[*person.Person, dao.Error](nil)
		}
		if err != nil {
			return tx.Err[*person.Person](dao.Error{Kind: dao.KindSelect, Detail: err.Error()})
		}
		return tx.Ok[*person.Person, dao.Error](&p)
	})
}

func (Dao) Select() *tx.Tx[Session, []dao.Record, dao.Error] {
	return tx.From(func(sess *Session) tx.Result[[]dao.Record, dao.Error] {
		rows, err := sess.tx.Query(sess.ctx,
			`SELECT id, name, birth_date, death_date, data FROM person ORDER BY id`)
		if err != nil {
			return tx.Err[[]dao.Record](dao.Error{Kind: dao.KindSelect, Detail: err.Error()})
		}
		defer rows.Close()

		var out []dao.Record
		for rows.Next() {
			var rec dao.Record
			if err := rows.Scan(&rec.ID, &rec.Person.Name, &rec.Person.BirthDate,
				&rec.Person.DeathDate, &rec.Person.Data); err != nil {
				return tx.Err[[]dao.Record](dao.Error{Kind: dao.KindSelect, Detail: err.Error()})
			}
			out = append(out, rec)
		}
		if err := rows.Err(); err != nil {
			return tx.Err[[]dao.Record](dao.Error{Kind: dao.KindSelect, Detail: err.Error()})
		}
		return tx.Ok[[]dao.Record, dao.Error](out)
	})
}

func (Dao) Save(id person.ID, p person.Person) *tx.Tx[Session, tx.Unit, dao.Error] {
	return tx.From(func(sess *Session) tx.Result[tx.Unit, dao.Error] {
		tag, err := sess.tx.Exec(sess.ctx,
			`UPDATE person SET name = $2, birth_date = $3, death_date = $4, data = $5
			 WHERE id = $1`,
			id, p.Name, p.BirthDate, p.DeathDate, p.Data)
		if err != nil {
			return tx.Err[tx.Unit](dao.Error{Kind: dao.KindUpdate, Detail: err.Error()})
		}
		if tag.RowsAffected() == 0 {
			return tx.Err[tx.Unit](dao.Error{Kind: dao.KindUpdate, Detail: fmt.Sprintf("no row: %d", id)})
		}
		return tx.Ok[tx.Unit, dao.Error](tx.Unit{})
	})
}

func (Dao) Delete(id person.ID) *tx.Tx[Session, tx.Unit, dao.Error] {
	return tx.From(func(sess *Session) tx.Result[tx.Unit, dao.Error] {
		if _, err := sess.tx.Exec(sess.ctx, `DELETE FROM person WHERE id = $1`, id); err != nil {
			return tx.Err[tx.Unit](dao.Error{Kind: dao.KindDelete, Detail: err.Error()})
		}
		return tx.Ok[tx.Unit, dao.Error](tx.Unit{})
	})
}
