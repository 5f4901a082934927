// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package rediscache implements the cache boundary on Redis.
//
// Persons are stored as JSON values under "person:<id>". All operations
// run against a Conn, which pins the request context so cache
// computations stay plain functions of their connection.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"code.hybscloud.com/tx"
	"code.hybscloud.com/tx/person"
	"code.hybscloud.com/tx/person/cache"
)

// Conn is one checked-out view of the Redis client. The embedded context
// bounds every command issued through it.
type Conn struct {
	ctx    context.Context
	client *redis.Client
}

// Cao serves person cache operations from a Redis client.
type Cao struct {
	client *redis.Client
}

// New wraps an existing client.
func New(client *redis.Client) *Cao {
	return &Cao{client: client}
}

// Dial connects to addr and verifies the server is reachable.
func Dial(ctx context.Context, addr string) (*Cao, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return New(client), nil
}

// Close releases the underlying client.
func (c *Cao) Close() error {
	return c.client.Close()
}

func (c *Cao) Conn(ctx context.Context) (*Conn, error) {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return nil, cache.Error{Detail: err.Error()}
	}
	return &Conn{ctx: ctx, client: c.client}, nil
}

func key(id person.ID) string {
	return fmt.Sprintf("person:%d", id)
}

func (c *Cao) Exists(id person.ID) *tx.Tx[Conn, bool, cache.Error] {
	return tx.From(func(conn *Conn) tx.Result[bool, cache.Error] {
		n, err := conn.client.Exists(conn.ctx, key(id)).Result()
		if err != nil {
			return tx.Err[bool](cache.Error{Detail: err.Error()})
		}
		return tx.Ok[bool, cache.Error](n > 0)
	})
}

func (c *Cao) Find(id person.ID) *tx.Tx[Conn, *person.Person, cache.Error] {
	return tx.From(func(conn *Conn) tx.Result[*person.Person, cache.Error] {
		raw, err := conn.client.Get(conn.ctx, key(id)).Bytes()
		if errors.Is(err, redis.Nil) {
			return tx.Ok[*person.Person, cache.Error](nil)
		}
		if err != nil {
			return tx.Err[*person.Person](cache.Error{Detail: err.Error()})
		}
		var p person.Person
		if err := json.Unmarshal(raw, &p); err != nil {
			return tx.Err[*person.Person](cache.Error{Detail: err.Error()})
		}
		return tx.Ok[*person.Person, cache.Error](&p)
	})
}

func (c *Cao) Load(id person.ID, p person.Person) *tx.Tx[Conn, tx.Unit, cache.Error] {
	return tx.From(func(conn *Conn) tx.Result[tx.Unit, cache.Error] {
		raw, err := json.Marshal(p)
		if err != nil {
			return tx.Err[tx.Unit](cache.Error{Detail: err.Error()})
		}
		if err := conn.client.Set(conn.ctx, key(id), raw, 0).Err(); err != nil {
			return tx.Err[tx.Unit](cache.Error{Detail: err.Error()})
		}
		return tx.Ok[tx.Unit, cache.Error](tx.Unit{})
	})
}

func (c *Cao) Unload(id person.ID) *tx.Tx[Conn, tx.Unit, cache.Error] {
	return tx.From(func(conn *Conn) tx.Result[tx.Unit, cache.Error] {
		if err := conn.client.Del(conn.ctx, key(id)).Err(); err != nil {
			return tx.Err[tx.Unit](cache.Error{Detail: err.Error()})
		}
		return tx.Ok[tx.Unit, cache.Error](tx.Unit{})
	})
}
