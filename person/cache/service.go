// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cache

import (
	"context"
	"time"

	"go.uber.org/zap"

	"code.hybscloud.com/tx/person"
	"code.hybscloud.com/tx/person/dao"
	"code.hybscloud.com/tx/person/service"
)

// Service mirrors registry entities into a cache around the underlying
// store service. The store stays authoritative: reads consult the cache
// first and back-fill on a miss, writes go to the store and then warm the
// cache, deletes drop the cache entry before touching the store so a
// failed delete can never leave a stale entry behind.
type Service[Ctx, Conn any] struct {
	svc *service.Service[Ctx]
	cao Cao[Conn]
	log *zap.Logger
}

// NewService decorates svc with cache-aside behavior over cao.
func NewService[Ctx, Conn any](svc *service.Service[Ctx], cao Cao[Conn], log *zap.Logger) *Service[Ctx, Conn] {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service[Ctx, Conn]{svc: svc, cao: cao, log: log}
}

// Register stores a new person and loads it into the cache.
func (s *Service[Ctx, Conn]) Register(ctx context.Context, name string, birth time.Time, death *time.Time, data string) (person.ID, person.Person, error) {
	id, p, err := s.svc.Register(ctx, name, birth, death, data)
	if err != nil {
		return 0, person.Person{}, err
	}

	if _, cerr := RunTx(s.cao, ctx, s.cao.Load(id, p)); cerr != nil {
		return 0, person.Person{}, service.Error{Kind: service.KindUnavailable, Detail: cerr.Error()}
	}
	s.log.Debug("load person to cache", zap.Int64("id", int64(id)))

	return id, p, nil
}

// Find returns the person registered under id, consulting the cache first
// and back-filling it on a miss.
func (s *Service[Ctx, Conn]) Find(ctx context.Context, id person.ID) (*person.Person, error) {
	cached, cerr := RunTx(s.cao, ctx, s.cao.Find(id))
	if cerr != nil {
		return nil, service.Error{Kind: service.KindUnavailable, Detail: cerr.Error()}
	}
	if cached != nil {
		s.log.Debug("cache hit", zap.Int64("id", int64(id)))
		return cached, nil
	}
	s.log.Debug("cache miss", zap.Int64("id", int64(id)))

	p, err := s.svc.Find(ctx, id)
	if err != nil || p == nil {
		return p, err
	}

	if _, cerr := RunTx(s.cao, ctx, s.cao.Load(id, *p)); cerr != nil {
		return nil, service.Error{Kind: service.KindUnavailable, Detail: cerr.Error()}
	}
	s.log.Debug("load person to cache", zap.Int64("id", int64(id)))

	return p, nil
}

// BatchImport stores all persons in one transaction, then warms the cache
// with every imported entity.
func (s *Service[Ctx, Conn]) BatchImport(ctx context.Context, persons []person.Person) ([]person.ID, error) {
	ids, err := s.svc.BatchImport(ctx, persons)
	if err != nil {
		return nil, err
	}

	for i, id := range ids {
		if _, cerr := RunTx(s.cao, ctx, s.cao.Load(id, persons[i])); cerr != nil {
			return nil, service.Error{Kind: service.KindUnavailable, Detail: cerr.Error()}
		}
	}
	s.log.Debug("load persons to cache", zap.Int("count", len(ids)))

	return ids, nil
}

// ListAll returns every registered person and warms the cache with each.
func (s *Service[Ctx, Conn]) ListAll(ctx context.Context) ([]dao.Record, error) {
	all, err := s.svc.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	for _, rec := range all {
		if _, cerr := RunTx(s.cao, ctx, s.cao.Load(rec.ID, rec.Person)); cerr != nil {
			return nil, service.Error{Kind: service.KindUnavailable, Detail: cerr.Error()}
		}
	}
	s.log.Debug("load all persons to cache", zap.Int("count", len(all)))

	return all, nil
}

// Unregister drops the cache entry, then removes the person from the
// store. Unloading first keeps the cache clean even when the store delete
// fails afterwards.
func (s *Service[Ctx, Conn]) Unregister(ctx context.Context, id person.ID) error {
	if _, cerr := RunTx(s.cao, ctx, s.cao.Unload(id)); cerr != nil {
		return service.Error{Kind: service.KindUnavailable, Detail: cerr.Error()}
	}
	s.log.Debug("unload person from cache", zap.Int64("id", int64(id)))

	return s.svc.Unregister(ctx, id)
}
