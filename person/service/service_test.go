// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code.hybscloud.com/tx"
	"code.hybscloud.com/tx/person"
	"code.hybscloud.com/tx/person/dao"
	"code.hybscloud.com/tx/person/service"
	"code.hybscloud.com/tx/person/usecase"
)

// memDao is an in-memory DAO over unit sessions.
type memDao struct {
	lastID  person.ID
	data    []dao.Record
	failIns *dao.Error // when set, Insert fails with this error
}

func (m *memDao) Insert(p person.Person) *tx.Tx[tx.Unit, person.ID, dao.Error] {
	return tx.From(func(_ *tx.Unit) tx.Result[person.ID, dao.Error] {
		if m.failIns != nil {
			return tx.Err[person.ID](*m.failIns)
		}
		m.lastID++
		m.data = append(m.data, dao.Record{ID: m.lastID, Person: p})
		return tx.Ok[person.ID, dao.Error](m.lastID)
	})
}

func (m *memDao) Fetch(id person.ID) *tx.Tx[tx.Unit, *person.Person, dao.Error] {
	return tx.From(func(_ *tx.Unit) tx.Result[*person.Person, dao.Error] {
		for i := range m.data {
			if m.data[i].ID == id {
				p := m.data[i].Person
				return tx.Ok[*person.Person, dao.Error](&p)
			}
		}
		return tx.Ok[*person.Person, dao.Error](nil)
	})
}

func (m *memDao) Select() *tx.Tx[tx.Unit, []dao.Record, dao.Error] {
	return tx.From(func(_ *tx.Unit) tx.Result[[]dao.Record, dao.Error] {
		out := make([]dao.Record, len(m.data))
		copy(out, m.data)
		return tx.Ok[[]dao.Record, dao.Error](out)
	})
}

func (m *memDao) Save(id person.ID, p person.Person) *tx.Tx[tx.Unit, tx.Unit, dao.Error] {
	return tx.From(func(_ *tx.Unit) tx.Result[tx.Unit, dao.Error] {
		for i := range m.data {
			if m.data[i].ID == id {
				m.data[i].Person = p
			}
		}
		return tx.Ok[tx.Unit, dao.Error](tx.Unit{})
	})
}

func (m *memDao) Delete(id person.ID) *tx.Tx[tx.Unit, tx.Unit, dao.Error] {
	return tx.From(func(_ *tx.Unit) tx.Result[tx.Unit, dao.Error] {
		kept := m.data[:0]
		for _, r := range m.data {
			if r.ID != id {
				kept = append(kept, r)
			}
		}
		m.data = kept
		return tx.Ok[tx.Unit, dao.Error](tx.Unit{})
	})
}

// memStore counts session lifecycle calls.
type memStore struct {
	begins, commits, rollbacks int
	beginErr                   error
}

func (s *memStore) Begin(context.Context) (*tx.Unit, error) {
	if s.beginErr != nil {
		return nil, s.beginErr
	}
	s.begins++
	return &tx.Unit{}, nil
}

func (s *memStore) Commit(*tx.Unit) error {
	s.commits++
	return nil
}

func (s *memStore) Rollback(*tx.Unit) error {
	s.rollbacks++
	return nil
}

// recordingNotifier captures admin notifications.
type recordingNotifier struct {
	to, body []string
}

func (r *recordingNotifier) Notify(_ context.Context, to, message string) error {
	r.to = append(r.to, to)
	r.body = append(r.body, message)
	return nil
}

func newService(d *memDao, st *memStore, n *recordingNotifier) *service.Service[tx.Unit] {
	return service.New[tx.Unit](st, usecase.New[tx.Unit](d, nil), n, nil)
}

func TestRegisterCommits(t *testing.T) {
	d := &memDao{}
	st := &memStore{}
	n := &recordingNotifier{}
	svc := newService(d, st, n)

	id, p, err := svc.Register(context.Background(), "cutsea", person.Date(1970, time.November, 6), nil, "rustacean")
	require.NoError(t, err)
	assert.Equal(t, person.ID(1), id)
	assert.Equal(t, "cutsea", p.Name)
	assert.Equal(t, 1, st.begins)
	assert.Equal(t, 1, st.commits)
	assert.Zero(t, st.rollbacks)
	assert.Empty(t, n.to)
}

func TestFailedTransactionRollsBackAndNotifies(t *testing.T) {
	cause := dao.Error{Kind: dao.KindInsert, Detail: "duplicate"}
	d := &memDao{failIns: &cause}
	st := &memStore{}
	n := &recordingNotifier{}
	svc := newService(d, st, n)

	_, _, err := svc.Register(context.Background(), "cutsea", person.Date(1970, time.November, 6), nil, "")
	require.Error(t, err)

	var se service.Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, service.KindTransactionFailed, se.Kind)
	assert.Equal(t, usecase.Error{Kind: usecase.KindEntryAndVerifyFailed, Cause: cause}, se.Cause)

	assert.Equal(t, 1, st.rollbacks)
	assert.Zero(t, st.commits)
	require.Len(t, n.to, 1)
	assert.Equal(t, "admin", n.to[0])
	assert.Contains(t, n.body[0], "entry and verify failed")
}

func TestBeginFailureIsUnavailable(t *testing.T) {
	st := &memStore{beginErr: errors.New("no connection")}
	n := &recordingNotifier{}
	svc := newService(&memDao{}, st, n)

	_, err := svc.Find(context.Background(), 1)
	require.Error(t, err)

	var se service.Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, service.KindUnavailable, se.Kind)
	assert.Empty(t, n.to)
}

func TestBatchImportSingleTransaction(t *testing.T) {
	d := &memDao{}
	st := &memStore{}
	svc := newService(d, st, &recordingNotifier{})

	death := func(y int, m time.Month, day int) *time.Time {
		t := person.Date(y, m, day)
		return &t
	}
	persons := []person.Person{
		person.New("Abel", person.Date(1802, time.August, 5), death(1829, time.April, 6), "Abel's theorem"),
		person.New("Euler", person.Date(1707, time.April, 15), death(1783, time.September, 18), "Euler's identity"),
		person.New("Galois", person.Date(1811, time.October, 25), death(1832, time.May, 31), "Group Theory"),
		person.New("Gauss", person.Date(1777, time.April, 30), death(1855, time.February, 23), "King of Math"),
	}

	ids, err := svc.BatchImport(context.Background(), persons)
	require.NoError(t, err)
	assert.Equal(t, []person.ID{1, 2, 3, 4}, ids)
	assert.Equal(t, 1, st.begins)
	assert.Equal(t, 1, st.commits)
	assert.Len(t, d.data, 4)
}

func TestListAllAndUnregister(t *testing.T) {
	d := &memDao{}
	st := &memStore{}
	svc := newService(d, st, &recordingNotifier{})

	_, err := svc.BatchImport(context.Background(), []person.Person{
		person.New("Alice", person.Date(2012, time.November, 2), nil, ""),
		person.New("Bob", person.Date(1995, time.November, 6), nil, ""),
	})
	require.NoError(t, err)

	all, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)

	require.NoError(t, svc.Unregister(context.Background(), all[0].ID))

	rest, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, "Bob", rest[0].Person.Name)
}

func TestDeath(t *testing.T) {
	d := &memDao{}
	st := &memStore{}
	svc := newService(d, st, &recordingNotifier{})

	id, _, err := svc.Register(context.Background(), "Alice", person.Date(2012, time.November, 2), nil, "")
	require.NoError(t, err)

	require.NoError(t, svc.Death(context.Background(), id, person.Date(2020, time.December, 30)))

	p, err := svc.Find(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	require.NotNil(t, p.DeathDate)
	assert.Equal(t, person.Date(2020, time.December, 30), *p.DeathDate)
}
