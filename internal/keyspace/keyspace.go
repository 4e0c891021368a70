// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package keyspace implements the 16-database keyspace: key/value storage
// with a parallel key/expiry mapping, lazy expiry on access, and the
// type-aware create-on-absent convenience operations the command dispatcher
// builds on.
package keyspace

import (
	"sync"
	"time"

	"github.com/rcache-project/rcache/internal/value"
)

// NumDBs is the fixed number of logical databases, addressed 0..15.
const NumDBs = 16

// DB is one logical database: a key/value map and a parallel key/expiry map.
// A key appears in ExpireAt only if it carries a TTL.
type DB struct {
	Data     map[string]value.Value
	ExpireAt map[string]int64 // key -> absolute expiry, ms since Unix epoch
}

func newDB() *DB {
	return &DB{
		Data:     make(map[string]value.Value),
		ExpireAt: make(map[string]int64),
	}
}

// Keyspace is the whole store: 16 databases plus the replication metadata
// record, guarded by a single mutual-exclusion lock. Every exported method
// below assumes the caller already holds that lock for the duration of one
// command or maintenance cycle. Keyspace never locks internally, so that a
// handler spanning several of these calls observes one consistent state.
type Keyspace struct {
	mu          sync.Mutex
	DBs         [NumDBs]*DB
	Replication Replication
	nowMs       func() int64
}

// New creates an empty keyspace (16 empty databases, master replication role).
func New() *Keyspace {
	ks := &Keyspace{
		Replication: NewMasterReplication(),
		nowMs:       defaultNowMs,
	}
	for i := range ks.DBs {
		ks.DBs[i] = newDB()
	}
	return ks
}

func defaultNowMs() int64 { return time.Now().UnixMilli() }

func (ks *Keyspace) Lock()   { ks.mu.Lock() }
func (ks *Keyspace) Unlock() { ks.mu.Unlock() }

func validIndex(db int) bool { return db >= 0 && db < NumDBs }

func (ks *Keyspace) db(idx int) (*DB, error) {
	if !validIndex(idx) {
		return nil, value.NewInvalidIndex(idx)
	}
	return ks.DBs[idx], nil
}

// lazyExpire removes key from d if it carries a TTL that has elapsed
// (wall-clock comparison against milliseconds since the Unix epoch).
func (ks *Keyspace) lazyExpire(d *DB, key string) {
	ts, hasTTL := d.ExpireAt[key]
	if hasTTL && ts <= ks.nowMs() {
		delete(d.Data, key)
		delete(d.ExpireAt, key)
	}
}

// Get returns the current value for (db, key), running lazy expiry first.
// A nil Value with a nil error means "absent". It also serves as get_mut:
// Value wraps a pointer to the concrete variant, so callers may mutate it
// directly.
func (ks *Keyspace) Get(db int, key []byte) (value.Value, error) {
	d, err := ks.db(db)
	if err != nil {
		return nil, err
	}
	k := string(key)
	ks.lazyExpire(d, k)
	return d.Data[k], nil
}

// Insert replaces any existing entry for (db, key) and clears any TTL it
// carried, matching SET's "clears a prior TTL" behaviour.
func (ks *Keyspace) Insert(db int, key []byte, v value.Value) error {
	d, err := ks.db(db)
	if err != nil {
		return err
	}
	k := string(key)
	delete(d.ExpireAt, k)
	d.Data[k] = v
	return nil
}

// Remove deletes (db, key) from both maps, returning the prior value if any.
func (ks *Keyspace) Remove(db int, key []byte) (value.Value, error) {
	d, err := ks.db(db)
	if err != nil {
		return nil, err
	}
	k := string(key)
	ks.lazyExpire(d, k)
	v, existed := d.Data[k]
	if !existed {
		return nil, nil
	}
	delete(d.Data, k)
	delete(d.ExpireAt, k)
	return v, nil
}

// Contains reports whether (db, key) currently holds a value, after lazy expiry.
func (ks *Keyspace) Contains(db int, key []byte) (bool, error) {
	d, err := ks.db(db)
	if err != nil {
		return false, err
	}
	k := string(key)
	ks.lazyExpire(d, k)
	_, ok := d.Data[k]
	return ok, nil
}

// ExpireCount reports how many keys in db currently carry a TTL, for the
// admin surface's keyspace summary. It does not run lazy expiry itself, so
// the count may include keys whose TTL has elapsed but haven't been
// touched since.
func (ks *Keyspace) ExpireCount(db int) int {
	if !validIndex(db) {
		return 0
	}
	return len(ks.DBs[db].ExpireAt)
}

// Keys enumerates the keys currently present in db, in unspecified order.
func (ks *Keyspace) Keys(db int) ([][]byte, error) {
	d, err := ks.db(db)
	if err != nil {
		return nil, err
	}
	out := make([][]byte, 0, len(d.Data))
	for k := range d.Data {
		out = append(out, []byte(k))
	}
	return out, nil
}

// GetTyped fetches (db, key) if present and checks its Kind, returning
// WrongType on a mismatch. found is false (with a nil error) when the key
// is simply absent.
func (ks *Keyspace) GetTyped(db int, key []byte, kind value.Kind) (v value.Value, found bool, err error) {
	d, err := ks.db(db)
	if err != nil {
		return nil, false, err
	}
	k := string(key)
	ks.lazyExpire(d, k)
	v, ok := d.Data[k]
	if !ok {
		return nil, false, nil
	}
	if v.Kind() != kind {
		return nil, false, value.NewWrongType()
	}
	return v, true, nil
}

// GetOrCreate fetches (db, key), type-checking it if present, or creates and
// stores an empty value of the requested kind if absent.
func (ks *Keyspace) GetOrCreate(db int, key []byte, kind value.Kind) (value.Value, error) {
	d, err := ks.db(db)
	if err != nil {
		return nil, err
	}
	k := string(key)
	ks.lazyExpire(d, k)
	v, ok := d.Data[k]
	if !ok {
		nv := newEmpty(kind)
		d.Data[k] = nv
		return nv, nil
	}
	if v.Kind() != kind {
		return nil, value.NewWrongType()
	}
	return v, nil
}

// Clone returns a deep copy of ks, safe to encode after the caller releases
// the keyspace lock: no returned value shares storage with ks. Callers hold
// ks.Lock() for the duration of this call, then run the (slow) snapshot
// encode unlocked.
func (ks *Keyspace) Clone() *Keyspace {
	out := &Keyspace{
		Replication: ks.Replication,
		nowMs:       ks.nowMs,
	}
	for i, d := range ks.DBs {
		nd := newDB()
		for k, v := range d.Data {
			nd.Data[k] = value.Clone(v)
		}
		for k, ts := range d.ExpireAt {
			nd.ExpireAt[k] = ts
		}
		out.DBs[i] = nd
	}
	out.Replication.Master.Slaves = append([]NestedSlaveInfo(nil), ks.Replication.Master.Slaves...)
	return out
}

func newEmpty(kind value.Kind) value.Value {
	switch kind {
	case value.KindString:
		return value.NewString(nil)
	case value.KindList:
		return value.NewList()
	case value.KindSet:
		return value.NewSet()
	case value.KindHash:
		return value.NewHash()
	case value.KindSortedSet:
		return value.NewSortedSet()
	default:
		panic("keyspace: unknown kind")
	}
}
