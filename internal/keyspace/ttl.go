// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package keyspace

import "math"

// SetExpireAtMs sets or overwrites the TTL for (db, key), returning false
// without effect if the key does not exist.
func (ks *Keyspace) SetExpireAtMs(db int, key []byte, tsMs int64) (bool, error) {
	d, err := ks.db(db)
	if err != nil {
		return false, err
	}
	k := string(key)
	ks.lazyExpire(d, k)
	if _, ok := d.Data[k]; !ok {
		return false, nil
	}
	d.ExpireAt[k] = tsMs
	return true, nil
}

// RemoveExpire clears any TTL on (db, key), leaving the value itself intact.
func (ks *Keyspace) RemoveExpire(db int, key []byte) error {
	d, err := ks.db(db)
	if err != nil {
		return err
	}
	delete(d.ExpireAt, string(key))
	return nil
}

// TTLSeconds returns -2 if the key is absent, -1 if it has no TTL, else the
// remaining time to live rounded up to whole seconds (never negative).
func (ks *Keyspace) TTLSeconds(db int, key []byte) (int64, error) {
	d, err := ks.db(db)
	if err != nil {
		return 0, err
	}
	k := string(key)
	ks.lazyExpire(d, k)
	if _, ok := d.Data[k]; !ok {
		return -2, nil
	}
	ts, hasTTL := d.ExpireAt[k]
	if !hasTTL {
		return -1, nil
	}
	remainMs := ts - ks.nowMs()
	secs := int64(math.Ceil(float64(remainMs) / 1000))
	if secs < 0 {
		secs = 0
	}
	return secs, nil
}

// SweepExpired is the active-expiry entry point for the background worker:
// it collects every key whose TTL has elapsed across all 16 databases into
// a local buffer per database, then deletes them, bounding lock hold time
// to one pass over the expire maps rather than one lock acquisition per key.
func (ks *Keyspace) SweepExpired() (removed int) {
	now := ks.nowMs()
	for _, d := range ks.DBs {
		if len(d.ExpireAt) == 0 {
			continue
		}
		expired := make([]string, 0)
		for k, ts := range d.ExpireAt {
			if ts <= now {
				expired = append(expired, k)
			}
		}
		for _, k := range expired {
			delete(d.Data, k)
			delete(d.ExpireAt, k)
			removed++
		}
	}
	return removed
}
