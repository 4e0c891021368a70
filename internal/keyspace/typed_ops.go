// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package keyspace

import "github.com/rcache-project/rcache/internal/value"

func (ks *Keyspace) LPush(db int, key, v []byte) (int, error) {
	val, err := ks.GetOrCreate(db, key, value.KindList)
	if err != nil {
		return 0, err
	}
	return val.(*value.List).LPush(v), nil
}

func (ks *Keyspace) RPush(db int, key, v []byte) (int, error) {
	val, err := ks.GetOrCreate(db, key, value.KindList)
	if err != nil {
		return 0, err
	}
	return val.(*value.List).RPush(v), nil
}

// LPop returns the popped item and whether the key (and the list) existed.
func (ks *Keyspace) LPop(db int, key []byte) ([]byte, bool, error) {
	val, found, err := ks.GetTyped(db, key, value.KindList)
	if err != nil || !found {
		return nil, false, err
	}
	v, ok := val.(*value.List).LPop()
	return v, ok, nil
}

func (ks *Keyspace) RPop(db int, key []byte) ([]byte, bool, error) {
	val, found, err := ks.GetTyped(db, key, value.KindList)
	if err != nil || !found {
		return nil, false, err
	}
	v, ok := val.(*value.List).RPop()
	return v, ok, nil
}

func (ks *Keyspace) LPopN(db int, key []byte, n int64) ([][]byte, error) {
	val, found, err := ks.GetTyped(db, key, value.KindList)
	if err != nil || !found {
		return [][]byte{}, err
	}
	return val.(*value.List).LPopN(n), nil
}

func (ks *Keyspace) RPopN(db int, key []byte, n int64) ([][]byte, error) {
	val, found, err := ks.GetTyped(db, key, value.KindList)
	if err != nil || !found {
		return [][]byte{}, err
	}
	return val.(*value.List).RPopN(n), nil
}

func (ks *Keyspace) LRange(db int, key []byte, start, stop int64) ([][]byte, error) {
	val, found, err := ks.GetTyped(db, key, value.KindList)
	if err != nil || !found {
		return [][]byte{}, err
	}
	return val.(*value.List).LRange(start, stop), nil
}

func (ks *Keyspace) SAdd(db int, key, member []byte) (bool, error) {
	val, err := ks.GetOrCreate(db, key, value.KindSet)
	if err != nil {
		return false, err
	}
	return val.(*value.Set).SAdd(member), nil
}

func (ks *Keyspace) SMembers(db int, key []byte) ([][]byte, error) {
	val, found, err := ks.GetTyped(db, key, value.KindSet)
	if err != nil || !found {
		return [][]byte{}, err
	}
	return val.(*value.Set).Members(), nil
}

func (ks *Keyspace) HSet(db int, key, field, v []byte) (bool, error) {
	val, err := ks.GetOrCreate(db, key, value.KindHash)
	if err != nil {
		return false, err
	}
	return val.(*value.Hash).HSet(field, v), nil
}

func (ks *Keyspace) HGet(db int, key, field []byte) ([]byte, bool, error) {
	val, found, err := ks.GetTyped(db, key, value.KindHash)
	if err != nil || !found {
		return nil, false, err
	}
	v, ok := val.(*value.Hash).HGet(field)
	return v, ok, nil
}

func (ks *Keyspace) HGetAll(db int, key []byte) ([][]byte, error) {
	val, found, err := ks.GetTyped(db, key, value.KindHash)
	if err != nil || !found {
		return [][]byte{}, err
	}
	return val.(*value.Hash).HGetAll(), nil
}

func (ks *Keyspace) ZAdd(db int, key, member []byte, score float64) (bool, error) {
	val, err := ks.GetOrCreate(db, key, value.KindSortedSet)
	if err != nil {
		return false, err
	}
	return val.(*value.SortedSet).ZAdd(member, score)
}
