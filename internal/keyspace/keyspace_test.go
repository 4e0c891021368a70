// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package keyspace

import (
	"testing"

	"github.com/rcache-project/rcache/internal/value"
)

func TestInsertAndGet(t *testing.T) {
	ks := New()
	if err := ks.Insert(0, []byte("k"), value.NewString([]byte("v"))); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, err := ks.Get(0, []byte("k"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s, ok := v.(*value.String)
	if !ok || string(s.Data) != "v" {
		t.Fatalf("unexpected value: %v", v)
	}
}

func TestInsertClearsPriorTTL(t *testing.T) {
	ks := New()
	ks.nowMs = func() int64 { return 1000 }
	ks.Insert(0, []byte("k"), value.NewString([]byte("v")))
	ks.SetExpireAtMs(0, []byte("k"), 5000)

	ttl, _ := ks.TTLSeconds(0, []byte("k"))
	if ttl < 0 {
		t.Fatalf("expected a TTL, got %d", ttl)
	}

	ks.Insert(0, []byte("k"), value.NewString([]byte("v2")))
	ttl, _ = ks.TTLSeconds(0, []byte("k"))
	if ttl != -1 {
		t.Fatalf("expected no TTL after re-insert, got %d", ttl)
	}
}

func TestInvalidIndex(t *testing.T) {
	ks := New()
	if _, err := ks.Get(16, []byte("k")); !value.IsKind(err, value.ErrInvalidIndex) {
		t.Fatalf("expected InvalidIndex, got %v", err)
	}
	if _, err := ks.Get(-1, []byte("k")); !value.IsKind(err, value.ErrInvalidIndex) {
		t.Fatalf("expected InvalidIndex, got %v", err)
	}
}

func TestLazyExpiryOnAccess(t *testing.T) {
	ks := New()
	clock := int64(1000)
	ks.nowMs = func() int64 { return clock }

	ks.Insert(0, []byte("k"), value.NewString([]byte("v")))
	ks.SetExpireAtMs(0, []byte("k"), 1500)

	clock = 2000 // advance past expiry
	v, err := ks.Get(0, []byte("k"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != nil {
		t.Fatalf("expected expired key to read as absent, got %v", v)
	}

	exists, _ := ks.Contains(0, []byte("k"))
	if exists {
		t.Fatalf("expected key removed from data map after lazy expiry")
	}
}

func TestTTLSecondsBoundaries(t *testing.T) {
	ks := New()
	ks.nowMs = func() int64 { return 0 }

	ttl, _ := ks.TTLSeconds(0, []byte("missing"))
	if ttl != -2 {
		t.Fatalf("expected -2 for missing key, got %d", ttl)
	}

	ks.Insert(0, []byte("k"), value.NewString([]byte("v")))
	ttl, _ = ks.TTLSeconds(0, []byte("k"))
	if ttl != -1 {
		t.Fatalf("expected -1 for no TTL, got %d", ttl)
	}

	ks.SetExpireAtMs(0, []byte("k"), 1000)
	ttl, _ = ks.TTLSeconds(0, []byte("k"))
	if ttl != 1 {
		t.Fatalf("expected 1 second remaining, got %d", ttl)
	}
}

func TestSweepExpiredBoundsToExpiredKeys(t *testing.T) {
	ks := New()
	clock := int64(0)
	ks.nowMs = func() int64 { return clock }

	ks.Insert(0, []byte("a"), value.NewString([]byte("1")))
	ks.SetExpireAtMs(0, []byte("a"), 100)
	ks.Insert(0, []byte("b"), value.NewString([]byte("2")))
	ks.SetExpireAtMs(0, []byte("b"), 100000)

	clock = 101
	removed := ks.SweepExpired()
	if removed != 1 {
		t.Fatalf("expected 1 expired key removed, got %d", removed)
	}
	if exists, _ := ks.Contains(0, []byte("a")); exists {
		t.Fatalf("expected a removed")
	}
	if exists, _ := ks.Contains(0, []byte("b")); !exists {
		t.Fatalf("expected b to remain")
	}
}

func TestCloneIsIndependentOfOriginal(t *testing.T) {
	ks := New()
	ks.Insert(0, []byte("k"), value.NewString([]byte("v")))
	ks.LPush(1, []byte("l"), []byte("a"))

	clone := ks.Clone()

	ks.Insert(0, []byte("k"), value.NewString([]byte("changed")))
	ks.LPush(1, []byte("l"), []byte("b"))

	v, _ := clone.Get(0, []byte("k"))
	if string(v.(*value.String).Data) != "v" {
		t.Fatalf("clone observed a mutation made to the original after Clone: %v", v)
	}
	items, _ := clone.LRange(1, []byte("l"), 0, -1)
	if len(items) != 1 || string(items[0]) != "a" {
		t.Fatalf("clone's list observed the original's later push: %v", items)
	}
}

func TestTypedWrongType(t *testing.T) {
	ks := New()
	ks.Insert(0, []byte("k"), value.NewString([]byte("v")))
	if _, err := ks.LPush(0, []byte("k"), []byte("x")); !value.IsKind(err, value.ErrWrongType) {
		t.Fatalf("expected WrongType, got %v", err)
	}
}
