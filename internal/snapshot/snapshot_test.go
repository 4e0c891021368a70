// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package snapshot

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rcache-project/rcache/internal/keyspace"
	"github.com/rcache-project/rcache/internal/value"
)

func TestRoundTripAllKinds(t *testing.T) {
	ks := keyspace.New()
	ks.Insert(0, []byte("str"), value.NewString([]byte("hello")))
	ks.LPush(1, []byte("list"), []byte("a"))
	ks.RPush(1, []byte("list"), []byte("b"))
	ks.SAdd(2, []byte("set"), []byte("x"))
	ks.SAdd(2, []byte("set"), []byte("y"))
	ks.HSet(3, []byte("hash"), []byte("f1"), []byte("v1"))
	ks.ZAdd(4, []byte("zset"), []byte("m1"), 1.5)
	ks.ZAdd(4, []byte("zset"), []byte("m2"), 0.5)
	ks.SetExpireAtMs(0, []byte("str"), time.Now().Add(time.Hour).UnixMilli())

	path := filepath.Join(t.TempDir(), "snap.rdb")
	if err := Write(path, ks); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	v, err := loaded.Get(0, []byte("str"))
	if err != nil || v == nil {
		t.Fatalf("expected str to round-trip, err=%v v=%v", err, v)
	}
	if string(v.(*value.String).Data) != "hello" {
		t.Fatalf("unexpected string payload: %v", v)
	}
	ttl, _ := loaded.TTLSeconds(0, []byte("str"))
	if ttl < 0 {
		t.Fatalf("expected TTL to round-trip, got %d", ttl)
	}

	items, err := loaded.LRange(1, []byte("list"), 0, -1)
	if err != nil || len(items) != 2 || string(items[0]) != "a" || string(items[1]) != "b" {
		t.Fatalf("unexpected list round-trip: %v %v", items, err)
	}

	members, err := loaded.SMembers(2, []byte("set"))
	if err != nil || len(members) != 2 {
		t.Fatalf("unexpected set round-trip: %v %v", members, err)
	}

	hv, found, err := loaded.HGet(3, []byte("hash"), []byte("f1"))
	if err != nil || !found || string(hv) != "v1" {
		t.Fatalf("unexpected hash round-trip: %v %v %v", hv, found, err)
	}
}

func TestRoundTripReplicationTrailer(t *testing.T) {
	ks := keyspace.New()
	ks.Replication.Role = keyspace.RoleSlave
	ks.Replication.Slave = keyspace.SlaveInfo{
		MasterHost:       "10.0.0.1",
		MasterPort:       6379,
		MasterLinkStatus: "up",
	}

	path := filepath.Join(t.TempDir(), "repl.rdb")
	if err := Write(path, ks); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Replication.Role != keyspace.RoleSlave {
		t.Fatalf("expected role to round-trip as slave, got %v", loaded.Replication.Role)
	}
	if loaded.Replication.Slave.MasterHost != "10.0.0.1" || loaded.Replication.Slave.MasterPort != 6379 {
		t.Fatalf("unexpected slave info round-trip: %+v", loaded.Replication.Slave)
	}

	ks2 := keyspace.New()
	ks2.Replication.Master.Slaves = append(ks2.Replication.Master.Slaves, keyspace.NestedSlaveInfo{
		IP: "10.0.0.2", Port: 6380, Online: true, Offset: 42, LagMs: 3,
	})
	path2 := filepath.Join(t.TempDir(), "repl-master.rdb")
	if err := Write(path2, ks2); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	loaded2, err := Load(path2)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(loaded2.Replication.Master.Slaves) != 1 || loaded2.Replication.Master.Slaves[0].IP != "10.0.0.2" {
		t.Fatalf("unexpected master slave round-trip: %+v", loaded2.Replication.Master)
	}
}

func TestLoadRejectsBadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.rdb")
	if err := os.WriteFile(path, []byte("not a snapshot"), 0o640); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected an error loading a non-snapshot file")
	}
}
