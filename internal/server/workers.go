// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package server

import (
	"time"

	cclog "github.com/ClusterCockpit/cc-lib/v2/ccLogger"
	"github.com/go-co-op/gocron/v2"

	"github.com/rcache-project/rcache/internal/keyspace"
	"github.com/rcache-project/rcache/internal/snapshot"
)

// Workers owns the one gocron.Scheduler that drives the two background
// lifecycle tasks: the periodic expiration sweep and the periodic snapshot
// writer. One scheduler, one NewJob call per periodic concern. The worker
// loop logs through ccLogger; rlog stays the logger of the connection path
// and the CLI bootstrap.
type Workers struct {
	s gocron.Scheduler
}

// StartWorkers registers and starts the sweep and snapshot jobs against ks,
// persisting snapshots to rdbPath. Both intervals are caller-supplied Go
// duration strings (config.Keys.SweepInterval / SnapshotInterval).
func StartWorkers(ks *keyspace.Keyspace, rdbPath, sweepInterval, snapshotInterval string) (*Workers, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	sweepEvery, err := time.ParseDuration(sweepInterval)
	if err != nil {
		return nil, err
	}
	snapshotEvery, err := time.ParseDuration(snapshotInterval)
	if err != nil {
		return nil, err
	}

	if _, err := s.NewJob(
		gocron.DurationJob(sweepEvery),
		gocron.NewTask(func() { runSweep(ks) }),
	); err != nil {
		return nil, err
	}

	if _, err := s.NewJob(
		gocron.DurationJob(snapshotEvery),
		gocron.NewTask(func() { runSnapshot(ks, rdbPath) }),
	); err != nil {
		return nil, err
	}

	s.Start()
	return &Workers{s: s}, nil
}

// Shutdown stops both jobs. It does not itself write a final snapshot;
// callers that want one should call WriteSnapshotNow after Shutdown.
func (w *Workers) Shutdown() error {
	return w.s.Shutdown()
}

// runSweep holds the keyspace lock only long enough to collect and delete
// expired keys, keeping the lock hold time bounded.
func runSweep(ks *keyspace.Keyspace) {
	ks.Lock()
	removed := ks.SweepExpired()
	ks.Unlock()
	if removed > 0 {
		cclog.Debugf("server: expiration sweep removed %d keys", removed)
	}
}

// runSnapshot clones the keyspace under the lock, then encodes it to disk
// with the lock released, so that ongoing command execution is never
// blocked by disk I/O.
func runSnapshot(ks *keyspace.Keyspace, rdbPath string) {
	ks.Lock()
	clone := ks.Clone()
	ks.Unlock()
	if err := snapshot.Write(rdbPath, clone); err != nil {
		cclog.Errorf("server: snapshot write failed: %s", err.Error())
	} else {
		cclog.Debugf("server: snapshot written to %s", rdbPath)
	}
}

// WriteSnapshotNow performs one synchronous snapshot write, used for the
// final snapshot on graceful shutdown.
func WriteSnapshotNow(ks *keyspace.Keyspace, rdbPath string) error {
	ks.Lock()
	clone := ks.Clone()
	ks.Unlock()
	return snapshot.Write(rdbPath, clone)
}
