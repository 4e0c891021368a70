// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package main

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/gops/agent"

	"github.com/rcache-project/rcache/internal/admin"
	"github.com/rcache-project/rcache/internal/config"
	"github.com/rcache-project/rcache/internal/keyspace"
	"github.com/rcache-project/rcache/internal/rlog"
	"github.com/rcache-project/rcache/internal/server"
	"github.com/rcache-project/rcache/internal/snapshot"
	"github.com/rcache-project/rcache/pkg/runtimeEnv"
)

func main() {
	cliInit()

	if err := config.Init(flagConfigFile); err != nil {
		rlog.Fatalf("config: %s", err.Error())
	}

	if flagLogLevel != "" {
		config.Keys.LogLevel = flagLogLevel
	}
	if flagAdminAddr != "" {
		config.Keys.AdminAddr = flagAdminAddr
	}
	rlog.SetLogLevel(config.Keys.LogLevel)

	if flagGops {
		if err := agent.Listen(agent.Options{}); err != nil {
			rlog.Fatalf("gops/agent.Listen failed: %s", err.Error())
		}
	}

	rdbPath := config.Keys.RdbPath
	if flagRdbPath != "" {
		rdbPath = flagRdbPath
	}

	ks, err := loadOrCreateKeyspace(rdbPath)
	if err != nil {
		rlog.Fatalf("rcache: loading snapshot %q: %s", rdbPath, err.Error())
	}

	addr := net.JoinHostPort("", strconv.Itoa(flagPort))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		rlog.Fatalf("rcache: binding %s: %s", addr, err.Error())
	}

	adminLn, err := net.Listen("tcp", config.Keys.AdminAddr)
	if err != nil {
		rlog.Fatalf("rcache: binding admin listener %s: %s", config.Keys.AdminAddr, err.Error())
	}

	if err := runtimeEnv.DropPrivileges(&config.Keys); err != nil {
		rlog.Fatalf("rcache: dropping privileges: %s", err.Error())
	}

	workers, err := server.StartWorkers(ks, rdbPath, config.Keys.SweepInterval, config.Keys.SnapshotInterval)
	if err != nil {
		rlog.Fatalf("rcache: starting background workers: %s", err.Error())
	}

	go server.Serve(ln, ks)

	adminSrv := &http.Server{
		Handler:      admin.NewRouter(ks, config.Keys.AdminAddr),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go func() {
		if err := adminSrv.Serve(adminLn); err != nil && err != http.ErrServerClosed {
			rlog.Errorf("rcache: admin listener stopped: %s", err.Error())
		}
	}()

	rlog.Infof("rcache: listening on %s (admin on %s)", ln.Addr(), adminLn.Addr())
	runtimeEnv.SystemdNotify(true, "running")

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs

	rlog.Info("rcache: shutting down")
	runtimeEnv.SystemdNotify(false, "shutting down")

	ln.Close()
	adminSrv.Close()
	if err := workers.Shutdown(); err != nil {
		rlog.Errorf("rcache: stopping background workers: %s", err.Error())
	}
	if err := server.WriteSnapshotNow(ks, rdbPath); err != nil {
		rlog.Errorf("rcache: final snapshot write failed: %s", err.Error())
	}

	rlog.Info("rcache: graceful shutdown complete")
}

// loadOrCreateKeyspace preloads rdbPath if it exists; a missing file starts
// empty, and a corrupt file is a fatal startup error.
func loadOrCreateKeyspace(rdbPath string) (*keyspace.Keyspace, error) {
	ks, err := snapshot.Load(rdbPath)
	if err == nil {
		rlog.Infof("rcache: loaded snapshot from %s", rdbPath)
		return ks, nil
	}
	if os.IsNotExist(err) {
		return keyspace.New(), nil
	}
	return nil, fmt.Errorf("corrupt snapshot: %w", err)
}
