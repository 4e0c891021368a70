// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package admin implements the operator-facing HTTP surface: health,
// Prometheus metrics, and a Swagger UI. It is a second listener, entirely
// separate from the RESP/TCP listener: the wire protocol a client speaks
// to rcache is unaffected by this package existing at all.
package admin

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/rcache-project/rcache/internal/keyspace"
	"github.com/rcache-project/rcache/internal/rlog"
)

// @title                rcache admin API
// @version              1.0
// @description          Health, metrics, and keyspace introspection for a running rcache server.
// @basePath              /

// NewRouter builds the admin HTTP handler: /healthz, /metrics, a debug
// keyspace summary, and a Swagger UI over this package's own routes, all
// wrapped in a compress/recover/logging middleware stack.
func NewRouter(ks *keyspace.Keyspace, swaggerAddr string) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", healthHandler).Methods(http.MethodGet)
	r.HandleFunc("/debug/keyspace", debugKeyspaceHandler(ks)).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.PathPrefix("/swagger/").Handler(httpSwagger.Handler(
		httpSwagger.URL("http://" + swaggerAddr + "/swagger/doc.json"))).Methods(http.MethodGet)

	r.Use(handlers.CompressHandler)
	r.Use(handlers.RecoveryHandler(handlers.PrintRecoveryStack(true)))

	return handlers.CustomLoggingHandler(io.Discard, r, func(_ io.Writer, params handlers.LogFormatterParams) {
		rlog.Debugf("%s %s (%d, %.02fkb, %dms)",
			params.Request.Method, params.URL.RequestURI(),
			params.StatusCode, float32(params.Size)/1024,
			time.Since(params.TimeStamp).Milliseconds())
	})
}

// @Summary     Liveness check
// @Description Always returns 200 while the process is up; does not touch the keyspace lock.
// @Success     200 {string} string "ok"
// @Router      /healthz [get]
func healthHandler(rw http.ResponseWriter, r *http.Request) {
	rw.WriteHeader(http.StatusOK)
	rw.Write([]byte("ok"))
}

type keyspaceSummary struct {
	Databases []dbSummary `json:"databases"`
}

type dbSummary struct {
	Index       int `json:"index"`
	Keys        int `json:"keys"`
	KeysWithTTL int `json:"keys_with_ttl"`
}

// @Summary     Per-database key counts
// @Description Snapshot of how many keys (and how many carry a TTL) each of the 16 logical databases currently holds.
// @Success     200 {object} keyspaceSummary
// @Router      /debug/keyspace [get]
func debugKeyspaceHandler(ks *keyspace.Keyspace) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		ks.Lock()
		summary := keyspaceSummary{Databases: make([]dbSummary, keyspace.NumDBs)}
		for i := 0; i < keyspace.NumDBs; i++ {
			keys, _ := ks.Keys(i)
			summary.Databases[i] = dbSummary{
				Index:       i,
				Keys:        len(keys),
				KeysWithTTL: ks.ExpireCount(i),
			}
		}
		ks.Unlock()

		rw.Header().Set("Content-Type", "application/json")
		json.NewEncoder(rw).Encode(summary)
	}
}
