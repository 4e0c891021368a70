// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package command

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	commandsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rcache",
		Name:      "commands_total",
		Help:      "Total number of dispatched commands, by verb and outcome.",
	}, []string{"verb", "outcome"})

	commandDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "rcache",
		Name:      "command_duration_seconds",
		Help:      "Time spent executing a command handler under the keyspace lock, by verb.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"verb"})
)

func init() {
	prometheus.MustRegister(commandsTotal, commandDuration)
}

func observe(verb string, start time.Time, resp interface{ IsError() bool }) {
	outcome := "ok"
	if resp.IsError() {
		outcome = "error"
	}
	commandsTotal.WithLabelValues(strings.ToUpper(verb), outcome).Inc()
	commandDuration.WithLabelValues(strings.ToUpper(verb)).Observe(time.Since(start).Seconds())
}
