// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package config holds the Keys struct the CLI entrypoint populates from
// defaults, then optionally overrides with a JSON config file validated
// against the embedded schema.
package config

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/rcache-project/rcache/internal/rlog"
)

// Keys is the live, process-wide configuration. It starts out holding the
// defaults below; Init overwrites fields present in the config file.
var Keys = Config{
	Addr:             ":6379",
	AdminAddr:        ":6380",
	RdbPath:          "rcache.rdb",
	SweepInterval:    "200ms",
	SnapshotInterval: "10s",
	LogLevel:         "info",
}

// Config is the on-disk shape of the (optional) JSON config file, plus the
// defaults above. Every field has a default, so a missing config file is not
// an error.
type Config struct {
	Addr             string `json:"addr"`
	AdminAddr        string `json:"admin_addr"`
	RdbPath          string `json:"rdb_path"`
	SweepInterval    string `json:"sweep_interval"`
	SnapshotInterval string `json:"snapshot_interval"`
	LogLevel         string `json:"loglevel"`
	User             string `json:"user"`
	Group            string `json:"group"`
}

// Init overrides Keys with the contents of configFile, if it exists. A
// missing file is not an error (the defaults above apply); an invalid file
// (bad JSON, unknown field, or schema violation) is fatal and should cause
// the caller to exit non-zero.
func Init(configFile string) error {
	raw, err := os.ReadFile(configFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := Validate(bytes.NewReader(raw)); err != nil {
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&Keys); err != nil {
		return err
	}

	rlog.Infof("config: loaded %s", configFile)
	return nil
}
