// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitMissingFileIsNotAnError(t *testing.T) {
	before := Keys
	if err := Init(filepath.Join(t.TempDir(), "does-not-exist.json")); err != nil {
		t.Fatalf("missing config file should not error, got %v", err)
	}
	if Keys != before {
		t.Fatalf("Keys should be untouched when no config file is present")
	}
}

func TestInitOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{"addr": ":7000", "loglevel": "debug"}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	if err := Init(path); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if Keys.Addr != ":7000" || Keys.LogLevel != "debug" {
		t.Fatalf("unexpected Keys after Init: %+v", Keys)
	}
}

func TestInitRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"not_a_real_key": true}`), 0o644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if err := Init(path); err == nil {
		t.Fatalf("expected an error for an unknown config field")
	}
}

func TestInitRejectsInvalidLogLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"loglevel": "not-a-level"}`), 0o644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if err := Init(path); err == nil {
		t.Fatalf("expected schema validation to reject an invalid loglevel")
	}
}
