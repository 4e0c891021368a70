// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"path"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*
var schemaFiles embed.FS

func loadSchema(s string) (io.ReadCloser, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, err
	}
	return schemaFiles.Open(path.Join(u.Host, u.Path))
}

func init() {
	jsonschema.Loaders["embedfs"] = loadSchema
}

// Validate checks r against the embedded config schema.
func Validate(r io.Reader) error {
	sch, err := jsonschema.Compile("embedfs://schemas/config.schema.json")
	if err != nil {
		return err
	}

	var v any
	if err := json.NewDecoder(r).Decode(&v); err != nil {
		return fmt.Errorf("config: decoding for validation: %w", err)
	}

	if err := sch.Validate(v); err != nil {
		return fmt.Errorf("config: %#v", err)
	}
	return nil
}
