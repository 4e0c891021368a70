// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package main

import (
	"flag"
	"strconv"
)

var (
	flagGops                                                bool
	flagPort                                                int
	flagRdbPath, flagConfigFile, flagLogLevel, flagAdminAddr string
)

func cliInit() {
	flag.IntVar(&flagPort, "port", 6379, "TCP port the RESP listener binds to")
	flag.StringVar(&flagRdbPath, "rdb_path", "", "Path to a snapshot file to preload at startup (overrides the config/default path)")
	flag.StringVar(&flagConfigFile, "config", "./config.json", "Specify alternative path to `config.json`")
	flag.StringVar(&flagLogLevel, "loglevel", "", "Sets the logging level: `[debug, info, warn, err, crit]` (overrides config)")
	flag.StringVar(&flagAdminAddr, "admin_addr", "", "Address the admin HTTP listener binds to (overrides config)")
	flag.BoolVar(&flagGops, "gops", false, "Listen via github.com/google/gops/agent (for debugging)")
	flag.Parse()

	// A bare positional port (e.g. `rcache 6380`) is accepted alongside -port.
	if flag.NArg() > 0 {
		if p, err := strconv.Atoi(flag.Arg(0)); err == nil {
			flagPort = p
		}
	}
}
