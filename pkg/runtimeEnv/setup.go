// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package runtimeEnv covers the process/init-system boundary: dropping
// privileges once the listeners are bound, and telling systemd when the
// server is ready to accept commands.
package runtimeEnv

import (
	"fmt"
	"os"
	"os/exec"
	"os/user"
	"strconv"
	"syscall"

	"github.com/rcache-project/rcache/internal/config"
)

// DropPrivileges switches the process to the user and group named in cfg,
// skipping whichever is unset. It must run after net.Listen so the sockets
// stay usable once root is gone. The Go runtime applies setgid/setuid to
// all threads, not only the calling one.
func DropPrivileges(cfg *config.Config) error {
	if cfg.Group != "" {
		g, err := user.LookupGroup(cfg.Group)
		if err != nil {
			return fmt.Errorf("runtimeEnv: looking up group %q: %w", cfg.Group, err)
		}
		gid, err := strconv.Atoi(g.Gid)
		if err != nil {
			return fmt.Errorf("runtimeEnv: group %q has non-numeric gid %q: %w", cfg.Group, g.Gid, err)
		}
		if err := syscall.Setgid(gid); err != nil {
			return fmt.Errorf("runtimeEnv: setgid %d: %w", gid, err)
		}
	}

	if cfg.User != "" {
		u, err := user.Lookup(cfg.User)
		if err != nil {
			return fmt.Errorf("runtimeEnv: looking up user %q: %w", cfg.User, err)
		}
		uid, err := strconv.Atoi(u.Uid)
		if err != nil {
			return fmt.Errorf("runtimeEnv: user %q has non-numeric uid %q: %w", cfg.User, u.Uid, err)
		}
		if err := syscall.Setuid(uid); err != nil {
			return fmt.Errorf("runtimeEnv: setuid %d: %w", uid, err)
		}
	}

	return nil
}

// SystemdNotify reports readiness and a status line to systemd via
// systemd-notify: https://www.freedesktop.org/software/systemd/man/sd_notify.html
// It is a no-op when the process was not started under systemd
// (NOTIFY_SOCKET unset), and notification failures are ignored: the server
// runs the same either way.
func SystemdNotify(ready bool, status string) {
	if os.Getenv("NOTIFY_SOCKET") == "" {
		return
	}

	args := []string{fmt.Sprintf("--pid=%d", os.Getpid())}
	if ready {
		args = append(args, "--ready")
	}
	if status != "" {
		args = append(args, fmt.Sprintf("--status=%s", status))
	}

	exec.Command("systemd-notify", args...).Run()
}
