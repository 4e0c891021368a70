// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package server implements the per-connection RESP loop and the
// background lifecycle workers (expiration sweep, snapshot writer) that
// run for the lifetime of the process, scheduled with gocron.
package server

import (
	"bytes"
	"errors"
	"io"
	"net"

	"github.com/rcache-project/rcache/internal/command"
	"github.com/rcache-project/rcache/internal/keyspace"
	"github.com/rcache-project/rcache/internal/resp"
	"github.com/rcache-project/rcache/internal/rlog"
	"github.com/rcache-project/rcache/internal/value"
)

// readBufSize is the scratch buffer size for one socket read; a frame that
// spans several reads is accumulated in the connection's pending buffer.
const readBufSize = 1024

// Serve accepts connections on ln until it is closed (e.g. by the caller
// cancelling shutdown and closing the listener), dispatching each one to
// its own goroutine against the shared keyspace.
func Serve(ln net.Listener, ks *keyspace.Keyspace) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			rlog.Errorf("server: accept failed: %s", err.Error())
			return
		}
		go handleConnection(conn, ks)
	}
}

// handleConnection runs the read/parse/dispatch/write loop for one TCP
// connection. Per-connection state (selected DB, auth bit) is owned
// entirely by this goroutine; only the keyspace is shared, and only for the
// duration of one Dispatch call.
func handleConnection(conn net.Conn, ks *keyspace.Keyspace) {
	defer conn.Close()

	c := &command.Conn{DB: 0}
	var pending []byte

	for {
		buf := make([]byte, readBufSize)
		n, err := conn.Read(buf)
		if n > 0 {
			pending = append(pending, buf[:n]...)
		}
		if err != nil {
			if err != io.EOF {
				rlog.Debugf("server: connection read error: %s", err.Error())
			}
			return
		}

		for {
			req, consumed, derr := resp.Decode(pending)
			if derr != nil {
				if value.IsKind(derr, value.ErrIncomplete) {
					break
				}
				rlog.Warnf("server: malformed request, closing connection: %s", derr.Error())
				return
			}

			pending = pending[consumed:]

			ks.Lock()
			respVal := command.Dispatch(ks, c, req)
			ks.Unlock()

			var out bytes.Buffer
			resp.Encode(&out, respVal)
			if _, werr := conn.Write(out.Bytes()); werr != nil {
				rlog.Debugf("server: connection write error: %s", werr.Error())
				return
			}
		}
	}
}
