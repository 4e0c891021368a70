// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package command implements the stateless verb dispatcher: it maps an
// uppercased command name to a handler, runs arity checks, and translates
// keyspace/value errors into wire-level error responses without ever
// closing the connection on a domain error.
package command

import (
	"strings"
	"time"

	"github.com/rcache-project/rcache/internal/keyspace"
	"github.com/rcache-project/rcache/internal/resp"
	"github.com/rcache-project/rcache/internal/rlog"
	"github.com/rcache-project/rcache/internal/value"
)

func nowMs() int64 { return time.Now().UnixMilli() }

// Conn is the per-connection state a handler may read or mutate: the
// selected logical database and the auth bit. No auth flow exists yet, so
// Auth is carried but never flipped; an AUTH handler would own it.
type Conn struct {
	DB   int
	Auth bool
}

type handlerFunc func(ks *keyspace.Keyspace, c *Conn, req *resp.Request) resp.Response

var handlers = map[string]handlerFunc{
	"PING":        cmdPing,
	"SELECT":      cmdSelect,
	"SET":         cmdSet,
	"GET":         cmdGet,
	"SETEX":       cmdSetEx,
	"GETDEL":      cmdGetDel,
	"GETEX":       cmdGetEx,
	"GETSET":      cmdGetSet,
	"APPEND":      cmdAppend,
	"DEL":         cmdDel,
	"EXISTS":      cmdExists,
	"EXPIRE":      cmdExpire,
	"TTL":         cmdTTL,
	"INCR":        cmdIncr,
	"INCRBY":      cmdIncrBy,
	"INCRBYFLOAT": cmdIncrByFloat,
	"DECR":        cmdDecr,
	"DECRBY":      cmdDecrBy,
	"MGET":        cmdMGet,
	"MSET":        cmdMSet,
	"LPUSH":       cmdLPush,
	"RPUSH":       cmdRPush,
	"LPOP":        cmdLPop,
	"RPOP":        cmdRPop,
	"LRANGE":      cmdLRange,
	"SADD":        cmdSAdd,
	"SMEMBERS":    cmdSMembers,
	"HSET":        cmdHSet,
	"HGET":        cmdHGet,
	"HGETALL":     cmdHGetAll,
	"ZADD":        cmdZAdd,
	"GETRANGE":    cmdUnimplemented,
	"LCS":         cmdUnimplemented,
	"MSETNX":      cmdUnimplemented,
}

// Dispatch looks up req's verb (args[0], case-insensitive) and runs it
// against ks under the caller's already-held lock. An unknown verb is
// logged and answered with Nil rather than closing the connection.
func Dispatch(ks *keyspace.Keyspace, c *Conn, req *resp.Request) resp.Response {
	if req.ArgCount() == 0 {
		return resp.Err("ERR empty command")
	}
	verb := strings.ToUpper(string(req.AsSlice(0)))
	h, ok := handlers[verb]
	if !ok {
		rlog.Warnf("unknown command: %s", verb)
		return resp.Nil()
	}
	start := time.Now()
	result := h(ks, c, req)
	observe(verb, start, result)
	return result
}

// errResponse converts a domain error (typically *value.CmdError) into the
// RESP error wire form.
func errResponse(err error) resp.Response {
	return resp.Err(err.Error())
}

func checkArity(req *resp.Request, min int) error {
	if req.ArgCount() < min {
		return value.NewInvalidArgument("wrong number of arguments")
	}
	return nil
}

func cmdUnimplemented(_ *keyspace.Keyspace, _ *Conn, _ *resp.Request) resp.Response {
	return resp.Err("ERR unimplemented")
}
