// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package command

import (
	"github.com/rcache-project/rcache/internal/keyspace"
	"github.com/rcache-project/rcache/internal/resp"
	"github.com/rcache-project/rcache/internal/value"
)

func cmdLPush(ks *keyspace.Keyspace, c *Conn, req *resp.Request) resp.Response {
	if err := checkArity(req, 3); err != nil {
		return errResponse(err)
	}
	key := req.AsSlice(1)
	var n int
	var err error
	for i := 2; i < req.ArgCount(); i++ {
		n, err = ks.LPush(c.DB, key, req.AsSlice(i))
		if err != nil {
			return errResponse(err)
		}
	}
	return resp.Integer(int64(n))
}

func cmdRPush(ks *keyspace.Keyspace, c *Conn, req *resp.Request) resp.Response {
	if err := checkArity(req, 3); err != nil {
		return errResponse(err)
	}
	key := req.AsSlice(1)
	var n int
	var err error
	for i := 2; i < req.ArgCount(); i++ {
		n, err = ks.RPush(c.DB, key, req.AsSlice(i))
		if err != nil {
			return errResponse(err)
		}
	}
	return resp.Integer(int64(n))
}

func cmdLPop(ks *keyspace.Keyspace, c *Conn, req *resp.Request) resp.Response {
	if err := checkArity(req, 2); err != nil {
		return errResponse(err)
	}
	if req.ArgCount() >= 3 {
		n, err := req.AsI64(2)
		if err != nil || n < 0 {
			return errResponse(value.NewInvalidArgument("value is out of range, must be positive"))
		}
		items, err := ks.LPopN(c.DB, req.AsSlice(1), n)
		if err != nil {
			return errResponse(err)
		}
		return byteSlicesToArray(items)
	}
	v, found, err := ks.LPop(c.DB, req.AsSlice(1))
	if err != nil {
		return errResponse(err)
	}
	if !found {
		return resp.Nil()
	}
	return resp.Data(v)
}

func cmdRPop(ks *keyspace.Keyspace, c *Conn, req *resp.Request) resp.Response {
	if err := checkArity(req, 2); err != nil {
		return errResponse(err)
	}
	if req.ArgCount() >= 3 {
		n, err := req.AsI64(2)
		if err != nil || n < 0 {
			return errResponse(value.NewInvalidArgument("value is out of range, must be positive"))
		}
		items, err := ks.RPopN(c.DB, req.AsSlice(1), n)
		if err != nil {
			return errResponse(err)
		}
		return byteSlicesToArray(items)
	}
	v, found, err := ks.RPop(c.DB, req.AsSlice(1))
	if err != nil {
		return errResponse(err)
	}
	if !found {
		return resp.Nil()
	}
	return resp.Data(v)
}

func cmdLRange(ks *keyspace.Keyspace, c *Conn, req *resp.Request) resp.Response {
	if err := checkArity(req, 4); err != nil {
		return errResponse(err)
	}
	start, err := req.AsI64(2)
	if err != nil {
		return errResponse(err)
	}
	stop, err := req.AsI64(3)
	if err != nil {
		return errResponse(err)
	}
	items, err := ks.LRange(c.DB, req.AsSlice(1), start, stop)
	if err != nil {
		return errResponse(err)
	}
	return byteSlicesToArray(items)
}

func cmdSAdd(ks *keyspace.Keyspace, c *Conn, req *resp.Request) resp.Response {
	if err := checkArity(req, 3); err != nil {
		return errResponse(err)
	}
	key := req.AsSlice(1)
	var added int64
	for i := 2; i < req.ArgCount(); i++ {
		ok, err := ks.SAdd(c.DB, key, req.AsSlice(i))
		if err != nil {
			return errResponse(err)
		}
		if ok {
			added++
		}
	}
	return resp.Integer(added)
}

func cmdSMembers(ks *keyspace.Keyspace, c *Conn, req *resp.Request) resp.Response {
	if err := checkArity(req, 2); err != nil {
		return errResponse(err)
	}
	members, err := ks.SMembers(c.DB, req.AsSlice(1))
	if err != nil {
		return errResponse(err)
	}
	return byteSlicesToArray(members)
}

func cmdHSet(ks *keyspace.Keyspace, c *Conn, req *resp.Request) resp.Response {
	if err := checkArity(req, 4); err != nil {
		return errResponse(err)
	}
	if (req.ArgCount()-2)%2 != 0 {
		return resp.Err("ERR wrong number of arguments for 'hset' command")
	}
	key := req.AsSlice(1)
	var added int64
	for i := 2; i < req.ArgCount(); i += 2 {
		ok, err := ks.HSet(c.DB, key, req.AsSlice(i), req.AsSlice(i+1))
		if err != nil {
			return errResponse(err)
		}
		if ok {
			added++
		}
	}
	return resp.Integer(added)
}

func cmdHGet(ks *keyspace.Keyspace, c *Conn, req *resp.Request) resp.Response {
	if err := checkArity(req, 3); err != nil {
		return errResponse(err)
	}
	v, found, err := ks.HGet(c.DB, req.AsSlice(1), req.AsSlice(2))
	if err != nil {
		return errResponse(err)
	}
	if !found {
		return resp.Nil()
	}
	return resp.Data(v)
}

func cmdHGetAll(ks *keyspace.Keyspace, c *Conn, req *resp.Request) resp.Response {
	if err := checkArity(req, 2); err != nil {
		return errResponse(err)
	}
	items, err := ks.HGetAll(c.DB, req.AsSlice(1))
	if err != nil {
		return errResponse(err)
	}
	return byteSlicesToArray(items)
}

func cmdZAdd(ks *keyspace.Keyspace, c *Conn, req *resp.Request) resp.Response {
	if err := checkArity(req, 4); err != nil {
		return errResponse(err)
	}
	if (req.ArgCount()-2)%2 != 0 {
		return resp.Err("ERR syntax error")
	}
	key := req.AsSlice(1)
	var added int64
	for i := 2; i < req.ArgCount(); i += 2 {
		score, err := req.AsF64(i)
		if err != nil {
			return errResponse(err)
		}
		ok, err := ks.ZAdd(c.DB, key, req.AsSlice(i+1), score)
		if err != nil {
			return errResponse(err)
		}
		if ok {
			added++
		}
	}
	return resp.Integer(added)
}

func byteSlicesToArray(items [][]byte) resp.Response {
	out := make([]resp.Response, len(items))
	for i, b := range items {
		out[i] = resp.Data(b)
	}
	return resp.Array(out)
}
