// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package command

import (
	"github.com/rcache-project/rcache/internal/keyspace"
	"github.com/rcache-project/rcache/internal/resp"
)

func cmdDel(ks *keyspace.Keyspace, c *Conn, req *resp.Request) resp.Response {
	if err := checkArity(req, 2); err != nil {
		return errResponse(err)
	}
	var removed int64
	for i := 1; i < req.ArgCount(); i++ {
		v, err := ks.Remove(c.DB, req.AsSlice(i))
		if err != nil {
			return errResponse(err)
		}
		if v != nil {
			removed++
		}
	}
	return resp.Integer(removed)
}

func cmdExists(ks *keyspace.Keyspace, c *Conn, req *resp.Request) resp.Response {
	if err := checkArity(req, 2); err != nil {
		return errResponse(err)
	}
	var count int64
	for i := 1; i < req.ArgCount(); i++ {
		ok, err := ks.Contains(c.DB, req.AsSlice(i))
		if err != nil {
			return errResponse(err)
		}
		if ok {
			count++
		}
	}
	return resp.Integer(count)
}

func cmdExpire(ks *keyspace.Keyspace, c *Conn, req *resp.Request) resp.Response {
	if err := checkArity(req, 3); err != nil {
		return errResponse(err)
	}
	key := req.AsSlice(1)
	secs, err := req.AsI64(2)
	if err != nil {
		return errResponse(err)
	}
	ok, err := ks.SetExpireAtMs(c.DB, key, nowMs()+secs*1000)
	if err != nil {
		return errResponse(err)
	}
	if !ok {
		return resp.Integer(0)
	}
	return resp.Integer(1)
}

func cmdTTL(ks *keyspace.Keyspace, c *Conn, req *resp.Request) resp.Response {
	if err := checkArity(req, 2); err != nil {
		return errResponse(err)
	}
	ttl, err := ks.TTLSeconds(c.DB, req.AsSlice(1))
	if err != nil {
		return errResponse(err)
	}
	return resp.Integer(ttl)
}
