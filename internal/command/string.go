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

func cmdPing(_ *keyspace.Keyspace, _ *Conn, req *resp.Request) resp.Response {
	if req.ArgCount() >= 2 {
		return resp.Data(req.AsSlice(1))
	}
	return resp.Status("PONG")
}

func cmdSelect(_ *keyspace.Keyspace, c *Conn, req *resp.Request) resp.Response {
	if err := checkArity(req, 2); err != nil {
		return errResponse(err)
	}
	idx, err := req.AsI64(1)
	if err != nil {
		return errResponse(err)
	}
	if idx < 0 || idx >= keyspace.NumDBs {
		return resp.Err("ERR DB index is out of range")
	}
	c.DB = int(idx)
	return resp.Status("OK")
}

func cmdSet(ks *keyspace.Keyspace, c *Conn, req *resp.Request) resp.Response {
	if err := checkArity(req, 3); err != nil {
		return errResponse(err)
	}
	key := req.AsSlice(1)
	v := req.AsSlice(2)
	if err := ks.Insert(c.DB, key, value.NewString(v)); err != nil {
		return errResponse(err)
	}
	return resp.Status("OK")
}

func cmdGet(ks *keyspace.Keyspace, c *Conn, req *resp.Request) resp.Response {
	if err := checkArity(req, 2); err != nil {
		return errResponse(err)
	}
	v, found, err := ks.GetTyped(c.DB, req.AsSlice(1), value.KindString)
	if err != nil {
		return errResponse(err)
	}
	if !found {
		return resp.Nil()
	}
	return resp.Data(v.(*value.String).Data)
}

func cmdSetEx(ks *keyspace.Keyspace, c *Conn, req *resp.Request) resp.Response {
	if err := checkArity(req, 4); err != nil {
		return errResponse(err)
	}
	key := req.AsSlice(1)
	secs, err := req.AsI64(2)
	if err != nil {
		return errResponse(err)
	}
	if secs <= 0 {
		return resp.Err("ERR invalid expire time in 'setex' command")
	}
	v := req.AsSlice(3)
	if err := ks.Insert(c.DB, key, value.NewString(v)); err != nil {
		return errResponse(err)
	}
	ks.SetExpireAtMs(c.DB, key, nowMs()+secs*1000)
	return resp.Status("OK")
}

func cmdGetDel(ks *keyspace.Keyspace, c *Conn, req *resp.Request) resp.Response {
	if err := checkArity(req, 2); err != nil {
		return errResponse(err)
	}
	key := req.AsSlice(1)
	v, found, err := ks.GetTyped(c.DB, key, value.KindString)
	if err != nil {
		return errResponse(err)
	}
	if !found {
		return resp.Nil()
	}
	s := v.(*value.String).Data
	ks.Remove(c.DB, key)
	return resp.Data(s)
}

func cmdGetEx(ks *keyspace.Keyspace, c *Conn, req *resp.Request) resp.Response {
	if err := checkArity(req, 2); err != nil {
		return errResponse(err)
	}
	key := req.AsSlice(1)
	v, found, err := ks.GetTyped(c.DB, key, value.KindString)
	if err != nil {
		return errResponse(err)
	}
	if !found {
		return resp.Nil()
	}
	if req.ArgCount() >= 4 {
		opt := string(req.AsSlice(2))
		if equalsIgnoreCase(opt, "EX") {
			secs, err := req.AsI64(3)
			if err != nil {
				return errResponse(err)
			}
			ks.SetExpireAtMs(c.DB, key, nowMs()+secs*1000)
		}
	} else if req.ArgCount() == 3 && equalsIgnoreCase(string(req.AsSlice(2)), "PERSIST") {
		ks.RemoveExpire(c.DB, key)
	}
	return resp.Data(v.(*value.String).Data)
}

func cmdGetSet(ks *keyspace.Keyspace, c *Conn, req *resp.Request) resp.Response {
	if err := checkArity(req, 3); err != nil {
		return errResponse(err)
	}
	key := req.AsSlice(1)
	prev, found, err := ks.GetTyped(c.DB, key, value.KindString)
	if err != nil {
		return errResponse(err)
	}
	if err := ks.Insert(c.DB, key, value.NewString(req.AsSlice(2))); err != nil {
		return errResponse(err)
	}
	if !found {
		return resp.Nil()
	}
	return resp.Data(prev.(*value.String).Data)
}

func cmdAppend(ks *keyspace.Keyspace, c *Conn, req *resp.Request) resp.Response {
	if err := checkArity(req, 3); err != nil {
		return errResponse(err)
	}
	key := req.AsSlice(1)
	v, err := ks.GetOrCreate(c.DB, key, value.KindString)
	if err != nil {
		return errResponse(err)
	}
	n, err := v.(*value.String).Append(req.AsSlice(2))
	if err != nil {
		return errResponse(err)
	}
	return resp.Integer(int64(n))
}

func cmdIncr(ks *keyspace.Keyspace, c *Conn, req *resp.Request) resp.Response {
	if err := checkArity(req, 2); err != nil {
		return errResponse(err)
	}
	return incrByHandler(ks, c, req.AsSlice(1), 1)
}

func cmdDecr(ks *keyspace.Keyspace, c *Conn, req *resp.Request) resp.Response {
	if err := checkArity(req, 2); err != nil {
		return errResponse(err)
	}
	return incrByHandler(ks, c, req.AsSlice(1), -1)
}

func cmdIncrBy(ks *keyspace.Keyspace, c *Conn, req *resp.Request) resp.Response {
	if err := checkArity(req, 3); err != nil {
		return errResponse(err)
	}
	delta, err := req.AsI64(2)
	if err != nil {
		return errResponse(err)
	}
	return incrByHandler(ks, c, req.AsSlice(1), delta)
}

func cmdDecrBy(ks *keyspace.Keyspace, c *Conn, req *resp.Request) resp.Response {
	if err := checkArity(req, 3); err != nil {
		return errResponse(err)
	}
	delta, err := req.AsI64(2)
	if err != nil {
		return errResponse(err)
	}
	return incrByHandler(ks, c, req.AsSlice(1), -delta)
}

func incrByHandler(ks *keyspace.Keyspace, c *Conn, key []byte, delta int64) resp.Response {
	v, err := ks.GetOrCreate(c.DB, key, value.KindString)
	if err != nil {
		return errResponse(err)
	}
	s := v.(*value.String)
	if len(s.Data) == 0 {
		s.Data = []byte("0")
	}
	_, err = s.IncrBy(delta)
	if err != nil {
		return errResponse(err)
	}
	return resp.Status("OK")
}

func cmdIncrByFloat(ks *keyspace.Keyspace, c *Conn, req *resp.Request) resp.Response {
	if err := checkArity(req, 3); err != nil {
		return errResponse(err)
	}
	delta, err := req.AsF64(2)
	if err != nil {
		return errResponse(err)
	}
	key := req.AsSlice(1)
	v, err := ks.GetOrCreate(c.DB, key, value.KindString)
	if err != nil {
		return errResponse(err)
	}
	s := v.(*value.String)
	if len(s.Data) == 0 {
		s.Data = []byte("0")
	}
	if _, err := s.IncrByFloat(delta); err != nil {
		return errResponse(err)
	}
	return resp.Status("OK")
}

func cmdMGet(ks *keyspace.Keyspace, c *Conn, req *resp.Request) resp.Response {
	if err := checkArity(req, 2); err != nil {
		return errResponse(err)
	}
	items := make([]resp.Response, 0, req.ArgCount()-1)
	for i := 1; i < req.ArgCount(); i++ {
		v, found, err := ks.GetTyped(c.DB, req.AsSlice(i), value.KindString)
		if err != nil || !found {
			items = append(items, resp.Nil())
			continue
		}
		items = append(items, resp.Data(v.(*value.String).Data))
	}
	return resp.Array(items)
}

func cmdMSet(ks *keyspace.Keyspace, c *Conn, req *resp.Request) resp.Response {
	if err := checkArity(req, 3); err != nil {
		return errResponse(err)
	}
	if (req.ArgCount()-1)%2 != 0 {
		return resp.Err("ERR wrong number of arguments for 'mset' command")
	}
	for i := 1; i < req.ArgCount(); i += 2 {
		if err := ks.Insert(c.DB, req.AsSlice(i), value.NewString(req.AsSlice(i+1))); err != nil {
			return errResponse(err)
		}
	}
	return resp.Status("OK")
}

func equalsIgnoreCase(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'a' <= ca && ca <= 'z' {
			ca -= 'a' - 'A'
		}
		if 'a' <= cb && cb <= 'z' {
			cb -= 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
