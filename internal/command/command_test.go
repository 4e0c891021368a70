// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package command

import (
	"testing"

	"github.com/rcache-project/rcache/internal/keyspace"
	"github.com/rcache-project/rcache/internal/resp"
)

func req(t *testing.T, parts ...string) *resp.Request {
	t.Helper()
	var buf []byte
	buf = append(buf, []byte("*"+itoa(len(parts))+"\r\n")...)
	for _, p := range parts {
		buf = append(buf, []byte("$"+itoa(len(p))+"\r\n"+p+"\r\n")...)
	}
	r, _, err := resp.Decode(buf)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	return r
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

func TestPingWithAndWithoutMessage(t *testing.T) {
	ks := keyspace.New()
	c := &Conn{}
	r := Dispatch(ks, c, req(t, "PING"))
	if resp.EncodeBytes(r)[0] != '+' {
		t.Fatalf("expected status reply for bare PING")
	}
	r = Dispatch(ks, c, req(t, "PING", "hello"))
	if string(resp.EncodeBytes(r)) != "$5\r\nhello\r\n" {
		t.Fatalf("unexpected PING echo encoding: %q", resp.EncodeBytes(r))
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	ks := keyspace.New()
	c := &Conn{}
	Dispatch(ks, c, req(t, "SET", "k", "v"))
	r := Dispatch(ks, c, req(t, "GET", "k"))
	if string(resp.EncodeBytes(r)) != "$1\r\nv\r\n" {
		t.Fatalf("unexpected GET encoding: %q", resp.EncodeBytes(r))
	}
}

func TestGetMissingKeyIsNil(t *testing.T) {
	ks := keyspace.New()
	c := &Conn{}
	r := Dispatch(ks, c, req(t, "GET", "missing"))
	if string(resp.EncodeBytes(r)) != "$-1\r\n" {
		t.Fatalf("expected nil encoding, got %q", resp.EncodeBytes(r))
	}
}

func TestWrongTypeDoesNotCloseConnection(t *testing.T) {
	ks := keyspace.New()
	c := &Conn{}
	Dispatch(ks, c, req(t, "SET", "k", "v"))
	r := Dispatch(ks, c, req(t, "LPUSH", "k", "x"))
	if !r.IsError() {
		t.Fatalf("expected a WRONGTYPE error response")
	}
}

func TestUnknownCommandReturnsNilNotError(t *testing.T) {
	ks := keyspace.New()
	c := &Conn{}
	r := Dispatch(ks, c, req(t, "NOSUCHCOMMAND"))
	if string(resp.EncodeBytes(r)) != "$-1\r\n" {
		t.Fatalf("expected nil for unknown command, got %q", resp.EncodeBytes(r))
	}
}

func TestIncrOnFreshKeyStartsAtZero(t *testing.T) {
	ks := keyspace.New()
	c := &Conn{}
	r := Dispatch(ks, c, req(t, "INCR", "counter"))
	if r.IsError() {
		t.Fatalf("unexpected error: %q", resp.EncodeBytes(r))
	}
	r = Dispatch(ks, c, req(t, "GET", "counter"))
	if string(resp.EncodeBytes(r)) != "$1\r\n1\r\n" {
		t.Fatalf("expected counter at 1, got %q", resp.EncodeBytes(r))
	}
}

func TestUnimplementedCommandsReturnError(t *testing.T) {
	ks := keyspace.New()
	c := &Conn{}
	for _, verb := range []string{"GETRANGE", "LCS", "MSETNX"} {
		r := Dispatch(ks, c, req(t, verb, "a"))
		if !r.IsError() {
			t.Fatalf("expected %s to report unimplemented", verb)
		}
	}
}

func TestRPushLRangeOrder(t *testing.T) {
	ks := keyspace.New()
	c := &Conn{}
	Dispatch(ks, c, req(t, "RPUSH", "list", "a", "b", "c"))
	r := Dispatch(ks, c, req(t, "LRANGE", "list", "0", "-1"))
	if string(resp.EncodeBytes(r)) != "*3\r\n$1\r\na\r\n$1\r\nb\r\n$1\r\nc\r\n" {
		t.Fatalf("unexpected LRANGE encoding: %q", resp.EncodeBytes(r))
	}
}

func TestLPopRPopWithCount(t *testing.T) {
	ks := keyspace.New()
	c := &Conn{}
	Dispatch(ks, c, req(t, "RPUSH", "list", "a", "b", "c"))

	r := Dispatch(ks, c, req(t, "LPOP", "list", "2"))
	if string(resp.EncodeBytes(r)) != "*2\r\n$1\r\na\r\n$1\r\nb\r\n" {
		t.Fatalf("unexpected LPOP count encoding: %q", resp.EncodeBytes(r))
	}

	r = Dispatch(ks, c, req(t, "RPOP", "list", "5"))
	if string(resp.EncodeBytes(r)) != "*1\r\n$1\r\nc\r\n" {
		t.Fatalf("unexpected RPOP count encoding: %q", resp.EncodeBytes(r))
	}

	r = Dispatch(ks, c, req(t, "LPOP", "missing", "3"))
	if string(resp.EncodeBytes(r)) != "*0\r\n" {
		t.Fatalf("expected empty array popping from a missing key, got %q", resp.EncodeBytes(r))
	}
}
