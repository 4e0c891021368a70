// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package resp

import (
	"bytes"
	"testing"

	"github.com/rcache-project/rcache/internal/value"
)

func TestDecodeSimpleSet(t *testing.T) {
	raw := []byte("*3\r\n$3\r\nSET\r\n$3\r\nkey\r\n$3\r\nabc\r\n")
	req, n, err := Decode(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != len(raw) {
		t.Fatalf("expected to consume %d bytes, got %d", len(raw), n)
	}
	if req.ArgCount() != 3 {
		t.Fatalf("expected 3 args, got %d", req.ArgCount())
	}
	if string(req.AsSlice(0)) != "SET" || string(req.AsSlice(1)) != "key" || string(req.AsSlice(2)) != "abc" {
		t.Fatalf("unexpected args: %v", req.Args)
	}
}

func TestDecodeTolerantLeadingCRLF(t *testing.T) {
	raw := []byte("\r\n\r\n*1\r\n$4\r\nPING\r\n")
	req, _, err := Decode(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.ArgCount() != 1 || string(req.AsSlice(0)) != "PING" {
		t.Fatalf("unexpected request: %v", req.Args)
	}
}

func TestDecodeIncomplete(t *testing.T) {
	raw := []byte("*2\r\n$3\r\nGET\r\n$3\r\nke")
	_, _, err := Decode(raw)
	if !value.IsKind(err, value.ErrIncomplete) {
		t.Fatalf("expected Incomplete error, got %v", err)
	}
}

func TestDecodeMalformedNegativeBulkLen(t *testing.T) {
	raw := []byte("*1\r\n$-5\r\n")
	_, _, err := Decode(raw)
	if !value.IsKind(err, value.ErrMalformed) {
		t.Fatalf("expected Malformed error, got %v", err)
	}
}

func TestDecodeNegativeMultibulkYieldsZeroArgs(t *testing.T) {
	raw := []byte("*-1\r\n")
	req, n, err := Decode(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != len(raw) {
		t.Fatalf("expected to consume entire header, got %d", n)
	}
	if req.ArgCount() != 0 {
		t.Fatalf("expected 0 args, got %d", req.ArgCount())
	}
}

func TestAsF64AcceptsInfRejectsNaN(t *testing.T) {
	raw := []byte("*2\r\n$3\r\nFOO\r\n$4\r\n+inf\r\n")
	req, _, err := Decode(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f, err := req.AsF64(1)
	if err != nil {
		t.Fatalf("unexpected error parsing +inf: %v", err)
	}
	if f <= 0 {
		t.Fatalf("expected positive infinity, got %v", f)
	}

	raw = []byte("*2\r\n$3\r\nFOO\r\n$3\r\nnan\r\n")
	req, _, err = Decode(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := req.AsF64(1); !value.IsKind(err, value.ErrInvalidArgument) {
		t.Fatalf("expected NaN to be rejected as InvalidArgument, got %v", err)
	}
}

func TestAsF64BoundExclusiveAndUnbounded(t *testing.T) {
	raw := []byte("*3\r\n$3\r\nFOO\r\n$4\r\n(1.5\r\n$4\r\n-inf\r\n")
	req, _, err := Decode(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := req.AsF64Bound(1)
	if err != nil || b.Kind != BoundExclusive || b.Value != 1.5 {
		t.Fatalf("expected exclusive 1.5, got %+v err=%v", b, err)
	}
	b2, err := req.AsF64Bound(2)
	if err != nil || b2.Kind != BoundUnbounded {
		t.Fatalf("expected unbounded, got %+v err=%v", b2, err)
	}
}

func TestEncodeAllResponseForms(t *testing.T) {
	cases := []struct {
		r    Response
		want string
	}{
		{Nil(), "$-1\r\n"},
		{Integer(42), ":42\r\n"},
		{Data([]byte("abc")), "$3\r\nabc\r\n"},
		{Err("WRONGTYPE mismatch"), "-WRONGTYPE mismatch\r\n"},
		{Status("OK"), "+OK\r\n"},
		{Array([]Response{Data([]byte("a")), Data([]byte("b")), Data([]byte("c"))}), "*3\r\n$1\r\na\r\n$1\r\nb\r\n$1\r\nc\r\n"},
		{Array(nil), "*0\r\n"},
	}

	for _, c := range cases {
		var buf bytes.Buffer
		Encode(&buf, c.r)
		if buf.String() != c.want {
			t.Errorf("got %q, want %q", buf.String(), c.want)
		}
	}
}
