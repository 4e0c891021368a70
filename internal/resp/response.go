// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package resp

import (
	"bytes"
	"strconv"
)

var (
	nilPrefix    = []byte("$-1")
	intPrefix    = []byte{':'}
	dataPrefix   = []byte{'$'}
	errPrefix    = []byte{'-'}
	statusPrefix = []byte{'+'}
	arrayPrefix  = []byte{'*'}
	delim        = []byte{'\r', '\n'}
)

type respKind int

const (
	kindNil respKind = iota
	kindInteger
	kindData
	kindError
	kindStatus
	kindArray
)

// Response is one of the five RESP response shapes (plus Nil). It is a
// value type: construct with the functions below, encode with Encode.
type Response struct {
	kind  respKind
	i     int64
	data  []byte
	text  string
	items []Response
}

func Nil() Response                      { return Response{kind: kindNil} }
func Integer(i int64) Response           { return Response{kind: kindInteger, i: i} }
func Data(b []byte) Response             { return Response{kind: kindData, data: b} }
func Err(msg string) Response            { return Response{kind: kindError, text: msg} }
func Status(msg string) Response         { return Response{kind: kindStatus, text: msg} }
func Array(items []Response) Response    { return Response{kind: kindArray, items: items} }

func (r Response) IsError() bool { return r.kind == kindError }

// Encode appends the wire representation of r to buf.
// Encoding is infallible for well-formed values.
func Encode(buf *bytes.Buffer, r Response) {
	switch r.kind {
	case kindNil:
		buf.Write(nilPrefix)
		buf.Write(delim)
	case kindInteger:
		buf.Write(intPrefix)
		buf.WriteString(strconv.FormatInt(r.i, 10))
		buf.Write(delim)
	case kindData:
		buf.Write(dataPrefix)
		buf.WriteString(strconv.Itoa(len(r.data)))
		buf.Write(delim)
		buf.Write(r.data)
		buf.Write(delim)
	case kindError:
		buf.Write(errPrefix)
		buf.WriteString(r.text)
		buf.Write(delim)
	case kindStatus:
		buf.Write(statusPrefix)
		buf.WriteString(r.text)
		buf.Write(delim)
	case kindArray:
		buf.Write(arrayPrefix)
		buf.WriteString(strconv.Itoa(len(r.items)))
		buf.Write(delim)
		for _, item := range r.items {
			Encode(buf, item)
		}
	}
}

// EncodeBytes is a convenience wrapper around Encode for single-shot use.
func EncodeBytes(r Response) []byte {
	var buf bytes.Buffer
	Encode(&buf, r)
	return buf.Bytes()
}
