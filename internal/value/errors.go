// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package value

import "errors"

// ErrorKind classifies the handful of ways a command or protocol operation
// can fail. Every *CmdError carries exactly one of these.
type ErrorKind int

const (
	ErrInvalidArgument ErrorKind = iota
	ErrWrongType
	ErrOverflow
	ErrInvalidIndex
	ErrIncomplete
	ErrMalformed
	ErrIO
	ErrInternal
)

func (k ErrorKind) String() string {
	switch k {
	case ErrInvalidArgument:
		return "InvalidArgument"
	case ErrWrongType:
		return "WrongType"
	case ErrOverflow:
		return "Overflow"
	case ErrInvalidIndex:
		return "InvalidIndex"
	case ErrIncomplete:
		return "Incomplete"
	case ErrMalformed:
		return "Malformed"
	case ErrIO:
		return "IO"
	case ErrInternal:
		return "Internal"
	default:
		return "Unknown"
	}
}

// CmdError is the one error type used throughout the command path. Kind is
// meant to be inspected with errors.As, never by matching on Msg.
type CmdError struct {
	Kind ErrorKind
	Msg  string
}

func (e *CmdError) Error() string { return e.Msg }

func NewInvalidArgument(msg string) *CmdError {
	return &CmdError{Kind: ErrInvalidArgument, Msg: "InvalidArgument: " + msg}
}

func NewWrongType() *CmdError {
	return &CmdError{Kind: ErrWrongType, Msg: "WRONGTYPE Operation against a key holding the wrong kind of value"}
}

func NewOverflow() *CmdError {
	return &CmdError{Kind: ErrOverflow, Msg: "ERR value is not an integer or out of range"}
}

func NewInvalidIndex(idx int) *CmdError {
	return &CmdError{Kind: ErrInvalidIndex, Msg: "ERR DB index is out of range"}
}

func NewIncomplete() *CmdError {
	return &CmdError{Kind: ErrIncomplete, Msg: "incomplete frame"}
}

func NewMalformed(msg string) *CmdError {
	return &CmdError{Kind: ErrMalformed, Msg: "malformed request: " + msg}
}

func NewIO(msg string) *CmdError {
	return &CmdError{Kind: ErrIO, Msg: msg}
}

func NewInternal(msg string) *CmdError {
	return &CmdError{Kind: ErrInternal, Msg: msg}
}

// IsKind reports whether err is a *CmdError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ce *CmdError
	return errors.As(err, &ce) && ce.Kind == kind
}
