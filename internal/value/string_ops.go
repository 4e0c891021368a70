// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package value

import (
	"math"
	"strconv"
)

func (s *String) StrLen() int { return len(s.Data) }

// Append extends the string and returns its new length, enforcing the
// 512 MiB invariant cap.
func (s *String) Append(b []byte) (int, error) {
	if len(s.Data)+len(b) > MaxStringLen {
		return 0, NewInvalidArgument("resulting string exceeds maximum allowed size (512MB)")
	}
	s.Data = append(s.Data, b...)
	return len(s.Data), nil
}

func (s *String) parseInt() (int64, error) {
	n, err := strconv.ParseInt(string(s.Data), 10, 64)
	if err != nil {
		return 0, NewOverflow()
	}
	return n, nil
}

// IncrBy adds delta to the integer content of s (ASCII-decimal), detecting
// both parse failure and i64 overflow as the single Overflow error kind.
func (s *String) IncrBy(delta int64) (int64, error) {
	cur, err := s.parseInt()
	if err != nil {
		return 0, err
	}

	result := cur + delta
	// overflow check: result should have the sign consistent with the inputs
	if (delta > 0 && result < cur) || (delta < 0 && result > cur) {
		return 0, NewOverflow()
	}

	s.Data = []byte(strconv.FormatInt(result, 10))
	return result, nil
}

// IncrByFloat adds delta to the float content of s and rewrites it using
// the shortest round-trip decimal representation.
func (s *String) IncrByFloat(delta float64) (float64, error) {
	cur, err := strconv.ParseFloat(string(s.Data), 64)
	if err != nil {
		return 0, NewInvalidArgument("value is not a valid float")
	}

	result := cur + delta
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0, NewOverflow()
	}

	s.Data = []byte(strconv.FormatFloat(result, 'f', -1, 64))
	return result, nil
}
