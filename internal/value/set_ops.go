// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package value

// SAdd adds member to the set, returning whether it was newly inserted.
func (s *Set) SAdd(member []byte) bool {
	key := string(member)
	if _, exists := s.Data[key]; exists {
		return false
	}
	s.Data[key] = struct{}{}
	return true
}

// Members returns the set's elements in unspecified order.
func (s *Set) Members() [][]byte {
	out := make([][]byte, 0, len(s.Data))
	for k := range s.Data {
		out = append(out, []byte(k))
	}
	return out
}
