// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package value

// Clone returns a deep copy of v: every byte slice is duplicated so that a
// clone never aliases the original's storage. This backs the snapshot
// worker's "clone under the lock, then encode lock-free" policy: the
// clone must be safe to encode after the lock is released, even while the
// original is concurrently mutated (e.g. APPEND growing a String's backing
// array in place).
func Clone(v Value) Value {
	switch vv := v.(type) {
	case *String:
		return NewString(vv.Data)
	case *List:
		l := NewList()
		vv.Data.Each(func(item []byte) {
			l.Data.PushBack(append([]byte(nil), item...))
		})
		return l
	case *Set:
		s := NewSet()
		for k := range vv.Data {
			s.Data[k] = struct{}{}
		}
		return s
	case *Hash:
		h := NewHash()
		for k, val := range vv.Data {
			h.Data[k] = append([]byte(nil), val...)
		}
		return h
	case *SortedSet:
		z := NewSortedSet()
		vv.Data.Each(func(e ZEntry) {
			z.Data.Add(append([]byte(nil), e.Member...), e.Score)
		})
		return z
	default:
		panic("value: Clone of unknown kind")
	}
}
