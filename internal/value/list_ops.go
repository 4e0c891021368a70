// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package value

func (l *List) LPush(v []byte) int {
	l.Data.PushFront(v)
	return l.Data.Len()
}

func (l *List) RPush(v []byte) int {
	l.Data.PushBack(v)
	return l.Data.Len()
}

func (l *List) LPop() ([]byte, bool) { return l.Data.PopFront() }
func (l *List) RPop() ([]byte, bool) { return l.Data.PopBack() }

// LPopN pops up to n items from the front, stopping early if the list
// empties. Order of returned items matches pop order (front-most first).
func (l *List) LPopN(n int64) [][]byte {
	out := make([][]byte, 0, n)
	for i := int64(0); i < n; i++ {
		v, ok := l.Data.PopFront()
		if !ok {
			break
		}
		out = append(out, v)
	}
	return out
}

func (l *List) RPopN(n int64) [][]byte {
	out := make([][]byte, 0, n)
	for i := int64(0); i < n; i++ {
		v, ok := l.Data.PopBack()
		if !ok {
			break
		}
		out = append(out, v)
	}
	return out
}

// LRange returns the elements in [start, stop] (inclusive, RESP semantics):
// negative indices count from the end, start clamps to 0 after
// normalization, stop clamps to len-1, and start > stop yields empty.
func (l *List) LRange(start, stop int64) [][]byte {
	n := int64(l.Data.Len())
	if n == 0 {
		return [][]byte{}
	}

	if start < 0 {
		start += n
	}
	if stop < 0 {
		stop += n
	}
	if start < 0 {
		start = 0
	}
	if stop >= n {
		stop = n - 1
	}
	if start > stop || start >= n {
		return [][]byte{}
	}

	out := make([][]byte, 0, stop-start+1)
	for i := start; i <= stop; i++ {
		out = append(out, l.Data.At(int(i)))
	}
	return out
}
