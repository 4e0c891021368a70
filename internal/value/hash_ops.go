// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package value

// HSet sets field to v, returning whether the field was newly created.
func (h *Hash) HSet(field, v []byte) bool {
	key := string(field)
	_, existed := h.Data[key]
	h.Data[key] = append([]byte(nil), v...)
	return !existed
}

func (h *Hash) HGet(field []byte) ([]byte, bool) {
	v, ok := h.Data[string(field)]
	return v, ok
}

// HGetAll returns field/value pairs interleaved, in unspecified order.
func (h *Hash) HGetAll() [][]byte {
	out := make([][]byte, 0, len(h.Data)*2)
	for k, v := range h.Data {
		out = append(out, []byte(k), v)
	}
	return out
}
