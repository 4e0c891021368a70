// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package value

// ZAdd inserts or updates member's score, returning whether it is newly
// added. NaN scores are rejected.
func (z *SortedSet) ZAdd(member []byte, score float64) (bool, error) {
	return z.Data.Add(member, score)
}
