// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package value

import (
	"bytes"
	"math"
	"sort"
)

// ZEntry is one (member, score) pair of a sorted set.
type ZEntry struct {
	Member []byte
	Score  float64
}

// less defines the total order: by score ascending, ties broken by the
// member's lexicographic byte order.
func less(a, b ZEntry) bool {
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	return bytes.Compare(a.Member, b.Member) < 0
}

// ZSet keeps its entries in a single score-member-ordered slice kept in
// order with sort.Search, backed by a map for O(1) "does this member
// already exist" lookups before the reinsert-on-update dance required by
// ZADD.
type ZSet struct {
	entries []ZEntry
	scores  map[string]float64
}

func NewZSet() *ZSet {
	return &ZSet{scores: make(map[string]float64)}
}

func (z *ZSet) Len() int { return len(z.entries) }

// Add inserts member with score, or updates its score if member already
// exists. Returns whether the member is newly added. Rejects NaN scores.
func (z *ZSet) Add(member []byte, score float64) (bool, error) {
	if math.IsNaN(score) {
		return false, NewInvalidArgument("score is not a number (NaN)")
	}

	key := string(member)
	oldScore, exists := z.scores[key]
	if exists {
		z.remove(ZEntry{Member: member, Score: oldScore})
	}

	e := ZEntry{Member: append([]byte(nil), member...), Score: score}
	i := sort.Search(len(z.entries), func(i int) bool { return !less(z.entries[i], e) })
	z.entries = append(z.entries, ZEntry{})
	copy(z.entries[i+1:], z.entries[i:])
	z.entries[i] = e
	z.scores[key] = score

	return !exists, nil
}

func (z *ZSet) remove(e ZEntry) {
	i := sort.Search(len(z.entries), func(i int) bool { return !less(z.entries[i], e) })
	for i < len(z.entries) && bytes.Equal(z.entries[i].Member, e.Member) {
		z.entries = append(z.entries[:i], z.entries[i+1:]...)
		return
	}
}

// Score returns the member's score and whether it is present.
func (z *ZSet) Score(member []byte) (float64, bool) {
	s, ok := z.scores[string(member)]
	return s, ok
}

// Each visits every entry in ascending (score, member) order.
func (z *ZSet) Each(fn func(e ZEntry)) {
	for _, e := range z.entries {
		fn(e)
	}
}
