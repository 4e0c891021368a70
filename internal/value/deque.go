// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package value

import "sync"

// chunkCap is the fixed capacity of one deque chunk. Growing a Deque links a
// new chunk in rather than reallocating the whole sequence.
const chunkCap = 128

type dequeChunk struct {
	data       [chunkCap][]byte
	start, end int // data[start:end] holds the live elements, end exclusive
	prev, next *dequeChunk
}

func (c *dequeChunk) len() int { return c.end - c.start }

var chunkPool = sync.Pool{
	New: func() interface{} { return new(dequeChunk) },
}

func getChunk() *dequeChunk {
	c := chunkPool.Get().(*dequeChunk)
	c.start, c.end, c.prev, c.next = 0, 0, nil, nil
	return c
}

func putChunk(c *dequeChunk) {
	for i := c.start; i < c.end; i++ {
		c.data[i] = nil
	}
	chunkPool.Put(c)
}

// Deque is an ordered sequence of byte strings supporting O(1) push/pop at
// both ends, backed by a chain of fixed-capacity chunks.
type Deque struct {
	head, tail *dequeChunk
	length     int
}

func NewDeque() *Deque {
	c := getChunk()
	return &Deque{head: c, tail: c}
}

func (d *Deque) Len() int { return d.length }

func (d *Deque) PushFront(v []byte) {
	if d.head.start == 0 {
		if d.head.len() == chunkCap {
			nc := getChunk()
			nc.start, nc.end = chunkCap, chunkCap
			nc.next = d.head
			d.head.prev = nc
			d.head = nc
			d.head.start--
			d.head.data[d.head.start] = v
			d.length++
			return
		}
		// shift existing elements right to make front room, then fill index 0
		copy(d.head.data[1:d.head.end+1], d.head.data[0:d.head.end])
		d.head.end++
		d.head.data[0] = v
		d.length++
		return
	}
	d.head.start--
	d.head.data[d.head.start] = v
	d.length++
}

func (d *Deque) PushBack(v []byte) {
	if d.tail.end == chunkCap {
		nc := getChunk()
		nc.prev = d.tail
		d.tail.next = nc
		d.tail = nc
	}
	d.tail.data[d.tail.end] = v
	d.tail.end++
	d.length++
}

func (d *Deque) PopFront() ([]byte, bool) {
	if d.length == 0 {
		return nil, false
	}
	v := d.head.data[d.head.start]
	d.head.data[d.head.start] = nil
	d.head.start++
	d.length--
	if d.head.len() == 0 && d.head.next != nil {
		old := d.head
		d.head = d.head.next
		d.head.prev = nil
		putChunk(old)
	}
	return v, true
}

func (d *Deque) PopBack() ([]byte, bool) {
	if d.length == 0 {
		return nil, false
	}
	d.tail.end--
	v := d.tail.data[d.tail.end]
	d.tail.data[d.tail.end] = nil
	d.length--
	if d.tail.len() == 0 && d.tail.prev != nil {
		old := d.tail
		d.tail = d.tail.prev
		d.tail.next = nil
		putChunk(old)
	}
	return v, true
}

// At returns the element at the given logical index (0 is the front).
func (d *Deque) At(idx int) []byte {
	if idx < 0 || idx >= d.length {
		return nil
	}
	c := d.head
	for {
		n := c.len()
		if idx < n {
			return c.data[c.start+idx]
		}
		idx -= n
		c = c.next
	}
}

// Each calls fn for every element, front to back.
func (d *Deque) Each(fn func(v []byte)) {
	for c := d.head; c != nil; c = c.next {
		for i := c.start; i < c.end; i++ {
			fn(c.data[i])
		}
	}
}

// Slice materializes the deque into a contiguous slice, front to back.
func (d *Deque) Slice() [][]byte {
	out := make([][]byte, 0, d.length)
	d.Each(func(v []byte) { out = append(out, v) })
	return out
}
