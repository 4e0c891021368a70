// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package snapshot

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/rcache-project/rcache/internal/value"
)

func encodeValue(w io.Writer, v value.Value) error {
	switch vv := v.(type) {
	case *value.String:
		return writeBytes(w, vv.Data)
	case *value.List:
		items := vv.Data.Slice()
		if err := binary.Write(w, byteOrder, uint32(len(items))); err != nil {
			return err
		}
		for _, it := range items {
			if err := writeBytes(w, it); err != nil {
				return err
			}
		}
		return nil
	case *value.Set:
		members := vv.Members()
		if err := binary.Write(w, byteOrder, uint32(len(members))); err != nil {
			return err
		}
		for _, m := range members {
			if err := writeBytes(w, m); err != nil {
				return err
			}
		}
		return nil
	case *value.Hash:
		pairs := vv.HGetAll() // interleaved field, value, field, value, ...
		if err := binary.Write(w, byteOrder, uint32(len(pairs)/2)); err != nil {
			return err
		}
		for _, b := range pairs {
			if err := writeBytes(w, b); err != nil {
				return err
			}
		}
		return nil
	case *value.SortedSet:
		var entries []value.ZEntry
		vv.Data.Each(func(e value.ZEntry) {
			entries = append(entries, e)
		})
		if err := binary.Write(w, byteOrder, uint32(len(entries))); err != nil {
			return err
		}
		for _, e := range entries {
			if err := writeBytes(w, e.Member); err != nil {
				return err
			}
			if err := binary.Write(w, byteOrder, e.Score); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("snapshot: unknown value kind %v", v.Kind())
	}
}

func decodeValue(r io.Reader, kind value.Kind) (value.Value, error) {
	switch kind {
	case value.KindString:
		b, err := readBytes(r)
		if err != nil {
			return nil, err
		}
		return value.NewString(b), nil
	case value.KindList:
		var n uint32
		if err := binary.Read(r, byteOrder, &n); err != nil {
			return nil, err
		}
		l := value.NewList()
		for i := uint32(0); i < n; i++ {
			b, err := readBytes(r)
			if err != nil {
				return nil, err
			}
			l.RPush(b)
		}
		return l, nil
	case value.KindSet:
		var n uint32
		if err := binary.Read(r, byteOrder, &n); err != nil {
			return nil, err
		}
		s := value.NewSet()
		for i := uint32(0); i < n; i++ {
			b, err := readBytes(r)
			if err != nil {
				return nil, err
			}
			s.SAdd(b)
		}
		return s, nil
	case value.KindHash:
		var n uint32
		if err := binary.Read(r, byteOrder, &n); err != nil {
			return nil, err
		}
		h := value.NewHash()
		for i := uint32(0); i < n; i++ {
			field, err := readBytes(r)
			if err != nil {
				return nil, err
			}
			val, err := readBytes(r)
			if err != nil {
				return nil, err
			}
			h.HSet(field, val)
		}
		return h, nil
	case value.KindSortedSet:
		var n uint32
		if err := binary.Read(r, byteOrder, &n); err != nil {
			return nil, err
		}
		z := value.NewSortedSet()
		for i := uint32(0); i < n; i++ {
			member, err := readBytes(r)
			if err != nil {
				return nil, err
			}
			var score float64
			if err := binary.Read(r, byteOrder, &score); err != nil {
				return nil, err
			}
			if _, err := z.ZAdd(member, score); err != nil {
				return nil, err
			}
		}
		return z, nil
	default:
		return nil, value.NewMalformed(fmt.Sprintf("unknown value kind %d", kind))
	}
}

func writeBytes(w io.Writer, b []byte) error {
	if err := binary.Write(w, byteOrder, uint32(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

func readBytes(r io.Reader) ([]byte, error) {
	var n uint32
	if err := binary.Read(r, byteOrder, &n); err != nil {
		return nil, err
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return b, nil
}
