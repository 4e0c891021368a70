// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package snapshot implements the binary persistence codec: a
// self-describing format that serializes all 16 databases (and the
// replication record) to disk and restores them byte-for-byte on reload.
//
// File format:
//
//	Header (12 bytes):
//	  magic:   [4]byte  "RCDB"
//	  version: uint32   LE
//	  ndbs:    uint32   LE
//
//	Per database:
//	  nkeys: uint32   LE
//	  Per key:
//	    klen:     uint16  LE
//	    key:      []byte
//	    kind:     uint8    (value.Kind)
//	    hasTTL:   uint8    (0 or 1)
//	    expireAt: int64  LE (present only if hasTTL == 1)
//	    payload:  (kind-specific, see encodeValue/decodeValue)
//
//	Trailer:
//	  replication: see encodeReplication/decodeReplication
package snapshot

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rcache-project/rcache/internal/keyspace"
	"github.com/rcache-project/rcache/internal/value"
)

var (
	magic     = [4]byte{'R', 'C', 'D', 'B'}
	fileVer   = uint32(1)
	byteOrder = binary.LittleEndian
)

const (
	filePerms = 0o640
	dirPerms  = 0o750
)

// Write atomically persists ks to filePath: it encodes into a temporary
// file in the same directory, then renames over the destination, so a
// crash mid-write never leaves a truncated snapshot in place.
func Write(filePath string, ks *keyspace.Keyspace) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, dirPerms); err != nil {
		return fmt.Errorf("snapshot: creating directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".rcache-snapshot-*.tmp")
	if err != nil {
		return fmt.Errorf("snapshot: creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	bw := bufio.NewWriter(tmp)
	if err := encode(bw, ks); err != nil {
		tmp.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, filePath)
}

func encode(w io.Writer, ks *keyspace.Keyspace) error {
	if _, err := w.Write(magic[:]); err != nil {
		return err
	}
	if err := binary.Write(w, byteOrder, fileVer); err != nil {
		return err
	}
	if err := binary.Write(w, byteOrder, uint32(keyspace.NumDBs)); err != nil {
		return err
	}
	for i := 0; i < keyspace.NumDBs; i++ {
		if err := encodeDB(w, ks.DBs[i]); err != nil {
			return fmt.Errorf("snapshot: encoding db %d: %w", i, err)
		}
	}
	if err := encodeReplication(w, ks.Replication); err != nil {
		return fmt.Errorf("snapshot: encoding replication record: %w", err)
	}
	return nil
}

// encodeReplication persists the node-metadata record carried for snapshot
// compatibility; the core never acts on it beyond round-tripping it.
func encodeReplication(w io.Writer, r keyspace.Replication) error {
	if err := binary.Write(w, byteOrder, uint8(r.Role)); err != nil {
		return err
	}
	switch r.Role {
	case keyspace.RoleMaster:
		if err := binary.Write(w, byteOrder, r.Master.ConnectedSlaves); err != nil {
			return err
		}
		if err := binary.Write(w, byteOrder, uint32(len(r.Master.Slaves))); err != nil {
			return err
		}
		for _, s := range r.Master.Slaves {
			if err := writeString(w, s.IP); err != nil {
				return err
			}
			if err := binary.Write(w, byteOrder, s.Port); err != nil {
				return err
			}
			if err := binary.Write(w, byteOrder, boolByte(s.Online)); err != nil {
				return err
			}
			if err := binary.Write(w, byteOrder, s.Offset); err != nil {
				return err
			}
			if err := binary.Write(w, byteOrder, s.LagMs); err != nil {
				return err
			}
		}
	case keyspace.RoleSlave:
		if err := writeString(w, r.Slave.MasterHost); err != nil {
			return err
		}
		if err := binary.Write(w, byteOrder, r.Slave.MasterPort); err != nil {
			return err
		}
		if err := writeString(w, r.Slave.MasterLinkStatus); err != nil {
			return err
		}
	}
	return nil
}

func decodeReplication(r io.Reader) (keyspace.Replication, error) {
	var role uint8
	if err := binary.Read(r, byteOrder, &role); err != nil {
		return keyspace.Replication{}, err
	}
	rep := keyspace.Replication{Role: keyspace.Role(role)}
	switch rep.Role {
	case keyspace.RoleMaster:
		if err := binary.Read(r, byteOrder, &rep.Master.ConnectedSlaves); err != nil {
			return rep, err
		}
		var n uint32
		if err := binary.Read(r, byteOrder, &n); err != nil {
			return rep, err
		}
		rep.Master.Slaves = make([]keyspace.NestedSlaveInfo, n)
		for i := range rep.Master.Slaves {
			ip, err := readString(r)
			if err != nil {
				return rep, err
			}
			var port int32
			if err := binary.Read(r, byteOrder, &port); err != nil {
				return rep, err
			}
			var online uint8
			if err := binary.Read(r, byteOrder, &online); err != nil {
				return rep, err
			}
			var offset uint64
			if err := binary.Read(r, byteOrder, &offset); err != nil {
				return rep, err
			}
			var lag int32
			if err := binary.Read(r, byteOrder, &lag); err != nil {
				return rep, err
			}
			rep.Master.Slaves[i] = keyspace.NestedSlaveInfo{
				IP: ip, Port: port, Online: online == 1, Offset: offset, LagMs: lag,
			}
		}
	case keyspace.RoleSlave:
		host, err := readString(r)
		if err != nil {
			return rep, err
		}
		rep.Slave.MasterHost = host
		if err := binary.Read(r, byteOrder, &rep.Slave.MasterPort); err != nil {
			return rep, err
		}
		status, err := readString(r)
		if err != nil {
			return rep, err
		}
		rep.Slave.MasterLinkStatus = status
	default:
		return rep, value.NewMalformed(fmt.Sprintf("unknown replication role %d", role))
	}
	return rep, nil
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

func writeString(w io.Writer, s string) error {
	return writeBytes(w, []byte(s))
}

func readString(r io.Reader) (string, error) {
	b, err := readBytes(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func encodeDB(w io.Writer, db *keyspace.DB) error {
	if err := binary.Write(w, byteOrder, uint32(len(db.Data))); err != nil {
		return err
	}
	for k, v := range db.Data {
		kb := []byte(k)
		if err := binary.Write(w, byteOrder, uint16(len(kb))); err != nil {
			return err
		}
		if _, err := w.Write(kb); err != nil {
			return err
		}
		if err := binary.Write(w, byteOrder, uint8(v.Kind())); err != nil {
			return err
		}
		ts, hasTTL := db.ExpireAt[k]
		if hasTTL {
			if err := binary.Write(w, byteOrder, uint8(1)); err != nil {
				return err
			}
			if err := binary.Write(w, byteOrder, ts); err != nil {
				return err
			}
		} else {
			if err := binary.Write(w, byteOrder, uint8(0)); err != nil {
				return err
			}
		}
		if err := encodeValue(w, v); err != nil {
			return err
		}
	}
	return nil
}

// Load reads a snapshot file back into a fresh Keyspace. A missing file is
// reported via the returned error; callers that want "start empty if no
// snapshot exists yet" should check os.IsNotExist on it.
func Load(filePath string) (*keyspace.Keyspace, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	br := bufio.NewReader(f)
	var got [4]byte
	if _, err := io.ReadFull(br, got[:]); err != nil {
		return nil, fmt.Errorf("snapshot: reading magic: %w", err)
	}
	if got != magic {
		return nil, value.NewMalformed("not a valid snapshot file")
	}
	var version uint32
	if err := binary.Read(br, byteOrder, &version); err != nil {
		return nil, fmt.Errorf("snapshot: reading version: %w", err)
	}
	if version != fileVer {
		return nil, value.NewMalformed(fmt.Sprintf("unsupported snapshot version %d", version))
	}
	var ndbs uint32
	if err := binary.Read(br, byteOrder, &ndbs); err != nil {
		return nil, fmt.Errorf("snapshot: reading db count: %w", err)
	}
	if int(ndbs) != keyspace.NumDBs {
		return nil, value.NewMalformed(fmt.Sprintf("snapshot has %d databases, expected %d", ndbs, keyspace.NumDBs))
	}

	ks := keyspace.New()
	for i := 0; i < keyspace.NumDBs; i++ {
		if err := decodeDB(br, ks.DBs[i]); err != nil {
			return nil, fmt.Errorf("snapshot: decoding db %d: %w", i, err)
		}
	}
	rep, err := decodeReplication(br)
	if err != nil {
		return nil, fmt.Errorf("snapshot: decoding replication record: %w", err)
	}
	ks.Replication = rep
	return ks, nil
}

func decodeDB(r io.Reader, db *keyspace.DB) error {
	var nkeys uint32
	if err := binary.Read(r, byteOrder, &nkeys); err != nil {
		return err
	}
	for i := uint32(0); i < nkeys; i++ {
		var klen uint16
		if err := binary.Read(r, byteOrder, &klen); err != nil {
			return err
		}
		kb := make([]byte, klen)
		if _, err := io.ReadFull(r, kb); err != nil {
			return err
		}
		var kind uint8
		if err := binary.Read(r, byteOrder, &kind); err != nil {
			return err
		}
		var hasTTL uint8
		if err := binary.Read(r, byteOrder, &hasTTL); err != nil {
			return err
		}
		if hasTTL == 1 {
			var ts int64
			if err := binary.Read(r, byteOrder, &ts); err != nil {
				return err
			}
			db.ExpireAt[string(kb)] = ts
		}
		v, err := decodeValue(r, value.Kind(kind))
		if err != nil {
			return err
		}
		db.Data[string(kb)] = v
	}
	return nil
}
