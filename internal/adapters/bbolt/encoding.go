// Key and metadata encoding for lexicon snapshots.
//
// Row keys are the row index as a 4-byte big-endian integer, so bbolt's
// byte-ordered cursor walks rows in lexicon order.
//
// The meta record is gob-encoded; it is small and only read by `vacha config`
// and the convert command.
package bbolt

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"time"
)

// keySize is the byte size of an encoded row key.
const keySize = 4

// Meta describes a stored snapshot.
type Meta struct {
	Origin      string
	Rows        int
	ConvertedAt time.Time
}

func rowKey(i int) []byte {
	k := make([]byte, keySize)
	binary.BigEndian.PutUint32(k, uint32(i))
	return k
}

// keyIndex decodes a row key. Every read is length-checked to avoid panics
// on corrupt data.
func keyIndex(k []byte) (int, error) {
	if len(k) != keySize {
		return 0, fmt.Errorf("row key has %d bytes, want %d", len(k), keySize)
	}
	return int(binary.BigEndian.Uint32(k)), nil
}

func encodeMeta(m Meta) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeMeta(data []byte) (Meta, error) {
	var m Meta
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&m); err != nil {
		return Meta{}, fmt.Errorf("decode meta: %w", err)
	}
	return m, nil
}
