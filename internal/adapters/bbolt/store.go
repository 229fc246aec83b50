// Package bbolt implements ports.SnapshotStore using bbolt (embedded B+ tree).
// A snapshot lives in two top-level buckets: "entries" holds one JSON row per
// key (big-endian row index, so cursor order is lexicon order) and "meta"
// records where the rows came from. Writes are transactional: a crash
// mid-conversion cannot leave a half-written lexicon behind.
package bbolt

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/corey/vacha/internal/ports"
	bolt "go.etcd.io/bbolt"
)

// Bucket keys
var (
	bucketEntries = []byte("entries")
	bucketMeta    = []byte("meta")
	keyMeta       = []byte("snapshot")
)

// ErrNoLexicon is returned by Load when the database holds no snapshot.
var ErrNoLexicon = errors.New("no lexicon snapshot in store")

// openTimeout bounds how long Open waits for the file lock.
const openTimeout = 1 * time.Second

// Store implements ports.SnapshotStore backed by bbolt.
type Store struct {
	db   *bolt.DB
	path string
}

var _ ports.SnapshotStore = (*Store)(nil)

// NewStore opens (or creates) a bbolt database at the given path for writing.
func NewStore(path string) (*Store, error) {
	return open(path, false)
}

// OpenReadOnly opens an existing database with a shared lock. Query paths use
// this so several processes can read one snapshot at once.
func OpenReadOnly(path string) (*Store, error) {
	return open(path, true)
}

func open(path string, readOnly bool) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: openTimeout, ReadOnly: readOnly})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Describe implements ports.Source.
func (s *Store) Describe() string {
	return "bbolt:" + s.path
}

// SaveRows replaces the stored snapshot with rows in one transaction.
func (s *Store) SaveRows(origin string, rows []ports.Row) error {
	values := make([][]byte, len(rows))
	for i, r := range rows {
		v, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("marshal row %d: %w", i, err)
		}
		values[i] = v
	}
	meta, err := encodeMeta(Meta{
		Origin:      origin,
		Rows:        len(rows),
		ConvertedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("encode meta: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketEntries); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
			return err
		}
		eb, err := tx.CreateBucket(bucketEntries)
		if err != nil {
			return err
		}
		// Keys are appended in ascending order; pack leaves full.
		eb.FillPercent = 1.0
		for i, v := range values {
			if err := eb.Put(rowKey(i), v); err != nil {
				return err
			}
		}
		mb, err := tx.CreateBucketIfNotExists(bucketMeta)
		if err != nil {
			return err
		}
		return mb.Put(keyMeta, meta)
	})
}

// Load implements ports.Source. It returns ErrNoLexicon when no snapshot has
// been saved, and nil rows on any decoding error.
func (s *Store) Load() ([]ports.Row, error) {
	var rows []ports.Row
	err := s.db.View(func(tx *bolt.Tx) error {
		eb := tx.Bucket(bucketEntries)
		if eb == nil {
			return ErrNoLexicon
		}
		rows = make([]ports.Row, 0, eb.Stats().KeyN)
		return eb.ForEach(func(k, v []byte) error {
			idx, err := keyIndex(k)
			if err != nil {
				return err
			}
			if idx != len(rows) {
				return fmt.Errorf("row key %d out of sequence (want %d)", idx, len(rows))
			}
			// json.Unmarshal copies; v is only valid inside the tx.
			var r ports.Row
			if err := json.Unmarshal(v, &r); err != nil {
				return fmt.Errorf("unmarshal row %d: %w", idx, err)
			}
			rows = append(rows, r)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Meta returns the snapshot description. Returns ErrNoLexicon when no
// snapshot has been saved.
func (s *Store) Meta() (Meta, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		mb := tx.Bucket(bucketMeta)
		if mb == nil {
			return ErrNoLexicon
		}
		v := mb.Get(keyMeta)
		if v == nil {
			return ErrNoLexicon
		}
		// Copy bytes out of the transaction (bbolt slices are only valid within tx)
		data = make([]byte, len(v))
		copy(data, v)
		return nil
	})
	if err != nil {
		return Meta{}, err
	}
	return decodeMeta(data)
}
