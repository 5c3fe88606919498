// Package store persists emoji picker state and usage counts in a bbolt
// database. The picker model is stored as JSON under the "picker" bucket;
// usage counts live in the "usage" bucket keyed by shortname.
package store

import (
	"cmp"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/m96-chan/emojikit/internal/consts"
	"github.com/m96-chan/emojikit/internal/emoji"
)

var (
	bucketPicker = []byte("picker")
	bucketUsage  = []byte("usage")
	keyState     = []byte("state")
)

// PickerState is the persisted emoji picker model.
type PickerState struct {
	CurrentCategory string `json:"current_category"`
	CurrentSkinTone string `json:"current_skintone"`
	ScrollPosition  int    `json:"scroll_position"`
}

// DefaultPickerState returns the state of a picker that was never opened.
func DefaultPickerState() PickerState {
	return PickerState{CurrentCategory: string(emoji.CategorySmileys)}
}

// Usage is how often a shortname was picked.
type Usage struct {
	Shortname string
	Count     uint64
}

// Store wraps a bbolt database.
type Store struct {
	db *bolt.DB
}

// DefaultPath returns the default database path inside the cache directory.
func DefaultPath() string {
	return filepath.Join(consts.CacheDir, "picker.db")
}

// Open opens (or creates) the database at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening picker store: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, b := range [][]byte{bucketPicker, bucketUsage} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating picker buckets: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// LoadState returns the saved picker state, or DefaultPickerState if none
// was saved.
func (s *Store) LoadState() (PickerState, error) {
	state := DefaultPickerState()
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketPicker).Get(keyState)
		if v == nil {
			return nil
		}
		return json.Unmarshal(v, &state)
	})
	if err != nil {
		return DefaultPickerState(), fmt.Errorf("loading picker state: %w", err)
	}
	if state.CurrentCategory == "" {
		state.CurrentCategory = string(emoji.CategorySmileys)
	}
	return state, nil
}

// SaveState persists the picker state.
func (s *Store) SaveState(state PickerState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal picker state: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketPicker).Put(keyState, data)
	})
}

// RecordUse increments the usage count of shortname.
func (s *Store) RecordUse(shortname string) error {
	if shortname == "" {
		return fmt.Errorf("record use: empty shortname")
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketUsage)
		var n uint64
		if v := b.Get([]byte(shortname)); len(v) == 8 {
			n = binary.BigEndian.Uint64(v)
		}
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], n+1)
		return b.Put([]byte(shortname), buf[:])
	})
}

// Frequent returns up to limit shortnames ordered by descending count, ties
// broken by shortname. A limit <= 0 returns nothing.
func (s *Store) Frequent(limit int) ([]Usage, error) {
	if limit <= 0 {
		return nil, nil
	}
	var out []Usage
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketUsage).ForEach(func(k, v []byte) error {
			if len(v) != 8 {
				return nil
			}
			out = append(out, Usage{Shortname: string(k), Count: binary.BigEndian.Uint64(v)})
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("reading usage: %w", err)
	}
	slices.SortFunc(out, func(a, b Usage) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Shortname, b.Shortname)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ResetUsage clears all usage counts.
func (s *Store) ResetUsage() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketUsage); err != nil {
			return err
		}
		_, err := tx.CreateBucket(bucketUsage)
		return err
	})
}
