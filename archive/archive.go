// Package archive persists closed-ledger headers to a local bbolt database,
// write-behind and best-effort, for crash diagnosis only. It is never
// consulted for authoritative reads: ledger.Manager's in-memory history
// remains the only source of truth, per the non-goal on durable
// account-state persistence. Adapted from the teacher's node/store/db.go
// (which persists full blocks plus a UTXO set) down to the single
// ledgers_by_sequence bucket this daemon actually needs.
package archive

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/SMC17/rippled-zig-sub000/ledger"
	bolt "go.etcd.io/bbolt"
)

var bucketLedgersBySeq = []byte("ledgers_by_sequence")

// Store is a best-effort archive of closed ledger headers.
type Store struct {
	db *bolt.DB
}

// Open opens (creating if necessary) the bbolt database at
// filepath.Join(dataDir, "ledgers.db").
func Open(dataDir string) (*Store, error) {
	if dataDir == "" {
		return nil, fmt.Errorf("archive: data dir required")
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("archive: create data dir: %w", err)
	}

	path := filepath.Join(dataDir, "ledgers.db")
	bdb, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("archive: open bbolt: %w", err)
	}

	if err := bdb.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketLedgersBySeq)
		return err
	}); err != nil {
		_ = bdb.Close()
		return nil, fmt.Errorf("archive: create bucket: %w", err)
	}

	return &Store{db: bdb}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func seqKey(seq uint32) []byte {
	key := make([]byte, 4)
	binary.BigEndian.PutUint32(key, seq)
	return key
}

// PutLedger writes l's header to the archive, keyed by sequence.
func (s *Store) PutLedger(l ledger.Ledger) error {
	data, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("archive: marshal ledger %d: %w", l.Sequence, err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketLedgersBySeq).Put(seqKey(l.Sequence), data)
	})
}

// GetLedger reads a previously archived ledger header by sequence.
func (s *Store) GetLedger(seq uint32) (ledger.Ledger, bool, error) {
	var l ledger.Ledger
	var found bool
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketLedgersBySeq).Get(seqKey(seq))
		if v == nil {
			return nil
		}
		found = true
		return json.Unmarshal(v, &l)
	})
	if err != nil {
		return ledger.Ledger{}, false, fmt.Errorf("archive: get ledger %d: %w", seq, err)
	}
	return l, found, nil
}

// Count returns the number of archived ledger headers.
func (s *Store) Count() (int, error) {
	n := 0
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketLedgersBySeq).ForEach(func(_, _ []byte) error {
			n++
			return nil
		})
	})
	return n, err
}
