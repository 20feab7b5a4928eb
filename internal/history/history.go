// Package history keeps a capped, newest-first record of decoded labels and a
// compressed copy of each payload so it can be saved again later.
package history

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	"github.com/zeebo/blake3"

	"github.com/example/labeldrop/internal/payload"
)

const (
	indexFileName = "history.json"
	blobDirName   = "blobs"
	DefaultLimit  = 100
)

var (
	ErrNotFound       = errors.New("history entry not found")
	ErrDigestMismatch = errors.New("archived payload does not match its digest")
)

// Entry is a single decoded payload record.
type Entry struct {
	ID        string `json:"id"`
	Digest    string `json:"digest"`
	FileName  string `json:"file_name"`
	Extension string `json:"extension"`
	Size      int64  `json:"size"`
	SavedTo   string `json:"saved_to,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Store is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	dir     string
	limit   int
	entries []Entry
	now     func() time.Time
}

// Open loads the index in dir, creating the directory if needed. A missing
// index starts an empty history; an unreadable or corrupt one is an error so
// it is never overwritten.
func Open(dir string, limit int) (*Store, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if err := os.MkdirAll(filepath.Join(dir, blobDirName), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history dir: %w", err)
	}

	s := &Store{dir: dir, limit: limit, now: time.Now}

	data, err := os.ReadFile(filepath.Join(dir, indexFileName))
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	if err := json.Unmarshal(data, &s.entries); err != nil {
		return nil, fmt.Errorf("failed to parse history: %w", err)
	}
	return s, nil
}

// Add archives res and records it. savedTo is the path the bytes were
// written to, if any.
func (s *Store) Add(res payload.Result, savedTo string) (Entry, error) {
	sum := blake3.Sum256(res.Data)
	digest := hex.EncodeToString(sum[:])

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writeBlob(digest, res.Data); err != nil {
		return Entry{}, err
	}

	entry := Entry{
		ID:        uuid.NewString(),
		Digest:    digest,
		FileName:  res.FileName,
		Extension: res.Extension,
		Size:      int64(res.Size()),
		SavedTo:   savedTo,
		Timestamp: s.now().UTC().Format(time.RFC3339),
	}

	entries := append([]Entry{entry}, s.entries...)
	var dropped []Entry
	if len(entries) > s.limit {
		dropped = entries[s.limit:]
		entries = entries[:s.limit]
	}

	if err := s.save(entries); err != nil {
		return Entry{}, err
	}
	s.entries = entries
	s.pruneBlobs(dropped)
	return entry, nil
}

// List returns a copy of the entries, newest first.
func (s *Store) List() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Get returns the entry with the given id.
func (s *Store) Get(id string) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return Entry{}, ErrNotFound
}

// Load returns the archived bytes of the entry with the given id.
func (s *Store) Load(id string) (Entry, []byte, error) {
	entry, err := s.Get(id)
	if err != nil {
		return Entry{}, nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	compressed, err := os.ReadFile(s.blobPath(entry.Digest))
	if err != nil {
		return Entry{}, nil, fmt.Errorf("failed to read archived payload: %w", err)
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return Entry{}, nil, fmt.Errorf("failed to create zstd reader: %w", err)
	}
	defer dec.Close()

	data, err := dec.DecodeAll(compressed, nil)
	if err != nil {
		return Entry{}, nil, fmt.Errorf("failed to decompress archived payload: %w", err)
	}

	sum := blake3.Sum256(data)
	if hex.EncodeToString(sum[:]) != entry.Digest {
		return Entry{}, nil, ErrDigestMismatch
	}
	return entry, data, nil
}

// Clear removes every entry and archived payload.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.save(nil); err != nil {
		return err
	}
	dropped := s.entries
	s.entries = nil
	s.pruneBlobs(dropped)
	return nil
}

func (s *Store) blobPath(digest string) string {
	return filepath.Join(s.dir, blobDirName, digest+".zst")
}

func (s *Store) writeBlob(digest string, data []byte) error {
	path := s.blobPath(digest)
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return fmt.Errorf("failed to create zstd writer: %w", err)
	}
	defer enc.Close()

	if err := os.WriteFile(path, enc.EncodeAll(data, nil), 0644); err != nil {
		return fmt.Errorf("failed to archive payload: %w", err)
	}
	return nil
}

// pruneBlobs deletes blobs of dropped entries no remaining entry references.
// Caller holds s.mu.
func (s *Store) pruneBlobs(dropped []Entry) {
	live := make(map[string]bool, len(s.entries))
	for _, e := range s.entries {
		live[e.Digest] = true
	}
	for _, e := range dropped {
		if !live[e.Digest] {
			_ = os.Remove(s.blobPath(e.Digest))
		}
	}
}

func (s *Store) save(entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	return os.WriteFile(filepath.Join(s.dir, indexFileName), data, 0644)
}
