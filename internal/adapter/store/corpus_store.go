package store

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.etcd.io/bbolt"

	"corpusqa/internal/domain"
	"corpusqa/internal/port"
)

var (
	bucketVectors  = []byte("vectors")
	bucketPassages = []byte("passages")
	bucketMeta     = []byte("meta")
	keyMeta        = []byte("corpus_meta")
)

// Meta describes the embedding space the index was built with. A serving
// process must embed queries with the same model and dimension, or
// retrieval scores are meaningless.
type Meta struct {
	EmbeddingModel string `json:"embedding_model"`
	Dimension      int    `json:"dimension"`
	Passages       int    `json:"passages"`
	BuiltAt        int64  `json:"built_at"`
}

type storedVector struct {
	Vector []float32 `json:"v"`
}

// CorpusStore holds the passage records and their unit-length embeddings.
// Everything is loaded into memory once at open and never mutated while
// serving; index position i corresponds to passage record i. Rebuilds
// are wholesale via Rebuild, never incremental.
type CorpusStore struct {
	db       *bbolt.DB
	meta     Meta
	vectors  [][]float32
	passages []domain.Passage
}

var _ port.VectorIndex = (*CorpusStore)(nil)
var _ port.PassageStore = (*CorpusStore)(nil)

// Open loads a corpus index for serving. It fails if the file is missing
// or its contents do not match the recorded metadata.
func Open(path string) (*CorpusStore, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("corpus index not found at %s: %w", path, err)
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus index: %w", err)
	}

	s := &CorpusStore{db: db}
	if err := s.load(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *CorpusStore) load() error {
	err := s.db.View(func(tx *bbolt.Tx) error {
		mb := tx.Bucket(bucketMeta)
		if mb == nil {
			return fmt.Errorf("corpus index has no metadata; rerun ingestion")
		}
		data := mb.Get(keyMeta)
		if data == nil {
			return fmt.Errorf("corpus index has no metadata; rerun ingestion")
		}
		if err := json.Unmarshal(data, &s.meta); err != nil {
			return fmt.Errorf("corrupt index metadata: %w", err)
		}

		vb := tx.Bucket(bucketVectors)
		pb := tx.Bucket(bucketPassages)
		if vb == nil || pb == nil {
			return fmt.Errorf("corpus index is missing buckets; rerun ingestion")
		}

		s.vectors = make([][]float32, 0, s.meta.Passages)
		s.passages = make([]domain.Passage, 0, s.meta.Passages)

		// Keys are big-endian positions, so cursor order is index order.
		if err := vb.ForEach(func(k, v []byte) error {
			var sv storedVector
			if err := json.Unmarshal(v, &sv); err != nil {
				return fmt.Errorf("corrupt vector at position %d: %w", btoi(k), err)
			}
			if len(sv.Vector) != s.meta.Dimension {
				return fmt.Errorf("vector at position %d has dimension %d, index expects %d",
					btoi(k), len(sv.Vector), s.meta.Dimension)
			}
			s.vectors = append(s.vectors, sv.Vector)
			return nil
		}); err != nil {
			return err
		}

		if err := pb.ForEach(func(k, v []byte) error {
			var p domain.Passage
			if err := json.Unmarshal(v, &p); err != nil {
				return fmt.Errorf("corrupt passage at position %d: %w", btoi(k), err)
			}
			s.passages = append(s.passages, p)
			return nil
		}); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return err
	}

	if len(s.vectors) != s.meta.Passages || len(s.passages) != s.meta.Passages {
		return fmt.Errorf("corpus index records %d passages but holds %d vectors and %d passages",
			s.meta.Passages, len(s.vectors), len(s.passages))
	}
	return nil
}

// Meta returns the index build metadata.
func (s *CorpusStore) Meta() Meta {
	return s.meta
}

// Count returns the number of indexed passages.
func (s *CorpusStore) Count() int {
	return len(s.passages)
}

// GetPassage returns the passage record at the given index position.
func (s *CorpusStore) GetPassage(position int) (domain.Passage, error) {
	if position < 0 || position >= len(s.passages) {
		return domain.Passage{}, fmt.Errorf("passage position out of range: %d", position)
	}
	return s.passages[position], nil
}

// Search returns up to k nearest entries by inner product, highest
// score first. Stored vectors are unit length; the caller normalizes
// the query, so the product is cosine similarity.
func (s *CorpusStore) Search(query []float32, k int) ([]port.Hit, error) {
	if len(query) != s.meta.Dimension {
		return nil, fmt.Errorf("query dimension mismatch: expected %d, got %d", s.meta.Dimension, len(query))
	}
	if len(s.vectors) == 0 || k <= 0 {
		return nil, nil
	}

	hits := make([]port.Hit, 0, len(s.vectors))
	for i, vec := range s.vectors {
		var dot float64
		for j := range vec {
			dot += float64(query[j]) * float64(vec[j])
		}
		hits = append(hits, port.Hit{Position: i, Score: dot})
	}

	sort.Slice(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

// Close releases the underlying database file.
func (s *CorpusStore) Close() error {
	return s.db.Close()
}

// Rebuild replaces the index file wholesale with the given passages and
// their unit-length embedding vectors, positionally aligned.
func Rebuild(path string, meta Meta, passages []domain.Passage, vectors [][]float32) error {
	if len(passages) != len(vectors) {
		return fmt.Errorf("passage/vector count mismatch: %d vs %d", len(passages), len(vectors))
	}
	for i, v := range vectors {
		if len(v) != meta.Dimension {
			return fmt.Errorf("vector %d has dimension %d, expected %d", i, len(v), meta.Dimension)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return fmt.Errorf("failed to open corpus index for rebuild: %w", err)
	}
	defer db.Close()

	meta.Passages = len(passages)
	if meta.BuiltAt == 0 {
		meta.BuiltAt = time.Now().Unix()
	}

	return db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketVectors, bucketPassages, bucketMeta} {
			if tx.Bucket(name) != nil {
				if err := tx.DeleteBucket(name); err != nil {
					return fmt.Errorf("failed to clear bucket %s: %w", name, err)
				}
			}
			if _, err := tx.CreateBucket(name); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", name, err)
			}
		}

		metaData, err := json.Marshal(meta)
		if err != nil {
			return err
		}
		if err := tx.Bucket(bucketMeta).Put(keyMeta, metaData); err != nil {
			return err
		}

		vb := tx.Bucket(bucketVectors)
		pb := tx.Bucket(bucketPassages)
		for i := range passages {
			key := itob(i)

			vecData, err := json.Marshal(storedVector{Vector: vectors[i]})
			if err != nil {
				return err
			}
			if err := vb.Put(key, vecData); err != nil {
				return err
			}

			pData, err := json.Marshal(passages[i])
			if err != nil {
				return err
			}
			if err := pb.Put(key, pData); err != nil {
				return err
			}
		}

		return nil
	})
}

func itob(i int) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(i))
	return b
}

func btoi(b []byte) int {
	if len(b) != 8 {
		return -1
	}
	return int(binary.BigEndian.Uint64(b))
}
