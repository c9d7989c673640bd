package store

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pkg.jsn.cam/lorem/pkg/lorem"
	"pkg.jsn.cam/lorem/pkg/storage"
)

const vocabularyBucket = "vocabularies"

var (
	ErrNotFound    = errors.New("vocabulary not found")
	ErrInvalidName = errors.New("invalid vocabulary name")
)

var nameRe = regexp.MustCompile(`^[a-z0-9_-]{1,64}$`)

// Vocabulary is a named custom word pool.
type Vocabulary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Words     []string  `json:"words"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store persists vocabularies on a storage.Backend.
type Store struct {
	mu      sync.Mutex // serializes read-modify-write in Put and Delete
	backend storage.Backend
	table   *storage.Table[Vocabulary]
	logger  *zap.Logger
	now     func() time.Time
}

// New wraps an already opened backend. Close closes it.
func New(backend storage.Backend, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	table, err := storage.NewTable[Vocabulary](backend, vocabularyBucket)
	if err != nil {
		return nil, err
	}
	return &Store{
		backend: backend,
		table:   table,
		logger:  logger,
		now:     time.Now,
	}, nil
}

// Open opens the backend at path (creating parent directories) and wraps it.
// An empty path or storage.MemoryPath gives a non-persistent store.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if path != "" && path != storage.MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}
	backend, err := storage.Open(path)
	if err != nil {
		return nil, err
	}
	s, err := New(backend, logger)
	if err != nil {
		backend.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.backend.Close()
}

// ValidateName checks the 1-64 character [a-z0-9_-] rule.
func ValidateName(name string) error {
	if !nameRe.MatchString(name) {
		return fmt.Errorf("%w: %q (want 1-64 chars of a-z, 0-9, _ or -)", ErrInvalidName, name)
	}
	return nil
}

// Put creates or replaces the vocabulary called name. Replacing keeps the ID
// and creation time.
func (s *Store) Put(ctx context.Context, name string, words []string) (Vocabulary, error) {
	if err := ctx.Err(); err != nil {
		return Vocabulary{}, err
	}
	if err := ValidateName(name); err != nil {
		return Vocabulary{}, err
	}
	if err := lorem.ValidatePool(words); err != nil {
		return Vocabulary{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	v, exists, err := s.table.Get(name)
	if err != nil {
		return Vocabulary{}, err
	}
	now := s.now().UTC()
	if !exists {
		v = Vocabulary{ID: uuid.New(), Name: name, CreatedAt: now}
	}
	v.Words = append([]string(nil), words...)
	v.UpdatedAt = now

	if err := s.table.Put(name, v); err != nil {
		return Vocabulary{}, err
	}
	s.logger.Info("vocabulary stored",
		zap.String("name", name),
		zap.String("id", v.ID.String()),
		zap.Int("words", len(words)),
		zap.Bool("replaced", exists))
	return v, nil
}

func (s *Store) Get(ctx context.Context, name string) (Vocabulary, error) {
	if err := ctx.Err(); err != nil {
		return Vocabulary{}, err
	}
	if err := ValidateName(name); err != nil {
		return Vocabulary{}, err
	}
	return s.get(name)
}

func (s *Store) get(name string) (Vocabulary, error) {
	v, ok, err := s.table.Get(name)
	if err != nil {
		return Vocabulary{}, err
	}
	if !ok {
		return Vocabulary{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return v, nil
}

// List returns every vocabulary sorted by name.
func (s *Store) List(ctx context.Context) ([]Vocabulary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.table.All()
}

func (s *Store) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := ValidateName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.get(name); err != nil {
		return err
	}
	if err := s.table.Delete(name); err != nil {
		return err
	}
	s.logger.Info("vocabulary deleted", zap.String("name", name))
	return nil
}

// ParseWords reads whitespace-separated words, one or more per line.
// Lines starting with # are comments.
func ParseWords(r io.Reader) ([]string, error) {
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, strings.Fields(line)...)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read words: %w", err)
	}
	return words, nil
}
