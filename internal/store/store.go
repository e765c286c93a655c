package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/username/office-hours/internal/officehours"
)

// ErrSubjectNotFound is returned for an unknown subject id
var ErrSubjectNotFound = errors.New("subject not found")

// Subject is one entity with office hours, e.g. a shop or a clinic
type Subject struct {
	ID        string                `json:"id"`
	Name      string                `json:"name"`
	Slots     []officehours.RawSlot `json:"slots"`
	UpdatedAt string                `json:"updated_at"`
}

// Schedule builds the evaluation view of the subject's stored value
func (s *Subject) Schedule(opts ...officehours.Option) *officehours.Schedule {
	return officehours.NewSchedule(s.Slots, opts...)
}

// State is the on-disk layout of the store file
type State struct {
	Subjects map[string]*Subject `json:"subjects"`
}

// FileStore keeps subjects in a single JSON file
type FileStore struct {
	path   string
	logger *zap.Logger

	mu    sync.RWMutex
	state *State
}

// NewFileStore creates a store backed by path. Call Load before use.
func NewFileStore(path string, logger *zap.Logger) *FileStore {
	return &FileStore{
		path:   path,
		logger: logger,
		state:  &State{Subjects: make(map[string]*Subject)},
	}
}

// Load reads the store file. A missing file is an empty store.
func (fs *FileStore) Load() error {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			// created on first save
			fs.mu.Lock()
			fs.state = &State{Subjects: make(map[string]*Subject)}
			fs.mu.Unlock()
			return nil
		}
		return fmt.Errorf("failed to read store file: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("failed to parse store file: %w", err)
	}
	if state.Subjects == nil {
		state.Subjects = make(map[string]*Subject)
	}

	fs.mu.Lock()
	fs.state = &state
	fs.mu.Unlock()

	fs.logger.Info("Store loaded",
		zap.String("file", fs.path),
		zap.Int("subjects", len(state.Subjects)))

	return nil
}

// Save writes the store file
func (fs *FileStore) Save() error {
	fs.mu.RLock()
	data, err := json.MarshalIndent(fs.state, "", "  ")
	count := len(fs.state.Subjects)
	fs.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to marshal store: %w", err)
	}

	if dir := filepath.Dir(fs.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create store directory: %w", err)
		}
	}
	if err := os.WriteFile(fs.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}

	fs.logger.Info("Store saved",
		zap.String("file", fs.path),
		zap.Int("subjects", count))

	return nil
}

// Create adds a subject and returns its id. The store is not saved.
func (fs *FileStore) Create(name string, records []officehours.RawSlot) string {
	subject := &Subject{
		ID:        uuid.NewString(),
		Name:      name,
		Slots:     records,
		UpdatedAt: time.Now().Format(time.RFC3339),
	}

	fs.mu.Lock()
	fs.state.Subjects[subject.ID] = subject
	fs.mu.Unlock()

	fs.logger.Info("Subject created",
		zap.String("id", subject.ID),
		zap.String("name", name),
		zap.Int("slots", len(records)))

	return subject.ID
}

// Get returns a copy of the subject with the given id
func (fs *FileStore) Get(id string) (*Subject, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	subject, ok := fs.state.Subjects[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSubjectNotFound, id)
	}
	return copySubject(subject), nil
}

// Find returns the subject with the given id or, failing that, the only
// subject with the given name
func (fs *FileStore) Find(idOrName string) (*Subject, error) {
	if subject, err := fs.Get(idOrName); err == nil {
		return subject, nil
	}

	var found []*Subject
	for _, subject := range fs.List() {
		if subject.Name == idOrName {
			found = append(found, subject)
		}
	}
	switch len(found) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrSubjectNotFound, idOrName)
	case 1:
		return found[0], nil
	default:
		return nil, fmt.Errorf("name %q matches %d subjects, use the id", idOrName, len(found))
	}
}

// Put replaces the stored value of a subject
func (fs *FileStore) Put(id string, records []officehours.RawSlot) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	subject, ok := fs.state.Subjects[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrSubjectNotFound, id)
	}
	subject.Slots = records
	subject.UpdatedAt = time.Now().Format(time.RFC3339)

	fs.logger.Debug("Subject updated",
		zap.String("id", id),
		zap.Int("slots", len(records)))

	return nil
}

// List returns copies of all subjects ordered by name, then id
func (fs *FileStore) List() []*Subject {
	fs.mu.RLock()
	subjects := make([]*Subject, 0, len(fs.state.Subjects))
	for _, subject := range fs.state.Subjects {
		subjects = append(subjects, copySubject(subject))
	}
	fs.mu.RUnlock()

	sort.Slice(subjects, func(i, j int) bool {
		if subjects[i].Name != subjects[j].Name {
			return subjects[i].Name < subjects[j].Name
		}
		return subjects[i].ID < subjects[j].ID
	})
	return subjects
}

func copySubject(s *Subject) *Subject {
	c := *s
	c.Slots = append([]officehours.RawSlot(nil), s.Slots...)
	return &c
}
