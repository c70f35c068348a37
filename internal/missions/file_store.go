package missions

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/toptiermen/platform/internal/model"
)

// fileDocument is the on-disk shape of the fallback store: one JSON
// document holding every user's missions, read and written wholesale.
// User ids are string keys because JSON object keys must be strings.
type fileDocument struct {
	NextID   uint64                     `json:"next_id"`
	Missions map[string][]model.Mission `json:"missions"`
}

// FileStore persists missions in a single JSON file under the data
// directory.  It serves as the fallback source when the mission table
// is unreachable.  All operations take the mutex and rewrite the whole
// file; the store is not meant for high throughput.
type FileStore struct {
	path string
	mu   sync.Mutex
	doc  fileDocument
}

var _ Store = (*FileStore)(nil)

// NewFileStore loads (or initializes) the JSON document at
// dataDir/missions.json.
func NewFileStore(dataDir string) (*FileStore, error) {
	s := &FileStore{
		path: filepath.Join(dataDir, "missions.json"),
		doc: fileDocument{
			NextID:   1,
			Missions: make(map[string][]model.Mission),
		},
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(raw, &s.doc); err != nil {
		return nil, err
	}
	if s.doc.Missions == nil {
		s.doc.Missions = make(map[string][]model.Mission)
	}
	if s.doc.NextID == 0 {
		s.doc.NextID = 1
	}
	return s, nil
}

// save must be called with the mutex held.
func (s *FileStore) save() error {
	raw, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o644)
}

func userKey(userID uint64) string { return strconv.FormatUint(userID, 10) }

func (s *FileStore) List(ctx context.Context, userID uint64) ([]model.Mission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	src := s.doc.Missions[userKey(userID)]
	out := make([]model.Mission, len(src))
	copy(out, src)
	return out, nil
}

func (s *FileStore) Create(ctx context.Context, m model.Mission) (model.Mission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.ID == 0 {
		m.ID = s.doc.NextID
		s.doc.NextID++
	} else if m.ID >= s.doc.NextID {
		s.doc.NextID = m.ID + 1
	}
	if m.FrequencyType == "" {
		m.FrequencyType = model.FrequencyDaily
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	key := userKey(m.UserID)
	s.doc.Missions[key] = append(s.doc.Missions[key], m)
	if err := s.save(); err != nil {
		return model.Mission{}, err
	}
	return m, nil
}

func (s *FileStore) Toggle(ctx context.Context, userID, missionID uint64) (ToggleResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := userKey(userID)
	list := s.doc.Missions[key]
	for i := range list {
		if list[i].ID != missionID {
			continue
		}
		completed, delta := ApplyToggle(&list[i], Today())
		if err := s.save(); err != nil {
			return ToggleResult{}, err
		}
		return ToggleResult{Mission: list[i], Completed: completed, XPEarned: delta}, nil
	}
	return ToggleResult{}, ErrNotFound
}

func (s *FileStore) Delete(ctx context.Context, userID, missionID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := userKey(userID)
	list := s.doc.Missions[key]
	for i := range list {
		if list[i].ID != missionID {
			continue
		}
		s.doc.Missions[key] = append(list[:i], list[i+1:]...)
		return s.save()
	}
	return ErrNotFound
}
