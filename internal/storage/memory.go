package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStorage keeps analyses and users in process memory. It backs local
// development and tests when no database DSN is configured.
type MemoryStorage struct {
	mu       sync.RWMutex
	analyses []AnalysisRecord
	users    map[string]UserRecord
}

func CreateMemoryStorage() (*MemoryStorage, error) {
	return &MemoryStorage{
		analyses: make([]AnalysisRecord, 0),
		users:    make(map[string]UserRecord),
	}, nil
}

func (m *MemoryStorage) WriteAnalysis(_ context.Context, record AnalysisRecord) (*AnalysisRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	m.analyses = append(m.analyses, record)
	return &record, nil
}

func (m *MemoryStorage) FindAnalysesByUserID(_ context.Context, userID string) ([]AnalysisRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]AnalysisRecord, 0)
	for _, a := range m.analyses {
		if a.UserID == userID {
			result = append(result, a)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

func (m *MemoryStorage) CountAnalyses(_ context.Context) (map[string]int, float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	counts := make(map[string]int)
	var sum float64
	for _, a := range m.analyses {
		counts[a.Result]++
		sum += a.Confidence
	}

	avg := 0.0
	if len(m.analyses) > 0 {
		avg = sum / float64(len(m.analyses))
	}

	return counts, avg, nil
}

func (m *MemoryStorage) RecentAnalyses(_ context.Context, limit int) ([]AnalysisRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]AnalysisRecord, len(m.analyses))
	copy(result, m.analyses)

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}

	return result, nil
}

func (m *MemoryStorage) DeleteAnalysesBefore(_ context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.analyses[:0]
	var removed int64
	for _, a := range m.analyses {
		if a.CreatedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, a)
	}
	m.analyses = kept

	return removed, nil
}

func (m *MemoryStorage) CreateUser(_ context.Context, user UserRecord) (*UserRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	email := strings.ToLower(user.Email)
	for _, u := range m.users {
		if strings.ToLower(u.Email) == email {
			return nil, ErrConflict
		}
	}

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	m.users[user.ID] = user
	return &user, nil
}

func (m *MemoryStorage) FindUserByEmail(_ context.Context, email string) (*UserRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}

	return nil, ErrNotFound
}

func (m *MemoryStorage) FindUserByID(_ context.Context, id string) (*UserRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if u, exists := m.users[id]; exists {
		return &u, nil
	}

	return nil, ErrNotFound
}

func (m *MemoryStorage) ListUsers(_ context.Context) ([]UserRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]UserRecord, 0, len(m.users))
	for _, u := range m.users {
		result = append(result, u)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

func (m *MemoryStorage) DeleteUser(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.users[id]; !exists {
		return ErrNotFound
	}
	delete(m.users, id)

	kept := m.analyses[:0]
	for _, a := range m.analyses {
		if a.UserID != id {
			kept = append(kept, a)
		}
	}
	m.analyses = kept

	return nil
}

func (m *MemoryStorage) PingContext(_ context.Context) error {
	return nil
}
