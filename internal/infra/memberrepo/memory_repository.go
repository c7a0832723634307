package memberrepo

import (
	"context"
	"sync"
	"time"

	"github.com/space-cap/saju-lotto-firebase/internal/domain/auth"
	"github.com/space-cap/saju-lotto-firebase/internal/domain/saju"
)

// MemoryRepository keeps members in process memory for tests/dev.
type MemoryRepository struct {
	mu         sync.RWMutex
	members    map[int64]auth.Member
	emailIndex map[string]int64
	seq        int64
}

// NewMemoryRepository constructs an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		members:    make(map[int64]auth.Member),
		emailIndex: make(map[string]int64),
	}
}

// Create stores the member and assigns its ID.
func (r *MemoryRepository) Create(_ context.Context, m auth.Member) (auth.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.emailIndex[m.Email]; exists {
		return auth.Member{}, auth.ErrEmailExists
	}
	r.seq++
	m.ID = r.seq
	m.Birth = copyBirth(m.Birth)
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	r.members[m.ID] = m
	r.emailIndex[m.Email] = m.ID
	return m, nil
}

// GetByEmail returns a member by email.
func (r *MemoryRepository) GetByEmail(_ context.Context, email string) (auth.Member, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if id, ok := r.emailIndex[email]; ok {
		return r.members[id], true, nil
	}
	return auth.Member{}, false, nil
}

// GetByID fetches by ID.
func (r *MemoryRepository) GetByID(_ context.Context, id int64) (auth.Member, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.members[id]
	return m, ok, nil
}

// UpdateBirth replaces the stored birth input.
func (r *MemoryRepository) UpdateBirth(_ context.Context, id int64, birth saju.BirthInput) (auth.Member, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.members[id]
	if !ok {
		return auth.Member{}, false, nil
	}
	m.Birth = &birth
	r.members[id] = m
	return m, true, nil
}

func copyBirth(b *saju.BirthInput) *saju.BirthInput {
	if b == nil {
		return nil
	}
	c := *b
	return &c
}

var _ auth.Repository = (*MemoryRepository)(nil)
