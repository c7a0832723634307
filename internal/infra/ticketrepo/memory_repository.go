package ticketrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/space-cap/saju-lotto-firebase/internal/domain/ticket"
)

// MemoryRepository is an in-memory ticket and draw store used for tests/dev.
type MemoryRepository struct {
	mu      sync.RWMutex
	tickets map[string]ticket.Ticket
	draws   map[int]ticket.Draw
}

// NewMemoryRepository constructs a repo backed by memory.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		tickets: make(map[string]ticket.Ticket),
		draws:   make(map[int]ticket.Draw),
	}
}

// Save implements ticket.Repository.
func (r *MemoryRepository) Save(_ context.Context, t ticket.Ticket) (ticket.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t.Numbers = append([]int(nil), t.Numbers...)
	r.tickets[t.ID] = t
	return t, nil
}

// ListByMember returns a member's tickets, oldest first.
func (r *MemoryRepository) ListByMember(_ context.Context, memberID int64) ([]ticket.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ticket.Ticket, 0)
	for _, t := range r.tickets {
		if t.MemberID == memberID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Delete implements ticket.Repository.
func (r *MemoryRepository) Delete(_ context.Context, memberID int64, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tickets[id]
	if !ok || t.MemberID != memberID {
		return false, nil
	}
	delete(r.tickets, id)
	return true, nil
}

// Record implements ticket.DrawRepository.
func (r *MemoryRepository) Record(_ context.Context, d ticket.Draw) (ticket.Draw, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.draws[d.Round]; exists {
		return ticket.Draw{}, ticket.ErrRoundExists
	}
	d.Numbers = append([]int(nil), d.Numbers...)
	r.draws[d.Round] = d
	return d, nil
}

// Latest returns the draw with the highest round.
func (r *MemoryRepository) Latest(_ context.Context) (ticket.Draw, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var (
		latest ticket.Draw
		found  bool
	)
	for round, d := range r.draws {
		if !found || round > latest.Round {
			latest, found = d, true
		}
	}
	return latest, found, nil
}

var (
	_ ticket.Repository     = (*MemoryRepository)(nil)
	_ ticket.DrawRepository = (*MemoryRepository)(nil)
)
