package ticket

import (
	"context"
	"errors"
)

// ErrRoundExists indicates a draw round that was already recorded.
var ErrRoundExists = errors.New("draw round already recorded")

// Repository persists member tickets.
type Repository interface {
	Save(ctx context.Context, t Ticket) (Ticket, error)
	ListByMember(ctx context.Context, memberID int64) ([]Ticket, error)
	// Delete reports false when the ticket does not exist or belongs to someone else.
	Delete(ctx context.Context, memberID int64, id string) (bool, error)
}

// DrawRepository persists official draws.
type DrawRepository interface {
	Record(ctx context.Context, d Draw) (Draw, error)
	Latest(ctx context.Context) (Draw, bool, error)
}
