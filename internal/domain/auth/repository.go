package auth

import (
	"context"

	"github.com/space-cap/saju-lotto-firebase/internal/domain/saju"
)

// Repository abstracts member persistence.
type Repository interface {
	Create(ctx context.Context, m Member) (Member, error)
	GetByEmail(ctx context.Context, email string) (Member, bool, error)
	GetByID(ctx context.Context, id int64) (Member, bool, error)
	UpdateBirth(ctx context.Context, id int64, birth saju.BirthInput) (Member, bool, error)
}
