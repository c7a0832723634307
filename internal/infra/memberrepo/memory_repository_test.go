package memberrepo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/space-cap/saju-lotto-firebase/internal/domain/auth"
	"github.com/space-cap/saju-lotto-firebase/internal/domain/saju"
)

func TestMemoryRepositoryCreateAndLookup(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, auth.Member{Email: "a@example.com", Nickname: "a"})
	require.NoError(t, err)
	require.Equal(t, int64(1), created.ID)
	require.False(t, created.CreatedAt.IsZero())

	_, err = repo.Create(ctx, auth.Member{Email: "a@example.com"})
	require.ErrorIs(t, err, auth.ErrEmailExists)

	byEmail, found, err := repo.GetByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, created.ID, byEmail.ID)

	_, found, err = repo.GetByID(ctx, 42)
	require.NoError(t, err)
	require.False(t, found)
}

func TestMemoryRepositoryUpdateBirth(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, auth.Member{Email: "b@example.com"})
	require.NoError(t, err)
	require.Nil(t, created.Birth)

	birth := saju.BirthInput{Year: 1990, Month: 5, Day: 15, Hour: 10, Calendar: saju.Solar, Gender: saju.Male}
	updated, found, err := repo.UpdateBirth(ctx, created.ID, birth)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, birth, *updated.Birth)

	_, found, err = repo.UpdateBirth(ctx, 99, birth)
	require.NoError(t, err)
	require.False(t, found)
}
