package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/space-cap/saju-lotto-firebase/internal/domain/saju"
	apperrors "github.com/space-cap/saju-lotto-firebase/pkg/errors"
	"github.com/space-cap/saju-lotto-firebase/pkg/logger"
)

var fixedNow = time.Date(2026, 10, 15, 3, 0, 0, 0, time.UTC)

func newTestService(repo Repository) *service {
	svc := NewService(Config{
		Secret:          "test-secret",
		TokenTTL:        time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
	}, repo, logger.Discard()).(*service)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestService_RegisterLoginAndRefresh(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	ctx := context.Background()

	view, err := svc.Register(ctx, RegisterRequest{
		Email:    "Member@Example.com",
		Password: "pass1234",
		Nickname: "행운7",
	})
	require.NoError(t, err)
	require.Equal(t, "member@example.com", view.Email)
	require.Equal(t, "행운7", view.Nickname)
	require.Nil(t, view.Birth)
	require.NotZero(t, view.ID)

	resp, err := svc.Login(ctx, LoginRequest{Email: "member@example.com", Password: "pass1234"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.NotEmpty(t, resp.RefreshToken)

	claims, err := svc.ValidateToken(ctx, resp.Token)
	require.NoError(t, err)
	require.Equal(t, view.ID, claims.MemberID)
	require.Equal(t, fixedNow.Add(time.Hour), claims.ExpiresAt)

	_, err = svc.ValidateToken(ctx, resp.RefreshToken)
	require.True(t, apperrors.IsCode(err, CodeInvalidToken))

	refreshed, err := svc.Refresh(ctx, resp.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, resp.Token, refreshed.Token)
	require.Equal(t, view.ID, refreshed.Member.ID)
}

func TestService_TokenExpires(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	ctx := context.Background()
	_, err := svc.Register(ctx, RegisterRequest{Email: "a@b.co", Password: "pass1234", Nickname: "Kim"})
	require.NoError(t, err)
	resp, err := svc.Login(ctx, LoginRequest{Email: "a@b.co", Password: "pass1234"})
	require.NoError(t, err)

	svc.now = func() time.Time { return fixedNow.Add(2 * time.Hour) }
	_, err = svc.ValidateToken(ctx, resp.Token)
	require.True(t, apperrors.IsCode(err, CodeInvalidToken))
}

func TestService_RegisterValidation(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Email: "nope", Password: "pass1234", Nickname: "Kim"})
	require.True(t, apperrors.IsCode(err, CodeInvalidInput))

	_, err = svc.Register(ctx, RegisterRequest{Email: "a@b.co", Password: "short", Nickname: "Kim"})
	require.True(t, apperrors.IsCode(err, CodeInvalidInput))

	_, err = svc.Register(ctx, RegisterRequest{Email: "a@b.co", Password: "pass1234", Nickname: "no spaces"})
	require.True(t, apperrors.IsCode(err, CodeInvalidInput))

	_, err = svc.Register(ctx, RegisterRequest{
		Email: "a@b.co", Password: "pass1234", Nickname: "Kim",
		Birth: &saju.BirthInput{Year: 1990, Month: 13, Day: 1, Calendar: saju.Solar, Gender: saju.Male},
	})
	require.True(t, apperrors.IsCode(err, saju.CodeInvalidBirthInput))
}

func TestService_DuplicateEmailAndBadPassword(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Email: "dup@example.com", Password: "pass1234", Nickname: "One"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, RegisterRequest{Email: "dup@example.com", Password: "pass12345", Nickname: "Two"})
	require.True(t, apperrors.IsCode(err, CodeEmailExists))

	_, err = svc.Login(ctx, LoginRequest{Email: "dup@example.com", Password: "wrong-pass"})
	require.True(t, apperrors.IsCode(err, CodeInvalidCredentials))
	_, err = svc.Login(ctx, LoginRequest{Email: "ghost@example.com", Password: "pass1234"})
	require.True(t, apperrors.IsCode(err, CodeInvalidCredentials))
}

func TestService_SaveBirth(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	ctx := context.Background()
	view, err := svc.Register(ctx, RegisterRequest{Email: "b@b.co", Password: "pass1234", Nickname: "Lee"})
	require.NoError(t, err)

	birth := saju.BirthInput{Year: 1990, Month: 5, Day: 15, Hour: 10, Calendar: saju.Solar, Gender: saju.Male}
	updated, err := svc.SaveBirth(ctx, view.ID, birth)
	require.NoError(t, err)
	require.Equal(t, &birth, updated.Birth)

	profile, err := svc.Profile(ctx, view.ID)
	require.NoError(t, err)
	require.Equal(t, &birth, profile.Birth)

	_, err = svc.SaveBirth(ctx, 999, birth)
	require.True(t, apperrors.IsCode(err, CodeMemberNotFound))
}

type memoryRepo struct {
	members map[int64]Member
	seq     int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{members: make(map[int64]Member)}
}

func (m *memoryRepo) Create(_ context.Context, member Member) (Member, error) {
	for _, existing := range m.members {
		if existing.Email == member.Email {
			return Member{}, ErrEmailExists
		}
	}
	m.seq++
	member.ID = m.seq
	member.CreatedAt = fixedNow
	m.members[member.ID] = member
	return member, nil
}

func (m *memoryRepo) GetByEmail(_ context.Context, email string) (Member, bool, error) {
	for _, member := range m.members {
		if member.Email == email {
			return member, true, nil
		}
	}
	return Member{}, false, nil
}

func (m *memoryRepo) GetByID(_ context.Context, id int64) (Member, bool, error) {
	member, ok := m.members[id]
	return member, ok, nil
}

func (m *memoryRepo) UpdateBirth(_ context.Context, id int64, birth saju.BirthInput) (Member, bool, error) {
	member, ok := m.members[id]
	if !ok {
		return Member{}, false, nil
	}
	member.Birth = &birth
	m.members[id] = member
	return member, true, nil
}
