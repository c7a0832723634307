package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/space-cap/saju-lotto-firebase/internal/domain/saju"
	apperrors "github.com/space-cap/saju-lotto-firebase/pkg/errors"
	"github.com/space-cap/saju-lotto-firebase/pkg/util"
)

// Service exposes member account workflows.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (MemberView, error)
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (LoginResponse, error)
	ValidateToken(ctx context.Context, token string) (Claims, error)
	Profile(ctx context.Context, memberID int64) (MemberView, error)
	SaveBirth(ctx context.Context, memberID int64, birth saju.BirthInput) (MemberView, error)
}

type service struct {
	cfg    Config
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"

	maxNicknameRunes = 20
	minPasswordLen   = 8
)

// NewService constructs a Service instance.
func NewService(cfg Config, repo Repository, logger *slog.Logger) Service {
	return &service{
		cfg:    cfg,
		repo:   repo,
		logger: logger.With("component", "auth.service"),
		now:    util.NowUTC,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (MemberView, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return MemberView{}, apperrors.Wrap(CodeInvalidInput, "invalid email address", err)
	}
	nickname, err := normalizeNickname(req.Nickname)
	if err != nil {
		return MemberView{}, apperrors.Wrap(CodeInvalidInput, err.Error(), nil)
	}
	if len(req.Password) < minPasswordLen {
		return MemberView{}, apperrors.Wrap(CodeInvalidInput, fmt.Sprintf("password must be at least %d characters", minPasswordLen), nil)
	}
	if req.Birth != nil {
		if _, err := saju.NormalizeBirth(*req.Birth, s.now()); err != nil {
			return MemberView{}, err
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return MemberView{}, apperrors.Wrap(CodeAuthError, "failed to hash password", err)
	}
	member, err := s.repo.Create(ctx, Member{
		Email:        email,
		Nickname:     nickname,
		PasswordHash: string(hashed),
		Birth:        req.Birth,
	})
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			return MemberView{}, apperrors.Wrap(CodeEmailExists, "email already registered", err)
		}
		return MemberView{}, apperrors.Wrap(CodeAuthError, "failed to create member", err)
	}
	s.logger.Info("member registered", "memberId", member.ID, "withBirth", member.Birth != nil)
	return toView(member), nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return LoginResponse{}, apperrors.Wrap(CodeInvalidInput, "invalid email address", err)
	}
	if strings.TrimSpace(req.Password) == "" {
		return LoginResponse{}, apperrors.Wrap(CodeInvalidInput, "password cannot be empty", nil)
	}
	member, found, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return LoginResponse{}, apperrors.Wrap(CodeAuthError, "failed to fetch member", err)
	}
	if !found || bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(req.Password)) != nil {
		return LoginResponse{}, apperrors.Wrap(CodeInvalidCredentials, "invalid email or password", nil)
	}
	return s.issue(member)
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (LoginResponse, error) {
	claims, err := s.parse(refreshToken, tokenTypeRefresh)
	if err != nil {
		return LoginResponse{}, err
	}
	member, err := s.load(ctx, claims.MemberID)
	if err != nil {
		return LoginResponse{}, err
	}
	return s.issue(member)
}

func (s *service) ValidateToken(_ context.Context, token string) (Claims, error) {
	return s.parse(token, tokenTypeAccess)
}

func (s *service) Profile(ctx context.Context, memberID int64) (MemberView, error) {
	member, err := s.load(ctx, memberID)
	if err != nil {
		return MemberView{}, err
	}
	return toView(member), nil
}

func (s *service) SaveBirth(ctx context.Context, memberID int64, birth saju.BirthInput) (MemberView, error) {
	if _, err := saju.NormalizeBirth(birth, s.now()); err != nil {
		return MemberView{}, err
	}
	member, found, err := s.repo.UpdateBirth(ctx, memberID, birth)
	if err != nil {
		return MemberView{}, apperrors.Wrap(CodeAuthError, "failed to save birth profile", err)
	}
	if !found {
		return MemberView{}, apperrors.Wrap(CodeMemberNotFound, "member not found", nil)
	}
	return toView(member), nil
}

func (s *service) load(ctx context.Context, id int64) (Member, error) {
	member, found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Member{}, apperrors.Wrap(CodeAuthError, "failed to load member", err)
	}
	if !found {
		return Member{}, apperrors.Wrap(CodeMemberNotFound, "member not found", nil)
	}
	return member, nil
}

func (s *service) issue(member Member) (LoginResponse, error) {
	access, err := s.sign(member, tokenTypeAccess, s.cfg.TokenTTL)
	if err != nil {
		return LoginResponse{}, err
	}
	refresh, err := s.sign(member, tokenTypeRefresh, s.cfg.RefreshTokenTTL)
	if err != nil {
		return LoginResponse{}, err
	}
	return LoginResponse{Token: access, RefreshToken: refresh, Member: toView(member)}, nil
}

type tokenClaims struct {
	jwt.RegisteredClaims
	MemberID  int64  `json:"mid"`
	Email     string `json:"email"`
	TokenType string `json:"type"`
}

func (s *service) sign(member Member, tokenType string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := tokenClaims{
		MemberID:  member.ID,
		Email:     member.Email,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(member.ID, 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", apperrors.Wrap(CodeAuthError, "failed to sign token", err)
	}
	return signed, nil
}

func (s *service) parse(token, wantType string) (Claims, error) {
	if strings.TrimSpace(token) == "" {
		return Claims{}, apperrors.Wrap(CodeInvalidToken, "token missing", nil)
	}
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(*jwt.Token) (any, error) {
		return []byte(s.cfg.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return Claims{}, apperrors.Wrap(CodeInvalidToken, "token validation failed", err)
	}
	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return Claims{}, apperrors.Wrap(CodeInvalidToken, "token invalid", nil)
	}
	if claims.TokenType != wantType {
		return Claims{}, apperrors.Wrap(CodeInvalidToken, "token type mismatch", nil)
	}
	return Claims{
		MemberID:  claims.MemberID,
		Email:     claims.Email,
		TokenType: claims.TokenType,
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
	}, nil
}

func toView(m Member) MemberView {
	return MemberView{
		ID:        m.ID,
		Email:     m.Email,
		Nickname:  m.Nickname,
		Birth:     m.Birth,
		CreatedAt: m.CreatedAt,
	}
}

func normalizeEmail(raw string) (string, error) {
	email := strings.TrimSpace(strings.ToLower(raw))
	if email == "" {
		return "", errors.New("email cannot be empty")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", err
	}
	return email, nil
}

func normalizeNickname(raw string) (string, error) {
	nickname := strings.TrimSpace(raw)
	if nickname == "" {
		return "", errors.New("nickname cannot be empty")
	}
	if len([]rune(nickname)) > maxNicknameRunes {
		return "", fmt.Errorf("nickname cannot exceed %d characters", maxNicknameRunes)
	}
	for _, r := range nickname {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return "", errors.New("nickname may contain only letters and digits")
		}
	}
	return nickname, nil
}
