package ticket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/space-cap/saju-lotto-firebase/internal/domain/saju"
	apperrors "github.com/space-cap/saju-lotto-firebase/pkg/errors"
	"github.com/space-cap/saju-lotto-firebase/pkg/util"
)

// Error codes returned by the service.
const (
	CodeInvalidTicket = "invalid_ticket"
	CodeInvalidDraw   = "invalid_draw"
	CodeNotFound      = "ticket_not_found"
	CodeNoDraw        = "draw_not_found"
	CodeRoundExists   = "draw_round_exists"
	CodeLimitReached  = "ticket_limit_reached"
	CodeTicketError   = "ticket_error"
)

const (
	defaultSource = "manual"
	maxMemoRunes  = 100
)

// Config limits what a member can store.
type Config struct {
	MaxTicketsPerMember int
}

// Service manages saved tickets and checks them against draws.
type Service interface {
	Save(ctx context.Context, memberID int64, req SaveRequest) (Ticket, error)
	List(ctx context.Context, memberID int64) ([]Ticket, error)
	Delete(ctx context.Context, memberID int64, id string) error
	RecordDraw(ctx context.Context, d Draw) (Draw, error)
	LatestDraw(ctx context.Context) (Draw, error)
	Check(ctx context.Context, memberID int64) (CheckReport, error)
}

type service struct {
	cfg    Config
	repo   Repository
	draws  DrawRepository
	logger *slog.Logger
	now    func() time.Time
}

// NewService wires the ticket domain.
func NewService(cfg Config, repo Repository, draws DrawRepository, logger *slog.Logger) Service {
	return &service{
		cfg:    cfg,
		repo:   repo,
		draws:  draws,
		logger: logger.With("component", "ticket.service"),
		now:    util.NowUTC,
	}
}

func (s *service) Save(ctx context.Context, memberID int64, req SaveRequest) (Ticket, error) {
	numbers, err := normalizeNumbers(req.Numbers)
	if err != nil {
		return Ticket{}, apperrors.Wrap(CodeInvalidTicket, err.Error(), nil)
	}
	memo := strings.TrimSpace(req.Memo)
	if len([]rune(memo)) > maxMemoRunes {
		return Ticket{}, apperrors.Wrap(CodeInvalidTicket, fmt.Sprintf("memo cannot exceed %d characters", maxMemoRunes), nil)
	}
	source := strings.TrimSpace(strings.ToLower(req.Source))
	if source == "" {
		source = defaultSource
	}

	if s.cfg.MaxTicketsPerMember > 0 {
		existing, err := s.repo.ListByMember(ctx, memberID)
		if err != nil {
			return Ticket{}, apperrors.Wrap(CodeTicketError, "failed to count tickets", err)
		}
		if len(existing) >= s.cfg.MaxTicketsPerMember {
			return Ticket{}, apperrors.Wrap(CodeLimitReached, fmt.Sprintf("at most %d tickets can be saved", s.cfg.MaxTicketsPerMember), nil)
		}
	}

	saved, err := s.repo.Save(ctx, Ticket{
		ID:        uuid.NewString(),
		MemberID:  memberID,
		Numbers:   numbers,
		Source:    source,
		Memo:      memo,
		CreatedAt: s.now(),
	})
	if err != nil {
		return Ticket{}, apperrors.Wrap(CodeTicketError, "failed to save ticket", err)
	}
	s.logger.Info("ticket saved", "memberId", memberID, "ticketId", saved.ID, "source", source)
	return saved, nil
}

func (s *service) List(ctx context.Context, memberID int64) ([]Ticket, error) {
	tickets, err := s.repo.ListByMember(ctx, memberID)
	if err != nil {
		return nil, apperrors.Wrap(CodeTicketError, "failed to list tickets", err)
	}
	return tickets, nil
}

func (s *service) Delete(ctx context.Context, memberID int64, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.Wrap(CodeNotFound, "ticket not found", nil)
	}
	deleted, err := s.repo.Delete(ctx, memberID, id)
	if err != nil {
		return apperrors.Wrap(CodeTicketError, "failed to delete ticket", err)
	}
	if !deleted {
		return apperrors.Wrap(CodeNotFound, "ticket not found", nil)
	}
	return nil
}

func (s *service) RecordDraw(ctx context.Context, d Draw) (Draw, error) {
	if d.Round <= 0 {
		return Draw{}, apperrors.Wrap(CodeInvalidDraw, "round must be positive", nil)
	}
	numbers, err := normalizeNumbers(d.Numbers)
	if err != nil {
		return Draw{}, apperrors.Wrap(CodeInvalidDraw, err.Error(), nil)
	}
	if d.Bonus < 1 || d.Bonus > saju.MaxNumber {
		return Draw{}, apperrors.Wrap(CodeInvalidDraw, fmt.Sprintf("bonus must be between 1 and %d", saju.MaxNumber), nil)
	}
	if contains(numbers, d.Bonus) {
		return Draw{}, apperrors.Wrap(CodeInvalidDraw, "bonus must differ from the main numbers", nil)
	}
	d.Numbers = numbers
	if d.DrawnOn.IsZero() {
		d.DrawnOn = s.now()
	}

	saved, err := s.draws.Record(ctx, d)
	if err != nil {
		if errors.Is(err, ErrRoundExists) {
			return Draw{}, apperrors.Wrap(CodeRoundExists, fmt.Sprintf("round %d already recorded", d.Round), err)
		}
		return Draw{}, apperrors.Wrap(CodeTicketError, "failed to record draw", err)
	}
	s.logger.Info("draw recorded", "round", saved.Round)
	return saved, nil
}

func (s *service) LatestDraw(ctx context.Context) (Draw, error) {
	d, found, err := s.draws.Latest(ctx)
	if err != nil {
		return Draw{}, apperrors.Wrap(CodeTicketError, "failed to load latest draw", err)
	}
	if !found {
		return Draw{}, apperrors.Wrap(CodeNoDraw, "no draw has been recorded yet", nil)
	}
	return d, nil
}

func (s *service) Check(ctx context.Context, memberID int64) (CheckReport, error) {
	draw, err := s.LatestDraw(ctx)
	if err != nil {
		return CheckReport{}, err
	}
	tickets, err := s.List(ctx, memberID)
	if err != nil {
		return CheckReport{}, err
	}

	report := CheckReport{Draw: draw, Results: make([]CheckResult, 0, len(tickets))}
	for _, t := range tickets {
		res := Compare(t, draw)
		if res.Rank > 0 {
			report.Winners++
		}
		report.Results = append(report.Results, res)
	}
	return report, nil
}

// Compare matches a ticket against a draw and ranks it.
func Compare(t Ticket, d Draw) CheckResult {
	matched := make([]int, 0, saju.Count)
	for _, n := range t.Numbers {
		if contains(d.Numbers, n) {
			matched = append(matched, n)
		}
	}
	bonus := contains(t.Numbers, d.Bonus)
	return CheckResult{
		Ticket:       t,
		Matched:      matched,
		BonusMatched: bonus,
		Rank:         Rank(len(matched), bonus),
	}
}

// Rank maps a match count to a prize rank: 6 is first, 5 plus the bonus is
// second, then 5, 4 and 3 matches. Anything less is 0.
func Rank(matched int, bonus bool) int {
	switch {
	case matched == 6:
		return 1
	case matched == 5 && bonus:
		return 2
	case matched == 5:
		return 3
	case matched == 4:
		return 4
	case matched == 3:
		return 5
	default:
		return 0
	}
}

func normalizeNumbers(in []int) ([]int, error) {
	if len(in) != saju.Count {
		return nil, fmt.Errorf("exactly %d numbers are required", saju.Count)
	}
	out := make([]int, len(in))
	copy(out, in)
	sort.Ints(out)
	for i, n := range out {
		if n < 1 || n > saju.MaxNumber {
			return nil, fmt.Errorf("numbers must be between 1 and %d", saju.MaxNumber)
		}
		if i > 0 && out[i-1] == n {
			return nil, fmt.Errorf("number %d is repeated", n)
		}
	}
	return out, nil
}

func contains(numbers []int, n int) bool {
	for _, v := range numbers {
		if v == n {
			return true
		}
	}
	return false
}
