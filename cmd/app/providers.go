package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/valkey-io/valkey-go"

	"github.com/space-cap/saju-lotto-firebase/internal/domain/auth"
	"github.com/space-cap/saju-lotto-firebase/internal/domain/fortune"
	"github.com/space-cap/saju-lotto-firebase/internal/domain/ticket"
	"github.com/space-cap/saju-lotto-firebase/internal/infra/config"
	"github.com/space-cap/saju-lotto-firebase/internal/infra/memberrepo"
	"github.com/space-cap/saju-lotto-firebase/internal/infra/scheduler"
	"github.com/space-cap/saju-lotto-firebase/internal/infra/snapshotstore"
	"github.com/space-cap/saju-lotto-firebase/internal/infra/ticketrepo"
	"github.com/space-cap/saju-lotto-firebase/pkg/metrics"
	"github.com/space-cap/saju-lotto-firebase/pkg/util"
)

const kstOffset = 9 * time.Hour

func provideLocation(cfg *config.Config, logger *slog.Logger) *time.Location {
	loc := util.LoadLocation(cfg.Saju.Timezone, kstOffset)
	logger.Info("civil time zone", "name", cfg.Saju.Timezone, "resolved", loc.String())
	return loc
}

func provideFortuneConfig(cfg *config.Config, loc *time.Location) fortune.Config {
	return fortune.Config{
		Location:    loc,
		StrictLunar: cfg.Saju.StrictLunar,
		SnapshotTTL: cfg.Saju.SnapshotTTL,
		MaxSets:     cfg.Saju.MaxSets,
	}
}

func provideAuthConfig(cfg *config.Config) auth.Config {
	return auth.Config{
		Secret:          cfg.Auth.Secret,
		TokenTTL:        cfg.Auth.TokenTTL,
		RefreshTokenTTL: cfg.Auth.RefreshTokenTTL,
	}
}

func provideTicketConfig(cfg *config.Config) ticket.Config {
	return ticket.Config{MaxTicketsPerMember: cfg.Tickets.MaxPerMember}
}

func provideRegisterer() prometheus.Registerer {
	return prometheus.DefaultRegisterer
}

func provideGatherer() prometheus.Gatherer {
	return prometheus.DefaultGatherer
}

// providePostgresPool returns a nil pool when no DSN is configured or the
// database is unreachable; repositories then fall back to memory.
func providePostgresPool(cfg *config.Config, logger *slog.Logger) (*pgxpool.Pool, func()) {
	noop := func() {}
	dsn := strings.TrimSpace(cfg.Postgres.DSN)
	if dsn == "" {
		logger.Info("postgres dsn not set, using memory repositories")
		return nil, noop
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repositories", "error", err)
		return nil, noop
	}
	if cfg.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Postgres.MaxConns
	}
	if cfg.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repositories", "error", err)
		return nil, noop
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repositories", "error", err)
		pool.Close()
		return nil, noop
	}
	logger.Info("postgres repositories enabled")
	return pool, pool.Close
}

func provideMemberRepository(pool *pgxpool.Pool) auth.Repository {
	if pool == nil {
		return memberrepo.NewMemoryRepository()
	}
	return memberrepo.NewPostgresRepository(pool)
}

// ticketStore is satisfied by both ticketrepo implementations.
type ticketStore interface {
	ticket.Repository
	ticket.DrawRepository
}

func provideTicketStore(pool *pgxpool.Pool) ticketStore {
	if pool == nil {
		return ticketrepo.NewMemoryRepository()
	}
	return ticketrepo.NewPostgresRepository(pool)
}

func provideTicketRepository(s ticketStore) ticket.Repository { return s }

func provideDrawRepository(s ticketStore) ticket.DrawRepository { return s }

func provideSnapshotStore(cfg *config.Config, logger *slog.Logger) (fortune.SnapshotStore, func()) {
	noop := func() {}
	if !cfg.Cache.Enabled {
		return snapshotstore.NewMemoryStore(), noop
	}
	opt, err := buildValkeyOptions(cfg.Cache.Addr)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
		return snapshotstore.NewMemoryStore(), noop
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory store", "error", err)
		return snapshotstore.NewMemoryStore(), noop
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory store", "error", err)
		client.Close()
		return snapshotstore.NewMemoryStore(), noop
	}
	logger.Info("valkey snapshot store enabled", "addr", cfg.Cache.Addr)
	return snapshotstore.NewValkeyStore(client, cfg.Cache.Prefix), client.Close
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}

func provideRefresher(cfg *config.Config, store fortune.SnapshotStore, recorder *metrics.Recorder, loc *time.Location, logger *slog.Logger) *scheduler.DailyRefresher {
	return scheduler.NewDailyRefresher(store, recorder, cfg.Saju.RefreshSchedule, loc, logger)
}
