//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/space-cap/saju-lotto-firebase/internal/bootstrap"
	"github.com/space-cap/saju-lotto-firebase/internal/domain/auth"
	"github.com/space-cap/saju-lotto-firebase/internal/domain/fortune"
	"github.com/space-cap/saju-lotto-firebase/internal/domain/ticket"
	"github.com/space-cap/saju-lotto-firebase/internal/infra/config"
	"github.com/space-cap/saju-lotto-firebase/internal/infra/scheduler"
	httpiface "github.com/space-cap/saju-lotto-firebase/internal/interface/http"
	"github.com/space-cap/saju-lotto-firebase/pkg/logger"
	"github.com/space-cap/saju-lotto-firebase/pkg/metrics"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		provideLocation,
		provideFortuneConfig,
		provideAuthConfig,
		provideTicketConfig,
		provideRegisterer,
		provideGatherer,
		providePostgresPool,
		provideMemberRepository,
		provideTicketStore,
		provideTicketRepository,
		provideDrawRepository,
		provideSnapshotStore,
		provideRefresher,
		metrics.New,
		fortune.NewService,
		auth.NewService,
		ticket.NewService,
		wire.Bind(new(fortune.Metrics), new(*metrics.Recorder)),
		wire.Bind(new(httpiface.ErrorRecorder), new(*metrics.Recorder)),
		wire.Bind(new(bootstrap.Scheduler), new(*scheduler.DailyRefresher)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
