package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/kenyapadelscore/padelscore/models"
	"github.com/kenyapadelscore/padelscore/realtime"
	"github.com/kenyapadelscore/padelscore/repositories"
	"golang.org/x/sync/errgroup"
)

// DashboardService keeps a cheap, eventually consistent summary of the
// system. The summary is recomputed on a fixed interval and early whenever
// a change notification arrives; readers always get the cached value.
type DashboardService interface {
	Stats() models.DashboardStats
	Refresh(ctx context.Context)
	Notify()
	Run(ctx context.Context)
}

type dashboardService struct {
	tournamentRepo repositories.TournamentRepository
	matchRepo      repositories.MatchRepository
	playerRepo     repositories.PlayerRepository
	hub            Broadcaster
	logger         *slog.Logger
	interval       time.Duration

	mu     sync.RWMutex
	cached models.DashboardStats

	notifyCh chan struct{}
}

func NewDashboardService(
	tournamentRepo repositories.TournamentRepository,
	matchRepo repositories.MatchRepository,
	playerRepo repositories.PlayerRepository,
	hub Broadcaster,
	logger *slog.Logger,
	interval time.Duration,
) DashboardService {
	return &dashboardService{
		tournamentRepo: tournamentRepo,
		matchRepo:      matchRepo,
		playerRepo:     playerRepo,
		hub:            hub,
		logger:         logger,
		interval:       interval,
		notifyCh:       make(chan struct{}, 1),
	}
}

// Stats returns the cached summary. It never fails: if the last recompute
// could not reach the stores the summary is zeroed, not an error.
func (s *dashboardService) Stats() models.DashboardStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cached
}

// Notify requests an early recompute. Non-blocking: if a refresh is
// already pending the notification is coalesced into it.
func (s *dashboardService) Notify() {
	select {
	case s.notifyCh <- struct{}{}:
	default:
	}
}

// Refresh recomputes the summary from the stores. The three counts run
// concurrently; any failure degrades the whole summary to zeros so the
// dashboard stays available.
func (s *dashboardService) Refresh(ctx context.Context) {
	var stats models.DashboardStats

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		activeStatus := models.TournamentStatusActive
		count, err := s.tournamentRepo.Count(gCtx, &activeStatus)
		if err != nil {
			return err
		}
		stats.ActiveTournaments = count
		return nil
	})
	g.Go(func() error {
		inProgress := models.MatchStatusInProgress
		count, err := s.matchRepo.Count(gCtx, &inProgress)
		if err != nil {
			return err
		}
		stats.OngoingMatches = count
		return nil
	})
	g.Go(func() error {
		count, err := s.playerRepo.Count(gCtx)
		if err != nil {
			return err
		}
		stats.TotalPlayers = count
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Warn("dashboard refresh failed, serving zeroed summary", slog.Any("error", err))
		stats = models.DashboardStats{}
	}

	s.mu.Lock()
	s.cached = stats
	s.mu.Unlock()

	s.hub.BroadcastAll(realtime.Event{
		Type:    realtime.EventDashboardUpdate,
		Payload: realtime.DashboardUpdatePayload{Stats: stats},
	})
}

// Run refreshes once immediately, then on every tick and on every change
// notification, until the context is cancelled.
func (s *dashboardService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Refresh(ctx)
		case <-s.notifyCh:
			s.Refresh(ctx)
		}
	}
}
