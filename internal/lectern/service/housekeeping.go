package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/lectern/internal/lectern/store"
)

// HousekeepingService periodically deletes expired one-time codes and
// refresh tokens. Lookups already ignore expired rows; this only keeps the
// tables small.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration
	Now      func() time.Time

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates the service. A non-positive interval means
// one hour.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &HousekeepingService{
		Store:    st,
		Logger:   logger,
		Interval: interval,
		Now:      time.Now,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs a cleanup immediately and then on every tick until Stop.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", slog.Duration("interval", s.Interval))
}

// Stop waits for an in-progress cleanup to finish.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Cleanup(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Cleanup(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// CleanupResult counts the rows removed by one pass.
type CleanupResult struct {
	Codes         int64
	RefreshTokens int64
}

// Cleanup deletes everything that expired before now. A failure in one table
// does not stop the other.
func (s *HousekeepingService) Cleanup(ctx context.Context) CleanupResult {
	now := s.Now().UTC()
	var res CleanupResult

	n, err := s.Store.OneTimeCodes().DeleteExpiredCodes(ctx, now)
	if err != nil {
		s.Logger.Error("failed to delete expired one-time codes", slog.Any("error", err))
	} else {
		res.Codes = n
	}

	n, err = s.Store.RefreshTokens().DeleteExpiredRefreshTokens(ctx, now)
	if err != nil {
		s.Logger.Error("failed to delete expired refresh tokens", slog.Any("error", err))
	} else {
		res.RefreshTokens = n
	}

	s.Logger.Info("housekeeping cleanup completed",
		slog.Int64("codes", res.Codes),
		slog.Int64("refresh_tokens", res.RefreshTokens),
	)
	return res
}
