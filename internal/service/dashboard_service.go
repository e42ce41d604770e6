package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/prodline/tpm-service/internal/events"
	"github.com/prodline/tpm-service/internal/reporting"
	"github.com/prodline/tpm-service/internal/repository"
	apperrors "github.com/prodline/tpm-service/pkg/util/errorutil"
)

const statsCacheKey = "tpm:dashboard:stats"

// DashboardService computes dashboard statistics over the full ticket
// collection, with a short-lived redis cache in front of the aggregation.
type DashboardService struct {
	tickets repository.TicketRepository
	cache   *redis.Client
	ttl     time.Duration
	logger  *zap.Logger
}

// NewDashboardService constructs the service. cache may be nil, in which
// case every call recomputes.
func NewDashboardService(tickets repository.TicketRepository, cache *redis.Client, ttl time.Duration, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		tickets: tickets,
		cache:   cache,
		ttl:     ttl,
		logger:  logger,
	}
}

// GetStats returns the aggregated dashboard statistics.
func (s *DashboardService) GetStats(ctx context.Context) (reporting.DashboardStats, error) {
	if cached, ok := s.readCache(ctx); ok {
		return cached, nil
	}

	tickets, err := s.tickets.ListAll(ctx)
	if err != nil {
		return reporting.DashboardStats{}, apperrors.MapError(err)
	}
	stats := reporting.Aggregate(tickets, time.Now())
	s.writeCache(ctx, stats)
	return stats, nil
}

// RegisterInvalidation drops the cached statistics whenever a ticket is
// created or updated.
func (s *DashboardService) RegisterInvalidation(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	handler := func(ctx context.Context, _ events.Event) error {
		s.invalidate(ctx)
		return nil
	}
	dispatcher.Subscribe(events.EventTicketCreated, handler)
	dispatcher.Subscribe(events.EventTicketUpdated, handler)
}

func (s *DashboardService) readCache(ctx context.Context) (reporting.DashboardStats, bool) {
	if s.cache == nil || s.ttl <= 0 {
		return reporting.DashboardStats{}, false
	}
	raw, err := s.cache.Get(ctx, statsCacheKey).Bytes()
	if err != nil {
		return reporting.DashboardStats{}, false
	}
	var stats reporting.DashboardStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		s.logger.Warn("discarding malformed dashboard cache entry", zap.Error(err))
		return reporting.DashboardStats{}, false
	}
	return stats, true
}

func (s *DashboardService) writeCache(ctx context.Context, stats reporting.DashboardStats) {
	if s.cache == nil || s.ttl <= 0 {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, statsCacheKey, raw, s.ttl).Err(); err != nil {
		s.logger.Warn("unable to cache dashboard stats", zap.Error(err))
	}
}

func (s *DashboardService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, statsCacheKey).Err(); err != nil {
		s.logger.Warn("unable to invalidate dashboard cache", zap.Error(err))
	}
}
