// Package dashboard serves the per-clinic aggregate counts shown on the
// dashboard. Results are cached; mutation services hand back the view keys
// they dirtied and the handler layer applies them here, so the cache never
// outlives the data it summarizes.
package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/medagenda/clinic-api/internal/model"
	"github.com/medagenda/clinic-api/internal/repository"
	"github.com/medagenda/clinic-api/internal/service/event"
	"github.com/medagenda/clinic-api/pkg/metrics"
)

const cacheName = "dashboard"

type DashboardServicer interface {
	Overview(ctx context.Context, actor *model.Actor, clinicID uuid.UUID) (*model.ClinicCounts, error)
	Invalidate(keys []string)
}

type Service struct {
	counts  repository.CountsRepository
	clinics clinicGuard
	cache   *gocache.Cache
	metrics *metrics.Metrics
}

// clinicGuard is the slice of the clinic service the dashboard needs:
// membership enforcement.
type clinicGuard interface {
	RequireMember(ctx context.Context, actor *model.Actor, clinicID uuid.UUID) error
}

func NewService(counts repository.CountsRepository, clinics clinicGuard, ttl time.Duration, m *metrics.Metrics) *Service {
	return &Service{
		counts:  counts,
		clinics: clinics,
		cache:   gocache.New(ttl, 2*ttl),
		metrics: m,
	}
}

func (s *Service) Overview(ctx context.Context, actor *model.Actor, clinicID uuid.UUID) (*model.ClinicCounts, error) {
	if err := s.clinics.RequireMember(ctx, actor, clinicID); err != nil {
		return nil, err
	}

	key := event.DashboardKeyForClinic(clinicID)
	if cached, ok := s.cache.Get(key); ok {
		if s.metrics != nil {
			s.metrics.CacheHits.WithLabelValues(cacheName).Inc()
		}
		return cached.(*model.ClinicCounts), nil
	}
	if s.metrics != nil {
		s.metrics.CacheMisses.WithLabelValues(cacheName).Inc()
	}

	counts, err := s.counts.ClinicCounts(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, counts, gocache.DefaultExpiration)
	return counts, nil
}

// Invalidate drops the given view keys. Keys that were never cached are a
// no-op, so callers pass every key a mutation returned without filtering.
func (s *Service) Invalidate(keys []string) {
	for _, key := range keys {
		s.cache.Delete(key)
	}
}
