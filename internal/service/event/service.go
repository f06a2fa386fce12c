// Package event records mutation events and view-staleness signals in the
// outbox so the presentation layer learns that previously rendered views of
// the dashboard and clinic navigation are stale. Emission is best-effort:
// a failed outbox write is logged and never fails the mutation that
// triggered it.
package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/medagenda/clinic-api/internal/model"
	"github.com/medagenda/clinic-api/internal/repository"
	"github.com/medagenda/clinic-api/pkg/logger"
)

// EventTypeViewsStale marks a batch of view keys as stale.
const EventTypeViewsStale = "VIEWS_STALE"

// View key builders shared by the emitters and the dashboard cache.
func DashboardKeyForClinic(clinicID uuid.UUID) string {
	return fmt.Sprintf("dashboard:clinic:%s", clinicID)
}

func DashboardKeyForUser(userID uuid.UUID) string {
	return fmt.Sprintf("dashboard:user:%s", userID)
}

func NavKeyForUser(userID uuid.UUID) string {
	return fmt.Sprintf("nav:user:%s", userID)
}

type Emitter interface {
	Emit(ctx context.Context, eventType string, payload interface{})
	EmitStale(ctx context.Context, keys []string)
}

type Service struct {
	repo   repository.OutboxRepository
	logger *logger.Logger
}

func NewService(repo repository.OutboxRepository, logger *logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Emit(ctx context.Context, eventType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error(err, "failed to marshal event payload", "event_type", eventType)
		return
	}

	if err := s.repo.Create(ctx, &model.OutboxEvent{
		EventType: eventType,
		Payload:   data,
	}); err != nil {
		s.logger.Error(err, "failed to create outbox event", "event_type", eventType)
	}
}

func (s *Service) EmitStale(ctx context.Context, keys []string) {
	if len(keys) == 0 {
		return
	}
	s.Emit(ctx, EventTypeViewsStale, map[string]interface{}{"keys": keys})
}
