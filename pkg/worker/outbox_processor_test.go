package worker

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medagenda/clinic-api/internal/model"
	"github.com/medagenda/clinic-api/pkg/logger"
	"github.com/medagenda/clinic-api/pkg/metrics"
)

var testMetrics = metrics.New("outbox_processor_test")

type fakeOutboxRepo struct {
	pending  []*model.OutboxEvent
	statuses map[uuid.UUID]model.OutboxStatus
	pruned   int64
}

func newFakeOutboxRepo(events ...*model.OutboxEvent) *fakeOutboxRepo {
	return &fakeOutboxRepo{
		pending:  events,
		statuses: make(map[uuid.UUID]model.OutboxStatus),
	}
}

func (r *fakeOutboxRepo) Create(ctx context.Context, e *model.OutboxEvent) error { return nil }

// ClaimPendingEvents mirrors the repository contract: claimed events leave
// the pending set and are marked processing before the caller sees them.
func (r *fakeOutboxRepo) ClaimPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error) {
	if limit > len(r.pending) {
		limit = len(r.pending)
	}
	batch := r.pending[:limit]
	r.pending = r.pending[limit:]
	for _, e := range batch {
		e.Status = string(model.OutboxStatusProcessing)
		r.statuses[e.ID] = model.OutboxStatusProcessing
	}
	return batch, nil
}

func (r *fakeOutboxRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errMessage *string) error {
	r.statuses[id] = status
	return nil
}

func (r *fakeOutboxRepo) DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error) {
	return r.pruned, nil
}

type fakeBroker struct {
	published map[string][]interface{}
	failures  int
}

func newFakeBroker() *fakeBroker {
	return &fakeBroker{published: make(map[string][]interface{})}
}

func (b *fakeBroker) Publish(ctx context.Context, channel string, message interface{}) error {
	if b.failures > 0 {
		b.failures--
		return errors.New("broker unavailable")
	}
	b.published[channel] = append(b.published[channel], message)
	return nil
}

func (b *fakeBroker) Subscribe(ctx context.Context, channel string) (<-chan []byte, error) {
	return nil, nil
}

func (b *fakeBroker) Close() error { return nil }

func pendingEvent(t *testing.T, eventType string) *model.OutboxEvent {
	t.Helper()
	payload, err := json.Marshal(map[string]string{"id": uuid.New().String()})
	require.NoError(t, err)
	return &model.OutboxEvent{
		ID:        uuid.New(),
		EventType: eventType,
		Payload:   payload,
		Status:    string(model.OutboxStatusPending),
		CreatedAt: time.Now(),
	}
}

func testProcessor(repo *fakeOutboxRepo, broker *fakeBroker, attempts int) *OutboxProcessor {
	log := logger.NewLogger(&logger.Config{Output: os.Stderr, Level: logger.ErrorLevel})
	return NewOutboxProcessor(repo, broker, OutboxProcessorConfig{
		BatchSize:     10,
		PollInterval:  time.Millisecond,
		RetryAttempts: attempts,
		RetryDelay:    time.Millisecond,
	}, log, testMetrics)
}

func TestProcessEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes pending events and marks them processed", func(t *testing.T) {
		e1 := pendingEvent(t, "VIEWS_STALE")
		e2 := pendingEvent(t, "CLINIC_CREATE")
		repo := newFakeOutboxRepo(e1, e2)
		broker := newFakeBroker()

		p := testProcessor(repo, broker, 1)
		require.NoError(t, p.processEvents(ctx))

		assert.Len(t, broker.published["VIEWS_STALE"], 1)
		assert.Len(t, broker.published["CLINIC_CREATE"], 1)
		assert.Equal(t, model.OutboxStatusProcessed, repo.statuses[e1.ID])
		assert.Equal(t, model.OutboxStatusProcessed, repo.statuses[e2.ID])
	})

	t.Run("retries transient broker failures", func(t *testing.T) {
		e := pendingEvent(t, "VIEWS_STALE")
		repo := newFakeOutboxRepo(e)
		broker := newFakeBroker()
		broker.failures = 2

		p := testProcessor(repo, broker, 3)
		require.NoError(t, p.processEvents(ctx))

		assert.Len(t, broker.published["VIEWS_STALE"], 1)
		assert.Equal(t, model.OutboxStatusProcessed, repo.statuses[e.ID])
	})

	t.Run("exhausted retries mark the event failed", func(t *testing.T) {
		e := pendingEvent(t, "VIEWS_STALE")
		repo := newFakeOutboxRepo(e)
		broker := newFakeBroker()
		broker.failures = 10

		p := testProcessor(repo, broker, 2)
		require.NoError(t, p.processEvents(ctx))

		assert.Empty(t, broker.published)
		assert.Equal(t, model.OutboxStatusFailed, repo.statuses[e.ID])
	})

	t.Run("a claimed batch is never handed to a second poller", func(t *testing.T) {
		e1 := pendingEvent(t, "VIEWS_STALE")
		e2 := pendingEvent(t, "CLINIC_CREATE")
		repo := newFakeOutboxRepo(e1, e2)
		broker := newFakeBroker()

		first := testProcessor(repo, broker, 1)
		second := testProcessor(repo, broker, 1)
		require.NoError(t, first.processEvents(ctx))
		require.NoError(t, second.processEvents(ctx))

		assert.Len(t, broker.published["VIEWS_STALE"], 1)
		assert.Len(t, broker.published["CLINIC_CREATE"], 1)
	})

	t.Run("a failing event does not block the rest of the batch", func(t *testing.T) {
		bad := pendingEvent(t, "VIEWS_STALE")
		good := pendingEvent(t, "CLINIC_CREATE")
		repo := newFakeOutboxRepo(bad, good)
		broker := newFakeBroker()
		broker.failures = 1

		p := testProcessor(repo, broker, 1)
		require.NoError(t, p.processEvents(ctx))

		assert.Equal(t, model.OutboxStatusFailed, repo.statuses[bad.ID])
		assert.Equal(t, model.OutboxStatusProcessed, repo.statuses[good.ID])
	})
}

func TestNewOutboxProcessorValidation(t *testing.T) {
	log := logger.NewLogger(&logger.Config{Output: os.Stderr, Level: logger.ErrorLevel})

	assert.Panics(t, func() {
		NewOutboxProcessor(newFakeOutboxRepo(), newFakeBroker(), OutboxProcessorConfig{}, log, testMetrics)
	})
}
