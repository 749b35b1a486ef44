// Package events carries organization domain events to their subscribers.
package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"organizations-backend/shared/database/models"
)

type Type string

const (
	OrganizationCreated Type = "organization.created"
	OrganizationUpdated Type = "organization.updated"
)

// Event is one committed change to an organization
type Event struct {
	ID           uuid.UUID           `json:"id"`
	Type         Type                `json:"type"`
	Organization models.Organization `json:"organization"`
	ActorID      uuid.UUID           `json:"actor_id"`
	OccurredAt   time.Time           `json:"occurred_at"`
}

func New(eventType Type, org models.Organization, actor uuid.UUID) Event {
	return Event{
		ID:           uuid.New(),
		Type:         eventType,
		Organization: org,
		ActorID:      actor,
		OccurredAt:   time.Now().UTC(),
	}
}

// Publisher delivers events to one destination
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// DefaultPublishTimeout bounds one background delivery to all publishers
const DefaultPublishTimeout = 15 * time.Second

// Dispatcher fans an event out to every publisher in the background. A
// failing publisher is logged and does not stop the others.
type Dispatcher struct {
	publishers []Publisher
	timeout    time.Duration
	logger     *zap.Logger
	wg         sync.WaitGroup
}

func NewDispatcher(logger *zap.Logger, publishers ...Publisher) *Dispatcher {
	return &Dispatcher{
		publishers: publishers,
		timeout:    DefaultPublishTimeout,
		logger:     logger,
	}
}

// Add registers another publisher. Call it before the first Dispatch.
func (d *Dispatcher) Add(p Publisher) {
	d.publishers = append(d.publishers, p)
}

// Dispatch returns at once. Delivery keeps ctx's values but not its
// cancellation, so a client that hangs up does not drop the event.
func (d *Dispatcher) Dispatch(ctx context.Context, event Event) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer cancel()
		d.publish(ctx, event)
	}()
}

// Wait blocks until every dispatched event was handed to all publishers
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) publish(ctx context.Context, event Event) {
	for _, p := range d.publishers {
		if err := p.Publish(ctx, event); err != nil {
			d.logger.Error("failed to publish event",
				zap.String("event_type", string(event.Type)),
				zap.String("event_id", event.ID.String()),
				zap.String("organization_id", event.Organization.ID.String()),
				zap.Error(err),
			)
		}
	}
}

// LogPublisher writes every event to the service log
type LogPublisher struct {
	logger *zap.Logger
}

func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(_ context.Context, event Event) error {
	p.logger.Info("organization event",
		zap.String("event_type", string(event.Type)),
		zap.String("event_id", event.ID.String()),
		zap.String("organization_id", event.Organization.ID.String()),
		zap.String("actor_id", event.ActorID.String()),
	)
	return nil
}
