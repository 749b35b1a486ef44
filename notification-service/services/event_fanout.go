package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"organizations-backend/shared/authz"
	"organizations-backend/shared/events"
)

// MemberLister lists the role holders of a context
type MemberLister interface {
	Members(ctx context.Context, c authz.Context) ([]authz.Assignment, error)
}

// MessageSender delivers a frame to one user
type MessageSender interface {
	SendToUser(userID uuid.UUID, message *WebSocketMessage) error
}

// EventFanout pushes organization events to every connected member of the
// organization.
type EventFanout struct {
	members MemberLister
	sender  MessageSender
	logger  *zap.Logger
}

func NewEventFanout(members MemberLister, sender MessageSender, logger *zap.Logger) *EventFanout {
	return &EventFanout{
		members: members,
		sender:  sender,
		logger:  logger,
	}
}

// Run consumes stream until it is closed or ctx is done
func (f *EventFanout) Run(ctx context.Context, stream <-chan events.Event) {
	for {
		select {
		case event, ok := <-stream:
			if !ok {
				return
			}
			f.Deliver(ctx, event)
		case <-ctx.Done():
			return
		}
	}
}

// Deliver sends event to the connected members and returns how many got it
func (f *EventFanout) Deliver(ctx context.Context, event events.Event) int {
	org := event.Organization
	members, err := f.members.Members(ctx, authz.OrganizationContext(org.ID))
	if err != nil {
		f.logger.Error("failed to load organization members",
			zap.String("organization_id", org.ID.String()),
			zap.Error(err),
		)
		return 0
	}

	orgID := org.ID
	message := &WebSocketMessage{
		Type:      string(event.Type),
		Message:   describe(event),
		EntityID:  &orgID,
		Entity:    "organization",
		Data:      org,
		Timestamp: event.OccurredAt,
	}

	delivered := 0
	for _, member := range members {
		err := f.sender.SendToUser(member.SubjectID, message)
		switch {
		case err == nil:
			delivered++
		case errors.Is(err, ErrNotConnected):
			// offline members miss the event
		default:
			f.logger.Warn("failed to deliver event",
				zap.String("event_id", event.ID.String()),
				zap.String("user_id", member.SubjectID.String()),
				zap.Error(err),
			)
		}
	}

	f.logger.Debug("event delivered",
		zap.String("event_type", string(event.Type)),
		zap.String("organization_id", org.ID.String()),
		zap.Int("delivered", delivered),
		zap.Int("members", len(members)),
	)
	return delivered
}

func describe(event events.Event) string {
	switch event.Type {
	case events.OrganizationCreated:
		return "Organization " + event.Organization.Name + " was created"
	case events.OrganizationUpdated:
		return "Organization " + event.Organization.Name + " was updated"
	default:
		return string(event.Type)
	}
}
