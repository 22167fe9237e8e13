package events

import (
	"time"

	"github.com/google/uuid"
)

type Event interface {
	EventType() string
	EventID() string
	OccurredAt() time.Time
	Payload() interface{}
}

type BaseEvent struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}

func (e BaseEvent) EventType() string { return e.Type }
func (e BaseEvent) EventID() string { return e.ID }
func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }
func (e BaseEvent) Payload() interface{} { return e.Data }

const (
	EventTypeUsersLoaded    = "dashboard.users_loaded"
	EventTypeUserAdded      = "dashboard.user_added"
	EventTypeUserUpdated    = "dashboard.user_updated"
	EventTypeUserDeleted    = "dashboard.user_deleted"
	EventTypeLoadFailed     = "dashboard.load_failed"
	EventTypeMutationFailed = "dashboard.mutation_failed"
)

func newBase(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}

type UsersLoadedEvent struct {
	BaseEvent
	OperatorID string `json:"operator_id"`
	Count      int    `json:"count"`
}

func NewUsersLoadedEvent(operatorID string, count int) *UsersLoadedEvent {
	return &UsersLoadedEvent{
		BaseEvent: newBase(EventTypeUsersLoaded, map[string]interface{}{
			"operator_id": operatorID,
			"count":       count,
		}),
		OperatorID: operatorID,
		Count:      count,
	}
}

// UserChangedEvent is published after an add, edit or delete was confirmed by
// the directory and applied to the operator's session.
type UserChangedEvent struct {
	BaseEvent
	OperatorID string `json:"operator_id"`
	UserID     int64  `json:"user_id"`
	Email      string `json:"email,omitempty"`
}

func NewUserChangedEvent(eventType, operatorID string, userID int64, email string) *UserChangedEvent {
	return &UserChangedEvent{
		BaseEvent: newBase(eventType, map[string]interface{}{
			"operator_id": operatorID,
			"user_id":     userID,
			"email":       email,
		}),
		OperatorID: operatorID,
		UserID:     userID,
		Email:      email,
	}
}

type FailureEvent struct {
	BaseEvent
	OperatorID string `json:"operator_id"`
	UserID     int64  `json:"user_id,omitempty"`
	Message    string `json:"message"`
}

func NewFailureEvent(eventType, operatorID string, userID int64, message string) *FailureEvent {
	return &FailureEvent{
		BaseEvent: newBase(eventType, map[string]interface{}{
			"operator_id": operatorID,
			"user_id":     userID,
			"message":     message,
		}),
		OperatorID: operatorID,
		UserID:     userID,
		Message:    message,
	}
}

// AuditTypes are the event types the audit log subscribes to.
var AuditTypes = []string{
	EventTypeUsersLoaded,
	EventTypeUserAdded,
	EventTypeUserUpdated,
	EventTypeUserDeleted,
	EventTypeLoadFailed,
	EventTypeMutationFailed,
}
