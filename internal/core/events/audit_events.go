package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeRoundCreated   = "round.created"
	EventTypeManagerDeleted = "manager.deleted"
)

type RoundCreatedEvent struct {
	BaseEvent
	RoundID   string `json:"round_id"`
	ManagerID string `json:"manager_id"`
	Location  string `json:"location"`
}

func NewRoundCreatedEvent(roundID, managerID, location string) *RoundCreatedEvent {
	return &RoundCreatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeRoundCreated,
			Timestamp: time.Now(),
			Data: map[string]any{
				"round_id":   roundID,
				"manager_id": managerID,
				"location":   location,
			},
		},
		RoundID:   roundID,
		ManagerID: managerID,
		Location:  location,
	}
}

type ManagerDeletedEvent struct {
	BaseEvent
	ManagerID     string `json:"manager_id"`
	RoundsRemoved int64  `json:"rounds_removed"`
}

func NewManagerDeletedEvent(managerID string, roundsRemoved int64) *ManagerDeletedEvent {
	return &ManagerDeletedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeManagerDeleted,
			Timestamp: time.Now(),
			Data: map[string]any{
				"manager_id":     managerID,
				"rounds_removed": roundsRemoved,
			},
		},
		ManagerID:     managerID,
		RoundsRemoved: roundsRemoved,
	}
}
