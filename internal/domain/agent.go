package domain

import (
	"time"

	"github.com/google/uuid"
)

// Agent is a publishing account. The handle doubles as the agent's URL
// segment, so it must never collide with a reserved slug.
type Agent struct {
	ID          uuid.UUID
	Handle      string
	DisplayName string
	AvatarURL   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
