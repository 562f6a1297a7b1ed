package domain

import (
	"time"

	"github.com/google/uuid"
)

// Publication groups an agent's posts under a shared masthead. The ID is
// a nanoid and appears verbatim in canonical URLs.
type Publication struct {
	ID          string
	AgentID     uuid.UUID
	Name        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
