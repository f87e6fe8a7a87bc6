package shared

import (
	"time"

	"github.com/google/uuid"
)

// Entity is implemented by every domain object with its own identity.
type Entity interface {
	GetID() uuid.UUID
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
}

// BaseEntity carries the identity and timestamp fields shared by all
// domain entities. Embed it; mutators on the embedding type are
// responsible for bumping UpdatedAt.
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity assigns a fresh ID and stamps both timestamps with the
// same instant.
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// GetID implements Entity.
func (e *BaseEntity) GetID() uuid.UUID {
	return e.ID
}

// GetCreatedAt implements Entity.
func (e *BaseEntity) GetCreatedAt() time.Time {
	return e.CreatedAt
}

// GetUpdatedAt implements Entity.
func (e *BaseEntity) GetUpdatedAt() time.Time {
	return e.UpdatedAt
}
