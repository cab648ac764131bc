package shared

import (
	"time"

	"github.com/google/uuid"
)

// Identifiable is satisfied by anything persisted under a uuid key
type Identifiable interface {
	GetID() uuid.UUID
}

// BaseEntity carries the identity and timestamps every persisted record
// shares. IDs are generated at construction, never by the database.
type BaseEntity struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// GetID returns the entity ID
func (e *BaseEntity) GetID() uuid.UUID {
	return e.ID
}

// NewBaseEntity creates a base entity with a fresh ID
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
