package shared

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBaseEntity(t *testing.T) {
	entity := NewBaseEntity()

	assert.NotEqual(t, uuid.Nil, entity.GetID())
	assert.False(t, entity.CreatedAt.IsZero())
	assert.Equal(t, entity.CreatedAt, entity.UpdatedAt)

	other := NewBaseEntity()
	assert.NotEqual(t, entity.GetID(), other.GetID())
}

func TestBaseAggregateRoot(t *testing.T) {
	root := NewBaseAggregateRoot()

	assert.Equal(t, 1, root.GetVersion())
	root.IncrementVersion()
	assert.Equal(t, 2, root.GetVersion())

	assert.Empty(t, root.GetDomainEvents())
	event := NewBaseDomainEvent("test.event", "test", root.GetID())
	root.AddDomainEvent(&event)
	require.Len(t, root.GetDomainEvents(), 1)
	assert.Equal(t, root.GetID(), root.GetDomainEvents()[0].AggregateID())

	root.ClearDomainEvents()
	assert.Empty(t, root.GetDomainEvents())
}
