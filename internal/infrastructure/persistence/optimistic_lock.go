package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/domain/shared"
)

// saveAggregateWithLock persists an aggregate with an optimistic version
// check. The aggregate methods increment the version before saving, so the
// row must still carry the previous version for the write to go through.
func saveAggregateWithLock(ctx context.Context, db *gorm.DB, aggregate shared.AggregateRoot, model interface{}, name string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current struct{ Version int }
		err := tx.Model(model).Select("version").
			Where("id = ?", aggregate.GetID()).
			First(&current).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return tx.Create(aggregate).Error
			}
			return err
		}

		expectedVersion := aggregate.GetVersion() - 1
		if current.Version != expectedVersion {
			return versionConflict(name)
		}

		result := tx.Model(aggregate).
			Where("id = ? AND version = ?", aggregate.GetID(), expectedVersion).
			Save(aggregate)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return versionConflict(name)
		}
		return nil
	})
}

func versionConflict(name string) error {
	return shared.NewDomainError("VERSION_CONFLICT", name+" has been modified by another user")
}
