package service

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"option-set-api/internal/domain"
	"option-set-api/internal/repository"
	"option-set-api/internal/response"
)

// FieldBindingRegistry enforces that an external field identifier is claimed
// by at most one live option set. Bind reassigns ownership as one logical
// transaction: either the field moves entirely or nothing changes.
type FieldBindingRegistry interface {
	Bind(ctx context.Context, setID uuid.UUID, fieldID string) ([]uuid.UUID, error)
}

// fieldBindingRegistryImpl serializes binds per field with a keyed mutex and
// applies the reassignment inside a single database transaction. The unique
// index on option_sets.bound_field_id backs the invariant at the store.
type fieldBindingRegistryImpl struct {
	tx     repository.TxRunner
	logger *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewFieldBindingRegistry creates a new instance of FieldBindingRegistry
func NewFieldBindingRegistry(tx repository.TxRunner, logger *zap.Logger) FieldBindingRegistry {
	return &fieldBindingRegistryImpl{
		tx:     tx,
		logger: logger,
		locks:  make(map[string]*sync.Mutex),
	}
}

// fieldLock returns the mutex serializing binds for one field identifier
func (r *fieldBindingRegistryImpl) fieldLock(fieldID string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	lock, ok := r.locks[fieldID]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[fieldID] = lock
	}
	return lock
}

// Bind claims fieldID for setID, releasing it from any other live set, and
// reports the previous owners. An empty fieldID releases the set's current
// binding only. On error no partial reassignment is visible.
func (r *fieldBindingRegistryImpl) Bind(ctx context.Context, setID uuid.UUID, fieldID string) ([]uuid.UUID, error) {
	if fieldID != "" {
		lock := r.fieldLock(fieldID)
		lock.Lock()
		defer lock.Unlock()
	}

	var previousOwners []uuid.UUID

	err := r.tx.RunInTransaction(ctx, func(sets repository.OptionSetRepository, _ repository.ArchiveRepository) error {
		target, err := sets.FindByID(ctx, setID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NewNotFoundError("Option set not found", setID.String())
			}
			return err
		}

		if fieldID == "" {
			if target.BoundFieldID == nil {
				return nil
			}
			target.BoundFieldID = nil
			return r.saveBinding(ctx, sets, target)
		}

		owners, err := sets.FindByBoundField(ctx, fieldID)
		if err != nil {
			return err
		}
		for _, owner := range owners {
			if owner.ID == setID {
				continue
			}
			previousOwners = append(previousOwners, owner.ID)
			owner.BoundFieldID = nil
			if err := r.saveBinding(ctx, sets, owner); err != nil {
				return err
			}
		}

		target.BoundFieldID = &fieldID
		return r.saveBinding(ctx, sets, target)
	})
	if err != nil {
		return nil, err
	}

	for _, owner := range previousOwners {
		r.logger.Info("Field binding reassigned",
			zap.String("field_id", fieldID),
			zap.String("previous_owner", owner.String()),
			zap.String("new_owner", setID.String()),
		)
	}

	return previousOwners, nil
}

// saveBinding persists only the bound_field_id column so concurrent option
// mutations on the same set are not overwritten by a stale full-row save
func (r *fieldBindingRegistryImpl) saveBinding(ctx context.Context, sets repository.OptionSetRepository, set *domain.OptionSet) error {
	return sets.UpdateBoundField(ctx, set.ID, set.BoundFieldID)
}
