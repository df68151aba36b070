package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"option-set-api/internal/domain"
)

// OptionSetRepository defines the interface for live option set data access
type OptionSetRepository interface {
	Create(ctx context.Context, set *domain.OptionSet) error
	FindAll(ctx context.Context) ([]*domain.OptionSet, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.OptionSet, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.OptionSet, error)
	FindByName(ctx context.Context, name string) (*domain.OptionSet, error)
	FindByBoundField(ctx context.Context, fieldID string) ([]*domain.OptionSet, error)
	Update(ctx context.Context, set *domain.OptionSet) error
	UpdateBoundField(ctx context.Context, setID uuid.UUID, fieldID *string) error
	Delete(ctx context.Context, id uuid.UUID) error
	ReserveOptionSeq(ctx context.Context, setID uuid.UUID, count int64) (int64, error)
	MaxOptionPosition(ctx context.Context, setID uuid.UUID) (int, error)
	CreateOption(ctx context.Context, option *domain.Option) error
	CreateOptionsBatch(ctx context.Context, options []*domain.Option) error
	FindOption(ctx context.Context, setID, optionID uuid.UUID) (*domain.Option, error)
	UpdateOption(ctx context.Context, option *domain.Option) error
	DeleteOption(ctx context.Context, optionID uuid.UUID) error
	DeleteOptionsBySet(ctx context.Context, setID uuid.UUID) error
}

// optionSetRepositoryImpl is the GORM implementation of OptionSetRepository
type optionSetRepositoryImpl struct {
	db *gorm.DB
}

// NewOptionSetRepository creates a new instance of OptionSetRepository
func NewOptionSetRepository(db *gorm.DB) OptionSetRepository {
	return &optionSetRepositoryImpl{db: db}
}

// Create creates a new option set
func (r *optionSetRepositoryImpl) Create(ctx context.Context, set *domain.OptionSet) error {
	if err := r.db.WithContext(ctx).Create(set).Error; err != nil {
		return err
	}
	return nil
}

// FindAll returns all live option sets with their options in display order
func (r *optionSetRepositoryImpl) FindAll(ctx context.Context) ([]*domain.OptionSet, error) {
	var sets []*domain.OptionSet
	if err := r.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("created_at ASC").
		Find(&sets).Error; err != nil {
		return nil, err
	}
	return sets, nil
}

// FindByID finds an option set by ID with its options in display order
func (r *optionSetRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.OptionSet, error) {
	var set domain.OptionSet
	if err := r.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ?", id).
		First(&set).Error; err != nil {
		return nil, err
	}
	return &set, nil
}

// FindByIDForUpdate loads a set while taking its row lock for the rest of
// the enclosing transaction. Option mutations lock the same row through
// ReserveOptionSeq, so a set read this way cannot gain or lose options until
// the caller commits. The locking clause is omitted on sqlite, which has no
// row locks and serializes writers already.
func (r *optionSetRepositoryImpl) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.OptionSet, error) {
	tx := r.db.WithContext(ctx)
	if r.db.Dialector.Name() != "sqlite" {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var set domain.OptionSet
	if err := tx.
		Where("id = ?", id).
		First(&set).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Where("option_set_id = ?", id).
		Order("position ASC").
		Find(&set.Options).Error; err != nil {
		return nil, err
	}
	return &set, nil
}

// FindByName finds a live option set by exact name; returns nil when absent
func (r *optionSetRepositoryImpl) FindByName(ctx context.Context, name string) (*domain.OptionSet, error) {
	var set domain.OptionSet
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&set).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &set, nil
}

// FindByBoundField finds all live sets currently claiming the given field
// identifier. The unique index keeps this at zero or one rows; the slice
// return lets the binding transaction clear stragglers defensively.
func (r *optionSetRepositoryImpl) FindByBoundField(ctx context.Context, fieldID string) ([]*domain.OptionSet, error) {
	var sets []*domain.OptionSet
	if err := r.db.WithContext(ctx).
		Where("bound_field_id = ?", fieldID).
		Find(&sets).Error; err != nil {
		return nil, err
	}
	return sets, nil
}

// Update saves the full option set row
func (r *optionSetRepositoryImpl) Update(ctx context.Context, set *domain.OptionSet) error {
	if err := r.db.WithContext(ctx).Save(set).Error; err != nil {
		return err
	}
	return nil
}

// UpdateBoundField writes only the bound_field_id column of one set
func (r *optionSetRepositoryImpl) UpdateBoundField(ctx context.Context, setID uuid.UUID, fieldID *string) error {
	result := r.db.WithContext(ctx).
		Model(&domain.OptionSet{}).
		Where("id = ?", setID).
		Update("bound_field_id", fieldID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete hard-deletes an option set row. Only the archiving transaction may
// call this; the set's value must already be snapshotted.
func (r *optionSetRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&domain.OptionSet{}, id).Error; err != nil {
		return err
	}
	return nil
}

// ReserveOptionSeq atomically advances a set's next_option_seq by count and
// returns the first reserved value. The in-place UPDATE takes the row lock,
// so concurrent reservations inside transactions are serialized and no
// incremental ID is ever issued twice.
func (r *optionSetRepositoryImpl) ReserveOptionSeq(ctx context.Context, setID uuid.UUID, count int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.OptionSet{}).
		Where("id = ?", setID).
		UpdateColumn("next_option_seq", gorm.Expr("next_option_seq + ?", count))
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}

	var set domain.OptionSet
	if err := r.db.WithContext(ctx).
		Select("next_option_seq").
		Where("id = ?", setID).
		First(&set).Error; err != nil {
		return 0, err
	}
	return set.NextOptionSeq - count, nil
}

// MaxOptionPosition returns the highest display position within a set, or
// -1 when the set has no options
func (r *optionSetRepositoryImpl) MaxOptionPosition(ctx context.Context, setID uuid.UUID) (int, error) {
	var max *int
	if err := r.db.WithContext(ctx).
		Model(&domain.Option{}).
		Where("option_set_id = ?", setID).
		Select("MAX(position)").
		Scan(&max).Error; err != nil {
		return 0, err
	}
	if max == nil {
		return -1, nil
	}
	return *max, nil
}

// CreateOption appends a new option row
func (r *optionSetRepositoryImpl) CreateOption(ctx context.Context, option *domain.Option) error {
	if err := r.db.WithContext(ctx).Create(option).Error; err != nil {
		return err
	}
	return nil
}

// CreateOptionsBatch creates multiple options in a single statement
func (r *optionSetRepositoryImpl) CreateOptionsBatch(ctx context.Context, options []*domain.Option) error {
	if len(options) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&options).Error; err != nil {
		return err
	}
	return nil
}

// FindOption finds one option scoped to its owning set
func (r *optionSetRepositoryImpl) FindOption(ctx context.Context, setID, optionID uuid.UUID) (*domain.Option, error) {
	var option domain.Option
	if err := r.db.WithContext(ctx).
		Where("id = ? AND option_set_id = ?", optionID, setID).
		First(&option).Error; err != nil {
		return nil, err
	}
	return &option, nil
}

// UpdateOption saves the full option row
func (r *optionSetRepositoryImpl) UpdateOption(ctx context.Context, option *domain.Option) error {
	if err := r.db.WithContext(ctx).Save(option).Error; err != nil {
		return err
	}
	return nil
}

// DeleteOption hard-deletes one option row
func (r *optionSetRepositoryImpl) DeleteOption(ctx context.Context, optionID uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&domain.Option{}, optionID).Error; err != nil {
		return err
	}
	return nil
}

// DeleteOptionsBySet hard-deletes every option owned by a set. Used by the
// archiving transaction after the snapshot is taken.
func (r *optionSetRepositoryImpl) DeleteOptionsBySet(ctx context.Context, setID uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("option_set_id = ?", setID).
		Delete(&domain.Option{}).Error; err != nil {
		return err
	}
	return nil
}
