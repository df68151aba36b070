package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"option-set-api/internal/domain"
)

// Pagination policy for the archive listing. Out-of-range limits are
// clamped, never rejected: limit <= 0 falls back to DefaultPageLimit and
// anything above MaxPageLimit is capped. A skip past the end yields an
// empty page with the true total.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// sortColumns whitelists the sortable archive columns
var sortColumns = map[string]string{
	"deleted_at": "deleted_at DESC",
	"name":       "name ASC",
}

// ArchiveRepository defines the interface for archived snapshot data access
type ArchiveRepository interface {
	Insert(ctx context.Context, archived *domain.ArchivedSet) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.ArchivedSet, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Page(ctx context.Context, limit, skip int, sortBy string) ([]*domain.ArchivedSet, int64, error)
	InsertOption(ctx context.Context, archived *domain.ArchivedOption) error
	FindOptionsBySet(ctx context.Context, setID uuid.UUID) ([]*domain.ArchivedOption, error)
	FindDeletedBefore(ctx context.Context, cutoff time.Time) ([]*domain.ArchivedSet, error)
	Count(ctx context.Context) (int64, error)
}

// archiveRepositoryImpl is the GORM implementation of ArchiveRepository
type archiveRepositoryImpl struct {
	db *gorm.DB
}

// NewArchiveRepository creates a new instance of ArchiveRepository
func NewArchiveRepository(db *gorm.DB) ArchiveRepository {
	return &archiveRepositoryImpl{db: db}
}

// Insert stores an archived set snapshot
func (r *archiveRepositoryImpl) Insert(ctx context.Context, archived *domain.ArchivedSet) error {
	if err := r.db.WithContext(ctx).Create(archived).Error; err != nil {
		return err
	}
	return nil
}

// FindByID finds an archived set by its archive record ID
func (r *archiveRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.ArchivedSet, error) {
	var archived domain.ArchivedSet
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&archived).Error; err != nil {
		return nil, err
	}
	return &archived, nil
}

// Delete permanently removes an archive record. There is no recovery path
// after this.
func (r *archiveRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&domain.ArchivedSet{}, id).Error; err != nil {
		return err
	}
	return nil
}

// Page returns one page of archived sets plus the total count across all
// pages. Default ordering is deleted_at descending.
func (r *archiveRepositoryImpl) Page(ctx context.Context, limit, skip int, sortBy string) ([]*domain.ArchivedSet, int64, error) {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	if skip < 0 {
		skip = 0
	}

	order, ok := sortColumns[sortBy]
	if !ok {
		order = sortColumns["deleted_at"]
	}

	var total int64
	if err := r.db.WithContext(ctx).
		Model(&domain.ArchivedSet{}).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []*domain.ArchivedSet
	if err := r.db.WithContext(ctx).
		Order(order).
		Limit(limit).
		Offset(skip).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// InsertOption stores the audit record for a single archived option
func (r *archiveRepositoryImpl) InsertOption(ctx context.Context, archived *domain.ArchivedOption) error {
	if err := r.db.WithContext(ctx).Create(archived).Error; err != nil {
		return err
	}
	return nil
}

// FindOptionsBySet returns the per-option archive records of a set, newest
// first
func (r *archiveRepositoryImpl) FindOptionsBySet(ctx context.Context, setID uuid.UUID) ([]*domain.ArchivedOption, error) {
	var records []*domain.ArchivedOption
	if err := r.db.WithContext(ctx).
		Where("option_set_id = ?", setID).
		Order("deleted_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindDeletedBefore returns archive records older than the cutoff, used by
// the retention job
func (r *archiveRepositoryImpl) FindDeletedBefore(ctx context.Context, cutoff time.Time) ([]*domain.ArchivedSet, error) {
	var records []*domain.ArchivedSet
	if err := r.db.WithContext(ctx).
		Where("deleted_at < ?", cutoff).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Count returns the total number of archived sets
func (r *archiveRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&domain.ArchivedSet{}).
		Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
