package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"option-set-api/internal/domain"
	"option-set-api/internal/repository"
)

// MockOptionSetRepository is a mock implementation of repository.OptionSetRepository
type MockOptionSetRepository struct {
	CreateFunc             func(ctx context.Context, set *domain.OptionSet) error
	FindAllFunc            func(ctx context.Context) ([]*domain.OptionSet, error)
	FindByIDFunc           func(ctx context.Context, id uuid.UUID) (*domain.OptionSet, error)
	FindByIDForUpdateFunc  func(ctx context.Context, id uuid.UUID) (*domain.OptionSet, error)
	FindByNameFunc         func(ctx context.Context, name string) (*domain.OptionSet, error)
	FindByBoundFieldFunc   func(ctx context.Context, fieldID string) ([]*domain.OptionSet, error)
	UpdateFunc             func(ctx context.Context, set *domain.OptionSet) error
	UpdateBoundFieldFunc   func(ctx context.Context, setID uuid.UUID, fieldID *string) error
	DeleteFunc             func(ctx context.Context, id uuid.UUID) error
	ReserveOptionSeqFunc   func(ctx context.Context, setID uuid.UUID, count int64) (int64, error)
	MaxOptionPositionFunc  func(ctx context.Context, setID uuid.UUID) (int, error)
	CreateOptionFunc       func(ctx context.Context, option *domain.Option) error
	CreateOptionsBatchFunc func(ctx context.Context, options []*domain.Option) error
	FindOptionFunc         func(ctx context.Context, setID, optionID uuid.UUID) (*domain.Option, error)
	UpdateOptionFunc       func(ctx context.Context, option *domain.Option) error
	DeleteOptionFunc       func(ctx context.Context, optionID uuid.UUID) error
	DeleteOptionsBySetFunc func(ctx context.Context, setID uuid.UUID) error
}

func (m *MockOptionSetRepository) Create(ctx context.Context, set *domain.OptionSet) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, set)
	}
	set.ID = uuid.New()
	return nil
}

func (m *MockOptionSetRepository) FindAll(ctx context.Context) ([]*domain.OptionSet, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return []*domain.OptionSet{}, nil
}

func (m *MockOptionSetRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.OptionSet, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return &domain.OptionSet{BaseModel: domain.BaseModel{ID: id}}, nil
}

func (m *MockOptionSetRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.OptionSet, error) {
	if m.FindByIDForUpdateFunc != nil {
		return m.FindByIDForUpdateFunc(ctx, id)
	}
	// Falls back to the plain read so tests only caring about the returned
	// set configure one func
	return m.FindByID(ctx, id)
}

func (m *MockOptionSetRepository) FindByName(ctx context.Context, name string) (*domain.OptionSet, error) {
	if m.FindByNameFunc != nil {
		return m.FindByNameFunc(ctx, name)
	}
	return nil, nil
}

func (m *MockOptionSetRepository) FindByBoundField(ctx context.Context, fieldID string) ([]*domain.OptionSet, error) {
	if m.FindByBoundFieldFunc != nil {
		return m.FindByBoundFieldFunc(ctx, fieldID)
	}
	return []*domain.OptionSet{}, nil
}

func (m *MockOptionSetRepository) Update(ctx context.Context, set *domain.OptionSet) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, set)
	}
	return nil
}

func (m *MockOptionSetRepository) UpdateBoundField(ctx context.Context, setID uuid.UUID, fieldID *string) error {
	if m.UpdateBoundFieldFunc != nil {
		return m.UpdateBoundFieldFunc(ctx, setID, fieldID)
	}
	return nil
}

func (m *MockOptionSetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockOptionSetRepository) ReserveOptionSeq(ctx context.Context, setID uuid.UUID, count int64) (int64, error) {
	if m.ReserveOptionSeqFunc != nil {
		return m.ReserveOptionSeqFunc(ctx, setID, count)
	}
	return 1, nil
}

func (m *MockOptionSetRepository) MaxOptionPosition(ctx context.Context, setID uuid.UUID) (int, error) {
	if m.MaxOptionPositionFunc != nil {
		return m.MaxOptionPositionFunc(ctx, setID)
	}
	return -1, nil
}

func (m *MockOptionSetRepository) CreateOption(ctx context.Context, option *domain.Option) error {
	if m.CreateOptionFunc != nil {
		return m.CreateOptionFunc(ctx, option)
	}
	option.ID = uuid.New()
	return nil
}

func (m *MockOptionSetRepository) CreateOptionsBatch(ctx context.Context, options []*domain.Option) error {
	if m.CreateOptionsBatchFunc != nil {
		return m.CreateOptionsBatchFunc(ctx, options)
	}
	for _, option := range options {
		if option.ID == uuid.Nil {
			option.ID = uuid.New()
		}
	}
	return nil
}

func (m *MockOptionSetRepository) FindOption(ctx context.Context, setID, optionID uuid.UUID) (*domain.Option, error) {
	if m.FindOptionFunc != nil {
		return m.FindOptionFunc(ctx, setID, optionID)
	}
	return &domain.Option{BaseModel: domain.BaseModel{ID: optionID}, OptionSetID: setID}, nil
}

func (m *MockOptionSetRepository) UpdateOption(ctx context.Context, option *domain.Option) error {
	if m.UpdateOptionFunc != nil {
		return m.UpdateOptionFunc(ctx, option)
	}
	return nil
}

func (m *MockOptionSetRepository) DeleteOption(ctx context.Context, optionID uuid.UUID) error {
	if m.DeleteOptionFunc != nil {
		return m.DeleteOptionFunc(ctx, optionID)
	}
	return nil
}

func (m *MockOptionSetRepository) DeleteOptionsBySet(ctx context.Context, setID uuid.UUID) error {
	if m.DeleteOptionsBySetFunc != nil {
		return m.DeleteOptionsBySetFunc(ctx, setID)
	}
	return nil
}

// MockArchiveRepository is a mock implementation of repository.ArchiveRepository
type MockArchiveRepository struct {
	InsertFunc            func(ctx context.Context, archived *domain.ArchivedSet) error
	FindByIDFunc          func(ctx context.Context, id uuid.UUID) (*domain.ArchivedSet, error)
	DeleteFunc            func(ctx context.Context, id uuid.UUID) error
	PageFunc              func(ctx context.Context, limit, skip int, sortBy string) ([]*domain.ArchivedSet, int64, error)
	InsertOptionFunc      func(ctx context.Context, archived *domain.ArchivedOption) error
	FindOptionsBySetFunc  func(ctx context.Context, setID uuid.UUID) ([]*domain.ArchivedOption, error)
	FindDeletedBeforeFunc func(ctx context.Context, cutoff time.Time) ([]*domain.ArchivedSet, error)
	CountFunc             func(ctx context.Context) (int64, error)
}

func (m *MockArchiveRepository) Insert(ctx context.Context, archived *domain.ArchivedSet) error {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, archived)
	}
	archived.ID = uuid.New()
	return nil
}

func (m *MockArchiveRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.ArchivedSet, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return &domain.ArchivedSet{BaseModel: domain.BaseModel{ID: id}}, nil
}

func (m *MockArchiveRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockArchiveRepository) Page(ctx context.Context, limit, skip int, sortBy string) ([]*domain.ArchivedSet, int64, error) {
	if m.PageFunc != nil {
		return m.PageFunc(ctx, limit, skip, sortBy)
	}
	return []*domain.ArchivedSet{}, 0, nil
}

func (m *MockArchiveRepository) InsertOption(ctx context.Context, archived *domain.ArchivedOption) error {
	if m.InsertOptionFunc != nil {
		return m.InsertOptionFunc(ctx, archived)
	}
	archived.ID = uuid.New()
	return nil
}

func (m *MockArchiveRepository) FindOptionsBySet(ctx context.Context, setID uuid.UUID) ([]*domain.ArchivedOption, error) {
	if m.FindOptionsBySetFunc != nil {
		return m.FindOptionsBySetFunc(ctx, setID)
	}
	return []*domain.ArchivedOption{}, nil
}

func (m *MockArchiveRepository) FindDeletedBefore(ctx context.Context, cutoff time.Time) ([]*domain.ArchivedSet, error) {
	if m.FindDeletedBeforeFunc != nil {
		return m.FindDeletedBeforeFunc(ctx, cutoff)
	}
	return []*domain.ArchivedSet{}, nil
}

func (m *MockArchiveRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

// MockTxRunner hands the configured mock repositories to the transaction
// body. No rollback semantics; error propagation is what the tests exercise.
type MockTxRunner struct {
	Sets                 *MockOptionSetRepository
	Archives             *MockArchiveRepository
	RunInTransactionFunc func(ctx context.Context, fn func(sets repository.OptionSetRepository, archives repository.ArchiveRepository) error) error
}

func (m *MockTxRunner) RunInTransaction(ctx context.Context, fn func(sets repository.OptionSetRepository, archives repository.ArchiveRepository) error) error {
	if m.RunInTransactionFunc != nil {
		return m.RunInTransactionFunc(ctx, fn)
	}
	sets := m.Sets
	if sets == nil {
		sets = &MockOptionSetRepository{}
	}
	archives := m.Archives
	if archives == nil {
		archives = &MockArchiveRepository{}
	}
	return fn(sets, archives)
}

// MockFieldBindingRegistry is a mock implementation of FieldBindingRegistry
type MockFieldBindingRegistry struct {
	BindFunc func(ctx context.Context, setID uuid.UUID, fieldID string) ([]uuid.UUID, error)
}

func (m *MockFieldBindingRegistry) Bind(ctx context.Context, setID uuid.UUID, fieldID string) ([]uuid.UUID, error) {
	if m.BindFunc != nil {
		return m.BindFunc(ctx, setID, fieldID)
	}
	return nil, nil
}

// MockArchiveExporter is a mock implementation of ArchiveExporter
type MockArchiveExporter struct {
	ExportArchiveFunc func(ctx context.Context, archived *domain.ArchivedSet) error
}

func (m *MockArchiveExporter) ExportArchive(ctx context.Context, archived *domain.ArchivedSet) error {
	if m.ExportArchiveFunc != nil {
		return m.ExportArchiveFunc(ctx, archived)
	}
	return nil
}
