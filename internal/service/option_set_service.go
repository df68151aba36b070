package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"option-set-api/internal/domain"
	"option-set-api/internal/dto"
	"option-set-api/internal/metrics"
	"option-set-api/internal/repository"
	"option-set-api/internal/response"
)

// OptionSetService defines the interface for option set lifecycle logic.
// It is the only writer of the live and archive stores; every multi-row
// mutation is atomic with respect to both.
type OptionSetService interface {
	ListSets(ctx context.Context) ([]*dto.OptionSetResponse, error)
	GetSet(ctx context.Context, setID uuid.UUID) (*dto.OptionSetResponse, error)
	CreateSet(ctx context.Context, req *dto.CreateOptionSetRequest) (*dto.OptionSetResponse, error)
	UpdateSet(ctx context.Context, setID uuid.UUID, req *dto.UpdateOptionSetRequest) (*dto.OptionSetResponse, error)
	AddOption(ctx context.Context, setID uuid.UUID, req *dto.AddOptionRequest) (*dto.OptionResponse, error)
	UpdateOption(ctx context.Context, setID, optionID uuid.UUID, req *dto.UpdateOptionRequest) (*dto.OptionResponse, error)
	BulkAddOptions(ctx context.Context, setID uuid.UUID, req *dto.BulkAddOptionsRequest) ([]*dto.OptionResponse, error)
	ArchiveSet(ctx context.Context, setID uuid.UUID, reason string, actor domain.Actor) (*dto.ArchivedSetResponse, error)
	ArchiveOption(ctx context.Context, setID, optionID uuid.UUID, reason string, actor domain.Actor) error
	RestoreArchivedSet(ctx context.Context, archiveID uuid.UUID, newName string) (*dto.OptionSetResponse, error)
	PermanentlyDelete(ctx context.Context, archiveID uuid.UUID) error
	BindField(ctx context.Context, setID uuid.UUID, fieldID string) (*dto.BindFieldResponse, error)
	ListArchives(ctx context.Context, limit, skip int, sortBy string) (*dto.ArchivePageResponse, error)
	GetArchive(ctx context.Context, archiveID uuid.UUID) (*dto.ArchivedSetResponse, error)
	ListArchivedOptions(ctx context.Context, setID uuid.UUID) ([]*dto.ArchivedOptionResponse, error)
}

// ArchiveExporter writes a cold-storage copy of an archive snapshot before
// it is permanently purged
type ArchiveExporter interface {
	ExportArchive(ctx context.Context, archived *domain.ArchivedSet) error
}

// optionSetServiceImpl is the implementation of OptionSetService
type optionSetServiceImpl struct {
	setRepo     repository.OptionSetRepository
	archiveRepo repository.ArchiveRepository
	tx          repository.TxRunner
	registry    FieldBindingRegistry
	cache       *SetCache
	exporter    ArchiveExporter
	hub         *EventHub
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewOptionSetService creates a new instance of OptionSetService
func NewOptionSetService(
	setRepo repository.OptionSetRepository,
	archiveRepo repository.ArchiveRepository,
	tx repository.TxRunner,
	registry FieldBindingRegistry,
	cache *SetCache,
	exporter ArchiveExporter,
	hub *EventHub,
	m *metrics.Metrics,
	logger *zap.Logger,
) OptionSetService {
	return &optionSetServiceImpl{
		setRepo:     setRepo,
		archiveRepo: archiveRepo,
		tx:          tx,
		registry:    registry,
		cache:       cache,
		exporter:    exporter,
		hub:         hub,
		metrics:     m,
		logger:      logger,
	}
}

// ListSets returns all live option sets
func (s *optionSetServiceImpl) ListSets(ctx context.Context) ([]*dto.OptionSetResponse, error) {
	if cached, ok := s.cache.GetList(ctx); ok {
		return cached, nil
	}

	sets, err := s.setRepo.FindAll(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch option sets", err.Error())
	}

	responses := make([]*dto.OptionSetResponse, len(sets))
	for i, set := range sets {
		responses[i] = toOptionSetResponse(set)
	}

	s.cache.PutList(ctx, responses)
	return responses, nil
}

// GetSet returns one live option set with its options in display order
func (s *optionSetServiceImpl) GetSet(ctx context.Context, setID uuid.UUID) (*dto.OptionSetResponse, error) {
	if cached, ok := s.cache.GetSet(ctx, setID); ok {
		return cached, nil
	}

	set, err := s.setRepo.FindByID(ctx, setID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Option set not found", setID.String())
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch option set", err.Error())
	}

	resp := toOptionSetResponse(set)
	s.cache.PutSet(ctx, resp)
	return resp, nil
}

// CreateSet creates a new live option set with no options
func (s *optionSetServiceImpl) CreateSet(ctx context.Context, req *dto.CreateOptionSetRequest) (*dto.OptionSetResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, response.NewValidationError("Set name must not be empty", "")
	}

	existing, err := s.setRepo.FindByName(ctx, name)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check for duplicates", err.Error())
	}
	if existing != nil {
		return nil, response.NewConflictError("An option set with this name already exists", name)
	}

	kind := domain.SetKind(req.Kind)
	if kind == "" {
		kind = domain.SetKindDropdown
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	set := &domain.OptionSet{
		Name:          name,
		Description:   req.Description,
		Kind:          kind,
		IsActive:      isActive,
		NextOptionSeq: 1,
	}

	if err := s.setRepo.Create(ctx, set); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, response.NewConflictError("An option set with this name already exists", name)
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create option set", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementSetCreated()
	}
	s.cache.Invalidate(ctx, set.ID)
	s.publish(EventSetCreated, set.ID, set.Name, "")

	return toOptionSetResponse(set), nil
}

// UpdateSet updates name, description or active flag of a live set. A name
// change is checked against every other live set.
func (s *optionSetServiceImpl) UpdateSet(ctx context.Context, setID uuid.UUID, req *dto.UpdateOptionSetRequest) (*dto.OptionSetResponse, error) {
	set, err := s.setRepo.FindByID(ctx, setID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Option set not found", setID.String())
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch option set", err.Error())
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, response.NewValidationError("Set name must not be empty", "")
		}
		if name != set.Name {
			existing, err := s.setRepo.FindByName(ctx, name)
			if err != nil {
				return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check for duplicates", err.Error())
			}
			if existing != nil && existing.ID != set.ID {
				return nil, response.NewConflictError("An option set with this name already exists", name)
			}
			set.Name = name
		}
	}
	if req.Description != nil {
		set.Description = *req.Description
	}
	if req.IsActive != nil {
		set.IsActive = *req.IsActive
	}

	if err := s.setRepo.Update(ctx, set); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, response.NewConflictError("An option set with this name already exists", set.Name)
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update option set", err.Error())
	}

	s.cache.Invalidate(ctx, set.ID)
	s.publish(EventSetUpdated, set.ID, set.Name, "")

	return toOptionSetResponse(set), nil
}

// AddOption appends a single option to a set, assigning the next
// incremental ID from the set's sequence
func (s *optionSetServiceImpl) AddOption(ctx context.Context, setID uuid.UUID, req *dto.AddOptionRequest) (*dto.OptionResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, response.NewValidationError("Option name must not be empty", "")
	}

	visibility := true
	if req.Visibility != nil {
		visibility = *req.Visibility
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	var created *domain.Option
	err := s.tx.RunInTransaction(ctx, func(sets repository.OptionSetRepository, _ repository.ArchiveRepository) error {
		seq, err := sets.ReserveOptionSeq(ctx, setID, 1)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NewNotFoundError("Option set not found", setID.String())
			}
			return err
		}
		position, err := sets.MaxOptionPosition(ctx, setID)
		if err != nil {
			return err
		}

		option := &domain.Option{
			OptionSetID:   setID,
			IncrementalID: seq,
			Name:          req.Name,
			Visibility:    visibility,
			IsActive:      isActive,
			Position:      position + 1,
		}
		if err := sets.CreateOption(ctx, option); err != nil {
			return err
		}
		created = option
		return nil
	})
	if err != nil {
		return nil, s.wrapError(err, "Failed to add option")
	}

	if s.metrics != nil {
		s.metrics.IncrementOptionCreated()
	}
	s.cache.Invalidate(ctx, setID)
	s.publish(EventOptionAdded, setID, "", "")

	resp := toOptionResponse(created)
	return &resp, nil
}

// UpdateOption updates an option's name, visibility or active flag. The
// incremental ID is never changed.
func (s *optionSetServiceImpl) UpdateOption(ctx context.Context, setID, optionID uuid.UUID, req *dto.UpdateOptionRequest) (*dto.OptionResponse, error) {
	option, err := s.setRepo.FindOption(ctx, setID, optionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Option not found", optionID.String())
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch option", err.Error())
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, response.NewValidationError("Option name must not be empty", "")
		}
		option.Name = *req.Name
	}
	if req.Visibility != nil {
		option.Visibility = *req.Visibility
	}
	if req.IsActive != nil {
		option.IsActive = *req.IsActive
	}

	if err := s.setRepo.UpdateOption(ctx, option); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update option", err.Error())
	}

	s.cache.Invalidate(ctx, setID)
	s.publish(EventOptionUpdated, setID, "", "")

	resp := toOptionResponse(option)
	return &resp, nil
}

// BulkAddOptions appends all candidates with a non-blank name, in input
// order, each with a fresh incremental ID. Blank rows are dropped silently;
// when every row is blank the call fails as invalid.
func (s *optionSetServiceImpl) BulkAddOptions(ctx context.Context, setID uuid.UUID, req *dto.BulkAddOptionsRequest) ([]*dto.OptionResponse, error) {
	valid := make([]dto.BulkOptionCandidate, 0, len(req.Options))
	for _, candidate := range req.Options {
		if strings.TrimSpace(candidate.Name) == "" {
			continue
		}
		valid = append(valid, candidate)
	}
	if len(valid) == 0 {
		return nil, response.NewValidationError("No valid options to add", "")
	}

	var created []*domain.Option
	err := s.tx.RunInTransaction(ctx, func(sets repository.OptionSetRepository, _ repository.ArchiveRepository) error {
		seq, err := sets.ReserveOptionSeq(ctx, setID, int64(len(valid)))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NewNotFoundError("Option set not found", setID.String())
			}
			return err
		}
		position, err := sets.MaxOptionPosition(ctx, setID)
		if err != nil {
			return err
		}

		options := make([]*domain.Option, len(valid))
		for i, candidate := range valid {
			visibility := true
			if candidate.Visibility != nil {
				visibility = *candidate.Visibility
			}
			isActive := true
			if candidate.IsActive != nil {
				isActive = *candidate.IsActive
			}
			options[i] = &domain.Option{
				OptionSetID:   setID,
				IncrementalID: seq + int64(i),
				Name:          candidate.Name,
				Visibility:    visibility,
				IsActive:      isActive,
				Position:      position + 1 + i,
			}
		}
		if err := sets.CreateOptionsBatch(ctx, options); err != nil {
			return err
		}
		created = options
		return nil
	})
	if err != nil {
		return nil, s.wrapError(err, "Failed to add options")
	}

	if s.metrics != nil {
		for range created {
			s.metrics.IncrementOptionCreated()
		}
	}
	s.cache.Invalidate(ctx, setID)
	s.publish(EventOptionAdded, setID, "", "")

	responses := make([]*dto.OptionResponse, len(created))
	for i, option := range created {
		resp := toOptionResponse(option)
		responses[i] = &resp
	}
	return responses, nil
}

// ArchiveSet moves a live set into the archive store as an immutable
// snapshot. The removal and the snapshot insert happen in one transaction:
// the set is never present in both stores, and never absent from both. The
// set row is read under its lock so a concurrent option insert cannot land
// between the snapshot and the removal.
func (s *optionSetServiceImpl) ArchiveSet(ctx context.Context, setID uuid.UUID, reason string, actor domain.Actor) (*dto.ArchivedSetResponse, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, response.NewValidationError("A deletion reason is required", "")
	}

	var archived *domain.ArchivedSet
	err := s.tx.RunInTransaction(ctx, func(sets repository.OptionSetRepository, archives repository.ArchiveRepository) error {
		set, err := sets.FindByIDForUpdate(ctx, setID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NewNotFoundError("Option set not found", setID.String())
			}
			return err
		}

		snapshot, err := snapshotOptions(set.Options)
		if err != nil {
			return err
		}

		record := &domain.ArchivedSet{
			OriginalID:     set.ID,
			Name:           set.Name,
			Description:    set.Description,
			Kind:           set.Kind,
			IsActive:       set.IsActive,
			BoundFieldID:   set.BoundFieldID,
			LastOptionID:   set.NextOptionSeq,
			Options:        snapshot,
			DeletedByID:    actor.ID,
			DeletedByName:  actor.Name,
			DeletedByEmail: actor.Email,
			DeletedAt:      time.Now().UTC(),
			Reason:         reason,
		}
		if err := archives.Insert(ctx, record); err != nil {
			return err
		}
		if err := sets.DeleteOptionsBySet(ctx, set.ID); err != nil {
			return err
		}
		if err := sets.Delete(ctx, set.ID); err != nil {
			return err
		}
		archived = record
		return nil
	})
	if err != nil {
		return nil, s.wrapError(err, "Failed to archive option set")
	}

	if s.metrics != nil {
		s.metrics.IncrementSetArchived()
	}
	s.cache.Invalidate(ctx, setID)
	s.publish(EventSetArchived, setID, archived.Name, "")
	s.logger.Info("Option set archived",
		zap.String("set_id", setID.String()),
		zap.String("archive_id", archived.ID.String()),
		zap.String("deleted_by", actor.ID.String()),
	)

	return toArchivedSetResponse(archived), nil
}

// ArchiveOption removes one option from a live set and writes its audit
// record in the same transaction. The set's sequence is untouched, so the
// removed incremental ID is never reissued.
func (s *optionSetServiceImpl) ArchiveOption(ctx context.Context, setID, optionID uuid.UUID, reason string, actor domain.Actor) error {
	if strings.TrimSpace(reason) == "" {
		return response.NewValidationError("A deletion reason is required", "")
	}

	err := s.tx.RunInTransaction(ctx, func(sets repository.OptionSetRepository, archives repository.ArchiveRepository) error {
		option, err := sets.FindOption(ctx, setID, optionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NewNotFoundError("Option not found", optionID.String())
			}
			return err
		}

		record := &domain.ArchivedOption{
			OptionSetID:    setID,
			OptionID:       option.ID,
			IncrementalID:  option.IncrementalID,
			Name:           option.Name,
			Visibility:     option.Visibility,
			IsActive:       option.IsActive,
			DeletedByID:    actor.ID,
			DeletedByName:  actor.Name,
			DeletedByEmail: actor.Email,
			DeletedAt:      time.Now().UTC(),
			Reason:         reason,
		}
		if err := archives.InsertOption(ctx, record); err != nil {
			return err
		}
		return sets.DeleteOption(ctx, option.ID)
	})
	if err != nil {
		return s.wrapError(err, "Failed to archive option")
	}

	s.cache.Invalidate(ctx, setID)
	s.publish(EventOptionArchived, setID, "", "")
	return nil
}

// RestoreArchivedSet reconstructs a live set from an archive snapshot. The
// restored set keeps issuing incremental IDs from the archived sequence and
// comes back without a field binding; rebinding is an explicit follow-up
// because the field may have been claimed while the set was archived.
func (s *optionSetServiceImpl) RestoreArchivedSet(ctx context.Context, archiveID uuid.UUID, newName string) (*dto.OptionSetResponse, error) {
	var restored *domain.OptionSet
	err := s.tx.RunInTransaction(ctx, func(sets repository.OptionSetRepository, archives repository.ArchiveRepository) error {
		archived, err := archives.FindByID(ctx, archiveID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NewNotFoundError("Archive record not found", archiveID.String())
			}
			return err
		}

		name := strings.TrimSpace(newName)
		if name == "" {
			name = archived.Name
		}
		existing, err := sets.FindByName(ctx, name)
		if err != nil {
			return err
		}
		if existing != nil {
			return response.NewConflictError("A live option set with this name already exists", name)
		}

		var snapshots []domain.OptionSnapshot
		if len(archived.Options) > 0 {
			if err := json.Unmarshal(archived.Options, &snapshots); err != nil {
				return err
			}
		}

		set := &domain.OptionSet{
			Name:          name,
			Description:   archived.Description,
			Kind:          archived.Kind,
			IsActive:      archived.IsActive,
			NextOptionSeq: archived.LastOptionID,
		}
		if err := sets.Create(ctx, set); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return response.NewConflictError("A live option set with this name already exists", name)
			}
			return err
		}

		options := make([]*domain.Option, len(snapshots))
		for i, snap := range snapshots {
			options[i] = &domain.Option{
				BaseModel:     domain.BaseModel{ID: snap.ID},
				OptionSetID:   set.ID,
				IncrementalID: snap.IncrementalID,
				Name:          snap.Name,
				Visibility:    snap.Visibility,
				IsActive:      snap.IsActive,
				Position:      snap.Position,
			}
		}
		if err := sets.CreateOptionsBatch(ctx, options); err != nil {
			return err
		}

		if err := archives.Delete(ctx, archiveID); err != nil {
			return err
		}

		set.Options = make([]domain.Option, len(options))
		for i, option := range options {
			set.Options[i] = *option
		}
		restored = set
		return nil
	})
	if err != nil {
		return nil, s.wrapError(err, "Failed to restore option set")
	}

	if s.metrics != nil {
		s.metrics.IncrementSetRestored()
	}
	s.cache.Invalidate(ctx, restored.ID)
	s.publish(EventSetRestored, restored.ID, restored.Name, "")

	return toOptionSetResponse(restored), nil
}

// PermanentlyDelete removes an archive record with no recovery. When a
// cold-storage exporter is configured the snapshot is exported first; an
// export failure aborts the purge so the record is never lost silently.
func (s *optionSetServiceImpl) PermanentlyDelete(ctx context.Context, archiveID uuid.UUID) error {
	archived, err := s.archiveRepo.FindByID(ctx, archiveID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("Archive record not found", archiveID.String())
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to fetch archive record", err.Error())
	}

	if s.exporter != nil {
		if err := s.exporter.ExportArchive(ctx, archived); err != nil {
			return response.NewAppError(response.ErrCodeInternal, "Failed to export archive before deletion", err.Error())
		}
	}

	if err := s.archiveRepo.Delete(ctx, archiveID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete archive record", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementSetPurged()
	}
	s.publish(EventSetPurged, archived.OriginalID, archived.Name, "")
	s.logger.Info("Archive record permanently deleted",
		zap.String("archive_id", archiveID.String()),
		zap.String("original_id", archived.OriginalID.String()),
	)
	return nil
}

// BindField claims fieldID for the set, or releases the set's binding when
// fieldID is empty. Delegates to the binding registry after confirming the
// set is live.
func (s *optionSetServiceImpl) BindField(ctx context.Context, setID uuid.UUID, fieldID string) (*dto.BindFieldResponse, error) {
	previousOwners, err := s.registry.Bind(ctx, setID, fieldID)
	if err != nil {
		return nil, s.wrapError(err, "Failed to bind field")
	}

	if s.metrics != nil {
		s.metrics.IncrementFieldBound()
	}
	s.cache.Invalidate(ctx, setID)
	for _, owner := range previousOwners {
		s.cache.Invalidate(ctx, owner)
	}
	s.publish(EventFieldBound, setID, "", fieldID)

	if previousOwners == nil {
		previousOwners = []uuid.UUID{}
	}
	return &dto.BindFieldResponse{
		SetID:          setID,
		FieldID:        fieldID,
		PreviousOwners: previousOwners,
	}, nil
}

// ListArchives returns one page of archived sets, newest deletion first by
// default
func (s *optionSetServiceImpl) ListArchives(ctx context.Context, limit, skip int, sortBy string) (*dto.ArchivePageResponse, error) {
	if limit <= 0 {
		limit = repository.DefaultPageLimit
	}
	if limit > repository.MaxPageLimit {
		limit = repository.MaxPageLimit
	}
	if skip < 0 {
		skip = 0
	}

	items, total, err := s.archiveRepo.Page(ctx, limit, skip, sortBy)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch archives", err.Error())
	}

	responses := make([]*dto.ArchivedSetResponse, len(items))
	for i, item := range items {
		responses[i] = toArchivedSetResponse(item)
	}

	if s.metrics != nil {
		s.metrics.SetArchivedSetsTotal(total)
	}
	return &dto.ArchivePageResponse{
		Items: responses,
		Total: total,
		Limit: limit,
		Skip:  skip,
	}, nil
}

// GetArchive returns a single archived set snapshot
func (s *optionSetServiceImpl) GetArchive(ctx context.Context, archiveID uuid.UUID) (*dto.ArchivedSetResponse, error) {
	archived, err := s.archiveRepo.FindByID(ctx, archiveID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Archive record not found", archiveID.String())
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch archive record", err.Error())
	}
	return toArchivedSetResponse(archived), nil
}

// ListArchivedOptions returns the audit trail of options removed from a set
// one at a time, newest removal first. The trail is keyed by the original
// set ID and outlives the set itself.
func (s *optionSetServiceImpl) ListArchivedOptions(ctx context.Context, setID uuid.UUID) ([]*dto.ArchivedOptionResponse, error) {
	records, err := s.archiveRepo.FindOptionsBySet(ctx, setID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch archived options", err.Error())
	}

	responses := make([]*dto.ArchivedOptionResponse, len(records))
	for i, record := range records {
		responses[i] = &dto.ArchivedOptionResponse{
			OptionID:      record.OptionID,
			IncrementalID: record.IncrementalID,
			Name:          record.Name,
			Visibility:    record.Visibility,
			IsActive:      record.IsActive,
			DeletedBy: dto.ActorResponse{
				ID:    record.DeletedByID,
				Name:  record.DeletedByName,
				Email: record.DeletedByEmail,
			},
			DeletedAt: record.DeletedAt,
			Reason:    record.Reason,
		}
	}
	return responses, nil
}

// publish emits a change feed event when a hub is configured
func (s *optionSetServiceImpl) publish(eventType EventType, setID uuid.UUID, name, fieldID string) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(Event{
		Type:    eventType,
		SetID:   setID,
		SetName: name,
		FieldID: fieldID,
	})
}

// wrapError passes AppErrors through untouched and wraps anything else as
// an internal failure, so store-level errors never reach the caller raw
func (s *optionSetServiceImpl) wrapError(err error, message string) error {
	var appErr *response.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return response.NewConflictError(message, err.Error())
	}
	return response.NewAppError(response.ErrCodeInternal, message, err.Error())
}

// snapshotOptions serializes a set's options, in display order, for the
// archive record
func snapshotOptions(options []domain.Option) ([]byte, error) {
	snapshots := make([]domain.OptionSnapshot, len(options))
	for i, option := range options {
		snapshots[i] = domain.OptionSnapshot{
			ID:            option.ID,
			IncrementalID: option.IncrementalID,
			Name:          option.Name,
			Visibility:    option.Visibility,
			IsActive:      option.IsActive,
			Position:      option.Position,
		}
	}
	return json.Marshal(snapshots)
}

// toOptionResponse converts domain.Option to dto.OptionResponse
func toOptionResponse(option *domain.Option) dto.OptionResponse {
	return dto.OptionResponse{
		OptionID:      option.ID,
		IncrementalID: option.IncrementalID,
		Name:          option.Name,
		Visibility:    option.Visibility,
		IsActive:      option.IsActive,
		Position:      option.Position,
		CreatedAt:     option.CreatedAt,
		UpdatedAt:     option.UpdatedAt,
	}
}

// toOptionSetResponse converts domain.OptionSet to dto.OptionSetResponse
func toOptionSetResponse(set *domain.OptionSet) *dto.OptionSetResponse {
	options := make([]dto.OptionResponse, len(set.Options))
	for i := range set.Options {
		options[i] = toOptionResponse(&set.Options[i])
	}
	return &dto.OptionSetResponse{
		SetID:       set.ID,
		Name:        set.Name,
		Description: set.Description,
		Kind:        string(set.Kind),
		IsActive:    set.IsActive,
		UsedIn:      set.UsedIn(),
		Options:     options,
		CreatedAt:   set.CreatedAt,
		UpdatedAt:   set.UpdatedAt,
	}
}

// toArchivedSetResponse converts domain.ArchivedSet to its response DTO
func toArchivedSetResponse(archived *domain.ArchivedSet) *dto.ArchivedSetResponse {
	var snapshots []domain.OptionSnapshot
	if len(archived.Options) > 0 {
		// The snapshot was written by snapshotOptions; a decode failure here
		// means the record was tampered with, so fall back to an empty list.
		_ = json.Unmarshal(archived.Options, &snapshots)
	}
	options := make([]dto.OptionSnapshotResponse, len(snapshots))
	for i, snap := range snapshots {
		options[i] = dto.OptionSnapshotResponse{
			OptionID:      snap.ID,
			IncrementalID: snap.IncrementalID,
			Name:          snap.Name,
			Visibility:    snap.Visibility,
			IsActive:      snap.IsActive,
			Position:      snap.Position,
		}
	}

	usedIn := []string{}
	if archived.BoundFieldID != nil && *archived.BoundFieldID != "" {
		usedIn = []string{*archived.BoundFieldID}
	}

	return &dto.ArchivedSetResponse{
		ArchiveID:    archived.ID,
		OriginalID:   archived.OriginalID,
		Name:         archived.Name,
		Description:  archived.Description,
		Kind:         string(archived.Kind),
		IsActive:     archived.IsActive,
		UsedIn:       usedIn,
		LastOptionID: archived.LastOptionID,
		Options:      options,
		DeletedBy: dto.ActorResponse{
			ID:    archived.DeletedByID,
			Name:  archived.DeletedByName,
			Email: archived.DeletedByEmail,
		},
		DeletedAt: archived.DeletedAt,
		Reason:    archived.Reason,
	}
}
