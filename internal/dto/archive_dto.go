package dto

import (
	"time"

	"github.com/google/uuid"
)

// ArchivedSetResponse represents one archived set snapshot
type ArchivedSetResponse struct {
	ArchiveID    uuid.UUID                `json:"archiveId"`
	OriginalID   uuid.UUID                `json:"originalId"`
	Name         string                   `json:"name"`
	Description  string                   `json:"description"`
	Kind         string                   `json:"kind"`
	IsActive     bool                     `json:"isActive"`
	UsedIn       []string                 `json:"usedIn"`
	LastOptionID int64                    `json:"lastOptionId"`
	Options      []OptionSnapshotResponse `json:"options"`
	DeletedBy    ActorResponse            `json:"deletedBy"`
	DeletedAt    time.Time                `json:"deletedAt"`
	Reason       string                   `json:"reason"`
}

// OptionSnapshotResponse is one option as it stood at archive time
type OptionSnapshotResponse struct {
	OptionID      uuid.UUID `json:"optionId"`
	IncrementalID int64     `json:"incrementalId"`
	Name          string    `json:"name"`
	Visibility    bool      `json:"visibility"`
	IsActive      bool      `json:"isActive"`
	Position      int       `json:"position"`
}

// ActorResponse identifies the actor recorded on an archive record
type ActorResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// ArchivedOptionResponse is one audit record for an option removed from a
// set individually
type ArchivedOptionResponse struct {
	OptionID      uuid.UUID     `json:"optionId"`
	IncrementalID int64         `json:"incrementalId"`
	Name          string        `json:"name"`
	Visibility    bool          `json:"visibility"`
	IsActive      bool          `json:"isActive"`
	DeletedBy     ActorResponse `json:"deletedBy"`
	DeletedAt     time.Time     `json:"deletedAt"`
	Reason        string        `json:"reason"`
}

// ArchivePageResponse is one page of archived sets plus the full count
type ArchivePageResponse struct {
	Items []*ArchivedSetResponse `json:"items"`
	Total int64                  `json:"total"`
	Limit int                    `json:"limit"`
	Skip  int                    `json:"skip"`
}

// ArchiveSetRequest carries the mandatory deletion reason
type ArchiveSetRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ArchiveOptionRequest carries the mandatory deletion reason for a single
// option removal
type ArchiveOptionRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// RestoreArchivedSetRequest optionally renames the set on restore; the
// archived name is reused when NewName is empty
type RestoreArchivedSetRequest struct {
	NewName string `json:"newName" binding:"omitempty,max=200"`
}
