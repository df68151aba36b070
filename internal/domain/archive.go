package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Actor identifies who performed an archiving operation, sourced from the
// authentication layer by the caller
type Actor struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// ArchivedSet is an immutable snapshot of an option set taken at archive
// time. Options holds the full ordered option list as JSON; LastOptionID is
// the set's NextOptionSeq at archive time so a restored set keeps issuing
// unique incremental IDs.
type ArchivedSet struct {
	BaseModel
	OriginalID     uuid.UUID      `gorm:"type:uuid;not null;index:idx_archived_sets_original_id" json:"original_id"`
	Name           string         `gorm:"type:varchar(200);not null;index:idx_archived_sets_name" json:"name"`
	Description    string         `gorm:"type:text" json:"description"`
	Kind           SetKind        `gorm:"type:varchar(20);not null" json:"kind"`
	IsActive       bool           `gorm:"type:boolean;not null" json:"is_active"`
	BoundFieldID   *string        `gorm:"type:varchar(200)" json:"bound_field_id"`
	LastOptionID   int64          `gorm:"type:bigint;not null" json:"last_option_id"`
	Options        datatypes.JSON `gorm:"type:jsonb" json:"options"`
	DeletedByID    uuid.UUID      `gorm:"type:uuid;not null" json:"deleted_by_id"`
	DeletedByName  string         `gorm:"type:varchar(200);not null" json:"deleted_by_name"`
	DeletedByEmail string         `gorm:"type:varchar(320)" json:"deleted_by_email"`
	DeletedAt      time.Time      `gorm:"not null;index:idx_archived_sets_deleted_at" json:"deleted_at"`
	Reason         string         `gorm:"type:text;not null" json:"reason"`
}

// TableName specifies the table name for ArchivedSet
func (ArchivedSet) TableName() string {
	return "archived_sets"
}

// ArchivedOption is the audit record written when a single option is removed
// from a live set
type ArchivedOption struct {
	BaseModel
	OptionSetID    uuid.UUID `gorm:"type:uuid;not null;index:idx_archived_options_set_id" json:"option_set_id"`
	OptionID       uuid.UUID `gorm:"type:uuid;not null" json:"option_id"`
	IncrementalID  int64     `gorm:"type:bigint;not null" json:"incremental_id"`
	Name           string    `gorm:"type:varchar(200);not null" json:"name"`
	Visibility     bool      `gorm:"type:boolean;not null" json:"visibility"`
	IsActive       bool      `gorm:"type:boolean;not null" json:"is_active"`
	DeletedByID    uuid.UUID `gorm:"type:uuid;not null" json:"deleted_by_id"`
	DeletedByName  string    `gorm:"type:varchar(200);not null" json:"deleted_by_name"`
	DeletedByEmail string    `gorm:"type:varchar(320)" json:"deleted_by_email"`
	DeletedAt      time.Time `gorm:"not null;index:idx_archived_options_deleted_at" json:"deleted_at"`
	Reason         string    `gorm:"type:text;not null" json:"reason"`
}

// TableName specifies the table name for ArchivedOption
func (ArchivedOption) TableName() string {
	return "archived_options"
}

// OptionSnapshot is the JSON shape of one option inside ArchivedSet.Options
type OptionSnapshot struct {
	ID            uuid.UUID `json:"id"`
	IncrementalID int64     `json:"incremental_id"`
	Name          string    `json:"name"`
	Visibility    bool      `json:"visibility"`
	IsActive      bool      `json:"is_active"`
	Position      int       `json:"position"`
}
