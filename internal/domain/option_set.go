package domain

import "github.com/google/uuid"

// SetKind represents the selection widget an option set feeds
type SetKind string

// SetKind constants
const (
	SetKindDropdown SetKind = "dropdown"
	SetKindRadio    SetKind = "radio"
)

// OptionSet represents a named, ordered collection of selectable options.
// A live set may claim at most one external form-field identifier; the
// unique index on bound_field_id enforces that claim store-wide.
type OptionSet struct {
	BaseModel
	Name          string  `gorm:"type:varchar(200);not null;uniqueIndex:uq_option_sets_name" json:"name"`
	Description   string  `gorm:"type:text" json:"description"`
	Kind          SetKind `gorm:"type:varchar(20);not null;default:'dropdown'" json:"kind"`
	IsActive      bool    `gorm:"type:boolean;not null;default:true" json:"is_active"`
	BoundFieldID  *string `gorm:"type:varchar(200);uniqueIndex:uq_option_sets_bound_field" json:"bound_field_id"`
	NextOptionSeq int64   `gorm:"type:bigint;not null;default:1" json:"next_option_seq"`
	Options       []Option `gorm:"foreignKey:OptionSetID;constraint:OnDelete:CASCADE" json:"options,omitempty"`
}

// TableName specifies the table name for OptionSet
func (OptionSet) TableName() string {
	return "option_sets"
}

// Option represents a single selectable entry owned by an option set.
// IncrementalID is issued from the owning set's NextOptionSeq and is never
// reassigned, even after the option is archived.
type Option struct {
	BaseModel
	OptionSetID   uuid.UUID `gorm:"type:uuid;not null;index:idx_options_option_set_id" json:"option_set_id"`
	IncrementalID int64     `gorm:"type:bigint;not null" json:"incremental_id"`
	Name          string    `gorm:"type:varchar(200);not null" json:"name"`
	Visibility    bool      `gorm:"type:boolean;not null;default:true" json:"visibility"`
	IsActive      bool      `gorm:"type:boolean;not null;default:true" json:"is_active"`
	Position      int       `gorm:"type:int;not null;default:0;index:idx_options_position" json:"position"`
}

// TableName specifies the table name for Option
func (Option) TableName() string {
	return "options"
}

// UsedIn returns the field identifiers claimed by this set (zero or one)
func (s *OptionSet) UsedIn() []string {
	if s.BoundFieldID == nil || *s.BoundFieldID == "" {
		return []string{}
	}
	return []string{*s.BoundFieldID}
}
