package dto

import (
	"time"

	"github.com/google/uuid"
)

// OptionResponse represents one option inside a set response
type OptionResponse struct {
	OptionID      uuid.UUID `json:"optionId"`
	IncrementalID int64     `json:"incrementalId"`
	Name          string    `json:"name"`
	Visibility    bool      `json:"visibility"`
	IsActive      bool      `json:"isActive"`
	Position      int       `json:"position"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// OptionSetResponse represents the option set response. UsedIn carries the
// field identifiers bound to the set (at most one).
type OptionSetResponse struct {
	SetID       uuid.UUID        `json:"setId"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Kind        string           `json:"kind"`
	IsActive    bool             `json:"isActive"`
	UsedIn      []string         `json:"usedIn"`
	Options     []OptionResponse `json:"options"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// CreateOptionSetRequest represents the request to create a new option set
type CreateOptionSetRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Description string `json:"description" binding:"max=2000"`
	Kind        string `json:"kind" binding:"omitempty,oneof=dropdown radio"`
	IsActive    *bool  `json:"isActive"`
}

// UpdateOptionSetRequest represents the request to update an option set
type UpdateOptionSetRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=200"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	IsActive    *bool   `json:"isActive"`
}

// AddOptionRequest represents the request to append one option to a set
type AddOptionRequest struct {
	Name       string `json:"name" binding:"required,max=200"`
	Visibility *bool  `json:"visibility"`
	IsActive   *bool  `json:"isActive"`
}

// UpdateOptionRequest represents the request to update an option.
// IncrementalID is never updatable.
type UpdateOptionRequest struct {
	Name       *string `json:"name" binding:"omitempty,max=200"`
	Visibility *bool   `json:"visibility"`
	IsActive   *bool   `json:"isActive"`
}

// BulkAddOptionsRequest represents the request to append multiple options.
// Candidates with blank names are dropped silently; per-row feedback is the
// caller's responsibility.
type BulkAddOptionsRequest struct {
	Options []BulkOptionCandidate `json:"options" binding:"required"`
}

// BulkOptionCandidate is one candidate row in a bulk add
type BulkOptionCandidate struct {
	Name       string `json:"name"`
	Visibility *bool  `json:"visibility"`
	IsActive   *bool  `json:"isActive"`
}

// BindFieldRequest represents the request to claim or release a field
// binding. An empty fieldId releases the set's current binding.
type BindFieldRequest struct {
	FieldID string `json:"fieldId" binding:"max=200"`
}

// BindFieldResponse reports the binding outcome, including any previous
// owners the field was reclaimed from
type BindFieldResponse struct {
	SetID          uuid.UUID   `json:"setId"`
	FieldID        string      `json:"fieldId"`
	PreviousOwners []uuid.UUID `json:"previousOwners"`
}
