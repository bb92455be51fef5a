package transport

import (
	"time"

	"github.com/google/uuid"
)

// CreateContactMechanismRequest creates a contact value for a party. ID is
// optional; clients resubmitting after acknowledging a warning send back
// the id the warning was raised for.
type CreateContactMechanismRequest struct {
	ID        *uuid.UUID `json:"id,omitempty"`
	PartyID   uuid.UUID  `json:"partyId" validate:"required"`
	PartyName string     `json:"partyName" validate:"max=200"`
	Type      string     `json:"type" validate:"required,contactkind"`
	Value     string     `json:"value" validate:"required,max=200"`
	Comment   *string    `json:"comment,omitempty" validate:"omitempty,max=2000"`
	Active    *bool      `json:"active,omitempty"`
}

// UpdateContactMechanismRequest patches a contact value. Omitted fields are kept.
type UpdateContactMechanismRequest struct {
	PartyName *string `json:"partyName,omitempty" validate:"omitempty,max=200"`
	Type      *string `json:"type,omitempty" validate:"omitempty,contactkind"`
	Value     *string `json:"value,omitempty" validate:"omitempty,min=1,max=200"`
	Comment   *string `json:"comment,omitempty" validate:"omitempty,max=2000"`
	Active    *bool   `json:"active,omitempty"`
}

type ListContactMechanismsRequest struct {
	Search   string `form:"search" validate:"max=200"`
	PartyID  string `form:"partyId" validate:"omitempty,uuid"`
	Type     string `form:"type" validate:"omitempty,contactkind"`
	Active   *bool  `form:"active"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
}

type PreviewRequest struct {
	Type  string `json:"type" validate:"required,contactkind"`
	Value string `json:"value" validate:"required,max=200"`
	Party string `json:"partyName" validate:"max=200"`
}

type ContactMechanismResponse struct {
	ID           uuid.UUID `json:"id"`
	PartyID      uuid.UUID `json:"partyId"`
	PartyName    string    `json:"partyName"`
	Type         string    `json:"type"`
	Value        string    `json:"value"`
	ValueCompact string    `json:"valueCompact"`
	Comment      *string   `json:"comment,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type ContactMechanismListResponse struct {
	Items      []ContactMechanismResponse `json:"items"`
	Total      int                        `json:"total"`
	Page       int                        `json:"page"`
	PageSize   int                        `json:"pageSize"`
	TotalPages int                        `json:"totalPages"`
}

// PreviewResponse is what a client shows while the user is still typing.
type PreviewResponse struct {
	Region       string `json:"region"`
	Value        string `json:"value"`
	ValueCompact string `json:"valueCompact"`
	Status       string `json:"status"`
	Reason       string `json:"reason,omitempty"`
	Message      string `json:"message,omitempty"`
}

// InvalidPhoneDetails accompanies a blocking validation error.
type InvalidPhoneDetails struct {
	Phone string `json:"phone"`
	Party string `json:"party"`
}

// PhoneWarningDetails accompanies a dismissible line type warning. The
// client acknowledges Key and resubmits with ID.
type PhoneWarningDetails struct {
	Key   string    `json:"key"`
	ID    uuid.UUID `json:"id"`
	Phone string    `json:"phone"`
}

type RenormalizeRequest struct {
	BatchSize int `json:"batchSize" validate:"omitempty,min=1,max=10000"`
}

type RenormalizeResponse struct {
	Region  string `json:"region"`
	Scanned int    `json:"scanned"`
	Updated int    `json:"updated"`
}

type RenormalizeQueuedResponse struct {
	TaskID string `json:"taskId"`
	Queue  string `json:"queue"`
}
