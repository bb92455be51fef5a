// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"party_phonecountry/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Configuration Domain Events
// =============================================================================

// PhoneRegionChanged is published after a new default phone region and the
// reconciled contact display values have been committed.
type PhoneRegionChanged struct {
	BaseEvent
	PreviousRegion  string    `json:"previousRegion"`
	Region          string    `json:"region"`
	UpdatedContacts int       `json:"updatedContacts"`
	ChangedBy       uuid.UUID `json:"changedBy"`
}

func (e PhoneRegionChanged) EventName() string { return "configuration.phone_region.changed" }

// =============================================================================
// Contacts Domain Events
// =============================================================================

// ContactsRenormalized is published when a renormalization pass finishes.
type ContactsRenormalized struct {
	BaseEvent
	Region    string `json:"region"`
	Scanned   int    `json:"scanned"`
	Updated   int    `json:"updated"`
	Requested string `json:"requestedBy,omitempty"`
}

func (e ContactsRenormalized) EventName() string { return "contacts.renormalized" }
