package model

import (
	"time"

	"gorm.io/gorm"
)

// ActivityKind tags an entry in a lead's append-only history.
type ActivityKind string

const (
	ActivityNote         ActivityKind = "note"
	ActivityFollowUp     ActivityKind = "follow_up"
	ActivityStatusChange ActivityKind = "status_change"
)

// LeadActivity is one entry in a lead's timeline. Entries are append-only:
// nothing in the application updates Body or OccurredAt after creation.
type LeadActivity struct {
	gorm.Model
	LeadID     uint         `json:"lead_id" gorm:"index:idx_lead_occurred;not null"`
	Kind       ActivityKind `json:"kind" gorm:"not null;index"`
	Body       string       `json:"body" gorm:"type:text"`
	Actor      string       `json:"actor"` // staff email, or "system"
	OccurredAt time.Time    `json:"occurred_at" gorm:"index:idx_lead_occurred"`

	// Follow-up entries only.
	ScheduledFor   *time.Time `json:"scheduled_for,omitempty" gorm:"index"`
	ReminderSentAt *time.Time `json:"reminder_sent_at,omitempty"`

	// Status-change entries only.
	OldStatus LeadStatus `json:"old_status,omitempty"`
	NewStatus LeadStatus `json:"new_status,omitempty"`

	Lead Lead `json:"-" gorm:"foreignKey:LeadID"`
}
