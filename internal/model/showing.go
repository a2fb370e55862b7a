package model

import (
	"time"

	"gorm.io/gorm"
)

type ShowingStatus string

const (
	ShowingRequested ShowingStatus = "requested"
	ShowingConfirmed ShowingStatus = "confirmed"
	ShowingCompleted ShowingStatus = "completed"
	ShowingCancelled ShowingStatus = "cancelled"
)

// Showing is a scheduled property visit with a lead.
type Showing struct {
	gorm.Model
	LeadID      uint          `json:"lead_id" gorm:"index;not null"`
	PropertyID  uint          `json:"property_id" gorm:"index;not null"`
	AgentID     uint          `json:"agent_id" gorm:"index"`
	ScheduledAt time.Time     `json:"scheduled_at" gorm:"index;not null"`
	Status      ShowingStatus `json:"status" gorm:"default:'requested'"`
	Notes       string        `json:"notes" gorm:"type:text"`

	Lead     Lead      `json:"lead,omitempty" gorm:"foreignKey:LeadID"`
	Property Property  `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
	Agent    StaffUser `json:"-" gorm:"foreignKey:AgentID"`
}
