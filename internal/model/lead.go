package model

import (
	"time"

	"gorm.io/gorm"
)

// LeadStatus is the pipeline stage of a lead.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusConverted LeadStatus = "converted"
	LeadStatusLost      LeadStatus = "lost"
)

// Valid reports whether s is one of the five defined pipeline stages.
func (s LeadStatus) Valid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQualified,
		LeadStatusConverted, LeadStatusLost:
		return true
	}
	return false
}

// Terminal reports whether the admin UI treats s as an end stage.
// Transitions out of terminal stages are still allowed.
func (s LeadStatus) Terminal() bool {
	return s == LeadStatusConverted || s == LeadStatusLost
}

type Lead struct {
	gorm.Model
	Name            string     `json:"name" gorm:"not null"`
	Email           string     `json:"email" gorm:"not null;index"`
	Phone           string     `json:"phone"`
	Message         string     `json:"message" gorm:"type:text"`
	PropertyID      *uint      `json:"property_id" gorm:"index"`
	PropertyAddress string     `json:"property_address"`
	LeadSource      string     `json:"lead_source" gorm:"index"` // website, callback_widget, valuation_form, manual
	Status          LeadStatus `json:"status" gorm:"default:'new';index"`
	AgentID         *uint      `json:"agent_id" gorm:"index"`
	ConvertedAt     *time.Time `json:"converted_at"`

	// Version is bumped on every update; stale writes are rejected.
	Version uint `json:"version" gorm:"default:1"`

	Property   *Property      `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
	Agent      *StaffUser     `json:"-" gorm:"foreignKey:AgentID"`
	Activities []LeadActivity `json:"activities,omitempty" gorm:"foreignKey:LeadID"`
}
