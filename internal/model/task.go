package model

import (
	"time"

	"gorm.io/gorm"
)

// Task is a back-office to-do assigned to a staff member.
type Task struct {
	gorm.Model
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description" gorm:"type:text"`
	AssigneeID  *uint      `json:"assignee_id" gorm:"index"`
	LeadID      *uint      `json:"lead_id" gorm:"index"`
	DueAt       *time.Time `json:"due_at" gorm:"index"`
	Done        bool       `json:"done" gorm:"default:false;index"`
	CompletedAt *time.Time `json:"completed_at"`

	Assignee *StaffUser `json:"-" gorm:"foreignKey:AssigneeID"`
	Lead     *Lead      `json:"lead,omitempty" gorm:"foreignKey:LeadID"`
}
