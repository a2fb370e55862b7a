package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Training is an internal course entry shown in the staff back office.
type Training struct {
	gorm.Model
	Title       string `json:"title" gorm:"not null"`
	Category    string `json:"category" gorm:"index"`
	Description string `json:"description" gorm:"type:text"`
	VideoURL    string `json:"video_url"`
	DurationMin int    `json:"duration_min"`

	// Resources holds links/attachments authored by the admin.
	Resources datatypes.JSON `json:"resources"`
}
