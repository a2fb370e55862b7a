package model

import (
	"github.com/gosimple/slug"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Neighborhood is a guide page for an area the brokerage serves.
type Neighborhood struct {
	gorm.Model
	Name        string `json:"name" gorm:"not null"`
	Slug        string `json:"slug" gorm:"uniqueIndex;not null"`
	City        string `json:"city" gorm:"not null;index"`
	State       string `json:"state" gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`
	HeroImage   string `json:"hero_image"`

	// Highlights holds editor-authored facts rendered on the guide page
	// (schools, median price, walk score etc.).
	Highlights datatypes.JSON `json:"highlights"`

	Properties []Property `json:"-" gorm:"foreignKey:NeighborhoodID"`
}

func (n *Neighborhood) BeforeCreate(tx *gorm.DB) error {
	if n.Slug == "" {
		n.Slug = slug.Make(n.Name)
	}
	return nil
}
