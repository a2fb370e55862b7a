package model

import (
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// Property Types
type PropertyType string

const (
	PropertyTypeHouse      PropertyType = "House"
	PropertyTypeApartment  PropertyType = "Apartment"
	PropertyTypeCondo      PropertyType = "Condo"
	PropertyTypeVilla      PropertyType = "Villa"
	PropertyTypeTownhouse  PropertyType = "Townhouse"
	PropertyTypeLand       PropertyType = "Land"
	PropertyTypeCommercial PropertyType = "Commercial"
)

// Property Status
type PropertyStatus string

const (
	PropertyStatusForSale       PropertyStatus = "For Sale"
	PropertyStatusForRent       PropertyStatus = "For Rent"
	PropertyStatusSold          PropertyStatus = "Sold"
	PropertyStatusRented        PropertyStatus = "Rented"
	PropertyStatusUnderContract PropertyStatus = "Under Contract"
)

type Property struct {
	gorm.Model
	Title       string         `json:"title" gorm:"not null"`
	Slug        string         `json:"slug" gorm:"uniqueIndex;not null"`
	Type        PropertyType   `json:"type" gorm:"not null"`
	Status      PropertyStatus `json:"status" gorm:"not null;index"`
	Price       float64        `json:"price" gorm:"not null"`
	Description string         `json:"description" gorm:"type:text"`

	AgentID        uint  `json:"agent_id" gorm:"index"`
	NeighborhoodID *uint `json:"neighborhood_id" gorm:"index"`

	// Location fields
	StreetAddress string `json:"street_address" gorm:"not null"`
	City          string `json:"city" gorm:"not null;index"`
	State         string `json:"state" gorm:"not null"`
	ZipCode       string `json:"zip_code"`

	// Feature fields
	Bedrooms     int  `json:"bedrooms"`
	Bathrooms    int  `json:"bathrooms"`
	GarageSpaces int  `json:"garage_spaces"`
	AreaSqFt     int  `json:"area_sq_ft"`
	YearBuilt    int  `json:"year_built"`
	SwimmingPool bool `json:"swimming_pool"`
	Garden       bool `json:"garden"`

	Agent        StaffUser       `json:"-" gorm:"foreignKey:AgentID"`
	Neighborhood *Neighborhood   `json:"neighborhood,omitempty" gorm:"foreignKey:NeighborhoodID"`
	Images       []PropertyImage `json:"images" gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
}

type PropertyImage struct {
	gorm.Model
	PropertyID uint   `json:"property_id"`
	URL        string `json:"url" gorm:"not null"`
	IsCover    bool   `json:"is_cover" gorm:"default:false"`
	Order      int    `json:"order" gorm:"default:0"`

	Property Property `json:"-" gorm:"foreignKey:PropertyID"`
}

// BeforeCreate derives the listing slug from the title.
func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.Slug == "" {
		s := slug.Make(p.Title)

		var count int64
		tx.Model(&Property{}).Where("slug = ?", s).Count(&count)
		if count > 0 {
			s = s + "-" + p.CreatedAt.Format("20060102")
		}

		p.Slug = s
	}
	return nil
}

func (p *Property) GetLeadsCount(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&Lead{}).Where("property_id = ?", p.ID).Count(&count).Error
	return count, err
}
