package model

import (
	"time"

	"gorm.io/gorm"
)

type TransactionStage string

const (
	TransactionPending       TransactionStage = "pending"
	TransactionUnderContract TransactionStage = "under_contract"
	TransactionClosed        TransactionStage = "closed"
	TransactionFellThrough   TransactionStage = "fell_through"
)

// Transaction tracks a property sale from offer to closing.
type Transaction struct {
	gorm.Model
	PropertyID uint             `json:"property_id" gorm:"index;not null"`
	LeadID     *uint            `json:"lead_id" gorm:"index"`
	AgentID    uint             `json:"agent_id" gorm:"index"`
	SalePrice  float64          `json:"sale_price"`
	Commission float64          `json:"commission"`
	Stage      TransactionStage `json:"stage" gorm:"default:'pending';index"`
	ClosedAt   *time.Time       `json:"closed_at"`
	Notes      string           `json:"notes" gorm:"type:text"`

	Property Property  `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
	Lead     *Lead     `json:"lead,omitempty" gorm:"foreignKey:LeadID"`
	Agent    StaffUser `json:"-" gorm:"foreignKey:AgentID"`
}
