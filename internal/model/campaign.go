package model

import (
	"time"

	"gorm.io/gorm"
)

type CampaignStatus string

const (
	CampaignDraft   CampaignStatus = "draft"
	CampaignSending CampaignStatus = "sending"
	CampaignSent    CampaignStatus = "sent"
)

// EmailCampaign is a bulk mailing to captured leads.
type EmailCampaign struct {
	gorm.Model
	Name     string         `json:"name" gorm:"not null"`
	Subject  string         `json:"subject" gorm:"not null"`
	BodyHTML string         `json:"body_html" gorm:"type:text"`
	Status   CampaignStatus `json:"status" gorm:"default:'draft'"`

	// Optional status filter applied when recipients are snapshotted.
	AudienceStatus LeadStatus `json:"audience_status"`

	QueuedAt *time.Time `json:"queued_at"`

	Recipients []CampaignRecipient `json:"-" gorm:"foreignKey:CampaignID"`
}

type RecipientStatus string

const (
	RecipientQueued RecipientStatus = "queued"
	RecipientSent   RecipientStatus = "sent"
	RecipientFailed RecipientStatus = "failed"
)

// CampaignRecipient is a per-address send record, snapshotted from the
// lead table when the campaign is queued.
type CampaignRecipient struct {
	gorm.Model
	CampaignID uint            `json:"campaign_id" gorm:"index;not null"`
	LeadID     uint            `json:"lead_id" gorm:"index"`
	Email      string          `json:"email" gorm:"not null"`
	Name       string          `json:"name"`
	Status     RecipientStatus `json:"status" gorm:"default:'queued';index"`
	SentAt     *time.Time      `json:"sent_at"`
	LastError  string          `json:"last_error"`

	Campaign EmailCampaign `json:"-" gorm:"foreignKey:CampaignID"`
}
