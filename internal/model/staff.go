package model

import (
	"strings"

	"gorm.io/gorm"
)

const (
	RoleAdmin = "admin"
	RoleAgent = "agent"
)

type StaffUser struct {
	gorm.Model
	Email    string `json:"email" gorm:"uniqueIndex;not null"`
	Password string `json:"-" gorm:"not null"`
	Role     string `json:"role" gorm:"default:'agent'"`

	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Title       string `json:"title"`
	PhoneNumber string `json:"phone_number"`
	Avatar      string `json:"avatar"`
	Bio         string `json:"bio" gorm:"type:text"`
	IsActive    bool   `json:"is_active" gorm:"default:true"`

	Leads        []Lead        `json:"-" gorm:"foreignKey:AgentID"`
	Listings     []Property    `json:"-" gorm:"foreignKey:AgentID"`
	Showings     []Showing     `json:"-" gorm:"foreignKey:AgentID"`
	Tasks        []Task        `json:"-" gorm:"foreignKey:AssigneeID"`
	Transactions []Transaction `json:"-" gorm:"foreignKey:AgentID"`
}

func (u *StaffUser) GetFullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u *StaffUser) GetPublicProfile() map[string]interface{} {
	return map[string]interface{}{
		"id":           u.ID,
		"email":        u.Email,
		"role":         u.Role,
		"full_name":    u.GetFullName(),
		"title":        u.Title,
		"phone_number": u.PhoneNumber,
		"avatar":       u.Avatar,
		"is_active":    u.IsActive,
	}
}
