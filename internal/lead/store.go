package lead

import (
	"context"
	"time"

	"bluekey_backend/internal/model"
)

// Filter narrows ListLeads results. Zero values mean "no constraint".
type Filter struct {
	Status  model.LeadStatus
	Source  string
	Search  string // substring match on name or email
	AgentID *uint
	From    *time.Time
	To      *time.Time
}

// Store is the persistence boundary for leads and their activity log.
// The service never touches the database directly; everything goes
// through this interface so the lifecycle logic is testable in isolation.
type Store interface {
	CreateLead(ctx context.Context, lead *model.Lead) error
	GetLead(ctx context.Context, id uint) (*model.Lead, error)

	// UpdateLead applies fields to the lead identified by id, but only if
	// its stored version still equals version. On success the version is
	// bumped and the fresh record returned. A stale version yields
	// ErrConflict, an unknown id ErrNotFound.
	UpdateLead(ctx context.Context, id uint, version uint, fields map[string]interface{}) (*model.Lead, error)

	ListLeads(ctx context.Context, f Filter) ([]model.Lead, error)

	AppendActivity(ctx context.Context, a *model.LeadActivity) error
	ListActivities(ctx context.Context, leadID uint) ([]model.LeadActivity, error)
}
