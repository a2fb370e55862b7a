// Package lead implements the lead lifecycle: the status state machine,
// the append-only activity log, and follow-up scheduling.
package lead

import (
	"context"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"bluekey_backend/internal/model"
)

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// CaptureInput is what the public capture surfaces (contact flyout,
// callback widget, valuation form, admin quick-add) submit.
type CaptureInput struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Message         string `json:"message"`
	PropertyID      *uint  `json:"property_id"`
	PropertyAddress string `json:"property_address"`
	LeadSource      string `json:"lead_source"`
}

func (in CaptureInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&in.Email, validation.Required, is.Email),
		validation.Field(&in.Phone, validation.Length(0, 40)),
		validation.Field(&in.Message, validation.Length(0, 5000)),
		validation.Field(&in.LeadSource, validation.Length(0, 60)),
	)
}

// Capture creates a new lead. Every lead starts at status "new";
// validation happens here, at the boundary, before the store is touched.
func (s *Service) Capture(ctx context.Context, in CaptureInput) (*model.Lead, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	source := in.LeadSource
	if source == "" {
		source = "website"
	}

	l := &model.Lead{
		Name:            strings.TrimSpace(in.Name),
		Email:           strings.TrimSpace(in.Email),
		Phone:           in.Phone,
		Message:         in.Message,
		PropertyID:      in.PropertyID,
		PropertyAddress: in.PropertyAddress,
		LeadSource:      source,
		Status:          model.LeadStatusNew,
		Version:         1,
	}
	if err := s.store.CreateLead(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*model.Lead, error) {
	return s.store.GetLead(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter) ([]model.Lead, error) {
	return s.store.ListLeads(ctx, f)
}

// Transition moves the given lead to next. Any of the five statuses may
// follow any other; only out-of-vocabulary values are rejected. The first
// transition to "converted" stamps ConvertedAt; the stamp is never cleared
// afterwards, even when the lead later moves away from "converted".
//
// The input lead is not mutated: on success the store's fresh record is
// returned, on failure the caller's copy is exactly as it was.
func (s *Service) Transition(ctx context.Context, l *model.Lead, next model.LeadStatus, actor string) (*model.Lead, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, next)
	}

	now := s.now()
	fields := map[string]interface{}{"status": next}
	if next == model.LeadStatusConverted && l.ConvertedAt == nil {
		fields["converted_at"] = now
	}

	updated, err := s.store.UpdateLead(ctx, l.ID, l.Version, fields)
	if err != nil {
		return nil, err
	}

	s.appendBestEffort(ctx, &model.LeadActivity{
		LeadID:     l.ID,
		Kind:       model.ActivityStatusChange,
		OldStatus:  l.Status,
		NewStatus:  next,
		Actor:      actor,
		OccurredAt: now,
	})
	return updated, nil
}

// AppendNote adds a timestamped free-text entry to the lead's history.
// at defaults to now. Deliberately not idempotent: two identical calls
// are two distinct user actions and produce two entries.
func (s *Service) AppendNote(ctx context.Context, l *model.Lead, text string, at time.Time, actor string) (*model.LeadActivity, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyNote
	}
	if at.IsZero() {
		at = s.now()
	}

	a := &model.LeadActivity{
		LeadID:     l.ID,
		Kind:       model.ActivityNote,
		Body:       text,
		Actor:      actor,
		OccurredAt: at,
	}
	if err := s.store.AppendActivity(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// ScheduleFollowUp records a future commitment to contact the lead again.
// The admin UI constrains the date to today-or-later; that check is
// advisory and not repeated here. The lead's status is untouched.
func (s *Service) ScheduleFollowUp(ctx context.Context, l *model.Lead, scheduledFor time.Time, note string, actor string) (*model.LeadActivity, error) {
	if scheduledFor.IsZero() {
		return nil, ErrNoFollowUpTime
	}

	a := &model.LeadActivity{
		LeadID:       l.ID,
		Kind:         model.ActivityFollowUp,
		Body:         note,
		Actor:        actor,
		OccurredAt:   s.now(),
		ScheduledFor: &scheduledFor,
	}
	if err := s.store.AppendActivity(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Assign hands the lead to a staff member, using the same versioned
// update path as status transitions.
func (s *Service) Assign(ctx context.Context, l *model.Lead, agentID uint) (*model.Lead, error) {
	return s.store.UpdateLead(ctx, l.ID, l.Version, map[string]interface{}{
		"agent_id": agentID,
	})
}

func (s *Service) Activities(ctx context.Context, leadID uint) ([]model.LeadActivity, error) {
	return s.store.ListActivities(ctx, leadID)
}

// The activity row is written after the versioned update has already
// committed; failing the whole call here would report a transition that
// did in fact happen. Log and move on.
func (s *Service) appendBestEffort(ctx context.Context, a *model.LeadActivity) {
	if err := s.store.AppendActivity(ctx, a); err != nil {
		logActivityError(a, err)
	}
}
