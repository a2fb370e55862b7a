package lead

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"bluekey_backend/internal/model"
)

// GormStore is the Postgres-backed Store implementation.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) CreateLead(ctx context.Context, l *model.Lead) error {
	if l.Status == "" {
		l.Status = model.LeadStatusNew
	}
	if l.Version == 0 {
		l.Version = 1
	}
	if err := s.db.WithContext(ctx).Create(l).Error; err != nil {
		return fmt.Errorf("create lead: %w", err)
	}
	return nil
}

func (s *GormStore) GetLead(ctx context.Context, id uint) (*model.Lead, error) {
	var l model.Lead
	err := s.db.WithContext(ctx).Preload("Property").First(&l, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get lead %d: %w", id, err)
	}
	return &l, nil
}

func (s *GormStore) UpdateLead(ctx context.Context, id uint, version uint, fields map[string]interface{}) (*model.Lead, error) {
	updates := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		updates[k] = v
	}
	updates["version"] = gorm.Expr("version + 1")

	res := s.db.WithContext(ctx).Model(&model.Lead{}).
		Where("id = ? AND version = ?", id, version).
		Updates(updates)
	if res.Error != nil {
		return nil, fmt.Errorf("update lead %d: %w", id, res.Error)
	}

	if res.RowsAffected == 0 {
		// Either the lead is gone or the version is stale.
		var count int64
		if err := s.db.WithContext(ctx).Model(&model.Lead{}).
			Where("id = ?", id).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("update lead %d: %w", id, err)
		}
		if count == 0 {
			return nil, ErrNotFound
		}
		return nil, ErrConflict
	}

	return s.GetLead(ctx, id)
}

func (s *GormStore) ListLeads(ctx context.Context, f Filter) ([]model.Lead, error) {
	query := s.db.WithContext(ctx).Model(&model.Lead{}).Preload("Property")

	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.Source != "" {
		query = query.Where("lead_source = ?", f.Source)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ?", like, like)
	}
	if f.AgentID != nil {
		query = query.Where("agent_id = ?", *f.AgentID)
	}
	if f.From != nil {
		query = query.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		query = query.Where("created_at < ?", *f.To)
	}

	var leads []model.Lead
	if err := query.Order("created_at desc").Find(&leads).Error; err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	return leads, nil
}

func (s *GormStore) AppendActivity(ctx context.Context, a *model.LeadActivity) error {
	if err := s.db.WithContext(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("append activity: %w", err)
	}
	return nil
}

func (s *GormStore) ListActivities(ctx context.Context, leadID uint) ([]model.LeadActivity, error) {
	var activities []model.LeadActivity
	err := s.db.WithContext(ctx).
		Where("lead_id = ?", leadID).
		Order("occurred_at asc, id asc").
		Find(&activities).Error
	if err != nil {
		return nil, fmt.Errorf("list activities for lead %d: %w", leadID, err)
	}
	return activities, nil
}
