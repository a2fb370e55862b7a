package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"bluekey_backend/internal/event"
	"bluekey_backend/internal/lead"
	"bluekey_backend/internal/model"
	"bluekey_backend/pkg/utils/jwt"
)

type mockLeadStore struct {
	mock.Mock
}

func (m *mockLeadStore) CreateLead(ctx context.Context, l *model.Lead) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *mockLeadStore) GetLead(ctx context.Context, id uint) (*model.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Lead), args.Error(1)
}

func (m *mockLeadStore) UpdateLead(ctx context.Context, id uint, version uint, fields map[string]interface{}) (*model.Lead, error) {
	args := m.Called(ctx, id, version, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Lead), args.Error(1)
}

func (m *mockLeadStore) ListLeads(ctx context.Context, f lead.Filter) ([]model.Lead, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Lead), args.Error(1)
}

func (m *mockLeadStore) AppendActivity(ctx context.Context, a *model.LeadActivity) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *mockLeadStore) ListActivities(ctx context.Context, leadID uint) ([]model.LeadActivity, error) {
	args := m.Called(ctx, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LeadActivity), args.Error(1)
}

func fakeAuth(c *fiber.Ctx) error {
	c.Locals("user", &jwt.Claims{UserID: 1, Email: "admin@bluekey.test", Role: model.RoleAdmin})
	return c.Next()
}

func newLeadTestApp(t *testing.T, store lead.Store) *fiber.App {
	t.Helper()

	bus := event.NewBus()
	t.Cleanup(bus.Stop)

	InitLeadController(lead.NewService(store), bus)

	app := fiber.New()
	app.Post("/api/leads", CaptureLead)
	app.Get("/api/leads/:id", fakeAuth, GetLead)
	app.Put("/api/leads/:id/status", fakeAuth, UpdateLeadStatus)
	app.Post("/api/leads/:id/notes", fakeAuth, AddLeadNote)
	return app
}

func jsonBody(t *testing.T, v interface{}) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	assert.NoError(t, err)
	return bytes.NewReader(b)
}

func TestCaptureLead_Created(t *testing.T) {
	store := new(mockLeadStore)
	app := newLeadTestApp(t, store)

	store.On("CreateLead", mock.Anything, mock.MatchedBy(func(l *model.Lead) bool {
		return l.Status == model.LeadStatusNew && l.LeadSource == "website"
	})).Return(nil)

	req := httptest.NewRequest("POST", "/api/leads", jsonBody(t, map[string]string{
		"name":  "Jordan Blake",
		"email": "jordan@example.com",
	}))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	store.AssertExpectations(t)
}

func TestCaptureLead_ValidationFailure(t *testing.T) {
	store := new(mockLeadStore)
	app := newLeadTestApp(t, store)

	req := httptest.NewRequest("POST", "/api/leads", jsonBody(t, map[string]string{
		"name":  "",
		"email": "not-an-email",
	}))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	store.AssertNotCalled(t, "CreateLead", mock.Anything, mock.Anything)
}

func TestUpdateLeadStatus_InvalidValue(t *testing.T) {
	store := new(mockLeadStore)
	app := newLeadTestApp(t, store)

	l := &model.Lead{Status: model.LeadStatusNew, Version: 1}
	l.ID = 7
	store.On("GetLead", mock.Anything, uint(7)).Return(l, nil)

	req := httptest.NewRequest("PUT", "/api/leads/7/status", jsonBody(t, map[string]string{
		"status": "archived",
	}))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body struct {
		ValidStatuses []string `json:"valid_statuses"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body.ValidStatuses, "converted")
	store.AssertNotCalled(t, "UpdateLead", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateLeadStatus_StaleVersionConflicts(t *testing.T) {
	store := new(mockLeadStore)
	app := newLeadTestApp(t, store)

	l := &model.Lead{Status: model.LeadStatusNew, Version: 2}
	l.ID = 7
	store.On("GetLead", mock.Anything, uint(7)).Return(l, nil)
	store.On("UpdateLead", mock.Anything, uint(7), uint(2), mock.Anything).
		Return(nil, lead.ErrConflict)

	req := httptest.NewRequest("PUT", "/api/leads/7/status", jsonBody(t, map[string]string{
		"status": "contacted",
	}))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestGetLead_IncludesRenderedNotes(t *testing.T) {
	store := new(mockLeadStore)
	app := newLeadTestApp(t, store)

	l := &model.Lead{Name: "Jordan Blake", Status: model.LeadStatusContacted}
	l.ID = 7
	store.On("GetLead", mock.Anything, uint(7)).Return(l, nil)
	store.On("ListActivities", mock.Anything, uint(7)).Return([]model.LeadActivity{{
		LeadID:     7,
		Kind:       model.ActivityNote,
		Body:       "left voicemail",
		Actor:      "agent@bluekey.test",
		OccurredAt: time.Date(2024, 6, 1, 9, 15, 0, 0, time.UTC),
	}}, nil)

	req := httptest.NewRequest("GET", "/api/leads/7", nil)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		NotesText string `json:"notes_text"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "[2024-06-01 09:15] agent@bluekey.test\nleft voicemail", body.NotesText)
}

func TestGetLead_NotFound(t *testing.T) {
	store := new(mockLeadStore)
	app := newLeadTestApp(t, store)

	store.On("GetLead", mock.Anything, uint(99)).Return(nil, lead.ErrNotFound)

	req := httptest.NewRequest("GET", "/api/leads/99", nil)

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAddLeadNote_EmptyText(t *testing.T) {
	store := new(mockLeadStore)
	app := newLeadTestApp(t, store)

	l := &model.Lead{Version: 1}
	l.ID = 7
	store.On("GetLead", mock.Anything, uint(7)).Return(l, nil)

	req := httptest.NewRequest("POST", "/api/leads/7/notes", jsonBody(t, map[string]string{
		"text": "   ",
	}))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	store.AssertNotCalled(t, "AppendActivity", mock.Anything, mock.Anything)
}
