package lead

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"bluekey_backend/internal/model"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) CreateLead(ctx context.Context, lead *model.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockStore) GetLead(ctx context.Context, id uint) (*model.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Lead), args.Error(1)
}

func (m *MockStore) UpdateLead(ctx context.Context, id uint, version uint, fields map[string]interface{}) (*model.Lead, error) {
	args := m.Called(ctx, id, version, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Lead), args.Error(1)
}

func (m *MockStore) ListLeads(ctx context.Context, f Filter) ([]model.Lead, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Lead), args.Error(1)
}

func (m *MockStore) AppendActivity(ctx context.Context, a *model.LeadActivity) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockStore) ListActivities(ctx context.Context, leadID uint) ([]model.LeadActivity, error) {
	args := m.Called(ctx, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LeadActivity), args.Error(1)
}

func newTestService(store Store, now time.Time) *Service {
	s := NewService(store)
	s.now = func() time.Time { return now }
	return s
}

func TestCapture_DefaultsAndInitialState(t *testing.T) {
	store := new(MockStore)
	now := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)
	svc := newTestService(store, now)

	store.On("CreateLead", mock.Anything, mock.MatchedBy(func(l *model.Lead) bool {
		return l.Status == model.LeadStatusNew &&
			l.Version == 1 &&
			l.LeadSource == "website" &&
			l.ConvertedAt == nil
	})).Return(nil)

	created, err := svc.Capture(context.Background(), CaptureInput{
		Name:  "  Jordan Blake  ",
		Email: "jordan@example.com",
		Phone: "555-0142",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Jordan Blake", created.Name)
	assert.Equal(t, model.LeadStatusNew, created.Status)
	store.AssertExpectations(t)
}

func TestCapture_ValidationFailureNeverTouchesStore(t *testing.T) {
	store := new(MockStore)
	svc := newTestService(store, time.Now())

	_, err := svc.Capture(context.Background(), CaptureInput{
		Name:  "",
		Email: "not-an-email",
	})

	assert.Error(t, err)
	store.AssertNotCalled(t, "CreateLead", mock.Anything, mock.Anything)
}

func TestTransition_RejectsUnknownStatus(t *testing.T) {
	store := new(MockStore)
	svc := newTestService(store, time.Now())

	l := &model.Lead{Status: model.LeadStatusNew, Version: 1}
	l.ID = 7

	_, err := svc.Transition(context.Background(), l, model.LeadStatus("archived"), "admin@bluekey.test")

	assert.ErrorIs(t, err, ErrInvalidStatus)
	store.AssertNotCalled(t, "UpdateLead", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTransition_StampsConvertedAtOnce(t *testing.T) {
	store := new(MockStore)
	now := time.Date(2024, 6, 2, 14, 0, 0, 0, time.UTC)
	svc := newTestService(store, now)

	l := &model.Lead{Status: model.LeadStatusQualified, Version: 3}
	l.ID = 11

	fresh := &model.Lead{Status: model.LeadStatusConverted, Version: 4, ConvertedAt: &now}
	fresh.ID = 11

	store.On("UpdateLead", mock.Anything, uint(11), uint(3), mock.MatchedBy(func(fields map[string]interface{}) bool {
		_, hasStamp := fields["converted_at"]
		return fields["status"] == model.LeadStatusConverted && hasStamp
	})).Return(fresh, nil)
	store.On("AppendActivity", mock.Anything, mock.Anything).Return(nil)

	updated, err := svc.Transition(context.Background(), l, model.LeadStatusConverted, "admin@bluekey.test")

	assert.NoError(t, err)
	assert.Equal(t, model.LeadStatusConverted, updated.Status)
	assert.Equal(t, &now, updated.ConvertedAt)
	store.AssertExpectations(t)
}

func TestTransition_ConvertedAtSurvivesLeavingConverted(t *testing.T) {
	store := new(MockStore)
	convertedAt := time.Date(2024, 6, 2, 14, 0, 0, 0, time.UTC)
	svc := newTestService(store, convertedAt.Add(48*time.Hour))

	l := &model.Lead{Status: model.LeadStatusConverted, Version: 4, ConvertedAt: &convertedAt}
	l.ID = 11

	fresh := &model.Lead{Status: model.LeadStatusLost, Version: 5, ConvertedAt: &convertedAt}
	fresh.ID = 11

	store.On("UpdateLead", mock.Anything, uint(11), uint(4), mock.MatchedBy(func(fields map[string]interface{}) bool {
		_, hasStamp := fields["converted_at"]
		return fields["status"] == model.LeadStatusLost && !hasStamp
	})).Return(fresh, nil)
	store.On("AppendActivity", mock.Anything, mock.Anything).Return(nil)

	updated, err := svc.Transition(context.Background(), l, model.LeadStatusLost, "admin@bluekey.test")

	assert.NoError(t, err)
	assert.Equal(t, &convertedAt, updated.ConvertedAt)
	store.AssertExpectations(t)
}

func TestTransition_ReconvertingDoesNotRestamp(t *testing.T) {
	store := new(MockStore)
	convertedAt := time.Date(2024, 6, 2, 14, 0, 0, 0, time.UTC)
	svc := newTestService(store, convertedAt.Add(72*time.Hour))

	l := &model.Lead{Status: model.LeadStatusLost, Version: 5, ConvertedAt: &convertedAt}
	l.ID = 11

	fresh := &model.Lead{Status: model.LeadStatusConverted, Version: 6, ConvertedAt: &convertedAt}
	fresh.ID = 11

	store.On("UpdateLead", mock.Anything, uint(11), uint(5), mock.MatchedBy(func(fields map[string]interface{}) bool {
		_, hasStamp := fields["converted_at"]
		return !hasStamp
	})).Return(fresh, nil)
	store.On("AppendActivity", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Transition(context.Background(), l, model.LeadStatusConverted, "admin@bluekey.test")

	assert.NoError(t, err)
	store.AssertExpectations(t)
}

func TestTransition_ConflictLeavesInputUntouched(t *testing.T) {
	store := new(MockStore)
	svc := newTestService(store, time.Now())

	l := &model.Lead{Status: model.LeadStatusNew, Version: 2}
	l.ID = 5

	store.On("UpdateLead", mock.Anything, uint(5), uint(2), mock.Anything).
		Return(nil, ErrConflict)

	_, err := svc.Transition(context.Background(), l, model.LeadStatusContacted, "admin@bluekey.test")

	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, model.LeadStatusNew, l.Status)
	assert.Equal(t, uint(2), l.Version)
	store.AssertNotCalled(t, "AppendActivity", mock.Anything, mock.Anything)
}

func TestTransition_RecordsStatusChangeActivity(t *testing.T) {
	store := new(MockStore)
	now := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)
	svc := newTestService(store, now)

	l := &model.Lead{Status: model.LeadStatusNew, Version: 1}
	l.ID = 9

	fresh := &model.Lead{Status: model.LeadStatusContacted, Version: 2}
	fresh.ID = 9

	store.On("UpdateLead", mock.Anything, uint(9), uint(1), mock.Anything).Return(fresh, nil)
	store.On("AppendActivity", mock.Anything, mock.MatchedBy(func(a *model.LeadActivity) bool {
		return a.Kind == model.ActivityStatusChange &&
			a.OldStatus == model.LeadStatusNew &&
			a.NewStatus == model.LeadStatusContacted &&
			a.Actor == "agent@bluekey.test" &&
			a.OccurredAt.Equal(now)
	})).Return(nil)

	_, err := svc.Transition(context.Background(), l, model.LeadStatusContacted, "agent@bluekey.test")

	assert.NoError(t, err)
	store.AssertExpectations(t)
}

func TestTransition_SucceedsWhenActivityWriteFails(t *testing.T) {
	store := new(MockStore)
	svc := newTestService(store, time.Now())

	l := &model.Lead{Status: model.LeadStatusNew, Version: 1}
	l.ID = 3

	fresh := &model.Lead{Status: model.LeadStatusContacted, Version: 2}
	fresh.ID = 3

	store.On("UpdateLead", mock.Anything, uint(3), uint(1), mock.Anything).Return(fresh, nil)
	store.On("AppendActivity", mock.Anything, mock.Anything).Return(errors.New("activity table down"))

	updated, err := svc.Transition(context.Background(), l, model.LeadStatusContacted, "agent@bluekey.test")

	assert.NoError(t, err)
	assert.Equal(t, model.LeadStatusContacted, updated.Status)
}

func TestAppendNote_RejectsBlankText(t *testing.T) {
	store := new(MockStore)
	svc := newTestService(store, time.Now())

	l := &model.Lead{}
	l.ID = 4

	_, err := svc.AppendNote(context.Background(), l, "   \n\t ", time.Time{}, "agent@bluekey.test")

	assert.ErrorIs(t, err, ErrEmptyNote)
	store.AssertNotCalled(t, "AppendActivity", mock.Anything, mock.Anything)
}

func TestAppendNote_DefaultsTimestampToNow(t *testing.T) {
	store := new(MockStore)
	now := time.Date(2024, 6, 4, 16, 45, 0, 0, time.UTC)
	svc := newTestService(store, now)

	l := &model.Lead{}
	l.ID = 4

	store.On("AppendActivity", mock.Anything, mock.MatchedBy(func(a *model.LeadActivity) bool {
		return a.Kind == model.ActivityNote &&
			a.Body == "Spoke on the phone, wants a tour" &&
			a.OccurredAt.Equal(now)
	})).Return(nil)

	note, err := svc.AppendNote(context.Background(), l, "Spoke on the phone, wants a tour", time.Time{}, "agent@bluekey.test")

	assert.NoError(t, err)
	assert.Equal(t, model.ActivityNote, note.Kind)
	store.AssertExpectations(t)
}

func TestAppendNote_IdenticalCallsProduceTwoEntries(t *testing.T) {
	store := new(MockStore)
	svc := newTestService(store, time.Now())

	l := &model.Lead{}
	l.ID = 4

	store.On("AppendActivity", mock.Anything, mock.Anything).Return(nil).Twice()

	_, err1 := svc.AppendNote(context.Background(), l, "left voicemail", time.Time{}, "a@bluekey.test")
	_, err2 := svc.AppendNote(context.Background(), l, "left voicemail", time.Time{}, "a@bluekey.test")

	assert.NoError(t, err1)
	assert.NoError(t, err2)
	store.AssertNumberOfCalls(t, "AppendActivity", 2)
}

func TestScheduleFollowUp_RequiresATime(t *testing.T) {
	store := new(MockStore)
	svc := newTestService(store, time.Now())

	l := &model.Lead{}
	l.ID = 6

	_, err := svc.ScheduleFollowUp(context.Background(), l, time.Time{}, "check in", "agent@bluekey.test")

	assert.ErrorIs(t, err, ErrNoFollowUpTime)
	store.AssertNotCalled(t, "AppendActivity", mock.Anything, mock.Anything)
}

func TestScheduleFollowUp_DoesNotTouchStatus(t *testing.T) {
	store := new(MockStore)
	now := time.Date(2024, 6, 5, 8, 0, 0, 0, time.UTC)
	svc := newTestService(store, now)

	l := &model.Lead{Status: model.LeadStatusContacted, Version: 2}
	l.ID = 6

	when := now.AddDate(0, 0, 3)
	store.On("AppendActivity", mock.Anything, mock.MatchedBy(func(a *model.LeadActivity) bool {
		return a.Kind == model.ActivityFollowUp &&
			a.ScheduledFor != nil &&
			a.ScheduledFor.Equal(when) &&
			a.OccurredAt.Equal(now)
	})).Return(nil)

	fu, err := svc.ScheduleFollowUp(context.Background(), l, when, "send comps", "agent@bluekey.test")

	assert.NoError(t, err)
	assert.Equal(t, "send comps", fu.Body)
	assert.Equal(t, model.LeadStatusContacted, l.Status)
	store.AssertNotCalled(t, "UpdateLead", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAssign_UsesVersionedUpdate(t *testing.T) {
	store := new(MockStore)
	svc := newTestService(store, time.Now())

	l := &model.Lead{Version: 2}
	l.ID = 8

	fresh := &model.Lead{Version: 3}
	fresh.ID = 8

	store.On("UpdateLead", mock.Anything, uint(8), uint(2), map[string]interface{}{
		"agent_id": uint(14),
	}).Return(fresh, nil)

	_, err := svc.Assign(context.Background(), l, 14)

	assert.NoError(t, err)
	store.AssertExpectations(t)
}
