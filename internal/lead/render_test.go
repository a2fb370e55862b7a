package lead

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"bluekey_backend/internal/model"
)

func TestRenderActivityLog_Empty(t *testing.T) {
	assert.Equal(t, "", RenderActivityLog(nil))
}

func TestRenderActivityLog_NoteAndFollowUp(t *testing.T) {
	noteAt := time.Date(2024, 6, 1, 9, 15, 0, 0, time.UTC)
	fuAt := time.Date(2024, 6, 1, 11, 30, 0, 0, time.UTC)
	scheduled := time.Date(2024, 6, 4, 10, 0, 0, 0, time.UTC)

	activities := []model.LeadActivity{
		{
			Kind:       model.ActivityNote,
			Body:       "Asked about the Maplewood listing",
			Actor:      "agent@bluekey.test",
			OccurredAt: noteAt,
		},
		{
			Kind:         model.ActivityFollowUp,
			Body:         "Call back with showing options",
			Actor:        "agent@bluekey.test",
			OccurredAt:   fuAt,
			ScheduledFor: &scheduled,
		},
	}

	got := RenderActivityLog(activities)

	want := "[2024-06-01 09:15] agent@bluekey.test\n" +
		"Asked about the Maplewood listing" +
		"\n\n" +
		"[2024-06-01 11:30] agent@bluekey.test\n" +
		"FOLLOW-UP SCHEDULED: 2024-06-04T10:00:00\n" +
		"Call back with showing options"

	assert.Equal(t, want, got)
}

func TestRenderActivityLog_StatusChange(t *testing.T) {
	at := time.Date(2024, 6, 2, 14, 0, 0, 0, time.UTC)

	got := RenderActivityLog([]model.LeadActivity{{
		Kind:       model.ActivityStatusChange,
		OldStatus:  model.LeadStatusQualified,
		NewStatus:  model.LeadStatusConverted,
		Actor:      "admin@bluekey.test",
		OccurredAt: at,
	}})

	assert.Equal(t, "[2024-06-02 14:00] admin@bluekey.test\nSTATUS: qualified -> converted", got)
}

func TestRenderActivityLog_NoActor(t *testing.T) {
	at := time.Date(2024, 6, 2, 14, 0, 0, 0, time.UTC)

	got := RenderActivityLog([]model.LeadActivity{{
		Kind:       model.ActivityNote,
		Body:       "imported from spreadsheet",
		OccurredAt: at,
	}})

	assert.Equal(t, "[2024-06-02 14:00]\nimported from spreadsheet", got)
}

func TestRenderActivityLog_FollowUpWithoutNote(t *testing.T) {
	at := time.Date(2024, 6, 2, 14, 0, 0, 0, time.UTC)
	scheduled := time.Date(2024, 6, 9, 10, 0, 0, 0, time.UTC)

	got := RenderActivityLog([]model.LeadActivity{{
		Kind:         model.ActivityFollowUp,
		OccurredAt:   at,
		ScheduledFor: &scheduled,
	}})

	assert.Equal(t, "[2024-06-02 14:00]\nFOLLOW-UP SCHEDULED: 2024-06-09T10:00:00", got)
}
