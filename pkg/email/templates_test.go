package email

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadTemplates(t *testing.T) {
	templates, err := loadTemplates()
	assert.NoError(t, err)

	for _, name := range []string{
		"lead_notification.html",
		"followup_reminder.html",
		"daily_lead_digest.html",
	} {
		assert.NotNil(t, templates.Lookup(name), "missing template %s", name)
	}
}

func TestLeadNotificationTemplateRenders(t *testing.T) {
	templates, err := loadTemplates()
	assert.NoError(t, err)

	var body bytes.Buffer
	err = templates.ExecuteTemplate(&body, "lead_notification.html", LeadNotificationData{
		LeadName:    "Jordan Blake",
		LeadEmail:   "jordan@example.com",
		LeadPhone:   "555-0142",
		LeadMessage: "Interested in the Maplewood listing",
		LeadSource:  "website",
		Property:    "412 Maplewood Ave",
	})

	assert.NoError(t, err)
	assert.Contains(t, body.String(), "Jordan Blake")
	assert.Contains(t, body.String(), "412 Maplewood Ave")
}

func TestFollowUpReminderTemplateRenders(t *testing.T) {
	templates, err := loadTemplates()
	assert.NoError(t, err)

	var body bytes.Buffer
	err = templates.ExecuteTemplate(&body, "followup_reminder.html", FollowUpReminderData{
		AgentName:    "Casey Morgan",
		LeadName:     "Jordan Blake",
		LeadEmail:    "jordan@example.com",
		ScheduledFor: time.Date(2024, 6, 4, 10, 0, 0, 0, time.UTC),
		Note:         "Send updated comps",
	})

	assert.NoError(t, err)
	assert.Contains(t, body.String(), "Jordan Blake")
}

func TestDailyDigestTemplateRenders(t *testing.T) {
	templates, err := loadTemplates()
	assert.NoError(t, err)

	var body bytes.Buffer
	err = templates.ExecuteTemplate(&body, "daily_lead_digest.html", DailyLeadDigestData{
		AgentName: "Casey Morgan",
		Date:      time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC),
		Total:     5,
		BySource:  map[string]int64{"website": 3, "callback_widget": 2},
	})

	assert.NoError(t, err)
	assert.Contains(t, body.String(), "Casey Morgan")
}
