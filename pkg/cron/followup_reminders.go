package cron

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"bluekey_backend/internal/model"
	"bluekey_backend/pkg/database"
	"bluekey_backend/pkg/email"
)

// InitFollowUpCron schedules the morning sweep that reminds agents of
// follow-ups coming due within the next 24 hours. Reminders read the
// structured follow_up activity rows directly; the rendered note text is
// never parsed.
func InitFollowUpCron() {
	c := cron.New()

	_, err := c.AddFunc("0 8 * * *", func() {
		sendFollowUpReminders()
	})

	if err != nil {
		log.Printf("Could not initialize follow-up cron: %v", err)
		return
	}

	c.Start()
	log.Printf("Follow-up reminder cron initialized")
}

func sendFollowUpReminders() {
	log.Println("Checking for due follow-ups...")

	cutoff := time.Now().Add(24 * time.Hour)

	var followUps []model.LeadActivity
	err := database.DB.
		Where("kind = ? AND reminder_sent_at IS NULL AND scheduled_for <= ?",
			model.ActivityFollowUp, cutoff).
		Preload("Lead").
		Preload("Lead.Agent").
		Find(&followUps).Error
	if err != nil {
		log.Printf("Error fetching due follow-ups: %v", err)
		return
	}

	log.Printf("Found %d follow-up(s) due", len(followUps))

	for _, fu := range followUps {
		agent := fu.Lead.Agent
		if agent == nil || email.GlobalEmailService == nil {
			continue
		}

		err := email.GlobalEmailService.SendFollowUpReminder(agent.Email, email.FollowUpReminderData{
			AgentName:    agent.GetFullName(),
			LeadName:     fu.Lead.Name,
			LeadEmail:    fu.Lead.Email,
			LeadPhone:    fu.Lead.Phone,
			ScheduledFor: *fu.ScheduledFor,
			Note:         fu.Body,
		})
		if err != nil {
			log.Printf("Error sending follow-up reminder to %s: %v", agent.Email, err)
			continue
		}

		// Stamp the reminder so tomorrow's sweep skips it. The activity
		// entry itself (body, timestamps) stays untouched.
		now := time.Now()
		if err := database.DB.Model(&model.LeadActivity{}).
			Where("id = ?", fu.ID).
			Update("reminder_sent_at", now).Error; err != nil {
			log.Printf("Could not stamp reminder for activity %d: %v", fu.ID, err)
		}
	}
}
