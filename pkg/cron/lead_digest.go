package cron

import (
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"bluekey_backend/internal/model"
	"bluekey_backend/pkg/database"
	"bluekey_backend/pkg/email"
)

var (
	lastDigestRun time.Time
	digestMutex   sync.Mutex
)

// InitLeadDigestCron sends each active agent an evening summary of the
// day's new leads.
func InitLeadDigestCron() {
	c := cron.New()

	_, err := c.AddFunc("0 19 * * *", func() {
		digestMutex.Lock()
		defer digestMutex.Unlock()

		if time.Since(lastDigestRun) < 23*time.Hour {
			log.Printf("Lead digest already sent today, skipping...")
			return
		}

		sendDailyLeadDigest()
		lastDigestRun = time.Now()
	})

	if err != nil {
		log.Printf("Could not initialize lead digest cron: %v", err)
		return
	}

	c.Start()
	log.Printf("Lead digest cron initialized")
}

func sendDailyLeadDigest() {
	today := time.Now().Format("2006-01-02")
	log.Printf("Running lead digest for date: %s", today)

	var rows []struct {
		AgentID    uint
		AgentEmail string
		FirstName  string
		LastName   string
		LeadSource string
		Count      int64
	}

	err := database.DB.Raw(`
        SELECT
            s.id as agent_id,
            s.email as agent_email,
            s.first_name,
            s.last_name,
            l.lead_source,
            COUNT(l.id) as count
        FROM staff_users s
        JOIN leads l ON l.agent_id = s.id
        WHERE DATE(l.created_at) = ? AND s.is_active = true
        GROUP BY s.id, l.lead_source
    `, today).Scan(&rows).Error
	if err != nil {
		log.Printf("Error fetching lead digest rows: %v", err)
		return
	}

	type digest struct {
		email    string
		name     string
		total    int64
		bySource map[string]int64
	}
	perAgent := make(map[uint]*digest)

	for _, row := range rows {
		d, ok := perAgent[row.AgentID]
		if !ok {
			u := model.StaffUser{FirstName: row.FirstName, LastName: row.LastName}
			d = &digest{email: row.AgentEmail, name: u.GetFullName(), bySource: make(map[string]int64)}
			perAgent[row.AgentID] = d
		}
		d.total += row.Count
		d.bySource[row.LeadSource] += row.Count
	}

	log.Printf("Found %d agent(s) with new leads", len(perAgent))

	for _, d := range perAgent {
		if email.GlobalEmailService == nil {
			return
		}
		err := email.GlobalEmailService.SendDailyLeadDigest(d.email, email.DailyLeadDigestData{
			AgentName: d.name,
			Date:      time.Now(),
			Total:     d.total,
			BySource:  d.bySource,
		})
		if err != nil {
			log.Printf("Error sending lead digest to %s: %v", d.email, err)
		}
	}
}
