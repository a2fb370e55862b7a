package email

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"time"
)

type EmailService struct {
	apiKey    string
	from      string
	templates *template.Template
}

type EmailData struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Html    string `json:"html"`
}

// Template data structures
type LeadNotificationData struct {
	LeadName    string
	LeadEmail   string
	LeadPhone   string
	LeadMessage string
	LeadSource  string
	Property    string
}

type FollowUpReminderData struct {
	AgentName    string
	LeadName     string
	LeadEmail    string
	LeadPhone    string
	ScheduledFor time.Time
	Note         string
}

type DailyLeadDigestData struct {
	AgentName string
	Date      time.Time
	Total     int64
	BySource  map[string]int64
}

func NewEmailService(apiKey, from string) (*EmailService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend API key is required")
	}

	templates, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("error loading email templates: %v", err)
	}

	return &EmailService{
		apiKey:    apiKey,
		from:      from,
		templates: templates,
	}, nil
}

func (s *EmailService) sendTemplateEmail(to, subject, templateName string, data interface{}) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, templateName, data); err != nil {
		return fmt.Errorf("template execution error: %v", err)
	}
	return s.send(to, subject, body.String())
}

// SendRawEmail sends pre-rendered HTML. Used by the campaign worker,
// where the body is authored in the admin panel.
func (s *EmailService) SendRawEmail(to, subject, html string) error {
	return s.send(to, subject, html)
}

func (s *EmailService) send(to, subject, html string) error {
	emailData := EmailData{
		From:    s.from,
		To:      to,
		Subject: subject,
		Html:    html,
	}

	jsonData, err := json.Marshal(emailData)
	if err != nil {
		return fmt.Errorf("error marshaling email data: %v", err)
	}

	req, err := http.NewRequest("POST", "https://api.resend.com/emails", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("error creating request: %v", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("error sending email: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response body: %v", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Printf("Resend API error: Status: %d, Body: %s", resp.StatusCode, string(respBody))
		return fmt.Errorf("resend API error: %s", string(respBody))
	}

	return nil
}

// Email sending methods
func (s *EmailService) SendLeadNotificationEmail(agentEmail string, data LeadNotificationData) error {
	return s.sendTemplateEmail(agentEmail, "New Lead Captured", "lead_notification.html", data)
}

func (s *EmailService) SendFollowUpReminder(agentEmail string, data FollowUpReminderData) error {
	return s.sendTemplateEmail(agentEmail, "Follow-Up Due: "+data.LeadName, "followup_reminder.html", data)
}

func (s *EmailService) SendDailyLeadDigest(agentEmail string, data DailyLeadDigestData) error {
	subject := fmt.Sprintf("Lead Digest for %s", data.Date.Format("Jan 2"))
	return s.sendTemplateEmail(agentEmail, subject, "daily_lead_digest.html", data)
}
