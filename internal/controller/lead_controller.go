package controller

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofiber/fiber/v2"

	"bluekey_backend/internal/event"
	"bluekey_backend/internal/lead"
	"bluekey_backend/internal/middleware"
	"bluekey_backend/internal/model"
	"bluekey_backend/pkg/utils/jwt"
)

var (
	leadService *lead.Service
	leadEvents  *event.Bus
)

func InitLeadController(svc *lead.Service, bus *event.Bus) {
	leadService = svc
	leadEvents = bus
}

// CaptureLead handles the contact flyout on property pages.
func CaptureLead(c *fiber.Ctx) error {
	input := new(lead.CaptureInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}
	if input.LeadSource == "" {
		input.LeadSource = "website"
	}

	return captureAndRespond(c, *input)
}

// CaptureCallbackRequest handles the floating "request a callback" widget.
func CaptureCallbackRequest(c *fiber.Ctx) error {
	input := new(lead.CaptureInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}
	input.LeadSource = "callback_widget"

	return captureAndRespond(c, *input)
}

type ValuationInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Details string `json:"details"`
}

// CaptureValuationRequest handles the home-valuation form.
func CaptureValuationRequest(c *fiber.Ctx) error {
	input := new(ValuationInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if err := validation.ValidateStruct(input,
		validation.Field(&input.Address, validation.Required, validation.Length(1, 300)),
	); err != nil {
		return validationErrorResponse(c, err)
	}

	message := "Home valuation request for " + input.Address
	if input.Details != "" {
		message += "\n\n" + input.Details
	}

	return captureAndRespond(c, lead.CaptureInput{
		Name:            input.Name,
		Email:           input.Email,
		Phone:           input.Phone,
		Message:         message,
		PropertyAddress: input.Address,
		LeadSource:      "valuation_form",
	})
}

// QuickAddLead lets an admin create a lead manually from the back office.
func QuickAddLead(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	input := new(lead.CaptureInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}
	input.LeadSource = "manual"

	created, err := leadService.Capture(c.Context(), *input)
	if err != nil {
		return leadErrorResponse(c, err)
	}

	// Quick-added leads belong to whoever typed them in.
	if assigned, err := leadService.Assign(c.Context(), created, claims.UserID); err == nil {
		created = assigned
	}

	middleware.RecordLeadCaptured(created.LeadSource)
	leadEvents.Publish(event.Event{Type: event.LeadCaptured, Lead: created})

	return c.Status(fiber.StatusCreated).JSON(created)
}

func captureAndRespond(c *fiber.Ctx, input lead.CaptureInput) error {
	created, err := leadService.Capture(c.Context(), input)
	if err != nil {
		return leadErrorResponse(c, err)
	}

	middleware.RecordLeadCaptured(created.LeadSource)
	leadEvents.Publish(event.Event{Type: event.LeadCaptured, Lead: created})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Your inquiry has been sent successfully. An agent will contact you soon.",
		"id":      created.ID,
	})
}

// GetLeads lists leads for the admin panel with optional filters.
func GetLeads(c *fiber.Ctx) error {
	filter := lead.Filter{
		Status: model.LeadStatus(c.Query("status")),
		Source: c.Query("source"),
		Search: c.Query("q"),
	}

	if agentID := c.Query("agent_id"); agentID != "" {
		id, err := strconv.ParseUint(agentID, 10, 32)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid agent ID",
			})
		}
		uid := uint(id)
		filter.AgentID = &uid
	}

	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid from date, expected YYYY-MM-DD",
			})
		}
		filter.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid to date, expected YYYY-MM-DD",
			})
		}
		// Inclusive end date.
		t = t.AddDate(0, 0, 1)
		filter.To = &t
	}

	leads, err := leadService.List(c.Context(), filter)
	if err != nil {
		return leadErrorResponse(c, err)
	}

	return c.JSON(leads)
}

// GetLead returns a lead with its activity timeline and the rendered
// note log the detail modal displays.
func GetLead(c *fiber.Ctx) error {
	l, ok := loadLead(c)
	if !ok {
		return nil
	}

	activities, err := leadService.Activities(c.Context(), l.ID)
	if err != nil {
		return leadErrorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"lead":       l,
		"terminal":   l.Status.Terminal(),
		"activities": activities,
		"notes_text": lead.RenderActivityLog(activities),
	})
}

// UpdateLeadStatus applies a pipeline transition.
func UpdateLeadStatus(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	l, ok := loadLead(c)
	if !ok {
		return nil
	}

	input := struct {
		Status string `json:"status"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	from := l.Status
	updated, err := leadService.Transition(c.Context(), l, model.LeadStatus(input.Status), claims.Email)
	if err != nil {
		if errors.Is(err, lead.ErrInvalidStatus) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid status value",
				"valid_statuses": []string{
					string(model.LeadStatusNew),
					string(model.LeadStatusContacted),
					string(model.LeadStatusQualified),
					string(model.LeadStatusConverted),
					string(model.LeadStatusLost),
				},
			})
		}
		return leadErrorResponse(c, err)
	}

	middleware.RecordLeadTransition(string(from), string(updated.Status))
	leadEvents.Publish(event.Event{Type: event.LeadStatusChanged, Lead: updated})

	return c.JSON(fiber.Map{
		"message": "Lead status updated successfully",
		"lead":    updated,
	})
}

// AddLeadNote appends a timestamped note to the lead's history.
func AddLeadNote(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	l, ok := loadLead(c)
	if !ok {
		return nil
	}

	input := struct {
		Text string `json:"text"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	note, err := leadService.AppendNote(c.Context(), l, input.Text, time.Time{}, claims.Email)
	if err != nil {
		if errors.Is(err, lead.ErrEmptyNote) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Note text must not be empty",
			})
		}
		return leadErrorResponse(c, err)
	}

	leadEvents.Publish(event.Event{Type: event.NoteAdded, Lead: l, Activity: note})

	return c.Status(fiber.StatusCreated).JSON(note)
}

// ScheduleLeadFollowUp records a future contact commitment.
func ScheduleLeadFollowUp(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	l, ok := loadLead(c)
	if !ok {
		return nil
	}

	input := struct {
		ScheduledFor time.Time `json:"scheduled_for"`
		Note         string    `json:"note"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	fu, err := leadService.ScheduleFollowUp(c.Context(), l, input.ScheduledFor, input.Note, claims.Email)
	if err != nil {
		if errors.Is(err, lead.ErrNoFollowUpTime) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "A follow-up date and time is required",
			})
		}
		return leadErrorResponse(c, err)
	}

	leadEvents.Publish(event.Event{Type: event.FollowUpScheduled, Lead: l, Activity: fu})

	return c.Status(fiber.StatusCreated).JSON(fu)
}

// GetFollowUpPresets returns the quick-pick follow-up times.
func GetFollowUpPresets(c *fiber.Ctx) error {
	return c.JSON(lead.Presets(time.Now()))
}

// AssignLead hands a lead to a staff member.
func AssignLead(c *fiber.Ctx) error {
	l, ok := loadLead(c)
	if !ok {
		return nil
	}

	input := struct {
		AgentID uint `json:"agent_id"`
	}{}
	if err := c.BodyParser(&input); err != nil || input.AgentID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid agent ID",
		})
	}

	updated, err := leadService.Assign(c.Context(), l, input.AgentID)
	if err != nil {
		return leadErrorResponse(c, err)
	}

	return c.JSON(updated)
}

func loadLead(c *fiber.Ctx) (*model.Lead, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid lead ID",
		})
		return nil, false
	}

	l, err := leadService.Get(c.Context(), uint(id))
	if err != nil {
		leadErrorResponse(c, err)
		return nil, false
	}
	return l, true
}

func leadErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, lead.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Lead not found",
		})
	case errors.Is(err, lead.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Lead was modified by someone else, please refresh and retry",
		})
	default:
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			return validationErrorResponse(c, verrs)
		}
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": fmt.Sprintf("Lead store unavailable: %v", err),
		})
	}
}

func validationErrorResponse(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":  "Validation failed",
		"fields": err,
	})
}
