package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"bluekey_backend/internal/model"
	"bluekey_backend/pkg/database"
	"bluekey_backend/pkg/utils/jwt"
)

type ShowingInput struct {
	LeadID      uint      `json:"lead_id"`
	PropertyID  uint      `json:"property_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Notes       string    `json:"notes"`
}

// CreateShowing books a property visit for a lead.
func CreateShowing(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	input := new(ShowingInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if input.LeadID == 0 || input.PropertyID == 0 || input.ScheduledAt.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Lead, property and a scheduled time are required",
		})
	}

	var l model.Lead
	if err := database.GetDB().First(&l, input.LeadID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Lead not found",
		})
	}

	var property model.Property
	if err := database.GetDB().First(&property, input.PropertyID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Property not found",
		})
	}

	showing := model.Showing{
		LeadID:      input.LeadID,
		PropertyID:  input.PropertyID,
		AgentID:     claims.UserID,
		ScheduledAt: input.ScheduledAt,
		Status:      model.ShowingRequested,
		Notes:       input.Notes,
	}

	if err := database.GetDB().Create(&showing).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create showing",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(showing)
}

// ListShowings lists showings, optionally filtered by status, lead or
// day range.
func ListShowings(c *fiber.Ctx) error {
	query := database.GetDB().Model(&model.Showing{}).
		Preload("Lead").
		Preload("Property")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if leadID := c.Query("lead_id"); leadID != "" {
		query = query.Where("lead_id = ?", leadID)
	}
	if agentID := c.Query("agent_id"); agentID != "" {
		query = query.Where("agent_id = ?", agentID)
	}
	if upcoming := c.Query("upcoming"); upcoming == "true" {
		query = query.Where("scheduled_at >= ?", time.Now())
	}

	var showings []model.Showing
	if err := query.Order("scheduled_at asc").Find(&showings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch showings",
		})
	}

	return c.JSON(showings)
}

// UpdateShowingStatus confirms, completes or cancels a showing.
func UpdateShowingStatus(c *fiber.Ctx) error {
	id := c.Params("id")

	var showing model.Showing
	if err := database.GetDB().First(&showing, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Showing not found",
		})
	}

	input := struct {
		Status string `json:"status"`
		Notes  string `json:"notes"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	switch model.ShowingStatus(input.Status) {
	case model.ShowingRequested, model.ShowingConfirmed,
		model.ShowingCompleted, model.ShowingCancelled:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid status value",
		})
	}

	updates := map[string]interface{}{"status": input.Status}
	if input.Notes != "" {
		updates["notes"] = input.Notes
	}

	if err := database.GetDB().Model(&showing).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update showing",
		})
	}

	return c.JSON(showing)
}
