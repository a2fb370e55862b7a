package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"bluekey_backend/internal/middleware"
	"bluekey_backend/internal/model"
	"bluekey_backend/pkg/database"
	"bluekey_backend/pkg/queue"
)

var campaignProducer queue.ProducerInterface

// InitCampaignController wires the queue producer used to fan out sends.
// A nil producer leaves campaigns in draft-only mode.
func InitCampaignController(producer queue.ProducerInterface) {
	campaignProducer = producer
}

type CampaignInput struct {
	Name           string `json:"name" validate:"required"`
	Subject        string `json:"subject" validate:"required"`
	BodyHTML       string `json:"body_html"`
	AudienceStatus string `json:"audience_status"`
}

// CreateCampaign saves a draft mailing.
func CreateCampaign(c *fiber.Ctx) error {
	input := new(CampaignInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if input.Name == "" || input.Subject == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name and subject are required",
		})
	}

	audience := model.LeadStatus(input.AudienceStatus)
	if input.AudienceStatus != "" && !audience.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid audience status",
		})
	}

	campaign := model.EmailCampaign{
		Name:           input.Name,
		Subject:        input.Subject,
		BodyHTML:       input.BodyHTML,
		Status:         model.CampaignDraft,
		AudienceStatus: audience,
	}

	if err := database.GetDB().Create(&campaign).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create campaign",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(campaign)
}

// ListCampaigns lists campaigns for the admin panel.
func ListCampaigns(c *fiber.Ctx) error {
	var campaigns []model.EmailCampaign
	if err := database.GetDB().Order("created_at desc").
		Find(&campaigns).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch campaigns",
		})
	}

	return c.JSON(campaigns)
}

// GetCampaignStats returns per-recipient delivery counts.
func GetCampaignStats(c *fiber.Ctx) error {
	id := c.Params("id")

	var campaign model.EmailCampaign
	if err := database.GetDB().First(&campaign, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Campaign not found",
		})
	}

	type row struct {
		Status model.RecipientStatus
		Count  int64
	}
	var rows []row
	database.GetDB().Model(&model.CampaignRecipient{}).
		Select("status, count(*) as count").
		Where("campaign_id = ?", campaign.ID).
		Group("status").
		Scan(&rows)

	counts := fiber.Map{
		string(model.RecipientQueued): int64(0),
		string(model.RecipientSent):   int64(0),
		string(model.RecipientFailed): int64(0),
	}
	var total int64
	for _, r := range rows {
		counts[string(r.Status)] = r.Count
		total += r.Count
	}

	return c.JSON(fiber.Map{
		"campaign":   campaign,
		"recipients": total,
		"counts":     counts,
	})
}

// SendCampaign snapshots the audience into recipient rows and queues one
// message per recipient. Only draft campaigns can be sent.
func SendCampaign(c *fiber.Ctx) error {
	id := c.Params("id")

	if campaignProducer == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Campaign queue is not configured",
		})
	}

	var campaign model.EmailCampaign
	if err := database.GetDB().First(&campaign, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Campaign not found",
		})
	}

	if campaign.Status != model.CampaignDraft {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Campaign has already been queued",
		})
	}

	audienceQuery := database.GetDB().Model(&model.Lead{}).
		Where("email <> ''")
	if campaign.AudienceStatus != "" {
		audienceQuery = audienceQuery.Where("status = ?", campaign.AudienceStatus)
	}

	var leads []model.Lead
	if err := audienceQuery.Find(&leads).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load audience",
		})
	}

	if len(leads) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Campaign audience is empty",
		})
	}

	now := time.Now()
	queued := 0
	for i := range leads {
		recipient := model.CampaignRecipient{
			CampaignID: campaign.ID,
			LeadID:     leads[i].ID,
			Email:      leads[i].Email,
			Name:       leads[i].Name,
			Status:     model.RecipientQueued,
		}
		if err := database.GetDB().Create(&recipient).Error; err != nil {
			log.Printf("could not snapshot recipient for campaign %d: %v", campaign.ID, err)
			continue
		}

		err := campaignProducer.PublishCampaignEmail(c.Context(), queue.CampaignEmailPayload{
			CampaignID:  campaign.ID,
			RecipientID: recipient.ID,
			Email:       recipient.Email,
			Name:        recipient.Name,
			Subject:     campaign.Subject,
			BodyHTML:    campaign.BodyHTML,
		})
		if err != nil {
			log.Printf("could not queue campaign email for recipient %d: %v", recipient.ID, err)
			database.GetDB().Model(&recipient).Updates(map[string]interface{}{
				"status":     model.RecipientFailed,
				"last_error": err.Error(),
			})
			continue
		}

		middleware.RecordCampaignEmailQueued()
		queued++
	}

	database.GetDB().Model(&campaign).Updates(map[string]interface{}{
		"status":    model.CampaignSending,
		"queued_at": &now,
	})

	return c.JSON(fiber.Map{
		"message": "Campaign queued",
		"queued":  queued,
		"total":   len(leads),
	})
}
