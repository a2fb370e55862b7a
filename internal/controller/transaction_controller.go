package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"bluekey_backend/internal/model"
	"bluekey_backend/pkg/database"
	"bluekey_backend/pkg/utils/jwt"
)

type TransactionInput struct {
	PropertyID uint    `json:"property_id"`
	LeadID     *uint   `json:"lead_id"`
	SalePrice  float64 `json:"sale_price"`
	Commission float64 `json:"commission"`
	Notes      string  `json:"notes"`
}

// CreateTransaction opens a deal record for a listing.
func CreateTransaction(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	input := new(TransactionInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if input.PropertyID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Property is required",
		})
	}

	var property model.Property
	if err := database.GetDB().First(&property, input.PropertyID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Property not found",
		})
	}

	tx := model.Transaction{
		PropertyID: input.PropertyID,
		LeadID:     input.LeadID,
		AgentID:    claims.UserID,
		SalePrice:  input.SalePrice,
		Commission: input.Commission,
		Stage:      model.TransactionPending,
		Notes:      input.Notes,
	}

	if err := database.GetDB().Create(&tx).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create transaction",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(tx)
}

// ListTransactions lists deals, optionally filtered by stage or agent.
func ListTransactions(c *fiber.Ctx) error {
	query := database.GetDB().Model(&model.Transaction{}).
		Preload("Property").
		Preload("Lead")

	if stage := c.Query("stage"); stage != "" {
		query = query.Where("stage = ?", stage)
	}
	if agentID := c.Query("agent_id"); agentID != "" {
		query = query.Where("agent_id = ?", agentID)
	}

	var transactions []model.Transaction
	if err := query.Order("created_at desc").Find(&transactions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch transactions",
		})
	}

	return c.JSON(transactions)
}

// UpdateTransactionStage moves a deal through the pipeline. Closing a
// deal stamps closed_at and marks the listing sold.
func UpdateTransactionStage(c *fiber.Ctx) error {
	id := c.Params("id")

	var tx model.Transaction
	if err := database.GetDB().First(&tx, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Transaction not found",
		})
	}

	input := struct {
		Stage      string  `json:"stage"`
		SalePrice  float64 `json:"sale_price"`
		Commission float64 `json:"commission"`
		Notes      string  `json:"notes"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	stage := model.TransactionStage(input.Stage)
	switch stage {
	case model.TransactionPending, model.TransactionUnderContract,
		model.TransactionClosed, model.TransactionFellThrough:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid stage value",
		})
	}

	updates := map[string]interface{}{"stage": stage}
	if input.SalePrice > 0 {
		updates["sale_price"] = input.SalePrice
	}
	if input.Commission > 0 {
		updates["commission"] = input.Commission
	}
	if input.Notes != "" {
		updates["notes"] = input.Notes
	}
	if stage == model.TransactionClosed && tx.ClosedAt == nil {
		now := time.Now()
		updates["closed_at"] = &now
	}

	if err := database.GetDB().Model(&tx).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update transaction",
		})
	}

	if stage == model.TransactionClosed {
		database.GetDB().Model(&model.Property{}).
			Where("id = ?", tx.PropertyID).
			Update("status", model.PropertyStatusSold)
	}

	return c.JSON(tx)
}
