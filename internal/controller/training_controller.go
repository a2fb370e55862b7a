package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"

	"bluekey_backend/internal/model"
	"bluekey_backend/pkg/database"
)

type TrainingInput struct {
	Title       string         `json:"title" validate:"required"`
	Category    string         `json:"category"`
	Description string         `json:"description"`
	VideoURL    string         `json:"video_url"`
	DurationMin int            `json:"duration_min"`
	Resources   datatypes.JSON `json:"resources"`
}

// ListTrainings lists onboarding material for the staff panel.
func ListTrainings(c *fiber.Ctx) error {
	query := database.GetDB().Model(&model.Training{})

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var trainings []model.Training
	if err := query.Order("category asc, created_at asc").
		Find(&trainings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch trainings",
		})
	}

	return c.JSON(trainings)
}

// CreateTraining adds a training entry. Admin only.
func CreateTraining(c *fiber.Ctx) error {
	input := new(TrainingInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if input.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title is required",
		})
	}

	training := model.Training{
		Title:       input.Title,
		Category:    input.Category,
		Description: input.Description,
		VideoURL:    input.VideoURL,
		DurationMin: input.DurationMin,
		Resources:   input.Resources,
	}

	if err := database.GetDB().Create(&training).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create training",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(training)
}

// UpdateTraining updates a training entry. Admin only.
func UpdateTraining(c *fiber.Ctx) error {
	id := c.Params("id")

	input := new(TrainingInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	var training model.Training
	if err := database.GetDB().First(&training, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Training not found",
		})
	}

	training.Title = input.Title
	training.Category = input.Category
	training.Description = input.Description
	training.VideoURL = input.VideoURL
	training.DurationMin = input.DurationMin
	if input.Resources != nil {
		training.Resources = input.Resources
	}

	if err := database.GetDB().Save(&training).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update training",
		})
	}

	return c.JSON(training)
}

// DeleteTraining removes a training entry. Admin only.
func DeleteTraining(c *fiber.Ctx) error {
	id := c.Params("id")

	var training model.Training
	if err := database.GetDB().First(&training, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Training not found",
		})
	}

	if err := database.GetDB().Delete(&training).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete training",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
