package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"bluekey_backend/internal/model"
	"bluekey_backend/pkg/database"
)

type NeighborhoodInput struct {
	Name        string         `json:"name" validate:"required"`
	City        string         `json:"city" validate:"required"`
	State       string         `json:"state" validate:"required"`
	Description string         `json:"description"`
	HeroImage   string         `json:"hero_image"`
	Highlights  datatypes.JSON `json:"highlights"`
}

// ListNeighborhoods returns the public neighborhood guides.
func ListNeighborhoods(c *fiber.Ctx) error {
	query := database.GetDB().Model(&model.Neighborhood{})

	if city := c.Query("city"); city != "" {
		query = query.Where("city = ?", city)
	}

	var neighborhoods []model.Neighborhood
	if err := query.Order("name asc").Find(&neighborhoods).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch neighborhoods",
		})
	}

	return c.JSON(neighborhoods)
}

// GetNeighborhoodBySlug returns one guide with its active listings.
func GetNeighborhoodBySlug(c *fiber.Ctx) error {
	neighborhoodSlug := c.Params("slug")

	var neighborhood model.Neighborhood
	if err := database.GetDB().Where("slug = ?", neighborhoodSlug).
		First(&neighborhood).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Neighborhood not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch neighborhood",
		})
	}

	var properties []model.Property
	database.GetDB().
		Where("neighborhood_id = ? AND status IN ?", neighborhood.ID, []model.PropertyStatus{
			model.PropertyStatusForSale,
			model.PropertyStatusForRent,
		}).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("property_images.order ASC")
		}).
		Order("created_at desc").
		Find(&properties)

	return c.JSON(fiber.Map{
		"neighborhood": neighborhood,
		"properties":   properties,
	})
}

// CreateNeighborhood adds a guide page.
func CreateNeighborhood(c *fiber.Ctx) error {
	input := new(NeighborhoodInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if input.Name == "" || input.City == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name and city are required",
		})
	}

	neighborhood := model.Neighborhood{
		Name:        input.Name,
		City:        input.City,
		State:       input.State,
		Description: input.Description,
		HeroImage:   input.HeroImage,
		Highlights:  input.Highlights,
	}

	if err := database.GetDB().Create(&neighborhood).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create neighborhood",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(neighborhood)
}

// UpdateNeighborhood updates a guide page.
func UpdateNeighborhood(c *fiber.Ctx) error {
	id := c.Params("id")

	input := new(NeighborhoodInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	var neighborhood model.Neighborhood
	if err := database.GetDB().First(&neighborhood, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Neighborhood not found",
		})
	}

	neighborhood.Name = input.Name
	neighborhood.City = input.City
	neighborhood.State = input.State
	neighborhood.Description = input.Description
	neighborhood.HeroImage = input.HeroImage
	if input.Highlights != nil {
		neighborhood.Highlights = input.Highlights
	}

	if err := database.GetDB().Save(&neighborhood).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update neighborhood",
		})
	}

	return c.JSON(neighborhood)
}

// DeleteNeighborhood removes a guide page; listings keep their rows.
func DeleteNeighborhood(c *fiber.Ctx) error {
	id := c.Params("id")

	var neighborhood model.Neighborhood
	if err := database.GetDB().First(&neighborhood, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Neighborhood not found",
		})
	}

	if err := database.GetDB().Delete(&neighborhood).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete neighborhood",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
