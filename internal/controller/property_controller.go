package controller

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bluekey_backend/internal/model"
	"bluekey_backend/pkg/database"
	"bluekey_backend/pkg/utils/jwt"
	"bluekey_backend/pkg/utils/storage"
)

const MaxPropertyImages = 16

type PropertyInput struct {
	Title       string               `json:"title" validate:"required"`
	Type        model.PropertyType   `json:"type" validate:"required"`
	Status      model.PropertyStatus `json:"status" validate:"required"`
	Price       float64              `json:"price" validate:"required"`
	Description string               `json:"description"`

	NeighborhoodID *uint `json:"neighborhood_id"`

	// Location fields
	StreetAddress string `json:"street_address" validate:"required"`
	City          string `json:"city" validate:"required"`
	State         string `json:"state" validate:"required"`
	ZipCode       string `json:"zip_code"`

	// Feature fields
	Bedrooms     int  `json:"bedrooms"`
	Bathrooms    int  `json:"bathrooms"`
	GarageSpaces int  `json:"garage_spaces"`
	AreaSqFt     int  `json:"area_sq_ft"`
	YearBuilt    int  `json:"year_built"`
	SwimmingPool bool `json:"swimming_pool"`
	Garden       bool `json:"garden"`
}

// CreateProperty creates a new listing owned by the calling agent.
func CreateProperty(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)
	input := new(PropertyInput)

	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if input.Title == "" || input.StreetAddress == "" || input.City == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title, street address and city are required",
		})
	}

	property := model.Property{
		AgentID:        claims.UserID,
		Title:          input.Title,
		Description:    input.Description,
		Price:          input.Price,
		Type:           input.Type,
		Status:         input.Status,
		NeighborhoodID: input.NeighborhoodID,
		StreetAddress:  input.StreetAddress,
		City:           input.City,
		State:          input.State,
		ZipCode:        input.ZipCode,
		Bedrooms:       input.Bedrooms,
		Bathrooms:      input.Bathrooms,
		GarageSpaces:   input.GarageSpaces,
		AreaSqFt:       input.AreaSqFt,
		YearBuilt:      input.YearBuilt,
		SwimmingPool:   input.SwimmingPool,
		Garden:         input.Garden,
	}

	if err := database.GetDB().Create(&property).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create property",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(property)
}

// UpdateProperty updates an existing listing.
func UpdateProperty(c *fiber.Ctx) error {
	id := c.Params("id")
	input := new(PropertyInput)

	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	var property model.Property
	if err := database.GetDB().First(&property, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Property not found",
		})
	}

	property.Title = input.Title
	property.Type = input.Type
	property.Status = input.Status
	property.Price = input.Price
	property.Description = input.Description
	property.NeighborhoodID = input.NeighborhoodID
	property.StreetAddress = input.StreetAddress
	property.City = input.City
	property.State = input.State
	property.ZipCode = input.ZipCode
	property.Bedrooms = input.Bedrooms
	property.Bathrooms = input.Bathrooms
	property.GarageSpaces = input.GarageSpaces
	property.AreaSqFt = input.AreaSqFt
	property.YearBuilt = input.YearBuilt
	property.SwimmingPool = input.SwimmingPool
	property.Garden = input.Garden

	if err := database.GetDB().Save(&property).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update property",
		})
	}

	database.GetDB().Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("property_images.order ASC")
	}).First(&property, property.ID)

	return c.JSON(property)
}

// ListProperties lists active public listings with optional filters.
func ListProperties(c *fiber.Ctx) error {
	query := database.GetDB().Model(&model.Property{}).
		Where("status IN ?", []model.PropertyStatus{
			model.PropertyStatusForSale,
			model.PropertyStatusForRent,
			model.PropertyStatusUnderContract,
		}).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("property_images.order ASC")
		}).
		Preload("Neighborhood")

	if pType := c.Query("type"); pType != "" {
		query = query.Where("type = ?", pType)
	}
	if city := c.Query("city"); city != "" {
		query = query.Where("city = ?", city)
	}
	if neighborhood := c.Query("neighborhood_id"); neighborhood != "" {
		query = query.Where("neighborhood_id = ?", neighborhood)
	}
	if minPrice := c.Query("min_price"); minPrice != "" {
		query = query.Where("price >= ?", minPrice)
	}
	if maxPrice := c.Query("max_price"); maxPrice != "" {
		query = query.Where("price <= ?", maxPrice)
	}
	if beds := c.Query("min_beds"); beds != "" {
		query = query.Where("bedrooms >= ?", beds)
	}

	var properties []model.Property
	if err := query.Order("created_at desc").Find(&properties).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch properties",
		})
	}

	return c.JSON(properties)
}

// GetPropertyBySlug returns one public listing.
func GetPropertyBySlug(c *fiber.Ctx) error {
	propertySlug := c.Params("slug")

	var property model.Property
	if err := database.GetDB().Where("slug = ?", propertySlug).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("property_images.order ASC")
		}).
		Preload("Neighborhood").
		Preload("Agent").
		First(&property).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Property not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch property",
		})
	}

	return c.JSON(fiber.Map{
		"property": property,
		"agent":    property.Agent.GetPublicProfile(),
	})
}

// ListAllProperties lists every listing for the admin panel.
func ListAllProperties(c *fiber.Ctx) error {
	var properties []model.Property
	if err := database.GetDB().
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("property_images.order ASC")
		}).
		Order("created_at desc").
		Find(&properties).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch properties",
		})
	}

	return c.JSON(properties)
}

// DeleteProperty removes a listing.
func DeleteProperty(c *fiber.Ctx) error {
	id := c.Params("id")

	var property model.Property
	if err := database.GetDB().First(&property, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Property not found",
		})
	}

	if err := database.GetDB().Delete(&property).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete property",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// UploadPropertyImage uploads a listing photo to S3.
func UploadPropertyImage(c *fiber.Ctx) error {
	propertyIDStr := c.Params("property_id")
	propertyID, err := strconv.ParseUint(propertyIDStr, 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid property ID",
		})
	}

	var property model.Property
	if err := database.GetDB().First(&property, propertyID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Property not found",
		})
	}

	var imageCount int64
	database.GetDB().Model(&model.PropertyImage{}).
		Where("property_id = ?", propertyID).
		Count(&imageCount)

	if imageCount >= MaxPropertyImages {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Maximum image limit reached",
		})
	}

	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded",
		})
	}

	url, err := storage.UploadPropertyImage(file, uint(propertyID))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	image := model.PropertyImage{
		PropertyID: uint(propertyID),
		URL:        url,
		IsCover:    imageCount == 0,
		Order:      int(imageCount),
	}

	if err := database.GetDB().Create(&image).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save image",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(image)
}

// DeletePropertyImage removes a listing photo from S3 and the database.
func DeletePropertyImage(c *fiber.Ctx) error {
	imageID := c.Params("image_id")

	var image model.PropertyImage
	if err := database.GetDB().First(&image, imageID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Image not found",
		})
	}

	if err := storage.DeleteImage(image.URL); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete image from storage",
		})
	}

	if err := database.GetDB().Delete(&image).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete image",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
