package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"bluekey_backend/internal/model"
	"bluekey_backend/pkg/database"
	"bluekey_backend/pkg/utils/jwt"
)

type TaskInput struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	AssigneeID  *uint      `json:"assignee_id"`
	LeadID      *uint      `json:"lead_id"`
	DueAt       *time.Time `json:"due_at"`
}

// CreateTask creates a to-do item, defaulting the assignee to the caller.
func CreateTask(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	input := new(TaskInput)
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

	assignee := input.AssigneeID
	if assignee == nil {
		assignee = &claims.UserID
	}

	task := model.Task{
		Title:       input.Title,
		Description: input.Description,
		AssigneeID:  assignee,
		LeadID:      input.LeadID,
		DueAt:       input.DueAt,
	}

	if err := database.GetDB().Create(&task).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create task",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(task)
}

// ListTasks lists tasks, optionally filtered by assignee, lead or
// completion state.
func ListTasks(c *fiber.Ctx) error {
	query := database.GetDB().Model(&model.Task{}).Preload("Lead")

	if assignee := c.Query("assignee_id"); assignee != "" {
		query = query.Where("assignee_id = ?", assignee)
	}
	if leadID := c.Query("lead_id"); leadID != "" {
		query = query.Where("lead_id = ?", leadID)
	}
	if done := c.Query("done"); done != "" {
		query = query.Where("done = ?", done == "true")
	}
	if overdue := c.Query("overdue"); overdue == "true" {
		query = query.Where("done = ? AND due_at < ?", false, time.Now())
	}

	var tasks []model.Task
	if err := query.Order("due_at asc nulls last, created_at desc").
		Find(&tasks).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch tasks",
		})
	}

	return c.JSON(tasks)
}

// CompleteTask marks a task done and stamps the completion time.
func CompleteTask(c *fiber.Ctx) error {
	id := c.Params("id")

	var task model.Task
	if err := database.GetDB().First(&task, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Task not found",
		})
	}

	now := time.Now()
	updates := map[string]interface{}{
		"done":         true,
		"completed_at": &now,
	}

	if err := database.GetDB().Model(&task).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update task",
		})
	}

	return c.JSON(task)
}

// DeleteTask removes a task.
func DeleteTask(c *fiber.Ctx) error {
	id := c.Params("id")

	var task model.Task
	if err := database.GetDB().First(&task, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Task not found",
		})
	}

	if err := database.GetDB().Delete(&task).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete task",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
