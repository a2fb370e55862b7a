package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"bluekey_backend/internal/model"
	"bluekey_backend/pkg/database"
)

type statusCount struct {
	Status model.LeadStatus `json:"status"`
	Count  int64            `json:"count"`
}

type sourceCount struct {
	Source string `json:"source"`
	Count  int64  `json:"count"`
}

type dayCount struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

// GetDashboardStats returns the admin dashboard widgets: pipeline counts
// by status, lead sources, daily new leads over the last week, upcoming
// showings and open tasks.
func GetDashboardStats(c *fiber.Ctx) error {
	db := database.GetDB()

	var byStatus []statusCount
	if err := db.Model(&model.Lead{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&byStatus).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch lead stats",
		})
	}

	var bySource []sourceCount
	db.Model(&model.Lead{}).
		Select("lead_source as source, count(*) as count").
		Group("lead_source").
		Order("count desc").
		Scan(&bySource)

	weekAgo := time.Now().AddDate(0, 0, -7)
	var daily []dayCount
	db.Model(&model.Lead{}).
		Select("to_char(created_at, 'YYYY-MM-DD') as day, count(*) as count").
		Where("created_at >= ?", weekAgo).
		Group("day").
		Order("day asc").
		Scan(&daily)

	var upcomingShowings int64
	db.Model(&model.Showing{}).
		Where("scheduled_at >= ? AND status IN ?", time.Now(), []model.ShowingStatus{
			model.ShowingRequested,
			model.ShowingConfirmed,
		}).
		Count(&upcomingShowings)

	var openTasks int64
	db.Model(&model.Task{}).Where("done = ?", false).Count(&openTasks)

	var activeListings int64
	db.Model(&model.Property{}).
		Where("status IN ?", []model.PropertyStatus{
			model.PropertyStatusForSale,
			model.PropertyStatusForRent,
		}).
		Count(&activeListings)

	return c.JSON(fiber.Map{
		"leads_by_status":   byStatus,
		"leads_by_source":   bySource,
		"daily_new_leads":   daily,
		"upcoming_showings": upcomingShowings,
		"open_tasks":        openTasks,
		"active_listings":   activeListings,
	})
}
