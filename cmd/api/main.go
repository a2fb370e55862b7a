package main

import (
	"log"
	"os"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bluekey_backend/internal/controller"
	"bluekey_backend/internal/event"
	"bluekey_backend/internal/lead"
	"bluekey_backend/internal/middleware"
	"bluekey_backend/internal/model"
	"bluekey_backend/pkg/config"
	"bluekey_backend/pkg/cron"
	"bluekey_backend/pkg/database"
	"bluekey_backend/pkg/email"
	"bluekey_backend/pkg/queue"
	"bluekey_backend/pkg/seed"
	"bluekey_backend/pkg/utils/jwt"
	"bluekey_backend/pkg/utils/storage"
)

func setupRoutes(app *fiber.App) {
	app.Get("/health", controller.HealthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/login", controller.Login)

	// Public site: listings and neighborhood guides
	api.Get("/properties", controller.ListProperties)
	api.Get("/properties/:slug", controller.GetPropertyBySlug)
	api.Get("/neighborhoods", controller.ListNeighborhoods)
	api.Get("/neighborhoods/:slug", controller.GetNeighborhoodBySlug)

	// Public lead capture forms
	api.Post("/leads", controller.CaptureLead)
	api.Post("/leads/callback", controller.CaptureCallbackRequest)
	api.Post("/leads/valuation", controller.CaptureValuationRequest)

	// Protected routes
	protected := api.Group("/", middleware.AuthMiddleware())
	protected.Get("/me", controller.GetMe)

	// Staff management
	staff := protected.Group("/staff")
	staff.Get("/", controller.ListStaff)
	staff.Post("/", middleware.RequireRole(model.RoleAdmin), controller.RegisterStaff)
	staff.Put("/:id/deactivate", middleware.RequireRole(model.RoleAdmin), controller.DeactivateStaff)

	// Settings routes
	settings := api.Group("/settings", middleware.AuthMiddleware())
	settings.Get("/profile", controller.GetProfile)
	settings.Put("/profile", controller.UpdateProfile)
	settings.Post("/avatar", controller.UploadAvatar)

	// Protected lead routes
	leads := protected.Group("/leads")
	leads.Post("/", controller.QuickAddLead)
	leads.Get("/", controller.GetLeads)
	leads.Get("/presets/follow-up", controller.GetFollowUpPresets)
	leads.Get("/:id", controller.GetLead)
	leads.Put("/:id/status", controller.UpdateLeadStatus)
	leads.Put("/:id/assign", controller.AssignLead)
	leads.Post("/:id/notes", controller.AddLeadNote)
	leads.Post("/:id/follow-ups", controller.ScheduleLeadFollowUp)

	// Protected listing management
	properties := protected.Group("/properties")
	properties.Get("/", controller.ListAllProperties)
	properties.Post("/", controller.CreateProperty)
	properties.Put("/:id", controller.UpdateProperty)
	properties.Delete("/:id", controller.DeleteProperty)
	properties.Post("/:property_id/images", controller.UploadPropertyImage)
	properties.Delete("/images/:image_id", controller.DeletePropertyImage)

	// Neighborhood guide management
	neighborhoods := protected.Group("/neighborhoods", middleware.RequireRole(model.RoleAdmin))
	neighborhoods.Post("/", controller.CreateNeighborhood)
	neighborhoods.Put("/:id", controller.UpdateNeighborhood)
	neighborhoods.Delete("/:id", controller.DeleteNeighborhood)

	// Showings
	showings := protected.Group("/showings")
	showings.Get("/", controller.ListShowings)
	showings.Post("/", controller.CreateShowing)
	showings.Put("/:id/status", controller.UpdateShowingStatus)

	// Tasks
	tasks := protected.Group("/tasks")
	tasks.Get("/", controller.ListTasks)
	tasks.Post("/", controller.CreateTask)
	tasks.Put("/:id/complete", controller.CompleteTask)
	tasks.Delete("/:id", controller.DeleteTask)

	// Transactions
	transactions := protected.Group("/transactions")
	transactions.Get("/", controller.ListTransactions)
	transactions.Post("/", controller.CreateTransaction)
	transactions.Put("/:id/stage", controller.UpdateTransactionStage)

	// Trainings
	trainings := protected.Group("/trainings")
	trainings.Get("/", controller.ListTrainings)
	trainings.Post("/", middleware.RequireRole(model.RoleAdmin), controller.CreateTraining)
	trainings.Put("/:id", middleware.RequireRole(model.RoleAdmin), controller.UpdateTraining)
	trainings.Delete("/:id", middleware.RequireRole(model.RoleAdmin), controller.DeleteTraining)

	// Email campaigns
	campaigns := protected.Group("/campaigns", middleware.RequireRole(model.RoleAdmin))
	campaigns.Get("/", controller.ListCampaigns)
	campaigns.Post("/", controller.CreateCampaign)
	campaigns.Get("/:id/stats", controller.GetCampaignStats)
	campaigns.Post("/:id/send", controller.SendCampaign)

	// Dashboard routes
	dashboard := api.Group("/dashboard", middleware.AuthMiddleware())
	dashboard.Get("/stats", controller.GetDashboardStats)
}

// wireNotifications routes captured leads to an agent inbox. New leads go
// to the assigned agent when one exists, otherwise to the shared inbox.
func wireNotifications(bus *event.Bus, inbox string) {
	bus.Subscribe(event.LeadCaptured, func(e event.Event) {
		if email.GlobalEmailService == nil || e.Lead == nil {
			return
		}

		to := inbox
		if e.Lead.Agent != nil && e.Lead.Agent.Email != "" {
			to = e.Lead.Agent.Email
		}
		if to == "" {
			return
		}

		err := email.GlobalEmailService.SendLeadNotificationEmail(to, email.LeadNotificationData{
			LeadName:    e.Lead.Name,
			LeadEmail:   e.Lead.Email,
			LeadPhone:   e.Lead.Phone,
			LeadMessage: e.Lead.Message,
			LeadSource:  e.Lead.LeadSource,
			Property:    e.Lead.PropertyAddress,
		})
		if err != nil {
			log.Printf("Could not send lead notification: %v", err)
		}
	})
}

func main() {
	cfg := config.Load()

	jwt.Init(cfg.JWT.Secret)

	if cfg.Resend.APIKey != "" {
		if err := email.InitEmailService(cfg.Resend.APIKey, cfg.Resend.From); err != nil {
			log.Fatal("Could not initialize email service:", err)
		}
	} else {
		log.Println("RESEND_API_KEY is not set, email notifications disabled")
	}

	if err := storage.InitStorage(cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
		log.Printf("Could not initialize storage, uploads disabled: %v", err)
	}

	if cfg.Database.URL == "" {
		log.Fatal("DATABASE_URL is not set in .env")
	}

	database.InitDB(cfg.Database.URL)
	err := database.MigrateDatabase(
		&model.StaffUser{},
		&model.Neighborhood{},
		&model.Property{},
		&model.PropertyImage{},
		&model.Lead{},
		&model.LeadActivity{},
		&model.Showing{},
		&model.Task{},
		&model.Transaction{},
		&model.EmailCampaign{},
		&model.CampaignRecipient{},
		&model.Training{},
	)
	if err != nil {
		log.Printf("Migration warning: %v", err)
	}

	seed.SeedAdminUser(database.GetDB(), os.Getenv("ADMIN_EMAIL"), os.Getenv("ADMIN_PASSWORD"))
	seed.SeedNeighborhoods(database.GetDB())
	seed.SeedTrainings(database.GetDB())

	bus := event.NewBus()
	defer bus.Stop()
	wireNotifications(bus, os.Getenv("LEADS_INBOX_EMAIL"))

	leadService := lead.NewService(lead.NewGormStore(database.GetDB()))
	controller.InitLeadController(leadService, bus)

	rmq, err := queue.NewRabbitMQ(cfg.Queue.User, cfg.Queue.Pass, cfg.Queue.Host, cfg.Queue.Port)
	if err != nil {
		log.Printf("Could not connect to RabbitMQ, campaign sending disabled: %v", err)
	} else {
		defer rmq.Close()
		controller.InitCampaignController(queue.NewProducer(rmq.Ch))
	}

	cron.InitFollowUpCron()
	cron.InitLeadDigestCron()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New())
	app.Use(middleware.Metrics())

	setupRoutes(app)

	log.Printf("Server is running on port %s", cfg.Server.Port)
	log.Fatal(app.Listen(":" + cfg.Server.Port))
}
