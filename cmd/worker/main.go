package main

import (
	"log"

	"bluekey_backend/pkg/config"
	"bluekey_backend/pkg/database"
	"bluekey_backend/pkg/email"
	"bluekey_backend/pkg/queue"
)

// The worker process drains the campaign email queue so bulk sends never
// run inside an HTTP request.
func main() {
	cfg := config.Load()

	if err := email.InitEmailService(cfg.Resend.APIKey, cfg.Resend.From); err != nil {
		log.Fatal("Could not initialize email service:", err)
	}

	if cfg.Database.URL == "" {
		log.Fatal("DATABASE_URL is not set in .env")
	}
	database.InitDB(cfg.Database.URL)

	rmq, err := queue.NewRabbitMQ(cfg.Queue.User, cfg.Queue.Pass, cfg.Queue.Host, cfg.Queue.Port)
	if err != nil {
		log.Fatal("Could not connect to RabbitMQ:", err)
	}
	defer rmq.Close()

	worker := queue.NewWorker(rmq.Ch, email.GlobalEmailService, database.GetDB())
	worker.Start(queue.QueueName)
}
