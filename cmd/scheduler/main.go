package main

import (
	"log"
	"os"

	"control-tower-api/tasks"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "127.0.0.1:6379"
	}

	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddr},
		&asynq.SchedulerOpts{},
	)

	task, err := tasks.NewScanArticlesTask()
	if err != nil {
		log.Fatalf("could not create task: %v", err)
	}

	// Pick up fresh portal articles every 10 minutes
	if _, err := scheduler.Register("@every 10m", task); err != nil {
		log.Fatalf("could not register task: %v", err)
	}

	log.Println("Scheduler starting")
	if err := scheduler.Run(); err != nil {
		log.Fatalf("could not run scheduler: %v", err)
	}
}
