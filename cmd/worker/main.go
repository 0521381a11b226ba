package main

import (
	"log"
	"os"

	"control-tower-api/config"
	"control-tower-api/mediaengine"
	"control-tower-api/repositories"
	"control-tower-api/services"
	"control-tower-api/tasks"
	"control-tower-api/worker"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	db := config.InitDB()

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "127.0.0.1:6379"
	}

	client := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	defer client.Close()

	articleRepo := repositories.NewArticleRepository(db)
	videoRepo := repositories.NewVideoRepository(db)
	videoLogRepo := repositories.NewVideoLogRepository(db)

	pipelineService := services.NewPipelineService(videoRepo, videoLogRepo, articleRepo, client)

	engine := mediaengine.NewClient(
		os.Getenv("MEDIA_ENGINE_URL"),
		os.Getenv("MEDIA_ENGINE_API_KEY"),
	)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			// Script generation and rendering are heavy on the media
			// engine, keep the worker modest.
			Concurrency: 2,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	taskHandler := worker.NewTaskHandler(pipelineService, articleRepo, engine, engine)

	mux.HandleFunc(tasks.TypeGenerateScript, taskHandler.HandleGenerateScriptTask)
	mux.HandleFunc(tasks.TypeRenderVideo, taskHandler.HandleRenderVideoTask)
	mux.HandleFunc(tasks.TypeScanArticles, taskHandler.HandleScanArticlesTask)

	log.Println("Worker starting")
	if err := srv.Run(mux); err != nil {
		log.Fatalf("could not run server: %v", err)
	}
}
