package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campdir/internal/api"
	"campdir/internal/app/service"
	"campdir/internal/app/worker"
	"campdir/internal/common/security"
	"campdir/internal/domain/repository"
	"campdir/internal/platform/config"
	"campdir/internal/platform/database"
	"campdir/internal/platform/geocoder"
	"campdir/internal/platform/mailer"
	"campdir/internal/platform/queue"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize JWT
	security.InitJWT()
	fmt.Println("JWT initialized.")

	// 3. Initialize Database
	database.Connect()
	defer database.Close()
	if err := database.EnsureIndexes(context.Background()); err != nil {
		log.Fatalf("Could not create indexes: %v", err)
	}
	fmt.Println("Database connected.")

	// 4. Initialize Redis
	queue.ConnectRedis()
	defer queue.CloseRedis()
	fmt.Println("Redis connected.")

	// 5. Initialize Repositories
	userRepo := repository.NewMongoUserRepository(database.DB)
	bootcampRepo := repository.NewMongoBootcampRepository(database.DB)
	courseRepo := repository.NewMongoCourseRepository(database.DB)

	// 6. Initialize Collaborators & Services
	geocodeClient := geocoder.New(config.AppConfig.GeocoderURL, config.AppConfig.GeocoderAPIKey)
	mailClient := mailer.New(
		config.AppConfig.MailAPIURL,
		config.AppConfig.MailAPIKey,
		config.AppConfig.MailFromEmail,
		config.AppConfig.MailFromName,
	)
	mailQueue := queue.NewMailQueue(queue.RDB, config.AppConfig.MailQueueName)

	authService := service.NewAuthService(userRepo, mailQueue, config.AppConfig.PublicBaseURL)
	bootcampService := service.NewBootcampService(
		bootcampRepo, courseRepo, geocodeClient,
		config.AppConfig.UploadDir, config.AppConfig.MaxUploadBytes,
	)
	courseService := service.NewCourseService(courseRepo, bootcampRepo)

	// 7. Initialize Mail Worker (as a goroutine)
	mailWorker := worker.NewMailWorker(queue.RDB, mailClient, config.AppConfig.MailQueueName)
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	go mailWorker.Start(workerCtx)
	fmt.Println("Mail worker started.")

	// 8. Initialize Router & HTTP Server
	router := api.NewRouter(authService, bootcampService, courseService)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 9. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop

	log.Println("Shutting down server...")
	workerCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server and worker stopped gracefully.")
}
