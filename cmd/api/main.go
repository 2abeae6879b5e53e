package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	"streambay/internal/adapter/api"
	"streambay/internal/adapter/api/handler"
	"streambay/internal/adapter/api/router"
	"streambay/internal/adapter/repository"
	domainrepo "streambay/internal/domain/repository"
	"streambay/internal/domain/service"
	"streambay/internal/usecase"
	"streambay/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	streamService := service.NewStreamChatService(cfg.StreamAPIKey, cfg.StreamAPISecret)
	zendeskService := service.NewZendeskService(cfg.ZendeskSubdomain, cfg.ZendeskEmail, cfg.ZendeskAPIToken)

	if !streamService.Configured() {
		log.Printf("Stream Chat credentials not set; chat endpoints will report a configuration error")
	}
	if !zendeskService.Configured() {
		log.Printf("Zendesk credentials not set; ticket endpoints will report a configuration error")
	}

	// The comment-origin store is optional. Without it the relay falls back to
	// the body-prefix attribution convention.
	var originRepo domainrepo.CommentOriginRepository
	if cfg.FirebaseProject != "" {
		var opts []option.ClientOption
		if serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); serviceAccountJSON != "" {
			opts = append(opts, option.WithCredentialsJSON([]byte(serviceAccountJSON)))
		} else if serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH"); serviceAccountPath != "" {
			opts = append(opts, option.WithCredentialsFile(serviceAccountPath))
		}

		firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
		if err != nil {
			log.Fatalf("Failed to create Firestore client: %v", err)
		}
		defer firestoreClient.Close()

		originRepo = repository.NewFirestoreCommentOriginRepository(firestoreClient)
		log.Printf("Comment-origin store enabled for project %s", cfg.FirebaseProject)
	}

	tokenUseCase := usecase.NewTokenUseCase(streamService)
	channelUseCase := usecase.NewChannelUseCase(streamService)
	escalationUseCase := usecase.NewEscalationUseCase(streamService, zendeskService, cfg.SupportAgentID)
	supportUseCase := usecase.NewSupportTicketUseCase(zendeskService, originRepo)
	webhookUseCase := usecase.NewWebhookUseCase(streamService, cfg.ZendeskWebhookSecret, cfg.SupportAgentID)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	tokenHandler := handler.NewTokenHandler(tokenUseCase)
	channelHandler := handler.NewChannelHandler(channelUseCase)
	escalationHandler := handler.NewEscalationHandler(escalationUseCase)
	ticketHandler := handler.NewTicketHandler(supportUseCase)
	webhookHandler := handler.NewWebhookHandler(webhookUseCase)

	router.Setup(e, tokenHandler, channelHandler, escalationHandler, ticketHandler, webhookHandler)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
