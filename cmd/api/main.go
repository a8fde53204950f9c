package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	"sokoni/internal/adapter/api"
	"sokoni/internal/adapter/api/handler"
	"sokoni/internal/adapter/api/middleware"
	"sokoni/internal/adapter/api/router"
	"sokoni/internal/adapter/repository"
	infraFirebase "sokoni/internal/infrastructure/firebase"
	"sokoni/internal/infrastructure/ratelimit"
	"sokoni/internal/infrastructure/storage"
	ws "sokoni/internal/infrastructure/websocket"
	"sokoni/internal/usecase"
	"sokoni/pkg/config"
	"sokoni/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config: %v", err)
	}

	ctx := context.Background()

	var opts []option.ClientOption
	if credFile := config.CredentialsFile(); credFile != "" {
		opts = append(opts, option.WithCredentialsFile(credFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProject}, opts...)
	if err != nil {
		logger.Fatal("Failed to initialize Firebase app: %v", err)
	}

	fbAuth, err := app.Auth(ctx)
	if err != nil {
		logger.Fatal("Failed to initialize Firebase auth: %v", err)
	}
	authClient := infraFirebase.NewAuthClient(fbAuth, cfg.FirebaseAPIKey)

	firestoreClient, err := app.Firestore(ctx)
	if err != nil {
		logger.Fatal("Failed to initialize Firestore: %v", err)
	}
	defer firestoreClient.Close()

	gcsClient, err := storage.NewGCSClient(ctx, cfg.StorageBucket, config.CredentialsFile())
	if err != nil {
		logger.Fatal("Failed to initialize storage: %v", err)
	}
	defer gcsClient.Close()

	// Repositories
	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	listingRepo := repository.NewFirestoreListingRepository(firestoreClient)
	chatRepo := repository.NewFirestoreChatRepository(firestoreClient)
	favoriteRepo := repository.NewFirestoreFavoriteRepository(firestoreClient)
	bookmarkRepo := repository.NewFirestoreBookmarkRepository(firestoreClient)
	savedSearchRepo := repository.NewFirestoreSavedSearchRepository(firestoreClient)
	verificationRepo := repository.NewFirestoreVerificationRepository(firestoreClient)
	notificationRepo := repository.NewFirestoreNotificationRepository(firestoreClient)
	fileRepo := repository.NewFirestoreFileMetadataRepository(firestoreClient)

	// Realtime + rate limiting
	wsManager := ws.NewManager()
	go wsManager.Run(ctx)

	rateLimiter := ratelimit.NewRateLimiter(0.5, 10)
	rateLimiter.StartCleanupRoutine(ctx, 10*time.Minute, time.Hour)

	// Use cases
	notificationUC := usecase.NewNotificationUseCase(notificationRepo, wsManager)
	authUC := usecase.NewAuthUseCase(authClient, userRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	listingUC := usecase.NewListingUseCase(listingRepo, userRepo, savedSearchRepo)
	suggestUC := usecase.NewSuggestUseCase(listingRepo)
	postingUC := usecase.NewPostingUseCase(listingRepo, fileRepo, savedSearchRepo, gcsClient, notificationUC)
	chatUC := usecase.NewChatUseCase(chatRepo, listingRepo, userRepo, wsManager, rateLimiter, notificationUC)
	favoriteUC := usecase.NewFavoriteUseCase(favoriteRepo, listingRepo)
	bookmarkUC := usecase.NewBookmarkUseCase(bookmarkRepo, listingRepo)
	savedSearchUC := usecase.NewSavedSearchUseCase(savedSearchRepo)
	verificationUC := usecase.NewVerificationUseCase(verificationRepo, userRepo, gcsClient, notificationUC)

	wsManager.SetAuthorizer(chatUC)

	// HTTP server
	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: strings.Split(cfg.AllowedOrigins, ","),
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.PATCH, echo.DELETE},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(echomiddleware.BodyLimit(fmt.Sprintf("%dM", cfg.MaxUploadSizeMB*10)))

	handler.Setup(
		authUC,
		userUC,
		listingUC,
		suggestUC,
		postingUC,
		favoriteUC,
		bookmarkUC,
		savedSearchUC,
		verificationUC,
		notificationUC,
	)
	handler.SetupFileHandler(gcsClient, fileRepo)

	authMW := middleware.NewAuthMiddleware(authClient)
	adminMW := middleware.NewAdminMiddleware(userRepo)
	chatHandler := handler.NewChatHandler(chatUC)
	wsHandler := handler.NewWebSocketHandler(wsManager, authClient)

	router.Setup(e, authMW, adminMW, chatHandler, wsHandler)

	logger.Info("Starting server on port %s (%s)", cfg.ServerPort, cfg.Environment)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		logger.Fatal("Server stopped: %v", err)
	}
}
