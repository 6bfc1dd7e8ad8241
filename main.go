package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"language-exchange-backend/config"
	"language-exchange-backend/controllers"
	"language-exchange-backend/middleware"
	"language-exchange-backend/routes"
	"language-exchange-backend/services"
	"language-exchange-backend/storage"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := config.LoadConfig()

	db, err := config.ConnectDB(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to MongoDB")
	}

	streamService, err := services.NewStreamService(cfg.StreamAPIKey, cfg.StreamAPISecret)
	if err != nil {
		logrus.WithError(err).Fatal("failed to initialize chat provider client")
	}

	storageProvider, err := storage.NewProvider(cfg.StorageProvider, cfg.PublicBaseURL, cfg.CloudinaryURL)
	if err != nil {
		logrus.WithError(err).Fatal("failed to initialize storage provider")
	}

	// --- Services ---
	userService := services.NewUserService(db, streamService, cfg.JWTSecret, time.Duration(cfg.JWTExpirationHours)*time.Hour)
	friendService := services.NewFriendService(db)

	// --- Controllers ---
	authController := controllers.NewAuthController(userService, cfg.Env == "production")
	userController := controllers.NewUserController(userService, storageProvider)
	friendController := controllers.NewFriendController(friendService)
	chatController := controllers.NewChatController(userService, streamService)

	router := gin.New()
	router.Use(middleware.RequestLogger(logrus.StandardLogger()), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRouter(router, routes.Controllers{
		Auth:   authController,
		User:   userController,
		Friend: friendController,
		Chat:   chatController,
	}, middleware.AuthMiddleware(cfg.JWTSecret))

	// Serve local uploads only when the local storage provider is active.
	if cfg.UsesLocalStorage() {
		router.Static("/uploads", "./uploads")
	}
	router.MaxMultipartMemory = 8 << 20 // 8MB

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: router,
	}

	go func() {
		logrus.WithField("port", cfg.AppPort).Info("server is running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("server shutdown failed")
	}
	if err := db.Client().Disconnect(ctx); err != nil {
		logrus.WithError(err).Error("MongoDB disconnect failed")
	}
}
