package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	natsadapter "github.com/eliteassociate/realty-service/internal/adapter/messaging/nats"
	"github.com/eliteassociate/realty-service/internal/adapter/storage/s3"
	"github.com/eliteassociate/realty-service/internal/auth"
	"github.com/eliteassociate/realty-service/internal/config"
	"github.com/eliteassociate/realty-service/internal/handler"
	"github.com/eliteassociate/realty-service/internal/mailer"
	"github.com/eliteassociate/realty-service/internal/repository"
	"github.com/eliteassociate/realty-service/internal/repository/cache"
	"github.com/eliteassociate/realty-service/internal/router"
	"github.com/eliteassociate/realty-service/internal/usecase"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logger.Error("Failed to disconnect MongoDB", zap.Error(err))
		}
	}()
	if err := mongoClient.Ping(ctx, nil); err != nil {
		logger.Fatal("Failed to ping MongoDB", zap.Error(err))
	}
	db := mongoClient.Database(cfg.MongoDatabase)

	userRepo := repository.NewUserRepository(db, logger)
	profileRepo := repository.NewProfileRepository(db, logger)
	propertyRepo := repository.NewPropertyRepository(db, logger)
	contactRepo := repository.NewContactRepository(db, logger)
	meetingRepo := repository.NewMeetingRepository(db, logger)

	// Optional collaborators. The service runs degraded without them.
	var propertyCache usecase.PropertyCacher
	if redisCache, err := cache.NewPropertyCache(cfg.RedisAddr); err != nil {
		logger.Warn("Redis unavailable, property cache disabled", zap.Error(err))
	} else {
		propertyCache = redisCache
		defer redisCache.Close()
	}

	var events usecase.EventPublisher
	if publisher, err := natsadapter.NewPublisher(cfg.NATSURL); err != nil {
		logger.Warn("NATS unavailable, domain events disabled", zap.Error(err))
	} else {
		events = publisher
		defer publisher.Close()
	}

	storage, err := s3.NewStorage(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to object storage", zap.Error(err))
	}

	smtpMailer := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom, "Elite Properties", logger)

	tokens := auth.NewIssuer(cfg.JWTSecret, time.Duration(cfg.JWTExpireDays)*24*time.Hour)

	authUC := usecase.NewAuthUsecase(userRepo, profileRepo, smtpMailer, tokens, logger)
	profileUC := usecase.NewProfileUsecase(profileRepo, logger)
	propertyUC := usecase.NewPropertyUsecase(propertyRepo, storage, propertyCache, events, logger)
	contactUC := usecase.NewContactUsecase(contactRepo, propertyRepo, logger)
	meetingUC := usecase.NewMeetingUsecase(meetingRepo, logger)
	adminUC := usecase.NewAdminUsecase(userRepo, profileRepo, propertyRepo, storage, events, logger)

	if err := authUC.SeedAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		logger.Fatal("Failed to seed admin account", zap.Error(err))
	}

	mux := router.New(router.Handlers{
		Auth:     handler.NewAuthHandler(authUC, logger),
		Profile:  handler.NewProfileHandler(profileUC, logger),
		Property: handler.NewPropertyHandler(propertyUC, logger),
		Contact:  handler.NewContactHandler(contactUC, meetingUC, logger),
		Admin:    handler.NewAdminHandler(adminUC, contactUC, meetingUC, logger),
	}, tokens, userRepo, logger)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("Server starting", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}
