package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/ovchar/wa_storefront/internal/config"
	"github.com/ovchar/wa_storefront/internal/events"
	"github.com/ovchar/wa_storefront/internal/httpserver"
	"github.com/ovchar/wa_storefront/internal/models"
	"github.com/ovchar/wa_storefront/internal/repo"
	"github.com/ovchar/wa_storefront/internal/search"
	"github.com/ovchar/wa_storefront/internal/service"
	"github.com/ovchar/wa_storefront/internal/storage"
	"github.com/ovchar/wa_storefront/pkg/db"
	"github.com/ovchar/wa_storefront/pkg/logging"
	authmw "github.com/ovchar/wa_storefront/pkg/middleware/auth"
	loggingmw "github.com/ovchar/wa_storefront/pkg/middleware/logging"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	config.MustNonEmpty(cfg.DATABASE_URL, "DATABASE_URL")
	config.MustNonEmpty(cfg.JWT_SECRET, "JWT_SECRET")
	config.MustNonEmpty(cfg.REFRESH_SECRET, "REFRESH_SECRET")

	logger := logging.New(cfg.LOG_LEVEL)

	database, err := db.Open(ctx, cfg.DATABASE_URL)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	if err := database.AutoMigrate(models.All()...); err != nil {
		log.Fatalf("db migration error: %v", err)
	}

	repository := repo.New(database)

	if err := repository.SeedSetting(ctx, models.Setting{
		SiteName: "Storefront",
		Currency: "USD",
	}); err != nil {
		log.Fatalf("settings seed error: %v", err)
	}

	authSvc := &service.AuthService{
		Repo:          repository,
		JWTSecret:     []byte(cfg.JWT_SECRET),
		RefreshSecret: []byte(cfg.REFRESH_SECRET),
	}
	if err := authSvc.SeedAdmin(ctx, cfg.ADMIN_USERNAME, cfg.ADMIN_PASSWORD); err != nil {
		log.Fatalf("admin seed error: %v", err)
	}

	producer := events.NewProducer(cfg.KAFKA_BROKERS)

	var indexer *search.Indexer
	esClient, err := search.NewClient(cfg.ES_URL, cfg.ES_USER, cfg.ES_PASSWORD)
	if err != nil {
		log.Fatalf("elasticsearch init error: %v", err)
	}
	if esClient != nil {
		indexer = search.NewIndexer(esClient, "products")
	}

	var images storage.ImageStore
	s3store, err := storage.NewS3Store(ctx, cfg)
	if err != nil {
		log.Fatalf("s3 init error: %v", err)
	}
	if s3store != nil {
		images = s3store
	}

	gate := authmw.NewSessionGate([]byte(cfg.JWT_SECRET), authSvc)

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	deps := httpserver.Deps{
		Products: &httpserver.ProductHTTP{
			Svc:      &service.CatalogService{Repo: repository, Images: images},
			Producer: producer,
			Indexer:  indexer,
		},
		Categories: &httpserver.CategoryHTTP{Svc: &service.CategoryService{Repo: repository}},
		Tags:       &httpserver.TagHTTP{Svc: &service.TagService{Repo: repository}},
		Orders: &httpserver.OrderHTTP{
			Svc:      &service.OrderService{Repo: repository},
			Producer: producer,
		},
		Settings: &httpserver.SettingsHTTP{Svc: &service.SettingsService{Repo: repository}},
		Auth:     &httpserver.AuthHTTP{Svc: authSvc},
		Search:   &httpserver.SearchHTTP{Indexer: indexer},
		Gate:     gate,
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         cfg.SERVER_ADDR,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := database.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
