package main // Entry point package

import (
	"context" // context for startup checks
	"log"     // Logging library

	"github.com/joho/godotenv"    // loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/kritsada/arrival-card-service/internal/config"     // Internal config loader
	"github.com/kritsada/arrival-card-service/internal/database"   // MySQL connector
	"github.com/kritsada/arrival-card-service/internal/document"   // PDF renderer
	"github.com/kritsada/arrival-card-service/internal/handler"    // HTTP handlers
	"github.com/kritsada/arrival-card-service/internal/queue"      // broker publisher and consumer
	"github.com/kritsada/arrival-card-service/internal/repository" // persistence layer
	"github.com/kritsada/arrival-card-service/internal/router"     // Internal router setup
	"github.com/kritsada/arrival-card-service/internal/service"    // issuance workflow
	"github.com/kritsada/arrival-card-service/internal/storage"    // object storage publisher
)

func main() {
	_ = godotenv.Load() // best effort; real deployments set the environment directly
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	publisher, err := storage.NewPublisher(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey,
		cfg.MinioBucket, cfg.PublicBaseURL, cfg.MinioUseSSL)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	if err := publisher.EnsureBucket(context.Background()); err != nil {
		log.Fatalf("storage: %v", err)
	}

	profileRepo := repository.NewProfileRepo(db)
	travelRepo := repository.NewTravelRepo(db)
	entryRepo := repository.NewEntryFormRepo(db)

	issuer := service.NewIssuer(service.IssuerDeps{
		Profiles: profileRepo,
		Travel:   travelRepo,
		Entries:  entryRepo,
		Renderer: document.NewRenderer(document.Options{
			Letterhead:      true,
			UppercaseFields: true,
			QRPayload:       document.PayloadUpdateURL,
			UpdateInfoURL:   cfg.UpdateInfoURL,
		}),
		Publisher:   publisher,
		Events:      queue.NewPublisher(),
		MaxAttempts: cfg.CardMaxAttempts,
	})

	// Background consumer records issued cards to logs/issuance.log and
	// reconnects on broker failures.
	go func() {
		if err := queue.StartIssuanceConsumer(); err != nil {
			log.Printf("issued-consumer: %v", err)
		}
	}()

	e := echo.New() // Create Echo instance
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	router.RegisterRoutes(e) // Register health endpoint
	router.RegisterArrival(e, handler.NewArrivalHandler(issuer, entryRepo, profileRepo), config.NewRedisClient())

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
