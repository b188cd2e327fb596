package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"carebridge/internal/api"
	"carebridge/internal/config"
	"carebridge/internal/repository"
	"carebridge/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	facilityRepo := repository.NewFacilityRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)
	inquiryRepo := repository.NewInquiryRepository(db)
	jobRepo := repository.NewJobRepository(db)

	notifier := service.NewSenderService(service.NewProviderSender(cfg))

	authSvc := service.NewAuthService(userRepo, facilityRepo, cfg.JWTSecret, cfg.JWTTTL)
	recommendationSvc := service.NewRecommendationService(facilityRepo, availabilityRepo)
	availabilitySvc := service.NewAvailabilityService(facilityRepo, availabilityRepo)
	inquirySvc := service.NewInquiryService(inquiryRepo, facilityRepo, notifier)
	jobSvc := service.NewJobService(jobRepo)

	r := api.NewRouter(api.Handlers{
		Auth:            api.NewAuthHandler(authSvc),
		Recommendations: api.NewRecommendationHandler(recommendationSvc),
		Availability:    api.NewAvailabilityHandler(availabilitySvc),
		Inquiries:       api.NewInquiryHandler(inquirySvc),
	}, cfg.JWTSecret)

	c := cron.New()
	if _, err := c.AddFunc(cfg.NotePurgeSchedule, func() {
		if _, err := jobSvc.PurgeExpiredNotes(time.Now()); err != nil {
			log.Printf("Error purging expired notes: %v", err)
		}
	}); err != nil {
		log.Fatalf("Invalid NOTE_PURGE_SCHEDULE %q: %v", cfg.NotePurgeSchedule, err)
	}
	c.Start()
	defer c.Stop()

	cors := handlers.CORS(
		handlers.AllowedOrigins(cfg.CORSAllowedOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)

	log.Printf("Server running on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, handlers.LoggingHandler(os.Stdout, cors(r))))
}
