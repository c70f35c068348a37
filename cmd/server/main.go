package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/toptiermen/platform/internal/ads"
	"github.com/toptiermen/platform/internal/config"
	"github.com/toptiermen/platform/internal/database"
	"github.com/toptiermen/platform/internal/handler"
	"github.com/toptiermen/platform/internal/middleware"
	"github.com/toptiermen/platform/internal/missions"
	"github.com/toptiermen/platform/internal/payment"
	"github.com/toptiermen/platform/internal/queue"
	"github.com/toptiermen/platform/internal/repository"
	"github.com/toptiermen/platform/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer func() { _ = db.Close() }()

	// Repositories.
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	missionRepo := repository.NewMissionRepo(db)
	xp := repository.NewXPRepo(db)
	badges := repository.NewBadgeRepo(db)
	referrals := repository.NewReferralRepo(db)
	bugs := repository.NewBugNotificationRepo(db)
	emails := repository.NewEmailLogRepo(db)
	flows := repository.NewFlowRepo(db)
	stats := repository.NewStatsRepo(db)

	// Mission reads and writes try MySQL first and fall back to the
	// JSON file store when the database is down.
	fileStore, err := missions.NewFileStore(cfg.DataDir)
	if err != nil {
		log.Fatalf("mission file store: %v", err)
	}
	missionStore := missions.NewChain(missionRepo, fileStore)

	// External integrations.
	adsClient := ads.NewClient(cfg.FBAccessToken, cfg.FBAdAccountID, cfg.FBPageID)
	payClient := payment.NewClient(cfg.CheckoutBaseURL, cfg.CheckoutAPIKey)

	// Handlers.
	authH := handler.NewAuthHandler(cfg, users, tokens)
	regH := handler.NewRegistrationHandler(cfg, flows, users, payClient)
	memberH := router.MemberHandlers{
		Auth:      authH,
		Missions:  handler.NewMissionHandler(missionStore),
		Dashboard: handler.NewDashboardHandler(missionStore, xp, badges),
		Badges:    handler.NewBadgeHandler(badges),
		Referrals: handler.NewReferralHandler(users, referrals),
	}
	adminH := router.AdminHandlers{
		Stats:  handler.NewStatsHandler(stats),
		Bugs:   handler.NewBugNotificationHandler(bugs),
		Emails: handler.NewEmailLogHandler(emails),
		Ads:    handler.NewAdsHandler(adsClient),
		Badges: handler.NewBadgeHandler(badges),
		XP:     handler.NewXPGrantHandler(xp),
	}

	// Redis is optional: without it the limiter and cache are no-ops.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting and caching disabled")
	}
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	e := echo.New()
	e.Use(limiter)
	router.RegisterRoutes(e, authH, regH)
	router.RegisterMember(e, memberH, cfg.JWTSecret, cache)
	router.RegisterAdmin(e, adminH, cfg.JWTSecret)

	// The email worker drains "email.queued" and records delivery rows.
	go func() {
		if err := queue.StartEmailConsumer(emails); err != nil {
			log.Printf("email consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
