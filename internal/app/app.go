package app

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ademandic/avanox-yudo-musteri-portal-api/domain"
	"github.com/ademandic/avanox-yudo-musteri-portal-api/internal/config"
	httpx "github.com/ademandic/avanox-yudo-musteri-portal-api/internal/http"
	"github.com/ademandic/avanox-yudo-musteri-portal-api/internal/http/handlers"
	"github.com/ademandic/avanox-yudo-musteri-portal-api/internal/http/middleware"
	"github.com/ademandic/avanox-yudo-musteri-portal-api/internal/infrastructure/auth"
	"github.com/ademandic/avanox-yudo-musteri-portal-api/internal/infrastructure/database"
	"github.com/ademandic/avanox-yudo-musteri-portal-api/internal/infrastructure/notifications"
	"github.com/ademandic/avanox-yudo-musteri-portal-api/internal/infrastructure/repositories"
	"github.com/ademandic/avanox-yudo-musteri-portal-api/internal/services"
)

func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	gdb, err := database.Open(cfg.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(gdb); err != nil {
		return err
	}

	rdb := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB).Client
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return err
	}

	clock := domain.SystemClock{}

	// Infrastructure services
	passwordSvc := auth.NewPasswordService()
	tokenSvc := auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTTL, clock)
	notificationSvc := notifications.NewTwilioService(cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioFrom)

	// Repositories
	accountRepo := repositories.NewAccountRepository(gdb)
	challengeStore := repositories.NewChallengeStore(rdb, clock, repositories.ChallengeConfig{
		CodeValidity:   cfg.CodeValidity,
		LockoutWindow:  cfg.LockoutWindow,
		ResendCooldown: cfg.ResendCooldown,
	})

	// Domain services
	verifier := services.NewCredentialVerifier(accountRepo, challengeStore, passwordSvc)
	twoFactorSvc := services.NewTwoFactorService(challengeStore, notificationSvc, clock, services.TwoFactorConfig{
		CodeLength:   cfg.CodeLength,
		CodeValidity: cfg.CodeValidity,
		MaxAttempts:  cfg.MaxAttempts,
		Delivery:     cfg.Delivery,
	})
	sessionSvc := services.NewSessionService(accountRepo, tokenSvc, clock, services.SessionConfig{
		IdleTimeout: cfg.IdleTimeout,
	})
	authSvc := services.NewAuthService(verifier, twoFactorSvc, sessionSvc, accountRepo, passwordSvc, clock)

	// HTTP layer
	authH := handlers.NewAuthHandlers(authSvc, sessionSvc)
	authMW := middleware.NewAuthMW(tokenSvc, sessionSvc)

	r := httpx.BuildRouter(authH, authMW, rdb, cfg.RateLimitPerMin)

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}
