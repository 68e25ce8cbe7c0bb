package main

import (
	"math"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/dentaldesk/dentaldesk/internal/config"
	"github.com/dentaldesk/dentaldesk/internal/domain/appointment"
	"github.com/dentaldesk/dentaldesk/internal/domain/dentist"
	"github.com/dentaldesk/dentaldesk/internal/domain/patient"
	"github.com/dentaldesk/dentaldesk/internal/domain/report"
	"github.com/dentaldesk/dentaldesk/internal/platform/auth"
	"github.com/dentaldesk/dentaldesk/internal/platform/db"
	"github.com/dentaldesk/dentaldesk/internal/platform/mail"
	"github.com/dentaldesk/dentaldesk/internal/platform/metrics"
	"github.com/dentaldesk/dentaldesk/internal/platform/middleware"
	"github.com/dentaldesk/dentaldesk/internal/platform/openapi"
)

const (
	version        = "0.1.0"
	maxBodySize    = "1M"
	requestTimeout = 30 * time.Second
)

type deps struct {
	cfg     *config.Config
	logger  zerolog.Logger
	pool    db.DB
	pinger  db.Pinger
	redis   redis.Scripter
	metrics *metrics.Metrics
	mailbox mail.Mailbox
}

func newServer(d deps) (*echo.Echo, error) {
	cfg := d.cfg

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.ErrorHandler(d.logger)

	e.Use(middleware.Recovery(d.logger, d.metrics.ObservePanic))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(d.logger))
	e.Use(middleware.SecurityHeaders("/docs"))
	e.Use(middleware.BodyLimit(maxBodySize))
	e.Use(middleware.RequestTimeout(requestTimeout))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))
	e.Use(d.metrics.Middleware())

	authMW, err := authMiddleware(cfg)
	if err != nil {
		return nil, err
	}
	e.Use(authMW)
	e.Use(middleware.Audit(d.logger, nil))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "version": version})
	})
	e.GET("/health/db", db.HealthHandler(d.pinger))
	e.GET("/metrics", d.metrics.Handler())
	openapi.NewGenerator(openapi.DefaultResources(), version, "").RegisterRoutes(e)

	apiV1 := e.Group("/api/v1")
	apiV1.Use(rateLimiter(cfg, d.redis, d.logger))

	tx := db.Transactor(d.pool)

	dentistSvc := dentist.NewService(dentist.NewRepoPG(d.pool))
	dentist.NewHandler(dentistSvc).RegisterRoutes(apiV1)

	patientSvc := patient.NewService(patient.NewRepoPG(d.pool))
	patient.NewHandler(patientSvc).RegisterRoutes(apiV1)

	apptSvc := appointment.NewService(appointment.NewRepoPG(d.pool), tx, dentistSvc, d.metrics)
	appointment.NewHandler(apptSvc).RegisterRoutes(apiV1)

	report.NewHandler(report.NewService(report.NewStorePG(d.pool))).RegisterRoutes(apiV1)

	box := d.mailbox
	if box == nil {
		box = newMailbox(cfg, patientSvc, d.metrics, d.logger)
	}
	mail.NewHandler(box).RegisterRoutes(apiV1)

	return e, nil
}

func authMiddleware(cfg *config.Config) (echo.MiddlewareFunc, error) {
	if cfg.ResolvedAuthMode() == config.AuthModeDevelopment {
		return auth.DevAuthMiddleware(), nil
	}
	jwtCfg := auth.JWTConfig{
		Issuer:   cfg.AuthIssuer,
		Audience: cfg.AuthAudience,
		JWKSURL:  cfg.AuthJWKSURL,
		Skipper:  auth.AuthSkipper,
	}
	if cfg.AuthJWTSecret != "" {
		jwtCfg.SigningKey = []byte(cfg.AuthJWTSecret)
	}
	return auth.JWTMiddleware(jwtCfg)
}

// rateLimiter shares counters through Redis when a client is configured and
// falls back to per-process token buckets otherwise.
func rateLimiter(cfg *config.Config, rdb redis.Scripter, logger zerolog.Logger) echo.MiddlewareFunc {
	rl := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rl.RequestsPerSecond <= 0 {
		rl = middleware.DefaultRateLimitConfig()
	}
	if rdb == nil {
		return middleware.RateLimitWith(middleware.NewMemoryLimiter(rl), rl, logger)
	}
	rl.FailOpen = true
	limit := int(math.Ceil(rl.RequestsPerSecond))
	return middleware.RateLimitWith(middleware.NewRedisLimiter(rdb, limit, time.Second, "dentaldesk:rl"), rl, logger)
}

func newMailbox(cfg *config.Config, src mail.SuggestionSource, m *metrics.Metrics, logger zerolog.Logger) mail.Mailbox {
	if cfg.SendGridAPIKey == "" {
		logger.Info().Msg("SENDGRID_API_KEY not set; outbound mail is recorded in memory only")
		contacts := cfg.MailContacts
		if len(contacts) == 0 {
			contacts = mail.DemoContacts
		}
		return mail.NewFakeMailbox(src, contacts)
	}
	return mail.NewSendGridMailbox(mail.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.MailFromEmail,
		FromName:  cfg.MailFromName,
	}, src, cfg.MailContacts, m)
}
