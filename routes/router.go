package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/scoutnet/config"
	"github.com/DhavalSuthar-24/scoutnet/internal/admin"
	"github.com/DhavalSuthar-24/scoutnet/internal/audit"
	"github.com/DhavalSuthar-24/scoutnet/internal/auth"
	"github.com/DhavalSuthar-24/scoutnet/internal/media"
	mw "github.com/DhavalSuthar-24/scoutnet/internal/middleware"
	"github.com/DhavalSuthar-24/scoutnet/internal/notification"
	"github.com/DhavalSuthar-24/scoutnet/internal/player"
	"github.com/DhavalSuthar-24/scoutnet/internal/scout"
	"github.com/DhavalSuthar-24/scoutnet/internal/shortlist"
	"github.com/DhavalSuthar-24/scoutnet/internal/tryout"
	"github.com/DhavalSuthar-24/scoutnet/internal/user"
	"github.com/DhavalSuthar-24/scoutnet/pkg/cache"
	"github.com/DhavalSuthar-24/scoutnet/pkg/storage"
	"github.com/DhavalSuthar-24/scoutnet/pkg/validator"
)

// Deps is everything the router needs from main.
type Deps struct {
	Config   *config.Config
	DB       *gorm.DB
	Store    storage.MediaStore
	Cache    cache.Cache
	Registry *prometheus.Registry
}

func SetupRoutes(d Deps) *gin.Engine {
	cfg := d.Config
	validator.UseJSONNames()

	r := gin.New()
	r.Use(mw.RequestLogger(), mw.Recovery())
	if d.Registry != nil {
		r.Use(mw.NewMetrics(d.Registry).Handler())
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{})))
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.App.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Static("/public", "./public")
	r.GET("/health", health(d.DB))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Repositories and services
	users := user.NewUserRepository(d.DB)
	limits := storage.Limits{MaxImageBytes: cfg.MaxImageBytes(), MaxVideoBytes: cfg.MaxVideoBytes()}

	inbox := notification.NewNotificationService(notification.NewNotificationRepository(d.DB))
	auditSvc := audit.NewAuditService(audit.NewAuditRepository(d.DB))

	playerRepo := player.NewPlayerRepository(d.DB)
	playerSvc := player.NewPlayerService(playerRepo, users, d.Store, limits)
	mediaSvc := media.NewMediaService(media.NewMediaRepository(d.DB), users, d.Store, limits, inbox)
	scoutSvc := scout.NewScoutService(scout.NewScoutRepository(d.DB), users, playerSvc, mediaSvc, d.Store, limits, d.Cache, cfg.CacheTTL())
	tryoutSvc := tryout.NewTryoutService(tryout.NewTryoutRepository(d.DB), users, scoutSvc, inbox)
	shortlistSvc := shortlist.NewShortlistService(shortlist.NewShortlistRepository(d.DB), users, playerRepo, scoutSvc, inbox)
	authSvc := auth.NewAuthService(auth.NewAuthRepository(d.DB), users, auth.TokenConfig{
		AccessSecret:        cfg.JWT.AccessTokenSecret,
		AccessExpiryMinutes: cfg.JWT.AccessTokenExpiryMinutes,
		RefreshSecret:       cfg.JWT.RefreshTokenSecret,
		RefreshExpiryDays:   cfg.JWT.RefreshTokenExpiryDays,
	})
	adminSvc := admin.NewAdminService(admin.NewAdminRepository(d.DB), users, mediaSvc, tryoutSvc, auditSvc, d.Store)

	authMW := mw.AuthMiddleware(cfg.JWT.AccessTokenSecret, users)
	authLimit := mw.RateLimit(mw.PerMinute(cfg.RateLimit.AuthPerMinute, cfg.RateLimit.AuthBurst))

	// API routes
	api := r.Group("/api")
	auth.RegisterAuthRoutes(api, auth.NewAuthController(authSvc), authMW, authLimit)
	player.RegisterPlayerRoutes(api, player.NewPlayerController(playerSvc), authMW)
	media.RegisterMediaRoutes(api, media.NewMediaController(mediaSvc), authMW)
	scout.RegisterScoutRoutes(api, scout.NewScoutController(scoutSvc), authMW)
	tryout.RegisterTryoutRoutes(api, tryout.NewTryoutController(tryoutSvc), authMW)
	shortlist.RegisterShortlistRoutes(api, shortlist.NewShortlistController(shortlistSvc), authMW)
	notification.RegisterNotificationRoutes(api, notification.NewNotificationController(inbox), authMW)
	admin.RegisterAdminRoutes(api, admin.NewAdminController(adminSvc), authMW)

	return r
}

func health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
	}
}

// Models lists every table the API owns.
func Models() []any {
	return []any{
		&user.User{},
		&player.PlayerProfile{}, &player.PlayerStats{},
		&scout.ScoutProfile{},
		&media.Video{}, &media.Like{}, &media.Comment{},
		&tryout.Tryout{}, &tryout.Invitation{}, &tryout.Location{},
		&shortlist.Shortlist{},
		&notification.Notification{},
		&audit.SystemLog{},
	}
}
