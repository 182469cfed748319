package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"PickEm/api/auth"
	"PickEm/api/cache"
	"PickEm/api/config"
	"PickEm/api/database"
	docs "PickEm/api/docs"
	"PickEm/api/livescores"
	"PickEm/api/mailer"
	"PickEm/api/middlewares"
	"PickEm/api/models"
	"PickEm/api/storage"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

type Server struct {
	DB     *gorm.DB
	Router *gin.Engine
	Config config.Config

	Logos  storage.LogoStore
	Mailer mailer.Mailer
	Live   *livescores.Client

	Registry *prometheus.Registry
	sessions *sessionStore
	counters *engineCounters
	now      func() time.Time
}

// ===============================
// SECURE ADMIN SEEDING
// ===============================
func seedAdmin(db *gorm.DB, cfg config.Config) error {
	adminEmail := strings.ToLower(strings.TrimSpace(cfg.AdminEmail))
	adminPassword := strings.TrimSpace(cfg.AdminPassword)

	// If environment vars aren't provided, do NOTHING.
	if adminEmail == "" || adminPassword == "" {
		log.Println("[seedAdmin] ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping admin creation.")
		return nil
	}

	var existing models.User
	err := db.Where("email = ?", adminEmail).First(&existing).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Println("[seedAdmin] Creating initial admin:", adminEmail)

		admin := models.User{
			Username: strings.Split(adminEmail, "@")[0],
			Email:    adminEmail,
			Password: adminPassword,
		}
		admin.Prepare()
		admin.IsAdmin = true

		if msgs := admin.Validate(""); len(msgs) > 0 {
			log.Printf("[seedAdmin] validation failed: %+v\n", msgs)
			return nil
		}

		if _, err = admin.SaveUser(db); err != nil {
			log.Printf("[seedAdmin] failed to create admin: %v\n", err)
			return err
		}
		return nil
	}

	// If admin exists, ensure they stay admin
	if err == nil && !existing.IsAdmin {
		log.Println("[seedAdmin] Ensuring admin flag is set for:", adminEmail)
		return db.Model(&existing).Update("is_admin", true).Error
	}

	return err
}

// ===============================
// SERVER INITIALIZATION
// ===============================
func (server *Server) Initialize(cfg config.Config) {
	server.Config = cfg
	auth.Configure(cfg.APISecret)

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.AppEnv,
		}); err != nil {
			log.Printf("warning: sentry not initialized: %v", err)
		}
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Cannot connect to database: %v", err)
	}

	// Redis init (safe failure)
	if err := cache.Init(cfg); err != nil {
		log.Printf("warning: could not connect to redis: %v", err)
	}

	if store, err := storage.NewS3Store(context.Background(), cfg); err != nil {
		log.Printf("warning: team logo uploads disabled: %v", err)
	} else {
		server.Logos = store
	}
	if m := mailer.NewSendGrid(cfg); m != nil {
		server.Mailer = m
	} else {
		log.Println("warning: SENDGRID_API_KEY not set, password reset mail disabled")
	}
	server.Live = &livescores.Client{BaseURL: cfg.LiveScoresURL}

	if err := server.Setup(db); err != nil {
		log.Fatalf("Error preparing server: %v", err)
	}
}

// Setup migrates db and mounts every route. Collaborators left nil on the
// server stay disabled.
func (server *Server) Setup(db *gorm.DB) error {
	server.DB = db
	if server.now == nil {
		server.now = time.Now
	}

	if err := server.DB.AutoMigrate(
		&models.Team{},
		&models.User{},
		&models.Game{},
		&models.UserPick{},
		&models.ResetPassword{},
	); err != nil {
		return err
	}

	// SECURE ADMIN CREATION
	if err := seedAdmin(server.DB, server.Config); err != nil {
		log.Printf("error seeding admin user: %v\n", err)
	}

	server.sessions = newSessionStore(server.Config.SessionIdle)
	server.Registry = prometheus.NewRegistry()
	server.counters = newEngineCounters(server.Registry, server.sessions)
	metrics := middlewares.NewMetrics(server.Registry)

	server.Router = gin.Default()
	server.Router.Use(middlewares.SentryMiddleware())
	server.Router.Use(metrics.Middleware())
	server.Router.Use(middlewares.CORSMiddleware(server.Config.CORSOrigins))
	server.Router.Use(middlewares.RateLimitMiddleware())
	server.initializeRoutes()

	if !server.Config.IsProduction() {
		docs.SwaggerInfo.Schemes = []string{"http"}
		server.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	return nil
}

func (server *Server) Run(addr string) {
	log.Fatal(http.ListenAndServe(addr, server.Router))
}

// locked reports whether picks can no longer change.
func (server *Server) locked() bool {
	lock := server.Config.LockTime
	return !lock.IsZero() && !server.now().Before(lock)
}

func (server *Server) logoURL(t *models.Team) string {
	if t == nil || t.LogoKey == "" || server.Logos == nil {
		return ""
	}
	return server.Logos.URL(t.LogoKey)
}

// SweepSessions drops picking sessions idle since before now minus the
// configured idle window.
func (server *Server) SweepSessions(now time.Time) int {
	n := server.sessions.SweepIdle(now)
	if n > 0 {
		log.Printf("[sessions] swept %d idle picking sessions", n)
	}
	return n
}
