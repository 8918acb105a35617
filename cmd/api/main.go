package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/trovehq/trove-backend/internal/config"
	"github.com/trovehq/trove-backend/internal/domain"
	"github.com/trovehq/trove-backend/internal/handler"
	"github.com/trovehq/trove-backend/internal/middleware"
	"github.com/trovehq/trove-backend/internal/repository"
	"github.com/trovehq/trove-backend/internal/routes"
	"github.com/trovehq/trove-backend/internal/service"
	pkgcache "github.com/trovehq/trove-backend/pkg/cache"
	"github.com/trovehq/trove-backend/pkg/jwt"
	pkglogger "github.com/trovehq/trove-backend/pkg/logger"
	pkgredis "github.com/trovehq/trove-backend/pkg/redis"
)

// getConfigPath returns config file path based on APP_ENV environment variable
func getConfigPath() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	dotenvFiles := config.LoadDotEnv()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.InitStructured(env)
	pkglogger.Info("APP_ENV=%s, loaded env files: %v", env, dotenvFiles)

	configPath := getConfigPath()
	pkglogger.Info("Loading config from: %s", configPath)
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// MySQL
	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	pkglogger.Info("Connected to MySQL")

	// Redis
	redisClient, err := pkgredis.NewClient(
		cfg.Redis.Host,
		cfg.Redis.Port,
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.Redis.PoolSize,
	)
	if err != nil {
		pkglogger.Info("Warning: Failed to connect to Redis: %v (continuing without Redis)", err)
		redisClient = nil
	} else {
		pkglogger.Info("Connected to Redis")
	}

	var cacheService pkgcache.Service
	if redisClient != nil {
		cacheService = pkgcache.NewService(redisClient)
		pkglogger.Info("Cache service initialized")
	}

	// JWT manager
	jwtManager := jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiresIn)*time.Second)

	// Router
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	// CORS
	allowOrigins := cfg.CORS.AllowOrigins
	if allowOrigins == "" {
		allowOrigins = "http://localhost:3000"
	}
	corsConfig := cors.Config{
		AllowOrigins:     splitAndTrim(allowOrigins, ","),
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Remaining"},
		MaxAge:           86400 * time.Second,
	}
	router.Use(cors.New(corsConfig))

	// Middleware
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.Metrics())
	router.Use(middleware.RequestLogger())

	if redisClient != nil && !cfg.IsDevelopment() {
		router.Use(middleware.RateLimit(redisClient, middleware.DefaultRateLimitConfig()))
	}

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "trove-backend",
			"time":    time.Now().Unix(),
		})
	})

	// Repositories
	itemRepo := repository.NewItemRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	bookmarkRepo := repository.NewBookmarkRepository(db)
	clickRepo := repository.NewClickRepository(db)

	// Services
	searchService := service.NewSearchService(itemRepo, catalogRepo, profileRepo, likeRepo, bookmarkRepo)
	likeService := service.NewLikeService(likeRepo, itemRepo)
	bookmarkService := service.NewBookmarkService(bookmarkRepo, catalogRepo)
	catalogService := service.NewCatalogService(catalogRepo, itemRepo, profileRepo, bookmarkRepo, cacheService)
	clickService := service.NewClickService(clickRepo)
	moderationService := service.NewModerationService(cfg.Moderation.ImageCheckURL, cfg.Moderation.UsernameCheckURL)
	musicService := service.NewMusicService(cfg.Music.SearchURL)
	accountService := service.NewAccountService(profileRepo)

	// Routes
	routes.Setup(router, routes.Handlers{
		Search:     handler.NewSearchHandler(searchService),
		Engagement: handler.NewEngagementHandler(likeService, bookmarkService),
		Catalog:    handler.NewCatalogHandler(catalogService),
		Click:      handler.NewClickHandler(clickService),
		Safety:     handler.NewSafetyHandler(moderationService),
		Music:      handler.NewMusicHandler(musicService),
		Account:    handler.NewAccountHandler(accountService),
	}, jwtManager, cfg.Admin.APIKey)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	pkglogger.Info("Listening on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Server exited: %v", err)
	}
}

// initDB connects to MySQL and migrates the schema
func initDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&domain.Profile{},
		&domain.Catalog{},
		&domain.Item{},
		&domain.Like{},
		&domain.Bookmark{},
	); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return db, nil
}

func splitAndTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
