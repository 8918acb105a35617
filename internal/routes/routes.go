package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/trovehq/trove-backend/internal/handler"
	"github.com/trovehq/trove-backend/internal/middleware"
	"github.com/trovehq/trove-backend/pkg/jwt"
)

// Handlers bundles the handlers registered on the API surface
type Handlers struct {
	Search     *handler.SearchHandler
	Engagement *handler.EngagementHandler
	Catalog    *handler.CatalogHandler
	Click      *handler.ClickHandler
	Safety     *handler.SafetyHandler
	Music      *handler.MusicHandler
	Account    *handler.AccountHandler
}

// Setup registers all /api/v1 routes
func Setup(router *gin.Engine, h Handlers, jwtManager *jwt.Manager, adminKey string) {
	api := router.Group("/api/v1")
	auth := middleware.JWTAuth(jwtManager)
	optionalAuth := middleware.OptionalJWTAuth(jwtManager)

	// Search (anonymous works, viewer identity adds annotation)
	api.GET("/search", optionalAuth, h.Search.Search)

	// Browse
	catalogs := api.Group("/catalogs")
	catalogs.GET("/popular", h.Catalog.ListPopular)
	catalogs.GET("/:id", optionalAuth, h.Catalog.GetCatalog)
	catalogs.POST("/:id/bookmark", auth, h.Engagement.ToggleBookmark)

	api.GET("/profiles/:username", h.Catalog.GetProfile)

	// Items
	api.POST("/items/:id/like", auth, h.Engagement.ToggleLike)

	// Viewer's saved sets
	me := api.Group("/me", auth)
	me.GET("/likes", h.Engagement.ListLikes)
	me.GET("/bookmarks", h.Engagement.ListBookmarks)

	// Click tracking
	api.POST("/track-click", h.Click.TrackClick)

	// Safety proxies
	safety := api.Group("/safety")
	safety.POST("/check-image", h.Safety.CheckImage)
	safety.POST("/check-username", h.Safety.CheckUsername)

	// Music search proxy
	api.GET("/music/search", h.Music.Search)

	// Admin
	admin := api.Group("/admin")
	admin.Use(middleware.AdminKeyAuth(adminKey))
	admin.POST("/accounts/delete", h.Account.DeleteAccount)
}
