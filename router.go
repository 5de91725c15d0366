package main

import (
	"log/slog"

	"notesmanager/config"
	"notesmanager/handler"
	"notesmanager/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

type routerDeps struct {
	cfg    config.Config
	logger *slog.Logger
	tokens middleware.TokenVerifier
	users  middleware.UserLoader
	store  handler.Pinger
	notes  handler.NotesUsecase
	admin  handler.AdminUsecase
	auth   handler.AuthUsecase
	redis  *redis.Client
}

func setupRouter(d routerDeps) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Tracing(),
		middleware.RequestLogger(d.logger),
		middleware.Recovery(),
		middleware.Metrics(),
		middleware.CORS(d.cfg.HTTP.AllowedOrigins),
		middleware.RequestSizeLimiter(d.cfg.HTTP.MaxBodyBytes),
	)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	api.Use(middleware.NoStore())

	api.GET("/health", func(c *gin.Context) {
		handler.HealthHandler(c, d.store, d.cfg.Storage.Driver)
	})

	requireUser := middleware.RequireUser(d.tokens, d.users)
	requireAdmin := middleware.RequireAdmin(d.tokens, d.users)

	auth := api.Group("/auth")
	{
		limited := auth.Group("", middleware.RateLimit(d.cfg.RateLimit, d.redis))
		limited.POST("/register", func(c *gin.Context) {
			handler.RegisterHandler(c, d.auth)
		})
		limited.POST("/login", func(c *gin.Context) {
			handler.LoginHandler(c, d.auth)
		})
		limited.POST("/admin-login", func(c *gin.Context) {
			handler.AdminLoginHandler(c, d.auth)
		})
		auth.GET("/me", requireUser, handler.MeHandler)
	}

	notes := api.Group("/notes", requireUser)
	{
		notes.GET("", func(c *gin.Context) {
			handler.ListNotesHandler(c, d.notes)
		})
		notes.POST("", func(c *gin.Context) {
			handler.CreateNoteHandler(c, d.notes)
		})
		notes.GET("/:id", func(c *gin.Context) {
			handler.GetNoteHandler(c, d.notes)
		})
		notes.PUT("/:id", func(c *gin.Context) {
			handler.UpdateNoteHandler(c, d.notes)
		})
		notes.DELETE("/:id", func(c *gin.Context) {
			handler.DeleteNoteHandler(c, d.notes)
		})
	}

	admin := api.Group("/admin", requireAdmin)
	{
		admin.GET("/users", func(c *gin.Context) {
			handler.AdminListUsersHandler(c, d.admin)
		})
		admin.DELETE("/users/:id", func(c *gin.Context) {
			handler.AdminDeleteUserHandler(c, d.admin)
		})
		admin.GET("/notes", func(c *gin.Context) {
			handler.AdminListNotesHandler(c, d.admin)
		})
		admin.DELETE("/notes/:id", func(c *gin.Context) {
			handler.AdminDeleteNoteHandler(c, d.admin)
		})
		admin.GET("/stats", func(c *gin.Context) {
			handler.AdminStatsHandler(c, d.admin)
		})
	}

	return router
}
