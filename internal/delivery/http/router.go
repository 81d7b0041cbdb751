package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/linkupge/linkup-backend/internal/delivery/http/handler"
	"github.com/linkupge/linkup-backend/internal/delivery/http/middleware"
)

type Router struct {
	authHandler    *handler.AuthHandler
	profileHandler *handler.ProfileHandler
	peopleHandler  *handler.PeopleHandler
	eventHandler   *handler.EventHandler
	authMiddleware *middleware.AuthMiddleware
	uploadsDir     string
}

func NewRouter(
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	peopleHandler *handler.PeopleHandler,
	eventHandler *handler.EventHandler,
	authMiddleware *middleware.AuthMiddleware,
	uploadsDir string,
) *Router {
	return &Router{
		authHandler:    authHandler,
		profileHandler: profileHandler,
		peopleHandler:  peopleHandler,
		eventHandler:   eventHandler,
		authMiddleware: authMiddleware,
		uploadsDir:     uploadsDir,
	}
}

// registerValidations adds the "eventdate" rule used by event payloads.
func registerValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("eventdate", func(fl validator.FieldLevel) bool {
			_, err := time.Parse("2006-01-02", fl.Field().String())
			return err == nil
		})
	}
}

func (r *Router) Setup() *gin.Engine {
	registerValidations()

	router := gin.Default()

	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// Uploaded profile images
	router.Static("/uploads", r.uploadsDir)

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
			auth.POST("/logout", r.authMiddleware.RequireAuth(), r.authHandler.Logout)
			auth.GET("/me", r.authMiddleware.RequireAuth(), r.authHandler.Me)
		}

		protected := v1.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			profile := protected.Group("/profile")
			{
				profile.GET("/me", r.profileHandler.GetMyProfile)
				profile.PUT("/me", r.profileHandler.UpsertMyProfile)
				profile.POST("/image", r.profileHandler.UploadImage)
				profile.POST("/suggest-bio", r.profileHandler.SuggestBio)
				profile.GET("/:user_id", r.profileHandler.GetProfileByID)
			}

			people := protected.Group("/people")
			{
				people.GET("/candidates", r.peopleHandler.GetCandidates)
				people.POST("/interactions", r.peopleHandler.RecordInteraction)
				people.GET("/favorites", r.peopleHandler.GetFavorites)
				people.GET("/matches", r.peopleHandler.GetMatches)
			}

			events := protected.Group("/events")
			{
				events.GET("", r.eventHandler.List)
				events.POST("", r.eventHandler.Create)
				events.GET("/:id", r.eventHandler.Get)
				events.PUT("/:id", r.eventHandler.Update)
				events.DELETE("/:id", r.eventHandler.Delete)
				events.POST("/:id/join", r.eventHandler.Join)
				events.POST("/:id/leave", r.eventHandler.Leave)
				events.GET("/:id/participants", r.eventHandler.Participants)
			}
		}
	}

	return router
}
