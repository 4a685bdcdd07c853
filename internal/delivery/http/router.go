package http

import (
	"github.com/gin-gonic/gin"

	"github.com/grandaincontri/incontri-backend/internal/delivery/http/handler"
	"github.com/grandaincontri/incontri-backend/internal/delivery/http/middleware"
)

type Router struct {
	authHandler       *handler.AuthHandler
	listingHandler    *handler.ListingHandler
	profileHandler    *handler.ProfileHandler
	contactHandler    *handler.ContactHandler
	sessionMiddleware *middleware.SessionMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	listingHandler *handler.ListingHandler,
	profileHandler *handler.ProfileHandler,
	contactHandler *handler.ContactHandler,
	sessionMiddleware *middleware.SessionMiddleware,
) *Router {
	return &Router{
		authHandler:       authHandler,
		listingHandler:    listingHandler,
		profileHandler:    profileHandler,
		contactHandler:    contactHandler,
		sessionMiddleware: sessionMiddleware,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.Default()

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// API v1
	v1 := router.Group("/api/v1")
	v1.Use(r.sessionMiddleware.Resolve())
	{
		// Auth routes
		auth := v1.Group("/auth")
		{
			auth.POST("/login", r.authHandler.Login)
			auth.POST("/logout", r.sessionMiddleware.RequireAuth(), r.authHandler.Logout)
			auth.GET("/me", r.authHandler.Me)
		}

		// Public read surface
		v1.GET("/home", r.listingHandler.Home)
		v1.GET("/listings", r.listingHandler.List)

		// Public contact form
		v1.POST("/contact", r.contactHandler.Submit)

		// Admin mutations: one endpoint for create, update and delete
		v1.POST("/profiles", r.sessionMiddleware.RequireAuth(), r.profileHandler.Mutate)
	}

	return router
}
