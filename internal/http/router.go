package api

import (
	"log"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"

	"portal/internal/config"
	"portal/internal/domain"
	h "portal/internal/http/handlers"
	"portal/internal/http/middleware"
)

func NewRouter(env config.Env) *gin.Engine {
	_ = env

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "요청한 경로를 찾을 수 없습니다",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)

		// Cascade browsing and price resolution are open so visitors can
		// explore options before signing up.
		services := api.Group("/services")
		services.GET("/:service/options/:field", h.GetCascadeOptions)
		services.GET("/:service/resolve", h.ResolvePriceCode)

		authed := api.Group("")
		authed.Use(middleware.Auth())
		{
			authed.GET("/me", h.GetMe)

			quotes := authed.Group("/quotes")
			quotes.POST("", h.CreateQuote)
			quotes.GET("", h.GetQuotes)
			quotes.GET("/:id", h.GetQuoteByID)
			quotes.PATCH("/:id/status", h.TransitionQuote)
			quotes.POST("/:id/pay", h.PayQuote)
			quotes.GET("/:id/items", h.GetQuoteItems)
			quotes.POST("/:id/items/:service", h.AddQuoteItem)
			quotes.PUT("/:id/reservations/:service", h.UpsertReservation)

			items := authed.Group("/quote-items")
			items.PUT("/:id", h.UpdateQuoteItem)
			items.DELETE("/:id", h.DeleteQuoteItem)

			reservations := authed.Group("/reservations")
			reservations.GET("", h.GetMyReservations)
			reservations.GET("/:id", h.GetReservationByID)
			reservations.GET("/:id/dispatch", h.GetReservationDispatch)
			reservations.GET("/:id/confirmation", h.GetReservationConfirmation)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.Auth(), middleware.RequireRoles(domain.RoleManager, domain.RoleAdmin))
		{
			admin.GET("/users", h.GetUsers)
			admin.GET("/users/:id", h.GetUserByID)
			admin.PATCH("/users/:id", h.UpdateUser)
			admin.DELETE("/users/:id", middleware.RequireRoles(domain.RoleAdmin), h.DeleteUser)
			admin.GET("/reservations", h.GetAllReservations)
		}
	}

	return r
}
