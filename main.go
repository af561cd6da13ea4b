package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"portal/internal/config"
	api "portal/internal/http"
	"portal/internal/http/handlers"
	"portal/internal/http/middleware"
	"portal/internal/repositories"
	"portal/internal/utils"
)

func main() {
	env := config.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}
	middleware.SetJWTSecret(env.JWTSecret)

	config.ConnectDB(env.DBDSN)
	defer config.CloseDB()

	if err := (repositories.ReservationRepository{}).EnsureSchema(); err != nil {
		utils.Log.Fatalf("failed to ensure schema: %v", err)
	}

	handlers.Configure(handlers.Deps{
		Cache:       config.NewRedisClient(env.RedisAddr),
		CacheTTL:    env.CacheTTL,
		AmqpURL:     env.AmqpURL,
		PaymentHold: env.PaymentHold,
	})

	r := api.NewRouter(env)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		utils.Log.Infof("listening on %s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			utils.Log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	utils.Log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		utils.Log.Fatalf("shutdown failed: %v", err)
	}

	utils.Log.Info("server stopped")
}
