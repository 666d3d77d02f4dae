package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kasmoni-backend/config"
	"kasmoni-backend/database"
	"kasmoni-backend/handlers"
	"kasmoni-backend/middleware"
	"kasmoni-backend/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	config.Load()

	// Connect to database
	database.Connect()

	// Connect to Redis (optional, won't crash if unavailable)
	database.ConnectRedis()

	// Firebase messaging (optional)
	services.InitNotifications(context.Background())

	// Wire the settlement engine to the stores
	handlers.InitEngine()

	// Setup router
	r := gin.Default()
	r.Use(middleware.CORSMiddleware())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": config.AppConfig.AppName,
		})
	})

	// ==========================================
	// AUTH ROUTES (public)
	// ==========================================
	auth := r.Group("/auth")
	{
		auth.POST("/register", handlers.Register)
		auth.POST("/login", handlers.Login)
	}

	// ==========================================
	// API ROUTES (authenticated staff)
	// ==========================================
	api := r.Group("/api")
	api.Use(middleware.AuthRequired())
	{
		// Members
		api.POST("/members", handlers.CreateMember)
		api.GET("/members", handlers.GetMembers)
		api.GET("/members/:id", handlers.GetMember)
		api.PUT("/members/:id", handlers.UpdateMember)

		// Banks
		api.GET("/banks", handlers.GetBanks)
		api.POST("/banks", handlers.CreateBank)

		// Groups & slots
		api.POST("/groups", handlers.CreateGroup)
		api.GET("/groups", handlers.GetGroups)
		api.GET("/groups/:id", handlers.GetGroup)
		api.PUT("/groups/:id", handlers.UpdateGroup)
		api.POST("/groups/:id/slots", handlers.AssignSlot)
		api.GET("/groups/:id/slots", handlers.GetGroupSlots)
		api.DELETE("/groups/:id/slots/:slotId", handlers.RemoveSlot)
		api.GET("/groups/:id/payment-status", handlers.GroupPaymentStatus)

		// Payments
		api.POST("/payments", handlers.CreatePayment)
		api.GET("/payments", handlers.GetPayments)
		api.PUT("/payments/:id/status", handlers.UpdatePaymentStatus)

		// Payouts
		api.GET("/payouts", handlers.ListPayouts)
		api.GET("/payouts/slots/:slotId", handlers.GetPayoutDetail)
		api.PUT("/payouts/slots/:slotId", handlers.SavePayout)
		api.PATCH("/payouts/slots/:slotId/toggles", handlers.UpdatePayoutToggles)
		api.PUT("/payouts/slots/:slotId/paid", handlers.SetPayoutPaid)

		// Monthly summary
		api.GET("/summary/:month", handlers.GetMonthSummary)

		// Reminders
		api.POST("/reminders/:month", handlers.SendReminders)

		// Activity
		api.GET("/activity", handlers.GetActivity)
		api.GET("/groups/:id/activity", handlers.GetGroupActivity)
	}

	// Start server
	port := config.AppConfig.Port
	log.Printf("🚀 %s server starting on port %s", config.AppConfig.AppName, port)

	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: r,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// Block until SIGINT/SIGTERM, then stop accepting requests and let any
	// queued recompute writes land before the process exits.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Println("⚠️  Forced shutdown:", err)
	}

	handlers.WaitForOutbox()
	log.Println("✅ Server stopped")
}
