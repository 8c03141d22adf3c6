package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"wahu-store/internal/auth"
	"wahu-store/internal/config"
	"wahu-store/internal/database"
	"wahu-store/internal/handlers"
	"wahu-store/internal/jobs"
	"wahu-store/internal/notify"
	"wahu-store/internal/payment"
	"wahu-store/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize JWT
	auth.InitJWT(cfg.App.JWTSecret)

	// Connect to database
	if err := database.Connect(cfg.GetDSN()); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Bootstrap the admin account if credentials are configured
	if adminPassword := os.Getenv("ADMIN_PASSWORD"); adminPassword != "" {
		authService := services.NewAuthService(database.GetDB())
		if err := authService.EnsureAdmin(cfg.App.AdminEmail, adminPassword); err != nil {
			log.Printf("Failed to ensure admin account: %v", err)
		}
	}

	// Shared clients
	mailer := notify.NewMailer(cfg.SMTP)
	razorpay := payment.NewClient(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(database.GetDB(), mailer)
	userHandler := handlers.NewUserHandler(database.GetDB())
	productHandler := handlers.NewProductHandler(database.GetDB())
	cartHandler := handlers.NewCartHandler(database.GetDB())
	wishlistHandler := handlers.NewWishlistHandler(database.GetDB())
	orderHandler := handlers.NewOrderHandler(database.GetDB(), mailer, cfg.App)
	affiliateHandler := handlers.NewAffiliateHandler(database.GetDB())
	adminAffiliateHandler := handlers.NewAdminAffiliateHandler(database.GetDB())
	adminDashboardHandler := handlers.NewAdminDashboardHandler(database.GetDB())
	adminHandler := handlers.NewAdminHandler(database.GetDB())
	contactHandler := handlers.NewContactHandler(database.GetDB())
	paymentHandler := handlers.NewPaymentHandler(razorpay)

	// Start click log reaper (runs hourly)
	reaper := jobs.NewClickReaper(database.GetDB())
	reaper.Start(1 * time.Hour)
	log.Println("Click reaper started")

	// Set up Gin router
	router := gin.Default()

	// CORS middleware
	allowedOrigins := []string{
		"http://localhost:3000",
		"http://localhost:5173",
		"http://127.0.0.1:3000",
		"http://127.0.0.1:5173",
	}
	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Authentication routes (public)
	authRoutes := router.Group("/api/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/forgot-password", authHandler.ForgotPassword)
		authRoutes.POST("/reset-password", authHandler.ResetPassword)
	}

	// Public catalog and storefront routes
	router.GET("/api/products", productHandler.List)
	router.GET("/api/products/:id", productHandler.Get)
	router.POST("/api/contact", contactHandler.Create)
	router.POST("/api/affiliate/click", affiliateHandler.RecordClick)

	// API routes (protected)
	api := router.Group("/api")
	api.Use(auth.AuthMiddleware())
	{
		// User endpoints
		api.GET("/user/profile", userHandler.GetProfile)
		api.PUT("/user/address", userHandler.UpdateAddress)

		// Cart endpoints
		api.GET("/cart", cartHandler.Get)
		api.POST("/cart", cartHandler.Add)
		api.DELETE("/cart/:productId", cartHandler.Remove)
		api.DELETE("/cart", cartHandler.Clear)

		// Wishlist endpoints
		api.GET("/wishlist", wishlistHandler.Get)
		api.POST("/wishlist/toggle", wishlistHandler.Toggle)
		api.DELETE("/wishlist/:productId", wishlistHandler.Remove)

		// Order endpoints
		api.POST("/orders", orderHandler.Place)
		api.GET("/orders/my", orderHandler.MyOrders)
		api.POST("/orders/:orderId/items/:itemId/return", orderHandler.RequestReturn)

		// Payment endpoints
		api.POST("/payment/create-order", paymentHandler.CreateOrder)

		// Affiliate endpoints
		affiliate := api.Group("/affiliate")
		{
			affiliate.POST("/activate", affiliateHandler.Activate)
			affiliate.PUT("/payment-method", affiliateHandler.SavePaymentMethod)
			affiliate.GET("/me", affiliateHandler.Me)
			affiliate.GET("/orders", affiliateHandler.Orders)
			affiliate.GET("/earnings", affiliateHandler.DailyEarnings)
			affiliate.GET("/analytics", affiliateHandler.Analytics)
			affiliate.POST("/withdraw", affiliateHandler.Withdraw)
			affiliate.GET("/withdrawals", affiliateHandler.WithdrawHistory)
		}
	}

	// Admin routes (protected + admin only)
	admin := router.Group("/api/admin")
	admin.Use(auth.AuthMiddleware())
	admin.Use(auth.AdminMiddleware())
	{
		// Catalog management
		admin.POST("/products", productHandler.Create)
		admin.PUT("/products/:id", productHandler.Update)
		admin.DELETE("/products/:id", productHandler.Delete)

		// Order management
		admin.GET("/orders", orderHandler.AllOrders)
		admin.PUT("/orders/:orderId/status", orderHandler.UpdateStatus)
		admin.GET("/returns", orderHandler.Returns)
		admin.PUT("/orders/:orderId/items/:itemId/return", orderHandler.DecideReturn)

		// Affiliate program management
		admin.GET("/affiliates", adminAffiliateHandler.ListAffiliates)
		admin.GET("/affiliates/earnings", adminAffiliateHandler.ListAffiliatesWithEarnings)
		admin.GET("/affiliate-orders", adminAffiliateHandler.OrdersByRef)
		admin.GET("/affiliate-orders/recent", adminAffiliateHandler.RecentAffiliateOrders)
		admin.POST("/orders/:orderId/earnings/approve", adminAffiliateHandler.ApproveEarning)
		admin.POST("/orders/:orderId/earnings/reject", adminAffiliateHandler.RejectEarning)
		admin.PUT("/orders/:orderId/commission", adminAffiliateHandler.SetCommissionStatus)
		admin.GET("/withdrawals", adminAffiliateHandler.ListWithdrawals)
		admin.PUT("/withdrawals/:requestId", adminAffiliateHandler.SetWithdrawalStatus)

		// Dashboards
		admin.GET("/dashboard/summary", adminDashboardHandler.Summary)
		admin.GET("/dashboard/top-earnings", adminDashboardHandler.TopEarnings)
		admin.GET("/dashboard/best-products", adminDashboardHandler.BestProducts)
		admin.GET("/dashboard/orders-graph", adminDashboardHandler.OrdersGraph)
		admin.GET("/analytics", adminHandler.Analytics)

		// Contact messages
		admin.GET("/contacts", contactHandler.List)
		admin.DELETE("/contacts/:id", contactHandler.Delete)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
