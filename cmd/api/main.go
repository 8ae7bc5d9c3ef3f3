package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/menublend/menublend-backend/internal/config"
	"github.com/menublend/menublend-backend/internal/handler"
	"github.com/menublend/menublend-backend/internal/middleware"
	"github.com/menublend/menublend-backend/internal/repository"
	"github.com/menublend/menublend-backend/internal/service"
	"github.com/menublend/menublend-backend/pkg/database"
	"github.com/menublend/menublend-backend/pkg/email"
	"github.com/menublend/menublend-backend/pkg/jwt"
	"github.com/menublend/menublend-backend/pkg/qrcode"
	"github.com/menublend/menublend-backend/pkg/storage"
	"github.com/menublend/menublend-backend/pkg/utils"
)

func main() {
	// .env is optional in production, required locally.
	_ = godotenv.Load()

	cfg := config.LoadConfig()

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer zapLogger.Sync()

	db := database.NewDatabase(cfg.DatabaseURL)

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewRestaurantProfileRepository(db)
	orderRepo := repository.NewDishOrderRepository(db)
	photoRepo := repository.NewDishPhotoRepository(db)
	paymentRepo := repository.NewPaymentRecordRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	packRepo := repository.NewCreditPackRepository(db)

	// Storage
	r2Storage, err := storage.NewCloudflareStorage(cfg)
	if err != nil {
		log.Fatal("Failed to initialize R2 storage:", err)
	}

	// Email
	emailService := email.NewEmailService(
		cfg.Email.ResendAPIKey,
		cfg.Email.FromAddress,
		cfg.Email.FromName,
		zapLogger,
	)

	tokenManager := jwt.NewManager(cfg.JWTSecret)

	// Services
	notificationService := service.NewNotificationService(
		emailService,
		cfg.SiteURL,
		cfg.Email.AdminEmail,
		zapLogger,
	)
	authService := service.NewAuthService(userRepo, profileRepo, emailService, tokenManager, cfg)
	profileService := service.NewProfileService(profileRepo)
	orderService := service.NewDishOrderService(
		orderRepo,
		photoRepo,
		profileRepo,
		paymentRepo,
		userRepo,
		notificationService,
		zapLogger,
	)
	photoService := service.NewPhotoService(photoRepo, orderRepo, r2Storage, zapLogger)
	billingService := service.NewBillingService(profileRepo, paymentRepo, subRepo, zapLogger)
	paymentService := service.NewPaymentService(paymentRepo, packRepo, subRepo, orderRepo, zapLogger)
	qrService := qrcode.NewQRService(cfg.SiteURL)

	validator := utils.NewValidator()

	// Handlers
	authHandler := handler.NewAuthHandler(authService, validator)
	profileHandler := handler.NewProfileHandler(profileService, validator)
	orderHandler := handler.NewDishOrderHandler(orderService, qrService, validator)
	photoHandler := handler.NewPhotoHandler(photoService)
	billingHandler := handler.NewBillingHandler(billingService, paymentService, cfg.Paddle.WebhookSecret)
	adminHandler := handler.NewAdminHandler(orderService, paymentService, validator)

	// Router
	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "https://menublend.com, https://www.menublend.com, http://localhost:5173",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE",
		AllowCredentials: true,
	}))
	app.Use(logger.New())
	app.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))

	api := app.Group("/api")

	// Public routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/forgot-password", authHandler.ForgotPassword)
	auth.Post("/reset-password", authHandler.ResetPassword)

	// Paddle webhook (public, signature-verified)
	api.Post("/billing/webhook", billingHandler.HandlePaddleWebhook)

	// Public catalog and demo routes
	api.Get("/billing/packs", billingHandler.GetCreditPacks)
	api.Get("/demo/dishes/:id", orderHandler.GetDemoDish)
	api.Get("/demo/dishes/:id/qr", orderHandler.GetDemoQR)

	// Protected routes
	api.Use(middleware.AuthMiddleware(tokenManager))
	{
		auth.Post("/change-password", authHandler.ChangePassword)

		profile := api.Group("/profile")
		profile.Get("/", profileHandler.GetProfile)
		profile.Put("/", profileHandler.UpdateProfile)

		dishes := api.Group("/dishes")
		dishes.Post("/", orderHandler.CreateOrder)
		dishes.Get("/", orderHandler.GetMyOrders)
		dishes.Get("/:id", orderHandler.GetOrder)
		dishes.Post("/:id/confirm", orderHandler.ConfirmOrder)
		dishes.Post("/:id/photos", photoHandler.UploadPhoto)
		dishes.Get("/:id/photos", photoHandler.GetOrderPhotos)
		dishes.Post("/:id/checkout", billingHandler.CreateDishCheckout)

		billing := api.Group("/billing")
		billing.Post("/packs/:id/checkout", billingHandler.CreatePackCheckout)
		billing.Get("/subscription", billingHandler.GetSubscription)
		billing.Get("/history", billingHandler.GetPurchaseHistory)

		// Staff routes
		admin := api.Group("/admin", middleware.AdminMiddleware())
		admin.Get("/orders", adminHandler.ListOrders)
		admin.Get("/orders/:id", adminHandler.GetOrder)
		admin.Patch("/orders/:id/status", adminHandler.UpdateOrderStatus)
		admin.Patch("/payments/:id", adminHandler.OverridePayment)
	}

	log.Fatal(app.Listen(":8080"))
}
