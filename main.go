package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"foodcourt/internal/config"
	"foodcourt/internal/handlers"
	"foodcourt/internal/middleware"
	"foodcourt/internal/models"
	"foodcourt/internal/repositories"
	"foodcourt/internal/services"
	"foodcourt/pkg/objstore"
	"foodcourt/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewApp builds the Fiber application with all routes wired against the
// given database. mq and store may be nil when the corresponding backing
// service is not configured.
func NewApp(cfg config.Config, db *gorm.DB, mq *rabbitmq.Client, store services.Uploader) (*fiber.App, error) {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Notification{},
		&models.ChatMessage{},
	); err != nil {
		return nil, err
	}

	userRepo := repositories.NewGORMUserRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	itemRepo := repositories.NewGORMOrderItemRepository(db)
	notificationRepo := repositories.NewGORMNotificationRepository(db)
	chatRepo := repositories.NewGORMChatRepository(db)

	authService := services.NewAuthService(userRepo, cfg.JWTSecret)
	userService := services.NewUserService(userRepo)
	productService := services.NewProductService(productRepo)
	orderService := services.NewOrderService(orderRepo, itemRepo, productRepo, notificationRepo, mq)
	notificationService := services.NewNotificationService(notificationRepo)
	chatService := services.NewChatService(chatRepo)
	maintenanceService := services.NewMaintenanceService(orderRepo, itemRepo, productRepo)
	uploadService := services.NewUploadService(userRepo, store)

	app := fiber.New()
	app.Use(logger.New())

	api := app.Group("/api")
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "message": "Server is running"})
	})

	handlers.NewUserHandler(authService, userService).RegisterRoutes(api)
	handlers.NewProductHandler(productService).RegisterRoutes(api)
	handlers.NewOrderHandler(orderService).RegisterRoutes(api)
	handlers.NewNotificationHandler(notificationService).RegisterRoutes(api)
	handlers.NewChatHandler(chatService).RegisterRoutes(api)
	handlers.NewUploadHandler(uploadService, cfg.UploadDir).RegisterRoutes(api)

	admin := api.Group("/admin", middleware.AuthRequired(authService), middleware.AdminRequired())
	handlers.NewMaintenanceHandler(maintenanceService).RegisterRoutes(admin)

	return app, nil
}

func main() {
	cfg := config.Load()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Server not started due to database connection issues: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Server not started due to database connection issues: %v", err)
	}
	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("Server not started due to database connection issues: %v", err)
	}

	var mq *rabbitmq.Client
	mq, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
	if err != nil {
		log.Printf("Warning: RabbitMQ unavailable, order events disabled: %v", err)
		mq = nil
	} else {
		defer mq.Close()
		go func() {
			if err := mq.ConsumeOrderEvents(func(msg amqp.Delivery) error {
				log.Printf("Received order event: %s", msg.Body)
				return nil
			}); err != nil {
				log.Printf("Order event consumer stopped: %v", err)
			}
		}()
	}

	var store services.Uploader
	if cfg.StorageURL != "" && cfg.StorageAPIKey != "" {
		client, err := objstore.New(objstore.Config{
			BaseURL: cfg.StorageURL,
			APIKey:  cfg.StorageAPIKey,
			Bucket:  cfg.StorageBucket,
		})
		if err != nil {
			log.Printf("Warning: object storage misconfigured, uploads disabled: %v", err)
		} else {
			store = client
		}
	} else {
		log.Println("Warning: object storage not configured, uploads disabled")
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatalf("Failed to create upload directory: %v", err)
	}

	app, err := NewApp(cfg, db, mq, store)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server stopped: %v", err)
		}
	}()
	log.Printf("Server running on %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server exited")
}
