package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"foodgram/internal/config"
	"foodgram/internal/handlers"
	"foodgram/internal/middleware"
	"foodgram/internal/models"
	"foodgram/internal/repositories"
	"foodgram/internal/services"
	"foodgram/pkg/imagestore"
	"foodgram/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	// --- Database ---
	// TranslateError folds driver-specific unique violations into
	// gorm.ErrDuplicatedKey, which the services report as conflicts.
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Subscription{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.IngredientRecipe{},
		&models.Favorite{},
		&models.ShoppingCart{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Image storage ---
	images, err := imagestore.New(cfg.MediaDir)
	if err != nil {
		log.Fatalf("Failed to initialize image store: %v", err)
	}

	// --- RabbitMQ ---
	// The broker is optional: recipe events are best-effort and the API
	// keeps working without them.
	var events services.EventPublisher
	mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
	if err != nil {
		log.Printf("Warning: RabbitMQ unavailable, recipe events disabled: %v", err)
	} else {
		defer mqClient.Close()
		events = mqClient
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	tagRepo := repositories.NewGORMTagRepository(db)
	ingredientRepo := repositories.NewGORMIngredientRepository(db)
	recipeRepo := repositories.NewGORMRecipeRepository(db)
	subscriptionRepo := repositories.NewGORMSubscriptionRepository(db)
	favoriteRepo := repositories.NewGORMFavoriteRepository(db)
	cartRepo := repositories.NewGORMShoppingCartRepository(db)

	// Seed reference data for development setups.
	seedCatalog(tagRepo, ingredientRepo)

	// --- Services ---
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	userService := services.NewUserService(userRepo, subscriptionRepo)
	catalogService := services.NewCatalogService(tagRepo, ingredientRepo)
	subscriptionService := services.NewSubscriptionService(userRepo, subscriptionRepo, recipeRepo)
	recipeService := services.NewRecipeService(
		recipeRepo, tagRepo, ingredientRepo,
		favoriteRepo, cartRepo, subscriptionRepo,
		images, events, cfg,
	)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(authService, userService, subscriptionService, cfg)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	recipeHandler := handlers.NewRecipeHandler(recipeService, cfg)

	// --- Fiber app ---
	app := fiber.New()
	app.Use(logger.New())
	app.Static(imagestore.URLPrefix, cfg.MediaDir)

	required := middleware.AuthRequired(authService)
	optional := middleware.OptionalAuth(authService)

	api := app.Group("/api")
	authHandler.RegisterRoutes(api)
	catalogHandler.RegisterRoutes(api)
	userHandler.RegisterRoutes(api, required, optional)
	recipeHandler.RegisterRoutes(api, required, optional)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Recipe event consumer ---
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for recipe events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received recipe event (Tag: %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil
			}
			if consumerErr := mqClient.ConsumeRecipeEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// seedCatalog populates the tag and ingredient reference data on an empty
// database so a fresh development setup is usable immediately.
func seedCatalog(tagRepo repositories.TagRepository, ingredientRepo repositories.IngredientRepository) {
	existing, err := tagRepo.GetAll()
	if err != nil || len(existing) > 0 {
		return
	}

	tags := []models.Tag{
		{Name: "breakfast", Color: "#E26C2D", Slug: "breakfast"},
		{Name: "lunch", Color: "#49B64E", Slug: "lunch"},
		{Name: "dinner", Color: "#8775D2", Slug: "dinner"},
	}
	for i := range tags {
		if err := tagRepo.Create(&tags[i]); err != nil {
			log.Printf("Error seeding tag %s: %v", tags[i].Name, err)
		}
	}

	ingredients := []models.Ingredient{
		{Name: "salt", MeasurementUnit: "g"},
		{Name: "sugar", MeasurementUnit: "g"},
		{Name: "milk", MeasurementUnit: "ml"},
		{Name: "eggs", MeasurementUnit: "pcs"},
		{Name: "flour", MeasurementUnit: "g"},
	}
	for i := range ingredients {
		if err := ingredientRepo.Create(&ingredients[i]); err != nil {
			log.Printf("Error seeding ingredient %s: %v", ingredients[i].Name, err)
		}
	}
}
