package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"petadopt-backend/internal/auth"
	"petadopt-backend/internal/db"
	"petadopt-backend/internal/handlers"
	"petadopt-backend/internal/models"
	"petadopt-backend/internal/services"
	"petadopt-backend/internal/storage"
	"petadopt-backend/internal/store/postgres"
	"petadopt-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// New builds the Fiber app over the given services. Split out of Run so
// tests can construct the app over in-memory stores.
func New(userService *services.UserService, petService *services.PetService, tokens *auth.JWTManager, uploads *storage.Uploads) *fiber.App {
	app := fiber.New()

	// Middleware
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	// Serve uploaded files
	app.Static("/uploads", uploads.Dir())

	// Routes
	api := app.Group("/api")

	// Public Routes
	api.Post("/auth/register", func(c *fiber.Ctx) error {
		var req models.RegisterRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request"})
		}
		res, err := userService.Register(c.Context(), req)
		if err != nil {
			if errors.Is(err, services.ErrEmailTaken) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "email already in use"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "registration failed"})
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	})

	api.Post("/auth/login", func(c *fiber.Ctx) error {
		var req models.LoginRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request"})
		}
		res, err := userService.Login(c.Context(), req)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
			case errors.Is(err, services.ErrInvalidCredentials):
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "wrong password"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "login failed"})
		}
		return c.JSON(res)
	})

	api.Get("/pets", handlers.ListPetsHandler(petService))

	// Protected Routes. Order matters: /pets/my must be registered
	// before /pets/:id so "my" is not read as an id.
	authRequired := handlers.AuthRequired(tokens)

	api.Get("/auth/me", authRequired, func(c *fiber.Ctx) error {
		user, err := userService.Get(c.Context(), handlers.UserID(c))
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "error fetching profile"})
		}
		return c.JSON(user)
	})

	api.Get("/pets/my", authRequired, handlers.MyPetsHandler(petService))
	api.Get("/pets/:id", handlers.GetPetHandler(petService))
	api.Post("/pets", authRequired, handlers.CreatePetHandler(petService, uploads))
	api.Put("/pets/:id", authRequired, handlers.UpdatePetHandler(petService, uploads))
	api.Delete("/pets/:id", authRequired, handlers.DeletePetHandler(petService))

	// Health Check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"message": "not found"})
	})

	return app
}

func Run() {
	// Load Env
	if err := utils.LoadEnv(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Init DB
	connString := utils.GetEnv("DATABASE_URL", "")
	if connString == "" {
		// Fallback to individual vars
		connString = "postgres://" + utils.GetEnv("POSTGRES_USER", "postgres") + ":" +
			utils.GetEnv("POSTGRES_PASSWORD", "postgres") + "@" +
			utils.GetEnv("POSTGRES_HOST", "localhost") + ":" +
			utils.GetEnv("POSTGRES_PORT", "5432") + "/" +
			utils.GetEnv("POSTGRES_DB", "petadopt") + "?sslmode=disable"
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, connString)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := db.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	// Upload storage
	uploads, err := storage.NewUploads(utils.GetEnv("UPLOAD_DIR", "uploads"))
	if err != nil {
		log.Fatalf("Failed to init upload storage: %v", err)
	}

	// Stores & Services
	userStore := postgres.NewUserStore(pool)
	petStore := postgres.NewPetStore(pool)
	tokens := auth.NewJWTManager(utils.GetEnv("JWT_SECRET", "secret"), auth.TokenTTL)
	userService := services.NewUserService(userStore, tokens)
	petService := services.NewPetService(petStore, userStore, uploads)

	app := New(userService, petService, tokens, uploads)

	// Start Server
	port := utils.GetEnv("PORT", "5000")
	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	// Graceful Shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c // Block until signal
	log.Println("Gracefully shutting down...")
	_ = app.Shutdown()
	log.Println("Server shutdown complete")
}
