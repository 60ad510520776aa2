// Package routes defines the API routing configuration.
// It wires repositories, services and handlers together and groups
// routes by their authentication requirements.
package routes

import (
	"bankcards/internal/cardnumber"
	"bankcards/internal/handlers"
	"bankcards/internal/middleware"
	"bankcards/internal/repositories"
	"bankcards/internal/repositories/cache"
	"bankcards/internal/services/auth"
	"bankcards/internal/services/blockrequest"
	"bankcards/internal/services/card"
	"bankcards/internal/services/transfer"
	"bankcards/internal/services/user"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, db *gorm.DB, cacheService *cache.Service,
	codec *cardnumber.Codec, log *zap.Logger) {
	// Repositories
	userRepo := repositories.NewUserRepository(db, cacheService)
	cardRepo := repositories.NewCardRepository(db)
	transactionRepo := repositories.NewTransactionRepository(db)
	blockRequestRepo := repositories.NewBlockRequestRepository(db)

	// Services
	userService := user.NewService(userRepo, user.BcryptHasher{}, log)
	cardService := card.NewService(cardRepo, userRepo, codec, log)
	transferService := transfer.NewService(db, cardRepo, transactionRepo, codec, log)
	blockRequestService := blockrequest.NewService(blockRequestRepo, cardRepo, codec, log)
	authService := auth.NewService(userRepo, userService, log)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	cardHandler := handlers.NewCardHandler(cardService)
	transferHandler := handlers.NewTransferHandler(transferService)
	blockRequestHandler := handlers.NewBlockRequestHandler(blockRequestService)
	healthHandler := handlers.NewHealthHandler(db, cacheService)

	authMiddleware := middleware.NewAuthMiddleware(userRepo, log)

	app.Get("/health", healthHandler.Check)

	api := app.Group("/api/v1")

	// Public endpoints
	authRoutes := api.Group("/auth")
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Post("/register", authHandler.Register)

	// User administration, administrator only
	users := api.Group("/users", authMiddleware.Handler, middleware.RequireAdmin)
	users.Get("", userHandler.List)
	users.Post("", userHandler.Create)
	users.Get("/:id", userHandler.Get)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
	users.Patch("/:id/activate", userHandler.Activate)
	users.Patch("/:id/deactivate", userHandler.Deactivate)

	// Card lifecycle. "/my" must come before "/:id".
	cards := api.Group("/card", authMiddleware.Handler)
	cards.Get("", middleware.RequireAdmin, cardHandler.ListAll)
	cards.Get("/my", cardHandler.ListMy)
	cards.Get("/:id", cardHandler.Get)
	cards.Post("", middleware.RequireAdmin, cardHandler.Create)
	cards.Patch("/:id/block", middleware.RequireAdmin, cardHandler.Block)
	cards.Patch("/:id/unblock", middleware.RequireAdmin, cardHandler.Unblock)
	cards.Patch("/:id/activate", middleware.RequireAdmin, cardHandler.Activate)
	cards.Delete("/:id", middleware.RequireAdmin, cardHandler.Delete)

	// Money movement and block requests
	app.Post("/transactions", authMiddleware.Handler, transferHandler.Create)
	app.Post("/request/card_block", authMiddleware.Handler, blockRequestHandler.Submit)
}
