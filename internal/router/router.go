package router

import (
	"log"
	"time"

	"github.com/anonto42/inkstream/backend/internal/auth"
	"github.com/anonto42/inkstream/backend/internal/graph"
	"github.com/anonto42/inkstream/backend/internal/handlers"
	"github.com/anonto42/inkstream/backend/internal/middleware"
	"github.com/anonto42/inkstream/backend/internal/repositories"
	"github.com/anonto42/inkstream/backend/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, mgClient *mongo.Client, cfg *config.Config) error {
	db := mgClient.Database(cfg.MongoDB)

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewMongoUserRepository(db)
	postRepo := repositories.NewMongoPostRepository(db)
	commentRepo := repositories.NewMongoCommentRepository(db)
	likeRepo := repositories.NewMongoLikeRepository(db)

	// --- GraphQL ---
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)
	resolver := graph.NewResolver(userRepo, postRepo, commentRepo, likeRepo, tokens)
	schema, err := graph.NewSchema(resolver)
	if err != nil {
		return err
	}

	graphQLHandler := handlers.NewGraphQLHandler(schema)
	graphQLHandler.RegisterGraphQLRoutes(e, middleware.ViewerContext(tokens))
	log.Println("GraphQL route configured.")

	return nil
}
