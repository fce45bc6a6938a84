package main

import (
	"log"

	"github.com/Vandammecasper/voting-app/internal/config"
	"github.com/Vandammecasper/voting-app/internal/database"
	"github.com/Vandammecasper/voting-app/internal/handlers"
	"github.com/Vandammecasper/voting-app/internal/middleware"
	"github.com/Vandammecasper/voting-app/internal/services"
	"github.com/Vandammecasper/voting-app/internal/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)

	hub := ws.NewHub()

	authService := services.NewAuthService(db, cfg.JWTSecret)
	lobbyService := services.NewLobbyService(db)
	membershipService := services.NewMembershipService(db)
	voteService := services.NewVoteService(db)
	historyService := services.NewHistoryService(db)
	featureService := services.NewFeatureService(db)

	authHandler := handlers.NewAuthHandler(authService)
	lobbyHandler := handlers.NewLobbyHandler(lobbyService, hub)
	participantHandler := handlers.NewParticipantHandler(membershipService, hub)
	voteHandler := handlers.NewVoteHandler(voteService, hub)
	historyHandler := handlers.NewHistoryHandler(historyService, hub)
	featureHandler := handlers.NewFeatureHandler(featureService, hub)
	watchHandler := handlers.NewWatchHandler(authService, hub)

	r := gin.New()
	// watch requests may carry the fallback query token; keep their
	// URLs out of the access log
	r.Use(
		gin.LoggerWithConfig(gin.LoggerConfig{SkipPaths: []string{"/v1/watch"}}),
		gin.Recovery(),
	)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	api := r.Group("/v1")
	{
		api.POST("/auth/anonymous", authHandler.SignInAnonymously)
		api.GET("/watch", watchHandler.HandleWatch)

		authed := api.Group("")
		authed.Use(middleware.JWTAuth(authService))
		{
			authed.POST("/lobbies", lobbyHandler.Push)
			authed.GET("/lobbies/:id", lobbyHandler.Get)
			authed.PATCH("/lobbies/:id", lobbyHandler.Patch)
			authed.DELETE("/lobbies/:id", lobbyHandler.Delete)

			authed.GET("/lobbyCodes/:code", lobbyHandler.GetCode)
			authed.PUT("/lobbyCodes/:code", lobbyHandler.PutCode)
			authed.DELETE("/lobbyCodes/:code", lobbyHandler.DeleteCode)

			authed.GET("/participants/:lobbyId", participantHandler.List)
			authed.DELETE("/participants/:lobbyId", participantHandler.DeleteAll)
			authed.GET("/participants/:lobbyId/:userId", participantHandler.Get)
			authed.PUT("/participants/:lobbyId/:userId", participantHandler.Put)
			authed.PATCH("/participants/:lobbyId/:userId", participantHandler.Patch)
			authed.DELETE("/participants/:lobbyId/:userId", participantHandler.Delete)

			authed.GET("/votes/:lobbyId", voteHandler.List)
			authed.DELETE("/votes/:lobbyId", voteHandler.DeleteAll)
			authed.GET("/votes/:lobbyId/:userId", voteHandler.Get)
			authed.PUT("/votes/:lobbyId/:userId", voteHandler.Put)
			authed.DELETE("/votes/:lobbyId/:userId", voteHandler.Delete)

			authed.GET("/userHistory/:userId", historyHandler.List)
			authed.GET("/userHistory/:userId/:lobbyId", historyHandler.Get)
			authed.PUT("/userHistory/:userId/:lobbyId", historyHandler.Put)
			authed.DELETE("/userHistory/:userId/:lobbyId", historyHandler.Delete)

			authed.GET("/featureRequests", featureHandler.List)
			authed.POST("/featureRequests", featureHandler.Push)
			authed.GET("/featureRequests/:id", featureHandler.Get)
			authed.PATCH("/featureRequests/:id", featureHandler.Patch)
			authed.DELETE("/featureRequests/:id", featureHandler.Delete)
			authed.PUT("/featureRequests/:id/likes/:userId", featureHandler.Like)
			authed.DELETE("/featureRequests/:id/likes/:userId", featureHandler.Unlike)
		}
	}

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
