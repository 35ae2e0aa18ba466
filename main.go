package main

import (
	"log"
	"os"

	"matchpoint-api/config"
	_ "matchpoint-api/docs" // Swagger docs
	"matchpoint-api/packages/auth"
	coreCron "matchpoint-api/packages/core/cron"
	"matchpoint-api/packages/core/handlers"
	"matchpoint-api/packages/core/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Matchpoint API
// @version         1.0
// @description     Multi-sport ladder API with Elo ratings for solo and duo teams

// @license.name  MIT
// @license.url   http://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey  BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config.ConnectDatabase()
	db := config.DB

	r := gin.Default()
	r.Use(cors.Default())

	// Services
	matchService := services.NewMatchService(db)
	teamService := services.NewTeamService(db)
	statsService := services.NewStatsService(db)
	sportService := services.NewSportService(db)
	playerService := services.NewPlayerService(db)

	// Auth module
	authModule := auth.NewModule(db)
	authModule.SetupRoutes(r)

	// Handlers
	matchHandler := handlers.NewMatchHandler(matchService)
	teamHandler := handlers.NewTeamHandler(teamService)
	statsHandler := handlers.NewStatsHandler(statsService)
	sportHandler := handlers.NewSportHandler(sportService)
	playerHandler := handlers.NewPlayerHandler(playerService)

	matches := r.Group("/matches")
	{
		matches.GET("", matchHandler.GetMatches)
		matches.GET("/recent", matchHandler.GetRecentMatches)
		matches.GET("/:id", matchHandler.GetMatch)
		matches.POST("", auth.JWTMiddleware(), matchHandler.CreateMatch)
		matches.POST("/:id/settle", auth.JWTMiddleware(), matchHandler.SettleMatch)
	}

	teams := r.Group("/teams")
	{
		teams.GET("", teamHandler.GetTeams)
		teams.GET("/:id", teamHandler.GetTeam)
		teams.POST("", auth.JWTMiddleware(), teamHandler.ResolveTeam)
		teams.POST("/:id/players", auth.JWTMiddleware(), teamHandler.AddPlayer)
		teams.DELETE("/:id/players/:playerId", auth.JWTMiddleware(), teamHandler.RemovePlayer)
	}

	stats := r.Group("/stats")
	{
		stats.GET("/leaderboard/:sportId", statsHandler.GetLeaderboard)
		stats.GET("/player/:playerId", statsHandler.GetAllPlayerStats)
		stats.GET("/player/:playerId/sport/:sportId", statsHandler.GetPlayerStats)
	}

	sports := r.Group("/sports")
	{
		sports.GET("", sportHandler.GetSports)
		sports.GET("/:id", sportHandler.GetSport)
		sports.POST("", auth.JWTMiddleware(), auth.RequireAdmin(db), sportHandler.CreateSport)
		sports.PUT("/:id", auth.JWTMiddleware(), auth.RequireAdmin(db), sportHandler.UpdateSport)
		sports.DELETE("/:id", auth.JWTMiddleware(), auth.RequireAdmin(db), sportHandler.DeleteSport)
	}

	players := r.Group("/players")
	{
		players.GET("", playerHandler.GetPlayers)
		players.GET("/:id", playerHandler.GetPlayer)
		players.POST("", auth.JWTMiddleware(), auth.RequireAdmin(db), playerHandler.CreatePlayer)
		players.PUT("/:id", auth.JWTMiddleware(), playerHandler.UpdatePlayer)
		players.DELETE("/:id", auth.JWTMiddleware(), auth.RequireAdmin(db), playerHandler.DeletePlayer)
	}

	// Swagger endpoint
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/health", healthHandler)

	// Background rank recalculation
	scheduler := coreCron.NewScheduler(sportService, statsService)
	if err := scheduler.Start(); err != nil {
		log.Printf("Scheduler failed to start: %v", err)
	}
	defer scheduler.Stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	r.Run(":" + port)
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Message  string `json:"message" example:"Server is running"`
	Database string `json:"database" example:"connected"`
}

// @Summary Health Check
// @Description Check if the server is running and database is connected
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func healthHandler(c *gin.Context) {
	c.JSON(200, HealthResponse{
		Message:  "Server is running",
		Database: "connected",
	})
}
