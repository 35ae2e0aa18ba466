package auth

import (
	"matchpoint-api/packages/auth/handlers"
	"matchpoint-api/packages/auth/middleware"
	coreServices "matchpoint-api/packages/core/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Module struct {
	Handler *handlers.AuthHandler
}

func NewModule(db *gorm.DB) *Module {
	playerService := coreServices.NewPlayerService(db)
	return &Module{
		Handler: handlers.NewAuthHandler(db, playerService),
	}
}

func (m *Module) SetupRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", m.Handler.Register)
		auth.POST("/login", m.Handler.Login)
		auth.GET("/me", middleware.JWTMiddleware(), m.Handler.Profile)
	}
}

func JWTMiddleware() gin.HandlerFunc {
	return middleware.JWTMiddleware()
}

func GetUserID(c *gin.Context) (uint, bool) {
	return middleware.GetUserID(c)
}

func RequireAdmin(db *gorm.DB) gin.HandlerFunc {
	return middleware.RequireAdmin(db)
}
