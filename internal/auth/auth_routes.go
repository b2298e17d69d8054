package auth

import (
	"github.com/allanbakerhussmann-crypto/pickleball-app/config"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthRoutes sets up registration/login/refresh routes.
func AuthRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewGormAuthRepository(db)
	controller := NewAuthController(repo, appConfig)

	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/register", controller.Register)
		authRoutes.POST("/login", controller.Login)
		authRoutes.POST("/refresh", controller.Refresh)
	}
}
