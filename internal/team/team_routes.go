package team

import (
	"github.com/allanbakerhussmann-crypto/pickleball-app/config"
	mw "github.com/allanbakerhussmann-crypto/pickleball-app/internal/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TeamRoutes sets up all team-related routes.
func TeamRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, repo TeamRepository) {
	controller := NewTeamController(repo)

	teamRoutes := router.Group("/teams")
	teamRoutes.Use(mw.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		teamRoutes.POST("", controller.CreateTeam)
		teamRoutes.GET("", controller.GetTeams)
		teamRoutes.GET("/:id", controller.GetTeamByID)
		teamRoutes.POST("/:id/members", controller.AddMember)
	}
}
