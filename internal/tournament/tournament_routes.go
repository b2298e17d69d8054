package tournament

import (
	"github.com/allanbakerhussmann-crypto/pickleball-app/config"
	mw "github.com/allanbakerhussmann-crypto/pickleball-app/internal/middleware"
	"github.com/allanbakerhussmann-crypto/pickleball-app/pkg/rmiddleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TournamentRoutes sets up all tournament-related routes.
func TournamentRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewGormTournamentRepository(db)
	controller := NewTournamentController(repo)

	tournamentRoutes := router.Group("/tournaments")
	tournamentRoutes.Use(mw.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		tournamentRoutes.GET("", controller.GetTournaments)
		tournamentRoutes.GET("/:id", controller.GetTournamentByID)
		tournamentRoutes.GET("/:id/divisions", controller.GetDivisions)
	}

	organizerRoutes := router.Group("/tournaments")
	organizerRoutes.Use(mw.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	organizerRoutes.Use(rmiddleware.OrganizerMiddleware(db))
	{
		organizerRoutes.POST("", controller.CreateTournament)
		organizerRoutes.PUT("/:id", controller.UpdateTournament)
		organizerRoutes.DELETE("/:id", controller.DeleteTournament)
		organizerRoutes.POST("/:id/divisions", controller.CreateDivision)
	}
}
