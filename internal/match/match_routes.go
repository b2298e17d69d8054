package match

import (
	"github.com/allanbakerhussmann-crypto/pickleball-app/config"
	"github.com/allanbakerhussmann-crypto/pickleball-app/internal/auth"
	mw "github.com/allanbakerhussmann-crypto/pickleball-app/internal/middleware"
	"github.com/allanbakerhussmann-crypto/pickleball-app/internal/team"
	"github.com/allanbakerhussmann-crypto/pickleball-app/pkg/rmiddleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// MatchRoutes sets up all match lifecycle routes.
func MatchRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, teamRepo team.TeamRepository) {
	matchRepo := NewGormMatchRepository(db)
	roleRepo := auth.NewGormAuthRepository(db)
	controller := NewMatchController(matchRepo, teamRepo, roleRepo)

	jwtSecret := appConfig.JWT.AccessTokenSecret

	matchRoutes := router.Group("/matches")
	matchRoutes.Use(mw.AuthMiddleware(jwtSecret, db))
	{
		matchRoutes.GET("", controller.GetMatches)
		matchRoutes.GET("/:id", controller.GetMatchByID)

		// Lifecycle transitions. Capability checks (participant vs
		// organizer) happen inside the state machine, not the router.
		matchRoutes.POST("/:id/start", controller.StartMatch)
		matchRoutes.POST("/:id/score", controller.SubmitScore)
		matchRoutes.POST("/:id/confirm", controller.ConfirmScore)
		matchRoutes.POST("/:id/dispute", controller.DisputeScore)
	}

	organizerRoutes := router.Group("/matches")
	organizerRoutes.Use(mw.AuthMiddleware(jwtSecret, db))
	organizerRoutes.Use(rmiddleware.OrganizerMiddleware(db))
	{
		organizerRoutes.POST("", controller.CreateMatch)
		organizerRoutes.POST("/:id/resolve", controller.ResolveDispute)
	}
}
