package coordinator

import (
	"github.com/allanbakerhussmann-crypto/pickleball-app/config"
	mw "github.com/allanbakerhussmann-crypto/pickleball-app/internal/middleware"
	"github.com/allanbakerhussmann-crypto/pickleball-app/pkg/rmiddleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CoordinatorRoutes sets up court allocation routes.
func CoordinatorRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewGormCoordinatorRepository(db)
	controller := NewCoordinatorController(NewCoordinator(repo))

	jwtSecret := appConfig.JWT.AccessTokenSecret

	viewRoutes := router.Group("/tournaments")
	viewRoutes.Use(mw.AuthMiddleware(jwtSecret, db))
	{
		viewRoutes.GET("/:id/queue", controller.WaitingQueue)
		viewRoutes.GET("/:id/courts", controller.CourtBoard)
	}

	allocationRoutes := router.Group("/courts")
	allocationRoutes.Use(mw.AuthMiddleware(jwtSecret, db))
	allocationRoutes.Use(rmiddleware.OrganizerMiddleware(db))
	{
		allocationRoutes.POST("/:id/assign", controller.AssignMatchToCourt)
		allocationRoutes.POST("/:id/start", controller.StartMatchOnCourt)
		allocationRoutes.POST("/:id/finish", controller.FinishMatchOnCourt)
	}
}
