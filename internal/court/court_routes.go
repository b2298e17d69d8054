package court

import (
	"github.com/allanbakerhussmann-crypto/pickleball-app/config"
	mw "github.com/allanbakerhussmann-crypto/pickleball-app/internal/middleware"
	"github.com/allanbakerhussmann-crypto/pickleball-app/pkg/rmiddleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CourtRoutes sets up court administration routes. Court allocation
// (assign/start/finish) lives in the coordinator package.
func CourtRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewGormCourtRepository(db)
	controller := NewCourtController(repo)

	organizerRoutes := router.Group("/courts")
	organizerRoutes.Use(mw.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	organizerRoutes.Use(rmiddleware.OrganizerMiddleware(db))
	{
		organizerRoutes.POST("", controller.CreateCourt)
		organizerRoutes.PUT("/:id", controller.RenameCourt)
		organizerRoutes.POST("/:id/out-of-service", controller.MarkOutOfService)
		organizerRoutes.POST("/:id/return-to-service", controller.ReturnToService)
	}
}
