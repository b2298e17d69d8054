package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/allanbakerhussmann-crypto/pickleball-app/config"
	"github.com/allanbakerhussmann-crypto/pickleball-app/internal/auth"
	"github.com/allanbakerhussmann-crypto/pickleball-app/internal/coordinator"
	"github.com/allanbakerhussmann-crypto/pickleball-app/internal/court"
	"github.com/allanbakerhussmann-crypto/pickleball-app/internal/match"
	"github.com/allanbakerhussmann-crypto/pickleball-app/internal/team"
	"github.com/allanbakerhussmann-crypto/pickleball-app/internal/tournament"
)

// SetupRoutes builds the gin engine and registers every package's routes.
func SetupRoutes() *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	db := config.DB
	appConfig := config.GetConfig()

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"service": "pickleball tournament API", "status": "ok"})
	})

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")

	auth.AuthRoutes(api, db, appConfig)

	teamRepo := team.NewGormTeamRepository(db)
	team.TeamRoutes(api, db, appConfig, teamRepo)

	tournament.TournamentRoutes(api, db, appConfig)
	match.MatchRoutes(api, db, appConfig, teamRepo)
	court.CourtRoutes(api, db, appConfig)
	coordinator.CoordinatorRoutes(api, db, appConfig)

	return r
}
