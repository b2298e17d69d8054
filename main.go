package main

import (
	"log"

	"github.com/allanbakerhussmann-crypto/pickleball-app/config"
	"github.com/allanbakerhussmann-crypto/pickleball-app/internal/court"
	"github.com/allanbakerhussmann-crypto/pickleball-app/internal/match"
	"github.com/allanbakerhussmann-crypto/pickleball-app/internal/team"
	"github.com/allanbakerhussmann-crypto/pickleball-app/internal/tournament"
	"github.com/allanbakerhussmann-crypto/pickleball-app/internal/user"
	"github.com/allanbakerhussmann-crypto/pickleball-app/routes"
)

// @title Pickleball Tournament API
// @version 1.0
// @description Live tournament coordination: match lifecycle and court allocation.
// @BasePath /api
func main() {
	if err := config.Initialize(); err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	cfg := config.GetConfig()

	err := config.DB.AutoMigrate(
		&user.User{}, &user.Role{}, &user.UserRole{}, &user.RefreshToken{},
		&team.Team{}, &team.TeamMember{},
		&tournament.Tournament{}, &tournament.Division{},
		&match.Match{},
		&court.Court{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
	log.Println("AutoMigrate successful")

	r := routes.SetupRoutes()

	log.Printf("Starting server on port %s in %s mode\n", cfg.App.Port, cfg.App.Env)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
