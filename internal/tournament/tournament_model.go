package tournament

import (
	"time"

	"gorm.io/gorm"
)

type TournamentStatus string

const (
	StatusRegistrationOpen TournamentStatus = "registration_open"
	StatusInProgress       TournamentStatus = "in_progress"
	StatusCompleted        TournamentStatus = "completed"
)

// Tournament is the scheduling context matches and courts belong to.
type Tournament struct {
	gorm.Model
	Name            string           `json:"name" gorm:"not null"`
	Description     string           `json:"description" gorm:"type:text"`
	CreatedByUserID uint             `json:"created_by_user_id" gorm:"index"`
	StartDate       time.Time        `json:"start_date"`
	EndDate         time.Time        `json:"end_date"`
	Status          TournamentStatus `json:"status" gorm:"index;default:'registration_open'"`
	Divisions       []Division       `json:"divisions,omitempty" gorm:"foreignKey:TournamentID"`
}

// Division groups matches within a tournament (e.g. "Mixed Doubles 3.5").
type Division struct {
	gorm.Model
	TournamentID uint   `json:"tournament_id" gorm:"index;not null"`
	Name         string `json:"name" gorm:"not null"`
	PlayType     string `json:"play_type" gorm:"default:'doubles'"` // singles, doubles, mixed
	MaxTeams     int    `json:"max_teams,omitempty"`
}
