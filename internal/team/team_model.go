package team

import (
	"time"

	"gorm.io/gorm"
)

// Team represents one side of a match: a doubles pair or a singles player
// wrapped in a one-member team.
type Team struct {
	gorm.Model
	Name        string `json:"name" gorm:"not null"`
	CreatedByID uint   `json:"created_by_id" gorm:"index"`
}

// TeamMember represents a user's membership in a team.
type TeamMember struct {
	gorm.Model
	TeamID   uint      `json:"team_id" gorm:"index;not null;uniqueIndex:idx_team_user"`
	UserID   uint      `json:"user_id" gorm:"index;not null;uniqueIndex:idx_team_user"`
	Role     string    `json:"role" gorm:"default:'player'"`
	JoinedAt time.Time `json:"joined_at"`
	IsActive bool      `json:"is_active" gorm:"default:true"`
}
