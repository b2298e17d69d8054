package court

import "gorm.io/gorm"

type CourtStatus string

const (
	StatusCourtAvailable    CourtStatus = "AVAILABLE"
	StatusCourtAssigned     CourtStatus = "ASSIGNED"
	StatusCourtInUse        CourtStatus = "IN_USE"
	StatusCourtOutOfService CourtStatus = "OUT_OF_SERVICE"
)

// Court is a physical playing surface. Its binding to a match is exclusive:
// CurrentMatchID is set iff Status is ASSIGNED or IN_USE, and no two matches
// may ever observe the same court as theirs simultaneously.
type Court struct {
	gorm.Model
	TournamentID   uint        `json:"tournament_id" gorm:"index;not null"`
	Name           string      `json:"name" gorm:"not null"`
	Status         CourtStatus `json:"status" gorm:"index;not null;default:'AVAILABLE'"`
	CurrentMatchID *uint       `json:"current_match_id,omitempty" gorm:"index"`
}

// IsOccupied reports whether a match is currently bound to the court.
func (c *Court) IsOccupied() bool {
	return c.Status == StatusCourtAssigned || c.Status == StatusCourtInUse
}
