package match

import (
	"time"

	"gorm.io/gorm"
)

type MatchStatus string

const (
	StatusMatchPending             MatchStatus = "pending"
	StatusMatchInProgress          MatchStatus = "in_progress"
	StatusMatchPendingConfirmation MatchStatus = "pending_confirmation"
	StatusMatchCompleted           MatchStatus = "completed"
	StatusMatchDisputed            MatchStatus = "disputed"
)

// Match represents one scheduled contest between two teams. Score fields are
// mutated only through lifecycle transitions, never by direct writes, so
// SubmittedByID and DisputeReason stay auditable.
type Match struct {
	gorm.Model
	TournamentID uint `json:"tournament_id" gorm:"index;not null"`
	DivisionID   uint `json:"division_id" gorm:"index;not null"`
	RoundNumber  int  `json:"round_number" gorm:"not null;default:1"`

	Team1ID uint `json:"team1_id" gorm:"index;not null"`
	Team2ID uint `json:"team2_id" gorm:"index;not null"`

	Status MatchStatus `json:"status" gorm:"index;not null;default:'pending'"`

	// Score1/Score2 are both set or both unset.
	Score1 *int `json:"score1,omitempty"`
	Score2 *int `json:"score2,omitempty"`

	// CourtID is the single source of truth for which court holds this
	// match. Cleared only when the match completes and the court is freed.
	CourtID *uint `json:"court_id,omitempty" gorm:"index"`

	// SubmittedByID is the actor whose score submission is awaiting
	// confirmation by the counterpart.
	SubmittedByID *uint `json:"submitted_by_id,omitempty"`

	// DisputeReason is meaningful only while Status == disputed.
	DisputeReason *string `json:"dispute_reason,omitempty"`

	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// TeamIDs returns both contesting team IDs.
func (m *Match) TeamIDs() []uint {
	return []uint{m.Team1ID, m.Team2ID}
}
