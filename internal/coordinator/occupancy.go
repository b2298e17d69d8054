package coordinator

import "github.com/allanbakerhussmann-crypto/pickleball-app/internal/match"

// Occupancy is the derived court-occupancy projection of a match, distinct
// from the match's own lifecycle status. It is computed on demand and never
// stored.
type Occupancy string

const (
	OccupancyWaiting    Occupancy = "WAITING"
	OccupancyAssigned   Occupancy = "ASSIGNED"
	OccupancyInProgress Occupancy = "IN_PROGRESS"
	OccupancyCompleted  Occupancy = "COMPLETED"
)

// OccupancyOf projects a match onto the occupancy view. A match awaiting
// confirmation or under dispute still occupies its court — the court is not
// released until the result is final — so both render as IN_PROGRESS.
func OccupancyOf(m *match.Match) Occupancy {
	switch m.Status {
	case match.StatusMatchPending:
		if m.CourtID == nil {
			return OccupancyWaiting
		}
		return OccupancyAssigned
	case match.StatusMatchCompleted:
		return OccupancyCompleted
	default:
		return OccupancyInProgress
	}
}
