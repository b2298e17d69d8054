package coordinator

import (
	"fmt"
	"time"

	"github.com/allanbakerhussmann-crypto/pickleball-app/internal/court"
	"github.com/allanbakerhussmann-crypto/pickleball-app/internal/match"
	"github.com/allanbakerhussmann-crypto/pickleball-app/pkg/apperrors"
)

// Repository is the persistence surface the coordinator drives. The three
// write methods are guarded two-entity transactions: they re-check the
// optimistic predicate inside the transaction and return
// apperrors.ErrConflict when a concurrent writer got there first, leaving
// both entities untouched.
type Repository interface {
	GetMatchByID(id uint) (*match.Match, error)
	GetCourtByID(id uint) (*court.Court, error)
	GetWaitingMatches(tournamentID uint) ([]match.Match, error)
	GetCourtsByTournament(tournamentID uint) ([]court.Court, error)

	// BindMatchToCourt claims an AVAILABLE court for a WAITING match:
	// court → ASSIGNED with current_match_id set, match.court_id set.
	BindMatchToCourt(matchID, courtID uint) error

	// StartOnCourt moves the bound match to in_progress and the court to
	// IN_USE as one unit.
	StartOnCourt(courtID, matchID uint, startedAt time.Time) error

	// ReleaseCourt frees the court and clears the match's binding once the
	// match has completed.
	ReleaseCourt(courtID, matchID uint) error
}

// Coordinator sequences match-lifecycle and court-allocation operations so
// the two views never observably diverge. It is the only component external
// callers go through for court-bound operations.
type Coordinator struct {
	repo Repository
}

func NewCoordinator(repo Repository) *Coordinator {
	return &Coordinator{repo: repo}
}

// AssignMatchToCourt binds a WAITING match to an AVAILABLE court. Assignment
// is always an explicit organizer action naming both sides; the coordinator
// checks constraints, it does not schedule.
func (co *Coordinator) AssignMatchToCourt(matchID, courtID uint) (*match.Match, *court.Court, error) {
	m, err := co.repo.GetMatchByID(matchID)
	if err != nil {
		return nil, nil, err
	}
	if m == nil {
		return nil, nil, fmt.Errorf("%w: match %d", apperrors.ErrNotFound, matchID)
	}

	ct, err := co.repo.GetCourtByID(courtID)
	if err != nil {
		return nil, nil, err
	}
	if ct == nil {
		return nil, nil, fmt.Errorf("%w: court %d", apperrors.ErrNotFound, courtID)
	}

	if occ := OccupancyOf(m); occ != OccupancyWaiting {
		return nil, nil, fmt.Errorf("%w: match %d is %s, only waiting matches can be assigned",
			apperrors.ErrInvalidTransition, matchID, occ)
	}
	if ct.Status != court.StatusCourtAvailable {
		return nil, nil, fmt.Errorf("%w: court %q is %s", apperrors.ErrUnavailable, ct.Name, ct.Status)
	}

	if err := co.repo.BindMatchToCourt(matchID, courtID); err != nil {
		return nil, nil, err
	}

	return co.reload(matchID, courtID)
}

// StartMatchOnCourt starts the match bound to an ASSIGNED court and flips
// the court to IN_USE. Both sub-steps commit or neither is observable.
func (co *Coordinator) StartMatchOnCourt(courtID uint, actor match.Actor) (*match.Match, *court.Court, error) {
	ct, err := co.repo.GetCourtByID(courtID)
	if err != nil {
		return nil, nil, err
	}
	if ct == nil {
		return nil, nil, fmt.Errorf("%w: court %d", apperrors.ErrNotFound, courtID)
	}
	if ct.Status != court.StatusCourtAssigned || ct.CurrentMatchID == nil {
		return nil, nil, fmt.Errorf("%w: court %q has no assigned match to start",
			apperrors.ErrInvalidTransition, ct.Name)
	}

	m, err := co.repo.GetMatchByID(*ct.CurrentMatchID)
	if err != nil {
		return nil, nil, err
	}
	if m == nil {
		return nil, nil, fmt.Errorf("%w: match %d bound to court %q", apperrors.ErrNotFound, *ct.CurrentMatchID, ct.Name)
	}

	// The lifecycle state machine validates the transition on the snapshot;
	// the guarded write re-checks it against the committed state.
	if err := match.Start(m, actor); err != nil {
		return nil, nil, err
	}

	if err := co.repo.StartOnCourt(courtID, m.ID, *m.StartedAt); err != nil {
		return nil, nil, err
	}

	return co.reload(m.ID, courtID)
}

// FinishMatchOnCourt frees an occupied court once its match has reached
// completed. A court cannot be freed while its match's result is still
// pending or disputed, which prevents premature reassignment of a contested
// court. ASSIGNED courts qualify too: a match completed through the plain
// lifecycle endpoints must not strand its court.
func (co *Coordinator) FinishMatchOnCourt(courtID uint) (*match.Match, *court.Court, error) {
	ct, err := co.repo.GetCourtByID(courtID)
	if err != nil {
		return nil, nil, err
	}
	if ct == nil {
		return nil, nil, fmt.Errorf("%w: court %d", apperrors.ErrNotFound, courtID)
	}
	if !ct.IsOccupied() || ct.CurrentMatchID == nil {
		return nil, nil, fmt.Errorf("%w: court %q has no bound match to release", apperrors.ErrInvalidTransition, ct.Name)
	}

	m, err := co.repo.GetMatchByID(*ct.CurrentMatchID)
	if err != nil {
		return nil, nil, err
	}
	if m == nil {
		return nil, nil, fmt.Errorf("%w: match %d bound to court %q", apperrors.ErrNotFound, *ct.CurrentMatchID, ct.Name)
	}
	if m.Status != match.StatusMatchCompleted {
		return nil, nil, fmt.Errorf("%w: match on court %q is %s, the court stays bound until the result is final",
			apperrors.ErrUnavailable, ct.Name, m.Status)
	}

	if err := co.repo.ReleaseCourt(courtID, m.ID); err != nil {
		return nil, nil, err
	}

	return co.reload(m.ID, courtID)
}

// WaitingQueue lists the matches waiting for a court, in creation order.
func (co *Coordinator) WaitingQueue(tournamentID uint) ([]match.Match, error) {
	return co.repo.GetWaitingMatches(tournamentID)
}

// CourtView pairs a court with its bound match (if any) and that match's
// occupancy projection, for the live court board.
type CourtView struct {
	Court     court.Court  `json:"court"`
	Match     *match.Match `json:"match,omitempty"`
	Occupancy *Occupancy   `json:"occupancy,omitempty"`
}

// CourtBoard returns every court of a tournament with the occupancy view of
// its bound match.
func (co *Coordinator) CourtBoard(tournamentID uint) ([]CourtView, error) {
	courts, err := co.repo.GetCourtsByTournament(tournamentID)
	if err != nil {
		return nil, err
	}

	views := make([]CourtView, 0, len(courts))
	for _, ct := range courts {
		view := CourtView{Court: ct}
		if ct.CurrentMatchID != nil {
			m, err := co.repo.GetMatchByID(*ct.CurrentMatchID)
			if err != nil {
				return nil, err
			}
			if m != nil {
				occ := OccupancyOf(m)
				view.Match = m
				view.Occupancy = &occ
			}
		}
		views = append(views, view)
	}
	return views, nil
}

func (co *Coordinator) reload(matchID, courtID uint) (*match.Match, *court.Court, error) {
	m, err := co.repo.GetMatchByID(matchID)
	if err != nil {
		return nil, nil, err
	}
	ct, err := co.repo.GetCourtByID(courtID)
	if err != nil {
		return nil, nil, err
	}
	return m, ct, nil
}
