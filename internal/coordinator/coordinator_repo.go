package coordinator

import (
	"fmt"
	"time"

	"github.com/allanbakerhussmann-crypto/pickleball-app/internal/court"
	"github.com/allanbakerhussmann-crypto/pickleball-app/internal/match"
	"github.com/allanbakerhussmann-crypto/pickleball-app/pkg/apperrors"
	"gorm.io/gorm"
)

// GormCoordinatorRepository implements Repository using GORM. Every
// two-entity write runs inside a transaction with guarded UPDATEs: the WHERE
// clause re-asserts the precondition the coordinator validated on its
// snapshot, so a concurrent writer makes the statement match zero rows and
// the whole transaction rolls back with ErrConflict.
type GormCoordinatorRepository struct {
	db        *gorm.DB
	matchRepo match.MatchRepository
	courtRepo court.CourtRepository
}

func NewGormCoordinatorRepository(db *gorm.DB) *GormCoordinatorRepository {
	return &GormCoordinatorRepository{
		db:        db,
		matchRepo: match.NewGormMatchRepository(db),
		courtRepo: court.NewGormCourtRepository(db),
	}
}

func (r *GormCoordinatorRepository) GetMatchByID(id uint) (*match.Match, error) {
	return r.matchRepo.GetMatchByID(id)
}

func (r *GormCoordinatorRepository) GetCourtByID(id uint) (*court.Court, error) {
	return r.courtRepo.GetCourtByID(id)
}

func (r *GormCoordinatorRepository) GetWaitingMatches(tournamentID uint) ([]match.Match, error) {
	return r.matchRepo.GetWaitingMatches(tournamentID)
}

func (r *GormCoordinatorRepository) GetCourtsByTournament(tournamentID uint) ([]court.Court, error) {
	return r.courtRepo.GetCourtsByTournament(tournamentID)
}

func (r *GormCoordinatorRepository) BindMatchToCourt(matchID, courtID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		claim := tx.Model(&court.Court{}).
			Where("id = ? AND status = ? AND current_match_id IS NULL", courtID, court.StatusCourtAvailable).
			Updates(map[string]interface{}{
				"status":           court.StatusCourtAssigned,
				"current_match_id": matchID,
			})
		if claim.Error != nil {
			return claim.Error
		}
		if claim.RowsAffected == 0 {
			return fmt.Errorf("%w: court %d was claimed concurrently", apperrors.ErrConflict, courtID)
		}

		bind := tx.Model(&match.Match{}).
			Where("id = ? AND status = ? AND court_id IS NULL", matchID, match.StatusMatchPending).
			Update("court_id", courtID)
		if bind.Error != nil {
			return bind.Error
		}
		if bind.RowsAffected == 0 {
			return fmt.Errorf("%w: match %d was assigned or started concurrently", apperrors.ErrConflict, matchID)
		}

		return nil
	})
}

func (r *GormCoordinatorRepository) StartOnCourt(courtID, matchID uint, startedAt time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		start := tx.Model(&match.Match{}).
			Where("id = ? AND status = ? AND court_id = ?", matchID, match.StatusMatchPending, courtID).
			Updates(map[string]interface{}{
				"status":     match.StatusMatchInProgress,
				"started_at": startedAt,
			})
		if start.Error != nil {
			return start.Error
		}
		if start.RowsAffected == 0 {
			return fmt.Errorf("%w: match %d was started or moved concurrently", apperrors.ErrConflict, matchID)
		}

		occupy := tx.Model(&court.Court{}).
			Where("id = ? AND status = ? AND current_match_id = ?", courtID, court.StatusCourtAssigned, matchID).
			Update("status", court.StatusCourtInUse)
		if occupy.Error != nil {
			return occupy.Error
		}
		if occupy.RowsAffected == 0 {
			return fmt.Errorf("%w: court %d changed concurrently", apperrors.ErrConflict, courtID)
		}

		return nil
	})
}

func (r *GormCoordinatorRepository) ReleaseCourt(courtID, matchID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		free := tx.Model(&court.Court{}).
			Where("id = ? AND status IN ? AND current_match_id = ?",
				courtID, []court.CourtStatus{court.StatusCourtAssigned, court.StatusCourtInUse}, matchID).
			Updates(map[string]interface{}{
				"status":           court.StatusCourtAvailable,
				"current_match_id": nil,
			})
		if free.Error != nil {
			return free.Error
		}
		if free.RowsAffected == 0 {
			return fmt.Errorf("%w: court %d changed concurrently", apperrors.ErrConflict, courtID)
		}

		unbind := tx.Model(&match.Match{}).
			Where("id = ? AND court_id = ? AND status = ?", matchID, courtID, match.StatusMatchCompleted).
			Update("court_id", nil)
		if unbind.Error != nil {
			return unbind.Error
		}
		if unbind.RowsAffected == 0 {
			return fmt.Errorf("%w: match %d changed concurrently", apperrors.ErrConflict, matchID)
		}

		return nil
	})
}
