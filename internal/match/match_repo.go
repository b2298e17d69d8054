package match

import (
	"errors"
	"fmt"

	"github.com/allanbakerhussmann-crypto/pickleball-app/internal/court"
	"github.com/allanbakerhussmann-crypto/pickleball-app/pkg/apperrors"
	"gorm.io/gorm"
)

// MatchRepository defines methods to interact with match data.
type MatchRepository interface {
	CreateMatch(m *Match) error
	GetMatchByID(id uint) (*Match, error)
	GetMatches(filters map[string]interface{}, page, pageSize int) ([]Match, int64, error)
	GetWaitingMatches(tournamentID uint) ([]Match, error)

	// ApplyTransition persists an already-validated lifecycle transition
	// with an optimistic guard on the status the transition was computed
	// from. If another writer committed first, no rows match and
	// apperrors.ErrConflict is returned; the caller re-reads and retries or
	// surfaces the conflict.
	ApplyTransition(m *Match, fromStatus MatchStatus) error
}

// GormMatchRepository implements MatchRepository using GORM.
type GormMatchRepository struct {
	db *gorm.DB
}

func NewGormMatchRepository(db *gorm.DB) *GormMatchRepository {
	return &GormMatchRepository{db: db}
}

func (r *GormMatchRepository) CreateMatch(m *Match) error {
	return r.db.Create(m).Error
}

func (r *GormMatchRepository) GetMatchByID(id uint) (*Match, error) {
	var m Match
	result := r.db.First(&m, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &m, nil
}

func (r *GormMatchRepository) GetMatches(filters map[string]interface{}, page, pageSize int) ([]Match, int64, error) {
	var matches []Match
	var total int64

	query := r.db.Model(&Match{})
	for key, value := range filters {
		query = query.Where(key, value)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	result := query.Order("round_number asc, created_at asc").
		Offset(offset).Limit(pageSize).
		Find(&matches)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return matches, total, nil
}

// GetWaitingMatches returns matches with no court binding that are still
// pending, in creation order. This is the WAITING queue; there is no
// priority ordering beyond it.
func (r *GormMatchRepository) GetWaitingMatches(tournamentID uint) ([]Match, error) {
	var matches []Match
	err := r.db.
		Where("tournament_id = ? AND status = ? AND court_id IS NULL", tournamentID, StatusMatchPending).
		Order("created_at asc").
		Find(&matches).Error
	return matches, err
}

func (r *GormMatchRepository) ApplyTransition(m *Match, fromStatus MatchStatus) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Match{}).
			Where("id = ? AND status = ?", m.ID, fromStatus).
			Updates(map[string]interface{}{
				"status":          m.Status,
				"score1":          m.Score1,
				"score2":          m.Score2,
				"submitted_by_id": m.SubmittedByID,
				"dispute_reason":  m.DisputeReason,
				"started_at":      m.StartedAt,
				"completed_at":    m.CompletedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: match %d was updated concurrently (expected status %q)",
				apperrors.ErrConflict, m.ID, fromStatus)
		}

		// A bound match leaving pending occupies its court. The paired
		// ASSIGNED → IN_USE flip keeps the court convergent with the
		// lifecycle even when the transition comes through the plain match
		// endpoints rather than the allocation ones.
		if m.CourtID != nil && fromStatus == StatusMatchPending && m.Status != StatusMatchPending {
			occupy := tx.Model(&court.Court{}).
				Where("id = ? AND status = ? AND current_match_id = ?",
					*m.CourtID, court.StatusCourtAssigned, m.ID).
				Update("status", court.StatusCourtInUse)
			if occupy.Error != nil {
				return occupy.Error
			}
			if occupy.RowsAffected == 0 {
				return fmt.Errorf("%w: court %d changed concurrently", apperrors.ErrConflict, *m.CourtID)
			}
		}
		return nil
	})
}
