package court

import (
	"errors"
	"fmt"

	"github.com/allanbakerhussmann-crypto/pickleball-app/pkg/apperrors"
	"gorm.io/gorm"
)

// CourtRepository defines methods to interact with court data.
type CourtRepository interface {
	CreateCourt(c *Court) error
	GetCourtByID(id uint) (*Court, error)
	GetCourtsByTournament(tournamentID uint) ([]Court, error)
	UpdateCourtName(id uint, name string) error

	// MarkOutOfService takes an unoccupied court out of rotation. It is
	// guarded so a court that was concurrently assigned cannot be pulled
	// out from under its match.
	MarkOutOfService(id uint) error
	ReturnToService(id uint) error
}

// GormCourtRepository implements CourtRepository using GORM.
type GormCourtRepository struct {
	db *gorm.DB
}

func NewGormCourtRepository(db *gorm.DB) *GormCourtRepository {
	return &GormCourtRepository{db: db}
}

func (r *GormCourtRepository) CreateCourt(c *Court) error {
	return r.db.Create(c).Error
}

func (r *GormCourtRepository) GetCourtByID(id uint) (*Court, error) {
	var c Court
	result := r.db.First(&c, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &c, nil
}

func (r *GormCourtRepository) GetCourtsByTournament(tournamentID uint) ([]Court, error) {
	var courts []Court
	err := r.db.Where("tournament_id = ?", tournamentID).Order("name asc").Find(&courts).Error
	return courts, err
}

func (r *GormCourtRepository) UpdateCourtName(id uint, name string) error {
	result := r.db.Model(&Court{}).Where("id = ?", id).Update("name", name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: court %d", apperrors.ErrNotFound, id)
	}
	return nil
}

func (r *GormCourtRepository) MarkOutOfService(id uint) error {
	result := r.db.Model(&Court{}).
		Where("id = ? AND status = ? AND current_match_id IS NULL", id, StatusCourtAvailable).
		Update("status", StatusCourtOutOfService)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: court %d has a bound match or is not available", apperrors.ErrUnavailable, id)
	}
	return nil
}

func (r *GormCourtRepository) ReturnToService(id uint) error {
	result := r.db.Model(&Court{}).
		Where("id = ? AND status = ?", id, StatusCourtOutOfService).
		Update("status", StatusCourtAvailable)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: court %d is not out of service", apperrors.ErrInvalidTransition, id)
	}
	return nil
}
