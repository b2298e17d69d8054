package tournament

import (
	"errors"

	"gorm.io/gorm"
)

// TournamentRepository defines methods to interact with tournament data.
type TournamentRepository interface {
	CreateTournament(t *Tournament) error
	GetTournamentByID(id uint) (*Tournament, error)
	GetTournaments(page, pageSize int) ([]Tournament, int64, error)
	UpdateTournament(t *Tournament) error
	DeleteTournament(id uint) error
	CreateDivision(d *Division) error
	GetDivisionsByTournament(tournamentID uint) ([]Division, error)
}

// GormTournamentRepository implements TournamentRepository using GORM.
type GormTournamentRepository struct {
	db *gorm.DB
}

func NewGormTournamentRepository(db *gorm.DB) *GormTournamentRepository {
	return &GormTournamentRepository{db: db}
}

func (r *GormTournamentRepository) CreateTournament(t *Tournament) error {
	return r.db.Create(t).Error
}

func (r *GormTournamentRepository) GetTournamentByID(id uint) (*Tournament, error) {
	var t Tournament
	result := r.db.Preload("Divisions").First(&t, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &t, nil
}

func (r *GormTournamentRepository) GetTournaments(page, pageSize int) ([]Tournament, int64, error) {
	var tournaments []Tournament
	var total int64

	if err := r.db.Model(&Tournament{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	result := r.db.Order("created_at desc").Offset(offset).Limit(pageSize).Find(&tournaments)
	if result.Error != nil {
		return nil, 0, result.Error
	}
	return tournaments, total, nil
}

func (r *GormTournamentRepository) UpdateTournament(t *Tournament) error {
	return r.db.Save(t).Error
}

func (r *GormTournamentRepository) DeleteTournament(id uint) error {
	return r.db.Delete(&Tournament{}, id).Error
}

func (r *GormTournamentRepository) CreateDivision(d *Division) error {
	return r.db.Create(d).Error
}

func (r *GormTournamentRepository) GetDivisionsByTournament(tournamentID uint) ([]Division, error) {
	var divisions []Division
	err := r.db.Where("tournament_id = ?", tournamentID).Find(&divisions).Error
	return divisions, err
}
