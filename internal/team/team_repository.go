package team

import (
	"errors"

	"gorm.io/gorm"
)

// TeamRepository defines methods to interact with team data. The match
// lifecycle uses it to answer "is this actor a participant of this match".
type TeamRepository interface {
	CreateTeam(team *Team) error
	GetTeamByID(id uint) (*Team, error)
	GetTeams(page, pageSize int) ([]Team, int64, error)
	AddMember(member *TeamMember) error
	GetTeamMember(teamID, userID uint) (*TeamMember, error)
	GetTeamMembers(teamID uint) ([]TeamMember, error)
	IsUserInAnyTeam(userID uint, teamIDs []uint) (bool, error)
}

// GormTeamRepository implements TeamRepository using GORM.
type GormTeamRepository struct {
	db *gorm.DB
}

func NewGormTeamRepository(db *gorm.DB) *GormTeamRepository {
	return &GormTeamRepository{db: db}
}

func (r *GormTeamRepository) CreateTeam(team *Team) error {
	return r.db.Create(team).Error
}

func (r *GormTeamRepository) GetTeamByID(id uint) (*Team, error) {
	var t Team
	result := r.db.First(&t, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &t, nil
}

func (r *GormTeamRepository) GetTeams(page, pageSize int) ([]Team, int64, error) {
	var teams []Team
	var total int64

	if err := r.db.Model(&Team{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	result := r.db.Offset(offset).Limit(pageSize).Order("created_at desc").Find(&teams)
	if result.Error != nil {
		return nil, 0, result.Error
	}
	return teams, total, nil
}

func (r *GormTeamRepository) AddMember(member *TeamMember) error {
	return r.db.Create(member).Error
}

func (r *GormTeamRepository) GetTeamMember(teamID, userID uint) (*TeamMember, error) {
	var m TeamMember
	result := r.db.Where("team_id = ? AND user_id = ?", teamID, userID).First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &m, nil
}

func (r *GormTeamRepository) GetTeamMembers(teamID uint) ([]TeamMember, error) {
	var members []TeamMember
	err := r.db.Where("team_id = ? AND is_active = ?", teamID, true).Find(&members).Error
	return members, err
}

// IsUserInAnyTeam reports whether the user is an active member of any of the
// given teams.
func (r *GormTeamRepository) IsUserInAnyTeam(userID uint, teamIDs []uint) (bool, error) {
	if len(teamIDs) == 0 {
		return false, nil
	}
	var count int64
	err := r.db.Model(&TeamMember{}).
		Where("user_id = ? AND team_id IN ? AND is_active = ?", userID, teamIDs, true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
