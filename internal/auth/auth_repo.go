package auth

import (
	"errors"

	"github.com/allanbakerhussmann-crypto/pickleball-app/internal/user"
	"gorm.io/gorm"
)

// AuthRepository defines persistence operations for registration and login.
type AuthRepository interface {
	CreateUser(u *user.User) error
	GetUserByEmail(email string) (*user.User, error)
	GetUserByID(id uint) (*user.User, error)
	GetUserRoles(userID uint) ([]string, error)
	AssignRole(userID uint, roleName string) error
	SaveRefreshToken(rt *user.RefreshToken) error
	GetRefreshToken(tokenStr string) (*user.RefreshToken, error)
	RevokeRefreshToken(tokenStr string) error
}

// GormAuthRepository implements AuthRepository using GORM.
type GormAuthRepository struct {
	db *gorm.DB
}

func NewGormAuthRepository(db *gorm.DB) *GormAuthRepository {
	return &GormAuthRepository{db: db}
}

func (r *GormAuthRepository) CreateUser(u *user.User) error {
	return r.db.Create(u).Error
}

func (r *GormAuthRepository) GetUserByEmail(email string) (*user.User, error) {
	var u user.User
	result := r.db.Preload("Roles").Where("email = ?", email).First(&u)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &u, nil
}

func (r *GormAuthRepository) GetUserByID(id uint) (*user.User, error) {
	var u user.User
	result := r.db.Preload("Roles").First(&u, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &u, nil
}

func (r *GormAuthRepository) GetUserRoles(userID uint) ([]string, error) {
	var roles []string
	err := r.db.Table("roles").
		Joins("JOIN user_roles ON user_roles.role_id = roles.id").
		Where("user_roles.user_id = ?", userID).
		Pluck("roles.name", &roles).Error
	return roles, err
}

// AssignRole grants a role to a user, creating the role row if needed.
func (r *GormAuthRepository) AssignRole(userID uint, roleName string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var role user.Role
		err := tx.Where("name = ?", roleName).First(&role).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			role = user.Role{Name: roleName}
			if err := tx.Create(&role).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		return tx.FirstOrCreate(&user.UserRole{UserID: userID, RoleID: role.ID},
			user.UserRole{UserID: userID, RoleID: role.ID}).Error
	})
}

func (r *GormAuthRepository) SaveRefreshToken(rt *user.RefreshToken) error {
	return r.db.Create(rt).Error
}

func (r *GormAuthRepository) GetRefreshToken(tokenStr string) (*user.RefreshToken, error) {
	var rt user.RefreshToken
	result := r.db.Where("token = ?", tokenStr).First(&rt)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &rt, nil
}

func (r *GormAuthRepository) RevokeRefreshToken(tokenStr string) error {
	return r.db.Model(&user.RefreshToken{}).Where("token = ?", tokenStr).Update("revoked", true).Error
}
