package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/predictor-api/internal/domain/entity"
)

// UserRepo implements repository.UserRepository.
type UserRepo struct {
	db *gorm.DB
}

// NewUserRepo creates a new user repository.
func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts a new user. Duplicate email or username surfaces as
// ErrConflict.
func (r *UserRepo) Create(user *entity.User) error {
	return translateError(r.db.Create(user).Error)
}

// GetByID returns a user by ID.
func (r *UserRepo) GetByID(id uint) (*entity.User, error) {
	var user entity.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// GetByEmail returns a user by email.
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	var user entity.User
	if err := r.db.Where("LOWER(email) = LOWER(?)", email).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// GetByUsername returns a user by username, matched case-insensitively.
func (r *UserRepo) GetByUsername(username string) (*entity.User, error) {
	var user entity.User
	if err := r.db.Where("LOWER(username) = LOWER(?)", username).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// Update saves the full user row.
func (r *UserRepo) Update(user *entity.User) error {
	return translateError(r.db.Save(user).Error)
}

// UpdateProfile updates selected profile fields without touching the
// password hash.
func (r *UserRepo) UpdateProfile(userID uint, updates map[string]interface{}) error {
	delete(updates, "password_hash")
	updates["updated_at"] = time.Now()
	return translateError(r.db.Model(&entity.User{}).Where("id = ?", userID).Updates(updates).Error)
}

// SetAdmin grants or revokes the admin flag.
func (r *UserRepo) SetAdmin(userID uint, isAdmin bool) error {
	res := r.db.Model(&entity.User{}).Where("id = ?", userID).Update("is_admin", isAdmin)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound)
	}
	return nil
}

// SetEmailVerified marks the user's email address as verified.
func (r *UserRepo) SetEmailVerified(userID uint) error {
	return translateError(r.db.Model(&entity.User{}).Where("id = ?", userID).Update("email_verified", true).Error)
}

// List returns users with pagination.
func (r *UserRepo) List(limit, offset int) ([]entity.User, error) {
	var users []entity.User
	err := r.db.Limit(limit).Offset(offset).Order("id").Find(&users).Error
	return users, err
}

// Count returns the total number of users.
func (r *UserRepo) Count() (int64, error) {
	var total int64
	err := r.db.Model(&entity.User{}).Count(&total).Error
	return total, err
}
