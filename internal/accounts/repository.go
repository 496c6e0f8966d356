package accounts

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/openharvest/bargain/internal/domain"
)

// ErrNotFound reports a user lookup that matched nothing.
var ErrNotFound = errors.New("user not found")

// UserRepository interface for account data access
type UserRepository interface {
	// Create inserts a new user row. The store's unique indexes on email and
	// nickname are the race-safe uniqueness guarantee; the service-level
	// duplicate checks exist only for friendlier messages.
	Create(ctx context.Context, user *domain.User) error

	// GetByEmail retrieves a user by email, ErrNotFound on miss
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// EmailExists reports whether the email is already registered
	EmailExists(ctx context.Context, email string) (bool, error)

	// NicknameExists reports whether the nickname is already taken
	NicknameExists(ctx context.Context, nickname string) (bool, error)

	// UpdateLastLogin stamps the last successful login time
	UpdateLastLogin(ctx context.Context, id int64) error
}

// GormUserRepository is the GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Create(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *GormUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrapf(ErrNotFound, "email %q", email)
	}
	if err != nil {
		return nil, errors.Wrap(err, "query user")
	}
	return &user, nil
}

func (r *GormUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}

func (r *GormUserRepository) NicknameExists(ctx context.Context, nickname string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("nickname = ?", nickname).
		Count(&count).Error
	return count > 0, err
}

func (r *GormUserRepository) UpdateLastLogin(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Update("last_login", gorm.Expr("CURRENT_TIMESTAMP")).Error
}
