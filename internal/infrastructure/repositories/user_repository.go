package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yassirrachad97/Factura-sub000/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID            uint           `gorm:"primaryKey"`
	Email         string         `gorm:"uniqueIndex;size:255"`
	Username      string         `gorm:"uniqueIndex;size:64"`
	Phone         string         `gorm:"uniqueIndex;size:32"`
	PasswordHash  string         `gorm:"column:password"`
	Role          string         `gorm:"index;size:32"`
	EmailVerified bool           `gorm:"index"`
	Devices       []DBDevice     `gorm:"foreignKey:UserID"`
	CreatedAt     time.Time      `gorm:"index"`
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// DBDevice represents a registered device row. The composite unique index
// keeps a device identifier from appearing twice for the same user.
type DBDevice struct {
	ID         uint      `gorm:"primaryKey"`
	UserID     uint      `gorm:"uniqueIndex:idx_user_device;index"`
	Identifier string    `gorm:"uniqueIndex:idx_user_device;size:255"`
	Trusted    bool      `gorm:"index"`
	CreatedAt  time.Time
}

// TableName returns the table name for GORM
func (DBDevice) TableName() string {
	return "devices"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	dbUser := domainToDBUser(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrUserAlreadyExists
		}
		return err
	}
	user.ID = dbUser.ID
	return nil
}

func (r *UserRepositoryImpl) findOne(ctx context.Context, query string, arg interface{}) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Preload("Devices").Where(query, arg).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return dbToDomainUser(&dbUser), nil
}

// FindByEmail implements domain.UserRepository
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

// FindByUsername implements domain.UserRepository
func (r *UserRepositoryImpl) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, "username = ?", username)
}

// FindByPhone implements domain.UserRepository
func (r *UserRepositoryImpl) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.findOne(ctx, "phone = ?", phone)
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

// List implements domain.UserRepository
func (r *UserRepositoryImpl) List(ctx context.Context) ([]domain.User, error) {
	var dbUsers []DBUser
	if err := r.db.WithContext(ctx).Order("id").Find(&dbUsers).Error; err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(dbUsers))
	for i := range dbUsers {
		users = append(users, *dbToDomainUser(&dbUsers[i]))
	}
	return users, nil
}

// Update implements domain.UserRepository
func (r *UserRepositoryImpl) Update(ctx context.Context, user *domain.User) error {
	dbUser := domainToDBUser(user)
	return r.db.WithContext(ctx).Omit("Devices").Save(dbUser).Error
}

// UpdatePassword implements domain.UserRepository
func (r *UserRepositoryImpl) UpdatePassword(ctx context.Context, userID uint, hash string) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).Update("password", hash).Error
}

// UpdateRole implements domain.UserRepository
func (r *UserRepositoryImpl) UpdateRole(ctx context.Context, userID uint, role string) error {
	res := r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).Update("role", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// MarkEmailVerified implements domain.UserRepository
func (r *UserRepositoryImpl) MarkEmailVerified(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).Update("email_verified", true).Error
}

// AddTrustedDevice implements domain.UserRepository. An existing identifier
// is flipped to trusted instead of inserted again.
func (r *UserRepositoryImpl) AddTrustedDevice(ctx context.Context, userID uint, identifier string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dev DBDevice
		err := tx.Where("user_id = ? AND identifier = ?", userID, identifier).First(&dev).Error
		switch {
		case err == nil:
			if dev.Trusted {
				return nil
			}
			return tx.Model(&dev).Update("trusted", true).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(&DBDevice{UserID: userID, Identifier: identifier, Trusted: true}).Error
		default:
			return err
		}
	})
}

func domainToDBUser(user *domain.User) *DBUser {
	return &DBUser{
		ID:            user.ID,
		Email:         user.Email,
		Username:      user.Username,
		Phone:         user.Phone,
		PasswordHash:  user.PasswordHash,
		Role:          user.Role,
		EmailVerified: user.EmailVerified,
	}
}

func dbToDomainUser(dbUser *DBUser) *domain.User {
	devices := make([]domain.Device, 0, len(dbUser.Devices))
	for _, d := range dbUser.Devices {
		devices = append(devices, domain.Device{
			ID:         d.ID,
			UserID:     d.UserID,
			Identifier: d.Identifier,
			Trusted:    d.Trusted,
			CreatedAt:  d.CreatedAt,
		})
	}
	return &domain.User{
		ID:            dbUser.ID,
		Email:         dbUser.Email,
		Username:      dbUser.Username,
		Phone:         dbUser.Phone,
		PasswordHash:  dbUser.PasswordHash,
		Role:          dbUser.Role,
		EmailVerified: dbUser.EmailVerified,
		Devices:       devices,
		CreatedAt:     dbUser.CreatedAt,
		UpdatedAt:     dbUser.UpdatedAt,
	}
}
