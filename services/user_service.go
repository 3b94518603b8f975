package services

import (
	"context"
	"errors"

	"github.com/yeremiapane/restaurant-menu/models"
	"gorm.io/gorm"
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// GetUserID returns 0 when no user has the email.
func (us *UserService) GetUserID(ctx context.Context, email string) (uint, error) {
	var user models.User
	err := us.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}

func (us *UserService) GetUserInfo(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	if err := us.DB.WithContext(ctx).First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (us *UserService) CreateUser(ctx context.Context, profile *Profile) (*models.User, error) {
	user := models.User{
		Name:    profile.Name,
		Email:   profile.Email,
		Picture: profile.Picture,
	}
	if err := us.DB.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindOrCreate resolves the user for a profile by email, creating the
// record on first sign-in. Existing users are returned unchanged.
func (us *UserService) FindOrCreate(ctx context.Context, profile *Profile) (*models.User, bool, error) {
	userID, err := us.GetUserID(ctx, profile.Email)
	if err != nil {
		return nil, false, err
	}
	if userID != 0 {
		user, err := us.GetUserInfo(ctx, userID)
		return user, false, err
	}

	user, err := us.CreateUser(ctx, profile)
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}
