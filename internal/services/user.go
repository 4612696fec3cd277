package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/logger"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/repos"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/types"
)

type UserService interface {
	GetUser(ctx context.Context, userID uuid.UUID) (*types.User, error)
	UpdateFullName(ctx context.Context, userID uuid.UUID, fullName string) (*types.User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error
	RegenerateAvatar(ctx context.Context, userID uuid.UUID) (*types.User, error)
}

type userService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	avatarService AvatarService
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, avatarService AvatarService) UserService {
	return &userService{
		db:            db,
		log:           log.With("service", "UserService"),
		userRepo:      userRepo,
		avatarService: avatarService,
	}
}

func (us *userService) GetUser(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	found, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, fmt.Errorf("Failed to load user: %w", err)
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("User %s %w", userID, ErrNotFound)
	}
	return found[0], nil
}

func (us *userService) UpdateFullName(ctx context.Context, userID uuid.UUID, fullName string) (*types.User, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, fmt.Errorf("Full name must not be empty")
	}
	if err := us.userRepo.UpdateFields(ctx, nil, userID, map[string]interface{}{"full_name": fullName}); err != nil {
		return nil, fmt.Errorf("Failed to update full name: %w", err)
	}
	return us.GetUser(ctx, userID)
}

func (us *userService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return fmt.Errorf("Password must be at least 8 characters")
	}
	user, err := us.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if cErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); cErr != nil {
		return fmt.Errorf("Current password is incorrect")
	}
	hashed, hErr := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if hErr != nil {
		return fmt.Errorf("Failed to hash password: %w", hErr)
	}
	return us.userRepo.UpdateFields(ctx, nil, userID, map[string]interface{}{"password": string(hashed)})
}

func (us *userService) RegenerateAvatar(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	user, err := us.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if avErr := us.avatarService.CreateAndStoreUserAvatar(ctx, tx, user); avErr != nil {
			return avErr
		}
		return us.userRepo.UpdateFields(ctx, tx, userID, map[string]interface{}{
			"avatar_key": user.AvatarKey,
			"avatar_url": user.AvatarURL,
		})
	}); err != nil {
		return nil, fmt.Errorf("Failed to regenerate avatar: %w", err)
	}
	return us.GetUser(ctx, userID)
}
