package repository

import (
	"context"

	"github.com/Muunneebb/PostureHealthTracker/internal/database"
	"github.com/Muunneebb/PostureHealthTracker/internal/models"
)

func CreateUser(ctx context.Context, user *models.User) error {
	return database.DB.WithContext(ctx).Create(user).Error
}

func GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := database.DB.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := database.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func UpdateUserPassword(ctx context.Context, userID uint, hashedPassword string) error {
	return database.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Update("password", hashedPassword).Error
}

// UsernamesByID resolves display names for the leaderboard in one
// query. Users with no profile row are simply absent from the map.
func UsernamesByID(ctx context.Context, ids []uint) (map[uint]string, error) {
	var users []models.User
	if len(ids) == 0 {
		return map[uint]string{}, nil
	}
	if err := database.DB.WithContext(ctx).Select("id", "username", "email").Find(&users, "id IN ?", ids).Error; err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(users))
	for i := range users {
		names[users[i].ID] = users[i].DisplayName()
	}
	return names, nil
}
