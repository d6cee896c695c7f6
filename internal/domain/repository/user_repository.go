package repository

import (
	"context"

	"clinical-assistant/internal/domain/entity"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, db *gorm.DB, user *entity.User) error
	FindByUsername(ctx context.Context, db *gorm.DB, username string) (*entity.User, error)
}
