package repository

import (
	"context"

	"clinical-assistant/internal/domain/entity"

	"gorm.io/gorm"
)

type LoginHistoryRepository interface {
	Create(ctx context.Context, db *gorm.DB, event *entity.LoginEvent) error
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.LoginEvent, error)
}
