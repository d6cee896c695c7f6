package repository

import (
	"context"

	"clinical-assistant/internal/domain/entity"
	domainRepo "clinical-assistant/internal/domain/repository"

	"gorm.io/gorm"
)

type loginHistoryRepository struct{}

func NewLoginHistoryRepository() domainRepo.LoginHistoryRepository {
	return &loginHistoryRepository{}
}

func (r *loginHistoryRepository) Create(ctx context.Context, db *gorm.DB, event *entity.LoginEvent) error {
	return db.WithContext(ctx).Create(event).Error
}

func (r *loginHistoryRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.LoginEvent, error) {
	var events []entity.LoginEvent
	err := db.WithContext(ctx).Order("id DESC").Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
