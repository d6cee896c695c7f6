package repository

import (
	"context"

	"clinical-assistant/internal/domain/entity"

	"gorm.io/gorm"
)

type ConsultationRepository interface {
	Create(ctx context.Context, db *gorm.DB, consultation *entity.Consultation) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.Consultation, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.Consultation, error)
	FindByPatientUsername(ctx context.Context, db *gorm.DB, username string) ([]entity.Consultation, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
	AverageAge(ctx context.Context, db *gorm.DB) (*float64, error)
	CountByDoctor(ctx context.Context, db *gorm.DB) ([]entity.DoctorCount, error)
}
