package repository

import (
	"context"
	"database/sql"
	"errors"

	"clinical-assistant/internal/domain/entity"
	domainRepo "clinical-assistant/internal/domain/repository"

	"gorm.io/gorm"
)

type consultationRepository struct{}

func NewConsultationRepository() domainRepo.ConsultationRepository {
	return &consultationRepository{}
}

func (r *consultationRepository) Create(ctx context.Context, db *gorm.DB, consultation *entity.Consultation) error {
	return db.WithContext(ctx).Create(consultation).Error
}

func (r *consultationRepository) FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.Consultation, error) {
	var consultation entity.Consultation
	err := db.WithContext(ctx).Where("id = ?", id).First(&consultation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &consultation, nil
}

func (r *consultationRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.Consultation, error) {
	var consultations []entity.Consultation
	err := db.WithContext(ctx).Order("id DESC").Find(&consultations).Error
	if err != nil {
		return nil, err
	}
	return consultations, nil
}

func (r *consultationRepository) FindByPatientUsername(ctx context.Context, db *gorm.DB, username string) ([]entity.Consultation, error) {
	var consultations []entity.Consultation
	err := db.WithContext(ctx).
		Where("patient_username = ?", username).
		Order("id DESC").
		Find(&consultations).Error
	if err != nil {
		return nil, err
	}
	return consultations, nil
}

func (r *consultationRepository) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&entity.Consultation{}).Count(&total).Error
	return total, err
}

// AverageAge returns nil when the table is empty
func (r *consultationRepository) AverageAge(ctx context.Context, db *gorm.DB) (*float64, error) {
	var avg sql.NullFloat64
	err := db.WithContext(ctx).Model(&entity.Consultation{}).Select("AVG(age)").Row().Scan(&avg)
	if err != nil {
		return nil, err
	}
	if !avg.Valid {
		return nil, nil
	}
	return &avg.Float64, nil
}

// CountByDoctor groups consultations per doctor, busiest first.
// Ties go to the doctor whose earliest booking has the lowest id.
func (r *consultationRepository) CountByDoctor(ctx context.Context, db *gorm.DB) ([]entity.DoctorCount, error) {
	type row struct {
		Doctor  string
		Total   int64
		FirstID int64
	}
	var rows []row
	err := db.WithContext(ctx).Model(&entity.Consultation{}).
		Select("doctor, COUNT(*) AS total, MIN(id) AS first_id").
		Group("doctor").
		Order("total DESC, first_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make([]entity.DoctorCount, len(rows))
	for i, r := range rows {
		counts[i] = entity.DoctorCount{Doctor: r.Doctor, Count: r.Total}
	}
	return counts, nil
}
