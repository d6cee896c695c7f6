package usecase

import (
	"context"

	"clinical-assistant/internal/converter"
	"clinical-assistant/internal/delivery/dto"
	"clinical-assistant/internal/domain/entity"
	"clinical-assistant/internal/domain/repository"
	"clinical-assistant/internal/service"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AnalyticsUsecase interface {
	Totals(ctx context.Context) (*dto.TotalsResponse, error)
	DoctorDistribution(ctx context.Context) ([]dto.DoctorCountResponse, error)
	Summary(ctx context.Context) (*dto.AnalyticsSummaryResponse, error)
	LoginHistory(ctx context.Context) (*dto.LoginHistoryResponse, error)
}

type analyticsUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	consultationRepo repository.ConsultationRepository
	auditService     service.LoginAuditService
}

func NewAnalyticsUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	consultationRepo repository.ConsultationRepository,
	auditService service.LoginAuditService,
) AnalyticsUsecase {
	return &analyticsUsecase{
		db:               db,
		log:              log,
		consultationRepo: consultationRepo,
		auditService:     auditService,
	}
}

func (u *analyticsUsecase) Totals(ctx context.Context) (*dto.TotalsResponse, error) {
	counts, err := u.countByDoctor(ctx)
	if err != nil {
		return nil, err
	}
	return u.totals(ctx, counts)
}

func (u *analyticsUsecase) DoctorDistribution(ctx context.Context) ([]dto.DoctorCountResponse, error) {
	counts, err := u.countByDoctor(ctx)
	if err != nil {
		return nil, err
	}
	return converter.DoctorCountsToResponses(counts), nil
}

func (u *analyticsUsecase) Summary(ctx context.Context) (*dto.AnalyticsSummaryResponse, error) {
	counts, err := u.countByDoctor(ctx)
	if err != nil {
		return nil, err
	}

	totals, err := u.totals(ctx, counts)
	if err != nil {
		return nil, err
	}

	return &dto.AnalyticsSummaryResponse{
		TotalsResponse:     *totals,
		DoctorDistribution: converter.DoctorCountsToResponses(counts),
	}, nil
}

func (u *analyticsUsecase) LoginHistory(ctx context.Context) (*dto.LoginHistoryResponse, error) {
	events, err := u.auditService.ListAll(ctx)
	if err != nil {
		return nil, storageError(err)
	}

	return &dto.LoginHistoryResponse{
		Logins: converter.LoginEventsToResponses(events),
		Total:  len(events),
	}, nil
}

// totals expects counts ordered busiest first
func (u *analyticsUsecase) totals(ctx context.Context, counts []entity.DoctorCount) (*dto.TotalsResponse, error) {
	total, err := u.consultationRepo.Count(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to count consultations: %+v", err)
		return nil, storageError(err)
	}

	avg, err := u.consultationRepo.AverageAge(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to average consultation ages: %+v", err)
		return nil, storageError(err)
	}

	resp := &dto.TotalsResponse{TotalConsultations: total}
	if avg != nil {
		rounded := decimal.NewFromFloat(*avg).Round(1).InexactFloat64()
		resp.AverageAge = &rounded
	}
	if len(counts) > 0 {
		top := counts[0].Doctor
		resp.TopDoctor = &top
	}
	return resp, nil
}

func (u *analyticsUsecase) countByDoctor(ctx context.Context) ([]entity.DoctorCount, error) {
	counts, err := u.consultationRepo.CountByDoctor(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to count consultations by doctor: %+v", err)
		return nil, storageError(err)
	}
	return counts, nil
}
