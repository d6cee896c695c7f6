package service

import (
	"context"
	"time"

	"clinical-assistant/internal/domain/entity"
	"clinical-assistant/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// LoginAuditService appends and reads the login history
type LoginAuditService interface {
	Record(ctx context.Context, username string, role entity.Role, at time.Time) error
	ListAll(ctx context.Context) ([]entity.LoginEvent, error)
}

type loginAuditService struct {
	db        *gorm.DB
	log       *logrus.Logger
	auditRepo repository.LoginHistoryRepository
}

func NewLoginAuditService(db *gorm.DB, log *logrus.Logger, auditRepo repository.LoginHistoryRepository) LoginAuditService {
	return &loginAuditService{
		db:        db,
		log:       log,
		auditRepo: auditRepo,
	}
}

func (s *loginAuditService) Record(ctx context.Context, username string, role entity.Role, at time.Time) error {
	event := &entity.LoginEvent{
		Username:  username,
		Role:      role,
		LoginTime: at.Local().Format(entity.LoginTimeLayout),
	}

	if err := s.auditRepo.Create(ctx, s.db, event); err != nil {
		s.log.Warnf("Failed to create login history entry: %+v", err)
		return err
	}

	return nil
}

func (s *loginAuditService) ListAll(ctx context.Context) ([]entity.LoginEvent, error) {
	events, err := s.auditRepo.FindAll(ctx, s.db)
	if err != nil {
		s.log.Warnf("Failed to find login history: %+v", err)
		return nil, err
	}
	return events, nil
}
