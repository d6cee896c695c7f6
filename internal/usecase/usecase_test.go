package usecase

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"clinical-assistant/config"
	"clinical-assistant/internal/domain/entity"
	"clinical-assistant/internal/infrastructure/database"
	"clinical-assistant/internal/repository"
	"clinical-assistant/internal/service"
	"clinical-assistant/pkg/jwt"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.NewConnection(config.DBConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "patient_data.db"),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

type authFixture struct {
	db      *gorm.DB
	store   *service.MemorySessionStore
	jwt     *jwt.JWTService
	usecase *authUsecase
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	db := setupDB(t)
	log := newTestLogger()
	store := service.NewMemorySessionStore(log)
	t.Cleanup(store.Stop)

	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "test-secret", AccessExpiry: time.Hour})
	audit := service.NewLoginAuditService(db, log, repository.NewLoginHistoryRepository())

	uc := NewAuthUsecase(db, log, repository.NewUserRepository(), audit, store, jwtService).(*authUsecase)
	return &authFixture{db: db, store: store, jwt: jwtService, usecase: uc}
}

type failingAuditService struct{}

func (failingAuditService) Record(context.Context, string, entity.Role, time.Time) error {
	return errors.New("disk full")
}

func (failingAuditService) ListAll(context.Context) ([]entity.LoginEvent, error) {
	return nil, errors.New("disk full")
}

type recordingPublisher struct {
	published []*entity.Consultation
	err       error
}

func (p *recordingPublisher) PublishConsultationBooked(_ context.Context, c *entity.Consultation) error {
	p.published = append(p.published, c)
	return p.err
}

type stubRenderer struct{}

func (stubRenderer) Render(c *entity.Consultation) ([]byte, error) {
	return []byte("%PDF-" + c.Name), nil
}
