package usecase

import (
	"context"
	"testing"
	"time"

	"clinical-assistant/internal/delivery/dto"
	"clinical-assistant/internal/domain/entity"
	"clinical-assistant/internal/repository"
	"clinical-assistant/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type analyticsFixture struct {
	analytics     AnalyticsUsecase
	consultations ConsultationUsecase
	audit         service.LoginAuditService
}

func newAnalyticsFixture(t *testing.T) *analyticsFixture {
	t.Helper()

	db := setupDB(t)
	log := newTestLogger()
	consultationRepo := repository.NewConsultationRepository()
	audit := service.NewLoginAuditService(db, log, repository.NewLoginHistoryRepository())

	return &analyticsFixture{
		analytics:     NewAnalyticsUsecase(db, log, consultationRepo, audit),
		consultations: NewConsultationUsecase(db, log, consultationRepo, service.NewNoopBookingEventPublisher(), stubRenderer{}),
		audit:         audit,
	}
}

func (f *analyticsFixture) book(t *testing.T, doctor string, age int) {
	t.Helper()
	_, err := f.consultations.Book(context.Background(), "alice", &dto.CreateConsultationRequest{
		PatientName: "Alice",
		Age:         age,
		Doctor:      doctor,
		Date:        "2024-05-01",
		Time:        "10:00",
		Symptoms:    "Cough",
	})
	require.NoError(t, err)
}

func TestAnalyticsUsecase_TotalsEmpty(t *testing.T) {
	f := newAnalyticsFixture(t)

	totals, err := f.analytics.Totals(context.Background())
	require.NoError(t, err)
	assert.Zero(t, totals.TotalConsultations)
	assert.Nil(t, totals.AverageAge)
	assert.Nil(t, totals.TopDoctor)

	dist, err := f.analytics.DoctorDistribution(context.Background())
	require.NoError(t, err)
	assert.Empty(t, dist)
}

func TestAnalyticsUsecase_Totals(t *testing.T) {
	f := newAnalyticsFixture(t)
	sharma := entity.Doctors[0].Label()
	mehta := entity.Doctors[1].Label()

	f.book(t, mehta, 20)
	f.book(t, sharma, 30)
	f.book(t, sharma, 40)

	totals, err := f.analytics.Totals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), totals.TotalConsultations)
	require.NotNil(t, totals.AverageAge)
	assert.Equal(t, 30.0, *totals.AverageAge)
	require.NotNil(t, totals.TopDoctor)
	assert.Equal(t, sharma, *totals.TopDoctor)
}

func TestAnalyticsUsecase_AverageRoundedToOneDecimal(t *testing.T) {
	f := newAnalyticsFixture(t)
	doctor := entity.Doctors[2].Label()

	f.book(t, doctor, 20)
	f.book(t, doctor, 21)
	f.book(t, doctor, 21)

	totals, err := f.analytics.Totals(context.Background())
	require.NoError(t, err)
	require.NotNil(t, totals.AverageAge)
	assert.Equal(t, 20.7, *totals.AverageAge)
}

func TestAnalyticsUsecase_TopDoctorTieGoesToEarliestBooking(t *testing.T) {
	f := newAnalyticsFixture(t)
	rao := entity.Doctors[2].Label()
	sharma := entity.Doctors[0].Label()

	f.book(t, rao, 30)
	f.book(t, sharma, 30)
	f.book(t, sharma, 30)
	f.book(t, rao, 30)

	summary, err := f.analytics.Summary(context.Background())
	require.NoError(t, err)
	require.NotNil(t, summary.TopDoctor)
	assert.Equal(t, rao, *summary.TopDoctor)
	assert.Equal(t, []dto.DoctorCountResponse{
		{Doctor: rao, Count: 2},
		{Doctor: sharma, Count: 2},
	}, summary.DoctorDistribution)
}

func TestAnalyticsUsecase_LoginHistory(t *testing.T) {
	f := newAnalyticsFixture(t)
	ctx := context.Background()
	at := time.Date(2024, 5, 1, 9, 30, 0, 0, time.Local)

	require.NoError(t, f.audit.Record(ctx, "alice", entity.RolePatient, at))
	require.NoError(t, f.audit.Record(ctx, "drwho", entity.RoleDoctor, at.Add(time.Minute)))

	history, err := f.analytics.LoginHistory(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, history.Total)
	assert.Equal(t, "drwho", history.Logins[0].Username)
	assert.Equal(t, "2024-05-01 09:31:00", history.Logins[0].LoginTime)
	assert.Equal(t, "2024-05-01 09:30:00", history.Logins[1].LoginTime)
}

func TestAnalyticsUsecase_LoginHistoryStorageFailure(t *testing.T) {
	uc := NewAnalyticsUsecase(nil, newTestLogger(), repository.NewConsultationRepository(), failingAuditService{})

	_, err := uc.LoginHistory(context.Background())
	assert.ErrorIs(t, err, ErrStorage)
}
