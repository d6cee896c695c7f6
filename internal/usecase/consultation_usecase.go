package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"clinical-assistant/internal/converter"
	"clinical-assistant/internal/delivery/dto"
	"clinical-assistant/internal/domain/entity"
	"clinical-assistant/internal/domain/repository"
	"clinical-assistant/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvalidConsultation  = errors.New("invalid consultation")
	ErrConsultationNotFound = errors.New("consultation not found")
)

const (
	consultationDateLayout = "2006-01-02"
	consultationTimeLayout = "15:04:05"
)

// ReportRenderer turns a stored consultation into a printable document
type ReportRenderer interface {
	Render(consultation *entity.Consultation) ([]byte, error)
}

type ConsultationUsecase interface {
	Book(ctx context.Context, patientUsername string, req *dto.CreateConsultationRequest) (*dto.ConsultationResponse, error)
	ListFor(ctx context.Context, username string, role entity.Role) (*dto.ConsultationListResponse, error)
	Get(ctx context.Context, id int64, username string, role entity.Role) (*dto.ConsultationResponse, error)
	RenderReport(ctx context.Context, id int64, username string, role entity.Role) ([]byte, error)
	Doctors() []dto.DoctorResponse
}

type consultationUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	consultationRepo repository.ConsultationRepository
	publisher        service.BookingEventPublisher
	renderer         ReportRenderer
}

func NewConsultationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	consultationRepo repository.ConsultationRepository,
	publisher service.BookingEventPublisher,
	renderer ReportRenderer,
) ConsultationUsecase {
	return &consultationUsecase{
		db:               db,
		log:              log,
		consultationRepo: consultationRepo,
		publisher:        publisher,
		renderer:         renderer,
	}
}

// Book validates and stores a consultation owned by patientUsername.
// Nothing is written when validation fails.
func (u *consultationUsecase) Book(ctx context.Context, patientUsername string, req *dto.CreateConsultationRequest) (*dto.ConsultationResponse, error) {
	consultation, err := newConsultation(patientUsername, req)
	if err != nil {
		return nil, err
	}

	if err := u.consultationRepo.Create(ctx, u.db, consultation); err != nil {
		u.log.Warnf("Failed to create consultation: %+v", err)
		return nil, storageError(err)
	}

	if err := u.publisher.PublishConsultationBooked(ctx, consultation); err != nil {
		u.log.WithField("consultation_id", consultation.ID).Warn("Booking event was not published")
	}

	return converter.ConsultationToResponse(consultation), nil
}

func (u *consultationUsecase) ListFor(ctx context.Context, username string, role entity.Role) (*dto.ConsultationListResponse, error) {
	var (
		consultations []entity.Consultation
		err           error
	)

	switch role {
	case entity.RoleDoctor:
		consultations, err = u.consultationRepo.FindAll(ctx, u.db)
	case entity.RolePatient:
		consultations, err = u.consultationRepo.FindByPatientUsername(ctx, u.db, username)
	default:
		return nil, ErrInvalidRole
	}
	if err != nil {
		u.log.Warnf("Failed to find consultations for %s: %+v", username, err)
		return nil, storageError(err)
	}

	return &dto.ConsultationListResponse{
		Consultations: converter.ConsultationsToResponses(consultations),
		Total:         len(consultations),
	}, nil
}

func (u *consultationUsecase) Get(ctx context.Context, id int64, username string, role entity.Role) (*dto.ConsultationResponse, error) {
	consultation, err := u.findVisible(ctx, id, username, role)
	if err != nil {
		return nil, err
	}
	return converter.ConsultationToResponse(consultation), nil
}

func (u *consultationUsecase) RenderReport(ctx context.Context, id int64, username string, role entity.Role) ([]byte, error) {
	consultation, err := u.findVisible(ctx, id, username, role)
	if err != nil {
		return nil, err
	}

	report, err := u.renderer.Render(consultation)
	if err != nil {
		u.log.Warnf("Failed to render consultation report: %+v", err)
		return nil, err
	}
	return report, nil
}

func (u *consultationUsecase) Doctors() []dto.DoctorResponse {
	return converter.DoctorsToResponses(entity.Doctors)
}

// findVisible hides records the caller may not read behind ErrConsultationNotFound
func (u *consultationUsecase) findVisible(ctx context.Context, id int64, username string, role entity.Role) (*entity.Consultation, error) {
	consultation, err := u.consultationRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find consultation %d: %+v", id, err)
		return nil, storageError(err)
	}
	if consultation == nil || !consultation.VisibleTo(username, role) {
		return nil, ErrConsultationNotFound
	}
	return consultation, nil
}

func newConsultation(patientUsername string, req *dto.CreateConsultationRequest) (*entity.Consultation, error) {
	if strings.TrimSpace(patientUsername) == "" {
		return nil, invalidConsultation("patient username is required")
	}

	name := strings.TrimSpace(req.PatientName)
	if name == "" {
		return nil, invalidConsultation("patient name is required")
	}

	symptoms := strings.TrimSpace(req.Symptoms)
	if symptoms == "" {
		return nil, invalidConsultation("symptoms are required")
	}

	if req.Age < entity.MinPatientAge || req.Age > entity.MaxPatientAge {
		return nil, invalidConsultation(fmt.Sprintf("age must be between %d and %d", entity.MinPatientAge, entity.MaxPatientAge))
	}

	if !entity.IsKnownDoctor(req.Doctor) {
		return nil, invalidConsultation("unknown doctor")
	}

	if _, err := time.Parse(consultationDateLayout, req.Date); err != nil {
		return nil, invalidConsultation("date must be YYYY-MM-DD")
	}

	clock, ok := normalizeTime(req.Time)
	if !ok {
		return nil, invalidConsultation("time must be HH:MM or HH:MM:SS")
	}

	return &entity.Consultation{
		PatientUsername: patientUsername,
		Name:            name,
		Age:             req.Age,
		Doctor:          req.Doctor,
		Date:            req.Date,
		Time:            clock,
		Symptoms:        &symptoms,
	}, nil
}

// normalizeTime accepts HH:MM or HH:MM:SS and returns HH:MM:SS
func normalizeTime(raw string) (string, bool) {
	for _, layout := range []string{consultationTimeLayout, "15:04"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(consultationTimeLayout), true
		}
	}
	return "", false
}

func invalidConsultation(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidConsultation, reason)
}
