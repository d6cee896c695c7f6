package converter

import (
	"clinical-assistant/internal/delivery/dto"
	"clinical-assistant/internal/domain/entity"
)

// ConsultationToResponse converts a Consultation entity to ConsultationResponse DTO
func ConsultationToResponse(c *entity.Consultation) *dto.ConsultationResponse {
	if c == nil {
		return nil
	}

	return &dto.ConsultationResponse{
		ID:              c.ID,
		PatientUsername: c.PatientUsername,
		PatientName:     c.Name,
		Age:             c.Age,
		Doctor:          c.Doctor,
		Date:            c.Date,
		Time:            c.Time,
		Symptoms:        c.Symptoms,
	}
}

// ConsultationsToResponses converts a slice of Consultation entities
func ConsultationsToResponses(consultations []entity.Consultation) []dto.ConsultationResponse {
	responses := make([]dto.ConsultationResponse, len(consultations))
	for i := range consultations {
		responses[i] = *ConsultationToResponse(&consultations[i])
	}
	return responses
}

// DoctorsToResponses lists the fixed providers
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i, d := range doctors {
		responses[i] = dto.DoctorResponse{
			Name:           d.Name,
			Specialization: d.Specialization,
			Label:          d.Label(),
		}
	}
	return responses
}
