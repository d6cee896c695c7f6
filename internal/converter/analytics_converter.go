package converter

import (
	"clinical-assistant/internal/delivery/dto"
	"clinical-assistant/internal/domain/entity"
)

// LoginEventsToResponses converts login history rows to DTOs
func LoginEventsToResponses(events []entity.LoginEvent) []dto.LoginEventResponse {
	responses := make([]dto.LoginEventResponse, len(events))
	for i, e := range events {
		responses[i] = dto.LoginEventResponse{
			ID:        e.ID,
			Username:  e.Username,
			Role:      e.Role.String(),
			LoginTime: e.LoginTime,
		}
	}
	return responses
}

// DoctorCountsToResponses converts the per-provider distribution
func DoctorCountsToResponses(counts []entity.DoctorCount) []dto.DoctorCountResponse {
	responses := make([]dto.DoctorCountResponse, len(counts))
	for i, c := range counts {
		responses[i] = dto.DoctorCountResponse{
			Doctor: c.Doctor,
			Count:  c.Count,
		}
	}
	return responses
}
