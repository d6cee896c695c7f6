package converter

import (
	"clinical-assistant/internal/delivery/dto"
	"clinical-assistant/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role.String(),
	}
}

// SessionToResponse converts a Session to SessionResponse DTO including the role's feature menu
func SessionToResponse(session *entity.Session) *dto.SessionResponse {
	if session == nil {
		return nil
	}

	return &dto.SessionResponse{
		Username:  session.Username,
		Role:      session.Role.String(),
		Language:  session.Language,
		LoginAt:   session.CreatedAt,
		ExpiresAt: session.ExpiresAt,
		Features:  session.Features(),
	}
}
