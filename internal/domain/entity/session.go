package entity

import "time"

// Supported interface languages
const (
	LanguageEnglish = "English"
	LanguageHindi   = "Hindi"
)

// Session is the server-side record of who is signed in behind one token.
// It is never persisted to the relational store.
type Session struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	Language  string    `json:"language"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired checks the session against now
func (s *Session) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Features returns the navigation entries available to the role
func (s *Session) Features() []string {
	features := []string{
		"Dashboard",
		"Disease Prediction",
		"Heart Risk",
		"Medical Report Analyzer",
		"Telemedicine",
	}
	if s.Role == RoleDoctor {
		features = append(features, "Admin Analytics")
	}
	return features
}
