package entity

// Consultation age bounds
const (
	MinPatientAge = 1
	MaxPatientAge = 120
)

// LegacyPatientUsername is assigned to rows created before consultations were owned
const LegacyPatientUsername = "unknown"

// Consultation represents a confirmed telemedicine booking.
// Records are immutable once written; ownership is by PatientUsername.
type Consultation struct {
	ID              int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientUsername string  `gorm:"size:255;not null;index" json:"patient_username"`
	Name            string  `gorm:"column:name;type:text;not null" json:"name"`
	Age             int     `gorm:"not null" json:"age"`
	Doctor          string  `gorm:"type:text;not null" json:"doctor"`
	Date            string  `gorm:"type:text;not null" json:"date"`
	Time            string  `gorm:"type:text;not null" json:"time"`
	Symptoms        *string `gorm:"type:text" json:"symptoms"`
}

func (Consultation) TableName() string {
	return "consultations"
}

// VisibleTo reports whether a session with the given identity may read the record
func (c *Consultation) VisibleTo(username string, role Role) bool {
	if role == RoleDoctor {
		return true
	}
	return role == RolePatient && c.PatientUsername == username
}

// SymptomsText returns the symptoms or an empty string for NULL rows
func (c *Consultation) SymptomsText() string {
	if c.Symptoms == nil {
		return ""
	}
	return *c.Symptoms
}
