package entity

// Role represents the account type fixed at registration
type Role string

// Role names
const (
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// IsValid reports whether r is one of the known roles
func (r Role) IsValid() bool {
	return r == RoleDoctor || r == RolePatient
}

func (r Role) String() string {
	return string(r)
}
