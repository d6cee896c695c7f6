package entity

// Doctor is one of the fixed consulting providers
type Doctor struct {
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
}

// Label is the value stored in consultations.doctor
func (d Doctor) Label() string {
	return d.Name + " (" + d.Specialization + ")"
}

// Doctors lists the providers patients can book
var Doctors = []Doctor{
	{Name: "Dr. Sharma", Specialization: "Cardiologist"},
	{Name: "Dr. Mehta", Specialization: "General Physician"},
	{Name: "Dr. Rao", Specialization: "Neurologist"},
}

// IsKnownDoctor checks label against the provider list
func IsKnownDoctor(label string) bool {
	for _, d := range Doctors {
		if d.Label() == label {
			return true
		}
	}
	return false
}

// DoctorCount is the number of consultations booked with one provider
type DoctorCount struct {
	Doctor string `json:"doctor"`
	Count  int64  `json:"count"`
}
