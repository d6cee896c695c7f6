package dto

// Request DTOs

// CreateConsultationRequest is submitted by the signed-in user; the owning
// username comes from the session, never from the body.
type CreateConsultationRequest struct {
	PatientName string `json:"patient_name" validate:"required,notblank"`
	Age         int    `json:"age" validate:"required,gte=1,lte=120"`
	Doctor      string `json:"doctor" validate:"required,doctor"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string `json:"time" validate:"required"`
	Symptoms    string `json:"symptoms" validate:"required,notblank"`
}

// Response DTOs

type ConsultationResponse struct {
	ID              int64   `json:"id"`
	PatientUsername string  `json:"patient_username"`
	PatientName     string  `json:"patient_name"`
	Age             int     `json:"age"`
	Doctor          string  `json:"doctor"`
	Date            string  `json:"date"`
	Time            string  `json:"time"`
	Symptoms        *string `json:"symptoms"`
}

type ConsultationListResponse struct {
	Consultations []ConsultationResponse `json:"consultations"`
	Total         int                    `json:"total"`
}

type DoctorResponse struct {
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	Label          string `json:"label"`
}
