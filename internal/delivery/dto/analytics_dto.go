package dto

type DoctorCountResponse struct {
	Doctor string `json:"doctor"`
	Count  int64  `json:"count"`
}

// TotalsResponse leaves AverageAge and TopDoctor null for an empty ledger
type TotalsResponse struct {
	TotalConsultations int64    `json:"total_consultations"`
	AverageAge         *float64 `json:"average_age"`
	TopDoctor          *string  `json:"top_doctor"`
}

type AnalyticsSummaryResponse struct {
	TotalsResponse
	DoctorDistribution []DoctorCountResponse `json:"doctor_distribution"`
}

type LoginEventResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	LoginTime string `json:"login_time"`
}

type LoginHistoryResponse struct {
	Logins []LoginEventResponse `json:"logins"`
	Total  int                  `json:"total"`
}
