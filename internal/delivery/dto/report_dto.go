package dto

type FindingResponse struct {
	Name     string `json:"name"`
	Value    string `json:"value"`
	Status   string `json:"status"`
	Abnormal bool   `json:"abnormal"`
	Summary  string `json:"summary"`
}

type ReportAnalysisResponse struct {
	Filename       string            `json:"filename"`
	Language       string            `json:"language"`
	Preview        string            `json:"preview"`
	Truncated      bool              `json:"truncated"`
	CharacterCount int               `json:"character_count"`
	Findings       []FindingResponse `json:"findings"`
}
