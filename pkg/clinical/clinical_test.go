package clinical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Finding
	}{
		{
			name: "normal panel",
			text: "BP 120/80\nCholesterol: 180 mg/dL\nHemoglobin 13.5 g/dL",
			want: []Finding{
				{Name: "Blood Pressure", Value: "120/80", Status: StatusNormal},
				{Name: "Cholesterol", Value: "180 mg/dL", Status: StatusNormal},
				{Name: "Hemoglobin", Value: "13 g/dL", Status: StatusNormal},
			},
		},
		{
			name: "high pressure from diastolic only",
			text: "blood pressure 130/95",
			want: []Finding{
				{Name: "Blood Pressure", Value: "130/95", Status: StatusHigh},
			},
		},
		{
			name: "case insensitive labs",
			text: "TOTAL CHOLESTEROL 240\nHEMOGLOBIN: 10",
			want: []Finding{
				{Name: "Cholesterol", Value: "240 mg/dL", Status: StatusHigh},
				{Name: "Hemoglobin", Value: "10 g/dL", Status: StatusLow},
			},
		},
		{
			name: "nothing recognisable",
			text: "Patient reports mild headache.",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.text))
		})
	}
}

func TestFindingDisplay(t *testing.T) {
	findings := Extract("BP 150/85")
	require.Len(t, findings, 1)

	assert.True(t, findings[0].Abnormal())
	assert.Equal(t, "Blood Pressure: 150/85 — High", findings[0].Display())
}
